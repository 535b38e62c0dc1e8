package port

// Event reports host state to the app core.
type Event interface {
	eventName() string
}

// ReceiveTitle carries the current document title.
type ReceiveTitle struct {
	Title string
}

// ListenBackgroundClick reports a click somewhere in the document.
// Clicked is always true.
type ListenBackgroundClick struct {
	Clicked bool
}

func (ReceiveTitle) eventName() string          { return NameReceiveTitle }
func (ListenBackgroundClick) eventName() string { return NameListenBackgroundClick }

// EventName returns the port name of e.
func EventName(e Event) string { return e.eventName() }
