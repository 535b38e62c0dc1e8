package port

// Command is a request from the app core for a host effect.
type Command interface {
	commandName() string
}

// SetTitle asks the host to replace the document title.
type SetTitle struct {
	Title string
}

// SetBackgroundClickListener asks the host to report clicks anywhere in the
// document.
type SetBackgroundClickListener struct{}

// RemoveBackgroundClickListener stops background click reports.
type RemoveBackgroundClickListener struct{}

// AddBodyClass adds a class to the document body.
type AddBodyClass struct {
	Class string
}

// RemoveBodyClass removes a class from the document body.
type RemoveBodyClass struct {
	Class string
}

func (SetTitle) commandName() string                      { return NameSetTitle }
func (SetBackgroundClickListener) commandName() string    { return NameSetBackgroundClickListener }
func (RemoveBackgroundClickListener) commandName() string { return NameRemoveBackgroundClickListener }
func (AddBodyClass) commandName() string                  { return NameAddBodyClass }
func (RemoveBodyClass) commandName() string               { return NameRemoveBodyClass }

// CommandName returns the port name of c.
func CommandName(c Command) string { return c.commandName() }
