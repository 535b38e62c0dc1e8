package bridge

import "github.com/jask/portbridge/internal/port"

// Observer is the bridge's diagnostic channel. It sees every command the
// bridge accepts, every event it delivers, and every protocol violation.
// Observers run synchronously on the event loop and must not block.
type Observer interface {
	Command(c port.Command)
	Event(e port.Event)
	Violation(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnCommand   func(port.Command)
	OnEvent     func(port.Event)
	OnViolation func(error)
}

func (o ObserverFuncs) Command(c port.Command) {
	if o.OnCommand != nil {
		o.OnCommand(c)
	}
}

func (o ObserverFuncs) Event(e port.Event) {
	if o.OnEvent != nil {
		o.OnEvent(e)
	}
}

func (o ObserverFuncs) Violation(err error) {
	if o.OnViolation != nil {
		o.OnViolation(err)
	}
}

type observers []Observer

// Observers fans out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(observers, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (obs observers) Command(c port.Command) {
	for _, o := range obs {
		o.Command(c)
	}
}

func (obs observers) Event(e port.Event) {
	for _, o := range obs {
		o.Event(e)
	}
}

func (obs observers) Violation(err error) {
	for _, o := range obs {
		o.Violation(err)
	}
}
