// Package porttest provides a scripted app core for exercising code that
// talks to app core ports.
package porttest

import (
	"encoding/json"

	"github.com/jask/portbridge/internal/port"
)

// Loopback stands in for an app core. Commands are emitted by the test and
// delivered synchronously to subscribers. Events sent to it are recorded.
type Loopback struct {
	subs   map[string][]*subscription
	events []port.Message
}

type subscription struct {
	fn func(json.RawMessage)
}

// New returns an empty Loopback.
func New() *Loopback {
	return &Loopback{subs: make(map[string][]*subscription)}
}

// Subscribe registers fn for commands named name.
func (l *Loopback) Subscribe(name string, fn func(json.RawMessage)) func() {
	s := &subscription{fn: fn}
	l.subs[name] = append(l.subs[name], s)
	return func() {
		list := l.subs[name]
		for i, cur := range list {
			if cur == s {
				l.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Send records an inbound event. Unknown names and bad payloads are rejected
// the way a real app core rejects them.
func (l *Loopback) Send(name string, payload json.RawMessage) error {
	m := port.Message{Name: name, Payload: payload}
	if _, err := port.DecodeEvent(m); err != nil {
		return err
	}
	l.events = append(l.events, m)
	return nil
}

// Emit delivers c to its subscribers.
func (l *Loopback) Emit(c port.Command) {
	m := port.EncodeCommand(c)
	l.EmitRaw(m.Name, m.Payload)
}

// EmitRaw delivers an arbitrary, possibly malformed, command.
func (l *Loopback) EmitRaw(name string, payload json.RawMessage) {
	for _, s := range append([]*subscription(nil), l.subs[name]...) {
		s.fn(payload)
	}
}

// Events returns every event received so far.
func (l *Loopback) Events() []port.Message {
	return append([]port.Message(nil), l.events...)
}

// DecodedEvents returns the received events as typed values.
func (l *Loopback) DecodedEvents() []port.Event {
	out := make([]port.Event, 0, len(l.events))
	for _, m := range l.events {
		e, err := port.DecodeEvent(m)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Reset forgets the recorded events.
func (l *Loopback) Reset() { l.events = nil }

// Subscribers reports how many subscriptions exist for name.
func (l *Loopback) Subscribers(name string) int { return len(l.subs[name]) }
