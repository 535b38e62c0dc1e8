package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/host"
	"github.com/jask/portbridge/internal/port"
)

var log = commonlog.GetLogger("portbridge.bridge")

// Ports is the app core's side of the boundary: outbound ports are
// subscribed to, inbound ports are sent to.
type Ports interface {
	Subscribe(name string, fn func(payload json.RawMessage)) (unsubscribe func())
	Send(name string, payload json.RawMessage) error
}

// ClickState tells whether the bridge has a click listener on the document.
type ClickState int

const (
	Detached ClickState = iota
	Attached
)

func (s ClickState) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	default:
		return fmt.Sprintf("ClickState(%d)", int(s))
	}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithObserver adds o to the bridge's diagnostic channel.
func WithObserver(o Observer) Option {
	return func(b *Bridge) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}

// Bridge translates app core commands into host effects.
type Bridge struct {
	ports     Ports
	doc       host.Document
	observers observers

	state    ClickState
	listener host.ListenerID

	unsubs []func()
	closed bool
}

// Attach subscribes to every command port of ports, then sends the
// document's current title as the first receiveTitle event. It fails with
// host.ErrHostUnavailable when the document cannot be read.
func Attach(ports Ports, doc host.Document, opts ...Option) (*Bridge, error) {
	if ports == nil {
		return nil, errors.New("bridge: nil ports")
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", host.ErrHostUnavailable)
	}
	title, err := readTitle(doc)
	if err != nil {
		return nil, err
	}

	b := &Bridge{ports: ports, doc: doc}
	for _, opt := range opts {
		opt(b)
	}
	for _, name := range port.CommandNames {
		name := name // per-iteration copy; module targets go 1.21
		unsub := ports.Subscribe(name, func(payload json.RawMessage) {
			b.Deliver(port.Message{Name: name, Payload: payload})
		})
		b.unsubs = append(b.unsubs, unsub)
	}
	b.send(port.ReceiveTitle{Title: title})
	return b, nil
}

// readTitle converts a panic from the host, which is how syscall/js surfaces
// a thrown exception, into ErrHostUnavailable.
func readTitle(doc host.Document) (title string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", host.ErrHostUnavailable, r)
		}
	}()
	return doc.Title(), nil
}

// ClickState returns the current listener state.
func (b *Bridge) ClickState() ClickState { return b.state }

// Closed reports whether Close has been called.
func (b *Bridge) Closed() bool { return b.closed }

// Close detaches the click listener if attached and drops every port
// subscription. It is safe to call more than once.
func (b *Bridge) Close() {
	if b.closed {
		return
	}
	b.detach()
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
	b.closed = true
}

// Deliver hands the bridge a raw command as if the app core had emitted it on
// port m.Name. Unknown names and malformed payloads are reported as protocol
// violations and dropped.
func (b *Bridge) Deliver(m port.Message) {
	if b.closed {
		return
	}
	c, err := port.DecodeCommand(m)
	if err != nil {
		b.violation(err)
		return
	}
	log.Debugf("command %s", m)
	b.observers.Command(c)
	b.apply(c)
}

func (b *Bridge) apply(c port.Command) {
	switch c := c.(type) {
	case port.SetTitle:
		b.doc.SetTitle(c.Title)
		b.send(port.ReceiveTitle{Title: b.doc.Title()})
	case port.SetBackgroundClickListener:
		b.attach()
	case port.RemoveBackgroundClickListener:
		b.detach()
	case port.AddBodyClass:
		b.doc.AddBodyClass(c.Class)
	case port.RemoveBodyClass:
		b.doc.RemoveBodyClass(c.Class)
	default:
		b.violation(fmt.Errorf("%w: unhandled command %T", port.ErrProtocolViolation, c))
	}
}

func (b *Bridge) attach() {
	if b.state == Attached {
		return
	}
	b.listener = b.doc.AddClickListener(b.onClick)
	b.state = Attached
}

func (b *Bridge) detach() {
	if b.state == Detached {
		return
	}
	b.doc.RemoveClickListener(b.listener)
	b.listener = 0
	b.state = Detached
}

func (b *Bridge) onClick() {
	if b.state != Attached {
		return
	}
	b.send(port.ListenBackgroundClick{Clicked: true})
}

func (b *Bridge) send(e port.Event) {
	m := port.EncodeEvent(e)
	if err := b.ports.Send(m.Name, m.Payload); err != nil {
		b.violation(err)
		return
	}
	log.Debugf("event %s", m)
	b.observers.Event(e)
}

func (b *Bridge) violation(err error) {
	log.Warningf("%s", err)
	b.observers.Violation(err)
}

// Handle owns an app core runtime together with the bridge serving it.
type Handle[M any] struct {
	Core   *core.Runtime[M]
	Bridge *Bridge
}

// Initialize builds the app core for prog with flags, attaches a bridge to
// doc and starts the program. The startup receiveTitle event is queued
// before Start, so the program sees it before any command it issues is
// published.
func Initialize[M any](prog core.Program[M], flags core.Flags, doc host.Document, opts ...Option) (*Handle[M], error) {
	rt := core.New(prog, flags)
	b, err := Attach(rt, doc, opts...)
	if err != nil {
		return nil, err
	}
	rt.Start()
	return &Handle[M]{Core: rt, Bridge: b}, nil
}

// Close tears the bridge down.
func (h *Handle[M]) Close() {
	h.Bridge.Close()
}
