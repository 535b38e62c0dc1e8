package bridge

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/portbridge/internal/host"
	"github.com/jask/portbridge/internal/port"
	"github.com/jask/portbridge/internal/port/porttest"
)

type recorder struct {
	commands   []port.Command
	events     []port.Event
	violations []error
}

func (r *recorder) Command(c port.Command) { r.commands = append(r.commands, c) }
func (r *recorder) Event(e port.Event)     { r.events = append(r.events, e) }
func (r *recorder) Violation(err error)    { r.violations = append(r.violations, err) }

func attach(t *testing.T, title string) (*Bridge, *porttest.Loopback, *host.Memory, *recorder) {
	t.Helper()
	lb := porttest.New()
	doc := host.NewMemory(title)
	rec := &recorder{}
	b, err := Attach(lb, doc, WithObserver(rec))
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b, lb, doc, rec
}

func TestAttachAnnouncesTitle(t *testing.T) {
	t.Parallel()

	_, lb, _, rec := attach(t, "Hello")
	require.Equal(t, []port.Event{port.ReceiveTitle{Title: "Hello"}}, lb.DecodedEvents())
	require.Equal(t, []port.Event{port.ReceiveTitle{Title: "Hello"}}, rec.events)
	for _, name := range port.CommandNames {
		require.Equal(t, 1, lb.Subscribers(name), name)
	}
}

func TestSetTitleRoundTrip(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "World", "  padded  ", "ünïcödé ✓", `"quoted"`} {
		_, lb, doc, _ := attach(t, "Hello")
		lb.Reset()

		lb.Emit(port.SetTitle{Title: title})
		require.Equal(t, title, doc.Title())
		require.Equal(t, []port.Event{port.ReceiveTitle{Title: title}}, lb.DecodedEvents())
	}
}

func TestClickListenerAttachIsIdempotent(t *testing.T) {
	t.Parallel()

	b, lb, doc, _ := attach(t, "Hello")
	lb.Reset()

	lb.Emit(port.SetBackgroundClickListener{})
	lb.Emit(port.SetBackgroundClickListener{})
	require.Equal(t, Attached, b.ClickState())
	require.Equal(t, 1, doc.Listeners())

	doc.Click()
	require.Equal(t, []port.Event{port.ListenBackgroundClick{Clicked: true}}, lb.DecodedEvents())
}

func TestClickListenerDetach(t *testing.T) {
	t.Parallel()

	b, lb, doc, rec := attach(t, "Hello")
	lb.Reset()

	lb.Emit(port.RemoveBackgroundClickListener{})
	require.Equal(t, Detached, b.ClickState())
	require.Empty(t, rec.violations)

	lb.Emit(port.SetBackgroundClickListener{})
	lb.Emit(port.RemoveBackgroundClickListener{})
	require.Equal(t, Detached, b.ClickState())
	require.Zero(t, doc.Listeners())

	doc.Click()
	require.Empty(t, lb.Events())
}

func TestBodyClasses(t *testing.T) {
	t.Parallel()

	_, lb, doc, _ := attach(t, "Hello")
	lb.Reset()

	lb.Emit(port.AddBodyClass{Class: "x"})
	lb.Emit(port.AddBodyClass{Class: "x"})
	require.Equal(t, []string{"x"}, doc.Classes())

	lb.Emit(port.RemoveBodyClass{Class: "absent"})
	require.Equal(t, []string{"x"}, doc.Classes())

	lb.Emit(port.RemoveBodyClass{Class: "x"})
	require.Empty(t, doc.Classes())
	require.Empty(t, lb.Events(), "class commands emit nothing")
}

func TestMalformedCommandsAreReportedAndDropped(t *testing.T) {
	t.Parallel()

	b, lb, doc, rec := attach(t, "Hello")
	lb.Reset()

	lb.EmitRaw(port.NameSetTitle, json.RawMessage(`123`))
	lb.EmitRaw(port.NameAddBodyClass, json.RawMessage(`"two words"`))
	lb.EmitRaw(port.NameSetBackgroundClickListener, json.RawMessage(`{"capture":true}`))
	b.Deliver(port.Message{Name: "setTitel", Payload: json.RawMessage(`"x"`)})

	require.Equal(t, "Hello", doc.Title())
	require.Empty(t, doc.Classes())
	require.Equal(t, Detached, b.ClickState())
	require.Empty(t, lb.Events())
	require.Empty(t, rec.commands)
	require.Len(t, rec.violations, 4)
	for _, err := range rec.violations {
		require.ErrorIs(t, err, port.ErrProtocolViolation)
	}
	var v *port.ViolationError
	require.ErrorAs(t, rec.violations[3], &v)
	require.Equal(t, port.NameSetTitle, v.Suggestion)

	lb.Emit(port.SetTitle{Title: "still alive"})
	require.Equal(t, "still alive", doc.Title())
}

func TestCloseDetachesAndUnsubscribes(t *testing.T) {
	t.Parallel()

	lb := porttest.New()
	doc := host.NewMemory("Hello")
	b, err := Attach(lb, doc)
	require.NoError(t, err)

	lb.Emit(port.SetBackgroundClickListener{})
	require.Equal(t, 1, doc.Listeners())

	b.Close()
	b.Close()
	require.True(t, b.Closed())
	require.Equal(t, Detached, b.ClickState())
	require.Zero(t, doc.Listeners())
	for _, name := range port.CommandNames {
		require.Zero(t, lb.Subscribers(name), name)
	}

	lb.Reset()
	b.Deliver(port.EncodeCommand(port.SetTitle{Title: "ignored"}))
	require.Equal(t, "Hello", doc.Title())
	require.Empty(t, lb.Events())
}

type brokenDocument struct{ host.Document }

func (brokenDocument) Title() string { panic("document is not defined") }

func TestAttachHostUnavailable(t *testing.T) {
	t.Parallel()

	_, err := Attach(porttest.New(), nil)
	require.ErrorIs(t, err, host.ErrHostUnavailable)

	lb := porttest.New()
	_, err = Attach(lb, brokenDocument{})
	require.ErrorIs(t, err, host.ErrHostUnavailable)
	require.Contains(t, err.Error(), "document is not defined")
	require.Zero(t, lb.Subscribers(port.NameSetTitle))

	_, err = Attach(nil, host.NewMemory(""))
	require.Error(t, err)
	require.False(t, errors.Is(err, host.ErrHostUnavailable))
}

// refusingPorts is an app core build without the inbound ports.
type refusingPorts struct{ *porttest.Loopback }

func (refusingPorts) Send(name string, _ json.RawMessage) error {
	return &port.ViolationError{Direction: port.Inbound, Name: name, Reason: "unknown port"}
}

func TestEventRejectedByCoreIsReported(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	_, err := Attach(refusingPorts{porttest.New()}, host.NewMemory("Hello"), WithObserver(rec))
	require.NoError(t, err)
	require.Len(t, rec.violations, 1)
	require.Empty(t, rec.events)
}

func TestClickStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "detached", Detached.String())
	require.Equal(t, "attached", Attached.String())
	require.Equal(t, "ClickState(7)", ClickState(7).String())
}
