package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/demoapp"
	"github.com/jask/portbridge/internal/host"
	"github.com/jask/portbridge/internal/port"
)

func TestInitializeFirstEventIsHostTitle(t *testing.T) {
	t.Parallel()

	doc := host.NewMemory("Hello")
	rec := &recorder{}
	h, err := Initialize[demoapp.Model](demoapp.Program{}, core.Flags{}, doc, WithObserver(rec))
	require.NoError(t, err)
	t.Cleanup(h.Close)

	require.NotEmpty(t, rec.events)
	require.Equal(t, port.ReceiveTitle{Title: "Hello"}, rec.events[0])
	require.Equal(t, "Hello", h.Core.Model().Title)
	require.True(t, h.Core.Model().Synced)
}

func TestInitializeFlagsReachProgram(t *testing.T) {
	t.Parallel()

	doc := host.NewMemory("Hello")
	h, err := Initialize[demoapp.Model](demoapp.Program{}, core.Flags{"theme": "dark"}, doc)
	require.NoError(t, err)
	t.Cleanup(h.Close)

	require.True(t, doc.HasClass(demoapp.ClassDark))
}

func TestInitializeBackgroundClickFlow(t *testing.T) {
	t.Parallel()

	doc := host.NewMemory("Hello")
	var clicks int
	obs := ObserverFuncs{OnEvent: func(e port.Event) {
		if _, ok := e.(port.ListenBackgroundClick); ok {
			clicks++
		}
	}}
	h, err := Initialize[demoapp.Model](demoapp.Program{}, nil, doc, WithObserver(obs))
	require.NoError(t, err)
	t.Cleanup(h.Close)

	h.Core.Dispatch(demoapp.ToggleMenu{})
	require.Equal(t, Attached, h.Bridge.ClickState())
	require.True(t, doc.HasClass(demoapp.ClassMenuOpen))

	doc.Click()
	require.Equal(t, 1, clicks)
	require.False(t, h.Core.Model().MenuOpen)
	require.Equal(t, Detached, h.Bridge.ClickState())
	require.False(t, doc.HasClass(demoapp.ClassMenuOpen))

	doc.Click()
	require.Equal(t, 1, clicks, "no listener after the menu closed")
}

func TestInitializeTitleEdit(t *testing.T) {
	t.Parallel()

	doc := host.NewMemory("Hello")
	h, err := Initialize[demoapp.Model](demoapp.Program{}, nil, doc)
	require.NoError(t, err)

	h.Core.Dispatch(demoapp.EditTitle{Title: "World"})
	require.Equal(t, "World", doc.Title())
	require.Equal(t, "World", h.Core.Model().Title)

	h.Core.Dispatch(demoapp.ToggleMenu{})
	h.Close()
	require.Zero(t, doc.Listeners())
}

func TestInitializeHostUnavailable(t *testing.T) {
	t.Parallel()

	_, err := Initialize[demoapp.Model](demoapp.Program{}, nil, nil)
	require.ErrorIs(t, err, host.ErrHostUnavailable)
}

// retitleProgram sets a title from Init and another once it learns the host's
// starting title.
type retitleProgram struct{}

func (retitleProgram) Init(core.Flags) ([]string, []port.Command) {
	return nil, []port.Command{port.SetTitle{Title: "from-init"}}
}

func (retitleProgram) Update(msg core.Msg, seen []string) ([]string, []port.Command) {
	t, ok := msg.(port.ReceiveTitle)
	if !ok {
		return seen, nil
	}
	seen = append(seen, t.Title)
	if len(seen) == 1 {
		return seen, []port.Command{port.SetTitle{Title: "from-update"}}
	}
	return seen, nil
}

func TestInitializeAppliesCommandsInEmissionOrder(t *testing.T) {
	t.Parallel()

	doc := host.NewMemory("Hello")
	var applied []string
	obs := ObserverFuncs{OnCommand: func(c port.Command) {
		if st, ok := c.(port.SetTitle); ok {
			applied = append(applied, st.Title)
		}
	}}
	h, err := Initialize[[]string](retitleProgram{}, nil, doc, WithObserver(obs))
	require.NoError(t, err)
	t.Cleanup(h.Close)

	require.Equal(t, []string{"from-init", "from-update"}, applied)
	require.Equal(t, "from-update", doc.Title())
	require.Equal(t, []string{"Hello", "from-init", "from-update"}, h.Core.Model())
}
