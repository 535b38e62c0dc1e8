package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/demoapp"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T, flags core.Flags) *App {
	t.Helper()
	a, err := New("Hello", flags)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestInspectorStartsSynced(t *testing.T) {
	t.Parallel()

	a := newApp(t, nil)
	require.Equal(t, "Hello", a.handle.Core.Model().Title)
	require.NotEmpty(t, a.traffic)
	require.Equal(t, `← receiveTitle "Hello"`, a.traffic[0].text)
	require.Contains(t, a.View(), "portbridge inspector")
}

func TestInspectorMenuAndClick(t *testing.T) {
	t.Parallel()

	a := newApp(t, nil)
	a.Update(key("m"))
	require.Equal(t, bridge.Attached, a.handle.Bridge.ClickState())
	require.True(t, a.doc.HasClass(demoapp.ClassMenuOpen))

	a.Update(key("c"))
	require.Equal(t, bridge.Detached, a.handle.Bridge.ClickState())
	require.False(t, a.handle.Core.Model().MenuOpen)
	require.Equal(t, 1, a.handle.Core.Model().Clicks)
}

func TestInspectorEditTitle(t *testing.T) {
	t.Parallel()

	a := newApp(t, nil)
	a.Update(key("e"))
	require.True(t, a.editing)

	a.input.SetValue("World")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.editing)
	require.Equal(t, "World", a.doc.Title())
	require.Equal(t, "World", a.handle.Core.Model().Title)

	a.Update(key("e"))
	a.input.SetValue("Discarded")
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "World", a.doc.Title())
	require.Equal(t, "edit cancelled", a.status)
}

func TestInspectorDarkFlag(t *testing.T) {
	t.Parallel()

	a := newApp(t, core.Flags{"theme": "dark"})
	require.True(t, a.doc.HasClass(demoapp.ClassDark))
	a.Update(key("d"))
	require.False(t, a.doc.HasClass(demoapp.ClassDark))
}

func TestInspectorTrafficIsBounded(t *testing.T) {
	t.Parallel()

	a := newApp(t, nil)
	for i := 0; i < 20; i++ {
		a.Update(key("d"))
	}
	require.Len(t, a.traffic, maxTraffic)
}

func TestInspectorQuitDetaches(t *testing.T) {
	t.Parallel()

	a := newApp(t, nil)
	a.Update(key("m"))
	_, cmd := a.Update(key("q"))
	require.NotNil(t, cmd)
	require.Zero(t, a.doc.Listeners())
	require.True(t, a.handle.Bridge.Closed())
}
