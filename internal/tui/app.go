// Package tui implements the inspector: the demo app core running on a
// simulated document, with every message that crosses the bridge on screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/demoapp"
	"github.com/jask/portbridge/internal/host"
	"github.com/jask/portbridge/internal/port"
)

const maxTraffic = 14

type trafficKind int

const (
	trafficCommand trafficKind = iota
	trafficEvent
	trafficViolation
)

type trafficLine struct {
	kind trafficKind
	text string
}

// App is the inspector model.
type App struct {
	doc    *host.Memory
	handle *bridge.Handle[demoapp.Model]

	traffic []trafficLine
	editing bool
	input   textinput.Model
	status  string
	width   int
}

// New starts the demo program on a document titled title. Extra observers,
// such as the journal, see the same traffic as the inspector.
func New(title string, flags core.Flags, extra ...bridge.Observer) (*App, error) {
	a := &App{doc: host.NewMemory(title)}

	ti := textinput.New()
	ti.Placeholder = "new document title"
	ti.CharLimit = 120
	a.input = ti

	tap := bridge.ObserverFuncs{
		OnCommand:   func(c port.Command) { a.log(trafficCommand, "→ "+port.EncodeCommand(c).String()) },
		OnEvent:     func(e port.Event) { a.log(trafficEvent, "← "+port.EncodeEvent(e).String()) },
		OnViolation: func(err error) { a.log(trafficViolation, "✗ "+err.Error()) },
	}
	obs := append([]bridge.Observer{tap}, extra...)
	h, err := bridge.Initialize[demoapp.Model](demoapp.Program{}, flags, a.doc, bridge.WithObserver(bridge.Observers(obs...)))
	if err != nil {
		return nil, err
	}
	a.handle = h
	return a, nil
}

// Close tears the bridge down.
func (a *App) Close() { a.handle.Close() }

func (a *App) log(kind trafficKind, text string) {
	a.traffic = append(a.traffic, trafficLine{kind: kind, text: text})
	if len(a.traffic) > maxTraffic {
		a.traffic = a.traffic[len(a.traffic)-maxTraffic:]
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		if a.editing {
			return a.handleEditKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			a.Close()
			return a, tea.Quit
		case "e":
			a.editing = true
			a.input.SetValue(a.handle.Core.Model().Title)
			a.input.CursorEnd()
			a.status = ""
			return a, a.input.Focus()
		case "m":
			a.handle.Core.Dispatch(demoapp.ToggleMenu{})
		case "d":
			a.handle.Core.Dispatch(demoapp.ToggleDark{})
		case "c":
			a.doc.Click()
			a.status = "clicked the page background"
		}
	}
	return a, nil
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		a.editing = false
		a.input.Blur()
		a.handle.Core.Dispatch(demoapp.EditTitle{Title: a.input.Value()})
		return a, nil
	case "esc":
		a.editing = false
		a.input.Blur()
		a.status = "edit cancelled"
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left, a.renderDocument(), a.renderCore())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, a.renderTraffic())

	var out strings.Builder
	out.WriteString(titleStyle.Render("portbridge inspector"))
	out.WriteString("\n")
	out.WriteString(body)
	out.WriteString("\n")
	if a.editing {
		out.WriteString(a.input.View())
		out.WriteString("\n")
		out.WriteString(hintStyle.Render("[enter] apply  [esc] cancel"))
	} else {
		out.WriteString(hintStyle.Render("[e] edit title  [m] menu  [d] dark theme  [c] click background  [q] quit"))
	}
	if a.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(a.status))
	}
	return out.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func flag(on bool, yes, no string) string {
	if on {
		return onStyle.Render(yes)
	}
	return offStyle.Render(no)
}

func (a *App) renderDocument() string {
	classes := a.doc.ClassName()
	if classes == "" {
		classes = "(none)"
	}
	lines := []string{
		titleStyle.Render("Document"),
		row("title", fmt.Sprintf("%q", a.doc.Title())),
		row("body class", classes),
		row("listeners", fmt.Sprintf("%d", a.doc.Listeners())),
		labelStyle.Render("click") + flag(a.handle.Bridge.ClickState() == bridge.Attached, "attached", "detached"),
	}
	return panelStyle.Width(44).Render(strings.Join(lines, "\n"))
}

func (a *App) renderCore() string {
	m := a.handle.Core.Model()
	title := fmt.Sprintf("%q", m.Title)
	if !m.Synced {
		title = "(waiting for host)"
	}
	lines := []string{
		titleStyle.Render("App core"),
		row("title", title),
		labelStyle.Render("menu") + flag(m.MenuOpen, "open", "closed"),
		labelStyle.Render("theme") + flag(m.Dark, "dark", "light"),
		row("clicks", fmt.Sprintf("%d", m.Clicks)),
	}
	style := panelStyle
	if m.MenuOpen {
		style = focusPanelStyle
	}
	return style.Width(44).Render(strings.Join(lines, "\n"))
}

func (a *App) renderTraffic() string {
	lines := []string{titleStyle.Render("Traffic")}
	if len(a.traffic) == 0 {
		lines = append(lines, hintStyle.Render("(nothing yet)"))
	}
	for _, t := range a.traffic {
		switch t.kind {
		case trafficCommand:
			lines = append(lines, commandStyle.Render(t.text))
		case trafficEvent:
			lines = append(lines, eventStyle.Render(t.text))
		default:
			lines = append(lines, errorStyle.Render(t.text))
		}
	}
	width := 56
	if a.width > 0 && a.width-48 > width {
		width = a.width - 48
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}
