// Package demoapp is a small app core program that drives every host port:
// it edits the document title, opens a menu that a click anywhere on the page
// dismisses, and toggles a dark theme on the page body.
package demoapp

import (
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/port"
)

// Body classes applied by the program.
const (
	ClassMenuOpen = "menu-open"
	ClassDark     = "theme-dark"
)

// Model is the program state.
type Model struct {
	Title    string // last title confirmed by the host
	Synced   bool   // at least one title has been received
	MenuOpen bool
	Dark     bool
	Clicks   int // background clicks received
}

// EditTitle asks for a new document title.
type EditTitle struct{ Title string }

// ToggleMenu opens or closes the menu.
type ToggleMenu struct{}

// ToggleDark flips the theme.
type ToggleDark struct{}

// Program implements core.Program.
type Program struct{}

var _ core.Program[Model] = Program{}

// Init reads the "theme" flag; "dark" starts with the dark theme applied.
func (Program) Init(flags core.Flags) (Model, []port.Command) {
	var m Model
	if theme, _ := flags["theme"].(string); theme == "dark" {
		m.Dark = true
		return m, []port.Command{port.AddBodyClass{Class: ClassDark}}
	}
	return m, nil
}

func (Program) Update(msg core.Msg, m Model) (Model, []port.Command) {
	switch msg := msg.(type) {
	case port.ReceiveTitle:
		m.Title = msg.Title
		m.Synced = true
		return m, nil

	case port.ListenBackgroundClick:
		m.Clicks++
		if m.MenuOpen {
			return closeMenu(m)
		}
		return m, nil

	case EditTitle:
		return m, []port.Command{port.SetTitle{Title: msg.Title}}

	case ToggleMenu:
		if m.MenuOpen {
			return closeMenu(m)
		}
		m.MenuOpen = true
		return m, []port.Command{
			port.SetBackgroundClickListener{},
			port.AddBodyClass{Class: ClassMenuOpen},
		}

	case ToggleDark:
		m.Dark = !m.Dark
		if m.Dark {
			return m, []port.Command{port.AddBodyClass{Class: ClassDark}}
		}
		return m, []port.Command{port.RemoveBodyClass{Class: ClassDark}}
	}
	return m, nil
}

func closeMenu(m Model) (Model, []port.Command) {
	m.MenuOpen = false
	return m, []port.Command{
		port.RemoveBackgroundClickListener{},
		port.RemoveBodyClass{Class: ClassMenuOpen},
	}
}
