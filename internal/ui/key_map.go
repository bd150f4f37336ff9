package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings the sync flow handles itself. List navigation
// stays with the bubbles list widget's own bindings.
type keyMap struct {
	enter   key.Binding
	sync    key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		sync:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sync")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Per-view help lines rendered through help.Model.ShortHelpView.

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.enter, k.quit}
}

func (k keyMap) previewHelp() []key.Binding {
	return []key.Binding{k.sync, k.back, k.quit}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.yes, k.no, k.quit}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.restart, k.quit}
}
