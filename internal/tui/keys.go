package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all chart key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Warnings  key.Binding
	Escape    key.Binding

	// Window
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PageLeft    key.Binding
	PageRight   key.Binding
	ZoomOut     key.Binding
	ZoomIn      key.Binding
	ResetView   key.Binding
	Freeze      key.Binding

	// Legend
	Legend       key.Binding
	Up           key.Binding
	Down         key.Binding
	ToggleSeries key.Binding
	CycleColor   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Warnings: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warnings"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "close/unfocus"),
		),

		ScrollLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "scroll back"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "scroll forward"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "page back"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "page forward"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("=", "+"),
			key.WithHelp("=", "zoom in"),
		),
		ResetView: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset view"),
		),
		Freeze: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "freeze/resume"),
		),

		Legend: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "legend focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "prev series"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next series"),
		),
		ToggleSeries: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide series"),
		),
		CycleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle color"),
		),
	}
}
