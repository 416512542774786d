package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings for the viewer. Horizontal keys move the
// selection between sections; vertical keys scroll the viewport.
// Modified variants (shift/ctrl) are deliberately not bound so the
// terminal's own behavior is preserved.
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Yank     key.Binding
	Quit     key.Binding
}

var Keys = KeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous section"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next section"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "f", " "),
		key.WithHelp("pgdn", "page down"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank anchor"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
