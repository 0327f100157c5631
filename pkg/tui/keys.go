package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Tab        key.Binding
	Enter      key.Binding
	Space      key.Binding
	Edit       key.Binding
	Goal       key.Binding
	Reflection key.Binding
	Add        key.Binding
	Delete     key.Binding
	Template   key.Binding
	CarryOver  key.Binding
	Save       key.Binding
	Sync       key.Binding
	Reload     key.Binding
	Preview    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous outcome"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next outcome"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next outcome"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle done"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle status"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit action"),
		),
		Goal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "edit goal"),
		),
		Reflection: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "edit reflection"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add action"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete action"),
		),
		Template: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "apply template"),
		),
		CarryOver: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "carry over yesterday"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Sync: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "git sync"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Preview: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "markdown preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  tab outcome  space status  enter done  e edit  a/d add/del  g goal  r reflect  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"←/→ tab", "Switch outcome (Work/Health/Family)"},
		{"space", "Cycle action status"},
		{"enter", "Toggle done/planned"},
		{"e", "Edit action text"},
		{"a", "Add action (max 5)"},
		{"d", "Delete action (with confirmation)"},
		{"g", "Edit the outcome goal"},
		{"r", "Edit the daily reflection"},
		{"t", "Apply an action template"},
		{"y", "Carry over yesterday's incomplete actions"},
		{"s", "Save to disk"},
		{"S", "Git sync"},
		{"P", "Markdown preview of the day"},
		{"R", "Reload from filesystem"},
		{"?", "Toggle help"},
		{"q", "Save and quit"},
	}
}
