package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trajguess/internal/core"
)

// KeyMap defines the key bindings used while playing.
// Square lattices use the four arrows; hex lattices add q/e/z/c for the
// diagonal neighbours.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	UpLeft    key.Binding
	UpRight   key.Binding
	DownLeft  key.Binding
	DownRight key.Binding
	Place     key.Binding
	Undo      key.Binding
	Confirm   key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Back      key.Binding
	Help      key.Binding
	Snapshot  key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		UpLeft: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "up-left"),
		),
		UpRight: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "up-right"),
		),
		DownLeft: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "down-left"),
		),
		DownRight: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "down-right"),
		),
		Place: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "place"),
		),
		Undo: key.NewBinding(
			key.WithKeys("backspace", "u"),
			key.WithHelp("bksp/u", "undo"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit/next"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Undo, k.Confirm, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.UpLeft, k.UpRight, k.DownLeft, k.DownRight},
		{k.Place, k.Undo, k.Confirm},
		{k.Pause, k.Restart, k.Back, k.Snapshot, k.Quit},
	}
}

// Action translates a key message to a game action.
// Returns ActionNone for keys that are not game input.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.UpLeft):
		return core.ActionUpLeft
	case key.Matches(msg, k.UpRight):
		return core.ActionUpRight
	case key.Matches(msg, k.DownLeft):
		return core.ActionDownLeft
	case key.Matches(msg, k.DownRight):
		return core.ActionDownRight
	case key.Matches(msg, k.Place):
		return core.ActionPlace
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
