package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Today        key.Binding
	Month        key.Binding
	Week         key.Binding
	Day          key.Binding
	Refresh      key.Binding
	Create       key.Binding
	Up           key.Binding
	Down         key.Binding
	SetPending   key.Binding
	SetConfirmed key.Binding
	SetCompleted key.Binding
	SetCancelled key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Create, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Refresh},
		{k.Month, k.Week, k.Day},
		{k.Up, k.Down, k.SetPending, k.SetConfirmed, k.SetCompleted, k.SetCancelled},
		{k.Create, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "previous"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Month: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month"),
		),
		Week: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week"),
		),
		Day: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "day"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new appointment"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "select previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "select next"),
		),
		SetPending: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "pending"),
		),
		SetConfirmed: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "confirmed"),
		),
		SetCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		SetCancelled: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "cancelled"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
