package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	SizeUp     key.Binding
	SizeDown   key.Binding
	Discount   key.Binding
	Commented  key.Binding
	Hot        key.Binding
	Favorites  key.Binding
	Sort       key.Binding
	Favorite   key.Binding
	Open       key.Binding
	Enter      key.Binding
	Down       key.Binding
	Up         key.Binding
	Left       key.Binding
	Right      key.Binding
	Reload     key.Binding
	ExportCSV  key.Binding
	ExportJSON key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		SizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger pages"),
		),
		SizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller pages"),
		),
		Discount: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "best discount"),
		),
		Commented: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "most commented"),
		),
		Hot: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hot deals"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "favorites"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(" ", "*"),
			key.WithHelp("space", "favorite"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/open"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "navigate"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "navigate"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left", "<"),
			key.WithHelp("h/left", "prev page/tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right", ">"),
			key.WithHelp("l/right", "next page/tab"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export json"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Discount, k.Sort, k.Favorite, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.SizeUp, k.SizeDown, k.Reload},
		{k.Discount, k.Commented, k.Hot, k.Favorites, k.Sort},
		{k.Down, k.Up, k.Left, k.Right, k.Enter, k.Open, k.Favorite},
		{k.Tab, k.ShiftTab, k.ExportCSV, k.ExportJSON, k.Quit, k.ForceQuit},
	}
}
