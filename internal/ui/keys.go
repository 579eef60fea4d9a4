package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	MarkAll    key.Binding
	ClearMarks key.Binding
	ExportCSV  key.Binding
	ExportXLSX key.Binding
	Stats      key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "mark")),
		MarkAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all")),
		ClearMarks: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "clear marks")),
		ExportCSV:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "export csv")),
		ExportXLSX: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export xlsx")),
		Stats:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats sheet")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete marked")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ExportCSV, k.ExportXLSX, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.Toggle, k.MarkAll, k.ClearMarks},
		{k.ExportCSV, k.ExportXLSX, k.Stats},
		{k.Delete, k.Help, k.Quit},
	}
}
