package cli

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Skip       key.Binding
	EditWork   key.Binding
	EditBreak  key.Binding
	Theme      key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	ToggleHelp key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:       key.NewBinding(key.WithKeys("n", "s"), key.WithHelp("n", "skip")),
		EditWork:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "edit work")),
		EditBreak:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "edit break")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Skip, k.Quit, k.ToggleHelp}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip},
		{k.EditWork, k.EditBreak, k.Theme},
		{k.Quit, k.ToggleHelp},
	}
}
