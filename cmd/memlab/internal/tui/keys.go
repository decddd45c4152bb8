package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevType key.Binding
	NextType key.Binding
	Create   key.Binding
	Remove   key.Binding
	GC       key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		PrevType: key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev type")),
		NextType: key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next type")),
		Create:   key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter/c", "create views")),
		Remove:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove views")),
		GC:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "force gc")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Remove, k.GC, k.NextType, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevType, k.NextType},
		{k.Create, k.Remove, k.GC},
		{k.Quit},
	}
}
