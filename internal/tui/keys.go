package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search   key.Binding
	Category key.Binding
	Sort     key.Binding
	Favorite key.Binding
	Delete   key.Binding
	Clear    key.Binding
	Play     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Done     key.Binding
}

var keys = keyMap{
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Category: key.NewBinding(key.WithKeys("tab", "c"), key.WithHelp("tab", "category")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Clear:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
	Play:     key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("⏎", "play")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Confirm:  key.NewBinding(key.WithKeys("y", "enter")),
	Cancel:   key.NewBinding(key.WithKeys("n", "esc")),
	Done:     key.NewBinding(key.WithKeys("enter", "esc")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Sort, k.Favorite, k.Delete, k.Clear, k.Play, k.Quit}
}
