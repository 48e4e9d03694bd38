package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PrevImage   key.Binding
	NextImage   key.Binding
	Search      key.Binding
	ExitSearch  key.Binding
	ClearSearch key.Binding
	More        key.Binding
	Reload      key.Binding
	Copy        key.Binding
	Open        key.Binding
	Help        key.Binding
	Close       key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PrevImage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev image")),
		NextImage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next image")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ExitSearch:  key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "leave search")),
		ClearSearch: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear search")),
		More:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "more")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy URL")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open URL")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextImage, k.Search, k.More, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.PrevImage, k.NextImage, k.More, k.Reload},
		{k.Search, k.ExitSearch, k.ClearSearch},
		{k.Copy, k.Open, k.Help, k.Quit},
	}
}
