package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	// Actions
	Quit           key.Binding
	Help           key.Binding
	Escape         key.Binding
	Search         key.Binding
	Filters        key.Binding
	QuickFilter    key.Binding
	Favorites      key.Binding
	ToggleFavorite key.Binding
	Trailer        key.Binding
	IMDb           key.Binding
	Poster         key.Binding
	Home           key.Binding
	Refresh        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		QuickFilter: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "filter grid"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "favorite"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "trailer"),
		),
		IMDb: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "imdb"),
		),
		Poster: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "poster"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filters, k.Favorites, k.ToggleFavorite, k.Enter, k.Help, k.Quit}
}

// FullHelp returns every binding grouped for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Escape},
		{k.Search, k.Filters, k.QuickFilter, k.Favorites, k.Home, k.Refresh},
		{k.ToggleFavorite, k.Trailer, k.IMDb, k.Poster, k.Help, k.Quit},
	}
}
