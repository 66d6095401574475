package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Pick     key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	Menu     key.Binding
	Detailed key.Binding
	Compact  key.Binding
	Brief    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	ZoomZero key.Binding
	Search   key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		PrevWeek: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←→", "day")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "card")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Pick:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Drop:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Menu:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Detailed: key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2/3", "mode")),
		Compact:  key.NewBinding(key.WithKeys("2")),
		Brief:    key.NewBinding(key.WithKeys("3")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-/0", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-")),
		ZoomZero: key.NewBinding(key.WithKeys("0")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Today, k.Left, k.Up, k.Pick, k.Menu, k.Detailed, k.ZoomIn, k.Search, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Drop, k.Cancel}}
}

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Field  key.Binding
	Choose key.Binding
	Close  key.Binding
}

func newMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "select")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Field:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "field")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Close:  key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "close")),
	}
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Field, k.Choose, k.Close}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
