package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Sort   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Quit   key.Binding

	NextField key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Done      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Done:      key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "done")),
	}
}

// helpKeys adapts keyMap to help.KeyMap for the current mode.
type helpKeys struct {
	keys keyMap
	mode mode
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.keys
	switch h.mode {
	case modeSearch:
		return []key.Binding{k.Done}
	case modeAdd, modeEdit:
		return []key.Binding{k.NextField, k.Save, k.Cancel}
	default:
		return []key.Binding{k.Up, k.Down, k.Search, k.Sort, k.Add, k.Edit, k.Delete, k.Quit}
	}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
