package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the editor key bindings
type keyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	Home, End, ShiftHome, ShiftEnd            key.Binding

	Backspace, Delete, Enter key.Binding

	SelectAll, Copy, Cut, Paste key.Binding

	Toolbar, Finish, Abort key.Binding

	// used while the toolbar has focus
	ButtonLeft, ButtonRight, Press, Leave key.Binding

	// extra shortcuts shown in help only
	formats []key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		ShiftHome: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to line start")),
		ShiftEnd:  key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to line end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Toolbar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toolbar")),
		Finish:  key.NewBinding(key.WithKeys("ctrl+s", "esc"), key.WithHelp("ctrl+s", "done")),
		Abort:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "discard")),

		ButtonLeft:  key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "previous")),
		ButtonRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Press:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "apply")),
		Leave:       key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab", "back to text")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	out := []key.Binding{k.Toolbar, k.Finish, k.Abort}
	return append(out, k.formats...)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ShiftLeft, k.ShiftRight, k.ShiftUp, k.ShiftDown, k.SelectAll},
		{k.Copy, k.Cut, k.Paste},
		k.formats,
		{k.Toolbar, k.Finish, k.Abort},
	}
}

// toolbarHelp lists the bindings active while the toolbar has focus
func (k keyMap) toolbarHelp() []key.Binding {
	return []key.Binding{k.ButtonLeft, k.ButtonRight, k.Press, k.Leave}
}
