package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/agbru/hassecalc/internal/algebra"
)

// KeyMap defines the key bindings of the calculator.
type KeyMap struct {
	Quit      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	Add      key.Binding
	Subtract key.Binding
	Multiply key.Binding
	Divide   key.Binding
	Modulo   key.Binding
	Power    key.Binding
	GCD      key.Binding
	LCM      key.Binding

	ToggleBounded key.Binding
	Pane1         key.Binding
	Pane2         key.Binding
	HistoryUp     key.Binding
	HistoryDown   key.Binding
	Recall        key.Binding
	Clear         key.Binding
	ClearHistory  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter", "apply / ="),
		),
		Add:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "sub")),
		Multiply: key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "mul")),
		Divide:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "div")),
		Modulo:   key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "mod")),
		Power:    key.NewBinding(key.WithKeys("^"), key.WithHelp("^", "pow")),
		GCD:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "gcd")),
		LCM:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "lcm")),
		ToggleBounded: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bounded"),
		),
		Pane1: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "display 1"),
		),
		Pane2: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "display 2"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "history"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "history"),
		),
		Recall: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recall"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "clear"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "clear history"),
		),
	}
}

// opBindings pairs each operation key with its operator, in display order.
func (k KeyMap) opBindings() []struct {
	binding key.Binding
	op      algebra.Op
} {
	return []struct {
		binding key.Binding
		op      algebra.Op
	}{
		{k.Add, algebra.OpAdd},
		{k.Subtract, algebra.OpSubtract},
		{k.Multiply, algebra.OpMultiply},
		{k.Divide, algebra.OpDivide},
		{k.Modulo, algebra.OpModulo},
		{k.Power, algebra.OpPower},
		{k.GCD, algebra.OpGCD},
		{k.LCM, algebra.OpLCM},
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.GCD, k.LCM, k.ToggleBounded, k.Pane1, k.Pane2, k.Recall, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Submit, k.Clear, k.Quit},
		{k.Add, k.Subtract, k.Multiply, k.Divide, k.Modulo, k.Power, k.GCD, k.LCM},
		{k.ToggleBounded, k.Pane1, k.Pane2, k.HistoryUp, k.HistoryDown, k.Recall, k.ClearHistory},
	}
}
