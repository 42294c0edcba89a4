package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/orchestration"
)

func newTestModel(t *testing.T, historySize int) Model {
	t.Helper()
	a, err := algebra.New(8, "bcdefgha")
	if err != nil {
		t.Fatalf("algebra.New error = %v", err)
	}
	return NewModel(a, historySize, "dev", nil)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// press feeds msgs to m in order and returns the final model.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

// operands types x into the left field and y into the right one.
func operands(x, y string) []tea.Msg {
	return []tea.Msg{runes(x), keyOf(tea.KeyTab), runes(y)}
}

func TestModel_InitialState(t *testing.T) {
	m := newTestModel(t, 0)

	if m.focus != fieldLeft {
		t.Errorf("expected focus on the first operand, got %d", m.focus)
	}
	if got := m.fields[fieldSize].value; got != "8" {
		t.Errorf("expected size field 8, got %q", got)
	}
	if got := m.fields[fieldRule].value; got != "bcdefgha" {
		t.Errorf("expected rule field bcdefgha, got %q", got)
	}
	if m.panes[0].Title() != "Addition Table" || m.panes[1].Title() != "Addition Carry Table" {
		t.Errorf("unexpected default displays %q, %q", m.panes[0].Title(), m.panes[1].Title())
	}
	if m.History().Limit() != 20 {
		t.Errorf("expected default history limit 20, got %d", m.History().Limit())
	}
	if m.Init() != nil {
		t.Error("expected no initial command")
	}
}

func TestModel_AddKey(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, append(operands("hh", "bb"), runes("+"))...)

	if m.Err() != "" {
		t.Fatalf("unexpected error %q", m.Err())
	}
	if m.Result() != "bba" {
		t.Errorf("expected hh + bb = bba, got %q", m.Result())
	}
	if m.History().Len() != 1 {
		t.Fatalf("expected one history entry, got %d", m.History().Len())
	}
	if got, _ := m.History().Get(1); got.String() != "hh + bb = bba" {
		t.Errorf("unexpected history entry %q", got)
	}
}

func TestModel_OperationKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		op   algebra.Op
		want string
	}{
		{"add", runes("+"), algebra.OpAdd, "g"},
		{"subtract", runes("-"), algebra.OpSubtract, "c"},
		{"multiply", runes("*"), algebra.OpMultiply, "ba"},
		{"divide", runes("/"), algebra.OpDivide, "c remainder a"},
		{"modulo", runes("%"), algebra.OpModulo, "a"},
		{"power", runes("^"), algebra.OpPower, "ca"},
		{"gcd", keyOf(tea.KeyCtrlG), algebra.OpGCD, "c"},
		{"lcm", keyOf(tea.KeyCtrlL), algebra.OpLCM, "e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 0)
			m = press(t, m, append(operands("e", "c"), tt.key)...)

			if m.Err() != "" {
				t.Fatalf("unexpected error %q", m.Err())
			}
			if m.op != tt.op || !m.hasOp {
				t.Errorf("expected operator %s, got %s", tt.op, m.op)
			}
			if m.Result() != tt.want {
				t.Errorf("e %s c = %q, want %q", tt.op, m.Result(), tt.want)
			}
		})
	}
}

func TestModel_MinusInEmptyOperandIsSign(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, runes("-"), runes("b"), keyOf(tea.KeyTab), runes("c"), runes("-"))

	if got := m.fields[fieldLeft].value; got != "-b" {
		t.Errorf("expected signed operand -b, got %q", got)
	}
	if m.op != algebra.OpSubtract {
		t.Errorf("expected subtraction, got %s", m.op)
	}
	if m.Result() != "-d" {
		t.Errorf("-b - c = %q, want -d", m.Result())
	}
}

func TestModel_SubmitRepeatsOperation(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, append(operands("hh", "bb"), runes("+"))...)
	m = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("c"), keyOf(tea.KeyEnter))

	if m.Result() != "bab" {
		t.Errorf("hh + c = %q, want bab", m.Result())
	}
	m = press(t, m, runes("="))
	if m.History().Len() != 3 {
		t.Errorf("expected '=' to evaluate again, history has %d entries", m.History().Len())
	}
}

func TestModel_CalculationErrors(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want string
	}{
		{"no operation", append(operands("b", "c"), keyOf(tea.KeyEnter)), "Select an operation first"},
		{"missing operand", []tea.Msg{runes("b"), runes("+")}, "Please enter both numbers."},
		{"invalid digit", append(operands("z", "c"), runes("+")), "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t, 0), tt.msgs...)
			if !strings.Contains(m.Err(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, m.Err())
			}
			if m.History().Len() != 0 {
				t.Errorf("failed calculations must not be recorded")
			}
		})
	}
}

func TestModel_FieldNavigation(t *testing.T) {
	m := newTestModel(t, 0)

	m = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyTab))
	if m.focus != fieldSize {
		t.Errorf("expected tab to wrap to the size field, got %d", m.focus)
	}
	m = press(t, m, keyOf(tea.KeyShiftTab))
	if m.focus != fieldRight {
		t.Errorf("expected shift+tab to wrap back, got %d", m.focus)
	}
}

func TestModel_RebuildEngine(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, keyOf(tea.KeyShiftTab), keyOf(tea.KeyShiftTab), keyOf(tea.KeyBackspace), runes("3"), keyOf(tea.KeyTab))
	m.fields[fieldRule].SetValue("")
	m = press(t, m, keyOf(tea.KeyEnter))

	if m.Err() != "" {
		t.Fatalf("unexpected error %q", m.Err())
	}
	if m.Algebra().Size() != 3 || m.Algebra().RuleText() != "bca" {
		t.Errorf("expected Z3 with the identity chain, got Z%d %q", m.Algebra().Size(), m.Algebra().RuleText())
	}
	if got := m.fields[fieldRule].value; got != "bca" {
		t.Errorf("expected rule field to show the applied rule, got %q", got)
	}
	if !strings.Contains(m.status, "Algebra Z3 initialized with rule: bca") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestModel_RebuildErrors(t *testing.T) {
	tests := []struct {
		name, size, rule, want string
	}{
		{"size too large", "40", "", "between 2 and 26"},
		{"size not a number", "", "bca", "between 2 and 26"},
		{"bad rule", "3", "b{c", "Invalid algebra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 0)
			before := m.Algebra()
			m.focus = fieldSize
			m.fields[fieldSize].SetValue(tt.size)
			m.fields[fieldRule].SetValue(tt.rule)
			m = press(t, m, keyOf(tea.KeyEnter))

			if !strings.Contains(m.Err(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, m.Err())
			}
			if m.Algebra() != before {
				t.Error("a failed rebuild must keep the engine")
			}
		})
	}
}

func TestModel_ToggleBounded(t *testing.T) {
	m := newTestModel(t, 0)

	m = press(t, m, keyOf(tea.KeyCtrlB))
	if !m.Algebra().IsBounded() {
		t.Fatal("expected bounded mode after ctrl+b")
	}
	if !strings.Contains(m.status, "max hhhhhhhh, min -hhhhhhhh") {
		t.Errorf("unexpected status %q", m.status)
	}

	m.focus = fieldSize
	m.fields[fieldSize].SetValue("5")
	m.fields[fieldRule].SetValue("")
	m = press(t, m, keyOf(tea.KeyEnter))
	if !m.Algebra().IsBounded() {
		t.Error("expected rebuild to keep bounded mode")
	}

	m = press(t, m, keyOf(tea.KeyCtrlB))
	if m.Algebra().IsBounded() || m.status != "Bounded mode disabled." {
		t.Errorf("expected bounded mode off, status %q", m.status)
	}
}

func TestModel_PaneCycling(t *testing.T) {
	m := newTestModel(t, 0)

	m = press(t, m, keyOf(tea.KeyF2))
	if m.panes[0].Title() != "Multiplication Table" {
		t.Errorf("expected f2 to select the next table, got %q", m.panes[0].Title())
	}

	for i := 0; i < paneCount(); i++ {
		m = press(t, m, keyOf(tea.KeyF3))
	}
	if m.panes[1].Title() != "Addition Carry Table" {
		t.Errorf("expected a full cycle to return to the start, got %q", m.panes[1].Title())
	}

	last := pane(paneCount() - 1)
	if last.next() != paneHasse {
		t.Errorf("expected the last table to wrap to the Hasse diagram")
	}
}

func TestModel_HistoryRecall(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, append(operands("b", "b"), runes("+"))...)
	m = press(t, m, keyOf(tea.KeyCtrlK))
	m = press(t, m, append(operands("c", "c"), runes("*"))...)

	m = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyDown))
	if m.selected != 1 {
		t.Fatalf("expected the cursor to stop at the oldest entry, got %d", m.selected)
	}
	m = press(t, m, keyOf(tea.KeyUp), keyOf(tea.KeyUp), keyOf(tea.KeyDown), keyOf(tea.KeyCtrlR))

	if m.fields[fieldLeft].value != "b" || m.fields[fieldRight].value != "b" || m.op != algebra.OpAdd {
		t.Errorf("expected b + b loaded, got %q %s %q", m.fields[fieldLeft].value, m.op, m.fields[fieldRight].value)
	}
	if m.Result() != "c" {
		t.Errorf("expected recalled result c, got %q", m.Result())
	}
	if m.History().Len() != 3 || m.selected != 0 {
		t.Errorf("expected the recall recorded as newest, len %d selected %d", m.History().Len(), m.selected)
	}
}

func TestModel_RecallUsesCurrentEngine(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, append(operands("c", "c"), runes("+"))...)
	if m.Result() != "e" {
		t.Fatalf("c + c = %q, want e", m.Result())
	}

	m.focus = fieldSize
	m.fields[fieldSize].SetValue("3")
	m.fields[fieldRule].SetValue("")
	m = press(t, m, keyOf(tea.KeyEnter), keyOf(tea.KeyCtrlR))

	if m.Result() != "bb" {
		t.Errorf("expected c + c = bb in Z3, got %q", m.Result())
	}
}

func TestModel_HistoryLimitAndClear(t *testing.T) {
	m := newTestModel(t, 2)
	for _, x := range []string{"b", "c", "d"} {
		m = press(t, m, keyOf(tea.KeyCtrlK))
		m = press(t, m, append(operands(x, x), runes("+"))...)
	}
	if m.History().Len() != 2 {
		t.Fatalf("expected the history capped at 2, got %d", m.History().Len())
	}
	if got, _ := m.History().Get(2); got.String() != "c + c = e" {
		t.Errorf("expected the oldest entry evicted, got %q", got)
	}

	m = press(t, m, keyOf(tea.KeyCtrlE))
	if m.History().Len() != 0 {
		t.Errorf("expected ctrl+e to clear the history")
	}
	m = press(t, m, keyOf(tea.KeyCtrlR))
	if m.Err() != "History is empty." {
		t.Errorf("unexpected recall error %q", m.Err())
	}
}

func TestModel_Clear(t *testing.T) {
	m := newTestModel(t, 0)
	m = press(t, m, append(operands("b", "b"), runes("+"))...)
	m.fields[fieldRule].SetValue("edited")
	m = press(t, m, keyOf(tea.KeyCtrlK))

	if m.fields[fieldLeft].value != "" || m.fields[fieldRight].value != "" {
		t.Error("expected operands cleared")
	}
	if m.Result() != "" || m.hasOp {
		t.Error("expected result and operator cleared")
	}
	if m.fields[fieldRule].value != "bcdefgha" {
		t.Errorf("expected the rule field restored, got %q", m.fields[fieldRule].value)
	}
	if m.History().Len() != 1 {
		t.Error("clear must keep the history")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t, 0)
		_, cmd := m.Update(keyOf(k))
		if cmd == nil {
			t.Fatalf("expected a quit command for %s", keyOf(k))
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %s", keyOf(k))
		}
	}
}

func TestModel_Observer(t *testing.T) {
	a, err := algebra.New(8, "bcdefgha")
	if err != nil {
		t.Fatal(err)
	}
	var seen []orchestration.ExpressionResult
	obs := orchestration.ObserverFunc(func(r orchestration.ExpressionResult) { seen = append(seen, r) })
	m := NewModel(a, 0, "dev", obs)
	m = press(t, m, append(operands("hh", "bb"), runes("+"))...)
	m = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("z"), runes("+"))

	if len(seen) != 2 {
		t.Fatalf("expected 2 observed evaluations, got %d", len(seen))
	}
	if seen[0].Job.Text != "hh + bb" || seen[0].Err != nil {
		t.Errorf("unexpected first observation %+v", seen[0])
	}
	if seen[1].Err == nil {
		t.Error("expected the failed evaluation to be observed with its error")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, 0)
	if m.View() != "Initializing..." {
		t.Errorf("expected placeholder before the first resize, got %q", m.View())
	}

	m = press(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	view := m.View()
	for _, want := range []string{
		"Hasse Algebra Calculator",
		"Z8 rule bcdefgha",
		"Calculator",
		"No calculations yet.",
		"Display 1: Addition Table",
		"Display 2: Addition Carry Table",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m = press(t, m, append(operands("hh", "bb"), runes("+"))...)
	for i := 0; i < paneCount()-1; i++ {
		m = press(t, m, keyOf(tea.KeyF2))
	}
	view = m.View()
	for _, want := range []string{"[1] hh + bb = bba", "Display 1: Hasse Diagram", "(back to a)", "h -> 7"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
