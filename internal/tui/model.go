package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/cli"
	"github.com/agbru/hassecalc/internal/config"
	apperrors "github.com/agbru/hassecalc/internal/errors"
	"github.com/agbru/hassecalc/internal/orchestration"
)

// Input fields in focus order.
const (
	fieldSize = iota
	fieldRule
	fieldLeft
	fieldRight
	fieldCount
)

// Layout constants for the calculator.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 12
	CalculatorWidthPercent = 40
	CalculatorPanelHeight  = 10
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// leftWidth returns the width of the calculator and history column.
func (l LayoutManager) leftWidth() int {
	return l.width * CalculatorWidthPercent / 100
}

// rightWidth returns the width of the display column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

// paneHeight returns the outer height of each of the two displays.
func (l LayoutManager) paneHeight() int {
	return l.bodyHeight() / 2
}

// Model is the root bubbletea model of the full-screen calculator.
type Model struct {
	algebra  *algebra.Algebra
	fields   [fieldCount]field
	focus    int
	op       algebra.Op
	hasOp    bool
	result   string
	status   string
	errMsg   string
	history  *cli.History
	selected int
	panes    [2]pane

	keymap   KeyMap
	help     help.Model
	observer orchestration.Observer
	version  string

	LayoutManager
}

// NewModel creates a calculator over a. The size and rule fields start with
// the engine's settings; history keeps historySize entries.
func NewModel(a *algebra.Algebra, historySize int, version string, observer orchestration.Observer) Model {
	m := Model{
		algebra:  a,
		history:  cli.NewHistory(historySize),
		panes:    [2]pane{paneForTable(cli.TableAdd), paneForTable(cli.TableAddCarry)},
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		focus:    fieldLeft,
		version:  version,
		observer: observer,
	}
	m.fields[fieldSize] = newField("Size", "2-26", acceptDigit)
	m.fields[fieldRule] = newField("Rule", "successor rule", acceptRule)
	m.fields[fieldLeft] = newField("x", "first number", acceptOperand)
	m.fields[fieldRight] = newField("y", "second number", acceptOperand)
	m.resetEngineFields()
	m.help.Styles.ShortKey = footerKeyStyle
	m.help.Styles.ShortDesc = footerDescStyle
	m.help.Styles.FullKey = footerKeyStyle
	m.help.Styles.FullDesc = footerDescStyle
	return m
}

// Algebra returns the current engine.
func (m Model) Algebra() *algebra.Algebra { return m.algebra }

// History returns the calculation history.
func (m Model) History() *cli.History { return m.history }

// Result returns the rendered result of the last calculation.
func (m Model) Result() string { return m.result }

// Err returns the last error message, or "".
func (m Model) Err() string { return m.errMsg }

func (m *Model) resetEngineFields() {
	m.fields[fieldSize].SetValue(strconv.Itoa(m.algebra.Size()))
	m.fields[fieldRule].SetValue(m.algebra.RuleText())
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextField):
		m.focus = (m.focus + 1) % fieldCount
		return m, nil

	case key.Matches(msg, m.keymap.PrevField):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		if m.focus == fieldSize || m.focus == fieldRule {
			return m.rebuild(), nil
		}
		if !m.hasOp {
			m.errMsg = "Select an operation first (+, -, *, /, %, ^, gcd, lcm)."
			return m, nil
		}
		return m.calculate(), nil

	case key.Matches(msg, m.keymap.ToggleBounded):
		return m.toggleBounded(), nil

	case key.Matches(msg, m.keymap.Pane1):
		m.panes[0] = m.panes[0].next()
		return m, nil

	case key.Matches(msg, m.keymap.Pane2):
		m.panes[1] = m.panes[1].next()
		return m, nil

	case key.Matches(msg, m.keymap.HistoryUp):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keymap.HistoryDown):
		if m.selected < m.history.Len()-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Recall):
		return m.recall(), nil

	case key.Matches(msg, m.keymap.Clear):
		return m.clear(), nil

	case key.Matches(msg, m.keymap.ClearHistory):
		m.history.Clear()
		m.selected = 0
		m.status = "History cleared."
		return m, nil
	}

	for _, b := range m.keymap.opBindings() {
		if !key.Matches(msg, b.binding) {
			continue
		}
		// A '-' typed into an empty operand is its sign.
		if b.op == algebra.OpSubtract && m.isOperand() && m.fields[m.focus].value == "" {
			m.fields[m.focus].insert('-')
			return m, nil
		}
		m.op, m.hasOp = b.op, true
		return m.calculate(), nil
	}

	m.fields[m.focus].update(msg)
	return m, nil
}

func (m Model) isOperand() bool { return m.focus == fieldLeft || m.focus == fieldRight }

// rebuild replaces the engine with one built from the size and rule fields.
// An empty rule selects the identity chain. Bounded mode, limits and parity
// carry over.
func (m Model) rebuild() Model {
	m.errMsg, m.status = "", ""
	text := strings.TrimSpace(m.fields[fieldSize].value)
	size, err := strconv.Atoi(text)
	if err != nil || size < algebra.MinSize || size > algebra.MaxSize {
		m.errMsg = fmt.Sprintf("Number of elements must be between %d and %d.", algebra.MinSize, algebra.MaxSize)
		return m
	}
	rule := strings.TrimSpace(m.fields[fieldRule].value)
	if rule == "" {
		rule = config.DefaultRule(size)
	}
	next, err := algebra.New(size, rule,
		algebra.WithBounded(m.algebra.IsBounded()),
		algebra.WithLimits(m.algebra.Limits()),
		algebra.WithParity(m.algebra.Parity()))
	if err != nil {
		m.errMsg = fmt.Sprintf("Invalid algebra: %v", err)
		return m
	}
	m.algebra = next
	m.resetEngineFields()
	m.status = fmt.Sprintf("Algebra Z%d initialized with rule: %s", size, next.RuleText())
	return m
}

func (m Model) toggleBounded() Model {
	m.algebra = m.algebra.Bounded(!m.algebra.IsBounded())
	m.errMsg = ""
	if m.algebra.IsBounded() {
		m.status = fmt.Sprintf("Bounded mode enabled: max %s, min %s",
			m.algebra.FormatNumber(m.algebra.MaxValue()), m.algebra.FormatNumber(m.algebra.MinValue()))
	} else {
		m.status = "Bounded mode disabled."
	}
	return m
}

// calculate evaluates the operand fields with the current operator and
// records the result.
func (m Model) calculate() Model {
	m.errMsg, m.status = "", ""
	e := algebra.Expression{
		Left:  strings.TrimSpace(m.fields[fieldLeft].value),
		Op:    m.op,
		Right: strings.TrimSpace(m.fields[fieldRight].value),
	}
	if e.Left == "" || e.Right == "" {
		m.errMsg = "Please enter both numbers."
		return m
	}
	start := time.Now()
	res, err := m.algebra.Eval(e.Op, e.Left, e.Right)
	if m.observer != nil {
		m.observer.Observe(orchestration.ExpressionResult{
			Job: orchestration.Job{Text: e.String()}, Expr: e, Result: res, Duration: time.Since(start), Err: err,
		})
	}
	if err != nil {
		m.errMsg = fmt.Sprintf("Error: %v", err)
		return m
	}
	m.result = cli.FormatValue(m.algebra, res)
	m.history.Add(cli.HistoryEntry{Expr: e, Result: m.result})
	m.selected = 0
	return m
}

// recall loads the selected history entry into the operand fields and
// evaluates it again with the current engine.
func (m Model) recall() Model {
	entry, ok := m.history.Get(m.selected + 1)
	if !ok {
		m.errMsg = "History is empty."
		return m
	}
	m.fields[fieldLeft].SetValue(entry.Expr.Left)
	m.fields[fieldRight].SetValue(entry.Expr.Right)
	m.op, m.hasOp = entry.Expr.Op, true
	return m.calculate()
}

// clear empties the operands and the result and restores the engine fields.
func (m Model) clear() Model {
	m.fields[fieldLeft].SetValue("")
	m.fields[fieldRight].SetValue("")
	m.resetEngineFields()
	m.result, m.errMsg, m.status = "", "", ""
	m.hasOp = false
	m.focus = fieldLeft
	return m
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.viewHeader()
	footer := m.help.View(m.keymap)

	calcHeight := CalculatorPanelHeight
	if calcHeight > m.bodyHeight()/2 {
		calcHeight = m.bodyHeight() / 2
	}
	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		m.viewCalculator(m.leftWidth(), calcHeight),
		m.viewHistory(m.leftWidth(), m.bodyHeight()-calcHeight))
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		m.viewPane(0, m.rightWidth(), m.paneHeight()),
		m.viewPane(1, m.rightWidth(), m.bodyHeight()-m.paneHeight()))

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewHeader() string {
	title := "Hasse Algebra Calculator"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	bounded := "off"
	if m.algebra.IsBounded() {
		bounded = "on"
	}
	summary := dimStyle.Render(fmt.Sprintf(" | Z%d rule %s | cycle %d | bounded %s",
		m.algebra.Size(), m.algebra.RuleText(), m.algebra.CycleLength(), bounded))
	return headerStyle.Width(m.width).MaxHeight(headerHeight).Render(title + summary)
}

// box renders content inside a bordered panel of the given outer size.
func box(style lipgloss.Style, title, content string, width, height int) string {
	innerW, innerH := width-2, height-2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	body := titleStyle.Render(title) + "\n" + content
	clipped := lipgloss.NewStyle().MaxWidth(innerW).MaxHeight(innerH).Render(body)
	return style.Width(innerW).Height(innerH).Render(clipped)
}

func (m Model) viewCalculator(width, height int) string {
	var b strings.Builder
	for i, f := range m.fields {
		b.WriteString(f.view(i == m.focus))
		b.WriteString("\n")
	}
	op := dimStyle.Render("none")
	if m.hasOp {
		op = opStyle.Render(m.op.String())
	}
	b.WriteString(labelStyle.Render("Op:") + op + "\n")
	b.WriteString(labelStyle.Render("=") + resultStyle.Render(m.result) + "\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	return box(focusedPanelStyle, "Calculator", b.String(), width, height)
}

func (m Model) viewHistory(width, height int) string {
	entries := m.history.Entries()
	if len(entries) == 0 {
		return box(panelStyle, "History", dimStyle.Render("No calculations yet."), width, height)
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("[%d] %s", i+1, e)
		if i == m.selected {
			lines[i] = selectedStyle.Render("> " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return box(panelStyle, "History", strings.Join(lines, "\n"), width, height)
}

func (m Model) viewPane(i, width, height int) string {
	p := m.panes[i]
	title := fmt.Sprintf("Display %d: %s", i+1, p.Title())
	return box(panelStyle, title, p.render(m.algebra, width-2), width, height)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program on in and out, runs it, and returns the
// exit code.
func Run(ctx context.Context, a *algebra.Algebra, cfg config.AppConfig, version string, observer orchestration.Observer, in io.Reader, out io.Writer) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(a, cfg.HistorySize, version, observer)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
