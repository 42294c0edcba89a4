package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/ui"
)

// TableKind selects one of the single-digit operation tables.
type TableKind int

const (
	TableAdd TableKind = iota
	TableMultiply
	TableSubtract
	TableDivide
	TablePower
	TableGCD
	TableLCM
	TableAddCarry
	TableMultiplyCarry
)

var tableInfo = [...]struct {
	name, title, corner string
}{
	TableAdd:           {"add", "Addition Table", "+"},
	TableMultiply:      {"mul", "Multiplication Table", "*"},
	TableSubtract:      {"sub", "Subtraction Table", "-"},
	TableDivide:        {"div", "Division Table", "/"},
	TablePower:         {"pow", "Power Table", "^"},
	TableGCD:           {"gcd", "GCD Table", "gcd"},
	TableLCM:           {"lcm", "LCM Table", "lcm"},
	TableAddCarry:      {"addcarry", "Addition Carry Table", "+"},
	TableMultiplyCarry: {"mulcarry", "Multiplication Carry Table", "*"},
}

// AllTables returns every table kind in display order.
func AllTables() []TableKind {
	kinds := make([]TableKind, len(tableInfo))
	for i := range kinds {
		kinds[i] = TableKind(i)
	}
	return kinds
}

// TableNames returns the accepted --table values, including "all".
func TableNames() []string {
	names := make([]string, 0, len(tableInfo)+1)
	for _, info := range tableInfo {
		names = append(names, info.name)
	}
	return append(names, "all")
}

// ParseTableKinds resolves a --table value. "all" selects every table.
func ParseTableKinds(name string) ([]TableKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return AllTables(), nil
	}
	for i, info := range tableInfo {
		if info.name == name {
			return []TableKind{TableKind(i)}, nil
		}
	}
	return nil, fmt.Errorf("unknown table %q (accepted: %s)", name, strings.Join(TableNames(), ", "))
}

func (k TableKind) String() string { return tableInfo[k].name }

// Title returns the heading printed above the table.
func (k TableKind) Title() string { return tableInfo[k].title }

// FormatTableCell renders the entry of table k for row x and column y.
// Value tables show the equivalence group of the result; carry tables show
// the group at the carry's position. Absent entries render as "?".
func FormatTableCell(a *algebra.Algebra, k TableKind, x, y algebra.Symbol) string {
	t := a.Tables()
	var (
		s  algebra.Symbol
		ok bool
	)
	switch k {
	case TableAdd:
		s, ok = t.Add(x, y)
	case TableMultiply:
		s, ok = t.Multiply(x, y)
	case TableSubtract:
		s, ok = t.Subtract(x, y)
	case TableDivide:
		s, ok = t.Divide(x, y)
	case TablePower:
		s, ok = t.Power(x, y)
	case TableGCD:
		s, ok = t.GCD(x, y)
	case TableLCM:
		s, ok = t.LCM(x, y)
	case TableAddCarry, TableMultiplyCarry:
		var carry int
		if k == TableAddCarry {
			_, carry, ok = t.AddCarry(x, y)
		} else {
			_, carry, ok = t.MultiplyCarry(x, y)
		}
		if !ok {
			return "?"
		}
		return a.CarryText(carry)
	}
	return a.SymbolText(s, ok)
}

// FormatTable renders table k as a bordered grid with the row and column
// symbols as headers.
func FormatTable(a *algebra.Algebra, k TableKind) string {
	symbols := a.Alphabet().Symbols()
	headers := make([]string, 0, len(symbols)+1)
	headers = append(headers, tableInfo[k].corner)
	for _, s := range symbols {
		headers = append(headers, s.String())
	}
	rows := make([][]string, len(symbols))
	for i, x := range symbols {
		row := make([]string, 0, len(symbols)+1)
		row = append(row, x.String())
		for _, y := range symbols {
			row = append(row, FormatTableCell(a, k, x, y))
		}
		rows[i] = row
	}

	theme := ui.GetCurrentTableTheme()
	base := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	header := base.Foreground(theme.Header).Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return header
			case rows[row][col] == "?":
				return base.Foreground(theme.Missing)
			case row == int(algebra.Zero) || col == int(algebra.Zero)+1:
				return base.Foreground(theme.Identity)
			default:
				return base.Foreground(theme.Cell)
			}
		})
	return t.String()
}

// DisplayTables writes each selected table with its title to out.
func DisplayTables(out io.Writer, a *algebra.Algebra, kinds []TableKind) {
	for _, k := range kinds {
		fmt.Fprintf(out, "\n%s%s (%s):%s\n", ui.ColorBold(), k.Title(), tableInfo[k].corner, ui.ColorReset())
		fmt.Fprintln(out, FormatTable(a, k))
	}
}
