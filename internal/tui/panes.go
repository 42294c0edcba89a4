package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/cli"
)

// pane selects what a display shows: the Hasse chain (0) or operation table
// cli.AllTables()[p-1].
type pane int

const paneHasse pane = 0

// paneCount is the number of selectable displays.
func paneCount() int { return len(cli.AllTables()) + 1 }

// paneForTable returns the display showing table k.
func paneForTable(k cli.TableKind) pane { return pane(k) + 1 }

// next cycles to the following display.
func (p pane) next() pane { return (p + 1) % pane(paneCount()) }

func (p pane) table() (cli.TableKind, bool) {
	if p == paneHasse {
		return 0, false
	}
	return cli.AllTables()[p-1], true
}

// Title names the display as shown in its selector.
func (p pane) Title() string {
	if k, ok := p.table(); ok {
		return k.Title()
	}
	return "Hasse Diagram"
}

// render draws the display content for a, wrapped to width.
func (p pane) render(a *algebra.Algebra, width int) string {
	if k, ok := p.table(); ok {
		return cli.FormatTable(a, k)
	}
	wrap := lipgloss.NewStyle().Width(width)
	return wrap.Render(cli.FormatHasseChain(a)) + "\n\n" + cli.FormatPositionMap(a)
}
