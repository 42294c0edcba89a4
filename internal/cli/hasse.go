package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/ui"
)

// FormatHasseChain renders the occupied positions in ascending order, e.g.
// "a (0) → b (1) → {c,d} (2) → e (3) → (back to a)".
func FormatHasseChain(a *algebra.Algebra) string {
	var parts []string
	for p, group := range a.Positions().Levels() {
		if len(group) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", a.GroupText(p), p))
	}
	parts = append(parts, fmt.Sprintf("(back to %s)", algebra.Zero))
	return strings.Join(parts, " → ")
}

// FormatPositionMap lists "symbol -> position" for every symbol; unmapped
// symbols show "-".
func FormatPositionMap(a *algebra.Algebra) string {
	var sb strings.Builder
	positions := a.Positions()
	for _, s := range a.Alphabet().Symbols() {
		if p, ok := positions.Position(s); ok {
			fmt.Fprintf(&sb, "%s -> %d\n", s, p)
		} else {
			fmt.Fprintf(&sb, "%s -> -\n", s)
		}
	}
	return sb.String()
}

// DisplayHasse writes the Hasse chain, the cycle length and any unmapped
// symbols to out.
func DisplayHasse(out io.Writer, a *algebra.Algebra) {
	fmt.Fprintf(out, "\n%sHasse Diagram%s (ordering by +1 steps from '%s'):\n", ui.ColorBold(), ui.ColorReset(), algebra.Zero)
	fmt.Fprintf(out, "%s=======================================================%s\n", ui.ColorGrey(), ui.ColorReset())
	fmt.Fprintf(out, "%s\n", ui.Paint(ui.ColorMagenta(), FormatHasseChain(a)))
	fmt.Fprintf(out, "Cycle length: %s%d%s\n", ui.ColorCyan(), a.CycleLength(), ui.ColorReset())
	if unmapped := a.Positions().Unmapped(); len(unmapped) > 0 {
		fmt.Fprintf(out, "%sUnmapped: %s%s\n", ui.ColorYellow(), symbolList(unmapped), ui.ColorReset())
	}
}

func symbolList(symbols []algebra.Symbol) string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// DisplayPositionMap writes FormatPositionMap to out.
func DisplayPositionMap(out io.Writer, a *algebra.Algebra) {
	fmt.Fprint(out, FormatPositionMap(a))
}
