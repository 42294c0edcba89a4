package algebra

import "strings"

// GroupText renders the symbols at position p: a bare letter for a single
// member, "{d,f}" for several, "?" when the position is empty.
func (a *Algebra) GroupText(p int) string {
	g := a.positions.Group(p)
	if len(g) == 0 {
		return "?"
	}
	return groupText(g)
}

// SymbolText renders a single-digit result as the group of its position.
// Absent or unmapped symbols render as "?".
func (a *Algebra) SymbolText(s Symbol, ok bool) string {
	if !ok || !a.alpha.Contains(s) {
		return "?"
	}
	p, mapped := a.positions.Position(s)
	if !mapped {
		return "?"
	}
	return a.GroupText(p)
}

// CarryText renders a carry count as the group at position carry, wrapping
// by CycleLength.
func (a *Algebra) CarryText(carry int) string {
	return a.GroupText(carry % a.CycleLength())
}

// Format replaces every mapped digit in s by its group text. A leading '-'
// and sentinel strings pass through, as do unmapped or foreign characters.
// Existing "{...}" spans are copied verbatim, which makes Format idempotent.
func (a *Algebra) Format(s string) string {
	if s == UndefinedText || s == OverflowText || strings.HasPrefix(s, "[") {
		return s
	}
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' {
			end := indexRune(runes, '}', i+1)
			if end < 0 {
				sb.WriteString(string(runes[i:]))
				break
			}
			sb.WriteString(string(runes[i : end+1]))
			i = end
			continue
		}
		sym, ok := a.alpha.Lookup(r)
		if !ok {
			sb.WriteRune(r)
			continue
		}
		p, mapped := a.positions.Position(sym)
		if !mapped {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(a.GroupText(p))
	}
	return sb.String()
}

// FormatNumber is Format applied to n.String().
func (a *Algebra) FormatNumber(n Number) string { return a.Format(n.String()) }
