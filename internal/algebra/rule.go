package algebra

import (
	"fmt"
	"strings"
)

// Rule is a parsed successor rule. Entry i lists the successors of symbol i;
// an empty entry means the symbol has no successor. Entries beyond the
// parsed tokens are empty.
type Rule struct {
	entries [][]Symbol
}

// ParseRule tokenizes text against alpha. A token is either a single letter
// inside the alphabet or a brace group "{x,y,...}". Characters that are
// neither (spaces, commas, letters outside the alphabet) are skipped. Tokens
// are assigned to input symbols in alphabet order.
//
// An unclosed '{', zero tokens and more tokens than symbols are errors. An
// empty group "{}" yields an empty entry.
func ParseRule(alpha Alphabet, text string) (Rule, error) {
	entries := make([][]Symbol, alpha.Size())
	runes := []rune(text)
	n := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		var entry []Symbol
		switch {
		case r == '{':
			end := indexRune(runes, '}', i+1)
			if end < 0 {
				return Rule{}, fmt.Errorf("%w at offset %d", ErrUnterminatedGroup, i)
			}
			for _, m := range runes[i+1 : end] {
				if s, ok := alpha.Lookup(m); ok {
					entry = append(entry, s)
				}
			}
			i = end
		default:
			s, ok := alpha.Lookup(r)
			if !ok {
				continue
			}
			entry = []Symbol{s}
		}
		if n >= alpha.Size() {
			return Rule{}, fmt.Errorf("%w: more than %d entries", ErrRuleTooLong, alpha.Size())
		}
		entries[n] = entry
		n++
	}
	if n == 0 {
		return Rule{}, ErrEmptyRule
	}
	return Rule{entries: entries}, nil
}

func indexRune(runes []rune, target rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// Len returns the number of input symbols the rule covers.
func (r Rule) Len() int { return len(r.entries) }

// Successors returns a copy of the successor list of s.
func (r Rule) Successors(s Symbol) []Symbol {
	if s < 0 || int(s) >= len(r.entries) {
		return nil
	}
	return append([]Symbol(nil), r.entries[s]...)
}

// Next returns the first successor of s.
func (r Rule) Next(s Symbol) (Symbol, bool) {
	if s < 0 || int(s) >= len(r.entries) || len(r.entries[s]) == 0 {
		return NoSymbol, false
	}
	return r.entries[s][0], true
}

// String renders the rule in canonical token form, e.g. "b c {d,f} a".
// Trailing empty entries are omitted.
func (r Rule) String() string {
	last := len(r.entries) - 1
	for last >= 0 && len(r.entries[last]) == 0 {
		last--
	}
	tokens := make([]string, 0, last+1)
	for _, e := range r.entries[:last+1] {
		tokens = append(tokens, groupText(e))
	}
	return strings.Join(tokens, " ")
}

// groupText renders a list of symbols as a bare letter or a brace group.
func groupText(members []Symbol) string {
	if len(members) == 1 {
		return members[0].String()
	}
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
