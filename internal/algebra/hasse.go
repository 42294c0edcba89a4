package algebra

// Unmapped is the position of a symbol the chain never reaches.
const Unmapped = -1

// PositionMap assigns each symbol a level in the Hasse chain. It is a fixed
// array indexed by Symbol; unreached symbols hold Unmapped.
type PositionMap struct {
	pos []int
}

// BuildHasse derives the position map for rule over alpha.
//
// The first successor chain starting at Zero is walked, assigning increasing
// positions until it revisits a symbol or dead-ends. Members of a successor
// group then share the position of the first positioned member, except that
// Zero always keeps position 0. Finally, every still-unmapped symbol that is
// a successor of a mapped input Y is placed at pos(Y) + pos(One), together
// with its unmapped co-successors, repeating until nothing changes.
func BuildHasse(alpha Alphabet, rule Rule) PositionMap {
	n := alpha.Size()
	pos := make([]int, n)
	for i := range pos {
		pos[i] = Unmapped
	}
	pos[Zero] = 0

	cur := Zero
	for step := 1; step < n; step++ {
		next, ok := rule.Next(cur)
		if !ok || pos[next] != Unmapped {
			break
		}
		pos[next] = step
		cur = next
	}

	// Co-listed successors are equivalent.
	for in := 0; in < rule.Len(); in++ {
		group := rule.entries[in]
		if len(group) < 2 {
			continue
		}
		anchor := Unmapped
		for _, m := range group {
			if m == Zero {
				anchor = 0
				break
			}
			if anchor == Unmapped && pos[m] != Unmapped {
				anchor = pos[m]
			}
		}
		if anchor == Unmapped {
			continue
		}
		for _, m := range group {
			if m != Zero {
				pos[m] = anchor
			}
		}
	}

	// Each pass maps at least one symbol or ends the loop, so it runs at most n times.
	if pos[One] != Unmapped {
		for pass, changed := 0, true; changed && pass < 2*n; pass++ {
			changed = false
			for x := 0; x < n; x++ {
				if pos[x] != Unmapped {
					continue
				}
				for in := 0; in < rule.Len(); in++ {
					if pos[in] == Unmapped || !containsSymbol(rule.entries[in], Symbol(x)) {
						continue
					}
					p := pos[in] + pos[One]
					for _, m := range rule.entries[in] {
						if pos[m] == Unmapped {
							pos[m] = p
						}
					}
					changed = true
					break
				}
			}
		}
	}
	return PositionMap{pos: pos}
}

func containsSymbol(list []Symbol, s Symbol) bool {
	for _, m := range list {
		if m == s {
			return true
		}
	}
	return false
}

// Len returns the number of symbols covered by the map.
func (m PositionMap) Len() int { return len(m.pos) }

// Position returns the level of s and whether s is mapped.
func (m PositionMap) Position(s Symbol) (int, bool) {
	if s < 0 || int(s) >= len(m.pos) || m.pos[s] == Unmapped {
		return Unmapped, false
	}
	return m.pos[s], true
}

// Mapped reports whether s has a position.
func (m PositionMap) Mapped(s Symbol) bool {
	_, ok := m.Position(s)
	return ok
}

// MaxPosition returns the highest assigned position.
func (m PositionMap) MaxPosition() int {
	hi := 0
	for _, p := range m.pos {
		if p > hi {
			hi = p
		}
	}
	return hi
}

// CycleLength is the number of distinct levels, max position plus one.
// It is the radix of multi-digit arithmetic.
func (m PositionMap) CycleLength() int { return m.MaxPosition() + 1 }

// Group returns the symbols at position p in ascending order.
func (m PositionMap) Group(p int) []Symbol {
	var out []Symbol
	for s, q := range m.pos {
		if q == p && p != Unmapped {
			out = append(out, Symbol(s))
		}
	}
	return out
}

// Unmapped returns every symbol without a position, in alphabet order.
func (m PositionMap) Unmapped() []Symbol {
	var out []Symbol
	for s, p := range m.pos {
		if p == Unmapped {
			out = append(out, Symbol(s))
		}
	}
	return out
}

// Levels returns the groups of every position from 0 to MaxPosition.
// Positions that no symbol occupies yield an empty group.
func (m PositionMap) Levels() [][]Symbol {
	levels := make([][]Symbol, m.CycleLength())
	for s, p := range m.pos {
		if p != Unmapped {
			levels[p] = append(levels[p], Symbol(s))
		}
	}
	return levels
}

// AsMap exposes the positions keyed by letter for external collaborators.
func (m PositionMap) AsMap() map[rune]int {
	out := make(map[rune]int, len(m.pos))
	for s, p := range m.pos {
		if p != Unmapped {
			out[Symbol(s).Rune()] = p
		}
	}
	return out
}
