package algebra

// Tables holds every single-digit operation precomputed over an alphabet.
// Cells are indexed [a*size+b]; NoSymbol marks a cell that depends on an
// unmapped operand.
type Tables struct {
	size     int
	add      []Symbol
	addCarry []int
	mul      []Symbol
	mulCarry []int
	sub      []Symbol
	div      []Symbol
	pow      []Symbol
	gcd      []Symbol
	lcm      []Symbol
}

// walker evaluates the defining single-digit recurrences directly.
type walker struct {
	alpha Alphabet
	rule  Rule
	pos   PositionMap
}

// addWithCarry walks the first-successor chain pos(b) times from a, counting
// each step that moves from a known position to a lower known position.
func (w walker) addWithCarry(a, b Symbol) (Symbol, int, bool) {
	steps, ok := w.pos.Position(b)
	if !ok {
		return NoSymbol, 0, false
	}
	result, carry := a, 0
	for i := 0; i < steps; i++ {
		next, ok := w.rule.Next(result)
		if !ok {
			continue
		}
		cp, cok := w.pos.Position(result)
		np, nok := w.pos.Position(next)
		if cok && nok && np < cp {
			carry++
		}
		result = next
	}
	return result, carry, true
}

func (w walker) multiplyWithCarry(a, b Symbol) (Symbol, int, bool) {
	switch {
	case a == Zero || b == Zero:
		return Zero, 0, true
	case b == One:
		return a, 0, true
	case a == One:
		return b, 0, true
	}
	steps, ok := w.pos.Position(b)
	if !ok {
		return NoSymbol, 0, false
	}
	result, carry := Zero, 0
	for i := 0; i < steps; i++ {
		r, c, ok := w.addWithCarry(result, a)
		if !ok {
			return NoSymbol, 0, false
		}
		result = r
		carry += c
	}
	return result, carry, true
}

// BuildTables tabulates every single-digit operation.
func BuildTables(alpha Alphabet, rule Rule, pos PositionMap) *Tables {
	n := alpha.Size()
	cells := n * n
	t := &Tables{
		size:     n,
		add:      make([]Symbol, cells),
		addCarry: make([]int, cells),
		mul:      make([]Symbol, cells),
		mulCarry: make([]int, cells),
		sub:      fill(cells, NoSymbol),
		div:      fill(cells, NoSymbol),
		pow:      make([]Symbol, cells),
		gcd:      make([]Symbol, cells),
		lcm:      make([]Symbol, cells),
	}
	w := walker{alpha: alpha, rule: rule, pos: pos}

	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			i := a*n + b
			if s, c, ok := w.addWithCarry(Symbol(a), Symbol(b)); ok {
				t.add[i], t.addCarry[i] = s, c
			} else {
				t.add[i] = NoSymbol
			}
			if s, c, ok := w.multiplyWithCarry(Symbol(a), Symbol(b)); ok {
				t.mul[i], t.mulCarry[i] = s, c
			} else {
				t.mul[i] = NoSymbol
			}
		}
	}

	// Inverses: the first x in alphabet order with b+x = a (b*x = a).
	for b := 0; b < n; b++ {
		for x := 0; x < n; x++ {
			if v := t.add[b*n+x]; v != NoSymbol && t.sub[int(v)*n+b] == NoSymbol {
				t.sub[int(v)*n+b] = Symbol(x)
			}
			if b == int(Zero) {
				continue
			}
			if v := t.mul[b*n+x]; v != NoSymbol && t.div[int(v)*n+b] == NoSymbol {
				t.div[int(v)*n+b] = Symbol(x)
			}
		}
	}
	for i := range t.sub {
		if t.sub[i] == NoSymbol {
			t.sub[i] = Zero
		}
		if t.div[i] == NoSymbol {
			t.div[i] = Zero
		}
	}

	for base := 0; base < n; base++ {
		for exp := 0; exp < n; exp++ {
			t.pow[base*n+exp] = t.power(pos, Symbol(base), Symbol(exp))
		}
	}

	// divides[d*n+m] reports whether d*x = m for some x.
	divides := make([]bool, cells)
	for d := 0; d < n; d++ {
		for x := 0; x < n; x++ {
			if v := t.mul[d*n+x]; v != NoSymbol {
				divides[d*n+int(v)] = true
			}
		}
	}
	levels := pos.Levels()
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			t.gcd[a*n+b] = gcdDigit(n, levels, divides, Symbol(a), Symbol(b))
			t.lcm[a*n+b] = lcmDigit(n, levels, divides, Symbol(a), Symbol(b))
		}
	}
	return t
}

func fill(n int, v Symbol) []Symbol {
	out := make([]Symbol, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func (t *Tables) power(pos PositionMap, base, exp Symbol) Symbol {
	switch {
	case exp == Zero:
		return One
	case base == Zero:
		return Zero
	case exp == One:
		return base
	}
	steps, ok := pos.Position(exp)
	if !ok {
		return NoSymbol
	}
	result := One
	for i := 0; i < steps; i++ {
		result = t.mul[int(result)*t.size+int(base)]
		if result == NoSymbol {
			return NoSymbol
		}
	}
	return result
}

// gcdDigit scans positions from the highest level down and returns the first
// symbol that divides both operands.
func gcdDigit(n int, levels [][]Symbol, divides []bool, a, b Symbol) Symbol {
	if a == Zero {
		return b
	}
	if b == Zero {
		return a
	}
	for p := len(levels) - 1; p >= 0; p-- {
		for _, d := range levels[p] {
			if divides[int(d)*n+int(a)] && divides[int(d)*n+int(b)] {
				return d
			}
		}
	}
	return One
}

// lcmDigit scans nonzero positions upward and returns the first symbol both
// operands divide. Position 0 is skipped: Zero is a multiple of everything.
func lcmDigit(n int, levels [][]Symbol, divides []bool, a, b Symbol) Symbol {
	if a == Zero || b == Zero {
		return Zero
	}
	for p := 1; p < len(levels); p++ {
		for _, m := range levels[p] {
			if divides[int(a)*n+int(m)] && divides[int(b)*n+int(m)] {
				return m
			}
		}
	}
	return One
}

// Size returns the alphabet size the tables cover.
func (t *Tables) Size() int { return t.size }

func (t *Tables) cell(a, b Symbol) (int, bool) {
	if a < 0 || b < 0 || int(a) >= t.size || int(b) >= t.size {
		return 0, false
	}
	return int(a)*t.size + int(b), true
}

func (t *Tables) lookup(table []Symbol, a, b Symbol) (Symbol, bool) {
	i, ok := t.cell(a, b)
	if !ok || table[i] == NoSymbol {
		return NoSymbol, false
	}
	return table[i], true
}

// Add returns a+b.
func (t *Tables) Add(a, b Symbol) (Symbol, bool) { return t.lookup(t.add, a, b) }

// AddCarry returns a+b and the number of wrap-arounds the walk made.
func (t *Tables) AddCarry(a, b Symbol) (Symbol, int, bool) {
	s, ok := t.lookup(t.add, a, b)
	if !ok {
		return NoSymbol, 0, false
	}
	i, _ := t.cell(a, b)
	return s, t.addCarry[i], true
}

// Multiply returns a*b.
func (t *Tables) Multiply(a, b Symbol) (Symbol, bool) { return t.lookup(t.mul, a, b) }

// MultiplyCarry returns a*b and the summed carry of the repeated additions.
func (t *Tables) MultiplyCarry(a, b Symbol) (Symbol, int, bool) {
	s, ok := t.lookup(t.mul, a, b)
	if !ok {
		return NoSymbol, 0, false
	}
	i, _ := t.cell(a, b)
	return s, t.mulCarry[i], true
}

// Subtract returns the first x with b+x = a, or Zero if none exists.
func (t *Tables) Subtract(a, b Symbol) (Symbol, bool) { return t.lookup(t.sub, a, b) }

// Divide returns the first x with b*x = a, or Zero if none exists or b is Zero.
func (t *Tables) Divide(a, b Symbol) (Symbol, bool) { return t.lookup(t.div, a, b) }

// Power returns base multiplied by itself pos(exp) times.
func (t *Tables) Power(base, exp Symbol) (Symbol, bool) { return t.lookup(t.pow, base, exp) }

// GCD returns the greatest common divisor of a and b.
func (t *Tables) GCD(a, b Symbol) (Symbol, bool) { return t.lookup(t.gcd, a, b) }

// LCM returns the least common multiple of a and b.
func (t *Tables) LCM(a, b Symbol) (Symbol, bool) { return t.lookup(t.lcm, a, b) }
