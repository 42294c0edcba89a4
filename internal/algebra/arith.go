package algebra

import "fmt"

// Runaway guards for carry propagation on rules whose chain wraps more
// than once per walk.
const (
	maxCarryDigits = 64
	maxCarry       = 1 << 16
)

// Parse converts a digit string into a normalized Number. An optional
// leading '-' marks a negative value. The empty string and "-" are zero.
// Leading digits at position 0 are stripped, keeping at least one digit.
func (a *Algebra) Parse(s string) (Number, error) {
	neg := false
	body := s
	if len(body) > 0 && body[0] == '-' {
		neg = true
		body = body[1:]
	}
	digits := make([]Symbol, 0, len(body))
	for i, r := range body {
		d, ok := a.alpha.Lookup(r)
		if !ok {
			return Number{}, fmt.Errorf("%w %q at offset %d in %q (alphabet %s)", ErrInvalidDigit, r, i, s, a.alpha)
		}
		digits = append(digits, d)
	}
	if len(digits) == 0 {
		return a.Zero(), nil
	}
	return a.normalize(value(neg, digits)), nil
}

// MustParse is Parse that panics on error. It is meant for literals in tests
// and examples.
func (a *Algebra) MustParse(s string) Number {
	n, err := a.Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (a *Algebra) position(s Symbol) int {
	p, ok := a.positions.Position(s)
	if !ok {
		return 0
	}
	return p
}

// strip removes leading position-0 digits, keeping at least one digit.
func (a *Algebra) strip(digits []Symbol) []Symbol {
	i := 0
	for i < len(digits)-1 && a.position(digits[i]) == 0 {
		i++
	}
	return digits[i:]
}

func (a *Algebra) isZeroMag(digits []Symbol) bool {
	for _, d := range digits {
		if a.position(d) != 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether n is a value whose every digit sits at position 0.
func (a *Algebra) IsZero(n Number) bool {
	return n.kind == KindValue && a.isZeroMag(n.digits)
}

func (a *Algebra) normalize(n Number) Number {
	if n.kind != KindValue {
		return n
	}
	if len(n.digits) == 0 || a.isZeroMag(n.digits) {
		return a.Zero()
	}
	return value(n.neg, a.strip(n.digits))
}

// compareMag orders two stripped magnitudes by length, then by digit positions.
func (a *Algebra) compareMag(x, y []Symbol) int {
	x, y = a.strip(x), a.strip(y)
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := range x {
		px, py := a.position(x[i]), a.position(y[i])
		if px != py {
			if px < py {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Compare orders two values by sign and magnitude. Sentinels compare equal
// to each other and greater than every value.
func (a *Algebra) Compare(x, y Number) int {
	switch {
	case x.IsSentinel() && y.IsSentinel():
		return 0
	case x.IsSentinel():
		return 1
	case y.IsSentinel():
		return -1
	}
	xz, yz := a.IsZero(x), a.IsZero(y)
	xn, yn := x.neg && !xz, y.neg && !yz
	switch {
	case xn && !yn:
		return -1
	case !xn && yn:
		return 1
	case xn:
		return -a.compareMag(x.digits, y.digits)
	}
	return a.compareMag(x.digits, y.digits)
}

// addCell looks up a+b with carry, treating an absent cell as "no change".
func (a *Algebra) addCell(x, y Symbol) (Symbol, int) {
	s, c, ok := a.tables.AddCarry(x, y)
	if !ok {
		return x, 0
	}
	return s, c
}

// absorb adds the incoming carry to s by repeated +One walks.
func (a *Algebra) absorb(s Symbol, carry int) (Symbol, int) {
	out := 0
	for k := 0; k < carry; k++ {
		var c int
		s, c = a.addCell(s, One)
		out += c
	}
	return s, out
}

func clampCarry(c int) int {
	if c > maxCarry {
		return maxCarry
	}
	return c
}

// addMag adds two magnitudes digit by digit from the right.
func (a *Algebra) addMag(x, y []Symbol) []Symbol {
	width := max(len(x), len(y))
	out := make([]Symbol, 0, width+1)
	i, j, carry := len(x)-1, len(y)-1, 0
	for i >= 0 || j >= 0 || carry > 0 {
		if i < 0 && j < 0 && len(out) >= width+maxCarryDigits {
			break
		}
		dx, dy := Zero, Zero
		if i >= 0 {
			dx = x[i]
		}
		if j >= 0 {
			dy = y[j]
		}
		sum, c := a.addCell(dx, dy)
		sum, c2 := a.absorb(sum, carry)
		out = append(out, sum)
		carry = clampCarry(c + c2)
		i--
		j--
	}
	reverse(out)
	return a.strip(out)
}

// subMag subtracts y from x, which must not be smaller, using borrow
// arithmetic on positions in base CycleLength.
func (a *Algebra) subMag(x, y []Symbol) []Symbol {
	base := a.CycleLength()
	out := make([]Symbol, 0, len(x))
	borrow := 0
	for i, j := len(x)-1, len(y)-1; i >= 0; i, j = i-1, j-1 {
		diff := a.position(x[i]) - borrow
		if j >= 0 {
			diff -= a.position(y[j])
		}
		borrow = 0
		if diff < 0 {
			diff += base
			borrow = 1
		}
		out = append(out, a.Representative(diff))
	}
	reverse(out)
	return a.strip(out)
}

// mulMag multiplies two magnitudes with the schoolbook method.
func (a *Algebra) mulMag(x, y []Symbol) []Symbol {
	if a.isZeroMag(x) || a.isZeroMag(y) {
		return []Symbol{Zero}
	}
	base := a.CycleLength()
	result := []Symbol{Zero}
	for j := len(y) - 1; j >= 0; j-- {
		partial := make([]Symbol, 0, len(x)+2+len(y)-1-j)
		carry := 0
		for i := len(x) - 1; i >= 0; i-- {
			p, c, ok := a.tables.MultiplyCarry(x[i], y[j])
			if !ok {
				p, c = Zero, 0
			}
			p, c2 := a.absorb(p, carry)
			partial = append(partial, p)
			carry = clampCarry(c + c2)
		}
		for extra := 0; carry > 0 && extra < maxCarryDigits; extra++ {
			partial = append(partial, a.Representative(carry%base))
			carry /= base
		}
		reverse(partial)
		for k := j; k < len(y)-1; k++ {
			partial = append(partial, Zero)
		}
		result = a.addMag(result, partial)
	}
	return a.strip(result)
}

func reverse(s []Symbol) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// add is signed addition without bounds checking.
func (a *Algebra) add(x, y Number) Number {
	switch {
	case x.neg && y.neg:
		return a.normalize(value(true, a.addMag(x.digits, y.digits)))
	case x.neg:
		return a.sub(y, x.Abs())
	case y.neg:
		return a.sub(x, y.Abs())
	}
	return a.normalize(value(false, a.addMag(x.digits, y.digits)))
}

// sub is signed subtraction without bounds checking.
func (a *Algebra) sub(x, y Number) Number {
	switch {
	case !x.neg && y.neg:
		return a.add(x, y.Abs())
	case x.neg && !y.neg:
		return a.normalize(value(true, a.addMag(x.digits, y.digits)))
	case x.neg && y.neg:
		return a.sub(y.Abs(), x.Abs())
	}
	switch cmp := a.compareMag(x.digits, y.digits); {
	case cmp == 0:
		return a.Zero()
	case cmp < 0:
		return a.normalize(value(true, a.subMag(y.digits, x.digits)))
	}
	return a.normalize(value(false, a.subMag(x.digits, y.digits)))
}

func (a *Algebra) mul(x, y Number) Number {
	return a.normalize(value(x.neg != y.neg, a.mulMag(x.digits, y.digits)))
}

// Add returns x+y.
func (a *Algebra) Add(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	return a.bound(a.add(x, y))
}

// Subtract returns x-y.
func (a *Algebra) Subtract(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	return a.bound(a.sub(x, y))
}

// Multiply returns x*y.
func (a *Algebra) Multiply(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	return a.bound(a.mul(x, y))
}

// propagate returns the first sentinel operand, if any.
func propagate(x, y Number) (Number, bool) {
	if x.IsSentinel() {
		return x, true
	}
	if y.IsSentinel() {
		return y, true
	}
	return Number{}, false
}
