package algebra

// divMag divides magnitudes by repeated subtraction. It reports whether the
// iteration cap cut the loop short.
func (a *Algebra) divMag(x, y []Symbol) (q, r []Symbol, capped bool) {
	q, r = []Symbol{Zero}, x
	one := []Symbol{One}
	for iter := 0; a.compareMag(r, y) >= 0 && !a.isZeroMag(r); iter++ {
		if iter >= a.limits.Divide {
			return q, r, true
		}
		r = a.subMag(r, y)
		q = a.addMag(q, one)
	}
	return q, r, false
}

// DivMod returns the quotient and remainder of x/y.
//
// 0/0 and x/±x yield FullRange with a zero remainder; a nonzero value over
// zero yields Undefined for both. Otherwise the quotient is floored so that
// q*y + r = x, and a nonzero remainder carries the sign of the divisor.
func (a *Algebra) DivMod(x, y Number) (q, r Number) {
	if s, ok := propagate(x, y); ok {
		return s, s
	}
	xz, yz := a.IsZero(x), a.IsZero(y)
	switch {
	case xz && yz:
		return a.FullRange(), a.Zero()
	case yz:
		return Undefined(), Undefined()
	}
	cmp := a.compareMag(x.digits, y.digits)
	if cmp == 0 {
		return a.FullRange(), a.Zero()
	}

	qm, rm := []Symbol{Zero}, x.digits
	if cmp > 0 {
		qm, rm, _ = a.divMag(x.digits, y.digits)
	}
	quo := a.normalize(value(false, qm))
	rem := a.normalize(value(false, rm))

	remZero := a.IsZero(rem)
	switch {
	case x.neg != y.neg && !remZero:
		quo = a.normalize(value(true, a.addMag(quo.digits, []Symbol{One})))
		rem = a.normalize(value(y.neg, a.subMag(y.digits, rem.digits)))
	case x.neg != y.neg:
		quo = quo.Neg()
	case x.neg && !remZero:
		rem = rem.Neg()
	}
	return a.bound(a.normalize(quo)), a.bound(rem)
}

// Divide returns the quotient of x/y. See DivMod.
func (a *Algebra) Divide(x, y Number) Number {
	q, _ := a.DivMod(x, y)
	return q
}

// Remainder returns the remainder of x/y. See DivMod.
func (a *Algebra) Remainder(x, y Number) Number {
	_, r := a.DivMod(x, y)
	return r
}

func (a *Algebra) modMag(x, y []Symbol) []Symbol {
	r := x
	for iter := 0; iter < a.limits.Modulo && a.compareMag(r, y) >= 0 && !a.isZeroMag(r); iter++ {
		next := a.subMag(r, y)
		if equalDigits(next, r) {
			break
		}
		r = next
	}
	return r
}

// Modulo returns |x| reduced by |y| until it is smaller. The result is
// never negative. Modulo by zero returns x unchanged.
func (a *Algebra) Modulo(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	if a.IsZero(y) {
		return a.bound(x)
	}
	return a.bound(a.normalize(value(false, a.modMag(x.digits, y.digits))))
}

// Power returns base raised to exp by repeated multiplication.
//
// A negative exponent yields zero. A negative base is negated when the
// exponent is odd under the algebra's ParityMode.
func (a *Algebra) Power(base, exp Number) Number {
	if s, ok := propagate(base, exp); ok {
		return s
	}
	switch {
	case exp.neg && !a.IsZero(exp):
		return a.Zero()
	case a.IsZero(exp):
		return a.One()
	case a.IsZero(base):
		return a.Zero()
	case len(exp.digits) == 1 && exp.digits[0] == One:
		return a.bound(base)
	}

	result := []Symbol{One}
	remaining := exp.Abs()
	one := a.One()
	for iter := 0; iter < a.limits.Power && !a.IsZero(remaining); iter++ {
		result = a.mulMag(result, base.digits)
		remaining = a.sub(remaining, one)
		if remaining.neg {
			break
		}
	}
	neg := base.neg && a.oddExponent(exp.digits)
	return a.bound(a.normalize(value(neg, result)))
}

func (a *Algebra) oddExponent(digits []Symbol) bool {
	last := a.position(digits[len(digits)-1])
	if a.parity == ParityLastDigit {
		return last%2 == 1
	}
	// base^k is odd for every k when the base is odd, and only for k=0 otherwise.
	sum := last
	if a.CycleLength()%2 == 1 {
		for _, d := range digits[:len(digits)-1] {
			sum += a.position(d)
		}
	}
	return sum%2 == 1
}

func (a *Algebra) gcdMag(x, y []Symbol) []Symbol {
	if a.isZeroMag(x) {
		return y
	}
	if a.isZeroMag(y) {
		return x
	}
	for iter := 0; iter < a.limits.GCD && !a.isZeroMag(y); iter++ {
		x, y = y, a.modMag(x, y)
	}
	return x
}

// GCD returns the greatest common divisor of |x| and |y| by Euclid's method.
func (a *Algebra) GCD(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	return a.bound(a.normalize(value(false, a.gcdMag(x.digits, y.digits))))
}

// LCM returns |x|*|y| / gcd(x, y), discarding the remainder. Zero operands
// yield zero.
func (a *Algebra) LCM(x, y Number) Number {
	if s, ok := propagate(x, y); ok {
		return s
	}
	if a.IsZero(x) || a.IsZero(y) {
		return a.Zero()
	}
	product := a.mulMag(x.digits, y.digits)
	g := a.gcdMag(x.digits, y.digits)
	if a.compareMag(product, g) == 0 {
		return a.bound(a.normalize(value(false, product)))
	}
	q, _, _ := a.divMag(product, g)
	return a.bound(a.normalize(value(false, q)))
}
