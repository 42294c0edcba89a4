package algebra

// maxDigits is BoundsWidth copies of the first symbol at the highest position.
func (a *Algebra) maxDigits() []Symbol {
	top := a.Representative(a.positions.MaxPosition())
	out := make([]Symbol, a.limits.BoundsWidth)
	for i := range out {
		out[i] = top
	}
	return out
}

// MaxValue returns the largest magnitude a bounded algebra accepts.
func (a *Algebra) MaxValue() Number { return value(false, a.maxDigits()) }

// MinValue returns the negated MaxValue.
func (a *Algebra) MinValue() Number { return value(true, a.maxDigits()) }

// Exceeds reports whether n lies outside [MinValue, MaxValue]. It is always
// false when the algebra is unbounded, for zero and for sentinels.
func (a *Algebra) Exceeds(n Number) bool {
	if !a.bounded || n.IsSentinel() || a.IsZero(n) {
		return false
	}
	return a.compareMag(n.digits, a.maxDigits()) > 0
}

// bound replaces an out-of-range result with Overflow.
func (a *Algebra) bound(n Number) Number {
	if a.Exceeds(n) {
		return Overflow()
	}
	return n
}
