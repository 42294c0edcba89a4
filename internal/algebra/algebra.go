package algebra

import (
	"fmt"
	"strings"
)

// Limits caps the iterative multi-digit algorithms. A capped computation
// returns its partial result instead of running unbounded.
type Limits struct {
	Divide      int // repeated subtractions in Divide
	Modulo      int // repeated subtractions in Modulo
	Power       int // multiplications in Power
	GCD         int // Euclid steps in GCD
	BoundsWidth int // digits in the bounded maximum
}

// DefaultLimits returns the stock iteration caps.
func DefaultLimits() Limits {
	return Limits{
		Divide:      100000,
		Modulo:      10000,
		Power:       10000,
		GCD:         10000,
		BoundsWidth: 8,
	}
}

// ParityMode selects how Power decides the sign of a negative base.
type ParityMode uint8

const (
	// ParityLastDigit negates when the position of the last exponent digit is odd.
	ParityLastDigit ParityMode = iota
	// ParityExact negates when the exponent's value is odd in base CycleLength.
	ParityExact
)

// ParseParity accepts "literal" (or "last-digit") and "exact".
func ParseParity(s string) (ParityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal", "last-digit":
		return ParityLastDigit, nil
	case "exact":
		return ParityExact, nil
	}
	return 0, fmt.Errorf("unknown parity mode %q (want literal or exact)", s)
}

func (p ParityMode) String() string {
	if p == ParityExact {
		return "exact"
	}
	return "literal"
}

// Algebra is an immutable, fully tabulated finite algebra.
type Algebra struct {
	alpha     Alphabet
	ruleText  string
	rule      Rule
	positions PositionMap
	tables    *Tables
	// repr[p] is the first symbol in alphabet order at position p.
	repr    []Symbol
	bounded bool
	limits  Limits
	parity  ParityMode
}

// Option customizes an Algebra at construction.
type Option func(*Algebra)

// WithBounded enables or disables overflow detection.
func WithBounded(enabled bool) Option { return func(a *Algebra) { a.bounded = enabled } }

// WithLimits replaces the iteration caps. Non-positive fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(a *Algebra) {
		d := &a.limits
		if l.Divide > 0 {
			d.Divide = l.Divide
		}
		if l.Modulo > 0 {
			d.Modulo = l.Modulo
		}
		if l.Power > 0 {
			d.Power = l.Power
		}
		if l.GCD > 0 {
			d.GCD = l.GCD
		}
		if l.BoundsWidth > 0 {
			d.BoundsWidth = l.BoundsWidth
		}
	}
}

// WithParity selects the negative-base sign rule for Power.
func WithParity(p ParityMode) Option { return func(a *Algebra) { a.parity = p } }

// New validates size and rule and builds the position map and every
// single-digit table.
func New(size int, rule string, opts ...Option) (*Algebra, error) {
	alpha, err := NewAlphabet(size)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseRule(alpha, rule)
	if err != nil {
		return nil, err
	}
	a := &Algebra{
		alpha:    alpha,
		ruleText: rule,
		rule:     parsed,
		limits:   DefaultLimits(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.positions = BuildHasse(alpha, parsed)
	a.tables = BuildTables(alpha, parsed, a.positions)
	a.repr = make([]Symbol, a.positions.CycleLength())
	for p, group := range a.positions.Levels() {
		a.repr[p] = Zero
		if len(group) > 0 {
			a.repr[p] = group[0]
		}
	}
	return a, nil
}

// WithRule builds a new algebra of the same size and options with a different rule.
func (a *Algebra) WithRule(rule string) (*Algebra, error) {
	return New(a.alpha.Size(), rule, a.options()...)
}

// WithSize builds a new algebra of a different size that reuses the rule
// text and options.
func (a *Algebra) WithSize(size int) (*Algebra, error) {
	return New(size, a.ruleText, a.options()...)
}

func (a *Algebra) options() []Option {
	return []Option{WithBounded(a.bounded), WithLimits(a.limits), WithParity(a.parity)}
}

// Bounded returns a copy of a with overflow detection set to enabled. The
// copy shares the immutable tables.
func (a *Algebra) Bounded(enabled bool) *Algebra {
	c := *a
	c.bounded = enabled
	return &c
}

// Size returns the number of symbols.
func (a *Algebra) Size() int { return a.alpha.Size() }

// Alphabet returns the element space.
func (a *Algebra) Alphabet() Alphabet { return a.alpha }

// RuleText returns the rule as it was supplied.
func (a *Algebra) RuleText() string { return a.ruleText }

// Rule returns the parsed successor rule.
func (a *Algebra) Rule() Rule { return a.rule }

// Positions returns the Hasse position map.
func (a *Algebra) Positions() PositionMap { return a.positions }

// Tables returns the single-digit tables.
func (a *Algebra) Tables() *Tables { return a.tables }

// CycleLength returns the radix of multi-digit arithmetic.
func (a *Algebra) CycleLength() int { return len(a.repr) }

// IsBounded reports whether overflow detection is on.
func (a *Algebra) IsBounded() bool { return a.bounded }

// Limits returns the iteration caps.
func (a *Algebra) Limits() Limits { return a.limits }

// Parity returns the negative-base sign rule.
func (a *Algebra) Parity() ParityMode { return a.parity }

// Zero returns the multi-digit additive identity.
func (a *Algebra) Zero() Number { return value(false, []Symbol{Zero}) }

// One returns the multi-digit multiplicative identity.
func (a *Algebra) One() Number { return value(false, []Symbol{One}) }

// FullRange returns the sentinel spanning [MinValue, MaxValue].
func (a *Algebra) FullRange() Number {
	return Number{kind: KindFullRange, span: a.maxDigits()}
}

// Representative returns the first symbol in alphabet order at position p.
func (a *Algebra) Representative(p int) Symbol {
	if p < 0 || p >= len(a.repr) {
		return Zero
	}
	return a.repr[p]
}
