package algebra

import (
	"fmt"
	"strings"
)

// Kind distinguishes ordinary values from the sentinel results.
type Kind uint8

const (
	// KindValue is an ordinary signed digit string.
	KindValue Kind = iota
	// KindUndefined is the result of dividing a nonzero value by zero.
	KindUndefined
	// KindFullRange is the result of 0/0 or x/x: every value in range qualifies.
	KindFullRange
	// KindOverflow is a bounded result whose magnitude exceeds the maximum.
	KindOverflow
)

// Sentinel renderings.
const (
	UndefinedText = "∅"
	OverflowText  = "overflow"
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindUndefined:
		return "undefined"
	case KindFullRange:
		return "full-range"
	case KindOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Number is a signed multi-digit value or a sentinel. Digits are stored most
// significant first. The zero value is not a valid Number; use Algebra.Zero.
type Number struct {
	kind   Kind
	neg    bool
	digits []Symbol
	// span holds the bound magnitude rendered by a FullRange sentinel.
	span []Symbol
}

// Undefined returns the division-by-zero sentinel.
func Undefined() Number { return Number{kind: KindUndefined} }

// Overflow returns the out-of-bounds sentinel.
func Overflow() Number { return Number{kind: KindOverflow} }

func value(neg bool, digits []Symbol) Number {
	return Number{kind: KindValue, neg: neg, digits: digits}
}

// Kind returns the variant of n.
func (n Number) Kind() Kind { return n.kind }

// IsSentinel reports whether n is Undefined, FullRange or Overflow.
func (n Number) IsSentinel() bool { return n.kind != KindValue }

// Negative reports whether n is a negative value.
func (n Number) Negative() bool { return n.kind == KindValue && n.neg }

// Digits returns a copy of the digits of a value, most significant first.
func (n Number) Digits() []Symbol { return append([]Symbol(nil), n.digits...) }

// Abs returns n without its sign. Sentinels are returned unchanged.
func (n Number) Abs() Number {
	if n.kind != KindValue {
		return n
	}
	return value(false, n.digits)
}

// Neg returns n with its sign flipped. Sentinels are returned unchanged.
func (n Number) Neg() Number {
	if n.kind != KindValue {
		return n
	}
	return value(!n.neg, n.digits)
}

// Equal reports whether n and m have the same kind, sign and digits.
func (n Number) Equal(m Number) bool {
	if n.kind != m.kind {
		return false
	}
	if n.kind != KindValue {
		return true
	}
	return n.neg == m.neg && equalDigits(n.digits, m.digits)
}

func equalDigits(x, y []Symbol) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// String renders n as raw symbols ("-bca"), or as its sentinel text.
func (n Number) String() string {
	switch n.kind {
	case KindUndefined:
		return UndefinedText
	case KindOverflow:
		return OverflowText
	case KindFullRange:
		hi := digitText(n.span)
		return "[-" + hi + " - " + hi + "]"
	}
	var sb strings.Builder
	if n.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(digitText(n.digits))
	return sb.String()
}

func digitText(digits []Symbol) string {
	buf := make([]rune, len(digits))
	for i, d := range digits {
		buf[i] = d.Rune()
	}
	return string(buf)
}
