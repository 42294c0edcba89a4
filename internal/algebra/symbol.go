package algebra

import "fmt"

// Alphabet bounds.
const (
	MinSize = 2
	MaxSize = 26
)

// Symbol is the index of a digit in an Alphabet: 0 is 'a', 1 is 'b', and so on.
type Symbol int

const (
	// NoSymbol marks an absent table cell or an unknown digit.
	NoSymbol Symbol = -1
	// Zero is the additive identity ('a').
	Zero Symbol = 0
	// One is the multiplicative identity ('b').
	One Symbol = 1
)

// Rune returns the letter for s.
func (s Symbol) Rune() rune {
	if s < 0 || s >= MaxSize {
		return '?'
	}
	return rune('a' + int(s))
}

// String returns the letter for s as a string.
func (s Symbol) String() string { return string(s.Rune()) }

// Alphabet is the ordered element space of an algebra: the first Size
// lowercase letters.
type Alphabet struct {
	size int
}

// NewAlphabet returns the alphabet of the given size. Sizes outside
// [MinSize, MaxSize] are rejected.
func NewAlphabet(size int) (Alphabet, error) {
	if size < MinSize || size > MaxSize {
		return Alphabet{}, fmt.Errorf("%w: %d (must be between %d and %d)", ErrSizeOutOfRange, size, MinSize, MaxSize)
	}
	return Alphabet{size: size}, nil
}

// Size returns the number of symbols.
func (a Alphabet) Size() int { return a.size }

// Last returns the symbol with the highest index.
func (a Alphabet) Last() Symbol { return Symbol(a.size - 1) }

// Contains reports whether s belongs to the alphabet.
func (a Alphabet) Contains(s Symbol) bool { return s >= 0 && int(s) < a.size }

// Lookup maps a letter to its symbol.
func (a Alphabet) Lookup(r rune) (Symbol, bool) {
	s := Symbol(r - 'a')
	if r < 'a' || !a.Contains(s) {
		return NoSymbol, false
	}
	return s, true
}

// Symbols returns every symbol in alphabet order.
func (a Alphabet) Symbols() []Symbol {
	out := make([]Symbol, a.size)
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}

// String returns the alphabet as a contiguous string, e.g. "abcdefgh".
func (a Alphabet) String() string {
	buf := make([]rune, a.size)
	for i := range buf {
		buf[i] = Symbol(i).Rune()
	}
	return string(buf)
}
