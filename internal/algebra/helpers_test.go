package algebra

import "testing"

// identityRule closes the chain a→b→c→d→e→f→g→h→a for size 8.
const identityRule = "bcdefgha"

func mustNew(t testing.TB, size int, rule string, opts ...Option) *Algebra {
	t.Helper()
	a, err := New(size, rule, opts...)
	if err != nil {
		t.Fatalf("New(%d, %q) error = %v", size, rule, err)
	}
	return a
}

func sym(r rune) Symbol { return Symbol(r - 'a') }
