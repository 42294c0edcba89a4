package cli

import (
	"os"
	"testing"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/ui"
)

func TestMain(m *testing.M) {
	ui.InitTheme(true)
	os.Exit(m.Run())
}

const identityRule = "bcdefgha"

func mustAlgebra(t testing.TB, size int, rule string, opts ...algebra.Option) *algebra.Algebra {
	t.Helper()
	a, err := algebra.New(size, rule, opts...)
	if err != nil {
		t.Fatalf("algebra.New(%d, %q) error = %v", size, rule, err)
	}
	return a
}

func sym(r rune) algebra.Symbol { return algebra.Symbol(r - 'a') }
