package algebra

import (
	"errors"
	"testing"
)

type binaryCase struct {
	name string
	x, y string
	want string
}

func runBinary(t *testing.T, a *Algebra, fn func(x, y Number) Number, tests []binaryCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fn(a.MustParse(tt.x), a.MustParse(tt.y))
			if got.String() != tt.want {
				t.Errorf("(%q, %q) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "a", false},
		{"-", "a", false},
		{"-a", "a", false},
		{"aab", "b", false},
		{"-aacb", "-cb", false},
		{"aaaa", "a", false},
		{"hgf", "hgf", false},
		{"bz", "", true},
		{"b-c", "", true},
		{"B", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			n, err := a.Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDigit) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidDigit", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if n.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, n, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	runBinary(t, a, a.Add, []binaryCase{
		{"zeros", "a", "a", "a"},
		{"simple step", "c", "b", "d"},
		{"carry into new digit", "hh", "bb", "bba"},
		{"no carry", "gg", "bb", "hh"},
		{"uneven lengths", "bcd", "h", "bdc"},
		{"both negative", "-c", "-d", "-f"},
		{"negative plus positive", "-f", "c", "-d"},
		{"positive plus negative", "c", "-f", "-d"},
		{"cancel", "-e", "e", "a"},
	})
}

func TestSubtract(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	runBinary(t, a, a.Subtract, []binaryCase{
		{"equal", "bc", "bc", "a"},
		{"simple", "f", "c", "d"},
		{"negative result", "d", "f", "-c"},
		{"borrow", "ba", "b", "h"},
		{"borrow across digits", "baa", "b", "hh"},
		{"minus negative", "c", "-d", "f"},
		{"negative minus positive", "-c", "d", "-f"},
		{"both negative", "-c", "-f", "d"},
		{"zero minus", "a", "c", "-c"},
	})
}

func TestMultiply(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	runBinary(t, a, a.Multiply, []binaryCase{
		{"zero", "a", "hh", "a"},
		{"zero right", "hh", "a", "a"},
		{"one", "b", "cd", "cd"},
		{"single digits with carry", "e", "c", "ba"},
		{"two by one", "bc", "d", "dg"},
		{"two by two", "hh", "hh", "hgab"},
		{"signs differ", "-c", "d", "-g"},
		{"both negative", "-c", "-d", "g"},
	})
}

func TestNonTrivialRuleArithmetic(t *testing.T) {
	t.Parallel()
	// Positions: a0 b1 {c,d}2 e3; radix 4.
	a := mustNew(t, 5, "b{c,d}eea")
	runBinary(t, a, a.Add, []binaryCase{
		{"wrap", "e", "b", "ba"},
		{"group member", "d", "b", "e"},
		{"two digits", "be", "b", "ca"},
	})
	if got := a.CycleLength(); got != 4 {
		t.Errorf("CycleLength() = %d, want 4", got)
	}
	// d sits at the same position as c, so they compare equal.
	if a.Compare(a.MustParse("bd"), a.MustParse("bc")) != 0 {
		t.Error("bd and bc should compare equal")
	}
	if got := a.Subtract(a.MustParse("bd"), a.MustParse("bc")); got.String() != "a" {
		t.Errorf("bd-bc = %q, want a", got)
	}
}

func TestUnmappedDigitsDegrade(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 4, "ba")
	// c and d are unmapped; arithmetic must still return values.
	for _, op := range Ops() {
		res, err := a.Eval(op, "bc", "bd")
		if err != nil {
			t.Fatalf("Eval(%v) error = %v", op, err)
		}
		_ = a.FormatNumber(res.Value)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	tests := []struct {
		x, y string
		want int
	}{
		{"b", "c", -1},
		{"ba", "h", 1},
		{"-ba", "h", -1},
		{"-b", "-c", 1},
		{"a", "-a", 0},
		{"hh", "hh", 0},
	}
	for _, tt := range tests {
		if got := a.Compare(a.MustParse(tt.x), a.MustParse(tt.y)); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if a.Compare(Undefined(), a.MustParse("hh")) != 1 {
		t.Error("sentinels should order above values")
	}
}

func TestSentinelPropagation(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	b := a.MustParse("b")
	for _, s := range []Number{Undefined(), Overflow(), a.FullRange()} {
		if got := a.Add(s, b); got.Kind() != s.Kind() {
			t.Errorf("Add(%v, b) kind = %v, want %v", s, got.Kind(), s.Kind())
		}
		if got := a.Multiply(b, s); got.Kind() != s.Kind() {
			t.Errorf("Multiply(b, %v) kind = %v, want %v", s, got.Kind(), s.Kind())
		}
		if q, r := a.DivMod(s, b); q.Kind() != s.Kind() || r.Kind() != s.Kind() {
			t.Errorf("DivMod(%v, b) kinds = %v, %v", s, q.Kind(), r.Kind())
		}
	}
}
