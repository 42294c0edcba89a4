package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatHasseChain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		size int
		rule string
		want string
	}{
		{4, "bcda", "a (0) → b (1) → c (2) → d (3) → (back to a)"},
		{5, "b{c,d}eea", "a (0) → b (1) → {c,d} (2) → e (3) → (back to a)"},
		{4, "ba", "a (0) → b (1) → (back to a)"},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			t.Parallel()
			if got := FormatHasseChain(mustAlgebra(t, tt.size, tt.rule)); got != tt.want {
				t.Errorf("FormatHasseChain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPositionMap(t *testing.T) {
	t.Parallel()
	got := FormatPositionMap(mustAlgebra(t, 4, "ba"))
	want := "a -> 0\nb -> 1\nc -> -\nd -> -\n"
	if got != want {
		t.Errorf("FormatPositionMap() = %q, want %q", got, want)
	}
}

func TestDisplayHasse(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayHasse(&buf, mustAlgebra(t, 4, "ba"))
	out := buf.String()
	for _, s := range []string{"Hasse Diagram", "ordering by +1 steps from 'a'", "Cycle length: 2", "Unmapped: c, d"} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
}
