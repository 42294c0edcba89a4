package algebra

import "testing"

func TestFormat(t *testing.T) {
	t.Parallel()
	grouped := mustNew(t, 5, "b{c,d}eea")
	identity := mustNew(t, 8, identityRule)
	partial := mustNew(t, 4, "ba")

	tests := []struct {
		name string
		a    *Algebra
		in   string
		want string
	}{
		{"singletons unchanged", identity, "bba", "bba"},
		{"group expands", grouped, "d", "{c,d}"},
		{"both members expand", grouped, "bcd", "b{c,d}{c,d}"},
		{"sign passes through", grouped, "-c", "-{c,d}"},
		{"existing group copied", grouped, "b{c,d}", "b{c,d}"},
		{"undefined sentinel", grouped, UndefinedText, UndefinedText},
		{"overflow sentinel", grouped, OverflowText, OverflowText},
		{"full range sentinel", identity, "[-hhhhhhhh - hhhhhhhh]", "[-hhhhhhhh - hhhhhhhh]"},
		{"unmapped passes through", partial, "bcd", "bcd"},
		{"foreign characters", grouped, "c!z", "{c,d}!z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Format(tt.in); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNumberAfterCarry(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 8, identityRule)
	sum := a.Add(a.MustParse("hh"), a.MustParse("bb"))
	if got := a.FormatNumber(sum); got != "bba" {
		t.Errorf("FormatNumber(hh+bb) = %q, want bba", got)
	}
}

func TestGroupAndCarryText(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 5, "b{c,d}eea")
	if got := a.GroupText(2); got != "{c,d}" {
		t.Errorf("GroupText(2) = %q", got)
	}
	if got := a.CarryText(0); got != "a" {
		t.Errorf("CarryText(0) = %q", got)
	}
	if got := a.CarryText(6); got != "{c,d}" {
		t.Errorf("CarryText(6) = %q, want {c,d}", got)
	}
	if got := a.SymbolText(sym('c'), true); got != "{c,d}" {
		t.Errorf("SymbolText(c) = %q", got)
	}
	if got := a.SymbolText(NoSymbol, false); got != "?" {
		t.Errorf("SymbolText(absent) = %q", got)
	}
}
