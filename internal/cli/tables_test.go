package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseTableKinds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		want    []TableKind
		wantErr bool
	}{
		{"add", []TableKind{TableAdd}, false},
		{" MulCarry ", []TableKind{TableMultiplyCarry}, false},
		{"lcm", []TableKind{TableLCM}, false},
		{"all", AllTables(), false},
		{"modulo", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTableKinds(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTableKinds(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseTableKinds(%q) = %v, want %v", tt.name, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("kind %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	t.Parallel()
	names := TableNames()
	if len(names) != len(AllTables())+1 || names[len(names)-1] != "all" {
		t.Errorf("TableNames() = %v", names)
	}
	for _, k := range AllTables() {
		if k.Title() == "" || k.String() == "" {
			t.Errorf("kind %d has no name or title", k)
		}
	}
}

func TestFormatTableCell(t *testing.T) {
	t.Parallel()
	z8 := mustAlgebra(t, 8, identityRule)
	grouped := mustAlgebra(t, 5, "b{c,d}eea")
	partial := mustAlgebra(t, 4, "ba")

	tests := []struct {
		name string
		kind TableKind
		x, y rune
		want string
	}{
		{"add", TableAdd, 'c', 'b', "d"},
		{"multiply", TableMultiply, 'c', 'd', "g"},
		{"subtract", TableSubtract, 'c', 'b', "b"},
		{"divide", TableDivide, 'g', 'c', "d"},
		{"power", TablePower, 'd', 'c', "b"},
		{"gcd", TableGCD, 'c', 'e', "h"},
		{"lcm", TableLCM, 'c', 'e', "e"},
		{"add carry wraps", TableAddCarry, 'h', 'b', "b"},
		{"add carry none", TableAddCarry, 'b', 'b', "a"},
		{"multiply carry", TableMultiplyCarry, 'e', 'g', "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatTableCell(z8, tt.kind, sym(tt.x), sym(tt.y)); got != tt.want {
				t.Errorf("%s %c %c = %q, want %q", tt.kind, tt.x, tt.y, got, tt.want)
			}
		})
	}

	t.Run("group result", func(t *testing.T) {
		t.Parallel()
		if got := FormatTableCell(grouped, TableAdd, sym('b'), sym('b')); got != "{c,d}" {
			t.Errorf("b+b = %q, want {c,d}", got)
		}
	})
	t.Run("unmapped operand", func(t *testing.T) {
		t.Parallel()
		if got := FormatTableCell(partial, TableAdd, sym('b'), sym('c')); got != "?" {
			t.Errorf("b+c = %q, want ?", got)
		}
		if got := FormatTableCell(partial, TableAddCarry, sym('b'), sym('c')); got != "?" {
			t.Errorf("carry b+c = %q, want ?", got)
		}
	})
}

func TestFormatTable(t *testing.T) {
	t.Parallel()
	a := mustAlgebra(t, 4, "bcda")
	out := FormatTable(a, TableAdd)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Top border, header, header separator, one row per symbol, bottom border.
	if len(lines) != a.Size()+4 {
		t.Fatalf("FormatTable has %d lines, want %d:\n%s", len(lines), a.Size()+4, out)
	}
	for _, s := range []string{"+", "a", "b", "c", "d"} {
		if !strings.Contains(lines[1], s) {
			t.Errorf("header %q lacks %q", lines[1], s)
		}
	}
}

func TestDisplayTables(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayTables(&buf, mustAlgebra(t, 4, "bcda"), AllTables())
	out := buf.String()
	for _, k := range AllTables() {
		if !strings.Contains(out, k.Title()) {
			t.Errorf("output lacks %q", k.Title())
		}
	}
	if !strings.Contains(out, "Addition Table (+):") {
		t.Errorf("output lacks the addition heading:\n%s", out)
	}
}
