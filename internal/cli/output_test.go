package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/orchestration"
)

func evalLine(t *testing.T, a *algebra.Algebra, line string) orchestration.ExpressionResult {
	t.Helper()
	e, r, err := a.EvalExpression(line)
	if err != nil {
		t.Fatalf("EvalExpression(%q) error = %v", line, err)
	}
	return orchestration.ExpressionResult{Job: orchestration.Job{Line: 1, Text: line}, Expr: e, Result: r, Duration: time.Millisecond}
}

func TestFormatResult(t *testing.T) {
	t.Parallel()
	z8 := mustAlgebra(t, 8, identityRule)
	grouped := mustAlgebra(t, 5, "b{c,d}eea")

	tests := []struct {
		name      string
		a         *algebra.Algebra
		line      string
		want      string
		wantQuiet string
	}{
		{"carry", z8, "hh + bb", "hh + bb = bba", "bba"},
		{"multiply", z8, "bc*d", "bc * d = dg", "dg"},
		{"division with remainder", z8, "bab / d", "bab / d = cf remainder c", "cf c"},
		{"division by zero", z8, "b / a", "b / a = ∅ remainder ∅", "∅ ∅"},
		{"group notation", grouped, "b + b", "b + b = {c,d}", "{c,d}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := evalLine(t, tt.a, tt.line)
			if got := FormatResult(tt.a, res.Expr, res.Result); got != tt.want {
				t.Errorf("FormatResult() = %q, want %q", got, tt.want)
			}
			if got := FormatQuietResult(tt.a, res.Result); got != tt.wantQuiet {
				t.Errorf("FormatQuietResult() = %q, want %q", got, tt.wantQuiet)
			}
		})
	}
}

func TestFormatDigitResult(t *testing.T) {
	t.Parallel()
	a := mustAlgebra(t, 8, identityRule)
	tests := []struct {
		line string
		want string
	}{
		{"h + b", "h + b = a (carry: b)"},
		{"e * g", "e * g = a (carry: d)"},
		{"c - b", "c - b = b"},
		{"d ^ c", "d ^ c = b"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			e, err := algebra.ParseExpression(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			x, y, res, err := EvalDigit(a, e)
			if err != nil {
				t.Fatalf("EvalDigit(%q) error = %v", tt.line, err)
			}
			if got := FormatDigitResult(a, x, y, res); got != tt.want {
				t.Errorf("FormatDigitResult() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		for _, line := range []string{"bc + b", "b + z", "b % c"} {
			e, err := algebra.ParseExpression(line)
			if err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := EvalDigit(a, e); err == nil {
				t.Errorf("EvalDigit(%q) should fail", line)
			}
		}
	})
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	a := mustAlgebra(t, 8, identityRule)
	res := evalLine(t, a, "hh + bb")

	var buf bytes.Buffer
	DisplayResult(&buf, a, res.Expr, res.Result, res.Duration, false)
	if got := buf.String(); got != "hh + bb = bba\n" {
		t.Errorf("DisplayResult() = %q", got)
	}

	buf.Reset()
	DisplayResult(&buf, a, res.Expr, res.Result, res.Duration, true)
	for _, s := range []string{"Raw: bba", "Kind: value", "Evaluation time: 1ms"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("verbose output lacks %q:\n%s", s, buf.String())
		}
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	a := mustAlgebra(t, 8, identityRule)
	res := evalLine(t, a, "bab / d")

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, a, res, OutputConfig{Quiet: true}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "cf c\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
	})
	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "out.txt")
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, a, res, OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("output lacks save notice:\n%s", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	})
}

func TestWriteResultsToFile(t *testing.T) {
	t.Parallel()
	a := mustAlgebra(t, 8, identityRule)
	results := []orchestration.ExpressionResult{
		evalLine(t, a, "hh + bb"),
		{Job: orchestration.Job{Line: 2, Text: "zz + b"}, Err: algebra.ErrInvalidDigit},
	}
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := WriteResultsToFile(path, a, results); err != nil {
		t.Fatalf("WriteResultsToFile() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"# Hasse Algebra Results", "# Size: 8", "# Rule: bcdefgha", "# Cycle length: 8", "# Bounded: false", "hh + bb = bba", "# line 2: invalid digit"} {
		if !strings.Contains(string(content), s) {
			t.Errorf("file lacks %q:\n%s", s, content)
		}
	}

	if err := WriteResultsToFile(filepath.Join(path, "child.txt"), a, results); err == nil {
		t.Error("writing below a regular file should fail")
	}
}
