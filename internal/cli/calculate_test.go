package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/config"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Size: 8, Rule: identityRule, Workers: 4, Timeout: time.Minute, BatchFile: "jobs.txt"}
	PrintExecutionConfig(cfg, mustAlgebra(t, 8, identityRule), &buf)

	out := buf.String()
	for _, s := range []string{"Execution Configuration", "Mode: batch", "4 workers", "cycle length 8"} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
}

func TestPrintAlgebraSummary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a        *algebra.Algebra
		contains []string
		absent   string
	}{
		{"identity", mustAlgebra(t, 8, identityRule), []string{"8 symbols (abcdefgh)", "rule bcdefgha", "Bounded mode: off", "hhhhhhhh", "divide=100000"}, "Unmapped"},
		{"bounded partial", mustAlgebra(t, 4, "ba", algebra.WithBounded(true)), []string{"Bounded mode: on", "cycle length 2", "Unmapped symbols: c, d"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintAlgebraSummary(tt.a, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output lacks %q:\n%s", s, out)
				}
			}
			if tt.absent != "" && strings.Contains(out, tt.absent) {
				t.Errorf("output should not contain %q:\n%s", tt.absent, out)
			}
		})
	}
}
