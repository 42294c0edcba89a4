package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	presets := []string{"identity8", "grouped5"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"hassecalc", "--rule", "--table", "mulcarry", "identity8", "--tui"}},
		{"zsh", []string{"#compdef hassecalc", "--bounded", "grouped5"}},
		{"fish", []string{"complete -c hassecalc", "-l parity", "exact", "# Interactive", "-l history-size"}},
		{"powershell", []string{"Register-ArgumentCompleter", "hassecalc", "--diagram"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, presets); err != nil {
				t.Fatalf("GenerateCompletion(%q) error = %v", tt.shell, err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s script lacks %q", tt.shell, s)
				}
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := GenerateCompletion(&buf, "tcsh", presets); err == nil {
			t.Error("tcsh should be rejected")
		}
	})
}
