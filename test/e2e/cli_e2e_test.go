package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	// Build the binary
	tmpDir := t.TempDir()
	binName := "hassecalc"
	if runtime.GOOS == "windows" {
		binName = "hassecalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/hassecalc")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build hassecalc: %v", err)
	}

	batchFile := filepath.Join(tmpDir, "jobs.txt")
	if err := os.WriteFile(batchFile, []byte("# sample\nhh + bb\nbab / d\nb / a\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // substring match
		wantCode int
	}{
		{
			name:    "Addition with carry",
			args:    []string{"-e", "hh + bb"},
			wantOut: "hh + bb = bba",
		},
		{
			name:    "Division with remainder",
			args:    []string{"-e", "bab / d"},
			wantOut: "cf remainder c",
		},
		{
			name:    "Quiet multiplication",
			args:    []string{"--quiet", "bc*d"},
			wantOut: "dg",
		},
		{
			name:    "Division by zero",
			args:    []string{"-e", "b / a"},
			wantOut: "∅",
		},
		{
			name:    "Grouped rule",
			args:    []string{"-n", "5", "-r", "b{c,d}eea", "--hasse"},
			wantOut: "{c,d} (2)",
		},
		{
			name:    "Single-digit carry",
			args:    []string{"--digit", "-e", "h + b"},
			wantOut: "(carry: b)",
		},
		{
			name:    "Preset",
			args:    []string{"--preset", "binary", "-e", "b + b"},
			wantOut: "b + b = ba",
		},
		{
			name:    "Table",
			args:    []string{"--table", "mul", "-n", "4"},
			wantOut: "Multiplication Table",
		},
		{
			name:    "Batch",
			args:    []string{"--batch", batchFile, "-q"},
			wantOut: "cf c",
		},
		{
			name:    "Batch from stdin",
			args:    []string{"--batch", "-"},
			stdin:   "hh + bb\n",
			wantOut: "Batch Summary",
		},
		{
			name:    "REPL",
			stdin:   "hh + bb\nexit\n",
			wantOut: "Goodbye",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "hassecalc",
		},
		{
			name:    "Completion",
			args:    []string{"--completion", "bash"},
			wantOut: "complete -F _hassecalc_completions hassecalc",
		},
		{
			name:     "Invalid digit",
			args:     []string{"-e", "zz + b"},
			wantOut:  "invalid digit",
			wantCode: 3,
		},
		{
			name:     "Size out of range",
			args:     []string{"-n", "30"},
			wantOut:  "out of range",
			wantCode: 4,
		},
		{
			name:     "Unterminated group",
			args:     []string{"-r", "b{cd", "-e", "b + b"},
			wantOut:  "unterminated",
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdin = strings.NewReader(tt.stdin)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Command failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("Exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
