package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "rule")
	Short     string   // short flag without "-" (e.g., "r")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "size", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsPreset  bool     // true if values come from the preset list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "size", Short: "n", Help: "Number of symbols (2-26)", Values: []string{"2", "4", "8", "10", "16", "26"}, ValueName: "size"},
	{Long: "rule", Short: "r", Help: "Successor rule", ValueName: "rule"},
	{Long: "preset", Help: "Named preset", IsPreset: true, ValueName: "preset"},
	{Long: "presets-file", Help: "YAML presets file", IsFile: true, ValueName: "file"},
	{Long: "bounded", Help: "Enable fixed-width overflow detection"},
	{Long: "parity", Help: "Sign rule for negative powers", Values: []string{"literal", "exact"}, ValueName: "mode"},
	{Long: "expr", Short: "e", Help: "Expression to evaluate", ValueName: "expression"},
	{Long: "op", Help: "Operator for -a and -b", Values: []string{"+", "-", "*", "/", "%", "^", "gcd", "lcm"}, ValueName: "op"},
	{Long: "digit", Help: "Use the single-digit tables"},
	{Long: "batch", Help: "File of expressions", IsFile: true, ValueName: "file"},
	{Long: "workers", Help: "Concurrent batch evaluations", ValueName: "count"},
	{Long: "timeout", Help: "Maximum batch time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "table", Help: "Print an operation table", Values: TableNames(), ValueName: "table"},
	{Long: "hasse", Help: "Print the Hasse chain"},
	{Long: "diagram", Help: "Export the Hasse diagram", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Debug logging"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics", ValueName: "addr"},
	{Long: "tui", Help: "Full-screen calculator"},
	{Long: "history-size", Help: "Calculations kept in history", ValueName: "count"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - presets: Names of the available presets.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, presets []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, presets)
	case "zsh":
		return generateZshCompletion(out, presets)
	case "fish":
		return generateFishCompletion(out, presets)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, presets)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, presets []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsPreset:
			writeCase(flagPatterns(f), `COMPREPLY=( $(compgen -W "${presets}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(f.Values) > 0:
			writeCase(flagPatterns(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for hassecalc
# Add this to your ~/.bashrc or ~/.bash_completion

_hassecalc_completions() {
    local cur prev opts presets
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available presets
    presets="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _hassecalc_completions hassecalc
`, strings.Join(opts, " "), strings.Join(presets, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func flagPatterns(f FlagCompletion) []string {
	var p []string
	if f.Long != "" {
		p = append(p, "--"+f.Long)
	}
	if f.Short != "" {
		p = append(p, "-"+f.Short)
	}
	return p
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, presets []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef hassecalc

# Zsh completion script for hassecalc
# Add this to your ~/.zshrc or place in $fpath

_hassecalc() {
    local -a presets
    presets=(%s)

    _arguments -s \
%s
}

_hassecalc "$@"
`, strings.Join(presets, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsPreset:
		valueSuffix = fmt.Sprintf(":%s:($presets)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, presets []string) error {
	lines := []string{
		"# Fish completion script for hassecalc",
		"# Add this to ~/.config/fish/completions/hassecalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c hassecalc -f",
		"",
	}

	sections := []struct {
		comment string
		flags   []FlagCompletion
	}{
		{"# Help and version", filterFlags("help", "version")},
		{"# Algebra", filterFlags("size", "rule", "preset", "presets-file", "bounded", "parity")},
		{"# Evaluation", filterFlags("expr", "op", "digit", "batch", "workers", "timeout")},
		{"# Output options", filterFlags("table", "hasse", "diagram", "output", "quiet", "verbose", "no-color", "metrics-addr")},
		{"# Interactive", filterFlags("tui", "history-size")},
		{"# Completion", filterFlags("completion")},
	}

	presetList := strings.Join(presets, " ")
	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, presetList))
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(ids ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, id := range ids {
		for _, f := range flagRegistry {
			if f.Long == id {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, presetList string) string {
	parts := []string{"complete -c hassecalc"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsPreset:
		parts = append(parts, fmt.Sprintf("-xa '%s'", presetList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, presets []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	psSwitchEntry := func(f FlagCompletion, values string) string {
		return fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, values)
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		switch {
		case f.IsPreset:
			switchEntries = append(switchEntries, psSwitchEntry(f, "$hassecalcPresets"))
		case !f.IsFile && len(f.Values) > 0:
			switchEntries = append(switchEntries, psSwitchEntry(f, psList(f.Values)))
		}
	}

	script := fmt.Sprintf(`# PowerShell completion script for hassecalc
# Add this to your $PROFILE

$hassecalcPresets = %s

Register-ArgumentCompleter -CommandName 'hassecalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psList(presets), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}

// psList renders values as a PowerShell array literal.
func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}
