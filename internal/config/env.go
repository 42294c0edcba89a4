// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Flag and Environment Helpers
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Short and long aliases are registered as separate flags.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// explicit reports whether a setting came from the command line or the
// environment, so that a preset must not override it.
func explicit(fs *flag.FlagSet, envKey string, flags ...string) bool {
	return isFlagSetAny(fs, flags...) || os.Getenv(EnvPrefix+envKey) != ""
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the HASSECALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intSetter(set func(*AppConfig, int)) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			set(c, parsed)
		}
	}
}

// envOverrides is the declarative table of all environment variable overrides.
// Run-mode flags (--expr, --batch, --table, --completion, ...) have no
// environment form.
var envOverrides = []envOverride{
	// Numeric overrides
	{"SIZE", []string{"size", "n"}, intSetter(func(c *AppConfig, v int) { c.Size = v })},
	{"WORKERS", []string{"workers"}, intSetter(func(c *AppConfig, v int) { c.Workers = v })},
	{"DIV_LIMIT", []string{"div-limit"}, intSetter(func(c *AppConfig, v int) { c.DivLimit = v })},
	{"MOD_LIMIT", []string{"mod-limit"}, intSetter(func(c *AppConfig, v int) { c.ModLimit = v })},
	{"POW_LIMIT", []string{"pow-limit"}, intSetter(func(c *AppConfig, v int) { c.PowLimit = v })},
	{"GCD_LIMIT", []string{"gcd-limit"}, intSetter(func(c *AppConfig, v int) { c.GCDLimit = v })},
	{"BOUNDS_WIDTH", []string{"bounds-width"}, intSetter(func(c *AppConfig, v int) { c.BoundsWidth = v })},
	{"HISTORY_SIZE", []string{"history-size"}, intSetter(func(c *AppConfig, v int) { c.HistorySize = v })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"RULE", []string{"rule", "r"}, func(c *AppConfig, v string) { c.Rule = v }},
	{"PRESET", []string{"preset"}, func(c *AppConfig, v string) { c.Preset = v }},
	{"PRESETS", []string{"presets-file"}, func(c *AppConfig, v string) { c.PresetsFile = v }},
	{"PARITY", []string{"parity"}, func(c *AppConfig, v string) { c.Parity = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},

	// Boolean overrides
	{"BOUNDED", []string{"bounded"}, func(c *AppConfig, v string) { c.Bounded = parseBoolEnv(v, c.Bounded) }},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
