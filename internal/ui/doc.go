// Package ui provides theme and color support for the calculator's terminal
// output. It defines the ANSI color schemes used by the REPL and the result
// printers, and the lipgloss styles used to render operation tables.
//
// This package is a shared dependency for presentation code only; the algebra
// engine never imports it.
package ui
