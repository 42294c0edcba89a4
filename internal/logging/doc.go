// Package logging provides a unified logging interface for the calculator.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends (zerolog and the
// standard library logger).
package logging
