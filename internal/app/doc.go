// Package app wires configuration, the algebra engine and the presentation
// layer into the hassecalc run modes: REPL, single evaluation, single-digit
// lookup, batch, tables, Hasse printing, diagram export and shell completion.
package app
