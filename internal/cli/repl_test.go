package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/agbru/hassecalc/internal/orchestration"
)

func runREPL(t *testing.T, input string, cfg REPLConfig) (*REPL, string) {
	t.Helper()
	r := NewREPL(mustAlgebra(t, 8, identityRule), cfg)
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start()
	return r, out.String()
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"expression", "hh + bb\n", []string{"hh + bb = bba"}},
		{"compact expression", "bab/d\n", []string{"bab / d = cf remainder c"}},
		{"calc", "calc bc * d\n", []string{"bc * d = dg"}},
		{"calc usage", "calc\n", []string{"Usage: calc"}},
		{"invalid digit", "zz + b\n", []string{"Error: invalid digit"}},
		{"digit", "digit h + b\n", []string{"Result: h + b = a (carry: b)"}},
		{"digit compact", "digit e*g\n", []string{"e * g = a (carry: d)"}},
		{"digit usage", "digit h\n", []string{"Usage: digit"}},
		{"digit modulo", "digit b % c\n", []string{"no single-digit form"}},
		{"letter is not a command", "d + b\n", []string{"d + b = e"}},
		{"rule", "rule bcda\n", []string{"Rule changed to: bcda", "d (3) → (back to a)"}},
		{"bad rule", "rule b{cd\n", []string{"Invalid rule"}},
		{"rule usage", "rule\n", []string{"Usage: rule", "current: bcdefgha"}},
		{"size", "size 5 b{c,d}eea\nhasse\n", []string{"Size changed to: 5", "{c,d} (2)"}},
		{"size default rule", "size 3\nstatus\n", []string{"rule bca"}},
		{"bad size", "size 40\n", []string{"Invalid algebra"}},
		{"size usage", "size x\n", []string{"Invalid size: x"}},
		{"bounded", "bounded on\nhh * hh\n", []string{"Bounded mode: enabled", "hh * hh = "}},
		{"bounded toggle", "bounded\nbounded\n", []string{"enabled", "disabled"}},
		{"bounded usage", "bounded maybe\n", []string{"Usage: bounded"}},
		{"table", "table add\n", []string{"Addition Table (+):"}},
		{"table all", "table\n", []string{"Multiplication Carry Table"}},
		{"unknown table", "table bogus\n", []string{"unknown table"}},
		{"map", "map\n", []string{"a -> 0", "h -> 7"}},
		{"format", "format bba\n", []string{"bba = bba"}},
		{"format usage", "format\n", []string{"Usage: format"}},
		{"max min", "max\nmin\n", []string{"Max: hhhhhhhh", "Min: -hhhhhhhh"}},
		{"help", "help\n", []string{"Available commands:"}},
		{"unknown", "foo\n", []string{"Unknown command: foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, out := runREPL(t, tt.input, REPLConfig{})
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output lacks %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestREPLExit(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "quit\nhh + bb\n", REPLConfig{})
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("output lacks goodbye:\n%s", out)
	}
	if strings.Contains(out, "bba") {
		t.Error("commands after quit should not run")
	}
}

func TestREPLLastLineWithoutNewline(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "hh + bb", REPLConfig{})
	if !strings.Contains(out, "hh + bb = bba") || !strings.Contains(out, "Goodbye!") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestREPLKeepsEngineChanges(t *testing.T) {
	t.Parallel()
	r, _ := runREPL(t, "size 5 b{c,d}eea\nbounded on\n", REPLConfig{})
	a := r.Algebra()
	if a.Size() != 5 || a.CycleLength() != 4 || !a.IsBounded() {
		t.Errorf("engine = size %d cycle %d bounded %v", a.Size(), a.CycleLength(), a.IsBounded())
	}
}

func TestREPLObserver(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		seen []orchestration.ExpressionResult
	)
	cfg := REPLConfig{Observer: orchestration.ObserverFunc(func(r orchestration.ExpressionResult) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r)
	})}
	runREPL(t, "hh + bb\nzz + b\ndigit b + b\n", cfg)

	if len(seen) != 2 {
		t.Fatalf("observed %d evaluations, want 2", len(seen))
	}
	if seen[0].Err != nil || seen[0].Result.Value.String() != "bba" {
		t.Errorf("first = %+v", seen[0])
	}
	if seen[1].Err == nil {
		t.Error("second evaluation should carry its error")
	}
}

func TestREPLHistoryCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{"empty", "history\n", []string{"History is empty."}, nil},
		{"newest first", "b + b\nbab / d\nhistory\n",
			[]string{"[1] bab / d = cf remainder c\n[2] b + b = c\n"}, nil},
		{"digit entry", "digit h + b\nhistory\n", []string{"[1] h + b = a (carry: b)"}, nil},
		{"failures are not recorded", "zz + b\nhistory\n", []string{"History is empty."}, []string{"[1]"}},
		{"clear", "b + b\nhistory clear\nhistory\n", []string{"History cleared.", "History is empty."}, nil},
		{"history usage", "history all\n", []string{"Usage: history [clear]"}, nil},
		{"recall", "hh + bb\nrecall 1\n", []string{"Recall [1]: hh + bb"}, nil},
		{"recall digit", "digit e * g\nrecall 1\n", []string{"Recall [1]: e * g", "Result: e * g = a (carry: d)"}, nil},
		{"recall missing", "recall 1\n", []string{"No history entry 1 (have 0)"}, nil},
		{"recall index", "recall x\n", []string{"Invalid history index: x"}, nil},
		{"recall usage", "recall\n", []string{"Usage: recall <n>"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, out := runREPL(t, tt.input, REPLConfig{})
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output lacks %q:\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestREPLHistoryEvictsOldest(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, "b + b\nc + c\nd + d\nhistory\n", REPLConfig{HistorySize: 2})

	h := r.History()
	if h.Len() != 2 {
		t.Fatalf("history holds %d entries, want 2", h.Len())
	}
	if !strings.Contains(out, "[1] d + d = g\n[2] c + c = e\n") {
		t.Errorf("history listing wrong:\n%s", out)
	}
	if strings.Contains(out, "b + b = c\n[") || strings.Contains(out, "[3]") {
		t.Errorf("oldest entry should be evicted:\n%s", out)
	}
}

func TestREPLRecallUsesCurrentEngine(t *testing.T) {
	t.Parallel()
	// c + c is e under the 8-symbol identity chain and bb in base 3.
	r, out := runREPL(t, "c + c\nsize 3\nrecall 1\n", REPLConfig{})
	if !strings.Contains(out, "c + c = e") || !strings.Contains(out, "c + c = bb") {
		t.Errorf("recall did not re-evaluate against the new engine:\n%s", out)
	}
	if got, _ := r.History().Get(1); got.Result != "bb" {
		t.Errorf("newest entry = %+v, want result bb", got)
	}
	if r.History().Len() != 2 {
		t.Errorf("history holds %d entries, want 2", r.History().Len())
	}
}
