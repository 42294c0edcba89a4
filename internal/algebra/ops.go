package algebra

import (
	"fmt"
	"strings"
)

// Op names a binary operation.
type Op uint8

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
	OpGCD
	OpLCM
)

var opNames = [...]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulo:   "%",
	OpPower:    "^",
	OpGCD:      "gcd",
	OpLCM:      "lcm",
}

var opAliases = map[string]Op{
	"+": OpAdd, "add": OpAdd,
	"-": OpSubtract, "sub": OpSubtract, "subtract": OpSubtract,
	"*": OpMultiply, "x": OpMultiply, "mul": OpMultiply, "multiply": OpMultiply,
	"/": OpDivide, "div": OpDivide, "divide": OpDivide,
	"%": OpModulo, "mod": OpModulo, "modulo": OpModulo,
	"^": OpPower, "pow": OpPower, "power": OpPower,
	"gcd": OpGCD,
	"lcm": OpLCM,
}

// Ops returns every operation in display order.
func Ops() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo, OpPower, OpGCD, OpLCM}
}

// ParseOp resolves an operator symbol or name such as "+", "mul" or "gcd".
func ParseOp(s string) (Op, error) {
	if op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOp, s)
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Name returns a lowercase identifier suitable for metric labels.
func (o Op) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpModulo:
		return "modulo"
	case OpPower:
		return "power"
	case OpGCD:
		return "gcd"
	case OpLCM:
		return "lcm"
	}
	return o.String()
}

// Result is the outcome of a multi-digit operation. Remainder is set for
// OpDivide only.
type Result struct {
	Op           Op
	Value        Number
	Remainder    Number
	HasRemainder bool
}

// Apply evaluates op on two parsed operands.
func (a *Algebra) Apply(op Op, x, y Number) (Result, error) {
	res := Result{Op: op}
	switch op {
	case OpAdd:
		res.Value = a.Add(x, y)
	case OpSubtract:
		res.Value = a.Subtract(x, y)
	case OpMultiply:
		res.Value = a.Multiply(x, y)
	case OpDivide:
		res.Value, res.Remainder = a.DivMod(x, y)
		res.HasRemainder = true
	case OpModulo:
		res.Value = a.Modulo(x, y)
	case OpPower:
		res.Value = a.Power(x, y)
	case OpGCD:
		res.Value = a.GCD(x, y)
	case OpLCM:
		res.Value = a.LCM(x, y)
	default:
		return Result{}, fmt.Errorf("%w %v", ErrUnknownOp, op)
	}
	return res, nil
}

// Eval parses both operands and applies op.
func (a *Algebra) Eval(op Op, x, y string) (Result, error) {
	nx, err := a.Parse(x)
	if err != nil {
		return Result{}, err
	}
	ny, err := a.Parse(y)
	if err != nil {
		return Result{}, err
	}
	return a.Apply(op, nx, ny)
}

// DigitResult is the outcome of a single-digit operation. Carry is
// meaningful when HasCarry is set (OpAdd and OpMultiply).
type DigitResult struct {
	Op       Op
	Value    Symbol
	Defined  bool
	Carry    int
	HasCarry bool
}

// ParseSymbol converts a one-letter string into a symbol of the alphabet.
func (a *Algebra) ParseSymbol(s string) (Symbol, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 1 {
		return NoSymbol, fmt.Errorf("%w %q: want a single symbol of %s", ErrInvalidDigit, s, a.alpha)
	}
	sym, ok := a.alpha.Lookup(r[0])
	if !ok {
		return NoSymbol, fmt.Errorf("%w %q (alphabet %s)", ErrInvalidDigit, s, a.alpha)
	}
	return sym, nil
}

// Digit looks up op in the single-digit tables. OpModulo has no
// single-digit form.
func (a *Algebra) Digit(op Op, x, y Symbol) (DigitResult, error) {
	t := a.tables
	res := DigitResult{Op: op}
	switch op {
	case OpAdd:
		res.Value, res.Carry, res.Defined = t.AddCarry(x, y)
		res.HasCarry = true
	case OpMultiply:
		res.Value, res.Carry, res.Defined = t.MultiplyCarry(x, y)
		res.HasCarry = true
	case OpSubtract:
		res.Value, res.Defined = t.Subtract(x, y)
	case OpDivide:
		res.Value, res.Defined = t.Divide(x, y)
	case OpPower:
		res.Value, res.Defined = t.Power(x, y)
	case OpGCD:
		res.Value, res.Defined = t.GCD(x, y)
	case OpLCM:
		res.Value, res.Defined = t.LCM(x, y)
	case OpModulo:
		return DigitResult{}, fmt.Errorf("%w: %v", ErrUnsupportedDigitOp, op)
	default:
		return DigitResult{}, fmt.Errorf("%w %v", ErrUnknownOp, op)
	}
	return res, nil
}

// DigitOps lists the operations that have a single-digit table.
func DigitOps() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpGCD, OpLCM}
}
