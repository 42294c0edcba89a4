package algebra

import (
	"fmt"
	"strings"
)

// Expression is a parsed "<lhs> <op> <rhs>" line.
type Expression struct {
	Left  string
	Op    Op
	Right string
}

func (e Expression) String() string {
	return e.Left + " " + e.Op.String() + " " + e.Right
}

// ParseExpression splits a line into two operands and an operator. Tokens
// may be separated by whitespace ("bc * d", "bc gcd d"); symbolic operators
// may also be written without spaces ("bc*d"). A '-' directly before an
// operand is its sign, so "b--c" is b minus -c.
func ParseExpression(line string) (Expression, error) {
	line = strings.TrimSpace(line)
	if fields := strings.Fields(line); len(fields) == 3 {
		op, err := ParseOp(fields[1])
		if err != nil {
			return Expression{}, err
		}
		return Expression{Left: fields[0], Op: op, Right: fields[2]}, nil
	}
	compact := strings.Join(strings.Fields(line), "")
	// Skip a sign on the left operand before looking for the operator.
	for i := 1; i < len(compact); i++ {
		c := compact[i]
		if !strings.ContainsRune("+-*/%^", rune(c)) {
			continue
		}
		op, _ := ParseOp(string(c))
		left, right := compact[:i], compact[i+1:]
		if right == "" {
			break
		}
		return Expression{Left: left, Op: op, Right: right}, nil
	}
	return Expression{}, fmt.Errorf("%w %q: want <lhs> <op> <rhs>", ErrInvalidExpression, line)
}

// EvalExpression parses line and evaluates it.
func (a *Algebra) EvalExpression(line string) (Expression, Result, error) {
	e, err := ParseExpression(line)
	if err != nil {
		return Expression{}, Result{}, err
	}
	res, err := a.Eval(e.Op, e.Left, e.Right)
	return e, res, err
}
