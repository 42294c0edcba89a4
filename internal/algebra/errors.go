package algebra

import "errors"

// Configuration and input errors. Arithmetic never returns errors; undefined
// results are reported through sentinel Numbers instead.
var (
	// ErrSizeOutOfRange is returned when the algebra size is outside [MinSize, MaxSize].
	ErrSizeOutOfRange = errors.New("algebra size out of range")
	// ErrEmptyRule is returned when a rule string yields no successor entries.
	ErrEmptyRule = errors.New("empty successor rule")
	// ErrUnterminatedGroup is returned when a '{' group is never closed.
	ErrUnterminatedGroup = errors.New("unterminated successor group")
	// ErrRuleTooLong is returned when a rule has more entries than the alphabet has symbols.
	ErrRuleTooLong = errors.New("successor rule has more entries than symbols")
	// ErrInvalidDigit is returned when a digit string contains a symbol outside the alphabet.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrUnknownOp is returned for an unrecognized operator.
	ErrUnknownOp = errors.New("unknown operator")
	// ErrUnsupportedDigitOp is returned when an operator has no single-digit form.
	ErrUnsupportedDigitOp = errors.New("operator has no single-digit form")
	// ErrInvalidExpression is returned when an expression line cannot be split into operands and operator.
	ErrInvalidExpression = errors.New("invalid expression")
)
