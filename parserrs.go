package calc

import (
	"errors"
	"strconv"
)

// ErrMalformed is the error that every InputError unwraps to. Use
// errors.Is(err, ErrMalformed) to distinguish bad input from evaluation
// errors.
var ErrMalformed = errors.New("malformed expression")

// NumberError is an error indicating text between operators which is not a
// valid finite number. It implements InputError.
type NumberError struct {
	// Col is the position of the text.
	Col int
	// Text is the text that failed to parse.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return ErrMalformed
}

// OperatorError is an error indicating an operator with a missing left
// operand, e.g. because it begins the expression. There are no unary
// operators. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator that is missing an operand.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" is missing its left operand")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrMalformed
}

// TermError is an error indicating two terms with no operator between them,
// like "2 (3)". It implements InputError.
type TermError struct {
	// Col is the position of the second term.
	Col int
	// Term is the start of the second term.
	Term string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Term))
}

func (err *TermError) Pos() int {
	return err.Col
}

func (err *TermError) Unwrap() error {
	return ErrMalformed
}

// BracketError is an error indicating unbalanced brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, or the empty string if a close bracket
	// had no matching open bracket.
	Left string
	// Right is the closing bracket, or the empty string if an open bracket
	// was never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMalformed
}

// EmptyExpressionError is an error indicating an empty subexpression. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string if
	// it was the end of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrMalformed
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*NumberError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
