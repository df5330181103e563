package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoArguments is the error returned by Divide when it is given nothing to
// divide.
var ErrNoArguments = errors.New("calc: Divide needs at least one argument")

func fold(seed float64, xs []float64, f func(acc, x float64) float64) float64 {
	acc := seed
	for _, x := range xs {
		acc = f(acc, x)
	}
	return acc
}

// Add returns the sum of its arguments, or 0 if there are none.
func Add(xs ...float64) float64 {
	return fold(0, xs, func(acc, x float64) float64 { return acc + x })
}

// Subtract subtracts each of its arguments in turn from 0. Note that the first
// argument is subtracted too, so Subtract(5, 3) is -8.
func Subtract(xs ...float64) float64 {
	return fold(0, xs, func(acc, x float64) float64 { return acc - x })
}

// Multiply returns the product of its arguments, or 1 if there are none.
func Multiply(xs ...float64) float64 {
	return fold(1, xs, func(acc, x float64) float64 { return acc * x })
}

// Divide divides its first argument by each of the rest in turn. It returns
// ErrDivisionByZero if any divisor is zero.
func Divide(xs ...float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrNoArguments
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return 0, ErrDivisionByZero
		}
		acc /= x
	}
	return acc, nil
}

// Modulo takes the remainder of 1 by each of its arguments in turn. The
// remainder has the sign of the dividend.
func Modulo(xs ...float64) float64 {
	return fold(1, xs, math.Mod)
}

// Power raises 1 to each of its arguments in turn.
func Power(xs ...float64) float64 {
	return fold(1, xs, math.Pow)
}

// operation is a named binary operation of the fixed-operation calculator.
type operation struct {
	sym string
	f   func(a, b float64) (float64, error)
}

var operations = map[string]operation{
	"add":      {"+", func(a, b float64) (float64, error) { return a + b, nil }},
	"subtract": {"-", func(a, b float64) (float64, error) { return a - b, nil }},
	"multiply": {"×", func(a, b float64) (float64, error) { return a * b, nil }},
	"divide": {"÷", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}},
}

// Calculate applies a named operation to two numbers. The operations are add,
// subtract, multiply, and divide.
func Calculate(a, b float64, op string) (float64, error) {
	o, ok := operations[op]
	if !ok {
		return 0, &UnsupportedOperationError{Op: op}
	}
	return o.f(a, b)
}

// Describe calculates a named operation and formats it as an equation, like
// "6 × 7 = 42".
func Describe(a, b float64, op string) (string, error) {
	r, err := Calculate(a, b, op)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v %s %v = %v", a, operations[op].sym, b, r), nil
}

// UnsupportedOperationError is an error returned by Calculate for an unknown
// operation name.
type UnsupportedOperationError struct {
	// Op is the operation name.
	Op string
}

func (err *UnsupportedOperationError) Error() string {
	return "Unsupported operation: " + err.Op
}
