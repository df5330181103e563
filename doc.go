// Package calc implements an arbitrary-precision floating-point calculator
// for arithmetic expressions.
//
// Expressions use the binary operators + - * / % ^ and parentheses over
// decimal numbers, like "(3 + 4) * 2". Precedence is the usual one: ^ binds
// tightest and groups to the right, so "2 ^ 3 ^ 2" is 512; then * / %; then
// + -, all grouping to the left. There are no unary operators, so write
// "0 - 2" instead of "-2".
//
// Parse converts an expression to postfix order with the shunting-yard
// algorithm, and a Context evaluates the result on a value stack. Parse once
// and evaluate many times, or use EvalString for a one-off.
//
// The package also provides Add, Subtract, Multiply, Divide, Modulo, and
// Power, which fold float64 arguments from a fixed seed, and Calculate for
// named two-operand operations.
package calc
