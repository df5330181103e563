package calc

import (
	"errors"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision of a context created without Prec. At 53
// bits, results agree with float64 arithmetic.
const DefaultPrec = 53

// ErrDivisionByZero is the error returned when a divisor is exactly zero.
var ErrDivisionByZero = errors.New("Division by zero is not allowed")

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a division by zero, then the result is nil and ctx.Err returns the
// error. A result returned from Eval is never modified by later evaluations.
func (ctx *Context) Eval(e *Expr) *big.Float {
	if ctx.err == nil && len(ctx.stack) == 1 {
		// The last result escaped to the caller.
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
	}
	ctx.stack = ctx.stack[:0]
	ctx.err = e.eval(ctx)
	if ctx.err != nil {
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("calc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("calc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
}

// Err returns the error from the last expression evaluated with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		prec:  ctx.prec,
	}
	// Loop backward so we apply the last precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Parsed numbers are only reusable at the same precision.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	for _, opt := range opts {
		switch opt.(type) {
		case nil, precopt:
			// Already done. Do nothing.
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text. The result is nil if the
// text is not a finite number.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil || r.IsInf() {
		return nil
	}
	ctx.nums[s] = r
	return r
}

// eval evaluates the expression, leaving its value as the only item on the
// context's stack.
func (e *Expr) eval(ctx *Context) (err error) {
	var op lexToken
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		// Infinite intermediate results can produce NaN.
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = &DomainError{Func: op.text, Err: nan}
	}()
	for _, tok := range e.rpn {
		switch tok.kind {
		case tokenNum:
			v := ctx.num(tok.text)
			if v == nil {
				return &NumberError{Col: tok.pos, Text: tok.text}
			}
			ctx.push().Set(v)
		case tokenOp:
			op = tok
			if len(ctx.stack) < 2 {
				return &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			r := ctx.pop()
			l := ctx.top()
			if err := apply(tok.text, l, r); err != nil {
				return err
			}
		default:
			panic("calc: invalid postfix token " + tok.String())
		}
	}
	switch len(ctx.stack) {
	case 0:
		return &EmptyExpressionError{Col: 1}
	case 1:
		return nil
	default:
		// Every term after the first lacks an operator.
		tok := e.rpn[1]
		return &TermError{Col: tok.pos, Term: tok.text}
	}
}

// apply sets l to l op r.
func apply(op string, l, r *big.Float) error {
	switch op {
	case "+":
		l.Add(l, r)
	case "-":
		l.Sub(l, r)
	case "*":
		l.Mul(l, r)
	case "/":
		if r.Sign() == 0 {
			return ErrDivisionByZero
		}
		l.Quo(l, r)
	case "%":
		if l.IsInf() {
			return &DomainError{X: new(big.Float).Copy(l), Arg: 1, Func: "%"}
		}
		if r.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "%"}
		}
		if !r.IsInf() {
			mod(l, l, r)
		}
	case "^":
		return pow(l, l, r)
	default:
		panic("calc: invalid operator " + strconv.Quote(op))
	}
	return nil
}

// intexp returns n and e such that x = n * 2^e exactly. x must be finite.
func intexp(x *big.Float) (*big.Int, int) {
	var m big.Float
	e := x.MantExp(&m)
	p := int(x.MinPrec())
	m.SetMantExp(&m, p)
	n, _ := m.Int(nil)
	return n, e - p
}

// mod sets z to the exact remainder of x/y truncated toward zero, which has
// the sign of x, and returns z. x and y must be finite and y nonzero.
func mod(z, x, y *big.Float) *big.Float {
	a, ea := intexp(x)
	b, eb := intexp(y)
	neg := a.Sign() < 0
	a.Abs(a)
	b.Abs(b)
	e := eb
	if ea < eb {
		if eb-ea >= a.BitLen() {
			// |x| < |y|
			return z.Set(x)
		}
		b.Lsh(b, uint(eb-ea))
		e = ea
	} else {
		// a * 2^(ea-eb) mod b, without shifting a by the whole difference.
		k := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(ea-eb)), b)
		a.Mul(a, k)
	}
	a.Rem(a, b)
	if neg {
		a.Neg(a)
	}
	z.SetInt(a)
	return z.SetMantExp(z, e)
}

// pow sets z to x^y.
func pow(z, x, y *big.Float) error {
	if x.IsInf() {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
	}
	if y.IsInf() {
		return &DomainError{X: new(big.Float).Copy(y), Arg: 2, Func: "^"}
	}
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact {
			return powint(z, x, n)
		}
	}
	switch x.Sign() {
	case -1:
		if !y.IsInt() {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
		}
		// Huge integer exponent. The sign follows its parity.
		i, _ := y.Int(nil)
		powpos(z, new(big.Float).Abs(x), y)
		if i.Bit(0) == 1 {
			z.Neg(z)
		}
	case 0:
		if y.Signbit() {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
		}
		z.SetInt64(0)
	default:
		powpos(z, x, y)
	}
	return nil
}

// Bounds on y*ln(x) for which x^y has an exponent in range.
var (
	powhi = big.NewFloat(big.MaxExp * math.Ln2)
	powlo = big.NewFloat(big.MinExp * math.Ln2)
)

// powpos sets z to x^y for positive x and finite y. Results beyond the
// exponent range of big.Float are set to +Inf or 0 directly, since bigfloat
// takes unbounded time to reach them.
func powpos(z, x, y *big.Float) {
	t := bigfloat.Log(new(big.Float).SetPrec(z.Prec()+64), x)
	t.Mul(t, y)
	switch {
	case t.Cmp(powhi) > 0:
		z.SetInf(false)
	case t.Cmp(powlo) < 0:
		z.SetInt64(0)
	default:
		// Pow may return a value other than its first argument, and it
		// leaves garbage there when it does.
		z.Set(bigfloat.Pow(new(big.Float).SetPrec(z.Prec()), x, y))
	}
}

// powint sets z to x^n by repeated squaring.
func powint(z, x *big.Float, n int64) error {
	if n < 0 && x.Sign() == 0 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
	}
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	z.SetInt64(1)
	for u > 0 {
		if u&1 == 1 {
			z.Mul(z, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if n < 0 {
		b.SetInt64(1)
		z.Quo(b, z)
	}
	return nil
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// EvalFloat64 evaluates a string expression at DefaultPrec and returns the
// result as a float64.
func EvalFloat64(src string) (float64, error) {
	r, err := EvalString(src)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain, like 5 % 0 or (0-8) ^ 0.5.
type DomainError struct {
	// X is the out-of-domain operand, if known.
	X *big.Float
	// Arg is the 1-based index of the operand, or 0 if unknown.
	Arg int
	// Func is the operator.
	Func string
	// Err is the underlying big.ErrNaN, if the arithmetic produced NaN.
	Err error
}

func (err *DomainError) Error() string {
	if err.X == nil {
		r := "result of " + err.Func + " is not a number"
		if err.Err != nil {
			r += ": " + err.Err.Error()
		}
		return r
	}
	r := err.X.String() + " outside domain of " + err.Func
	if err.Arg > 0 {
		r += " (operand " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return err.Err
}
