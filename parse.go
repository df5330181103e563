package calc

import (
	"io"
	"math/big"
	"strings"
)

// Expr is a parsed expression that can be evaluated with a context. The
// terms of an Expr are held in postfix order. An Expr is never modified after
// parsing, so it is safe to evaluate one Expr with many contexts at once.
type Expr struct {
	// rpn is the expression in postfix order. It contains only tokenNum and
	// tokenOp tokens, and every tokenNum holds a valid number.
	rpn []lexToken
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	scan := lex(src)
	e, err := shunt(scan, &p)
	if err != nil && p.wseof != "" {
		// Leave src at the start of the next expression.
		scan.drain(p.wseof)
	}
	return e, err
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// shunt converts infix tokens to postfix order using the shunting-yard
// algorithm.
func shunt(scan *lexer, p *parsectx) (*Expr, error) {
	var out, stack []lexToken
	// operand is whether the next token must begin an operand, i.e. a number
	// or an open bracket.
	operand := true
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum:
			if !operand {
				return nil, &TermError{Col: tok.pos, Term: tok.text}
			}
			if !validnum(tok.text) {
				return nil, &NumberError{Col: tok.pos, Text: tok.text}
			}
			out = append(out, tok)
			operand = false
		case tokenOp:
			if operand {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			cur := binop(tok.text)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != tokenOp || !binop(top.text).yields(cur) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
			operand = true
		case tokenOpen:
			if !operand {
				return nil, &TermError{Col: tok.pos, Term: tok.text}
			}
			stack = append(stack, tok)
		case tokenClose:
			if operand {
				return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
			}
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: tok.pos, Right: tok.text}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenOpen {
					break
				}
				out = append(out, top)
			}
		case tokenEOF:
			if operand {
				return nil, &EmptyExpressionError{Col: tok.pos}
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenOpen {
					return nil, &BracketError{Col: top.pos, Left: top.text}
				}
				out = append(out, top)
			}
			return &Expr{rpn: out}, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// validnum returns whether s is a decimal number: digits with an optional
// fraction and an optional unsigned exponent, and whether it is finite.
func validnum(s string) bool {
	var dig, dot, e, ed bool
	for _, r := range s {
		switch r {
		case '.':
			if dot || e {
				return false
			}
			dot = true
		case 'e', 'E':
			if !dig || e {
				return false
			}
			e = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
		default:
			return false
		}
	}
	if !dig || (e && !ed) {
		return false
	}
	// The exponent can still overflow.
	x, _, err := new(big.Float).Parse(s, 10)
	return err == nil && !x.IsInf()
}

// Postfix returns the terms of the expression in postfix order.
func (e *Expr) Postfix() []string {
	r := make([]string, len(e.rpn))
	for i, tok := range e.rpn {
		r[i] = tok.text
	}
	return r
}

// String formats the expression in postfix order with terms separated by
// spaces.
func (e *Expr) String() string {
	return strings.Join(e.Postfix(), " ")
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields reports whether p, on top of the operator stack, must be output
// before next is pushed.
func (p operator) yields(next operator) bool {
	if next.right {
		return p.prec > next.prec
	}
	return p.prec >= next.prec
}

// binop gets a binary operator for a token string. If there is no such
// operator, the result has a prec of 0.
func binop(text string) operator {
	switch text {
	case "+", "-":
		return operator{1, false}
	case "*", "/", "%":
		return operator{2, false}
	case "^":
		return operator{3, true}
	default:
		return operator{}
	}
}
