package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is any text between delimiters. It is not necessarily a
	// valid number.
	tokenNum
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%^"

// OpenBracket and CloseBracket group subexpressions.
const (
	OpenBracket  = "("
	CloseBracket = ")"
)

// delims is every rune that splits the input.
const delims = Operators + OpenBracket + CloseBracket

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var delimstrs = byteidcs(delims)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	col int
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. Any rune in wseof ends the input
// as though it were EOF. Once the input has ended, every call returns an EOF
// token.
func (l *lexer) next(wseof string) (lexToken, error) {
	if l.eof {
		return lexToken{kind: tokenEOF, pos: l.col + 1}, nil
	}
	defer l.buf.Reset()
	tok := lexToken{kind: tokenNum}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				break
			}
			return lexToken{pos: l.col}, err
		}
		if strings.ContainsRune(wseof, r) {
			l.eof = true
			break
		}
		if k := strings.IndexRune(delims, r); k >= 0 {
			if l.buf.Len() > 0 {
				// Finish the fragment first; the delimiter is the next token.
				l.unreadRune()
				break
			}
			return lexToken{text: delimstrs[k], kind: delimkind(r), pos: l.col}, nil
		}
		if l.buf.Len() == 0 {
			if unicode.IsSpace(r) {
				continue
			}
			tok.pos = l.col
		}
		l.buf.WriteRune(r)
	}
	if l.buf.Len() == 0 {
		return lexToken{kind: tokenEOF, pos: l.col + 1}, nil
	}
	tok.text = strings.TrimRightFunc(l.buf.String(), unicode.IsSpace)
	return tok, nil
}

// drain discards input up to and including the next rune in wseof, or to the
// end of the input.
func (l *lexer) drain(wseof string) {
	for !l.eof {
		r, err := l.readRune()
		if err != nil || strings.ContainsRune(wseof, r) {
			l.eof = true
		}
	}
}

func delimkind(r rune) tokenKind {
	switch string(r) {
	case OpenBracket:
		return tokenOpen
	case CloseBracket:
		return tokenClose
	default:
		return tokenOp
	}
}

// Tokenize splits an expression into operators, brackets, and the trimmed
// text between them. It does not check that the text between delimiters
// forms numbers.
func Tokenize(src string) []string {
	var toks []string
	scan := lex(strings.NewReader(src))
	for {
		// Reading from a strings.Reader never fails.
		tok, _ := scan.next("")
		if tok.kind == tokenEOF {
			return toks
		}
		toks = append(toks, tok.text)
	}
}
