package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb   string
		nl, echo, demo bool
		prec           int
	)
	flag.StringVar(&inname, "in", "", `input file ("-" for stdin; default is to prompt if no args given)`)
	flag.StringVar(&verb, "fmt", "", "result formatting string (default plain decimal, exponent form outside [1e-6, 1e21))")
	flag.IntVar(&prec, "p", calc.DefaultPrec, "precision of calculations in bits")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print expressions in postfix order")
	flag.BoolVar(&demo, "demo", false, "run the named-operation calculator demo")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	if demo {
		runDemo(os.Stdout, os.Stderr)
		return
	}

	r := reporter{
		ctx:  calc.NewContext(calc.Prec(uint(prec))),
		out:  os.Stdout,
		errs: os.Stderr,
		verb: verb,
		echo: echo,
	}
	if inname == "" && flag.NArg() == 0 {
		line, err := prompt("Enter an expression: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			log.Fatal(err)
		}
		r.eval(strings.NewReader(line))
		return
	}

	ok := true
	if inname != "" {
		in, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		ok = r.stream(in, nl)
	}
	for _, arg := range flag.Args() {
		ok = r.eval(strings.NewReader(arg)) && ok
	}
	if !ok {
		os.Exit(1)
	}
}

// reporter evaluates expressions and prints their results or errors.
type reporter struct {
	ctx       *calc.Context
	out, errs io.Writer
	verb      string
	echo      bool
}

// eval parses and evaluates one expression from src. The result is false if
// the expression could not be evaluated.
func (r *reporter) eval(src io.RuneScanner, opts ...calc.ParseOption) bool {
	a, err := calc.Parse(src, opts...)
	if err != nil {
		fmt.Fprintln(r.errs, "Error:", err)
		return false
	}
	if r.echo {
		fmt.Fprintf(r.out, "%v : ", a)
	}
	v := r.ctx.Eval(a)
	if v == nil {
		if r.echo {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.errs, "Error:", r.ctx.Err())
		return false
	}
	if r.verb == "" {
		fmt.Fprintln(r.out, "Result:", plain(v))
		return true
	}
	fmt.Fprintf(r.out, "Result: "+r.verb+"\n", v)
	return true
}

var (
	plainlo = big.NewFloat(1e-6)
	plainhi = big.NewFloat(1e21)
)

// plain formats v with the fewest digits that identify it, as a plain decimal
// when its magnitude is in [1e-6, 1e21) and in exponent form otherwise.
func plain(v *big.Float) string {
	a := new(big.Float).Abs(v)
	if v.Sign() == 0 || !v.IsInf() && a.Cmp(plainlo) >= 0 && a.Cmp(plainhi) < 0 {
		return v.Text('f', -1)
	}
	return v.Text('e', -1)
}

// stream evaluates the whole input as one expression, or each line as its own
// expression if nl is set. Blank lines are skipped.
func (r *reporter) stream(in io.RuneScanner, nl bool) bool {
	if !nl {
		return r.eval(in)
	}
	ok := true
	for {
		// First check whether we're done with the input.
		c, _, err := in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return ok
			}
			log.Fatal(err)
		}
		if unicode.IsSpace(c) {
			continue
		}
		in.UnreadRune()
		ok = r.eval(in, calc.StopOn('\n')) && ok
	}
}

func infile(inname string) (io.RuneScanner, error) {
	if inname == "-" {
		return bufio.NewReader(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(f), nil
}
