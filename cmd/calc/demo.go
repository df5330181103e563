package main

import (
	"fmt"
	"io"

	"github.com/zephyrtronium/calc"
)

var demoCalcs = []struct {
	a, b float64
	op   string
}{
	{5, 3, "add"},
	{10, 4, "subtract"},
	{6, 7, "multiply"},
	{15, 3, "divide"},
	{10.5, 2.5, "add"},
	{7.75, 3.25, "subtract"},
	{2.5, 2.5, "multiply"},
	{10.8, 3, "divide"},
	{10, 0, "divide"},
}

// runDemo prints a fixed list of named-operation calculations.
func runDemo(out, errs io.Writer) {
	fmt.Fprintln(out, "===== Calculator Demo =====")
	for _, c := range demoCalcs {
		s, err := calc.Describe(c.a, c.b, c.op)
		if err != nil {
			fmt.Fprintln(errs, "Error:", err)
			continue
		}
		fmt.Fprintln(out, s)
	}
}
