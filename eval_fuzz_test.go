package calc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("3 + 4 * 2")
	f.Add("2 ^ 3 ^ 2")
	f.Add("7.5 % (0 - 2)")
	f.Add("1 / 0")
	f.Add("7 ^ 70 ^ 7000")
	f.Add("2 ^ 4000000000.5")
	f.Add("10 ^ 10 ^ 10 - 10 ^ 10 ^ 10")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := calc.EvalString(s)
		if (r == nil) == (err == nil) {
			t.Errorf("%q gave result %v and error %v", s, r, err)
		}
		if err != nil && !errors.Is(err, calc.ErrMalformed) && !errors.Is(err, calc.ErrDivisionByZero) {
			var d *calc.DomainError
			if !errors.As(err, &d) {
				t.Errorf("%q gave unexpected error %#v", s, err)
			}
		}
	})
}
