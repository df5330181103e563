package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestFolds(t *testing.T) {
	cases := []struct {
		name string
		f    func(...float64) float64
		xs   []float64
		r    float64
	}{
		{"add-none", calc.Add, nil, 0},
		{"add", calc.Add, []float64{1, 2, 3}, 6},
		{"add-frac", calc.Add, []float64{10.5, 2.5}, 13},
		{"subtract-none", calc.Subtract, nil, 0},
		{"subtract-one", calc.Subtract, []float64{5}, -5},
		{"subtract", calc.Subtract, []float64{5, 3}, -8},
		{"subtract-three", calc.Subtract, []float64{10, 4, 1}, -15},
		{"multiply-none", calc.Multiply, nil, 1},
		{"multiply", calc.Multiply, []float64{2, 3, 4}, 24},
		{"multiply-zero", calc.Multiply, []float64{2, 0, 4}, 0},
		{"modulo-none", calc.Modulo, nil, 1},
		{"modulo", calc.Modulo, []float64{5, 3}, 1},
		{"modulo-half", calc.Modulo, []float64{0.5, 2}, 0},
		{"modulo-neg", calc.Modulo, []float64{-5}, 1},
		{"power-none", calc.Power, nil, 1},
		{"power", calc.Power, []float64{2, 3}, 1},
		{"power-neg", calc.Power, []float64{-1, 0.5}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if r := c.f(c.xs...); r != c.r {
				t.Errorf("wrong result for %v: want %g, got %g", c.xs, c.r, r)
			}
		})
	}
}

func TestModuloNaN(t *testing.T) {
	if r := calc.Modulo(0); !math.IsNaN(r) {
		t.Errorf("1 %% 0 should be NaN, got %g", r)
	}
}

func TestDivide(t *testing.T) {
	cases := []struct {
		name string
		xs   []float64
		r    float64
		err  error
	}{
		{"none", nil, 0, calc.ErrNoArguments},
		{"one", []float64{7}, 7, nil},
		{"zero", []float64{0}, 0, nil},
		{"two", []float64{10, 4}, 2.5, nil},
		{"three", []float64{10, 2, 5}, 1, nil},
		{"dividend-zero", []float64{0, 5}, 0, nil},
		{"by-zero", []float64{10, 0}, 0, calc.ErrDivisionByZero},
		{"by-zero-later", []float64{10, 2, 0}, 0, calc.ErrDivisionByZero},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Divide(c.xs...)
			if !errors.Is(err, c.err) {
				t.Errorf("wrong error for %v: want %v, got %v", c.xs, c.err, err)
			}
			if r != c.r {
				t.Errorf("wrong result for %v: want %g, got %g", c.xs, c.r, r)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		a, b float64
		op   string
		r    float64
		desc string
	}{
		{5, 3, "add", 8, "5 + 3 = 8"},
		{10, 4, "subtract", 6, "10 - 4 = 6"},
		{6, 7, "multiply", 42, "6 × 7 = 42"},
		{15, 3, "divide", 5, "15 ÷ 3 = 5"},
		{10.5, 2.5, "add", 13, "10.5 + 2.5 = 13"},
		{7.75, 3.25, "subtract", 4.5, "7.75 - 3.25 = 4.5"},
		{2.5, 2.5, "multiply", 6.25, "2.5 × 2.5 = 6.25"},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			r, err := calc.Calculate(c.a, c.b, c.op)
			if err != nil {
				t.Fatal(err)
			}
			if r != c.r {
				t.Errorf("want %g, got %g", c.r, r)
			}
			d, err := calc.Describe(c.a, c.b, c.op)
			if err != nil {
				t.Fatal(err)
			}
			if d != c.desc {
				t.Errorf("want %q, got %q", c.desc, d)
			}
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	if _, err := calc.Calculate(10, 0, "divide"); !errors.Is(err, calc.ErrDivisionByZero) {
		t.Errorf("10 / 0 gave %v", err)
	}
	if _, err := calc.Describe(10, 0, "divide"); !errors.Is(err, calc.ErrDivisionByZero) {
		t.Errorf("describing 10 / 0 gave %v", err)
	}
	for _, op := range []string{"sqrt", "", "Add", "+"} {
		_, err := calc.Calculate(1, 2, op)
		var u *calc.UnsupportedOperationError
		if !errors.As(err, &u) {
			t.Errorf("%q gave %v, not UnsupportedOperationError", op, err)
			continue
		}
		if u.Op != op {
			t.Errorf("%q reported as %q", op, u.Op)
		}
		if want := "Unsupported operation: " + op; err.Error() != want {
			t.Errorf("wrong message: want %q, got %q", want, err.Error())
		}
	}
}
