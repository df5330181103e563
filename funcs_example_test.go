package calc_test

import (
	"fmt"

	"github.com/zephyrtronium/calc"
)

func ExampleSubtract() {
	// The first argument is subtracted from 0 like the rest.
	fmt.Println(calc.Subtract(5, 3))
	fmt.Println(calc.Add(5, 3))

	// Output:
	// -8
	// 8
}

func ExampleDivide() {
	fmt.Println(calc.Divide(10, 2, 5))
	fmt.Println(calc.Divide(10, 0))

	// Output:
	// 1 <nil>
	// 0 Division by zero is not allowed
}

func ExampleDescribe() {
	for _, op := range []string{"add", "subtract", "multiply", "divide", "modulo"} {
		s, err := calc.Describe(12, 4, op)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(s)
	}

	// Output:
	// 12 + 4 = 16
	// 12 - 4 = 8
	// 12 × 4 = 48
	// 12 ÷ 4 = 3
	// Error: Unsupported operation: modulo
}
