package algebra_test

import (
	"fmt"

	"github.com/agbru/hassecalc/internal/algebra"
)

// ExampleNew builds the identity chain over eight symbols and adds two
// numbers with a carry into a new leading digit.
func ExampleNew() {
	a, err := algebra.New(8, "bcdefgha")
	if err != nil {
		fmt.Println(err)
		return
	}
	sum := a.Add(a.MustParse("hh"), a.MustParse("bb"))
	fmt.Println(sum, a.CycleLength())
	// Output: bba 8
}

// ExampleAlgebra_Format shows equivalence groups in formatted output.
func ExampleAlgebra_Format() {
	a, _ := algebra.New(5, "b{c,d}eea")
	fmt.Println(a.Format("bd"))
	fmt.Println(a.Format("-ce"))
	// Output:
	// b{c,d}
	// -{c,d}e
}

// ExampleAlgebra_DivMod shows the sentinel results of division.
func ExampleAlgebra_DivMod() {
	a, _ := algebra.New(8, "bcdefgha")
	for _, pair := range [][2]string{{"bab", "d"}, {"a", "a"}, {"c", "a"}} {
		q, r := a.DivMod(a.MustParse(pair[0]), a.MustParse(pair[1]))
		fmt.Printf("%s / %s = %s rem %s\n", pair[0], pair[1], q, r)
	}
	// Output:
	// bab / d = cf rem c
	// a / a = [-hhhhhhhh - hhhhhhhh] rem a
	// c / a = ∅ rem ∅
}

// ExampleAlgebra_Bounded shows overflow detection.
func ExampleAlgebra_Bounded() {
	a, _ := algebra.New(8, "bcdefgha")
	bounded := a.Bounded(true)
	x, y := a.MustParse("hhhhhhhh"), a.MustParse("b")
	fmt.Println(a.Add(x, y))
	fmt.Println(bounded.Add(x, y))
	// Output:
	// baaaaaaaa
	// overflow
}
