package powerset_test

import (
	"errors"
	"fmt"

	"github.com/coregx/powerset"
	"github.com/coregx/powerset/nfa"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := powerset.Compile("(a|b)*abb")
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Accept("babb"), re.Accept("abba"))
	// Output: true false
}

// ExampleCompile_error demonstrates inspecting a malformed pattern.
func ExampleCompile_error() {
	_, err := powerset.Compile("a**")

	var se *nfa.SyntaxError
	if errors.As(err, &se) {
		fmt.Println(se.Kind, se.Pos)
	}
	// Output: StackedQuantifier 2
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := powerset.MustCompile("hello")
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegex_Find demonstrates finding the leftmost-longest match.
func ExampleRegex_Find() {
	re := powerset.MustCompile("ab|abc")
	m, ok := re.Find("xabcx")
	fmt.Println(m, ok, m.Text("xabcx"))
	// Output: (1, 3) true abc
}

// ExampleRegex_FindAll demonstrates non-overlapping matches.
func ExampleRegex_FindAll() {
	re := powerset.MustCompile("aba")
	fmt.Println(re.FindAll("bababababa"))
	// Output: [(1, 3) (5, 7)]
}

// ExampleRegex_FindAllString demonstrates finding all string matches.
func ExampleRegex_FindAllString() {
	re := powerset.MustCompile("a+")
	fmt.Printf("%q\n", re.FindAllString("caaab a", -1))
	// Output: ["aaa" "a"]
}

// ExampleRegex_Split demonstrates splitting around matches.
func ExampleRegex_Split() {
	re := powerset.MustCompile(",+")
	fmt.Printf("%q\n", re.Split("a,b,,c", -1))
	// Output: ["a" "b" "c"]
}

// ExampleCompileWithConfig demonstrates custom configuration.
func ExampleCompileWithConfig() {
	config := powerset.DefaultConfig().WithMaxDFAStates(4)

	_, err := powerset.CompileWithConfig("(a|b)*a(a|b)(a|b)", config)
	fmt.Println(err != nil)
	// Output: true
}
