// Package codegen emits standalone Go source implementing a DFA.
//
// The generated file depends on nothing but the language: a matcher type
// with an Accept method that walks a switch-encoded transition table, an
// accepting-state array and the pattern text it was built from.
//
//	d, _ := dfa.Build(nfa.MustCompile("ab*"))
//	err := codegen.Generate(os.Stdout, d, codegen.Options{
//		Package: "matchers",
//		Name:    "ABStar",
//		Pattern: "ab*",
//	})
package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"slices"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/nfa"
)

// Variable names used in generated code
const (
	inputName = "input"
	stateName = "state"
	runeName  = "c"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("codegen: invalid options")

// Options controls the generated file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string

	// Name is the exported matcher type name.
	Name string

	// Pattern is recorded in the generated file for reference. Optional.
	Pattern string
}

// Validate checks that Package and Name are usable Go identifiers.
func (o Options) Validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("%w: package %q is not an identifier", ErrInvalidOptions, o.Package)
	}
	if !token.IsIdentifier(o.Name) || !token.IsExported(o.Name) {
		return fmt.Errorf("%w: name %q is not an exported identifier", ErrInvalidOptions, o.Name)
	}
	return nil
}

// Generate renders a Go file implementing d's Accept to w.
//
// DFA states are renumbered densely in ascending ID order, so the start
// state need not be 0.
func Generate(w io.Writer, d *dfa.DFA, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("codegen: %w", err)
	}

	g := newGenerator(d, opts)
	return g.file().Render(w)
}

type generator struct {
	d     *dfa.DFA
	opts  Options
	dense map[dfa.StateID]int
	order []dfa.StateID
}

func newGenerator(d *dfa.DFA, opts Options) *generator {
	order := d.States()
	dense := make(map[dfa.StateID]int, len(order))
	for i, id := range order {
		dense[id] = i
	}
	return &generator{d: d, opts: opts, dense: dense, order: order}
}

func (g *generator) file() *jen.File {
	f := jen.NewFile(g.opts.Package)
	f.HeaderComment("Code generated by powerset. DO NOT EDIT.")

	acceptVar := lowerFirst(g.opts.Name) + "Accepting"
	patternConst := lowerFirst(g.opts.Name) + "Pattern"

	f.Commentf("%s matches the language of a %d-state DFA.", g.opts.Name, len(g.order))
	f.Type().Id(g.opts.Name).Struct()

	f.Const().Id(patternConst).Op("=").Lit(g.opts.Pattern)

	f.Comment("accepting states, indexed by dense state number")
	f.Var().Id(acceptVar).Op("=").Index(jen.Lit(len(g.order))).Bool().ValuesFunc(func(grp *jen.Group) {
		for _, id := range g.order {
			grp.Lit(g.d.IsAccepting(id))
		}
	})

	f.Comment("Pattern returns the pattern the matcher was generated from.")
	f.Func().Params(jen.Id(g.opts.Name)).Id("Pattern").Params().String().Block(
		jen.Return(jen.Id(patternConst)),
	)

	f.Comment("Accept reports whether input is a word of the language.")
	f.Func().Params(jen.Id(g.opts.Name)).Id("Accept").Params(jen.Id(inputName).String()).Bool().Block(
		jen.Id(stateName).Op(":=").Lit(g.dense[g.d.Start()]),
		g.loop(),
		jen.Return(jen.Id(acceptVar).Index(jen.Id(stateName))),
	)

	return f
}

func (g *generator) loop() jen.Code {
	// Without transitions every non-empty input rejects and the rune is unused.
	if g.d.NumTransitions() == 0 {
		return jen.For(jen.Range().Id(inputName)).Block(jen.Return(jen.False()))
	}
	return jen.For(jen.List(jen.Id("_"), jen.Id(runeName)).Op(":=").Range().Id(inputName)).Block(
		jen.Switch(jen.Id(stateName)).BlockFunc(func(grp *jen.Group) {
			for _, id := range g.order {
				grp.Case(jen.Lit(g.dense[id])).Block(g.stateBody(id)...)
			}
		}),
	)
}

// stateBody dispatches on the current rune. Symbols sharing a target share a
// case clause; any other rune rejects.
func (g *generator) stateBody(id dfa.StateID) []jen.Code {
	syms := g.d.Symbols(id)
	if len(syms) == 0 {
		return []jen.Code{jen.Return(jen.False())}
	}

	byTarget := make(map[dfa.StateID][]nfa.Symbol)
	var targets []dfa.StateID
	for _, sym := range syms {
		r, _ := sym.Rune()
		to, _ := g.d.Next(id, r)
		if _, seen := byTarget[to]; !seen {
			targets = append(targets, to)
		}
		byTarget[to] = append(byTarget[to], sym)
	}
	slices.SortFunc(targets, func(a, b dfa.StateID) int {
		return g.dense[a] - g.dense[b]
	})

	return []jen.Code{
		jen.Switch(jen.Id(runeName)).BlockFunc(func(grp *jen.Group) {
			for _, to := range targets {
				lits := make([]jen.Code, 0, len(byTarget[to]))
				for _, sym := range byTarget[to] {
					r, _ := sym.Rune()
					lits = append(lits, jen.LitRune(r))
				}
				grp.Case(lits...).Block(
					jen.Id(stateName).Op("=").Lit(g.dense[to]),
				)
			}
			grp.Default().Block(jen.Return(jen.False()))
		}),
	}
}

// lowerFirst lowercases an ASCII first letter.
func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
