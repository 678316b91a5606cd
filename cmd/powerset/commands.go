package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"
	"unicode/utf8"

	"github.com/coregx/powerset"
	"github.com/coregx/powerset/codegen"
	"github.com/coregx/powerset/dfa/lazy"
	"github.com/coregx/powerset/internal/conv"
	"github.com/coregx/powerset/internal/casefile"
	"github.com/coregx/powerset/internal/mmap"
	"github.com/coregx/powerset/nfa"
	"github.com/coregx/powerset/prefilter"
)

// compileFlags are the engine options shared by commands that compile a
// pattern.
type compileFlags struct {
	maxStates   int
	noPrefilter bool
}

func (c *compileFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&c.maxStates, "max-states", 0, "maximum DFA states (0 = unlimited)")
	fs.BoolVar(&c.noPrefilter, "no-prefilter", false, "disable literal prefiltering")
}

func (c *compileFlags) config() powerset.Config {
	return powerset.DefaultConfig().
		WithMaxDFAStates(c.maxStates).
		WithPrefilter(!c.noPrefilter)
}

func (e *env) compile(pattern string, cf *compileFlags) (*powerset.Regex, error) {
	start := time.Now()
	re, err := powerset.CompileWithConfig(pattern, cf.config())
	if err != nil {
		return nil, err
	}
	attrs := []any{
		"pattern", pattern,
		"nfa_states", re.NFA().NumStates(),
		"dfa_states", re.NumStates(),
		"prefilter", re.Prefilter() != nil,
		"duration", time.Since(start),
	}
	if pf := re.Prefilter(); pf != nil {
		attrs = append(attrs, "prefilter_bytes", pf.HeapBytes())
	}
	e.logger.Debug("compiled", attrs...)
	return re, nil
}

func (e *env) newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "usage: powerset %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

func runShow(e *env, args []string) error {
	fs := e.newFlagSet("show", "<pattern>")
	var cf compileFlags
	cf.register(fs)
	dot := fs.Bool("dot", false, "write Graphviz DOT instead of the debug form")
	which := fs.String("automaton", "both", "automaton to print: nfa, dfa or both")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("show takes exactly one pattern")
	}
	if *which != "nfa" && *which != "dfa" && *which != "both" {
		return usagef("unknown automaton %q", *which)
	}

	re, err := e.compile(fs.Arg(0), &cf)
	if err != nil {
		return err
	}

	if *which != "dfa" {
		if err := writeAutomaton(e.stdout, re.NFA(), *dot); err != nil {
			return err
		}
	}
	if *which != "nfa" {
		if err := writeAutomaton(e.stdout, re.DFA(), *dot); err != nil {
			return err
		}
	}
	return nil
}

type automaton interface {
	fmt.Stringer
	WriteDOT(w io.Writer) error
}

func writeAutomaton(w io.Writer, a automaton, dot bool) error {
	if dot {
		return a.WriteDOT(w)
	}
	_, err := fmt.Fprintln(w, a.String())
	return err
}

func runMatch(e *env, args []string) error {
	fs := e.newFlagSet("match", "<pattern> <word>...")
	var cf compileFlags
	cf.register(fs)
	useNFA := fs.Bool("nfa", false, "simulate the NFA instead of walking the DFA")
	useLazy := fs.Bool("lazy", false, "determinize on demand instead of building the whole DFA")
	lazyStates := fs.Uint("lazy-states", uint(lazy.DefaultConfig().MaxStates), "with -lazy, maximum cached DFA states")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usagef("match takes a pattern and at least one word")
	}
	pattern, words := fs.Arg(0), fs.Args()[1:]

	var accept func(string) bool
	if *useLazy {
		if *lazyStates > math.MaxUint32 {
			return usagef("-lazy-states %d out of range", *lazyStates)
		}
		a, err := e.lazyAcceptor(pattern, conv.UintToUint32(*lazyStates))
		if err != nil {
			return err
		}
		accept = a
	} else {
		re, err := e.compile(pattern, &cf)
		if err != nil {
			return err
		}
		accept = re.Accept
		if *useNFA {
			accept = re.AcceptNFA
		}
	}

	all := true
	for _, word := range words {
		ok := accept(word)
		fmt.Fprintf(e.stdout, "Matching %s against %s -> %v\n", word, pattern, ok)
		all = all && ok
	}
	if !all {
		return errNoMatch
	}
	return nil
}

// lazyAcceptor compiles pattern to an NFA only and decides membership with a
// lazy DFA sharing one cache across words, so patterns whose full DFA is
// too large still run in bounded memory.
func (e *env) lazyAcceptor(pattern string, maxStates uint32) (func(string) bool, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, &powerset.CompileError{Pattern: pattern, Err: err}
	}
	d, err := lazy.New(n, lazy.DefaultConfig().WithMaxStates(maxStates))
	if err != nil {
		return nil, usagef("%v", err)
	}
	c := d.NewCache()
	return func(word string) bool {
		ok := d.AcceptWith(c, word)
		hits, misses, rate := c.Stats()
		e.logger.Debug("lazy accept",
			"word", word,
			"cached_states", c.Size(),
			"hits", hits,
			"misses", misses,
			"hit_rate", rate,
			"fallbacks", c.Fallbacks(),
		)
		return ok
	}, nil
}

func runFind(e *env, args []string) error {
	fs := e.newFlagSet("find", "<pattern> <input>...")
	var cf compileFlags
	cf.register(fs)
	all := fs.Bool("all", false, "print every non-overlapping match")
	limit := fs.Int("n", -1, "with -all, print at most n matches per input (all if < 0)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usagef("find takes a pattern and at least one input")
	}

	re, err := e.compile(fs.Arg(0), &cf)
	if err != nil {
		return err
	}

	found := false
	for _, input := range fs.Args()[1:] {
		var matches []powerset.Match
		if *all {
			matches = re.FindAllN(input, *limit)
		} else if m, ok := re.Find(input); ok {
			matches = []powerset.Match{m}
		}
		for _, m := range matches {
			fmt.Fprintf(e.stdout, "%s\t%q\n", m, m.Text(input))
		}
		found = found || len(matches) > 0
	}
	if !found {
		return errNoMatch
	}
	return nil
}

func runGrep(e *env, args []string) error {
	fs := e.newFlagSet("grep", "<pattern> [file]...")
	var cf compileFlags
	cf.register(fs)
	count := fs.Bool("c", false, "print only a count of matching lines per file")
	withName := fs.Bool("H", false, "prefix each line with its file name")
	lineNumbers := fs.Bool("n", false, "prefix each line with its line number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usagef("grep takes a pattern")
	}

	re, err := e.compile(fs.Arg(0), &cf)
	if err != nil {
		return err
	}
	g := &grepper{
		env:         e,
		re:          re,
		count:       *count,
		withName:    *withName || fs.NArg() > 2,
		lineNumbers: *lineNumbers,
	}

	files := fs.Args()[1:]
	if len(files) == 0 {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return err
		}
		g.search("(standard input)", data)
	}
	for _, name := range files {
		if err := g.searchFile(name); err != nil {
			return err
		}
	}
	if g.matched == 0 {
		return errNoMatch
	}
	return nil
}

type grepper struct {
	*env
	re          *powerset.Regex
	count       bool
	withName    bool
	lineNumbers bool
	matched     int
}

func (g *grepper) searchFile(name string) error {
	f, err := mmap.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := f.Bytes()
	if err != nil {
		return err
	}
	g.search(name, data)
	return nil
}

func (g *grepper) search(name string, data []byte) {
	n := 0
	if g.mayMatch(data) {
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(nil, len(data)+1)
		for line := 1; sc.Scan(); line++ {
			text := sc.Text()
			if !g.re.MatchString(text) {
				continue
			}
			n++
			if !g.count {
				g.printLine(name, line, text)
			}
		}
	} else {
		g.logger.Debug("skipped by literal quick reject", "file", name, "bytes", len(data))
	}

	if g.count {
		if g.withName {
			fmt.Fprintf(g.stdout, "%s:", name)
		}
		fmt.Fprintln(g.stdout, n)
	}
	g.matched += n
}

// mayMatch reports false only when no line of data can contain a match.
func (g *grepper) mayMatch(data []byte) bool {
	bm, ok := g.re.Prefilter().(prefilter.ByteMatcher)
	if !ok || !utf8.Valid(data) {
		return true
	}
	return bm.IsMatch(data)
}

func (g *grepper) printLine(name string, line int, text string) {
	if g.withName {
		fmt.Fprintf(g.stdout, "%s:", name)
	}
	if g.lineNumbers {
		fmt.Fprintf(g.stdout, "%d:", line)
	}
	fmt.Fprintln(g.stdout, text)
}

func runGen(e *env, args []string) error {
	fs := e.newFlagSet("gen", "<pattern>")
	var cf compileFlags
	cf.register(fs)
	pkg := fs.String("pkg", "main", "package name of the generated file")
	name := fs.String("name", "Matcher", "exported name of the generated type")
	out := fs.String("o", "", "output file (default standard output)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("gen takes exactly one pattern")
	}

	re, err := e.compile(fs.Arg(0), &cf)
	if err != nil {
		return err
	}
	opts := codegen.Options{Package: *pkg, Name: *name, Pattern: re.String()}
	if err := opts.Validate(); err != nil {
		return usagef("%v", err)
	}

	if *out == "" {
		return codegen.Generate(e.stdout, re.DFA(), opts)
	}

	var buf bytes.Buffer
	if err := codegen.Generate(&buf, re.DFA(), opts); err != nil {
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	e.logger.Info("generated", "file", *out, "type", *name, "states", re.NumStates())
	return nil
}

func runCheck(e *env, args []string) error {
	fs := e.newFlagSet("check", "<file.cases>...")
	var cf compileFlags
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("check takes at least one case file")
	}

	compile := func(pattern string) (casefile.Matcher, error) {
		re, err := powerset.CompileWithConfig(pattern, cf.config())
		if err != nil {
			return nil, err
		}
		return re, nil
	}

	failed := 0
	for _, name := range fs.Args() {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		cases, err := casefile.Parse(name, f)
		f.Close()
		if err != nil {
			return err
		}

		failures := cases.Verify(compile)
		for _, fl := range failures {
			fmt.Fprintln(e.stdout, fl)
		}
		failed += len(failures)
		e.logger.Info("checked", "file", name, "checks", cases.NumChecks(), "failures", len(failures))
	}

	if failed > 0 {
		fmt.Fprintf(e.stdout, "FAIL: %d failed checks\n", failed)
		return errNoMatch
	}
	fmt.Fprintln(e.stdout, "ok")
	return nil
}
