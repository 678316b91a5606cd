package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/nfa"
)

func runBench(e *env, args []string) error {
	if len(args) == 0 {
		return usagef("bench takes a benchmark name: kleene or powerset")
	}
	switch args[0] {
	case "kleene":
		return benchKleene(e, args[1:])
	case "powerset":
		return benchPowerset(e, args[1:])
	default:
		return usagef("unknown benchmark %q", args[0])
	}
}

// benchKleene times a search for "a*" in words of a's of growing length and
// writes one CSV row per length.
func benchKleene(e *env, args []string) error {
	fs := e.newFlagSet("bench kleene", "")
	maxLen := fs.Int("max", 1000, "longest word to search")
	out := fs.String("o", "", "CSV output file (default standard output)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *maxLen < 1 {
		return usagef("-max must be positive")
	}

	start := time.Now()
	n, err := nfa.Compile("a*")
	if err != nil {
		return err
	}
	s, err := dfa.NewSearcher(n)
	if err != nil {
		return err
	}
	e.logger.Info("construction", "pattern", "a*", "duration", time.Since(start))

	times := make([]time.Duration, 0, *maxLen)
	for i := 1; i <= *maxLen; i++ {
		word := strings.Repeat("a", i)
		before := time.Now()
		sp, ok := s.Find(word)
		times = append(times, time.Since(before))
		if want := (dfa.Span{Start: 0, End: i - 1}); !ok || sp != want {
			return fmt.Errorf("find in %d a's = %v %v, want %v", i, sp, ok, want)
		}
	}

	w := e.stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := writeKleeneCSV(w, times); err != nil {
		return err
	}
	e.logger.Info("kleene benchmark done", "words", len(times), "total", sum(times))
	return nil
}

func writeKleeneCSV(w io.Writer, times []time.Duration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"number_of_characters", "duration_seconds"}); err != nil {
		return err
	}
	for i, d := range times {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(d.Seconds(), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// benchPowerset times subset construction on the n-th-from-end NFAs, whose
// DFAs grow as 2^n.
func benchPowerset(e *env, args []string) error {
	fs := e.newFlagSet("bench powerset", "")
	maxN := fs.Int("max", 12, "largest n to construct")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *maxN < 3 {
		return usagef("-max must be at least 3")
	}

	fmt.Fprintln(e.stdout, "n\tnfa_states\tnfa_transitions\tdfa_states\tduration")
	for q := 3; q <= *maxN; q++ {
		n, err := nfa.NthFromEnd(nfa.NewAllocator(), q)
		if err != nil {
			return err
		}

		start := time.Now()
		d, err := dfa.Build(n)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(e.stdout, "%d\t%d\t%d\t%d\t%s\n", q, n.NumStates(), n.NumTransitions(), d.NumStates(), elapsed)
		e.logger.Debug("powerset construction", "n", q, "dfa_states", d.NumStates(), "duration", elapsed)
	}
	return nil
}

func sum(times []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range times {
		total += d
	}
	return total
}
