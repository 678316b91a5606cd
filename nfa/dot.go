package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes a Graphviz rendering of the NFA to w.
// Accepting states are double circles; epsilon edges are labelled ε.
func (n *NFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for _, id := range n.States() {
		shape := "circle"
		if n.IsAccepting(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    n%d [shape=%s];\n", id, shape)
	}
	for _, t := range n.Transitions() {
		fmt.Fprintf(bw, "    n%d -> n%d [label=%s];\n", t.From, t.To, DOTLabel(t.On))
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> n%d;\n", n.start)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// DOTLabel returns the quoted DOT edge label for sym.
func DOTLabel(sym Symbol) string {
	switch sym.Kind() {
	case KindEpsilon:
		return `"ε"`
	case KindEmpty:
		return `"∅"`
	default:
		return strconv.Quote(sym.String())
	}
}
