package dfa

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coregx/powerset/nfa"
)

// WriteDOT writes a Graphviz rendering of the DFA to w.
func (d *DFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph DFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for _, id := range d.States() {
		shape := "circle"
		if d.IsAccepting(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    q%d [shape=%s];\n", id, shape)
	}
	for _, t := range d.Transitions() {
		fmt.Fprintf(bw, "    q%d -> q%d [label=%s];\n", t.From, t.To, nfa.DOTLabel(t.On))
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> q%d;\n", d.start)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
