package tables

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot exports a parse automaton to the Graphviz Dot format, intended
// for debugging grammars.
func (auto *ParseAutomaton) WriteDot(w io.Writer) error {
	if _, err := io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`); err != nil {
		return err
	}
	for _, s := range auto.States {
		label := fmt.Sprintf("{%03d | %s}", s.ID, dotEscape(itemLines(s)))
		if _, err := fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"%s\"]\n",
			s.ID, stateColor(s), label); err != nil {
			return err
		}
	}
	for _, s := range auto.States {
		for _, e := range s.Edges {
			if _, err := fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n",
				s.ID, e.To, auto.G.SymbolName(e.Sym)); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func itemLines(s *ParseState) string {
	var lines []string
	for _, item := range s.Items.Items() {
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\\n")
}

func stateColor(s *ParseState) string {
	if len(s.Reductions) > 0 {
		return "lightgray"
	}
	return "white"
}

func dotEscape(s string) string {
	r := strings.NewReplacer("\"", "\\\"", "{", "\\{", "}", "\\}", "<", "\\<", ">", "\\>", "|", "\\|")
	return r.Replace(s)
}
