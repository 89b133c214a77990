package tables

import (
	"fmt"
	"strings"

	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
	"github.com/grammata/grammata/sparse"
	"golang.org/x/exp/slices"
)

// Actions for parser action tables. Reduce actions are encoded as the
// production index (>= 0).
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// Production identifies a reducible production for table consumers: the
// symbol to reduce to and the number of states to pop.
type Production struct {
	LHS   grammata.Symbol
	Count int
}

// Conflict records two or more competing actions in one state for one
// lookahead. Expected conflicts (whitelisted by the grammar) keep all
// their actions in the table for a GLR-capable runtime; unexpected ones
// abort table generation.
type Conflict struct {
	State      int
	Lookahead  grammata.Symbol
	Shift      bool
	Reductions []Reduction
	Expected   bool
}

// TableGenerator turns a parse automaton into ACTION and GOTO tables,
// resolving shift/reduce and reduce/reduce conflicts by declared
// precedence and associativity. Clients create the automaton first, then
//
//	tg := tables.NewTableGenerator(auto)
//	if err := tg.CreateTables(); err != nil { ... }
type TableGenerator struct {
	auto         *ParseAutomaton
	actiontable  *sparse.IntMatrix
	gototable    *sparse.IntMatrix
	productions  []Production
	prodIndex    map[Production]int
	Conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a table generator for a built parse automaton.
func NewTableGenerator(auto *ParseAutomaton) *TableGenerator {
	return &TableGenerator{
		auto:      auto,
		prodIndex: map[Production]int{},
	}
}

// ActionTable returns the ACTION table: rows are states, columns are
// terminals (the end marker last). CreateTables must have run.
func (tg *TableGenerator) ActionTable() *sparse.IntMatrix {
	if tg.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return tg.actiontable
}

// GotoTable returns the GOTO table: rows are states, columns are symbols.
// CreateTables must have run.
func (tg *TableGenerator) GotoTable() *sparse.IntMatrix {
	if tg.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return tg.gototable
}

// Productions returns the production registry that reduce actions index
// into.
func (tg *TableGenerator) Productions() []Production {
	return tg.productions
}

// Column maps a symbol to its table column: terminals by index, the end
// marker after them, non-terminals last.
func (tg *TableGenerator) Column(sym grammata.Symbol) int {
	T := tg.auto.G.TerminalCount()
	switch sym.Kind {
	case grammata.TerminalKind:
		return sym.Index
	case grammata.EndKind:
		return T
	default:
		return T + 1 + sym.Index
	}
}

// CreateTables fills the ACTION and GOTO tables. An unresolved conflict
// that the grammar did not declare tolerance for is promoted to a
// GrammarError here; the error names both competing actions.
func (tg *TableGenerator) CreateTables() error {
	g := tg.auto.G
	statecnt := len(tg.auto.States)
	terminalCols := g.TerminalCount() + 1
	allCols := terminalCols + g.NonTerminalCount()
	tracer().Infof("ACTION table of size %d x %d", statecnt, terminalCols)
	tg.actiontable = sparse.NewIntMatrix(statecnt, terminalCols, sparse.DefaultNullValue)
	tg.gototable = sparse.NewIntMatrix(statecnt, allCols, sparse.DefaultNullValue)
	for _, s := range tg.auto.States {
		if err := tg.fillState(s); err != nil {
			return err
		}
	}
	return nil
}

func (tg *TableGenerator) fillState(s *ParseState) error {
	shifts := map[grammata.Symbol]bool{}
	for _, e := range s.Edges {
		tg.gototable.Put(s.ID, tg.Column(e.Sym), int32(e.To))
		if e.Sym.IsTerminal() {
			shifts[e.Sym] = true
		}
	}
	reductions := map[grammata.Symbol][]Reduction{}
	for _, red := range s.Reductions {
		reductions[red.Lookahead] = append(reductions[red.Lookahead], red)
	}
	lookaheads := make([]grammata.Symbol, 0, len(shifts)+len(reductions))
	for la := range shifts {
		lookaheads = append(lookaheads, la)
	}
	for la := range reductions {
		if !shifts[la] {
			lookaheads = append(lookaheads, la)
		}
	}
	slices.SortFunc(lookaheads, grammata.Symbol.Compare)
	for _, la := range lookaheads {
		if err := tg.fillActions(s, la, shifts[la], reductions[la]); err != nil {
			return err
		}
	}
	return nil
}

// fillActions resolves and records the actions of one (state, lookahead)
// cell.
func (tg *TableGenerator) fillActions(s *ParseState, la grammata.Symbol, shift bool, reds []Reduction) error {
	slices.SortFunc(reds, func(a, b Reduction) int {
		if c := a.LHS.Compare(b.LHS); c != 0 {
			return c
		}
		return a.Count - b.Count
	})
	keepShift, kept, resolved := tg.resolve(s, la, shift, reds)
	if !resolved {
		involved := tg.involvedSymbols(s, la, shift, reds)
		conflict := Conflict{
			State:      s.ID,
			Lookahead:  la,
			Shift:      shift,
			Reductions: reds,
			Expected:   tg.auto.G.ExpectedConflict(involved),
		}
		tg.Conflicts = append(tg.Conflicts, conflict)
		if !conflict.Expected {
			return grammar.Errorf("unresolved conflict in state %d on %s: %s",
				s.ID, tg.auto.G.SymbolName(la), tg.describeActions(shift, reds))
		}
		tg.HasConflicts = true
		keepShift, kept = shift, reds // GLR: retain all actions
		tracer().Infof("state %d: expected conflict on %s, retaining all actions",
			s.ID, tg.auto.G.SymbolName(la))
	}
	col := tg.Column(la)
	if keepShift {
		tg.actiontable.Append(s.ID, col, ShiftAction)
	}
	for _, red := range kept {
		tg.actiontable.Append(s.ID, col, tg.reduceValue(red))
	}
	return nil
}

// resolve applies precedence and associativity. resolved is false when the
// competing actions cannot be ordered.
func (tg *TableGenerator) resolve(s *ParseState, la grammata.Symbol, shift bool,
	reds []Reduction) (keepShift bool, kept []Reduction, resolved bool) {
	//
	if len(reds) > 1 {
		best, ok := bestReduction(reds)
		if !ok {
			return shift, reds, false
		}
		reds = []Reduction{best}
	}
	if !shift || len(reds) == 0 {
		return shift, reds, true
	}
	red := reds[0]
	shiftPrec, shiftHasPrec := tg.auto.ShiftPrecedence(s, la)
	if !red.HasPrecedence || !shiftHasPrec {
		return true, reds, false
	}
	switch {
	case red.Precedence > shiftPrec:
		tracer().Debugf("state %d: reduce %s beats shift on precedence", s.ID, tg.auto.G.SymbolName(red.LHS))
		return false, reds, true
	case red.Precedence < shiftPrec:
		tracer().Debugf("state %d: shift beats reduce %s on precedence", s.ID, tg.auto.G.SymbolName(red.LHS))
		return true, nil, true
	case red.Assoc == rules.AssocLeft:
		return false, reds, true
	case red.Assoc == rules.AssocRight:
		return true, nil, true
	}
	return true, reds, false
}

// bestReduction picks the single highest-precedence reduction; ok is false
// when precedences do not single one out.
func bestReduction(reds []Reduction) (Reduction, bool) {
	best, unique := reds[0], true
	for _, red := range reds[1:] {
		if !red.HasPrecedence || !best.HasPrecedence {
			return best, false
		}
		if red.Precedence > best.Precedence {
			best, unique = red, true
		} else if red.Precedence == best.Precedence {
			unique = false
		}
	}
	return best, unique
}

func (tg *TableGenerator) involvedSymbols(s *ParseState, la grammata.Symbol, shift bool,
	reds []Reduction) []grammata.Symbol {
	//
	set := map[grammata.Symbol]struct{}{}
	if shift {
		for _, sym := range tg.auto.shiftingSymbols(s, la) {
			set[sym] = struct{}{}
		}
	}
	for _, red := range reds {
		set[red.LHS] = struct{}{}
	}
	syms := make([]grammata.Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, grammata.Symbol.Compare)
	return syms
}

func (tg *TableGenerator) reduceValue(red Reduction) int32 {
	if red.LHS == tg.auto.accept {
		return AcceptAction
	}
	p := Production{LHS: red.LHS, Count: red.Count}
	id, ok := tg.prodIndex[p]
	if !ok {
		id = len(tg.productions)
		tg.productions = append(tg.productions, p)
		tg.prodIndex[p] = id
	}
	return int32(id)
}

func (tg *TableGenerator) describeActions(shift bool, reds []Reduction) string {
	var parts []string
	if shift {
		parts = append(parts, "shift")
	}
	for _, red := range reds {
		parts = append(parts, fmt.Sprintf("reduce %s/%d",
			tg.auto.G.SymbolName(red.LHS), red.Count))
	}
	return strings.Join(parts, " vs ")
}
