package tables

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
	"golang.org/x/exp/slices"
)

// === Lexical automaton ======================================================

// LexEdge is one outgoing edge of a lexical automaton state.
type LexEdge struct {
	Set rules.CharacterSet
	To  int
}

// LexState is one state of the lexical automaton. Accepts lists the tokens
// whose items may terminate in this state, i.e. whose residual rules match
// the empty string.
type LexState struct {
	ID      int
	Items   *LexItemSet
	Accepts []grammata.Symbol
	Edges   []LexEdge
}

// LexAutomaton is the deterministic character-classification automaton for
// all tokens of a grammar. State 0 is the start state.
type LexAutomaton struct {
	G      *grammar.Grammar
	States []*LexState
}

// BuildLexAutomaton constructs the lexical automaton: a breadth-first
// worklist over lexical item sets, starting from one item per token.
// Tokens without a rule tree (external tokens) take no part.
func BuildLexAutomaton(g *grammar.Grammar) (*LexAutomaton, error) {
	tracer().Debugf("=== build lexical automaton for %q ===", g.Name)
	start := NewLexItemSet()
	for i := 0; i < g.TerminalCount(); i++ {
		v := g.Terminal(i)
		if v.Rule == nil {
			continue
		}
		start.Add(LexItem{LHS: v.Sym, Rule: v.Rule})
	}
	auto := &LexAutomaton{G: g}
	interned := map[string][]int{}
	worklist := arraylist.New()
	worklist.Add(auto.internLexState(start, interned))
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		s := v.(*LexState)
		edges, err := CharTransitions(s.Items)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			dest, isNew := auto.findLexState(e.To, interned)
			if isNew {
				dest = auto.internLexState(e.To, interned)
				worklist.Add(dest)
			}
			s.Edges = append(s.Edges, LexEdge{Set: e.Set, To: dest.ID})
			tracer().Debugf("lex state %d --%s--> %d", s.ID, e.Set, dest.ID)
		}
	}
	tracer().Infof("lexical automaton for %q has %d states", g.Name, len(auto.States))
	return auto, nil
}

// findLexState looks up an already interned state with a structurally
// equal item set. isNew is true when none exists.
func (auto *LexAutomaton) findLexState(items *LexItemSet, interned map[string][]int) (*LexState, bool) {
	for _, id := range interned[items.Fingerprint()] {
		if auto.States[id].Items.Equal(items) {
			return auto.States[id], false
		}
	}
	return nil, true
}

func (auto *LexAutomaton) internLexState(items *LexItemSet, interned map[string][]int) *LexState {
	s := &LexState{ID: len(auto.States), Items: items}
	for _, item := range items.Items() {
		if item.Completes() {
			s.Accepts = append(s.Accepts, item.LHS)
		}
	}
	slices.SortFunc(s.Accepts, grammata.Symbol.Compare)
	auto.States = append(auto.States, s)
	fp := items.Fingerprint()
	interned[fp] = append(interned[fp], s.ID)
	return s
}

// === Parse automaton ========================================================

// ParseEdge is one outgoing edge of a parse automaton state: a shift (on a
// terminal) or a goto (on a non-terminal).
type ParseEdge struct {
	Sym grammata.Symbol
	To  int
}

// Reduction records that a production of LHS, Count symbols long, may be
// reduced when Lookahead follows. Precedence and associativity come from
// the effective metadata of the completed item's residual rule.
type Reduction struct {
	LHS           grammata.Symbol
	Count         int
	Lookahead     grammata.Symbol
	Precedence    int
	HasPrecedence bool
	Assoc         rules.Associativity
}

// ParseState is one state of the parse automaton: a closed parse item set
// together with its outgoing edges and reduce actions.
type ParseState struct {
	ID         int
	Items      *ParseItemSet
	Edges      []ParseEdge
	Reductions []Reduction
}

// ParseAutomaton is the LR(1)-style automaton for a grammar's syntactic
// rules, prior to conflict resolution. Conflicting actions coexist here;
// the table generator decides their fate.
type ParseAutomaton struct {
	G      *grammar.Grammar
	A      *grammar.Analysis
	Entry  grammata.Symbol
	States []*ParseState
	accept grammata.Symbol
}

// acceptSymbol is the synthetic left-hand side of the augmented start
// production entry' = entry. Augmenting keeps reductions of a recursively
// used entry symbol apart from acceptance.
func acceptSymbol() grammata.Symbol {
	return grammata.Symbol{Kind: grammata.NonTerminalKind, Index: -1}
}

// BuildParseAutomaton constructs the parse automaton for a grammar entry
// symbol: a breadth-first worklist over closed parse item sets. Two
// structurally equal item sets are the same state; interning goes through a
// structural-hash table so each distinct set is assigned exactly one id.
func BuildParseAutomaton(g *grammar.Grammar, entry string) (*ParseAutomaton, error) {
	entrySym, ok := g.Symbol(entry)
	if !ok || !entrySym.IsNonTerminal() {
		return nil, grammar.ErrorfAt(entry, "entry symbol is not a non-terminal")
	}
	a, err := grammar.Analyze(g)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("=== build parse automaton for %q, entry %s ===", g.Name, entry)
	kernel := NewParseItemSet(
		StartItem(acceptSymbol(), rules.SymbolRef{Sym: entrySym}, grammata.EOF),
	)
	closure0, err := Closure(kernel, a)
	if err != nil {
		return nil, err
	}
	auto := &ParseAutomaton{G: g, A: a, Entry: entrySym, accept: acceptSymbol()}
	interned := map[string][]int{}
	worklist := arraylist.New()
	worklist.Add(auto.internParseState(closure0, interned))
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		s := v.(*ParseState)
		ts, err := SymTransitions(s.Items, a)
		if err != nil {
			return nil, err
		}
		var buildErr error
		ts.Each(func(sym grammata.Symbol, dest *ParseItemSet) {
			if buildErr != nil {
				return
			}
			closed, err := Closure(dest, a)
			if err != nil {
				buildErr = err
				return
			}
			target, isNew := auto.findParseState(closed, interned)
			if isNew {
				target = auto.internParseState(closed, interned)
				worklist.Add(target)
			}
			s.Edges = append(s.Edges, ParseEdge{Sym: sym, To: target.ID})
			tracer().Debugf("parse state %d --%s--> %d", s.ID, g.SymbolName(sym), target.ID)
		})
		if buildErr != nil {
			return nil, buildErr
		}
	}
	tracer().Infof("parse automaton for %q has %d states", g.Name, len(auto.States))
	return auto, nil
}

func (auto *ParseAutomaton) findParseState(items *ParseItemSet, interned map[string][]int) (*ParseState, bool) {
	for _, id := range interned[items.Fingerprint()] {
		if auto.States[id].Items.Equal(items) {
			return auto.States[id], false
		}
	}
	return nil, true
}

func (auto *ParseAutomaton) internParseState(items *ParseItemSet, interned map[string][]int) *ParseState {
	s := &ParseState{ID: len(auto.States), Items: items}
	for _, item := range items.Items() {
		if auto.A.RuleNullable(item.Rule) { // production fully consumed
			prec, hasPrec := item.Precedence()
			s.Reductions = append(s.Reductions, Reduction{
				LHS:           item.LHS,
				Count:         item.Consumed,
				Lookahead:     item.Lookahead,
				Precedence:    prec,
				HasPrecedence: hasPrec,
				Assoc:         item.Associativity(),
			})
		}
	}
	auto.States = append(auto.States, s)
	fp := items.Fingerprint()
	interned[fp] = append(interned[fp], s.ID)
	return s
}

// ShiftPrecedence returns the effective precedence of shifting la in state
// s: the highest precedence declared on any item that transitions on la.
func (auto *ParseAutomaton) ShiftPrecedence(s *ParseState, la grammata.Symbol) (int, bool) {
	prec, hasPrec := 0, false
	for _, item := range s.Items.Items() {
		ts, err := ItemSymTransitions(item, auto.A)
		if err != nil {
			continue
		}
		if _, ok := ts.Get(la); !ok {
			continue
		}
		p, has := item.Precedence()
		if has && (!hasPrec || p > prec) {
			prec, hasPrec = p, true
		}
	}
	return prec, hasPrec
}

// shiftingSymbols returns the left-hand symbols of all items that shift la
// in state s, for matching against declared conflicts.
func (auto *ParseAutomaton) shiftingSymbols(s *ParseState, la grammata.Symbol) []grammata.Symbol {
	set := map[grammata.Symbol]struct{}{}
	for _, item := range s.Items.Items() {
		ts, err := ItemSymTransitions(item, auto.A)
		if err != nil {
			continue
		}
		if _, ok := ts.Get(la); ok {
			set[item.LHS] = struct{}{}
		}
	}
	syms := make([]grammata.Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, grammata.Symbol.Compare)
	return syms
}

// Dump is a debugging helper, tracing all states at Debug level.
func (auto *ParseAutomaton) Dump() {
	for _, s := range auto.States {
		tracer().Debugf("--- state %03d -----------", s.ID)
		for n, item := range s.Items.Items() {
			tracer().Debugf("[%2d] %s", n+1, item)
		}
		for _, e := range s.Edges {
			tracer().Debugf("     --%s--> %d", auto.G.SymbolName(e.Sym), e.To)
		}
	}
}
