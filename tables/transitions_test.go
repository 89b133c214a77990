package tables

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
)

func chars(lo, hi rune) rules.Rule {
	return rules.CharSet{Set: rules.NewCharacterSet(rules.CharRange{Lo: lo, Hi: hi})}
}

func TestCharPartitionOverlappingAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	// a token matching 'a' or any of 'a'-'z': the overlapping alternatives
	// must partition into ['a'] and ['b'-'z']
	tok := grammata.Terminal(0)
	item := LexItem{LHS: tok, Rule: rules.Choice{Alternatives: []rules.Rule{
		chars('a', 'a'),
		chars('a', 'z'),
	}}}
	edges, err := CharTransitions(NewLexItemSet(item))
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 disjoint edges, got %d", len(edges))
	}
	if !edges[0].Set.Equal(rules.SingleChar('a')) {
		t.Errorf("first edge should be [a], got %s", edges[0].Set)
	}
	if !edges[1].Set.Equal(rules.NewCharacterSet(rules.CharRange{Lo: 'b', Hi: 'z'})) {
		t.Errorf("second edge should be [b-z], got %s", edges[1].Set)
	}
	// both residuals are blank, so the merged destination is one item
	for _, e := range edges {
		if e.To.Size() != 1 || !e.To.Contains(LexItem{LHS: tok, Rule: rules.Blank{}}) {
			t.Errorf("edge %s should lead to the completed item, got %s", e.Set, e.To)
		}
	}
}

func TestCharTransitionsDisjointAcrossItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	tokA, tokB := grammata.Terminal(0), grammata.Terminal(1)
	S := NewLexItemSet(
		LexItem{LHS: tokA, Rule: chars('a', 'm')},
		LexItem{LHS: tokB, Rule: chars('h', 'z')},
	)
	edges, err := CharTransitions(S)
	if err != nil {
		t.Fatal(err)
	}
	// pairwise disjoint keys
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if !edges[i].Set.Intersect(edges[j].Set).IsEmpty() {
				t.Errorf("edges %s and %s overlap", edges[i].Set, edges[j].Set)
			}
		}
	}
	// keys cover exactly the union of the items' sets
	covered := rules.NewCharacterSet()
	for _, e := range edges {
		covered = covered.Union(e.Set)
	}
	want := rules.NewCharacterSet(rules.CharRange{Lo: 'a', Hi: 'z'})
	if !covered.Equal(want) {
		t.Errorf("edges cover %s, want %s", covered, want)
	}
	// the overlap carries both tokens, the remainders one each
	for _, e := range edges {
		switch {
		case e.Set.Contains('h'):
			if e.To.Size() != 2 {
				t.Errorf("overlap edge %s should union both destinations, got %s", e.Set, e.To)
			}
		case e.Set.Contains('a'):
			if e.To.Size() != 1 || !e.To.Contains(LexItem{LHS: tokA, Rule: rules.Blank{}}) {
				t.Errorf("edge %s should lead to %s only", e.Set, tokA)
			}
		case e.Set.Contains('z'):
			if e.To.Size() != 1 || !e.To.Contains(LexItem{LHS: tokB, Rule: rules.Blank{}}) {
				t.Errorf("edge %s should lead to %s only", e.Set, tokB)
			}
		}
	}
}

func TestCharTransitionsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	makeSet := func() *LexItemSet {
		return NewLexItemSet(
			LexItem{LHS: grammata.Terminal(0), Rule: rules.NewSeq(chars('a', 'f'), chars('0', '9'))},
			LexItem{LHS: grammata.Terminal(1), Rule: chars('c', 'k')},
			LexItem{LHS: grammata.Terminal(2), Rule: rules.NewRepeat(chars('e', 'p'))},
		)
	}
	first, err := CharTransitions(makeSet())
	if err != nil {
		t.Fatal(err)
	}
	second, err := CharTransitions(makeSet())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated runs disagree on edge count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Set.Equal(second[i].Set) || !first[i].To.Equal(second[i].To) {
			t.Errorf("edge %d differs between runs: %s vs %s", i, first[i].Set, second[i].Set)
		}
	}
}

// makeSeqGrammar prepares S = X Y with a nullable X:
//
//	X = 'x' | ε
//	Y = 'y'
func makeSeqGrammar(t *testing.T) (*grammar.Grammar, *grammar.Analysis) {
	b := grammar.NewBuilder("SeqG")
	b.Token("x", chars('x', 'x'))
	b.Token("y", chars('y', 'y'))
	b.Rule("S", rules.NewSeq(rules.Ref("X"), rules.Ref("Y")))
	b.Rule("X", rules.NewChoice(rules.Ref("x"), rules.Blank{}))
	b.Rule("Y", rules.Ref("y"))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	a, err := grammar.Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	return g, a
}

func TestSymTransitionsNullablePrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	g, a := makeSeqGrammar(t)
	sSym, _ := g.Symbol("S")
	xSym, _ := g.Symbol("X")
	ySym, _ := g.Symbol("Y")
	alts, err := g.Alternatives(sSym)
	if err != nil || len(alts) != 1 {
		t.Fatalf("expected a single alternative for S, err=%v", err)
	}
	item := StartItem(sSym, alts[0], grammata.EOF)
	ts, err := ItemSymTransitions(item, a)
	if err != nil {
		t.Fatal(err)
	}
	// X may match empty, so both X and Y are reachable at position zero
	if _, ok := ts.Get(xSym); !ok {
		t.Errorf("expected a transition on X, keys = %v", ts.Keys())
	}
	dest, ok := ts.Get(ySym)
	if !ok {
		t.Fatalf("expected a transition on Y past the nullable X, keys = %v", ts.Keys())
	}
	for _, next := range dest.Items() {
		if next.Consumed != 1 {
			t.Errorf("destination item should have consumed 1 symbol, got %d", next.Consumed)
		}
		if next.Lookahead != grammata.EOF {
			t.Errorf("lookahead should carry over, got %s", next.Lookahead)
		}
	}
}

func TestSymTransitionsTotality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	b := grammar.NewBuilder("TwoUsers")
	b.Token("x", chars('x', 'x'))
	b.Token("y", chars('y', 'y'))
	b.Token("z", chars('z', 'z'))
	b.Rule("A", rules.NewSeq(rules.Ref("x"), rules.Ref("y")))
	b.Rule("B", rules.NewSeq(rules.Ref("x"), rules.Ref("z")))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	a, err := grammar.Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	aSym, _ := g.Symbol("A")
	bSym, _ := g.Symbol("B")
	aRule, _ := g.Rule(aSym)
	bRule, _ := g.Rule(bSym)
	S := NewParseItemSet(
		StartItem(aSym, aRule, grammata.EOF),
		StartItem(bSym, bRule, grammata.EOF),
	)
	merged, err := SymTransitions(S, a)
	if err != nil {
		t.Fatal(err)
	}
	// every key of every single item appears in the merged map, and the
	// merged destination is a superset of the item's own destination
	for _, item := range S.Items() {
		ts, err := ItemSymTransitions(item, a)
		if err != nil {
			t.Fatal(err)
		}
		for _, sym := range ts.Keys() {
			own, _ := ts.Get(sym)
			dest, ok := merged.Get(sym)
			if !ok {
				t.Fatalf("key %s lost in merged transitions", g.SymbolName(sym))
			}
			for _, next := range own.Items() {
				if !dest.Contains(next) {
					t.Errorf("merged destination for %s misses item %s", g.SymbolName(sym), next)
				}
			}
		}
	}
	xSym, _ := g.Symbol("x")
	dest, ok := merged.Get(xSym)
	if !ok || dest.Size() != 2 {
		t.Errorf("both items transition on x, destination should union them, got %v", dest)
	}
}

func TestMixedRuleTreesRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.tables")
	defer teardown()
	//
	g, a := makeSeqGrammar(t)
	ySym, _ := g.Symbol("Y")
	// a symbol reference inside a lexical tree
	item := LexItem{LHS: grammata.Terminal(0), Rule: rules.SymbolRef{Sym: ySym}}
	if _, err := ItemCharTransitions(item); err == nil {
		t.Error("symbol reference in a lexical tree should be rejected")
	}
	// a character set inside a syntactic tree
	pitem := StartItem(ySym, chars('y', 'y'), grammata.EOF)
	if _, err := ItemSymTransitions(pitem, a); err == nil {
		t.Error("character set in a syntactic tree should be rejected")
	}
}
