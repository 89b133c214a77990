package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/grammata/grammata"
	"github.com/grammata/grammata/rules"
)

func TestBuilderInterning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Token("a", rules.CharSet{Set: rules.SingleChar('a')})
	b.Rule("S", rules.NewSeq(rules.Ref("S"), rules.Ref("a")))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	sSym, ok := g.Symbol("S")
	if !ok || !sSym.IsNonTerminal() {
		t.Fatalf("S not interned as non-terminal, got %v", sSym)
	}
	aSym, _ := g.Symbol("a")
	r, err := g.Rule(sSym)
	if err != nil {
		t.Fatal(err)
	}
	want := rules.Seq{Left: rules.SymbolRef{Sym: sSym}, Right: rules.SymbolRef{Sym: aSym}}
	if !rules.Equal(r, want) {
		t.Errorf("interned rule is %s, want %s", rules.Format(r), rules.Format(want))
	}
}

func TestBuilderUndefinedReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Rule("S", rules.Ref("nothing"))
	_, err := b.Grammar()
	if err == nil {
		t.Fatal("expected error for reference to undefined symbol")
	}
	var gerr *GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a GrammarError, got %T: %v", err, err)
	}
	if gerr.Name != "nothing" {
		t.Errorf("error should name the undefined symbol, got %q", gerr.Name)
	}
}

func TestBuilderRepeatedRuleAddsAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Token("x", rules.CharSet{Set: rules.SingleChar('x')})
	b.Token("y", rules.CharSet{Set: rules.SingleChar('y')})
	b.Rule("S", rules.Ref("x"))
	b.Rule("S", rules.Ref("y"))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	sSym, _ := g.Symbol("S")
	alts, err := g.Alternatives(sSym)
	if err != nil {
		t.Fatal(err)
	}
	if len(alts) != 2 {
		t.Errorf("expected 2 alternatives for S, got %d", len(alts))
	}
}

func TestAlternativesDistributeMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Token("x", rules.CharSet{Set: rules.SingleChar('x')})
	b.Token("y", rules.CharSet{Set: rules.SingleChar('y')})
	b.Rule("S", rules.Prec(3, rules.NewChoice(rules.Ref("x"), rules.Ref("y"))))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	sSym, _ := g.Symbol("S")
	alts, err := g.Alternatives(sSym)
	if err != nil {
		t.Fatal(err)
	}
	if len(alts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alts))
	}
	for _, alt := range alts {
		info := rules.EffectiveMetadata(alt)
		if !info.HasPrecedence || info.Precedence != 3 {
			t.Errorf("precedence should distribute over alternatives, got %s", rules.Format(alt))
		}
	}
}

func TestExternalTokenHasNoRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Token("comment", nil)
	b.ExternalToken("comment")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ext := g.ExternalTokens()
	if len(ext) != 1 {
		t.Fatalf("expected 1 external token, got %d", len(ext))
	}
	r, err := g.Rule(ext[0])
	if err != nil {
		t.Fatal(err)
	}
	if r != nil {
		t.Errorf("external token should own no rule tree, got %s", rules.Format(r))
	}
}

func TestExpectedConflictMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammata.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Token("x", rules.CharSet{Set: rules.SingleChar('x')})
	b.Rule("A", rules.Ref("x"))
	b.Rule("B", rules.Ref("x"))
	b.Rule("C", rules.Ref("x"))
	b.ExpectConflict("A", "B")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	aSym, _ := g.Symbol("A")
	bSym, _ := g.Symbol("B")
	cSym, _ := g.Symbol("C")
	if !g.ExpectedConflict([]grammata.Symbol{bSym, aSym}) {
		t.Error("declared conflict group should match irrespective of order")
	}
	if g.ExpectedConflict([]grammata.Symbol{aSym, cSym}) {
		t.Error("conflict involving an undeclared symbol should not match")
	}
}
