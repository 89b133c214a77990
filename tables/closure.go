package tables

import (
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
)

// closureBound caps the number of items one closure may grow to. Item
// deduplication bounds every closure in theory; the cap turns a grammar
// that still manages to blow up into a reportable error instead of an
// endless build.
const closureBound = 1 << 16

// Closure saturates a parse item set: every item positioned at a
// non-terminal is expanded into one new item per alternative of that
// non-terminal, at consumed count zero, with the lookahead inherited per
// the LR(1) rule — the FIRST set of what the expanding item expects after
// the non-terminal, plus the item's own lookahead if that remainder is
// nullable. Newly added items are expanded the same way until the set is
// stable.
//
// Closure is monotone (every input item is in the result) and idempotent.
// The input set is not modified.
func Closure(S *ParseItemSet, a *grammar.Analysis) (*ParseItemSet, error) {
	C := NewParseItemSet(S.Items()...)
	worklist := S.Items()
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]
		ts, err := ruleSymTransitions(item.Rule, a)
		if err != nil {
			return nil, err
		}
		var expandErr error
		ts.Each(func(k, v interface{}) {
			if expandErr != nil {
				return
			}
			sym := k.(grammata.Symbol)
			if !sym.IsNonTerminal() {
				return
			}
			lookaheads := followLookaheads(item, v.(rules.Rule), a)
			added, err := expand(C, sym, lookaheads, a)
			if err != nil {
				expandErr = err
				return
			}
			worklist = append(worklist, added...)
		})
		if expandErr != nil {
			return nil, expandErr
		}
		if C.Size() > closureBound {
			return nil, grammar.Errorf("closure of item set does not terminate (%d items)", C.Size())
		}
	}
	return C, nil
}

// followLookaheads computes the lookahead symbols for items derived from a
// non-terminal occurrence inside item: the terminals that can begin the
// remainder after the non-terminal; if the remainder is nullable, the
// item's own lookahead propagates through.
func followLookaheads(item ParseItem, remainder rules.Rule, a *grammar.Analysis) []grammata.Symbol {
	lookaheads := a.RuleFirst(remainder)
	if a.RuleNullable(remainder) {
		lookaheads = append(lookaheads, item.Lookahead)
	}
	return lookaheads
}

// expand adds one item per (alternative, lookahead) pair for a
// non-terminal, returning the items that were actually new. A non-terminal
// without any alternative cannot ever be completed and is a grammar error.
func expand(C *ParseItemSet, sym grammata.Symbol, lookaheads []grammata.Symbol,
	a *grammar.Analysis) ([]ParseItem, error) {
	//
	alternatives, err := a.Grammar().Alternatives(sym)
	if err != nil {
		return nil, err
	}
	if len(alternatives) == 0 {
		return nil, grammar.ErrorfAt(a.Grammar().SymbolName(sym), "non-terminal has no alternatives")
	}
	var added []ParseItem
	for _, alt := range alternatives {
		for _, la := range lookaheads {
			next := StartItem(sym, alt, la)
			if !C.Contains(next) {
				C.Add(next)
				added = append(added, next)
			}
		}
	}
	return added, nil
}
