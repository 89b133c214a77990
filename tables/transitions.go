package tables

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
)

// === Item-set transitions ===================================================

// The per-item derivative maps are lifted to whole item sets here. When two
// items transition on the same key, their destination item sets are unioned
// (element-wise, without closure; closing each destination is the automaton
// builder's job), because one automaton state must represent all ways to be
// in that state. Character-set keys additionally go through range
// partitioning, so the merged key sets are pairwise disjoint.

// CharEdge is one entry of a character-keyed item-set transition map.
type CharEdge struct {
	Set rules.CharacterSet
	To  *LexItemSet
}

// ItemCharTransitions computes the transitions of a single lexical item:
// every character derivative of its rule, each destination wrapped into a
// singleton item set.
func ItemCharTransitions(item LexItem) ([]CharEdge, error) {
	ts, err := ruleCharTransitions(item.Rule)
	if err != nil {
		return nil, err
	}
	edges := make([]CharEdge, len(ts))
	for i, t := range ts {
		edges[i] = CharEdge{
			Set: t.set,
			To:  NewLexItemSet(LexItem{LHS: item.LHS, Rule: t.value}),
		}
	}
	return edges, nil
}

// CharTransitions computes the merged transition map of a lexical item
// set. The resulting edges have pairwise disjoint character sets whose
// union equals the union of all per-item transition sets, and each edge's
// destination is the union of every contributing item's destination.
func CharTransitions(S *LexItemSet) ([]CharEdge, error) {
	var merged []charKeyed[*LexItemSet]
	for _, item := range S.Items() {
		edges, err := ItemCharTransitions(item)
		if err != nil {
			return nil, err
		}
		keyed := make([]charKeyed[*LexItemSet], len(edges))
		for i, e := range edges {
			keyed[i] = charKeyed[*LexItemSet]{set: e.Set, value: e.To}
		}
		merged = mergeCharKeyed(merged, keyed, (*LexItemSet).Union)
	}
	result := make([]CharEdge, len(merged))
	for i, e := range merged {
		result[i] = CharEdge{Set: e.set, To: e.value}
	}
	return result, nil
}

// SymMap is an ordered mapping from grammar symbol to destination parse
// item set. Iteration order follows symbol order and is deterministic.
type SymMap struct {
	m *treemap.Map
}

func newSymMap() *SymMap {
	return &SymMap{m: treemap.NewWith(grammata.SymbolComparator)}
}

// Size returns the number of keys.
func (t *SymMap) Size() int {
	return t.m.Size()
}

// Keys returns all symbol keys in symbol order.
func (t *SymMap) Keys() []grammata.Symbol {
	keys := make([]grammata.Symbol, 0, t.m.Size())
	for _, k := range t.m.Keys() {
		keys = append(keys, k.(grammata.Symbol))
	}
	return keys
}

// Get returns the destination item set for a symbol.
func (t *SymMap) Get(sym grammata.Symbol) (*ParseItemSet, bool) {
	v, ok := t.m.Get(sym)
	if !ok {
		return nil, false
	}
	return v.(*ParseItemSet), true
}

// Each applies f to every (symbol, destination) pair in symbol order.
func (t *SymMap) Each(f func(sym grammata.Symbol, dest *ParseItemSet)) {
	t.m.Each(func(k, v interface{}) {
		f(k.(grammata.Symbol), v.(*ParseItemSet))
	})
}

func (t *SymMap) put(sym grammata.Symbol, dest *ParseItemSet) {
	if prev, ok := t.m.Get(sym); ok {
		dest = prev.(*ParseItemSet).Union(dest)
	}
	t.m.Put(sym, dest)
}

// ItemSymTransitions computes the transitions of a single parse item:
// every symbol derivative of its rule, the consumed-symbol count advanced
// by one and the lookahead carried over, each destination wrapped into a
// singleton item set.
func ItemSymTransitions(item ParseItem, a *grammar.Analysis) (*SymMap, error) {
	ts, err := ruleSymTransitions(item.Rule, a)
	if err != nil {
		return nil, err
	}
	result := newSymMap()
	ts.Each(func(k, v interface{}) {
		next := ParseItem{
			LHS:       item.LHS,
			Rule:      v.(rules.Rule),
			Consumed:  item.Consumed + 1,
			Lookahead: item.Lookahead,
		}
		result.put(k.(grammata.Symbol), NewParseItemSet(next))
	})
	return result, nil
}

// SymTransitions computes the merged transition map of a parse item set:
// an exact-key union of the per-item maps. Every symbol key present in any
// single item's transitions appears in the merged map, with a destination
// that is a superset of that item's own destination.
func SymTransitions(S *ParseItemSet, a *grammar.Analysis) (*SymMap, error) {
	result := newSymMap()
	for _, item := range S.Items() {
		ts, err := ItemSymTransitions(item, a)
		if err != nil {
			return nil, err
		}
		ts.Each(result.put)
	}
	return result, nil
}
