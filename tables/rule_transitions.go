package tables

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/grammar"
	"github.com/grammata/grammata/rules"
	"golang.org/x/exp/slices"
)

// === Rule derivatives =======================================================

// A derivative is the one-step advancement of a rule expression: the
// consumed unit (character set or grammar symbol) paired with the residual
// expression after consuming it. The functions below compute all
// derivatives of a single rule node. They are pure and deterministic: a
// fixed input tree always yields the same keys with the same residual
// shapes, which downstream item-set equality depends on.

// charKeyed is one entry of a character-set-keyed transition map.
type charKeyed[T any] struct {
	set   rules.CharacterSet
	value T
}

// ruleCharTransitions computes the character derivatives of a lexical rule
// tree. The resulting entries have pairwise disjoint character sets.
// Symbol references are invalid in lexical trees.
func ruleCharTransitions(r rules.Rule) ([]charKeyed[rules.Rule], error) {
	switch x := r.(type) {
	case rules.Blank:
		return nil, nil
	case rules.CharSet:
		if x.Set.IsEmpty() {
			return nil, nil
		}
		return []charKeyed[rules.Rule]{{set: x.Set, value: rules.Blank{}}}, nil
	case rules.NamedRef:
		return nil, grammar.ErrorfAt(x.Name, "un-interned reference in lexical rule tree")
	case rules.SymbolRef:
		return nil, grammar.Errorf("symbol reference %s in lexical rule tree", x.Sym)
	case rules.Seq:
		left, err := ruleCharTransitions(x.Left)
		if err != nil {
			return nil, err
		}
		result := mapCharValues(left, func(residual rules.Rule) rules.Rule {
			return rules.NewSeq(residual, x.Right)
		})
		if lexNullable(x.Left) {
			right, err := ruleCharTransitions(x.Right)
			if err != nil {
				return nil, err
			}
			result = mergeCharKeyed(result, right, combineRules)
		}
		return result, nil
	case rules.Choice:
		var result []charKeyed[rules.Rule]
		for _, alt := range x.Alternatives {
			t, err := ruleCharTransitions(alt)
			if err != nil {
				return nil, err
			}
			result = mergeCharKeyed(result, t, combineRules)
		}
		return result, nil
	case rules.Repeat:
		inner, err := ruleCharTransitions(x.Inner)
		if err != nil {
			return nil, err
		}
		return mapCharValues(inner, func(residual rules.Rule) rules.Rule {
			return rules.NewSeq(residual, x) // loop back into the repeat
		}), nil
	case rules.Metadata:
		inner, err := ruleCharTransitions(x.Inner)
		if err != nil {
			return nil, err
		}
		return mapCharValues(inner, func(residual rules.Rule) rules.Rule {
			return rules.Wrap(residual, x.Info) // metadata survives into the next state
		}), nil
	}
	return nil, grammar.Errorf("unknown rule node in lexical rule tree")
}

// ruleSymTransitions computes the symbol derivatives of a syntactic rule
// tree, as an ordered map from grammar symbol to residual rule. Character
// sets are invalid in syntactic trees. Nullability of symbol references
// comes from the grammar analysis.
func ruleSymTransitions(r rules.Rule, a *grammar.Analysis) (*treemap.Map, error) {
	result := treemap.NewWith(grammata.SymbolComparator)
	if err := collectSymTransitions(r, a, result); err != nil {
		return nil, err
	}
	return result, nil
}

func collectSymTransitions(r rules.Rule, a *grammar.Analysis, into *treemap.Map) error {
	switch x := r.(type) {
	case rules.Blank:
		return nil
	case rules.CharSet:
		return grammar.Errorf("character set %s in syntactic rule tree", x.Set)
	case rules.NamedRef:
		return grammar.ErrorfAt(x.Name, "un-interned reference in syntactic rule tree")
	case rules.SymbolRef:
		putSymTransition(into, x.Sym, rules.Blank{})
		return nil
	case rules.Seq:
		left, err := ruleSymTransitions(x.Left, a)
		if err != nil {
			return err
		}
		left.Each(func(k, v interface{}) {
			putSymTransition(into, k.(grammata.Symbol), rules.NewSeq(v.(rules.Rule), x.Right))
		})
		if a.RuleNullable(x.Left) {
			return collectSymTransitions(x.Right, a, into)
		}
		return nil
	case rules.Choice:
		for _, alt := range x.Alternatives {
			if err := collectSymTransitions(alt, a, into); err != nil {
				return err
			}
		}
		return nil
	case rules.Repeat:
		inner, err := ruleSymTransitions(x.Inner, a)
		if err != nil {
			return err
		}
		inner.Each(func(k, v interface{}) {
			putSymTransition(into, k.(grammata.Symbol), rules.NewSeq(v.(rules.Rule), x))
		})
		return nil
	case rules.Metadata:
		inner, err := ruleSymTransitions(x.Inner, a)
		if err != nil {
			return err
		}
		inner.Each(func(k, v interface{}) {
			putSymTransition(into, k.(grammata.Symbol), rules.Wrap(v.(rules.Rule), x.Info))
		})
		return nil
	}
	return grammar.Errorf("unknown rule node in syntactic rule tree")
}

// putSymTransition adds a symbol-keyed derivative; a colliding key unions
// the residuals into a choice.
func putSymTransition(m *treemap.Map, sym grammata.Symbol, residual rules.Rule) {
	if prev, ok := m.Get(sym); ok {
		residual = combineRules(prev.(rules.Rule), residual)
	}
	m.Put(sym, residual)
}

func combineRules(a, b rules.Rule) rules.Rule {
	return rules.NewChoice(a, b)
}

// === Character-range partitioning ===========================================

// mergeCharKeyed folds a second character-keyed transition map into a
// first one. Entries whose key sets overlap without being identical are
// split into the overlap and the exclusive remainders; each resulting
// sub-range carries the combination of whichever original values cover it.
// The merged entries are pairwise disjoint and cover exactly the union of
// both inputs' key sets.
func mergeCharKeyed[T any](left, right []charKeyed[T], combine func(T, T) T) []charKeyed[T] {
	result := append([]charKeyed[T](nil), left...)
	for _, r := range right {
		remaining := r.set
		n := len(result) // only split against pre-existing entries
		for i := 0; i < n && !remaining.IsEmpty(); i++ {
			overlap := result[i].set.Intersect(remaining)
			if overlap.IsEmpty() {
				continue
			}
			leftOnly := result[i].set.Subtract(overlap)
			combined := combine(result[i].value, r.value)
			if leftOnly.IsEmpty() {
				result[i] = charKeyed[T]{set: overlap, value: combined}
			} else {
				leftValue := result[i].value
				result[i] = charKeyed[T]{set: leftOnly, value: leftValue}
				result = append(result, charKeyed[T]{set: overlap, value: combined})
			}
			remaining = remaining.Subtract(overlap)
		}
		if !remaining.IsEmpty() {
			result = append(result, charKeyed[T]{set: remaining, value: r.value})
		}
	}
	sortCharKeyed(result)
	return result
}

func mapCharValues[T, U any](in []charKeyed[T], f func(T) U) []charKeyed[U] {
	out := make([]charKeyed[U], len(in))
	for i, e := range in {
		out[i] = charKeyed[U]{set: e.set, value: f(e.value)}
	}
	return out
}

func sortCharKeyed[T any](edges []charKeyed[T]) {
	slices.SortFunc(edges, func(a, b charKeyed[T]) int {
		return a.set.Compare(b.set)
	})
}
