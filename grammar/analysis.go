package grammar

import (
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/rules"
	"golang.org/x/exp/slices"
)

// Analysis holds the results of static grammar analysis: per-non-terminal
// nullability and FIRST sets, computed as a fixed point over the syntactic
// rule trees. An Analysis is immutable and shared read-only, like the
// grammar it belongs to.
type Analysis struct {
	g        *Grammar
	nullable map[grammata.Symbol]bool
	first    map[grammata.Symbol]symbolSet
}

type symbolSet map[grammata.Symbol]struct{}

func (set symbolSet) add(sym grammata.Symbol) bool {
	if _, ok := set[sym]; ok {
		return false
	}
	set[sym] = struct{}{}
	return true
}

func (set symbolSet) addAll(other symbolSet) bool {
	changed := false
	for sym := range other {
		if set.add(sym) {
			changed = true
		}
	}
	return changed
}

func (set symbolSet) sorted() []grammata.Symbol {
	syms := make([]grammata.Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, grammata.Symbol.Compare)
	return syms
}

// Analyze computes nullability and FIRST sets for all non-terminals of a
// prepared grammar. References to undefined symbols surface as a
// GrammarError.
func Analyze(g *Grammar) (*Analysis, error) {
	a := &Analysis{
		g:        g,
		nullable: make(map[grammata.Symbol]bool),
		first:    make(map[grammata.Symbol]symbolSet),
	}
	for i := 0; i < g.NonTerminalCount(); i++ {
		a.first[g.NonTerminal(i).Sym] = symbolSet{}
	}
	if err := a.checkReferences(); err != nil {
		return nil, err
	}
	// fixed point: grow nullability and FIRST until stable
	for changed := true; changed; {
		changed = false
		for i := 0; i < g.NonTerminalCount(); i++ {
			v := g.NonTerminal(i)
			if !a.nullable[v.Sym] && a.ruleNullable(v.Rule) {
				a.nullable[v.Sym] = true
				changed = true
			}
			if a.first[v.Sym].addAll(a.ruleFirst(v.Rule)) {
				changed = true
			}
		}
	}
	for i := 0; i < g.NonTerminalCount(); i++ {
		v := g.NonTerminal(i)
		tracer().Debugf("FIRST(%s) = %v, nullable = %v",
			v.Name, a.first[v.Sym].sorted(), a.nullable[v.Sym])
	}
	return a, nil
}

func (a *Analysis) checkReferences() error {
	for i := 0; i < a.g.NonTerminalCount(); i++ {
		v := a.g.NonTerminal(i)
		if err := a.checkRule(v.Rule); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analysis) checkRule(r rules.Rule) error {
	switch x := r.(type) {
	case rules.NamedRef:
		return ErrorfAt(x.Name, "rule tree contains un-interned reference")
	case rules.SymbolRef:
		if _, ok := a.g.Variable(x.Sym); !ok && !x.Sym.IsEnd() {
			return Errorf("reference to undefined symbol %s", x.Sym)
		}
	case rules.Seq:
		if err := a.checkRule(x.Left); err != nil {
			return err
		}
		return a.checkRule(x.Right)
	case rules.Choice:
		for _, alt := range x.Alternatives {
			if err := a.checkRule(alt); err != nil {
				return err
			}
		}
	case rules.Repeat:
		return a.checkRule(x.Inner)
	case rules.Metadata:
		return a.checkRule(x.Inner)
	}
	return nil
}

// Grammar returns the analyzed grammar.
func (a *Analysis) Grammar() *Grammar {
	return a.g
}

// Nullable reports whether a symbol can derive the empty string.
// Terminals and the end marker are never nullable.
func (a *Analysis) Nullable(sym grammata.Symbol) bool {
	return a.nullable[sym]
}

// First returns the FIRST set of a non-terminal, sorted.
func (a *Analysis) First(sym grammata.Symbol) []grammata.Symbol {
	return a.first[sym].sorted()
}

// RuleNullable reports whether a rule tree can match the empty string.
func (a *Analysis) RuleNullable(r rules.Rule) bool {
	return a.ruleNullable(r)
}

// RuleFirst returns the set of terminals that can begin a match of the
// given rule tree, sorted.
func (a *Analysis) RuleFirst(r rules.Rule) []grammata.Symbol {
	return a.ruleFirst(r).sorted()
}

func (a *Analysis) ruleNullable(r rules.Rule) bool {
	switch x := r.(type) {
	case rules.Blank:
		return true
	case rules.CharSet:
		return false
	case rules.SymbolRef:
		return a.nullable[x.Sym]
	case rules.Seq:
		return a.ruleNullable(x.Left) && a.ruleNullable(x.Right)
	case rules.Choice:
		for _, alt := range x.Alternatives {
			if a.ruleNullable(alt) {
				return true
			}
		}
		return false
	case rules.Repeat:
		return true
	case rules.Metadata:
		return a.ruleNullable(x.Inner)
	}
	return false
}

func (a *Analysis) ruleFirst(r rules.Rule) symbolSet {
	result := symbolSet{}
	a.collectFirst(r, result)
	return result
}

func (a *Analysis) collectFirst(r rules.Rule, into symbolSet) {
	switch x := r.(type) {
	case rules.SymbolRef:
		if x.Sym.IsTerminal() {
			into.add(x.Sym)
		} else {
			into.addAll(a.first[x.Sym])
		}
	case rules.Seq:
		a.collectFirst(x.Left, into)
		if a.ruleNullable(x.Left) {
			a.collectFirst(x.Right, into)
		}
	case rules.Choice:
		for _, alt := range x.Alternatives {
			a.collectFirst(alt, into)
		}
	case rules.Repeat:
		a.collectFirst(x.Inner, into)
	case rules.Metadata:
		a.collectFirst(x.Inner, into)
	}
}
