package grammar

import (
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/rules"
)

// Variable is one named grammar entry: a terminal with its lexical rule
// tree, or a non-terminal with its syntactic rule tree.
type Variable struct {
	Name string
	Sym  grammata.Symbol
	Rule rules.Rule
}

// Grammar is a prepared grammar: interned symbols, one rule tree per
// variable, plus global metadata. Grammars are immutable once built.
type Grammar struct {
	Name string

	terminals    []Variable
	nonterminals []Variable

	extras            []grammata.Symbol
	externals         []grammata.Symbol
	supertypes        []grammata.Symbol
	expectedConflicts [][]grammata.Symbol
	wordToken         grammata.Symbol
	hasWordToken      bool
}

// TerminalCount returns the number of terminal (token) variables.
func (g *Grammar) TerminalCount() int {
	return len(g.terminals)
}

// NonTerminalCount returns the number of non-terminal variables.
func (g *Grammar) NonTerminalCount() int {
	return len(g.nonterminals)
}

// Terminal returns the i-th terminal variable.
func (g *Grammar) Terminal(i int) Variable {
	return g.terminals[i]
}

// NonTerminal returns the i-th non-terminal variable.
func (g *Grammar) NonTerminal(i int) Variable {
	return g.nonterminals[i]
}

// Variable resolves an interned symbol to its variable. ok is false for
// the end marker and for out-of-range indices.
func (g *Grammar) Variable(sym grammata.Symbol) (Variable, bool) {
	switch sym.Kind {
	case grammata.TerminalKind:
		if sym.Index >= 0 && sym.Index < len(g.terminals) {
			return g.terminals[sym.Index], true
		}
	case grammata.NonTerminalKind:
		if sym.Index >= 0 && sym.Index < len(g.nonterminals) {
			return g.nonterminals[sym.Index], true
		}
	}
	return Variable{}, false
}

// Rule returns the rule tree owned by sym. Undefined symbols are a
// GrammarError.
func (g *Grammar) Rule(sym grammata.Symbol) (rules.Rule, error) {
	v, ok := g.Variable(sym)
	if !ok {
		return nil, Errorf("undefined symbol %s", sym)
	}
	return v.Rule, nil
}

// Alternatives returns the top-level alternatives of the rule owned by a
// non-terminal: the members of an outer Choice, or the rule itself.
// Metadata wrappers around the whole rule distribute over the alternatives
// so that precedence declarations survive the split.
func (g *Grammar) Alternatives(sym grammata.Symbol) ([]rules.Rule, error) {
	r, err := g.Rule(sym)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return splitAlternatives(r, nil), nil
}

func splitAlternatives(r rules.Rule, wrappers []rules.MetadataInfo) []rules.Rule {
	switch x := r.(type) {
	case rules.Metadata:
		return splitAlternatives(x.Inner, append(wrappers, x.Info))
	case rules.Choice:
		var alts []rules.Rule
		for _, a := range x.Alternatives {
			alts = append(alts, rewrap(a, wrappers))
		}
		return alts
	default:
		return []rules.Rule{rewrap(r, wrappers)}
	}
}

func rewrap(r rules.Rule, wrappers []rules.MetadataInfo) rules.Rule {
	for i := len(wrappers) - 1; i >= 0; i-- {
		r = rules.Wrap(r, wrappers[i])
	}
	return r
}

// SymbolName resolves an interned symbol to its declared name. The end
// marker renders as "$"; unknown symbols fall back to their index form.
func (g *Grammar) SymbolName(sym grammata.Symbol) string {
	if v, ok := g.Variable(sym); ok {
		return v.Name
	}
	return sym.String()
}

// Symbol looks up an interned symbol by name.
func (g *Grammar) Symbol(name string) (grammata.Symbol, bool) {
	for _, v := range g.terminals {
		if v.Name == name {
			return v.Sym, true
		}
	}
	for _, v := range g.nonterminals {
		if v.Name == name {
			return v.Sym, true
		}
	}
	return grammata.Symbol{}, false
}

// EachSymbol applies a mapper function to every interned symbol,
// terminals first. Iteration stops early if the mapper returns non-nil,
// and that value is returned.
func (g *Grammar) EachSymbol(f func(sym grammata.Symbol) interface{}) interface{} {
	for _, v := range g.terminals {
		if r := f(v.Sym); r != nil {
			return r
		}
	}
	for _, v := range g.nonterminals {
		if r := f(v.Sym); r != nil {
			return r
		}
	}
	return nil
}

// Extras returns the symbols that may occur anywhere in the input
// (whitespace, comments).
func (g *Grammar) Extras() []grammata.Symbol {
	return g.extras
}

// ExternalTokens returns the tokens provided by an external scanner.
func (g *Grammar) ExternalTokens() []grammata.Symbol {
	return g.externals
}

// Supertypes returns the declared supertype symbols.
func (g *Grammar) Supertypes() []grammata.Symbol {
	return g.supertypes
}

// WordToken returns the declared word token, if any.
func (g *Grammar) WordToken() (grammata.Symbol, bool) {
	return g.wordToken, g.hasWordToken
}

// ExpectedConflict reports whether the grammar declared tolerance for an
// ambiguity between the given non-terminals. Declared conflict groups match
// irrespective of order.
func (g *Grammar) ExpectedConflict(syms []grammata.Symbol) bool {
	for _, group := range g.expectedConflicts {
		if symbolsCovered(syms, group) {
			return true
		}
	}
	return false
}

func symbolsCovered(syms, group []grammata.Symbol) bool {
	for _, s := range syms {
		found := false
		for _, t := range group {
			if s == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
