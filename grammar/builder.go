package grammar

import (
	"github.com/grammata/grammata"
	"github.com/grammata/grammata/rules"
)

// Builder assembles a prepared grammar. Clients declare tokens and
// non-terminal rules under names, then call Grammar() to intern all by-name
// references and freeze the result.
//
//	b := grammar.NewBuilder("G")
//	b.Token("a", rules.CharSet{Set: rules.SingleChar('a')})
//	b.Rule("S", rules.NewSeq(rules.Ref("S"), rules.Ref("a")))
//	g, err := b.Grammar()
type Builder struct {
	name              string
	terminals         []Variable
	nonterminals      []Variable
	extras            []string
	externals         []string
	supertypes        []string
	expectedConflicts [][]string
	wordToken         string
}

// NewBuilder creates a grammar builder.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Token declares a terminal under the given name, owning a lexical rule
// tree. Declaration order determines the terminal's interned index.
func (b *Builder) Token(name string, r rules.Rule) *Builder {
	sym := grammata.Terminal(len(b.terminals))
	b.terminals = append(b.terminals, Variable{Name: name, Sym: sym, Rule: r})
	return b
}

// Rule declares a non-terminal under the given name, owning a syntactic
// rule tree. Repeated declarations of the same name add alternatives.
func (b *Builder) Rule(name string, r rules.Rule) *Builder {
	for i, v := range b.nonterminals {
		if v.Name == name {
			b.nonterminals[i].Rule = rules.NewChoice(v.Rule, r)
			return b
		}
	}
	sym := grammata.NonTerminal(len(b.nonterminals))
	b.nonterminals = append(b.nonterminals, Variable{Name: name, Sym: sym, Rule: r})
	return b
}

// Extra declares a token that may occur anywhere in the input.
func (b *Builder) Extra(name string) *Builder {
	b.extras = append(b.extras, name)
	return b
}

// ExternalToken declares a token supplied by an external scanner.
func (b *Builder) ExternalToken(name string) *Builder {
	b.externals = append(b.externals, name)
	return b
}

// Supertype declares a supertype symbol.
func (b *Builder) Supertype(name string) *Builder {
	b.supertypes = append(b.supertypes, name)
	return b
}

// ExpectConflict whitelists an ambiguity between the named symbols. The
// table builder will keep both actions of a matching conflict instead of
// failing.
func (b *Builder) ExpectConflict(names ...string) *Builder {
	b.expectedConflicts = append(b.expectedConflicts, names)
	return b
}

// WordToken declares the keyword-extraction word token.
func (b *Builder) WordToken(name string) *Builder {
	b.wordToken = name
	return b
}

// Grammar interns all by-name references and returns the prepared grammar.
// Referencing an undefined name is a GrammarError.
func (b *Builder) Grammar() (*Grammar, error) {
	g := &Grammar{
		Name:         b.name,
		terminals:    append([]Variable(nil), b.terminals...),
		nonterminals: make([]Variable, 0, len(b.nonterminals)),
	}
	for _, v := range b.nonterminals {
		interned, err := b.intern(v.Rule)
		if err != nil {
			return nil, err
		}
		g.nonterminals = append(g.nonterminals, Variable{Name: v.Name, Sym: v.Sym, Rule: interned})
	}
	var err error
	if g.extras, err = b.internNames(b.extras); err != nil {
		return nil, err
	}
	if g.externals, err = b.internNames(b.externals); err != nil {
		return nil, err
	}
	if g.supertypes, err = b.internNames(b.supertypes); err != nil {
		return nil, err
	}
	for _, group := range b.expectedConflicts {
		syms, err := b.internNames(group)
		if err != nil {
			return nil, err
		}
		g.expectedConflicts = append(g.expectedConflicts, syms)
	}
	if b.wordToken != "" {
		sym, ok := b.lookup(b.wordToken)
		if !ok {
			return nil, ErrorfAt(b.wordToken, "undefined word token")
		}
		g.wordToken, g.hasWordToken = sym, true
	}
	tracer().Debugf("prepared grammar %q: %d tokens, %d non-terminals",
		g.Name, len(g.terminals), len(g.nonterminals))
	return g, nil
}

func (b *Builder) lookup(name string) (grammata.Symbol, bool) {
	for _, v := range b.terminals {
		if v.Name == name {
			return v.Sym, true
		}
	}
	for _, v := range b.nonterminals {
		if v.Name == name {
			return v.Sym, true
		}
	}
	return grammata.Symbol{}, false
}

func (b *Builder) internNames(names []string) ([]grammata.Symbol, error) {
	var syms []grammata.Symbol
	for _, name := range names {
		sym, ok := b.lookup(name)
		if !ok {
			return nil, ErrorfAt(name, "undefined symbol")
		}
		syms = append(syms, sym)
	}
	return syms, nil
}

// intern replaces every NamedRef leaf by a SymbolRef to the interned
// symbol of the same name.
func (b *Builder) intern(r rules.Rule) (rules.Rule, error) {
	switch x := r.(type) {
	case rules.NamedRef:
		sym, ok := b.lookup(x.Name)
		if !ok {
			return nil, ErrorfAt(x.Name, "reference to undefined symbol")
		}
		return rules.SymbolRef{Sym: sym}, nil
	case rules.Seq:
		left, err := b.intern(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.intern(x.Right)
		if err != nil {
			return nil, err
		}
		return rules.Seq{Left: left, Right: right}, nil
	case rules.Choice:
		alts := make([]rules.Rule, len(x.Alternatives))
		for i, a := range x.Alternatives {
			interned, err := b.intern(a)
			if err != nil {
				return nil, err
			}
			alts[i] = interned
		}
		return rules.Choice{Alternatives: alts}, nil
	case rules.Repeat:
		inner, err := b.intern(x.Inner)
		if err != nil {
			return nil, err
		}
		return rules.Repeat{Inner: inner}, nil
	case rules.Metadata:
		inner, err := b.intern(x.Inner)
		if err != nil {
			return nil, err
		}
		return rules.Metadata{Inner: inner, Info: x.Info}, nil
	default: // Blank, CharSet, SymbolRef
		return r, nil
	}
}
