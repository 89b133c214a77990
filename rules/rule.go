package rules

import (
	"fmt"
	"strings"

	"github.com/grammata/grammata"
)

// Rule is one node of an immutable rule-expression tree. The concrete node
// types form a closed sum; all algorithms over rules pattern-match with a
// type switch. Nodes are shared freely between trees and are never mutated
// after construction.
type Rule interface {
	rule()
}

// Blank matches the empty string.
type Blank struct{}

// CharSet is a leaf matching one code point out of a character set.
// It may only appear in lexical rule trees.
type CharSet struct {
	Set CharacterSet
}

// NamedRef is a leaf referencing another rule by name. It only occurs in
// rule trees under construction; grammar preparation interns every NamedRef
// into a SymbolRef.
type NamedRef struct {
	Name string
}

// SymbolRef is a leaf matching one interned grammar symbol. It may only
// appear in syntactic rule trees.
type SymbolRef struct {
	Sym grammata.Symbol
}

// Seq matches Left followed by Right.
type Seq struct {
	Left, Right Rule
}

// Choice matches any one of its alternatives.
type Choice struct {
	Alternatives []Rule
}

// Repeat matches zero or more occurrences of Inner.
type Repeat struct {
	Inner Rule
}

// Metadata wraps a rule with precedence/associativity/alias information.
// The wrapper does not change what the inner rule matches.
type Metadata struct {
	Inner Rule
	Info  MetadataInfo
}

func (Blank) rule()     {}
func (CharSet) rule()   {}
func (NamedRef) rule()  {}
func (SymbolRef) rule() {}
func (Seq) rule()       {}
func (Choice) rule()    {}
func (Repeat) rule()    {}
func (Metadata) rule()  {}

// --- Canonicalizing constructors --------------------------------------------

// Residual trees produced by the transition functions must have one canonical
// shape per match semantics, because item equality is structural. The
// constructors below establish that shape: blanks vanish from sequences,
// choices are flat, deduplicated and never unary.

// NewSeq chains rules left-to-right into nested Seq nodes, dropping Blank
// operands. An empty or all-blank argument list yields Blank.
func NewSeq(rs ...Rule) Rule {
	var result Rule = Blank{}
	for i := len(rs) - 1; i >= 0; i-- {
		r := rs[i]
		if isBlank(r) {
			continue
		}
		if isBlank(result) {
			result = r
		} else {
			result = Seq{Left: r, Right: result}
		}
	}
	return result
}

// NewChoice builds a choice over the given alternatives, flattening nested
// choices and removing structural duplicates. A single remaining alternative
// is returned unwrapped.
func NewChoice(rs ...Rule) Rule {
	alts := make([]Rule, 0, len(rs))
	for _, r := range rs {
		alts = appendAlternative(alts, r)
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return Choice{Alternatives: alts}
}

func appendAlternative(alts []Rule, r Rule) []Rule {
	if c, ok := r.(Choice); ok {
		for _, a := range c.Alternatives {
			alts = appendAlternative(alts, a)
		}
		return alts
	}
	for _, a := range alts {
		if Equal(a, r) {
			return alts
		}
	}
	return append(alts, r)
}

// NewRepeat wraps r in a Repeat node. Repeating Blank is Blank.
func NewRepeat(r Rule) Rule {
	if isBlank(r) {
		return Blank{}
	}
	return Repeat{Inner: r}
}

// Wrap attaches metadata to a rule.
func Wrap(r Rule, info MetadataInfo) Rule {
	return Metadata{Inner: r, Info: info}
}

// Ref creates a by-name reference leaf.
func Ref(name string) Rule {
	return NamedRef{Name: name}
}

func isBlank(r Rule) bool {
	_, ok := r.(Blank)
	return ok
}

// --- Structural equality ------------------------------------------------

// Equal compares two rule trees structurally. Metadata wrappers take part
// in the comparison: a wrapped rule is not equal to its bare inner rule,
// since the wrapper carries precedence information that must survive state
// deduplication.
func Equal(a, b Rule) bool {
	switch x := a.(type) {
	case Blank:
		_, ok := b.(Blank)
		return ok
	case CharSet:
		y, ok := b.(CharSet)
		return ok && x.Set.Equal(y.Set)
	case NamedRef:
		y, ok := b.(NamedRef)
		return ok && x.Name == y.Name
	case SymbolRef:
		y, ok := b.(SymbolRef)
		return ok && x.Sym == y.Sym
	case Seq:
		y, ok := b.(Seq)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Choice:
		y, ok := b.(Choice)
		if !ok || len(x.Alternatives) != len(y.Alternatives) {
			return false
		}
		for i := range x.Alternatives {
			if !Equal(x.Alternatives[i], y.Alternatives[i]) {
				return false
			}
		}
		return true
	case Repeat:
		y, ok := b.(Repeat)
		return ok && Equal(x.Inner, y.Inner)
	case Metadata:
		y, ok := b.(Metadata)
		return ok && x.Info == y.Info && Equal(x.Inner, y.Inner)
	}
	return false
}

// --- Display ------------------------------------------------------------

// Format renders a rule tree in a compact prefix notation. The rendering is
// injective over canonical trees, so it doubles as an ordering key for item
// sets.
func Format(r Rule) string {
	var b strings.Builder
	format(&b, r)
	return b.String()
}

func format(b *strings.Builder, r Rule) {
	switch x := r.(type) {
	case Blank:
		b.WriteString("ε")
	case CharSet:
		b.WriteString(x.Set.String())
	case NamedRef:
		fmt.Fprintf(b, "@%s", x.Name)
	case SymbolRef:
		b.WriteString(x.Sym.String())
	case Seq:
		b.WriteString("(seq ")
		format(b, x.Left)
		b.WriteString(" ")
		format(b, x.Right)
		b.WriteString(")")
	case Choice:
		b.WriteString("(choice")
		for _, a := range x.Alternatives {
			b.WriteString(" ")
			format(b, a)
		}
		b.WriteString(")")
	case Repeat:
		b.WriteString("(repeat ")
		format(b, x.Inner)
		b.WriteString(")")
	case Metadata:
		fmt.Fprintf(b, "(meta%s ", x.Info.key())
		format(b, x.Inner)
		b.WriteString(")")
	default:
		b.WriteString("?")
	}
}
