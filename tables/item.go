package tables

import (
	"fmt"

	"github.com/grammata/grammata"
	"github.com/grammata/grammata/rules"
)

// LexItem is partial progress through a single token's rule tree: the
// owning token symbol plus the residual rule expression still to be
// matched. Lexical items carry no lookahead.
type LexItem struct {
	LHS  grammata.Symbol
	Rule rules.Rule
}

// Equals compares two lexical items structurally.
func (item LexItem) Equals(other LexItem) bool {
	return item.LHS == other.LHS && rules.Equal(item.Rule, other.Rule)
}

// Completes reports whether the item may accept here, i.e. whether its
// residual rule can match the empty string.
func (item LexItem) Completes() bool {
	return lexNullable(item.Rule)
}

func (item LexItem) String() string {
	return fmt.Sprintf("[%s ::= %s]", item.LHS, rules.Format(item.Rule))
}

// key is the canonical ordering key of an item. rules.Format is injective
// over canonical trees, so key equality coincides with structural equality.
func (item LexItem) key() string {
	return item.String()
}

// ParseItem is partial progress through a production: the owning
// non-terminal, the residual rule expression, the number of symbols
// consumed so far (recovers the production length on reduction), and the
// LR(1) lookahead symbol that must follow for this item to be valid.
type ParseItem struct {
	LHS       grammata.Symbol
	Rule      rules.Rule
	Consumed  int
	Lookahead grammata.Symbol
}

// StartItem creates a parse item at position zero of a production.
func StartItem(lhs grammata.Symbol, r rules.Rule, lookahead grammata.Symbol) ParseItem {
	return ParseItem{LHS: lhs, Rule: r, Consumed: 0, Lookahead: lookahead}
}

// Equals compares two parse items structurally: left-hand symbol, residual
// rule shape, consumed count and lookahead must all match. Semantically
// equal but differently shaped residuals do not compare equal; canonical
// residual shapes are the transition functions' responsibility.
func (item ParseItem) Equals(other ParseItem) bool {
	return item.LHS == other.LHS &&
		item.Consumed == other.Consumed &&
		item.Lookahead == other.Lookahead &&
		rules.Equal(item.Rule, other.Rule)
}

// Precedence returns the effective precedence declared on the residual
// rule (0 if none); ok tells whether a precedence was declared at all.
func (item ParseItem) Precedence() (int, bool) {
	info := rules.EffectiveMetadata(item.Rule)
	return info.Precedence, info.HasPrecedence
}

// Associativity returns the effective associativity declared on the
// residual rule.
func (item ParseItem) Associativity() rules.Associativity {
	return rules.EffectiveMetadata(item.Rule).Assoc
}

func (item ParseItem) String() string {
	return fmt.Sprintf("[%s ::= %s •%d, %s]",
		item.LHS, rules.Format(item.Rule), item.Consumed, item.Lookahead)
}

func (item ParseItem) key() string {
	return item.String()
}

// lexNullable reports whether a lexical rule tree can match the empty
// string. Symbol references do not occur in lexical trees; they count as
// non-nullable here and are rejected by the transition functions.
func lexNullable(r rules.Rule) bool {
	switch x := r.(type) {
	case rules.Blank:
		return true
	case rules.Seq:
		return lexNullable(x.Left) && lexNullable(x.Right)
	case rules.Choice:
		for _, alt := range x.Alternatives {
			if lexNullable(alt) {
				return true
			}
		}
		return false
	case rules.Repeat:
		return true
	case rules.Metadata:
		return lexNullable(x.Inner)
	}
	return false
}
