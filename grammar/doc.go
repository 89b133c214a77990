/*
Package grammar provides prepared grammars for automaton construction.

A prepared grammar is a finalized, validated view of a grammar source: every
terminal (token) owns a lexical rule tree over character sets, every
non-terminal owns a syntactic rule tree over interned symbol references,
and global metadata (extra tokens, external tokens, declared conflicts,
supertypes) is attached. Prepared grammars are immutable after construction
and shared read-only by every downstream component.

Grammars are put together with a builder:

	b := grammar.NewBuilder("Expressions")
	b.Token("number", rules.CharSet{Set: rules.NewCharacterSet(rules.CharRange{'0', '9'})})
	b.Rule("Sum", rules.NewChoice(
		rules.NewSeq(rules.Ref("Sum"), rules.Ref("plus"), rules.Ref("Product")),
		rules.Ref("Product"),
	))
	g, err := b.Grammar()

The builder interns every by-name reference into an interned symbol;
referencing an undefined name is a GrammarError.

Package grammar also hosts the static grammar analysis: per-non-terminal
nullability and FIRST sets, computed as a fixed point. The analysis feeds
lookahead propagation during item-set closure and is the analogue of
classical FIRST/FOLLOW grammar analysis.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammata.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("grammata.grammar")
}
