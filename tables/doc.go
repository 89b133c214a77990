/*
Package tables constructs deterministic automata from prepared grammars.

The construction operates on items: partially-matched rule instances,
pairing an owning left-hand symbol with the residual rule expression that
remains to be matched. Lexical items track progress through a single
token's rule tree; parse items additionally carry the number of symbols
consumed so far and an LR(1) lookahead symbol.

Item sets represent automaton states under construction. Three operations
drive the construction:

■ rule derivatives: for a single rule-expression node, the set of one-step
advancements, keyed by character set (lexical) or by grammar symbol
(syntactic);

■ closure: saturating a parse item set by expanding every item positioned
at a non-terminal into items for all of that non-terminal's alternatives,
with LR(1) lookahead propagation;

■ item-set transitions: lifting per-item derivatives to whole item sets,
unioning destinations that collide on a key. Overlapping character-set
keys are partitioned into disjoint sub-ranges so that no state ever
classifies a character into two competing classes.

On top of these, the automaton builders run a breadth-first worklist over
item sets, interning each distinct closed item set as a numbered state and
deriving transition/action tables, with conflicts resolved by declared
precedence and associativity or tolerated per the grammar's declared
conflicts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tables

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammata.tables'.
func tracer() tracing.Trace {
	return tracing.Select("grammata.tables")
}
