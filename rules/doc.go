/*
Package rules implements the rule-expression model for grammars.

A grammar rule is an immutable tree of nodes: character-set leaves for
lexical rules, symbol references for syntactic rules, and sequence, choice,
repeat and metadata combinators. Trees are shared between items and item
sets of the automaton construction; sharing is safe because nodes are never
mutated after creation.

Equality of rules is fully structural. The constructors NewSeq, NewChoice
and NewRepeat canonicalize tree shapes (blanks vanish from sequences,
choices are flat and deduplicated), so that structurally distinct trees
always denote distinct match semantics.

Character sets are kept in a canonical form of sorted, non-overlapping
code-point ranges and support the set algebra (union, intersection,
subtraction, complement) that the lexical automaton construction needs for
partitioning overlapping transition ranges.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rules
