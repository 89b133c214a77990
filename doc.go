/*
Package grammata compiles grammar specifications into deterministic
automata: a lexical automaton classifying input characters into tokens, and
a syntactic automaton recognizing token/non-terminal sequences, with
declared ambiguities retained for GLR-capable runtimes. Package structure
is as follows:

■ rules: the rule-expression model — character sets and the combinator
tree (sequence, choice, repetition, metadata) that grammar rules are made
of.

■ grammar: prepared grammars, the grammar builder, and static analysis
(nullability, FIRST sets).

■ tables: the automaton construction core — items, item-set closure,
item-set transitions with character-range partitioning, the automaton
builders and the conflict-resolving table generator.

■ sparse: sparse integer matrices backing the generated tables.

The base package contains the interned-symbol type used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammata
