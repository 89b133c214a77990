package grammata

import "fmt"

// --- Interned symbols -------------------------------------------------------

// SymbolKind distinguishes the three flavours of interned grammar symbols.
type SymbolKind int8

// Symbol kinds. EndKind marks the pseudo-terminal for end-of-input, used
// as the lookahead of start items.
const (
	TerminalKind SymbolKind = iota
	NonTerminalKind
	EndKind
)

// Symbol is an interned grammar symbol: either a terminal (token), a
// non-terminal, or the end-of-input marker. Symbols are small value types;
// equality and ordering go by (kind, index), never by name. Names are kept
// by the grammar that interned the symbol.
type Symbol struct {
	Kind  SymbolKind
	Index int
}

// EOF is the end-of-input marker symbol.
var EOF = Symbol{Kind: EndKind}

// Terminal creates an interned terminal symbol.
func Terminal(index int) Symbol {
	return Symbol{Kind: TerminalKind, Index: index}
}

// NonTerminal creates an interned non-terminal symbol.
func NonTerminal(index int) Symbol {
	return Symbol{Kind: NonTerminalKind, Index: index}
}

// IsTerminal is true for terminals and for the end-of-input marker.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalKind || s.Kind == EndKind
}

// IsNonTerminal is true for non-terminal symbols.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminalKind
}

// IsEnd is true for the end-of-input marker.
func (s Symbol) IsEnd() bool {
	return s.Kind == EndKind
}

func (s Symbol) String() string {
	switch s.Kind {
	case TerminalKind:
		return fmt.Sprintf("t%d", s.Index)
	case NonTerminalKind:
		return fmt.Sprintf("n%d", s.Index)
	case EndKind:
		return "$"
	}
	return fmt.Sprintf("?%d", s.Index)
}

// Compare orders symbols by (kind, index). Terminals sort before
// non-terminals, the end marker last.
func (s Symbol) Compare(other Symbol) int {
	if s.Kind != other.Kind {
		return int(s.Kind) - int(other.Kind)
	}
	return s.Index - other.Index
}

// SymbolComparator adapts Symbol.Compare for ordered containers
// (gods treesets and treemaps).
func SymbolComparator(a, b interface{}) int {
	s1 := a.(Symbol)
	s2 := b.(Symbol)
	return s1.Compare(s2)
}
