package tables

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// Item sets are kept in gods treesets, ordered by the items' canonical
// string keys. The order is arbitrary but total, which gives deterministic
// iteration, order-independent equality and a stable fingerprint for state
// interning.

func lexItemComparator(a, b interface{}) int {
	return strings.Compare(a.(LexItem).key(), b.(LexItem).key())
}

func parseItemComparator(a, b interface{}) int {
	return strings.Compare(a.(ParseItem).key(), b.(ParseItem).key())
}

// fingerprintable is what gets hashed for state interning.
type fingerprintable struct {
	Keys []string
}

// LexItemSet is an unordered collection of lexical items; membership is by
// structural item equality.
type LexItemSet struct {
	set *treeset.Set
}

// NewLexItemSet creates an item set holding the given items.
func NewLexItemSet(items ...LexItem) *LexItemSet {
	S := &LexItemSet{set: treeset.NewWith(lexItemComparator)}
	for _, item := range items {
		S.set.Add(item)
	}
	return S
}

// Add inserts an item; duplicates are ignored.
func (S *LexItemSet) Add(item LexItem) {
	S.set.Add(item)
}

// Contains reports set membership by structural equality.
func (S *LexItemSet) Contains(item LexItem) bool {
	return S.set.Contains(item)
}

// Size returns the number of items.
func (S *LexItemSet) Size() int {
	return S.set.Size()
}

// Empty is true for the empty set.
func (S *LexItemSet) Empty() bool {
	return S.set.Empty()
}

// Items returns all items in canonical order.
func (S *LexItemSet) Items() []LexItem {
	values := S.set.Values()
	items := make([]LexItem, len(values))
	for i, v := range values {
		items[i] = v.(LexItem)
	}
	return items
}

// Union returns a new set holding the items of both operands.
func (S *LexItemSet) Union(other *LexItemSet) *LexItemSet {
	result := NewLexItemSet(S.Items()...)
	for _, item := range other.Items() {
		result.Add(item)
	}
	return result
}

// Equal reports order-independent set equality.
func (S *LexItemSet) Equal(other *LexItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	a, b := S.set.Values(), other.set.Values()
	for i := range a {
		if !a[i].(LexItem).Equals(b[i].(LexItem)) {
			return false
		}
	}
	return true
}

// Fingerprint returns a structural hash of the set, identical for
// structurally equal sets however they were derived.
func (S *LexItemSet) Fingerprint() string {
	fp := fingerprintable{Keys: make([]string, 0, S.Size())}
	for _, item := range S.Items() {
		fp.Keys = append(fp.Keys, item.key())
	}
	return fmt.Sprintf("%x", structhash.Sha1(fp, 1))
}

func (S *LexItemSet) String() string {
	return itemSetString(S.set)
}

// ParseItemSet is an unordered collection of parse items; membership is by
// structural item equality.
type ParseItemSet struct {
	set *treeset.Set
}

// NewParseItemSet creates an item set holding the given items.
func NewParseItemSet(items ...ParseItem) *ParseItemSet {
	S := &ParseItemSet{set: treeset.NewWith(parseItemComparator)}
	for _, item := range items {
		S.set.Add(item)
	}
	return S
}

// Add inserts an item; duplicates are ignored.
func (S *ParseItemSet) Add(item ParseItem) {
	S.set.Add(item)
}

// Contains reports set membership by structural equality.
func (S *ParseItemSet) Contains(item ParseItem) bool {
	return S.set.Contains(item)
}

// Size returns the number of items.
func (S *ParseItemSet) Size() int {
	return S.set.Size()
}

// Empty is true for the empty set.
func (S *ParseItemSet) Empty() bool {
	return S.set.Empty()
}

// Items returns all items in canonical order.
func (S *ParseItemSet) Items() []ParseItem {
	values := S.set.Values()
	items := make([]ParseItem, len(values))
	for i, v := range values {
		items[i] = v.(ParseItem)
	}
	return items
}

// Union returns a new set holding the items of both operands.
func (S *ParseItemSet) Union(other *ParseItemSet) *ParseItemSet {
	result := NewParseItemSet(S.Items()...)
	for _, item := range other.Items() {
		result.Add(item)
	}
	return result
}

// Equal reports order-independent set equality.
func (S *ParseItemSet) Equal(other *ParseItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	a, b := S.set.Values(), other.set.Values()
	for i := range a {
		if !a[i].(ParseItem).Equals(b[i].(ParseItem)) {
			return false
		}
	}
	return true
}

// Fingerprint returns a structural hash of the set, identical for
// structurally equal sets however they were derived.
func (S *ParseItemSet) Fingerprint() string {
	fp := fingerprintable{Keys: make([]string, 0, S.Size())}
	for _, item := range S.Items() {
		fp.Keys = append(fp.Keys, item.key())
	}
	return fmt.Sprintf("%x", structhash.Sha1(fp, 1))
}

func (S *ParseItemSet) String() string {
	return itemSetString(S.set)
}

func itemSetString(set *treeset.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, v := range set.Values() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteString(" }")
	return b.String()
}
