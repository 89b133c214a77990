package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// MaxCodePoint is the upper bound of the code-point universe.
const MaxCodePoint = utf8.MaxRune

// CharRange is one inclusive range of code points.
type CharRange struct {
	Lo, Hi rune
}

// CharacterSet is an immutable set of code points, stored as sorted,
// non-overlapping, non-adjacent inclusive ranges. The canonical form is
// established at construction, so two sets denote the same code points
// iff their range slices are identical.
type CharacterSet struct {
	ranges []CharRange
}

// NewCharacterSet builds a set from arbitrary ranges. Overlapping, adjacent
// and unordered input ranges are normalized; ranges outside the code-point
// universe are clipped.
func NewCharacterSet(ranges ...CharRange) CharacterSet {
	return CharacterSet{ranges: normalize(ranges)}
}

// SingleChar builds a set containing exactly one code point.
func SingleChar(c rune) CharacterSet {
	return NewCharacterSet(CharRange{c, c})
}

// CharsIn builds a set from the code points of a string.
func CharsIn(s string) CharacterSet {
	ranges := make([]CharRange, 0, len(s))
	for _, c := range s {
		ranges = append(ranges, CharRange{c, c})
	}
	return NewCharacterSet(ranges...)
}

// AllChars is the full code-point universe.
func AllChars() CharacterSet {
	return CharacterSet{ranges: []CharRange{{0, MaxCodePoint}}}
}

func normalize(in []CharRange) []CharRange {
	ranges := make([]CharRange, 0, len(in))
	for _, r := range in {
		if r.Hi < r.Lo || r.Hi < 0 || r.Lo > MaxCodePoint {
			continue
		}
		if r.Lo < 0 {
			r.Lo = 0
		}
		if r.Hi > MaxCodePoint {
			r.Hi = MaxCodePoint
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil
	}
	slices.SortFunc(ranges, func(a, b CharRange) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 { // overlapping or adjacent: coalesce
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsEmpty is true for the empty set.
func (cs CharacterSet) IsEmpty() bool {
	return len(cs.ranges) == 0
}

// Ranges returns a copy of the canonical range list.
func (cs CharacterSet) Ranges() []CharRange {
	return append([]CharRange(nil), cs.ranges...)
}

// Size returns the number of code points in the set.
func (cs CharacterSet) Size() int {
	n := 0
	for _, r := range cs.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Contains reports whether c is a member of the set.
func (cs CharacterSet) Contains(c rune) bool {
	for _, r := range cs.ranges {
		if c < r.Lo {
			return false
		}
		if c <= r.Hi {
			return true
		}
	}
	return false
}

// Equal reports set equality. Canonical form makes this a plain
// range-by-range comparison.
func (cs CharacterSet) Equal(other CharacterSet) bool {
	if len(cs.ranges) != len(other.ranges) {
		return false
	}
	for i, r := range cs.ranges {
		if r != other.ranges[i] {
			return false
		}
	}
	return true
}

// Union returns the set of code points in either set.
func (cs CharacterSet) Union(other CharacterSet) CharacterSet {
	merged := make([]CharRange, 0, len(cs.ranges)+len(other.ranges))
	merged = append(merged, cs.ranges...)
	merged = append(merged, other.ranges...)
	return CharacterSet{ranges: normalize(merged)}
}

// Intersect returns the set of code points in both sets.
func (cs CharacterSet) Intersect(other CharacterSet) CharacterSet {
	a, b := cs.ranges, other.ranges
	out := make([]CharRange, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Lo, b[j].Lo)
		hi := min(a[i].Hi, b[j].Hi)
		if lo <= hi {
			out = append(out, CharRange{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return CharacterSet{ranges: out} // already sorted and disjoint
}

// Subtract returns the set of code points in cs but not in other.
func (cs CharacterSet) Subtract(other CharacterSet) CharacterSet {
	return cs.Intersect(other.Complement())
}

// Complement returns the set of code points not in cs.
func (cs CharacterSet) Complement() CharacterSet {
	if len(cs.ranges) == 0 {
		return AllChars()
	}
	out := make([]CharRange, 0, len(cs.ranges)+1)
	cur := rune(0)
	for _, r := range cs.ranges {
		if cur < r.Lo {
			out = append(out, CharRange{cur, r.Lo - 1})
		}
		if r.Hi == MaxCodePoint {
			return CharacterSet{ranges: out}
		}
		cur = r.Hi + 1
	}
	out = append(out, CharRange{cur, MaxCodePoint})
	return CharacterSet{ranges: out}
}

// Compare orders sets lexicographically by their canonical range lists.
// The order is arbitrary but total and deterministic, which is all the
// transition maps need.
func (cs CharacterSet) Compare(other CharacterSet) int {
	a, b := cs.ranges, other.ranges
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Lo != b[i].Lo {
			return int(a[i].Lo - b[i].Lo)
		}
		if a[i].Hi != b[i].Hi {
			return int(a[i].Hi - b[i].Hi)
		}
	}
	return len(a) - len(b)
}

func (cs CharacterSet) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, r := range cs.ranges {
		if i > 0 {
			b.WriteString(" ")
		}
		if r.Lo == r.Hi {
			b.WriteString(charString(r.Lo))
		} else {
			fmt.Fprintf(&b, "%s-%s", charString(r.Lo), charString(r.Hi))
		}
	}
	b.WriteString("]")
	return b.String()
}

func charString(c rune) string {
	if c > 0x20 && c < 0x7f {
		return string(c)
	}
	return fmt.Sprintf("\\u%04x", c)
}

func min(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}

func max(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}
