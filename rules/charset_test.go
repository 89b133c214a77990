package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacterSetNormalization(t *testing.T) {
	cs := NewCharacterSet(CharRange{'f', 'k'}, CharRange{'a', 'c'}, CharRange{'d', 'g'})
	assert.Equal(t, []CharRange{{'a', 'k'}}, cs.Ranges(), "overlapping and adjacent ranges should coalesce")

	cs = NewCharacterSet(CharRange{'z', 'a'}) // empty range
	assert.True(t, cs.IsEmpty())

	cs = NewCharacterSet(CharRange{-5, 'b'}, CharRange{MaxCodePoint - 1, MaxCodePoint + 10})
	assert.Equal(t, []CharRange{{0, 'b'}, {MaxCodePoint - 1, MaxCodePoint}}, cs.Ranges(),
		"out-of-universe bounds should be clipped")
}

func TestCharacterSetMembership(t *testing.T) {
	cs := NewCharacterSet(CharRange{'a', 'f'}, CharRange{'x', 'z'})
	assert.True(t, cs.Contains('a'))
	assert.True(t, cs.Contains('f'))
	assert.True(t, cs.Contains('y'))
	assert.False(t, cs.Contains('g'))
	assert.False(t, cs.Contains('w'))
	assert.Equal(t, 9, cs.Size())
}

func TestCharacterSetEquality(t *testing.T) {
	a := NewCharacterSet(CharRange{'a', 'c'}, CharRange{'d', 'f'})
	b := NewCharacterSet(CharRange{'a', 'f'})
	assert.True(t, a.Equal(b), "canonical form should make differently built equal sets compare equal")
	assert.Equal(t, 0, a.Compare(b))

	c := NewCharacterSet(CharRange{'a', 'g'})
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, 0, a.Compare(c))
}

func TestCharacterSetAlgebra(t *testing.T) {
	a := NewCharacterSet(CharRange{'a', 'm'})
	b := NewCharacterSet(CharRange{'h', 'z'})

	assert.Equal(t, []CharRange{{'a', 'z'}}, a.Union(b).Ranges())
	assert.Equal(t, []CharRange{{'h', 'm'}}, a.Intersect(b).Ranges())
	assert.Equal(t, []CharRange{{'a', 'g'}}, a.Subtract(b).Ranges())
	assert.Equal(t, []CharRange{{'n', 'z'}}, b.Subtract(a).Ranges())

	disjoint := NewCharacterSet(CharRange{'0', '9'})
	assert.True(t, a.Intersect(disjoint).IsEmpty())
	assert.True(t, a.Subtract(a).IsEmpty())
}

func TestCharacterSetComplement(t *testing.T) {
	a := NewCharacterSet(CharRange{'b', 'y'})
	co := a.Complement()
	assert.False(t, co.Contains('b'))
	assert.False(t, co.Contains('y'))
	assert.True(t, co.Contains('a'))
	assert.True(t, co.Contains('z'))
	assert.True(t, co.Contains(0))
	assert.True(t, co.Contains(MaxCodePoint))

	assert.True(t, NewCharacterSet().Complement().Equal(AllChars()))
	assert.True(t, AllChars().Complement().IsEmpty())
	assert.True(t, a.Complement().Complement().Equal(a), "double complement should round-trip")
}

func TestCharsIn(t *testing.T) {
	cs := CharsIn("while")
	assert.Equal(t, 5, cs.Size())
	assert.True(t, cs.Contains('w'))
	assert.True(t, cs.Contains('e'))
	assert.False(t, cs.Contains('x'))
}

func TestCharacterSetString(t *testing.T) {
	cs := NewCharacterSet(CharRange{'a', 'z'}, CharRange{'0', '0'})
	assert.Equal(t, "[0 a-z]", cs.String())
	assert.Equal(t, "[\\u0009]", SingleChar('\t').String())
}
