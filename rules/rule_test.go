package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeqCanonicalShape(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}
	b := CharSet{Set: SingleChar('b')}
	c := CharSet{Set: SingleChar('c')}

	assert.True(t, Equal(NewSeq(), Blank{}))
	assert.True(t, Equal(NewSeq(Blank{}, Blank{}), Blank{}))
	assert.True(t, Equal(NewSeq(a), a), "single operand should stay unwrapped")
	assert.True(t, Equal(NewSeq(Blank{}, a, Blank{}), a), "blanks should vanish from sequences")
	assert.True(t, Equal(NewSeq(a, b, c), Seq{Left: a, Right: Seq{Left: b, Right: c}}))
}

func TestNewChoiceCanonicalShape(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}
	b := CharSet{Set: SingleChar('b')}
	c := CharSet{Set: SingleChar('c')}

	assert.True(t, Equal(NewChoice(a), a), "single alternative should stay unwrapped")
	assert.True(t, Equal(NewChoice(a, a), a), "duplicates should collapse")
	assert.True(t, Equal(
		NewChoice(a, NewChoice(b, c)),
		Choice{Alternatives: []Rule{a, b, c}},
	), "nested choices should flatten")
	assert.True(t, Equal(NewChoice(a, b, a), Choice{Alternatives: []Rule{a, b}}))
}

func TestNewRepeat(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}
	assert.True(t, Equal(NewRepeat(a), Repeat{Inner: a}))
	assert.True(t, Equal(NewRepeat(Blank{}), Blank{}), "repeating blank is blank")
}

func TestStructuralEquality(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}
	b := CharSet{Set: SingleChar('b')}

	assert.True(t, Equal(Seq{Left: a, Right: b}, Seq{Left: a, Right: b}))
	assert.False(t, Equal(Seq{Left: a, Right: b}, Seq{Left: b, Right: a}))
	assert.False(t, Equal(a, Seq{Left: a, Right: b}))
	assert.True(t, Equal(Ref("x"), Ref("x")))
	assert.False(t, Equal(Ref("x"), Ref("y")))

	wrapped := Prec(3, a)
	assert.False(t, Equal(wrapped, a), "metadata wrappers take part in equality")
	assert.True(t, Equal(wrapped, Prec(3, a)))
	assert.False(t, Equal(wrapped, Prec(4, a)))
}

func TestEffectiveMetadata(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}

	info := EffectiveMetadata(a)
	assert.False(t, info.HasPrecedence)
	assert.Equal(t, AssocNone, info.Assoc)

	info = EffectiveMetadata(PrecAssoc(5, AssocLeft, a))
	assert.True(t, info.HasPrecedence)
	assert.Equal(t, 5, info.Precedence)
	assert.Equal(t, AssocLeft, info.Assoc)

	// nested wrappers: the outermost declared value wins per field
	r := Prec(7, PrecAssoc(5, AssocRight, a))
	info = EffectiveMetadata(r)
	assert.Equal(t, 7, info.Precedence)
	assert.Equal(t, AssocRight, info.Assoc, "associativity not declared outside should shine through")
}

func TestFormatInjective(t *testing.T) {
	a := CharSet{Set: SingleChar('a')}
	b := CharSet{Set: SingleChar('b')}

	trees := []Rule{
		Blank{},
		a,
		Seq{Left: a, Right: b},
		Seq{Left: b, Right: a},
		Choice{Alternatives: []Rule{a, b}},
		Repeat{Inner: a},
		Prec(1, a),
		Prec(2, a),
		Ref("x"),
	}
	seen := map[string]Rule{}
	for _, tree := range trees {
		key := Format(tree)
		if prev, ok := seen[key]; ok {
			t.Errorf("distinct trees render identically: %v and %v as %q", prev, tree, key)
		}
		seen[key] = tree
	}
}
