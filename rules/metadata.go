package rules

import "fmt"

// Associativity resolves shift/reduce conflicts between equal precedences.
type Associativity int8

// Associativity values. AssocNone means "not declared".
const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return "none"
}

// MetadataInfo is the payload of a Metadata wrapper node. Zero values mean
// "not declared here"; HasPrecedence disambiguates a declared precedence of
// zero from an undeclared one.
type MetadataInfo struct {
	Precedence    int
	HasPrecedence bool
	Assoc         Associativity
	IsString      bool
	Alias         string
	AliasIsNamed  bool
}

// Prec is a convenience constructor for a precedence-only wrapper.
func Prec(p int, r Rule) Rule {
	return Wrap(r, MetadataInfo{Precedence: p, HasPrecedence: true})
}

// PrecAssoc is a convenience constructor for a precedence+associativity wrapper.
func PrecAssoc(p int, a Associativity, r Rule) Rule {
	return Wrap(r, MetadataInfo{Precedence: p, HasPrecedence: true, Assoc: a})
}

// EffectiveMetadata walks through the Metadata wrappers at the top of a rule
// tree and collects the effective values: for every field, the outermost
// wrapper that declares it wins. Rules without wrappers yield the zero
// MetadataInfo (no precedence, no associativity).
func EffectiveMetadata(r Rule) MetadataInfo {
	var info MetadataInfo
	for {
		m, ok := r.(Metadata)
		if !ok {
			return info
		}
		if !info.HasPrecedence && m.Info.HasPrecedence {
			info.Precedence = m.Info.Precedence
			info.HasPrecedence = true
		}
		if info.Assoc == AssocNone {
			info.Assoc = m.Info.Assoc
		}
		if m.Info.IsString {
			info.IsString = true
		}
		if info.Alias == "" && m.Info.Alias != "" {
			info.Alias = m.Info.Alias
			info.AliasIsNamed = m.Info.AliasIsNamed
		}
		r = m.Inner
	}
}

// key renders the metadata payload for the canonical rule format.
func (info MetadataInfo) key() string {
	s := ""
	if info.HasPrecedence {
		s += fmt.Sprintf(" p%d", info.Precedence)
	}
	if info.Assoc != AssocNone {
		s += " " + info.Assoc.String()
	}
	if info.IsString {
		s += " str"
	}
	if info.Alias != "" {
		s += fmt.Sprintf(" as(%s,%v)", info.Alias, info.AliasIsNamed)
	}
	return s
}
