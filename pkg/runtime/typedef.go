package runtime

import "strings"

// KindTag enumerates the primitive kinds a TypeDef parameter may declare.
type KindTag int

const (
	TagText KindTag = iota
	TagNumber
	TagDate
	TagEnum
)

// PrimitiveKind annotates a TypeDef parameter. It steers literal conversion
// and is never enforced against content.
type PrimitiveKind struct {
	Tag     KindTag
	Choices []string
}

func TextKind() PrimitiveKind   { return PrimitiveKind{Tag: TagText} }
func NumberKind() PrimitiveKind { return PrimitiveKind{Tag: TagNumber} }
func DateKind() PrimitiveKind   { return PrimitiveKind{Tag: TagDate} }

// EnumKind builds an Enum kind with the given choices in order.
func EnumKind(choices ...string) PrimitiveKind {
	return PrimitiveKind{Tag: TagEnum, Choices: choices}
}

func (k PrimitiveKind) String() string {
	switch k.Tag {
	case TagNumber:
		return "Number"
	case TagDate:
		return "Date"
	case TagEnum:
		return "Enum(" + strings.Join(k.Choices, ",") + ")"
	default:
		return "Text"
	}
}

// TypeDef describes an entity type: ordered parameter names with kinds
// aligned by index. Params beyond len(Kinds) are Text.
type TypeDef struct {
	Name   string
	Params []string
	Kinds  []PrimitiveKind
	// Nested maps a parameter to the entity type its block arguments build.
	Nested map[string]string
	// Reserved is the type's "__" element, Empty when absent.
	Reserved Value
}

// NewTypeDef builds a TypeDef with no reserved element.
func NewTypeDef(name string, params []string, kinds []PrimitiveKind) *TypeDef {
	return &TypeDef{Name: name, Params: params, Kinds: kinds, Reserved: Empty}
}

// IndexOf returns the position of param, or -1.
func (td *TypeDef) IndexOf(param string) int {
	for idx, name := range td.Params {
		if name == param {
			return idx
		}
	}
	return -1
}

// KindOf returns the kind declared for the idx-th param.
func (td *TypeDef) KindOf(idx int) PrimitiveKind {
	if idx >= 0 && idx < len(td.Kinds) {
		return td.Kinds[idx]
	}
	return TextKind()
}

// KindFor returns the kind declared for param, Text when undeclared.
func (td *TypeDef) KindFor(param string) PrimitiveKind {
	return td.KindOf(td.IndexOf(param))
}

// NestedType returns the entity type bound to param, if any.
func (td *TypeDef) NestedType(param string) string {
	if td.Nested == nil {
		return ""
	}
	return td.Nested[param]
}
