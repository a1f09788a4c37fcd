package runtime

import (
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindEnum
	KindList
	KindDict
	KindRef
	KindEntity
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindRef:
		return "ref"
	case KindEntity:
		return "entity"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Value is the closed set of runtime values. Only types declared in this
// package implement it.
type Value interface {
	Kind() Kind
	value()
}

type TextValue struct {
	Val string
}

func (v TextValue) Kind() Kind { return KindText }
func (TextValue) value()       {}

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) value()       {}

// DateValue keeps ISO-8601 text verbatim; it is never parsed.
type DateValue struct {
	Val string
}

func (v DateValue) Kind() Kind { return KindDate }
func (DateValue) value()       {}

// EnumValue is permissive: Val is not checked against Choices.
type EnumValue struct {
	Val     string
	Choices []string
}

func (v EnumValue) Kind() Kind { return KindEnum }
func (EnumValue) value()       {}

type ListValue struct {
	Items []Value
}

func (v *ListValue) Kind() Kind { return KindList }
func (*ListValue) value()       {}

// NewList builds a list value from items.
func NewList(items ...Value) *ListValue {
	return &ListValue{Items: items}
}

// DictValue is an ordered mapping produced by the implicit-chunk rule.
type DictValue struct {
	Entries *Record
}

func (v *DictValue) Kind() Kind { return KindDict }
func (*DictValue) value()       {}

// NewDict builds an empty dict.
func NewDict() *DictValue {
	return &DictValue{Entries: NewRecord()}
}

// Scope selects the binding table a reference points into.
type Scope int

const (
	GlobalScope Scope = iota
	LocalScope
)

// Leader returns the leader character for the scope.
func (s Scope) Leader() byte {
	if s == LocalScope {
		return '@'
	}
	return '#'
}

func (s Scope) String() string {
	if s == LocalScope {
		return "local"
	}
	return "global"
}

// RefValue names another binding. Path lists getter keys applied after the
// binding is resolved. Refs are resolved lazily through the Environment.
type RefValue struct {
	Scope Scope
	Name  string
	Path  []string
}

func (v RefValue) Kind() Kind { return KindRef }
func (RefValue) value()       {}

// EntityValue is a typed record: a fixed field set taken from its TypeDef at
// construction and an open property set grown by setters.
type EntityValue struct {
	TypeName string
	Fields   *Record
	Props    *Record
	// Reserved is the instance's own "__" element. Only entities without a
	// TypeDef carry one; typed entities read the TypeDef's.
	Reserved Value
}

func (v *EntityValue) Kind() Kind { return KindEntity }
func (*EntityValue) value()       {}

// NewEntity builds an entity with no fields and no props.
func NewEntity(typeName string) *EntityValue {
	return &EntityValue{TypeName: typeName, Fields: NewRecord(), Props: NewRecord(), Reserved: Empty}
}

// Lookup returns the field or prop stored under key and whether it exists.
// A field bound to Empty is reported as present.
func (v *EntityValue) Lookup(key string) (Value, bool) {
	if val, ok := v.Fields.Get(key); ok {
		return val, true
	}
	return v.Props.Get(key)
}

// EmptyValue is the sentinel for unresolved lookups.
type EmptyValue struct{}

func (EmptyValue) Kind() Kind { return KindEmpty }
func (EmptyValue) value()     {}

// Empty is the single shared sentinel instance.
var Empty Value = EmptyValue{}

// IsEmpty reports whether v is the Empty sentinel (a nil Value counts).
func IsEmpty(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(EmptyValue)
	return ok
}

// FormatNumber renders a number without a trailing ".0" when it is whole.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
