// Package units reclassifies raw tree nodes into Leader-tagged units and
// statement-level definition (meta) units.
package units

import "github.com/mtaka/STN-Core/pkg/tree"

// Leader is the structural role marker of a unit.
type Leader byte

const (
	None   Leader = Leader(tree.NoLeader)
	Global Leader = Leader(tree.GlobalLeader)
	Local  Leader = Leader(tree.LocalLeader)
	Getter Leader = Leader(tree.GetterLeader)
	Setter Leader = Leader(tree.SetterLeader)
	Key    Leader = Leader(tree.KeyLeader)
	Type   Leader = Leader(tree.TypeLeader)
)

// BatchAtom is the setter atom that selects the batch setter "!+".
const BatchAtom = "+"

// Valid reports whether l is in the closed leader set.
func (l Leader) Valid() bool {
	switch l {
	case None, Global, Local, Getter, Setter, Key, Type:
		return true
	}
	return false
}

func (l Leader) String() string {
	if l == None {
		return "literal"
	}
	return string(rune(l))
}

// Unit is a leader with its payload. Block is nil when the unit carries no
// block and non-nil (possibly empty) otherwise.
type Unit struct {
	Leader Leader
	Atom   string
	Block  []*Unit
}

// HasBlock reports whether the unit carries a block.
func (u *Unit) HasBlock() bool { return u.Block != nil }

// IsLiteral reports whether u is a bare literal atom.
func (u *Unit) IsLiteral() bool { return u.Leader == None && u.Block == nil }

// IsBareBlock reports whether u is a leaderless block.
func (u *Unit) IsBareBlock() bool { return u.Leader == None && u.Block != nil }

// IsChain reports whether u continues the preceding element (getter or
// setter).
func (u *Unit) IsChain() bool { return u.Leader == Getter || u.Leader == Setter }

// IsBatch reports whether u is the batch setter "!+".
func (u *Unit) IsBatch() bool { return u.Leader == Setter && u.Atom == BatchAtom }

// MetaKind classifies a definition statement.
type MetaKind int

const (
	Expression MetaKind = iota
	GlobalVarDef
	LocalVarDef
	TypeDef
)

func (k MetaKind) String() string {
	switch k {
	case GlobalVarDef:
		return "global definition"
	case LocalVarDef:
		return "local definition"
	case TypeDef:
		return "type definition"
	default:
		return "expression"
	}
}

// Statement is a reconstructed top-level statement. For definitions Name is
// the defined name; Units holds the right-hand side of variable definitions,
// the parameter block of a TypeDef, or the whole expression.
type Statement struct {
	Index int
	Meta  MetaKind
	Name  string
	Units []*Unit
}

// IsDefinition reports whether the statement introduces a binding or type.
func (s *Statement) IsDefinition() bool { return s.Meta != Expression }
