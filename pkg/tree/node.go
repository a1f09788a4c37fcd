// Package tree defines the syntax tree consumed by the STN evaluator. The
// tree is produced by an upstream lexer/parser; this package only carries the
// contract plus helpers for building trees in tests and decoding fixture
// files.
package tree

// Leader characters that may prefix a node.
const (
	NoLeader     byte = 0
	GlobalLeader byte = '#'
	LocalLeader  byte = '@'
	GetterLeader byte = '.'
	SetterLeader byte = '!'
	KeyLeader    byte = ':'
	TypeLeader   byte = '%'
)

// Node is one tree element: an optional leader, an atom payload and an
// optional parenthesized block. A nil Block means the node has no block; an
// empty non-nil Block is the block "()".
type Node struct {
	Leader byte
	Atom   string
	Block  []*Node
}

// HasBlock reports whether the node carries a block.
func (n *Node) HasBlock() bool {
	return n != nil && n.Block != nil
}

// Statement is one top-level statement: the ordered nodes between statement
// boundaries.
type Statement struct {
	Nodes []*Node
}

// Tree is the whole input: statements in source order plus the named text
// sections of the data block.
type Tree struct {
	Statements []Statement
	Data       map[string]string
}

// Append adds the statements and data sections of other to t. Data sections
// from other replace sections of the same name.
func (t *Tree) Append(other *Tree) {
	if other == nil {
		return
	}
	t.Statements = append(t.Statements, other.Statements...)
	if len(other.Data) == 0 {
		return
	}
	if t.Data == nil {
		t.Data = make(map[string]string, len(other.Data))
	}
	for name, text := range other.Data {
		t.Data[name] = text
	}
}
