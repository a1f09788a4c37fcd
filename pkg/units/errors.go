package units

import (
	"fmt"

	"github.com/mtaka/STN-Core/pkg/tree"
)

// StructuralError reports an input tree that violates the node contract.
// It is the only error that aborts an evaluation.
type StructuralError struct {
	Statement int
	Leader    Leader
	Atom      string
	Message   string
}

// Unit renders the offending unit as written, e.g. "%Person".
func (e *StructuralError) Unit() string {
	if e.Leader != None {
		return string(rune(e.Leader)) + e.Atom
	}
	return e.Atom
}

func (e *StructuralError) Error() string {
	at := e.Unit()
	if at == "" {
		return fmt.Sprintf("structure: statement %d: %s", e.Statement+1, e.Message)
	}
	return fmt.Sprintf("structure: statement %d: %s at %q", e.Statement+1, e.Message, at)
}

func structuralErrorf(stmt int, node *tree.Node, format string, args ...any) *StructuralError {
	err := &StructuralError{Statement: stmt, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Leader = Leader(node.Leader)
		err.Atom = node.Atom
	}
	return err
}
