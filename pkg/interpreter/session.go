package interpreter

import (
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
	"github.com/mtaka/STN-Core/pkg/units"
)

// Session evaluates statements incrementally against accumulated state.
// Each call runs both passes over its own statements, so later calls see
// the TypeDefs and bindings of earlier ones. A Session is not safe for
// concurrent use.
type Session struct {
	interp *Interpreter
	count  int
	last   runtime.Value
}

// NewSession starts an empty session.
func NewSession() *Session {
	return &Session{interp: New(), last: runtime.Empty}
}

// Eval evaluates stmts and returns the values of the bare expressions among
// them. On a structural error nothing is evaluated.
func (s *Session) Eval(stmts ...tree.Statement) ([]runtime.Value, error) {
	return s.EvalTree(&tree.Tree{Statements: stmts})
}

// EvalTree evaluates a whole tree, installing its data block as _DATA.
func (s *Session) EvalTree(t *tree.Tree) ([]runtime.Value, error) {
	if t == nil {
		return nil, nil
	}
	reconstructed := make([]*units.Statement, 0, len(t.Statements))
	for idx, raw := range t.Statements {
		stmt, err := units.ReconstructStatement(s.count+idx, raw)
		if err != nil {
			return nil, err
		}
		reconstructed = append(reconstructed, stmt)
	}
	s.count += len(t.Statements)
	s.interp.installData(t.Data)
	produced := s.interp.run(reconstructed)
	if len(produced) > 0 {
		s.last = produced[len(produced)-1]
	}
	return produced, nil
}

// Last returns the most recent expression value, Empty before any.
func (s *Session) Last() runtime.Value { return s.last }

// Reset discards all state.
func (s *Session) Reset() {
	s.interp = New()
	s.count = 0
	s.last = runtime.Empty
}

// Document snapshots the accumulated state.
func (s *Session) Document() *Document { return s.interp.Document() }

// Environment exposes the session's environment.
func (s *Session) Environment() *runtime.Environment { return s.interp.Environment() }
