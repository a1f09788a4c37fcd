package interpreter

import (
	"sort"

	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
	"github.com/mtaka/STN-Core/pkg/units"
)

// DataName is the local binding that exposes the data block.
const DataName = "_DATA"

// Interpreter owns the environment of one evaluation.
type Interpreter struct {
	env     *runtime.Environment
	results []runtime.Value
	depth   int
}

// New returns an interpreter with an empty environment.
func New() *Interpreter {
	return &Interpreter{env: runtime.NewEnvironment()}
}

// Environment exposes the interpreter's environment.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Evaluate evaluates t with a fresh environment.
func Evaluate(t *tree.Tree) (*Document, error) {
	return New().EvaluateTree(t)
}

// EvaluateTree evaluates t against the interpreter's environment and returns
// the resulting Document. A structural error is returned before any state
// changes.
func (i *Interpreter) EvaluateTree(t *tree.Tree) (*Document, error) {
	stmts, err := units.Reconstruct(t)
	if err != nil {
		return nil, err
	}
	if t != nil {
		i.installData(t.Data)
	}
	i.run(stmts)
	return i.Document(), nil
}

// run executes both passes over stmts and returns the values of the bare
// expression statements.
func (i *Interpreter) run(stmts []*units.Statement) []runtime.Value {
	i.registerDefinitions(stmts)
	var produced []runtime.Value
	for _, stmt := range stmts {
		if val, ok := i.evaluateStatement(stmt); ok {
			produced = append(produced, val)
		}
	}
	i.results = append(i.results, produced...)
	return produced
}

func (i *Interpreter) evaluateStatement(stmt *units.Statement) (runtime.Value, bool) {
	switch stmt.Meta {
	case units.TypeDef:
		return nil, false
	case units.GlobalVarDef:
		i.env.Define(runtime.GlobalScope, stmt.Name, i.evaluateUnits(stmt.Units))
		return nil, false
	case units.LocalVarDef:
		i.env.Define(runtime.LocalScope, stmt.Name, i.evaluateUnits(stmt.Units))
		return nil, false
	default:
		if len(stmt.Units) == 0 {
			return nil, false
		}
		return i.evaluateUnits(stmt.Units), true
	}
}

func (i *Interpreter) installData(data map[string]string) {
	if len(data) == 0 {
		return
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	entity := runtime.NewEntity(DataName)
	for _, name := range names {
		entity.Fields.Set(name, runtime.TextValue{Val: data[name]})
	}
	i.env.Define(runtime.LocalScope, DataName, entity)
}
