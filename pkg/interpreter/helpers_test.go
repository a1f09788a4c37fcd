package interpreter

import (
	"testing"

	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
)

func evaluate(t *testing.T, stmts ...tree.Statement) *Document {
	t.Helper()
	doc, err := Evaluate(tree.New(stmts...))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return doc
}

func num(f float64) runtime.Value { return runtime.NumberValue{Val: f} }

func text(s string) runtime.Value { return runtime.TextValue{Val: s} }

func dict(pairs ...any) *runtime.DictValue {
	d := runtime.NewDict()
	for idx := 0; idx+1 < len(pairs); idx += 2 {
		d.Entries.Set(pairs[idx].(string), pairs[idx+1].(runtime.Value))
	}
	return d
}

func assertValue(t *testing.T, label string, got, want runtime.Value) {
	t.Helper()
	if !runtime.Equal(got, want) {
		t.Fatalf("%s = %s, want %s", label, runtime.Format(got), runtime.Format(want))
	}
}

func entityOf(t *testing.T, label string, v runtime.Value) *runtime.EntityValue {
	t.Helper()
	entity, ok := v.(*runtime.EntityValue)
	if !ok {
		t.Fatalf("%s: expected entity, got %#v", label, v)
	}
	return entity
}

func fieldOf(t *testing.T, e *runtime.EntityValue, key string) runtime.Value {
	t.Helper()
	val, ok := e.Fields.Get(key)
	if !ok {
		t.Fatalf("entity %s has no field %q (fields %v)", e.TypeName, key, e.Fields.Keys())
	}
	return val
}

// personType declares Person(:name :age % :sex %e(F M)).
func personType() tree.Statement {
	return tree.DefType("Person",
		tree.Key("name"),
		tree.Key("age"), tree.Type(""),
		tree.Key("sex"), tree.Call("e", tree.Lit("F"), tree.Lit("M")),
	)
}

func person(name, age, sex string) *tree.Node {
	return tree.Call("Person",
		tree.Key("name"), tree.Lit(name),
		tree.Key("age"), tree.Lit(age),
		tree.Key("sex"), tree.Lit(sex),
	)
}
