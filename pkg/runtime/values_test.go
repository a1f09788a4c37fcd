package runtime

import (
	"reflect"
	"testing"
)

func TestEmptyIsSingletonSentinel(t *testing.T) {
	if !Equal(Empty, Empty) {
		t.Fatalf("Empty must equal itself")
	}
	if Empty != Value(EmptyValue{}) {
		t.Fatalf("Empty must compare equal with ==")
	}
	if Equal(Empty, TextValue{Val: ""}) {
		t.Fatalf("Empty must differ from empty text")
	}
	if !IsEmpty(nil) || !IsEmpty(Empty) || IsEmpty(TextValue{}) {
		t.Fatalf("IsEmpty misclassified a value")
	}
}

func TestRecordKeepsFirstPositionOnOverwrite(t *testing.T) {
	r := NewRecord()
	r.Set("x", NumberValue{Val: 1})
	r.Set("y", NumberValue{Val: 2})
	r.Set("x", NumberValue{Val: 3})
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("Keys = %v, want [x y]", got)
	}
	val, ok := r.Get("x")
	if !ok || !Equal(val, NumberValue{Val: 3}) {
		t.Fatalf("Get(x) = %#v, %v", val, ok)
	}
	if _, _, ok := r.At(5); ok {
		t.Fatalf("At out of range must fail")
	}
}

func TestEqualDeep(t *testing.T) {
	build := func() *EntityValue {
		e := NewEntity("Person")
		e.Fields.Set("name", TextValue{Val: "Taro"})
		e.Fields.Set("tags", NewList(TextValue{Val: "a"}, RefValue{Scope: GlobalScope, Name: "R2"}))
		e.Props.Set("x", NumberValue{Val: 10})
		return e
	}
	a, b := build(), build()
	if !Equal(a, b) {
		t.Fatalf("equal entities compared unequal")
	}
	b.Props.Set("y", Empty)
	if Equal(a, b) {
		t.Fatalf("prop difference not detected")
	}
	if Equal(EnumValue{Val: "M", Choices: []string{"F", "M"}}, EnumValue{Val: "M"}) {
		t.Fatalf("enum choices must participate in equality")
	}
	if Equal(RefValue{Name: "a"}, RefValue{Scope: LocalScope, Name: "a"}) {
		t.Fatalf("ref scope must participate in equality")
	}
}

func TestEnvironmentLookupOrEmpty(t *testing.T) {
	env := NewEnvironment()
	if got := env.Get(GlobalScope, "NOPE"); !IsEmpty(got) {
		t.Fatalf("missing global = %#v, want Empty", got)
	}
	env.Reserve(LocalScope, "later")
	if !env.IsReserved(LocalScope, "later") || env.IsReserved(GlobalScope, "later") {
		t.Fatalf("reservation leaked across scopes")
	}
	if env.Has(LocalScope, "later") {
		t.Fatalf("reservation must not bind a value")
	}
	env.Define(GlobalScope, "b", NumberValue{Val: 1})
	env.Define(GlobalScope, "a", NumberValue{Val: 2})
	env.Define(GlobalScope, "a", NumberValue{Val: 3})
	if got := env.Keys(GlobalScope); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", got)
	}
	snap := env.Snapshot(GlobalScope)
	env.Define(GlobalScope, "c", Empty)
	if _, ok := snap["c"]; ok {
		t.Fatalf("snapshot must not observe later bindings")
	}
	if !Equal(snap["a"], NumberValue{Val: 3}) {
		t.Fatalf("last definition must win, got %#v", snap["a"])
	}
}

func TestTypeDefKindsDefaultToText(t *testing.T) {
	td := NewTypeDef("Person", []string{"name", "age", "note"}, []PrimitiveKind{TextKind(), NumberKind()})
	if got := td.KindFor("age"); got.Tag != TagNumber {
		t.Fatalf("age kind = %s", got)
	}
	if got := td.KindFor("note"); got.Tag != TagText {
		t.Fatalf("note kind = %s, want Text", got)
	}
	if got := td.KindFor("missing"); got.Tag != TagText {
		t.Fatalf("unknown param kind = %s, want Text", got)
	}
	if got := EnumKind("F", "M").String(); got != "Enum(F,M)" {
		t.Fatalf("String = %q", got)
	}
	env := NewEnvironment()
	env.DefineType(td)
	env.DefineType(NewTypeDef("Person", []string{"only"}, nil))
	got, ok := env.LookupType("Person")
	if !ok || !reflect.DeepEqual(got.Params, []string{"only"}) {
		t.Fatalf("redefinition must overwrite, got %#v", got)
	}
}

func TestFormatAndInspect(t *testing.T) {
	e := NewEntity("Person")
	e.Fields.Set("name", TextValue{Val: "Taro"})
	e.Fields.Set("age", NumberValue{Val: 36})
	e.Props.Set("x", NumberValue{Val: 10.5})

	if got, want := Format(e), "%Person{name: Taro, age: 36} +{x: 10.5}"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
	ref := RefValue{Scope: LocalScope, Name: "r", Path: []string{"owner", "name"}}
	if got, want := Format(NewList(ref, Empty)), "[@r.owner.name, Empty]"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}

	want := "%Person {\n  name: Taro\n  age:  36\n  +x: 10.5\n}"
	if got := Inspect(e); got != want {
		t.Fatalf("Inspect = %q, want %q", got, want)
	}
	anon := NewEntity("")
	anon.Fields.Set("name", TextValue{Val: "bar"})
	anon.Reserved = TextValue{Val: "Foo"}
	if got, want := Format(anon), "%{name: bar} __ Foo"; got != want {
		t.Fatalf("Format with reserved = %q, want %q", got, want)
	}
	plain := NewEntity("")
	plain.Fields.Set("name", TextValue{Val: "bar"})
	if Equal(anon, plain) {
		t.Fatalf("reserved element must take part in equality")
	}
	list := NewList(TextValue{Val: "a"}, NewList())
	if got, want := Inspect(list), "[\n  1: a\n  2: []\n]"; got != want {
		t.Fatalf("Inspect list = %q, want %q", got, want)
	}
}
