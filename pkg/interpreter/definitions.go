package interpreter

import (
	"unicode"
	"unicode/utf8"

	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/units"
)

// registerDefinitions is the first pass: every TypeDef is registered and
// every binding name reserved before any right-hand side is evaluated.
func (i *Interpreter) registerDefinitions(stmts []*units.Statement) {
	for _, stmt := range stmts {
		switch stmt.Meta {
		case units.TypeDef:
			i.env.DefineType(i.buildTypeDef(stmt.Name, stmt.Units))
		case units.GlobalVarDef:
			i.env.Reserve(runtime.GlobalScope, stmt.Name)
		case units.LocalVarDef:
			i.env.Reserve(runtime.LocalScope, stmt.Name)
		}
	}
}

// buildTypeDef reads a parameter block such as
// (:name :age % :sex %e(F M) :__ (...)). A block without keys lists bare
// param names.
func (i *Interpreter) buildTypeDef(name string, params []*units.Unit) *runtime.TypeDef {
	td := runtime.NewTypeDef(name, nil, nil)
	c := chunkUnits(params)
	if !c.keyed {
		for _, el := range c.loose {
			if !el.unit.IsLiteral() {
				continue
			}
			param, _ := unwrapLiteral(el.unit.Atom)
			td.Params = append(td.Params, param)
			td.Kinds = append(td.Kinds, runtime.TextKind())
		}
		return td
	}
	for _, g := range c.groups {
		if g.key == ReservedKey {
			td.Reserved = collapse(mapElements(g.items, i.nestedElement))
			continue
		}
		kind, nested := kindAnnotation(g.items)
		td.Params = append(td.Params, g.key)
		td.Kinds = append(td.Kinds, kind)
		if nested != "" {
			if td.Nested == nil {
				td.Nested = make(map[string]string)
			}
			td.Nested[g.key] = nested
		}
	}
	return td
}

// kindAnnotation reads the first "%" marker among a param's units. No marker
// means Text.
func kindAnnotation(items []element) (runtime.PrimitiveKind, string) {
	for _, el := range items {
		if el.unit.Leader == units.Type {
			return kindMarker(el.unit)
		}
	}
	return runtime.TextKind(), ""
}

func kindMarker(u *units.Unit) (runtime.PrimitiveKind, string) {
	switch u.Atom {
	case "":
		if u.HasBlock() {
			return runtime.TextKind(), ""
		}
		return runtime.NumberKind(), ""
	case "n", "num", "number", "i", "int", "f", "float":
		return runtime.NumberKind(), ""
	case "d", "date", "dt", "datetime":
		return runtime.DateKind(), ""
	case "e", "enum", "s", "sel", "select":
		return runtime.EnumKind(choiceAtoms(u.Block)...), ""
	case "t", "text", "str", "string", "b", "bool":
		return runtime.TextKind(), ""
	}
	if r, _ := utf8.DecodeRuneInString(u.Atom); unicode.IsUpper(r) {
		return runtime.TextKind(), u.Atom
	}
	return runtime.TextKind(), ""
}

func choiceAtoms(block []*units.Unit) []string {
	var choices []string
	for _, u := range block {
		if !u.IsLiteral() {
			continue
		}
		choice, _ := unwrapLiteral(u.Atom)
		choices = append(choices, choice)
	}
	return choices
}
