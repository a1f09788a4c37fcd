package runtime

import "sort"

// Environment holds the TypeDef table and the global and local binding
// tables for one evaluation. Locals live in a single flat table.
type Environment struct {
	typedefs map[string]*TypeDef
	globals  map[string]Value
	locals   map[string]Value
	reserved [2]map[string]struct{}
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		typedefs: make(map[string]*TypeDef),
		globals:  make(map[string]Value),
		locals:   make(map[string]Value),
		reserved: [2]map[string]struct{}{
			make(map[string]struct{}),
			make(map[string]struct{}),
		},
	}
}

func (e *Environment) table(scope Scope) map[string]Value {
	if scope == LocalScope {
		return e.locals
	}
	return e.globals
}

// DefineType registers td, replacing any TypeDef of the same name.
func (e *Environment) DefineType(td *TypeDef) {
	e.typedefs[td.Name] = td
}

// LookupType returns the TypeDef registered under name.
func (e *Environment) LookupType(name string) (*TypeDef, bool) {
	td, ok := e.typedefs[name]
	return td, ok
}

// Reserve records that a binding will be defined under name.
func (e *Environment) Reserve(scope Scope, name string) {
	e.reserved[scope][name] = struct{}{}
}

// IsReserved reports whether name was reserved or defined in scope.
func (e *Environment) IsReserved(scope Scope, name string) bool {
	if _, ok := e.reserved[scope][name]; ok {
		return true
	}
	return e.Has(scope, name)
}

// Define binds name in scope, overwriting any previous binding.
func (e *Environment) Define(scope Scope, name string, val Value) {
	if val == nil {
		val = Empty
	}
	e.table(scope)[name] = val
}

// Get returns the binding for name, or Empty when absent.
func (e *Environment) Get(scope Scope, name string) Value {
	if val, ok := e.table(scope)[name]; ok {
		return val
	}
	return Empty
}

// Has reports whether name is bound in scope.
func (e *Environment) Has(scope Scope, name string) bool {
	_, ok := e.table(scope)[name]
	return ok
}

// Keys returns the bound names of scope in sorted order.
func (e *Environment) Keys(scope Scope) []string {
	return sortedKeys(e.table(scope))
}

// TypeNames returns the registered TypeDef names in sorted order.
func (e *Environment) TypeNames() []string {
	return sortedKeys(e.typedefs)
}

// Snapshot returns a copy of the bindings of scope.
func (e *Environment) Snapshot(scope Scope) map[string]Value {
	src := e.table(scope)
	out := make(map[string]Value, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// TypeSnapshot returns a copy of the TypeDef table.
func (e *Environment) TypeSnapshot() map[string]*TypeDef {
	out := make(map[string]*TypeDef, len(e.typedefs))
	for k, v := range e.typedefs {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
