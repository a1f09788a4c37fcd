package interpreter

import (
	"sort"

	"github.com/mtaka/STN-Core/pkg/runtime"
)

// Document is the outcome of an evaluation: snapshots of the TypeDef,
// global and local tables plus the value of every bare expression statement
// in source order.
//
// The tables are copies, but entities inside them are shared with the
// interpreter that produced the Document. Callers that keep evaluating (for
// example through a Session) or that reuse values across evaluations must
// not mutate them.
type Document struct {
	Typedefs map[string]*runtime.TypeDef
	Globals  map[string]runtime.Value
	Locals   map[string]runtime.Value
	Results  []runtime.Value
}

// Document snapshots the interpreter's current state.
func (i *Interpreter) Document() *Document {
	results := make([]runtime.Value, len(i.results))
	copy(results, i.results)
	return &Document{
		Typedefs: i.env.TypeSnapshot(),
		Globals:  i.env.Snapshot(runtime.GlobalScope),
		Locals:   i.env.Snapshot(runtime.LocalScope),
		Results:  results,
	}
}

// TypeNames returns the TypeDef names in sorted order.
func (d *Document) TypeNames() []string { return sortedNames(d.Typedefs) }

// GlobalNames returns the global binding names in sorted order.
func (d *Document) GlobalNames() []string { return sortedNames(d.Globals) }

// LocalNames returns the local binding names in sorted order.
func (d *Document) LocalNames() []string { return sortedNames(d.Locals) }

// Equal reports whether two documents hold the same content.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Typedefs) != len(other.Typedefs) ||
		len(d.Globals) != len(other.Globals) ||
		len(d.Locals) != len(other.Locals) ||
		len(d.Results) != len(other.Results) {
		return false
	}
	for name, td := range d.Typedefs {
		if !runtime.TypeDefsEqual(td, other.Typedefs[name]) {
			return false
		}
	}
	if !bindingsEqual(d.Globals, other.Globals) || !bindingsEqual(d.Locals, other.Locals) {
		return false
	}
	for idx := range d.Results {
		if !runtime.Equal(d.Results[idx], other.Results[idx]) {
			return false
		}
	}
	return true
}

func bindingsEqual(a, b map[string]runtime.Value) bool {
	for name, val := range a {
		otherVal, ok := b[name]
		if !ok || !runtime.Equal(val, otherVal) {
			return false
		}
	}
	return true
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
