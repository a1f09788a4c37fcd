package interpreter

import (
	"strconv"

	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/units"
)

// ReservedKey names the TypeDef element shared by all instances of a type.
const ReservedKey = "__"

// get searches fields, then props, then the reserved element (the entity's
// own, else its type's), then a 1-based field position. A field bound to Empty answers Empty without
// falling through to props.
func (i *Interpreter) get(target runtime.Value, key string) runtime.Value {
	switch t := target.(type) {
	case runtime.RefValue:
		return i.get(i.resolve(t), key)
	case *runtime.EntityValue:
		if val, ok := t.Fields.Get(key); ok {
			return val
		}
		if val, ok := t.Props.Get(key); ok {
			return val
		}
		if key == ReservedKey {
			if t.Reserved != nil && !runtime.IsEmpty(t.Reserved) {
				return t.Reserved
			}
			if td, ok := i.env.LookupType(t.TypeName); ok && td.Reserved != nil {
				return td.Reserved
			}
			return runtime.Empty
		}
		if idx, ok := ordinal(key); ok {
			if _, val, ok := t.Fields.At(idx); ok {
				return val
			}
		}
		return runtime.Empty
	case *runtime.ListValue:
		if idx, ok := ordinal(key); ok && idx < len(t.Items) {
			return t.Items[idx]
		}
		return runtime.Empty
	case *runtime.DictValue:
		if val, ok := t.Entries.Get(key); ok {
			return val
		}
		if idx, ok := ordinal(key); ok {
			if _, val, ok := t.Entries.At(idx); ok {
				return val
			}
		}
		return runtime.Empty
	default:
		return runtime.Empty
	}
}

// ordinal parses a 1-based position into a 0-based index.
func ordinal(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// set applies "!key(block)". Declared fields are overwritten in place,
// anything else lands in props. Non-entity targets come back unchanged.
func (i *Interpreter) set(target runtime.Value, key string, block []*units.Unit) runtime.Value {
	if ref, ok := target.(runtime.RefValue); ok {
		target = i.resolve(ref)
	}
	entity, ok := target.(*runtime.EntityValue)
	if !ok {
		return target
	}
	i.assign(entity, key, i.setterValue(entity, key, block))
	return entity
}

// batchSet applies "!+(block)": the block is chunked and each key is set in
// order with the single-key rule.
func (i *Interpreter) batchSet(target runtime.Value, block []*units.Unit) runtime.Value {
	if ref, ok := target.(runtime.RefValue); ok {
		target = i.resolve(ref)
	}
	entity, ok := target.(*runtime.EntityValue)
	if !ok {
		return target
	}
	c := chunkUnits(block)
	for _, g := range c.groups {
		conv := i.fieldConverter(entity, g.key)
		i.assign(entity, g.key, collapse(mapElements(g.items, conv)))
	}
	return entity
}

func (i *Interpreter) assign(entity *runtime.EntityValue, key string, val runtime.Value) {
	if entity.Fields.Has(key) {
		entity.Fields.Set(key, val)
		return
	}
	entity.Props.Set(key, val)
}

// setterValue evaluates a setter argument block: one element is the value
// itself, several form a list, a keyed block forms a dict and an empty block
// is Empty.
func (i *Interpreter) setterValue(entity *runtime.EntityValue, key string, block []*units.Unit) runtime.Value {
	c := chunkUnits(block)
	if c.keyed {
		return i.chunkValue(c)
	}
	conv := i.fieldConverter(entity, key)
	switch len(c.loose) {
	case 0:
		return runtime.Empty
	case 1:
		return conv(c.loose[0])
	default:
		return runtime.NewList(mapElements(c.loose, conv)...)
	}
}

// fieldConverter converts setter arguments under the declared kind of key
// when key is one of the entity's fields.
func (i *Interpreter) fieldConverter(entity *runtime.EntityValue, key string) converter {
	if !entity.Fields.Has(key) {
		return i.nestedElement
	}
	td, ok := i.env.LookupType(entity.TypeName)
	if !ok || td.IndexOf(key) < 0 {
		return i.nestedElement
	}
	kind, nested := td.KindFor(key), td.NestedType(key)
	return func(el element) runtime.Value {
		return i.convertElement(el, kind, nested)
	}
}
