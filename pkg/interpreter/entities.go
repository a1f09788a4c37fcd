package interpreter

import (
	"strconv"

	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/units"
)

// construct builds "%Type(block)". With a registered TypeDef the fields are
// exactly its params: a keyed block matches by name, a plain block by
// position, and anything unmatched is Empty. Without one (including the
// anonymous "%(...)") the fields are the block's keys, or _0, _1, ... for a
// plain block, and a ":__" group becomes the entity's own reserved element.
func (i *Interpreter) construct(typeName string, block []*units.Unit, hasBlock bool) *runtime.EntityValue {
	entity := runtime.NewEntity(typeName)
	var c chunk
	if hasBlock {
		c = chunkUnits(block)
	}

	td, ok := i.env.LookupType(typeName)
	if !ok {
		i.fillOpenFields(entity, c)
		return entity
	}

	for _, param := range td.Params {
		entity.Fields.Set(param, runtime.Empty)
	}
	if c.keyed {
		for _, g := range c.groups {
			idx := td.IndexOf(g.key)
			if idx < 0 {
				continue
			}
			kind, nested := td.KindOf(idx), td.NestedType(g.key)
			vals := make([]runtime.Value, 0, len(g.items))
			for _, el := range g.items {
				vals = append(vals, i.convertElement(el, kind, nested))
			}
			entity.Fields.Set(g.key, collapse(vals))
		}
		return entity
	}
	for idx, param := range td.Params {
		if idx >= len(c.loose) {
			break
		}
		entity.Fields.Set(param, i.convertElement(c.loose[idx], td.KindOf(idx), td.NestedType(param)))
	}
	return entity
}

func (i *Interpreter) fillOpenFields(entity *runtime.EntityValue, c chunk) {
	if c.keyed {
		for _, g := range c.groups {
			if g.key == ReservedKey {
				entity.Reserved = collapse(mapElements(g.items, i.nestedElement))
				continue
			}
			entity.Fields.Set(g.key, collapse(mapElements(g.items, i.nestedElement)))
		}
		return
	}
	for idx, el := range c.loose {
		entity.Fields.Set("_"+strconv.Itoa(idx), i.nestedElement(el))
	}
}

// convertElement evaluates an argument under a declared kind. Literals are
// coerced to the kind; a bare block for a param bound to an entity type
// constructs that type.
func (i *Interpreter) convertElement(el element, kind runtime.PrimitiveKind, nested string) runtime.Value {
	if len(el.chain) == 0 {
		if el.unit.IsLiteral() {
			return coerceAtom(el.unit.Atom, kind)
		}
		if el.unit.IsBareBlock() && nested != "" {
			return i.construct(nested, el.unit.Block, true)
		}
	}
	return i.nestedElement(el)
}
