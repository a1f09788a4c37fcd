package interpreter

import (
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/units"
)

const maxRefDepth = 64

// evaluateUnits evaluates a statement body. A single element is evaluated
// directly, with references resolved; anything longer is chunked like a
// block.
func (i *Interpreter) evaluateUnits(us []*units.Unit) runtime.Value {
	c := chunkUnits(us)
	if !c.keyed {
		switch len(c.loose) {
		case 0:
			return runtime.Empty
		case 1:
			return i.evaluateElement(c.loose[0], true)
		}
	}
	return i.chunkValue(c)
}

func (i *Interpreter) nestedElement(el element) runtime.Value {
	return i.evaluateElement(el, false)
}

// evaluateElement evaluates a primary unit and applies its chain. At the
// top of a statement "#name"/"@name" resolve through the environment;
// inside blocks they stay references.
func (i *Interpreter) evaluateElement(el element, top bool) runtime.Value {
	val := i.evaluatePrimary(el.unit, top)
	for _, u := range el.chain {
		ref, isRef := val.(runtime.RefValue)
		switch {
		case u.Leader == units.Getter && isRef && !top:
			path := make([]string, 0, len(ref.Path)+1)
			path = append(path, ref.Path...)
			ref.Path = append(path, u.Atom)
			val = ref
		case u.Leader == units.Getter:
			val = i.get(val, u.Atom)
		case u.IsBatch():
			updated := i.batchSet(val, u.Block)
			if !isRef || top {
				val = updated
			}
		default:
			updated := i.set(val, u.Atom, u.Block)
			if !isRef || top {
				val = updated
			}
		}
	}
	return val
}

func (i *Interpreter) evaluatePrimary(u *units.Unit, top bool) runtime.Value {
	switch u.Leader {
	case units.None:
		if u.IsBareBlock() {
			return i.blockValue(u.Block)
		}
		return atomValue(u.Atom)
	case units.Global, units.Local:
		scope := runtime.GlobalScope
		if u.Leader == units.Local {
			scope = runtime.LocalScope
		}
		if top {
			return i.env.Get(scope, u.Atom)
		}
		return runtime.RefValue{Scope: scope, Name: u.Atom}
	case units.Type:
		return i.construct(u.Atom, u.Block, u.HasBlock())
	default:
		return runtime.Empty
	}
}

// resolve follows references until a non-reference value is reached. Cyclic
// references resolve to Empty.
func (i *Interpreter) resolve(v runtime.Value) runtime.Value {
	i.depth++
	defer func() { i.depth-- }()
	for steps := 0; ; steps++ {
		ref, ok := v.(runtime.RefValue)
		if !ok {
			return v
		}
		if steps >= maxRefDepth || i.depth > maxRefDepth {
			return runtime.Empty
		}
		v = i.env.Get(ref.Scope, ref.Name)
		for _, key := range ref.Path {
			v = i.get(v, key)
		}
	}
}
