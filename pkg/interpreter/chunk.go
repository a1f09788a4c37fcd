package interpreter

import (
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/units"
)

// element is a primary unit plus the getters and setters chained onto it.
type element struct {
	unit  *units.Unit
	chain []*units.Unit
}

// group collects the elements following one ":key".
type group struct {
	key   string
	items []element
}

// chunk is a block split by the implicit-chunk rule. A block without any
// key is a plain sequence held in loose; in a keyed block the elements that
// precede the first key are dropped.
type chunk struct {
	keyed  bool
	loose  []element
	groups []*group
}

// chunkUnits applies the implicit-chunk rule. A repeated key replaces the
// earlier group's values and keeps the earlier position.
func chunkUnits(us []*units.Unit) chunk {
	var c chunk
	positions := make(map[string]int)
	var current *group
	target := func() *[]element {
		if current != nil {
			return &current.items
		}
		return &c.loose
	}
	for _, u := range us {
		switch {
		case u.Leader == units.Key:
			c.keyed = true
			current = &group{key: u.Atom}
			if pos, ok := positions[u.Atom]; ok {
				c.groups[pos] = current
			} else {
				positions[u.Atom] = len(c.groups)
				c.groups = append(c.groups, current)
			}
			if u.HasBlock() {
				current.items = append(current.items, element{unit: &units.Unit{Block: u.Block}})
			}
		case u.IsChain():
			// Reconstruction rejects chains without a preceding element.
			items := target()
			if n := len(*items); n > 0 {
				(*items)[n-1].chain = append((*items)[n-1].chain, u)
			}
		default:
			items := target()
			*items = append(*items, element{unit: u})
		}
	}
	if c.keyed {
		c.loose = nil
	}
	return c
}

// collapse folds the values of one key: none is empty text, one is itself,
// several become a list.
func collapse(vals []runtime.Value) runtime.Value {
	switch len(vals) {
	case 0:
		return runtime.TextValue{Val: ""}
	case 1:
		return vals[0]
	default:
		return runtime.NewList(vals...)
	}
}

type converter func(element) runtime.Value

func mapElements(items []element, conv converter) []runtime.Value {
	out := make([]runtime.Value, 0, len(items))
	for _, el := range items {
		out = append(out, conv(el))
	}
	return out
}

// chunkValue builds the Dict or List value of a chunked block.
func (i *Interpreter) chunkValue(c chunk) runtime.Value {
	if !c.keyed {
		return runtime.NewList(mapElements(c.loose, i.nestedElement)...)
	}
	dict := runtime.NewDict()
	for _, g := range c.groups {
		dict.Entries.Set(g.key, collapse(mapElements(g.items, i.nestedElement)))
	}
	return dict
}

func (i *Interpreter) blockValue(block []*units.Unit) runtime.Value {
	return i.chunkValue(chunkUnits(block))
}
