package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/runtime"
)

// WriteYAML writes doc as a YAML document with keys in evaluation order.
func WriteYAML(w io.Writer, doc *interpreter.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(DocumentNode(doc)); err != nil {
		return fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: encoder close: %w", err)
	}
	return nil
}

// DocumentNode builds the YAML tree for doc.
func DocumentNode(doc *interpreter.Document) *yaml.Node {
	root := mappingNode("")

	types := mappingNode("")
	for _, name := range doc.TypeNames() {
		td := doc.Typedefs[name]
		params := mappingNode("")
		for idx, param := range td.Params {
			addPair(params, param, strNode(kindLabel(td, idx)))
		}
		entry := mappingNode("")
		addPair(entry, "params", params)
		if td.Reserved != nil && !runtime.IsEmpty(td.Reserved) {
			addPair(entry, "reserved", ValueNode(td.Reserved))
		}
		addPair(types, name, entry)
	}
	addPair(root, "typedefs", types)
	addPair(root, "globals", bindingsNode(doc.GlobalNames(), doc.Globals))
	addPair(root, "locals", bindingsNode(doc.LocalNames(), doc.Locals))

	results := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, res := range doc.Results {
		results.Content = append(results.Content, ValueNode(res))
	}
	addPair(root, "results", results)
	return root
}

func bindingsNode(names []string, values map[string]runtime.Value) *yaml.Node {
	node := mappingNode("")
	for _, name := range names {
		addPair(node, name, ValueNode(values[name]))
	}
	return node
}

// ValueNode converts a runtime value. Entities become mappings tagged with
// their type name, with props under "+props" and their own reserved element
// under "+reserved"; references become "!ref" scalars and Empty becomes null.
func ValueNode(v runtime.Value) *yaml.Node {
	if v == nil {
		v = runtime.Empty
	}
	switch val := v.(type) {
	case runtime.TextValue:
		return strNode(val.Val)
	case runtime.NumberValue:
		tag := "!!float"
		if val.Val == float64(int64(val.Val)) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: runtime.FormatNumber(val.Val)}
	case runtime.DateValue:
		return strNode(val.Val)
	case runtime.EnumValue:
		return strNode(val.Val)
	case *runtime.ListValue:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val.Items {
			node.Content = append(node.Content, ValueNode(item))
		}
		return node
	case *runtime.DictValue:
		return recordNode(val.Entries, "")
	case runtime.RefValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!ref", Value: val.String()}
	case *runtime.EntityValue:
		tag := ""
		if val.TypeName != "" {
			tag = "!" + val.TypeName
		}
		node := recordNode(val.Fields, tag)
		if val.Props.Len() > 0 {
			addPair(node, "+props", recordNode(val.Props, ""))
		}
		if val.Reserved != nil && !runtime.IsEmpty(val.Reserved) {
			addPair(node, "+reserved", ValueNode(val.Reserved))
		}
		return node
	case runtime.EmptyValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	default:
		return strNode(fmt.Sprintf("<%s>", v.Kind()))
	}
}

func recordNode(r *runtime.Record, tag string) *yaml.Node {
	node := mappingNode(tag)
	for idx := 0; idx < r.Len(); idx++ {
		key, val, _ := r.At(idx)
		addPair(node, key, ValueNode(val))
	}
	return node
}

func mappingNode(tag string) *yaml.Node {
	if tag == "" {
		tag = "!!map"
	}
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tag}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addPair(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, strNode(key), value)
}
