package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Trees are exchanged as YAML or JSON documents. The root is either a list
// of statements or a mapping with "statements" and "data" keys. A statement
// is a list of nodes (or a single node). A node is one of:
//
//	"#R1", ":name", "%Person", "@"   leader plus atom
//	"Taro", 36                       leaderless literal
//	[...]                            bare block
//	{"%Person": [...]}               unit with a block
//	{leader: "%", atom: "Person", block: [...]}
//
// Literals that start with a leader character must be bracketed ("[#1]").

var explicitNodeKeys = map[string]bool{"leader": true, "atom": true, "unit": true, "block": true}

// LoadFile reads a tree file, choosing the decoder from the file extension.
func LoadFile(path string) (*Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tree: open %s: %w", path, err)
	}
	defer file.Close()

	var t *Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		t, err = DecodeJSON(file)
	case ".yml", ".yaml", ".stn":
		t, err = DecodeYAML(file)
	default:
		return nil, fmt.Errorf("tree: %s: unsupported file extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("tree: %s: %w", path, err)
	}
	return t, nil
}

// DecodeYAML decodes a tree document in YAML form.
func DecodeYAML(r io.Reader) (*Tree, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Tree{}, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return Decode(raw)
}

// DecodeJSON decodes a tree document in JSON form.
func DecodeJSON(r io.Reader) (*Tree, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Tree{}, nil
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return Decode(raw)
}

// ParseStatement decodes one statement written in YAML flow form, e.g.
// `["@", "#R1", {"%Person": [":name", Taro]}]`.
func ParseStatement(src string) (Statement, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(src), &raw); err != nil {
		return Statement{}, fmt.Errorf("parse statement: %w", err)
	}
	if raw == nil {
		return Statement{}, nil
	}
	return decodeStatement(raw)
}

// Decode converts a generic document (as produced by encoding/json or yaml)
// into a Tree.
func Decode(raw any) (*Tree, error) {
	t := &Tree{}
	var stmts any
	switch root := raw.(type) {
	case nil:
		return t, nil
	case []any:
		stmts = root
	case map[string]any:
		for key := range root {
			if key != "statements" && key != "data" {
				return nil, fmt.Errorf("unknown root key %q", key)
			}
		}
		stmts = root["statements"]
		data, err := decodeData(root["data"])
		if err != nil {
			return nil, err
		}
		t.Data = data
	default:
		return nil, fmt.Errorf("root must be a list or a mapping, got %T", raw)
	}

	if stmts == nil {
		return t, nil
	}
	list, ok := stmts.([]any)
	if !ok {
		return nil, fmt.Errorf("statements must be a list, got %T", stmts)
	}
	for idx, entry := range list {
		stmt, err := decodeStatement(entry)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", idx+1, err)
		}
		t.Statements = append(t.Statements, stmt)
	}
	return t, nil
}

func decodeData(raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	sections, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data must be a mapping, got %T", raw)
	}
	out := make(map[string]string, len(sections))
	for name, value := range sections {
		text, ok := scalarText(value)
		if !ok {
			return nil, fmt.Errorf("data.%s must be text", name)
		}
		out[name] = text
	}
	return out, nil
}

func decodeStatement(raw any) (Statement, error) {
	if list, ok := raw.([]any); ok {
		nodes, err := decodeNodes(list)
		if err != nil {
			return Statement{}, err
		}
		return Statement{Nodes: nodes}, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Nodes: []*Node{node}}, nil
}

func decodeNodes(list []any) ([]*Node, error) {
	nodes := make([]*Node, 0, len(list))
	for idx, entry := range list {
		node, err := decodeNode(entry)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", idx+1, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(raw any) (*Node, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("null node")
	case string:
		return decodeUnit(v), nil
	case []any:
		nodes, err := decodeNodes(v)
		if err != nil {
			return nil, err
		}
		return &Node{Block: nodes}, nil
	case map[string]any:
		return decodeNodeMap(v)
	}
	text, ok := scalarText(raw)
	if !ok {
		return nil, fmt.Errorf("unsupported node %T", raw)
	}
	return Lit(text), nil
}

func decodeNodeMap(raw map[string]any) (*Node, error) {
	explicit := true
	for key := range raw {
		if !explicitNodeKeys[key] {
			explicit = false
			break
		}
	}
	if !explicit {
		if len(raw) != 1 {
			return nil, fmt.Errorf("unit mapping must have exactly one key, got %d", len(raw))
		}
		for unit, value := range raw {
			node := decodeUnit(unit)
			blk, err := decodeBlock(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", unit, err)
			}
			node.Block = blk
			return node, nil
		}
	}

	node := &Node{}
	if unit, ok := raw["unit"]; ok {
		text, ok := unit.(string)
		if !ok {
			return nil, fmt.Errorf("unit must be a string, got %T", unit)
		}
		node = decodeUnit(text)
	}
	if leader, ok := raw["leader"]; ok {
		text, ok := leader.(string)
		if !ok || len(text) > 1 {
			return nil, fmt.Errorf("leader must be a single character, got %v", leader)
		}
		node.Leader = NoLeader
		if text != "" {
			node.Leader = text[0]
		}
	}
	if atom, ok := raw["atom"]; ok {
		text, ok := scalarText(atom)
		if !ok {
			return nil, fmt.Errorf("atom must be a scalar, got %T", atom)
		}
		node.Atom = text
	}
	if value, ok := raw["block"]; ok {
		blk, err := decodeBlock(value)
		if err != nil {
			return nil, err
		}
		node.Block = blk
	}
	return node, nil
}

func decodeBlock(raw any) ([]*Node, error) {
	if raw == nil {
		return []*Node{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("block must be a list, got %T", raw)
	}
	return decodeNodes(list)
}

func decodeUnit(text string) *Node {
	if text == "" {
		return Lit("")
	}
	switch text[0] {
	case GlobalLeader, LocalLeader, GetterLeader, SetterLeader, KeyLeader, TypeLeader:
		return &Node{Leader: text[0], Atom: text[1:]}
	}
	return Lit(text)
}

func scalarText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02"), true
		}
		return v.Format(time.RFC3339), true
	}
	return "", false
}
