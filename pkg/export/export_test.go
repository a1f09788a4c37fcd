package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
)

func sampleDocument(t *testing.T) *interpreter.Document {
	t.Helper()
	doc, err := interpreter.Evaluate(tree.New(
		tree.DefType("Person", tree.Key("name"), tree.Key("age"), tree.Type("")),
		tree.DefGlobal("R1", tree.Call("Person", tree.Lit("Taro"), tree.Lit("36"))),
		tree.Stmt(tree.Glob("R1"), tree.Batch(tree.Key("nick"), tree.Lit("T"))),
		tree.DefLocal("tags", tree.Blk(tree.Lit("a"), tree.Lit("b"))),
		tree.Stmt(tree.Glob("R1"), tree.Get("missing")),
	))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return doc
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "text": FormatText, "YAML": FormatYAML, "yml": FormatYAML, "json": FormatJSON}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(t), FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"%Person(name: Text, age: Number)\n",
		"#R1 = %Person{name: Taro, age: 36} +{nick: T}\n",
		"@tags = [a, b]\n",
		"2: Empty\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSONKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(t), FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	r1 := decoded["globals"].(map[string]any)["R1"].(map[string]any)
	if r1["type"] != "Person" {
		t.Fatalf("type = %v, want Person", r1["type"])
	}
	fields := r1["fields"].(map[string]any)
	if fields["age"] != float64(36) {
		t.Fatalf("age = %v, want 36", fields["age"])
	}
	if r1["props"].(map[string]any)["nick"] != "T" {
		t.Fatalf("props = %v", r1["props"])
	}
	results := decoded["results"].([]any)
	if len(results) != 2 || results[1] != nil {
		t.Fatalf("results = %v, want [entity null]", results)
	}
	out := buf.String()
	if strings.Index(out, `"name"`) > strings.Index(out, `"age"`) {
		t.Fatalf("field order lost:\n%s", out)
	}
}

func TestValueNode(t *testing.T) {
	if n := ValueNode(runtime.NumberValue{Val: 2.5}); n.Tag != "!!float" || n.Value != "2.5" {
		t.Fatalf("float node = %s %q", n.Tag, n.Value)
	}
	if n := ValueNode(runtime.NumberValue{Val: 7}); n.Tag != "!!int" || n.Value != "7" {
		t.Fatalf("int node = %s %q", n.Tag, n.Value)
	}
	if n := ValueNode(runtime.Empty); n.Tag != "!!null" {
		t.Fatalf("empty node tag = %s", n.Tag)
	}
	ref := ValueNode(runtime.RefValue{Scope: runtime.LocalScope, Name: "r", Path: []string{"owner"}})
	if ref.Tag != "!ref" || ref.Value != "@r.owner" {
		t.Fatalf("ref node = %s %q", ref.Tag, ref.Value)
	}
	entity := runtime.NewEntity("Box")
	entity.Fields.Set("label", runtime.TextValue{Val: "crate"})
	entity.Props.Set("x", runtime.NumberValue{Val: 1})
	n := ValueNode(entity)
	if n.Kind != yaml.MappingNode || n.Tag != "!Box" {
		t.Fatalf("entity node = %v %s", n.Kind, n.Tag)
	}
	if len(n.Content) != 4 || n.Content[0].Value != "label" || n.Content[2].Value != "+props" {
		t.Fatalf("entity content unexpected: %d entries", len(n.Content))
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(t), FormatYAML); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"!Person", "name: Taro", "age: 36", "nick: T", "typedefs:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml output missing %q:\n%s", want, out)
		}
	}
}
