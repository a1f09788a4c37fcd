package tree

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTreeFile(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDecodeYAMLStatements(t *testing.T) {
	src := `
statements:
  - ["@", {"%Person": [":name", ":age", "%"]}]
  - ["@", "#R1", {"%Person": [":name", Taro, ":age", 36]}]
  - ["#R1", ".age"]
data:
  notes: hello
`
	got, err := DecodeYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	want := &Tree{
		Statements: []Statement{
			DefType("Person", Key("name"), Key("age"), Type("")),
			DefGlobal("R1", Call("Person", Key("name"), Lit("Taro"), Key("age"), Lit("36"))),
			Stmt(Glob("R1"), Get("age")),
		},
		Data: map[string]string{"notes": "hello"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeYAML = %#v, want %#v", got, want)
	}
}

func TestDecodeJSONExplicitNodes(t *testing.T) {
	src := `[
  [{"leader": "$", "atom": "x"}],
  [{"unit": "#R1"}, {"leader": "!", "atom": "name", "block": ["Hanako"]}],
  [1.5, []]
]`
	got, err := DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	want := &Tree{Statements: []Statement{
		Stmt(&Node{Leader: '$', Atom: "x"}),
		Stmt(Glob("R1"), Set("name", Lit("Hanako"))),
		Stmt(Lit("1.5"), Blk()),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeJSON = %#v, want %#v", got, want)
	}
}

func TestDecodeRejectsMalformedNodes(t *testing.T) {
	cases := map[string]string{
		"two-key unit":  `[[{"%A": [], "%B": []}]]`,
		"block scalar":  `[[{"%A": "x"}]]`,
		"null node":     `[[null]]`,
		"long leader":   `[[{"leader": "##"}]]`,
		"unknown root":  `{"stmts": []}`,
		"scalar root":   `"x"`,
		"non-text data": `{"data": {"a": [1]}}`,
	}
	for name, src := range cases {
		if _, err := DecodeJSON(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseStatement(t *testing.T) {
	stmt, err := ParseStatement(`["#R1", {"!+": [":x", 10]}]`)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if !reflect.DeepEqual(stmt, Stmt(Glob("R1"), Batch(Key("x"), Lit("10")))) {
		t.Fatalf("ParseStatement = %#v", stmt)
	}

	stmt, err = ParseStatement(`"#NOPE"`)
	if err != nil {
		t.Fatalf("ParseStatement scalar: %v", err)
	}
	if !reflect.DeepEqual(stmt, Stmt(Glob("NOPE"))) {
		t.Fatalf("ParseStatement scalar = %#v", stmt)
	}
}

func TestLoadFileByExtension(t *testing.T) {
	yamlPath := writeTreeFile(t, "doc.yml", "- [\"[#tag]\", 2024-01-01]\n")
	got, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	want := &Tree{Statements: []Statement{Stmt(Lit("[#tag]"), Lit("2024-01-01"))}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadFile yaml = %#v, want %#v", got, want)
	}

	jsonPath := writeTreeFile(t, "doc.json", "")
	empty, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile empty json: %v", err)
	}
	if len(empty.Statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(empty.Statements))
	}

	if _, err := LoadFile(writeTreeFile(t, "doc.txt", "[]")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestTreeAppendMergesData(t *testing.T) {
	base := &Tree{Statements: []Statement{Stmt(Lit("a"))}, Data: map[string]string{"x": "1"}}
	base.Append(&Tree{Statements: []Statement{Stmt(Lit("b"))}, Data: map[string]string{"x": "2", "y": "3"}})
	if len(base.Statements) != 2 {
		t.Fatalf("statements = %d, want 2", len(base.Statements))
	}
	if !reflect.DeepEqual(base.Data, map[string]string{"x": "2", "y": "3"}) {
		t.Fatalf("data = %#v", base.Data)
	}
}
