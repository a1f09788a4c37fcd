package units

import (
	"errors"
	"strings"
	"testing"

	"github.com/mtaka/STN-Core/pkg/tree"
)

func TestReconstructClassifiesDefinitions(t *testing.T) {
	input := tree.New(
		tree.DefType("Person", tree.Key("name"), tree.Key("age"), tree.Type("")),
		tree.DefGlobal("R1", tree.Call("Person", tree.Lit("Taro"), tree.Lit("36"))),
		tree.DefLocal("tmp", tree.Lit("x")),
		tree.Stmt(tree.Glob("R1"), tree.Get("age")),
	)
	stmts, err := Reconstruct(input)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	wantMeta := []MetaKind{TypeDef, GlobalVarDef, LocalVarDef, Expression}
	wantNames := []string{"Person", "R1", "tmp", ""}
	for idx, stmt := range stmts {
		if stmt.Meta != wantMeta[idx] || stmt.Name != wantNames[idx] {
			t.Fatalf("statement %d = (%s, %q), want (%s, %q)", idx, stmt.Meta, stmt.Name, wantMeta[idx], wantNames[idx])
		}
		if stmt.Index != idx {
			t.Fatalf("statement %d carries index %d", idx, stmt.Index)
		}
	}
	if got := len(stmts[0].Units); got != 3 {
		t.Fatalf("type params = %d units, want 3", got)
	}
	ctor := stmts[1].Units[0]
	if ctor.Leader != Type || ctor.Atom != "Person" || len(ctor.Block) != 2 || !ctor.Block[0].IsLiteral() {
		t.Fatalf("unexpected constructor unit %#v", ctor)
	}
	if stmts[3].IsDefinition() || !stmts[3].Units[1].IsChain() {
		t.Fatalf("expression statement misclassified: %#v", stmts[3])
	}
}

func TestReconstructBlockOnDefinitionName(t *testing.T) {
	stmt, err := ReconstructStatement(0, tree.Stmt(tree.Meta(), &tree.Node{Leader: '#', Atom: "P", Block: []*tree.Node{tree.Key("x"), tree.Lit("1")}}, tree.Get("x")))
	if err != nil {
		t.Fatalf("ReconstructStatement: %v", err)
	}
	if len(stmt.Units) != 2 || !stmt.Units[0].IsBareBlock() || stmt.Units[1].Leader != Getter {
		t.Fatalf("unexpected units %#v", stmt.Units)
	}
}

func TestReconstructEmptyBlockIsKept(t *testing.T) {
	stmt, err := ReconstructStatement(0, tree.Stmt(tree.Call("Point")))
	if err != nil {
		t.Fatalf("ReconstructStatement: %v", err)
	}
	if !stmt.Units[0].HasBlock() || len(stmt.Units[0].Block) != 0 {
		t.Fatalf("empty block lost: %#v", stmt.Units[0])
	}
	bare, err := ReconstructStatement(0, tree.Stmt(tree.Type("Point")))
	if err != nil {
		t.Fatalf("ReconstructStatement: %v", err)
	}
	if bare.Units[0].HasBlock() {
		t.Fatalf("block invented for %%Point")
	}
}

func TestReconstructChainTargets(t *testing.T) {
	keyBlock := &tree.Node{Leader: tree.KeyLeader, Atom: "k", Block: []*tree.Node{tree.Lit("a")}}
	stmts := []tree.Statement{
		tree.Stmt(tree.Blk(tree.Lit("a"), tree.Get("x"))),
		tree.Stmt(tree.Call("P", tree.Key("k"), tree.Glob("R1"), tree.Get("name"))),
		tree.Stmt(tree.Call("P", keyBlock, tree.Get("x"))),
		tree.Stmt(tree.Blk(tree.Key("k"), tree.Lit("a"), tree.Key("j"), tree.Loc("b"), tree.Set("x", tree.Lit("1")))),
	}
	for idx, stmt := range stmts {
		if _, err := ReconstructStatement(idx, stmt); err != nil {
			t.Fatalf("statement %d: %v", idx, err)
		}
	}
}

func TestReconstructStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		stmt tree.Statement
		msg  string
	}{
		{"unknown leader", tree.Stmt(&tree.Node{Leader: '$', Atom: "x"}), "unknown leader"},
		{"unknown nested leader", tree.Stmt(tree.Blk(tree.Lit("a"), &tree.Node{Leader: '^'})), "unknown leader"},
		{"lone meta", tree.Stmt(tree.Meta()), "meta leader without a definition"},
		{"meta then literal", tree.Stmt(tree.Meta(), tree.Lit("x")), "must be followed by"},
		{"meta then unknown", tree.Stmt(tree.Meta(), &tree.Node{Leader: '&', Atom: "x"}), "unknown leader"},
		{"typedef without block", tree.Stmt(tree.Meta(), tree.Type("Person")), "without a parameter block"},
		{"definition without name", tree.Stmt(tree.Meta(), tree.Glob("")), "without a name"},
		{"setter without block", tree.Stmt(tree.Glob("R1"), &tree.Node{Leader: '!', Atom: "name"}), "setter without an argument block"},
		{"batch without block", tree.Stmt(tree.Glob("R1"), &tree.Node{Leader: '!', Atom: "+"}), "setter without an argument block"},
		{"getter without key", tree.Stmt(tree.Glob("R1"), tree.Get("")), "getter without a key"},
		{"leading getter", tree.Stmt(tree.Get("x")), "without a target"},
		{"getter opening a block", tree.Stmt(tree.Blk(tree.Get("x"), tree.Lit("a"))), "without a target"},
		{"setter after bare key", tree.Stmt(tree.Call("P", tree.Key("k"), tree.Set("x", tree.Lit("1")))), "without a target"},
		{"getter after bare key in body", tree.Stmt(tree.Key("k"), tree.Get("x")), "without a target"},
		{"getter in type params", tree.DefType("P", tree.Key("k"), tree.Get("x")), "without a target"},
		{"getter in nested block", tree.Stmt(tree.Blk(tree.Lit("a"), tree.Blk(tree.Get("x")))), "without a target"},
		{"nested meta", tree.Stmt(tree.Lit("a"), tree.Meta()), "reference without a name"},
		{"literal with block", tree.Stmt(&tree.Node{Atom: "x", Block: []*tree.Node{}}), "literal cannot carry a block"},
	}
	for _, tc := range cases {
		_, err := Reconstruct(tree.New(tree.Stmt(tree.Lit("ok")), tc.stmt))
		var serr *StructuralError
		if !errors.As(err, &serr) {
			t.Fatalf("%s: expected StructuralError, got %v", tc.name, err)
		}
		if serr.Statement != 1 {
			t.Fatalf("%s: statement = %d, want 1", tc.name, serr.Statement)
		}
		if !strings.Contains(serr.Error(), tc.msg) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, serr.Error(), tc.msg)
		}
	}
}

func TestStructuralErrorMessage(t *testing.T) {
	err := &StructuralError{Statement: 2, Leader: Type, Atom: "Person", Message: "type definition without a parameter block"}
	if got, want := err.Error(), `structure: statement 3: type definition without a parameter block at "%Person"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
