package tree

// Builders for constructing trees by hand, mostly from tests.

// Lit builds a leaderless literal node.
func Lit(atom string) *Node { return &Node{Atom: atom} }

// Blk builds a bare block node.
func Blk(nodes ...*Node) *Node { return &Node{Block: block(nodes)} }

// Meta builds the bare "@" meta leader that opens a definition statement.
func Meta() *Node { return &Node{Leader: LocalLeader} }

// Glob builds a "#name" reference.
func Glob(name string) *Node { return &Node{Leader: GlobalLeader, Atom: name} }

// Loc builds an "@name" reference.
func Loc(name string) *Node { return &Node{Leader: LocalLeader, Atom: name} }

// Get builds a ".key" getter.
func Get(key string) *Node { return &Node{Leader: GetterLeader, Atom: key} }

// Key builds a ":key" marker.
func Key(name string) *Node { return &Node{Leader: KeyLeader, Atom: name} }

// Type builds a "%name" unit without a block (a kind marker or a bare
// construction).
func Type(name string) *Node { return &Node{Leader: TypeLeader, Atom: name} }

// Call builds a "%name(...)" unit.
func Call(name string, args ...*Node) *Node {
	return &Node{Leader: TypeLeader, Atom: name, Block: block(args)}
}

// Set builds a "!key(...)" setter.
func Set(key string, args ...*Node) *Node {
	return &Node{Leader: SetterLeader, Atom: key, Block: block(args)}
}

// Batch builds a "!+(...)" batch setter.
func Batch(args ...*Node) *Node {
	return &Node{Leader: SetterLeader, Atom: "+", Block: block(args)}
}

// Stmt wraps nodes into a statement.
func Stmt(nodes ...*Node) Statement { return Statement{Nodes: nodes} }

// DefGlobal builds "@#name rhs...".
func DefGlobal(name string, rhs ...*Node) Statement {
	return Stmt(append([]*Node{Meta(), Glob(name)}, rhs...)...)
}

// DefLocal builds "@@name rhs...".
func DefLocal(name string, rhs ...*Node) Statement {
	return Stmt(append([]*Node{Meta(), Loc(name)}, rhs...)...)
}

// DefType builds "@%Name(params...)".
func DefType(name string, params ...*Node) Statement {
	return Stmt(Meta(), Call(name, params...))
}

// New builds a tree from statements.
func New(stmts ...Statement) *Tree { return &Tree{Statements: stmts} }

func block(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	return append(out, nodes...)
}
