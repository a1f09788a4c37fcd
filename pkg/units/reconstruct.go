package units

import "github.com/mtaka/STN-Core/pkg/tree"

// Reconstruct classifies every statement of t. It fails on the first
// statement that violates the node contract.
func Reconstruct(t *tree.Tree) ([]*Statement, error) {
	if t == nil {
		return nil, nil
	}
	out := make([]*Statement, 0, len(t.Statements))
	for idx, raw := range t.Statements {
		stmt, err := ReconstructStatement(idx, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// ReconstructStatement classifies one raw statement; idx is its position in
// the source and is carried into errors.
func ReconstructStatement(idx int, raw tree.Statement) (*Statement, error) {
	nodes := raw.Nodes
	stmt := &Statement{Index: idx}
	if len(nodes) == 0 || !isMetaLeader(nodes[0]) {
		body, err := reconstructUnits(idx, nodes)
		if err != nil {
			return nil, err
		}
		if err := checkChainTargets(idx, nodes, body); err != nil {
			return nil, err
		}
		stmt.Units = body
		return stmt, nil
	}

	if len(nodes) < 2 {
		return nil, structuralErrorf(idx, nodes[0], "meta leader without a definition")
	}
	target := nodes[1]
	if target == nil {
		return nil, structuralErrorf(idx, nil, "missing definition target")
	}
	switch Leader(target.Leader) {
	case Global:
		stmt.Meta = GlobalVarDef
	case Local:
		stmt.Meta = LocalVarDef
	case Type:
		stmt.Meta = TypeDef
	default:
		if !Leader(target.Leader).Valid() {
			return nil, structuralErrorf(idx, target, "unknown leader %q", string(rune(target.Leader)))
		}
		return nil, structuralErrorf(idx, target, "meta leader must be followed by #, @ or %%")
	}
	if target.Atom == "" {
		return nil, structuralErrorf(idx, target, "%s without a name", stmt.Meta)
	}
	stmt.Name = target.Atom

	if stmt.Meta == TypeDef {
		if !target.HasBlock() {
			return nil, structuralErrorf(idx, target, "type definition without a parameter block")
		}
		params, err := reconstructUnits(idx, target.Block)
		if err != nil {
			return nil, err
		}
		if err := checkChainTargets(idx, target.Block, params); err != nil {
			return nil, err
		}
		stmt.Units = params
		return stmt, nil
	}

	rhs := nodes[2:]
	if target.HasBlock() {
		// "@#name(...)" binds the block itself.
		rhs = append([]*tree.Node{{Block: target.Block}}, rhs...)
	}
	body, err := reconstructUnits(idx, rhs)
	if err != nil {
		return nil, err
	}
	if err := checkChainTargets(idx, rhs, body); err != nil {
		return nil, err
	}
	stmt.Units = body
	return stmt, nil
}

// checkChainTargets rejects a getter or setter with nothing to act on: one
// that opens a sequence or directly follows a key without its own block.
func checkChainTargets(stmt int, nodes []*tree.Node, us []*Unit) error {
	hasTarget := false
	for i, u := range us {
		switch {
		case u.Leader == Key:
			hasTarget = u.HasBlock()
		case u.IsChain():
			if !hasTarget {
				return structuralErrorf(stmt, nodes[i], "getter or setter without a target")
			}
		default:
			hasTarget = true
		}
	}
	return nil
}

func isMetaLeader(n *tree.Node) bool {
	return n != nil && n.Leader == tree.LocalLeader && n.Atom == "" && !n.HasBlock()
}

func reconstructUnits(stmt int, nodes []*tree.Node) ([]*Unit, error) {
	out := make([]*Unit, 0, len(nodes))
	for _, node := range nodes {
		unit, err := reconstructUnit(stmt, node)
		if err != nil {
			return nil, err
		}
		out = append(out, unit)
	}
	return out, nil
}

func reconstructUnit(stmt int, n *tree.Node) (*Unit, error) {
	if n == nil {
		return nil, structuralErrorf(stmt, nil, "nil node")
	}
	leader := Leader(n.Leader)
	if !leader.Valid() {
		return nil, structuralErrorf(stmt, n, "unknown leader %q", string(rune(n.Leader)))
	}
	switch leader {
	case None:
		if n.HasBlock() && n.Atom != "" {
			return nil, structuralErrorf(stmt, n, "literal cannot carry a block")
		}
	case Global, Local:
		if n.Atom == "" {
			return nil, structuralErrorf(stmt, n, "reference without a name")
		}
		if n.HasBlock() {
			return nil, structuralErrorf(stmt, n, "reference cannot carry a block")
		}
	case Getter:
		if n.Atom == "" {
			return nil, structuralErrorf(stmt, n, "getter without a key")
		}
		if n.HasBlock() {
			return nil, structuralErrorf(stmt, n, "getter cannot carry a block")
		}
	case Setter:
		if n.Atom == "" {
			return nil, structuralErrorf(stmt, n, "setter without a key")
		}
		if !n.HasBlock() {
			return nil, structuralErrorf(stmt, n, "setter without an argument block")
		}
	case Key:
		if n.Atom == "" {
			return nil, structuralErrorf(stmt, n, "key without a name")
		}
	}

	unit := &Unit{Leader: leader, Atom: n.Atom}
	if n.HasBlock() {
		blk, err := reconstructUnits(stmt, n.Block)
		if err != nil {
			return nil, err
		}
		if err := checkChainTargets(stmt, n.Block, blk); err != nil {
			return nil, err
		}
		unit.Block = blk
	}
	return unit, nil
}
