package search

import "github.com/maren-voss/corechess/board"

// Node is the per-ply scratch state spec.md §3 calls out explicitly: a
// principal-variation line, two killer slots and a mate-killer slot.
// Context.Nodes is a fixed MaxSearchDepth array of these so recursion
// never allocates; ply indexes into it directly (spec.md §9's "owned
// node stack of fixed size MAX_SEARCH_DEPTH, indexed by ply").
type Node struct {
	PV           [MaxSearchDepth]board.Move
	pvLen        int
	Killers      [2]board.Move
	MateKiller   board.Move
}

// ClearPV truncates this node's PV to empty, done at the start of every
// alpha-beta/quiescence call (spec.md §4.4 step 1).
func (n *Node) ClearPV() { n.pvLen = 0 }

// PVLine returns the recorded line as a slice (len == n.pvLen).
func (n *Node) PVLine() []board.Move { return n.PV[:n.pvLen] }

// BestMove returns the first move of the recorded PV, or NoMove if the
// PV is empty. ClearPV only resets the length, not the backing array,
// so reading PV[0] directly after a ClearPV would risk returning a
// stale move from an earlier, unrelated search of this ply; this is
// the safe accessor every caller outside node.go should use instead.
func (n *Node) BestMove() board.Move {
	if n.pvLen == 0 {
		return board.NoMove
	}
	return n.PV[0]
}

// UpdatePV sets this node's PV to move followed by child's recorded
// line, the "update PV by copying child PV with the move prepended"
// step from spec.md §4.4 step 12.
func (n *Node) UpdatePV(move board.Move, child *Node) {
	n.PV[0] = move
	copy(n.PV[1:], child.PV[:child.pvLen])
	n.pvLen = child.pvLen + 1
}

// ResetKillers clears both killer slots and the mate killer. Only the
// root search calls it, for ply 0 at the start of each iteration;
// interior nodes keep the killers earlier nodes at the same ply left
// (killers from ply-2 are read explicitly by the caller, per spec.md
// §4.4 step 11).
func (n *Node) ResetKillers() {
	n.Killers = [2]board.Move{}
	n.MateKiller = board.NoMove
}

// AddKiller pushes m into killer slot 0, shifting the previous slot-0
// killer into slot 1, unless m is already slot 0 (spec.md §4.4 step 12:
// "push onto killers if not already killer0").
func (n *Node) AddKiller(m board.Move) {
	if n.Killers[0] == m {
		return
	}
	n.Killers[1] = n.Killers[0]
	n.Killers[0] = m
}
