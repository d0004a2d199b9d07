// pv_cache.go implements C4: a direct-mapped store of the move list
// observed at a PV node together with each move's subtree node count
// from the last time that node was searched, used to reorder moves on
// the next iterative-deepening iteration (spec.md §3/§4.2). Grounded on
// the teacher's engine/pv.go for the lock-and-slot shape of a direct-
// mapped table, but storing a move list with counts rather than a
// single best move, since spec.md's C4 is a materially different cache
// than the teacher's single-move PV table.
package search

import "github.com/maren-voss/corechess/board"

const pvCacheSize = 1 << 14
const maxPVMoves = 64

type pvCacheEntry struct {
	valid  bool
	hash   uint64
	moves  [maxPVMoves]board.Move
	counts [maxPVMoves]uint64
	n      int
}

// PVCache is direct-mapped; any key mismatch is an eviction (spec.md
// §3).
type PVCache struct {
	entries [pvCacheSize]pvCacheEntry
}

// NewPVCache returns an empty cache.
func NewPVCache() *PVCache { return &PVCache{} }

// Clear zeroes the table.
func (c *PVCache) Clear() { *c = PVCache{} }

// Lookup returns the cached (moves, counts) pair for hash, if present.
// The returned slices alias the cache's own storage; callers must not
// retain them past the next Commit to the same slot.
func (c *PVCache) Lookup(hash uint64) (moves []board.Move, counts []uint64, ok bool) {
	e := &c.entries[hash&(pvCacheSize-1)]
	if !e.valid || e.hash != hash {
		return nil, nil, false
	}
	return e.moves[:e.n], e.counts[:e.n], true
}

// Commit writes (hash, moves, counts) into the direct-mapped slot,
// overwriting whatever was there (spec.md §4.2: "commit writes ...
// overwriting"). Moves beyond maxPVMoves are silently dropped — no PV
// node searches anywhere near that many root-level siblings in
// practice, and dropping the tail only degrades move-ordering quality,
// never correctness.
func (c *PVCache) Commit(hash uint64, moves []board.Move, counts []uint64) {
	e := &c.entries[hash&(pvCacheSize-1)]
	n := len(moves)
	if n > maxPVMoves {
		n = maxPVMoves
	}
	e.hash = hash
	e.valid = true
	e.n = n
	copy(e.moves[:n], moves[:n])
	copy(e.counts[:n], counts[:n])
}
