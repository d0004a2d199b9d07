// transposition.go implements C2, the always-consulted hash cache of
// best move / depth / score / bound per position. Grounded on the
// teacher's engine/hash_table.go (the split-lock, power-of-two-sized
// table and isInBounds/getBound naming) but reshaped to spec.md §4.1's
// bucketed-with-associativity-4, age-biased design, since the teacher's
// own table is a bare two-way table with no age field at all.
package search

import (
	"unsafe"

	"github.com/maren-voss/corechess/board"
)

// Bound mirrors the teacher's hashFlags but collapses it to the three
// kinds spec.md §3 names, dropping the teacher's separate hasStatic bit
// (this repo's transposition entry doesn't cache a static eval).
type Bound uint8

const (
	Exact Bound = iota + 1
	LowerBound
	UpperBound
)

// EntryFlags carries ancillary per-entry bits alongside Bound.
type EntryFlags uint8

const MateThreat EntryFlags = 1 << 0

const bucketSize = 4

// Entry is one transposition table slot. Mate scores are stored
// ply-relative (spec.md §3: "Mate distances are ply-adjusted on
// insertion ... so they are depth-relative"): Put applies toTTScore
// itself, and Get's callers apply fromTTScore below.
type Entry struct {
	hash  uint64
	Move  board.Move
	Depth int8
	Score Score
	Bound Bound
	Flags EntryFlags
	age   uint8
}

func (e Entry) valid() bool { return e.Bound != 0 }

// Transposition is the bucketed, always-replace (within a bucket)
// transposition table. Bucket index is hash&mask; within the bucket,
// entries are probed linearly (fixed associativity 4, spec.md §4.1).
type Transposition struct {
	buckets []([bucketSize]Entry)
	mask    uint64
	age     uint8
}

// NewTransposition allocates a table of the largest power-of-two
// bucket count that fits within sizeBytes, following spec.md §3's
// "size rounded to a power of two ≤ configured bytes".
func NewTransposition(sizeBytes int) *Transposition {
	bucketBytes := int(unsafe.Sizeof([bucketSize]Entry{}))
	if sizeBytes < bucketBytes {
		sizeBytes = bucketBytes
	}
	n := 1
	for n*bucketBytes*2 <= sizeBytes {
		n *= 2
	}
	return &Transposition{
		buckets: make([]([bucketSize]Entry), n),
		mask:    uint64(n - 1),
	}
}

// BumpAge increments the generation counter; entries written under a
// prior age become preferred replacement targets (spec.md §3's
// "monotonically incrementing age ... entries from prior searches are
// replaceable").
func (t *Transposition) BumpAge() { t.age++ }

// Clear zeroes every entry; Engine.NewGame calls it between games.
func (t *Transposition) Clear() {
	for i := range t.buckets {
		t.buckets[i] = [bucketSize]Entry{}
	}
}

// Size returns the number of entry slots (buckets * bucketSize).
func (t *Transposition) Size() int { return len(t.buckets) * bucketSize }

// Hashfull estimates per-mille occupancy by the current age, for the
// "info ... hashfull <permille>" event (spec.md §6).
func (t *Transposition) Hashfull() int {
	sample := len(t.buckets)
	if sample > 1000 {
		sample = 1000
	}
	used := 0
	for i := 0; i < sample; i++ {
		for _, e := range t.buckets[i] {
			if e.valid() && e.age == t.age {
				used++
			}
		}
	}
	return used * 1000 / (sample * bucketSize)
}

// Get returns the entry for hash, if present. Reads are hint-only
// (spec.md §4.1's contract): callers must still verify legality of
// Move before playing it.
func (t *Transposition) Get(hash uint64) (Entry, bool) {
	bucket := &t.buckets[hash&t.mask]
	for _, e := range bucket {
		if e.valid() && e.hash == hash {
			return e, true
		}
	}
	return Entry{}, false
}

// Put stores an entry, converting a mate score to ply-relative form
// first (spec.md §4.1). Replacement within the bucket prefers a slot
// with the current age and a smaller depth over the entry being
// written; failing that, the oldest entry in the bucket.
func (t *Transposition) Put(hash uint64, move board.Move, depth int, score Score, bound Bound, flags EntryFlags, ply int) {
	bucket := &t.buckets[hash&t.mask]
	entry := Entry{
		hash:  hash,
		Move:  move,
		Depth: int8(depth),
		Score: toTTScore(score, ply),
		Bound: bound,
		Flags: flags,
		age:   t.age,
	}

	slot := -1
	for i, e := range bucket {
		if !e.valid() || e.hash == hash {
			slot = i
			break
		}
	}
	if slot == -1 {
		for i, e := range bucket {
			if e.age == t.age && int(e.Depth) < depth && (slot == -1 || e.Depth < bucket[slot].Depth) {
				slot = i
			}
		}
	}
	if slot == -1 {
		slot = 0
		for i, e := range bucket {
			if t.age-e.age > t.age-bucket[slot].age {
				slot = i
			}
		}
	}
	bucket[slot] = entry
}

// PutLine walks a principal variation, writing one entry per step with
// decreasing depth and EXACT bound at interior steps (spec.md §4.1:
// put_line re-seeds the table with a just-found PV). Each step stores
// score from the point of view of the side to move at that step.
func (t *Transposition) PutLine(hashes []uint64, moves []board.Move, depth int, score Score, bound Bound) {
	for i := range moves {
		b := Exact
		s := score
		if i == 0 {
			b = bound
		}
		if i%2 == 1 {
			s = -score
		}
		t.Put(hashes[i], moves[i], depth-i, s, b, 0, i)
		if depth-i <= 0 {
			break
		}
	}
}

// IsCutoffAllowed implements spec.md §4.1's is_cutoff_allowed: only
// usable when entry.depth >= depth; tightens alpha/beta according to
// bound, returns whether the window has collapsed.
func IsCutoffAllowed(entry Entry, depth int, alpha, beta *Score) bool {
	if int(entry.Depth) < depth {
		return false
	}
	switch entry.Bound {
	case LowerBound:
		*alpha = maxScore(*alpha, entry.Score)
	case UpperBound:
		*beta = minScore(*beta, entry.Score)
	case Exact:
		*alpha = maxScore(*alpha, entry.Score)
		*beta = minScore(*beta, entry.Score)
	}
	return *alpha >= *beta
}

// toTTScore/fromTTScore convert between a search-relative score (ply
// from the search root) and a ply-relative one stored in the table
// (ply from the position the entry describes), per spec.md §3's "Mate
// distances are ply-adjusted on insertion into C2 so they are
// depth-relative."
func toTTScore(score Score, ply int) Score {
	if score >= MateValue-MaxSearchDepth {
		return score + Score(ply)
	}
	if score <= -(MateValue - MaxSearchDepth) {
		return score - Score(ply)
	}
	return score
}

func fromTTScore(score Score, ply int) Score {
	if score >= MateValue-MaxSearchDepth {
		return score - Score(ply)
	}
	if score <= -(MateValue - MaxSearchDepth) {
		return score + Score(ply)
	}
	return score
}
