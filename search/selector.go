// selector.go implements C5: the staged move generator/scorer. Modeled,
// per spec.md §9, as "a tagged variant with a fixed transition table
// keyed by generator" rather than the teacher's own move_ordering.go
// state machine (msHash/msGenViolent/... iota constants) — the phase
// names and the "generate, then linear max-scan with swap-to-front"
// selection technique are kept from the teacher, generalized to the
// generator-dependent phase sequences spec.md §4.3 specifies.
package search

import (
	"github.com/maren-voss/corechess/board"
	"github.com/maren-voss/corechess/eval"
)

func pieceValueMG(fig board.Figure) int32 { return eval.PieceValueMG(fig) }

// Generation selects a phase sequence (spec.md §4.3's table).
type Generation int

const (
	RootGen Generation = iota
	PVGen
	NonPVGen
	EscapeGen
	QGen
	QCheckGen
)

type stage int

const (
	stageRoot stage = iota
	stageTrans
	stagePV
	stageNonPV
	stageEvasions
	stageQSearch
	stageQSearchCh
	stageDeferred
	stageEnd
)

var phaseSeq = map[Generation][]stage{
	RootGen:   {stageRoot, stageEnd},
	PVGen:     {stageTrans, stagePV, stageDeferred, stageEnd},
	NonPVGen:  {stageTrans, stageNonPV, stageDeferred, stageEnd},
	EscapeGen: {stageEvasions, stageDeferred, stageEnd},
	QGen:      {stageTrans, stageQSearch, stageDeferred, stageEnd},
	QCheckGen: {stageTrans, stageQSearchCh, stageDeferred, stageEnd},
}

// kLimit is the number of scored picks a phase performs via linear
// max-scan before falling back to generated order, per spec.md §4.3's
// table (256 PV, 16 NONPV/EVASIONS, 4 QSEARCH).
func kLimit(st stage) int {
	switch st {
	case stagePV:
		return 256
	case stageNonPV, stageEvasions:
		return 16
	case stageQSearch, stageQSearchCh:
		return 4
	default:
		return 0
	}
}

// DeferEnabled gates the deferral machinery. spec.md §9: "the source
// defines defer_enabled = false; the deferral machinery must still be
// correct if enabled ... but is dormant by default." Kept as a const
// rather than a field since nothing in this repository ever flips it
// at runtime.
const DeferEnabled = false

// Selector is the phase-driven move generator/scorer for one node. It
// owns its own move/score/deferred buffers (spec.md §5: "Each
// init_move_selector owns storage for its move arrays and deferred
// buffer until the selector goes out of scope"); in Go that ownership
// is just normal value semantics, reclaimed by the garbage collector
// when the Selector is dropped.
type Selector struct {
	pos     *board.Position
	history *HistoryTable
	pvCache *PVCache

	gen Generation
	seq []stage
	si  int

	hashMove    board.Move
	hashUsed    bool
	killers     [2]board.Move
	killersPly2 [2]board.Move
	mateKiller  board.Move

	moves  []board.Move
	scores []int64
	scan   int
	k      int
	curSt  stage

	deferred   []board.Move
	deferScan  int
	movesSoFar int

	singleReply bool

	// root-only: pre-ordered move list, set by SetRootMoves.
	rootMoves []board.Move

	recordMoves  []board.Move
	recordCounts []uint64

	pvMoves  []board.Move
	pvCounts []uint64
}

// NewSelector builds a selector for pos. gen is overridden to
// EscapeGen whenever the side to move is in check (spec.md §4.3),
// except when the caller asked for RootGen (root search handles check
// the same way regardless — it still wants every legal move).
func NewSelector(pos *board.Position, gen Generation, hashMove board.Move, node *Node, node2 *Node, history *HistoryTable, pvCache *PVCache) *Selector {
	if gen != RootGen && pos.IsChecked(pos.Us()) {
		gen = EscapeGen
	}
	s := &Selector{
		pos:      pos,
		history:  history,
		pvCache:  pvCache,
		gen:      gen,
		seq:      phaseSeq[gen],
		hashMove: hashMove,
	}
	if node != nil {
		s.killers = node.Killers
		s.mateKiller = node.MateKiller
	}
	if node2 != nil {
		s.killersPly2 = node2.Killers
	}
	if len(s.seq) > 0 {
		s.curSt = s.seq[0]
	}
	return s
}

// SetRootMoves installs a pre-ordered root move list for RootGen
// selectors. The root search itself does not build a selector: it
// iterates the list rootOrder returns directly.
func (s *Selector) SetRootMoves(moves []board.Move) { s.rootMoves = moves }

// MovesSoFar returns the ordinal count of moves returned so far, not
// counting deferred moves while they were deferred (spec.md §4.3:
// "moves_so_far is decremented on deferral so ordinal counters remain
// accurate").
func (s *Selector) MovesSoFar() int { return s.movesSoFar }

// HasSingleReply reports whether an EscapeGen selector found exactly
// one legal evasion, used by the caller to apply the single-reply
// extension (spec.md §4.3/§4.4).
func (s *Selector) HasSingleReply() bool { return s.singleReply }

// Defer buffers move for replay in the DEFERRED phase. Disabled by
// DeferEnabled; kept correct so enabling the flag needs no further
// change (spec.md §4.3/§9).
func (s *Selector) Defer(move board.Move) {
	if !DeferEnabled {
		return
	}
	s.deferred = append(s.deferred, move)
	s.movesSoFar--
}

// RecordSubtree notes, for a PV-node selector, how many subtree nodes
// move consumed; collected across the node's search and flushed into
// the PV cache by CommitPV (spec.md §4.2).
func (s *Selector) RecordSubtree(move board.Move, nodes uint64) {
	s.recordMoves = append(s.recordMoves, move)
	s.recordCounts = append(s.recordCounts, nodes)
}

// CommitPV writes the recorded (move, nodes) pairs to the PV cache
// under hash, padding any remaining un-recorded moves with a zero
// count (spec.md §4.4 step 12: "Commit C4 (flushing remaining moves
// with zero counts)").
func (s *Selector) CommitPV(hash uint64) {
	if s.pvCache == nil {
		return
	}
	moves, counts := s.recordMoves, s.recordCounts
	if s.scan < len(s.moves) {
		for _, m := range s.moves[s.scan:] {
			moves = append(moves, m)
			counts = append(counts, 0)
		}
	}
	s.pvCache.Commit(hash, moves, counts)
}

func (s *Selector) advance() {
	s.si++
	if s.si < len(s.seq) {
		s.curSt = s.seq[s.si]
	}
	s.moves = nil
	s.scores = nil
	s.scan = 0
}

// Next returns the next move in phase order, or (NoMove, false) once
// exhausted.
func (s *Selector) Next() (board.Move, bool) {
	for s.si < len(s.seq) {
		switch s.curSt {
		case stageRoot:
			if s.scan < len(s.rootMoves) {
				m := s.rootMoves[s.scan]
				s.scan++
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageTrans:
			if !s.hashUsed && s.hashMove != board.NoMove {
				s.hashUsed = true
				s.movesSoFar++
				return s.hashMove, true
			}
			s.advance()

		case stagePV:
			s.ensureGenerated(s.scorePV)
			if m, ok := s.pick(); ok {
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageNonPV:
			s.ensureGenerated(s.scoreOrdinary)
			if m, ok := s.pick(); ok {
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageEvasions:
			if s.moves == nil {
				s.moves = s.pos.GenerateEvasions(nil)
				s.singleReply = len(s.moves) == 1
				s.scores = make([]int64, len(s.moves))
				for i, m := range s.moves {
					s.scores[i] = s.scoreOrdinary(m)
				}
				s.k = kLimit(stageEvasions)
			}
			if m, ok := s.pick(); ok {
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageQSearch:
			s.ensureGenerated(func(m board.Move) int64 { return s.scoreOrdinary(m) })
			if m, ok := s.pickQ(); ok {
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageQSearchCh:
			if s.moves == nil {
				s.moves = s.pos.GenerateQuiescenceMoves(true, nil)
				s.scores = make([]int64, len(s.moves))
				for i, m := range s.moves {
					s.scores[i] = s.scoreOrdinary(m)
				}
				s.k = kLimit(stageQSearchCh)
			}
			if m, ok := s.pickQ(); ok {
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageDeferred:
			if s.deferScan < len(s.deferred) {
				m := s.deferred[s.deferScan]
				s.deferScan++
				s.movesSoFar++
				return m, true
			}
			s.advance()

		case stageEnd:
			return board.NoMove, false
		}
	}
	return board.NoMove, false
}

func (s *Selector) ensureGenerated(score func(board.Move) int64) {
	if s.moves != nil {
		return
	}
	var kind board.Kind
	switch s.curSt {
	case stagePV, stageNonPV:
		kind = board.All
	case stageQSearch:
		kind = board.Tactical
	}
	var raw []board.Move
	if s.curSt == stageQSearch {
		raw = s.pos.GenerateQuiescenceMoves(false, nil)
	} else {
		raw = s.pos.GenerateLegalMoves(kind, nil)
	}
	s.moves = s.moves[:0]
	for _, m := range raw {
		if m == s.hashMove {
			continue
		}
		s.moves = append(s.moves, m)
	}
	s.scores = make([]int64, len(s.moves))
	for i, m := range s.moves {
		s.scores[i] = score(m)
	}
	s.k = kLimit(s.curSt)
}

// pick performs the K-limited linear max-scan with swap-to-front;
// beyond K picks, moves are returned in generated order.
func (s *Selector) pick() (board.Move, bool) {
	if s.scan >= len(s.moves) {
		return board.NoMove, false
	}
	if s.scan < s.k {
		best := s.scan
		for i := s.scan + 1; i < len(s.moves); i++ {
			if s.scores[i] > s.scores[best] {
				best = i
			}
		}
		s.moves[s.scan], s.moves[best] = s.moves[best], s.moves[s.scan]
		s.scores[s.scan], s.scores[best] = s.scores[best], s.scores[s.scan]
	}
	m := s.moves[s.scan]
	s.scan++
	return m, true
}

// pickQ is pick, plus quiescence's "bad tactical" filter (spec.md
// §4.3's QSEARCH filtering clause): moves scored below MaxHistory that
// aren't queen promotions are skipped entirely, never returned.
func (s *Selector) pickQ() (board.Move, bool) {
	for {
		if s.scan >= len(s.moves) {
			return board.NoMove, false
		}
		idx := s.scan
		if s.scan < s.k {
			best := s.scan
			for i := s.scan + 1; i < len(s.moves); i++ {
				if s.scores[i] > s.scores[best] {
					best = i
				}
			}
			s.moves[s.scan], s.moves[best] = s.moves[best], s.moves[s.scan]
			s.scores[s.scan], s.scores[best] = s.scores[best], s.scores[s.scan]
			idx = s.scan
		}
		m := s.moves[idx]
		sc := s.scores[idx]
		s.scan++
		if sc < MaxHistory && !m.IsQueenPromotion() {
			continue
		}
		return m, true
	}
}

const scoreG = int64(MaxHistory)

// scoreOrdinary implements spec.md §4.3's per-class scoring table for
// the NONPV/EVASIONS/QSEARCH phases.
func (s *Selector) scoreOrdinary(m board.Move) int64 {
	if m == s.mateKiller {
		return 1000*scoreG - 1
	}
	if m.IsViolent() {
		victim := int64(pieceValueMG(m.Capture().Figure()))
		attacker := int64(pieceValueMG(m.Piece().Figure()))
		good := board.StaticExchangeSign(s.pos, m) || victim >= attacker || m.IsQueenPromotion()
		if good {
			return 800*scoreG + 6*victim - attacker
		}
		return -800*scoreG + 6*victim - attacker
	}
	for i, k := range s.killers {
		if m == k {
			return 700*scoreG - int64(i)
		}
	}
	for i, k := range s.killersPly2 {
		if m == k {
			return 700*scoreG - int64(2+i)
		}
	}
	return s.history.Get(m)
}

// scorePV scores a move for the PV phase: if the PV cache has a
// recorded list for this node's hash, legal moves that appear in it are
// scored by their cached subtree node count (scaled above every other
// class so the cache "dominates all other ordering heuristics at that
// node", spec.md §4.2); everything else falls back to scoreOrdinary.
func (s *Selector) scorePV(m board.Move) int64 {
	if s.pvMoves != nil {
		for i, cm := range s.pvMoves {
			if cm == m {
				return 2000*scoreG + int64(s.pvCounts[i])
			}
		}
	}
	return s.scoreOrdinary(m)
}

// LastScore returns the internal ordering score assigned to the most
// recently returned move, used by alpha-beta's late-move-reduction
// heuristic (spec.md §4.4: "2 ply if the move's score is negative").
func (s *Selector) LastScore() int64 {
	if s.scan == 0 || s.scan > len(s.scores) {
		return 0
	}
	return s.scores[s.scan-1]
}

// PreloadPVCache makes the cached move list for hash (if any) available
// to scorePV. Called by the PV-node search right after building the
// selector and before its first Next, per spec.md §4.2: "On entry to a PV-generation phase at the
// same hash in a later iteration, the selector preloads the cached
// list."
func (s *Selector) PreloadPVCache(hash uint64) {
	if s.pvCache == nil {
		return
	}
	if moves, counts, ok := s.pvCache.Lookup(hash); ok {
		s.pvMoves = moves
		s.pvCounts = counts
	}
}
