// Package uci is the UCI protocol front-end: parsing commands from
// stdin, driving an engine.Engine, and formatting search.Event values
// back into "info .../bestmove ..." lines. Out of scope for
// correctness per spec.md §1 ("the UCI/console front-end... is
// explicitly out of scope"), kept ambient so the module is runnable,
// the same way frankkopp-FrankyGo and the teacher's own zurichess/uci.go
// both ship one.
//
// Grounded directly on zurichess/uci.go's Execute/dispatch shape (the
// "commands that don't require idle" vs "commands that do" split,
// the regexp-based command/option parsing) adapted to call through
// engine.Engine instead of zurichess's own Engine type.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maren-voss/corechess/board"
	"github.com/maren-voss/corechess/config"
	"github.com/maren-voss/corechess/engine"
	"github.com/maren-voss/corechess/logging"
	"github.com/maren-voss/corechess/search"
)

const maxMultiPV = 16

var errQuit = fmt.Errorf("quit")

// UCI holds one engine.Engine plus the bookkeeping the protocol itself
// needs (root move restriction, the in-flight result channel).
type UCI struct {
	Engine *engine.Engine
	out    io.Writer

	resultCh  <-chan search.Result
	rootMoves []board.Move
}

// New builds a UCI front-end writing "info"/"bestmove" lines to out.
func New(out io.Writer) *UCI {
	u := &UCI{out: out}
	u.Engine = engine.New(u.onEvent)
	return u
}

// Run reads UCI commands from in until EOF or "quit".
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		logging.UCI().Debug(line)
		if err := u.Execute(line); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(u.out, "info string error: %v\n", err)
		}
	}
}

var reCmd = regexp.MustCompile(`^\S+`)

// Execute dispatches a single UCI command line.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		fmt.Fprintln(u.out, "readyok")
		return nil
	case "quit":
		return errQuit
	case "stop":
		u.Engine.Stop()
		return nil
	case "ucinewgame":
		u.Engine.NewGame()
		return nil
	case "position":
		return u.position(line)
	case "go":
		return u.go_(line)
	case "setoption":
		return u.setoption(line)
	case "ponderhit":
		return nil
	default:
		return fmt.Errorf("unhandled command %q", cmd)
	}
}

func (u *UCI) uci() error {
	fmt.Fprintln(u.out, "id name corechess")
	fmt.Fprintln(u.out, "id author corechess contributors")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name Hash type spin default %d min 1 max 65536\n", config.Default.Search.HashSizeMB)
	fmt.Fprintf(u.out, "option name MultiPV type spin default %d min 1 max %d\n", config.Default.Search.MultiPV, maxMultiPV)
	fmt.Fprintln(u.out, "option name Ponder type check default true")
	fmt.Fprintln(u.out, "option name OwnBook type check default false")
	fmt.Fprintln(u.out, "option name Clear Hash type button")
	fmt.Fprintln(u.out, "uciok")
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *board.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = board.PositionFromFEN(board.FENStartPos)
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = board.PositionFromFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}
	u.Engine.SetPosition(pos)

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, ok := parseUCIMove(u.Engine.Position, s)
			if !ok {
				return fmt.Errorf("invalid move %q", s)
			}
			if !u.Engine.DoMove(m) {
				return fmt.Errorf("illegal move %q", s)
			}
		}
	}
	return nil
}

// parseUCIMove finds the legal move matching a UCI move string (e.g.
// "e2e4", "e7e8q") by generating legal moves and comparing UCI text,
// since board.Move itself only decodes from its packed encoding.
func parseUCIMove(pos *board.Position, s string) (board.Move, bool) {
	for _, m := range pos.GenerateLegalMoves(board.All, nil) {
		if m.UCI() == s {
			return m, true
		}
	}
	return board.NoMove, false
}

var validGoArgs = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true, "depth": true,
	"nodes": true, "mate": true, "movetime": true, "infinite": true,
}

func (u *UCI) go_(line string) error {
	args := strings.Fields(line)[1:]
	var limits search.Limits
	u.rootMoves = u.rootMoves[:0]

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !validGoArgs[args[i+1]] {
				i++
				m, ok := parseUCIMove(u.Engine.Position, args[i])
				if !ok {
					return fmt.Errorf("invalid searchmoves entry %q", args[i])
				}
				u.rootMoves = append(u.rootMoves, m)
			}
		case "ponder":
			limits.Ponder = true
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			limits.Depth = d
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			limits.Nodes = n
		case "movetime":
			i++
			ms, _ := strconv.Atoi(args[i])
			limits.MoveTime = time.Duration(ms) * time.Millisecond
			limits.TimeTarget = limits.MoveTime
			limits.TimeLimit = limits.MoveTime
		case "wtime", "btime", "winc", "binc", "movestogo", "mate":
			i++ // time-control fields consumed by a richer clock than this front-end wires up
		default:
			return fmt.Errorf("invalid go argument %q", args[i])
		}
	}
	limits.MultiPV = config.Current.Search.MultiPV
	limits.RootMoves = u.rootMoves

	u.resultCh = u.Engine.Go(limits)
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("invalid setoption arguments")
	}
	name := option[1]
	switch name {
	case "Clear Hash":
		u.Engine.NewGame()
		return nil
	}
	if len(option) < 3 || option[3] == "" {
		return fmt.Errorf("missing setoption value for %q", name)
	}
	value := option[3]
	switch name {
	case "Hash":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		u.Engine.ApplyHashSize(n)
		return nil
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxMultiPV {
			return fmt.Errorf("MultiPV must be between 1 and %d", maxMultiPV)
		}
		u.Engine.ApplyMultiPV(n)
		return nil
	case "Ponder", "OwnBook":
		return nil
	default:
		return fmt.Errorf("unhandled option %q", name)
	}
}

// onEvent renders a search.Event as one UCI protocol line.
func (u *UCI) onEvent(ev search.Event) {
	switch ev.Kind {
	case search.EventCurrMove:
		fmt.Fprintf(u.out, "info currmove %s currmovenumber %d\n", ev.CurrMove.UCI(), ev.CurrMoveNumber)
	case search.EventProgress:
		fmt.Fprintf(u.out, "info nodes %d nps %d hashfull %d time %d\n",
			ev.Nodes, ev.NPS, ev.Hashfull, ev.ElapsedMS)
	case search.EventPV:
		fmt.Fprintf(u.out, "info depth %d seldepth %d multipv %d score %s nodes %d time %d pv%s\n",
			ev.Depth, ev.SelDepth, max(ev.MultiPVIndex, 1), scoreString(ev), ev.Nodes, ev.ElapsedMS, pvString(ev.PV))
	case search.EventBestMove:
		if ev.BestMove == board.NoMove {
			fmt.Fprintln(u.out, "bestmove (none)")
		} else if ev.PonderMove == board.NoMove {
			fmt.Fprintf(u.out, "bestmove %s\n", ev.BestMove.UCI())
		} else {
			fmt.Fprintf(u.out, "bestmove %s ponder %s\n", ev.BestMove.UCI(), ev.PonderMove.UCI())
		}
	}
}

func scoreString(ev search.Event) string {
	if ev.IsMate {
		return fmt.Sprintf("mate %d", search.MateDistanceInMoves(ev.Score))
	}
	return fmt.Sprintf("cp %d", ev.Score)
}

func pvString(pv []board.Move) string {
	var b strings.Builder
	for _, m := range pv {
		b.WriteByte(' ')
		b.WriteString(m.UCI())
	}
	return b.String()
}
