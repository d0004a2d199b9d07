// poll.go implements the single suspension point described in spec.md
// §5: open_node polls the external command channel, gated by a node-
// count mask, and checks the three timeout thresholds. No other point
// in the search ever blocks or yields.
package search

func (ctx *Context) openNode(ply int) {
	ctx.Stats.Nodes++
	if ply > ctx.Stats.SelDepth {
		ctx.Stats.SelDepth = ply
	}
	if ctx.Stats.Nodes&pollInterval != 0 {
		return
	}
	ctx.poll()
}

func (ctx *Context) poll() {
	select {
	case cmd := <-ctx.cmd:
		if cmd.Abort {
			ctx.Abort()
		}
	default:
	}
	if ctx.Aborted() {
		return
	}
	if ctx.Limits.Nodes > 0 && ctx.Stats.Nodes >= ctx.Limits.Nodes {
		ctx.Abort()
		return
	}
	if ctx.Limits.Infinite || ctx.Limits.Ponder {
		return
	}

	soFar := ctx.Clock.Elapsed()

	if ctx.Limits.TimeLimit > 0 && soFar >= ctx.Limits.TimeLimit {
		ctx.Abort()
		return
	}
	if ctx.Limits.TimeTarget > 0 && soFar >= ctx.Limits.TimeTarget+ctx.Limits.Bonus && ctx.currentMoveIndex == 1 {
		ctx.Abort()
		return
	}
	if ctx.Limits.TimeTarget > 0 && soFar > 4*(ctx.Limits.TimeTarget+ctx.Limits.Bonus) && !ctx.resolvingFailHigh {
		ctx.Abort()
		return
	}

	ctx.maybeEmitProgress(soFar)
}
