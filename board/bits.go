package board

import "math/bits"

func popcnt(x uint64) int        { return bits.OnesCount64(x) }
func trailingZeros(x uint64) int { return bits.TrailingZeros64(x) }
