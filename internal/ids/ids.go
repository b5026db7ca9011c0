// Package ids draws the short random identifiers the console hands out.
// They are display ids, not unique keys: collisions are not prevented.
package ids

import (
	"math/rand/v2"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Source is the subset of *rand.Rand the console needs.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default draws from the process-wide, goroutine-safe generator.
func Default() Source { return globalSource{} }

// Seeded returns a deterministic source for tests.
func Seeded(a, b uint64) Source { return rand.New(rand.NewPCG(a, b)) }

// Base36 returns n random lowercase base-36 characters.
func Base36(src Source, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36[src.IntN(len(base36))])
	}
	return b.String()
}
