// Package plantree holds the pure algorithms over the plan → session → exercise → set tree:
// identifier generation, normalization, partial-update merge, progress application and
// completion rollup. Nothing in here touches storage.
package plantree

import (
	"math/rand"
	"strings"
)

const (
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idLength   = 6
)

// IDGenerator produces a logical identifier for the given prefix.
type IDGenerator func(prefix string) string

// NewID returns "{prefix}-{6 random base36 uppercase chars}".
// The space is ~2^31 per prefix: collisions are unlikely, not impossible. Uniqueness within a
// parent is enforced by the normalizer, global uniqueness is not guaranteed.
func NewID(prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + idLength)
	b.WriteString(prefix)
	b.WriteByte('-')
	for i := 0; i < idLength; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}

// uniqueID asks gen for ids until one is not in taken, then records it.
func uniqueID(gen IDGenerator, prefix string, taken map[string]struct{}) string {
	for {
		id := gen(prefix)
		if _, dup := taken[id]; !dup {
			taken[id] = struct{}{}
			return id
		}
	}
}
