package content

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// KeyGenerator produces block keys. Implementations must return keys that
// are unique for the lifetime of the generator.
type KeyGenerator interface {
	NextKey() string
}

// RandomKeys returns a generator producing short random keys derived from
// UUIDs, collision-checked across the generator's lifetime.
func RandomKeys() KeyGenerator {
	return &randomKeys{seen: make(map[string]bool)}
}

type randomKeys struct {
	seen map[string]bool
}

func (g *randomKeys) NextKey() string {
	for {
		key := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if !g.seen[key] {
			g.seen[key] = true
			return key
		}
	}
}

// SequentialKeys returns a deterministic generator producing prefix0,
// prefix1, ... for use in tests and fixtures.
func SequentialKeys(prefix string) KeyGenerator {
	return &sequentialKeys{prefix: prefix}
}

type sequentialKeys struct {
	prefix string
	n      int
}

func (g *sequentialKeys) NextKey() string {
	key := g.prefix + strconv.Itoa(g.n)
	g.n++
	return key
}
