package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// dayRNG gives every (seed, day, purpose) triple its own reproducible stream,
// so a reading never depends on how many draws earlier days made.
func dayRNG(seed int64, day int, purpose string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, purpose), uint64(day)))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
