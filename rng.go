package ordstat

import (
	"math/rand"

	gorng "github.com/leesper/go_rng"
)

// RNG is the source of randomness for Set.Random.
type RNG interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) int
}

type globalRNG struct{}

func (r *globalRNG) Intn(i int) int {
	return rand.Intn(i)
}

type localRNG struct {
	uniform *gorng.UniformGenerator
}

func newLocalRNG(seed int64) *localRNG {
	return &localRNG{
		uniform: gorng.NewUniformGenerator(seed),
	}
}

func (r *localRNG) Intn(i int) int {
	return int(r.uniform.Int64n(int64(i)))
}
