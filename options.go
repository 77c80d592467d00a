package ordstat

import "fmt"

type config struct {
	compress bool
	rng      RNG
}

type setOption func(*config) error

// Compressed makes New accept a universe in any order and with
// duplicates: it is sorted and deduplicated with Compress before use.
// NaNs are dropped.
//
// Without this option New rejects a universe that is not strictly
// ascending.
func Compressed() setOption {
	return func(c *config) error {
		c.compress = true
		return nil
	}
}

// RandomNumberGenerator sets the RNG used by Set.Random.
func RandomNumberGenerator(rng RNG) setOption {
	return func(c *config) error {
		if rng == nil {
			return fmt.Errorf("RandomNumberGenerator must not be nil")
		}
		c.rng = rng
		return nil
	}
}

// LocalRandomNumberGenerator makes Set.Random use a generator private
// to the set, seeded with seed, instead of the process-global one.
func LocalRandomNumberGenerator(seed int64) setOption {
	return RandomNumberGenerator(newLocalRNG(seed))
}
