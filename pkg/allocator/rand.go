package allocator

import "math/rand/v2"

// Source is the randomness capability the allocator needs: a uniform
// integer in [0, n). It is injected so tests can supply a deterministic
// seed (see NewSeededSource) and assert exact identifier outputs.
type Source interface {
	// Intn returns a pseudo-random number in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// source wraps a *rand.Rand to satisfy Source.
type source struct {
	r *rand.Rand
}

func (s source) Intn(n int) int {
	return s.r.IntN(n)
}

// DefaultSource returns a Source backed by a process-seeded generator,
// suitable for production use.
func DefaultSource() Source {
	return source{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededSource returns a Source with reproducible output for a given
// seed, for tests and for deterministic replay of recorded allocations.
func NewSeededSource(seed uint64) Source {
	return source{r: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}
