package engine

import "math/rand"

// RNG is the engine's only source of randomness. Every draw advances
// Position, so Handle can report how many draws an event consumed and a
// replay from the same seed lands on the same numbers.
type RNG struct {
	seed  int64
	src   *rand.Rand
	draws int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform draw in [0,1). It satisfies effects.Roller.
func (r *RNG) Float64() float64 {
	r.draws++
	return r.src.Float64()
}

// Roll returns a die roll in [1, sides]. Fewer than one side counts as one.
func (r *RNG) Roll(sides int) int {
	if sides < 1 {
		sides = 1
	}
	r.draws++
	return r.src.Intn(sides) + 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.draws
}

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Pick selects one entry with probability proportional to its weight, using
// a single draw. Entries weighted zero or less are never picked; a table
// with no positive weight yields the zero value and draws nothing.
func Pick[T any](r *RNG, table []Weighted[T]) T {
	var zero T
	total := 0
	for _, e := range table {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return zero
	}

	r.draws++
	n := r.src.Intn(total)
	for _, e := range table {
		if e.Weight <= 0 {
			continue
		}
		if n < e.Weight {
			return e.Value
		}
		n -= e.Weight
	}
	return zero
}
