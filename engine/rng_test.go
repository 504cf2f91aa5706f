package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_SameSeedSameDraws(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
		require.Equal(t, a.Roll(6), b.Roll(6), "roll %d", i)
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestRNG_DifferentSeeds(t *testing.T) {
	a, b := NewRNG(1), NewRNG(2)
	differs := false
	for i := 0; i < 20 && !differs; i++ {
		differs = a.Roll(100) != b.Roll(100)
	}
	assert.True(t, differs, "different seeds should diverge within 20 rolls")
}

func TestRNG_Ranges(t *testing.T) {
	rng := NewRNG(99)
	for i := 0; i < 1000; i++ {
		f := rng.Float64()
		require.True(t, f >= 0 && f < 1, "Float64 out of range: %v", f)
		r := rng.Roll(6)
		require.True(t, r >= 1 && r <= 6, "Roll out of range: %d", r)
	}
	assert.Equal(t, 1, rng.Roll(1))
	assert.Equal(t, 1, rng.Roll(0), "zero sides counts as one")
}

func TestRNG_PositionCountsEveryDraw(t *testing.T) {
	rng := NewRNG(42)
	assert.Equal(t, int64(0), rng.Position())

	rng.Float64()
	rng.Roll(20)
	Pick(rng, []Weighted[string]{{"a", 1}, {"b", 1}})
	assert.Equal(t, int64(3), rng.Position())
}

func TestPick(t *testing.T) {
	t.Run("distribution follows weights", func(t *testing.T) {
		rng := NewRNG(12345)
		table := []Weighted[string]{{"cod", 70}, {"salmon", 20}, {"puffer", 10}}
		counts := map[string]int{}
		for i := 0; i < 10000; i++ {
			counts[Pick(rng, table)]++
		}
		assert.InDelta(t, 7000, counts["cod"], 1000)
		assert.InDelta(t, 2000, counts["salmon"], 1000)
		assert.InDelta(t, 1000, counts["puffer"], 800)
	})

	t.Run("non-positive weights never win", func(t *testing.T) {
		rng := NewRNG(3)
		table := []Weighted[int]{{1, 0}, {2, 5}, {3, -4}}
		for i := 0; i < 50; i++ {
			require.Equal(t, 2, Pick(rng, table))
		}
	})

	t.Run("empty table draws nothing", func(t *testing.T) {
		rng := NewRNG(3)
		assert.Equal(t, "", Pick(rng, []Weighted[string]{{"x", 0}}))
		assert.Equal(t, "", Pick[string](rng, nil))
		assert.Equal(t, int64(0), rng.Position())
	})

	t.Run("same seed same picks", func(t *testing.T) {
		a, b := NewRNG(8), NewRNG(8)
		for i := 0; i < 20; i++ {
			require.Equal(t, Pick(a, fishLoot), Pick(b, fishLoot))
		}
	})
}
