package effects

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/types"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Chance(effectID string, d dispatcher.Dispatcher) (float64, error) {
	args := m.Called(effectID, d)
	return args.Get(0).(float64), args.Error(1)
}

type countingRoller struct {
	r     *rand.Rand
	draws int
}

func newRoller(seed int64) *countingRoller {
	return &countingRoller{r: rand.New(rand.NewSource(seed))}
}

func (c *countingRoller) Float64() float64 {
	c.draws++
	return c.r.Float64()
}

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

func TestPassesChance_Extremes(t *testing.T) {
	const draws = 100_000
	tests := []struct {
		name string
		p    float64
		want bool
	}{
		{"never", 0.0, false},
		{"always", 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			src.On("Chance", ElytraBoostSaveChanceID, mock.Anything).Return(tt.p, nil)
			roller := newRoller(42)
			effect := NewChanceMultiplier(ElytraBoostSaveChanceID, src, roller)

			for i := 0; i < draws; i++ {
				if effect.PassesChance(dispatcher.Global()) != tt.want {
					t.Fatalf("draw %d: expected %v at p=%v", i, tt.want, tt.p)
				}
			}
			assert.Equal(t, draws, roller.draws, "one draw per call")
		})
	}
}

func TestPassesChance_DrawBelowProbability(t *testing.T) {
	src := &mockSource{}
	src.On("Chance", "x", mock.Anything).Return(0.5, nil)

	assert.True(t, NewChanceMultiplier("x", src, fixedRoller(0.49)).PassesChance(dispatcher.Global()))
	assert.False(t, NewChanceMultiplier("x", src, fixedRoller(0.5)).PassesChance(dispatcher.Global()))
}

func TestPassesChance_KeyedByDispatcher(t *testing.T) {
	alice := &types.Actor{ID: uuid.New(), DisplayName: "alice"}
	d := dispatcher.ForActor(alice)

	src := &mockSource{}
	src.On("Chance", "x", d).Return(1.0, nil).Once()

	effect := NewChanceMultiplier("x", src, fixedRoller(0))
	assert.True(t, effect.PassesChance(d))
	src.AssertExpectations(t)
}

func TestPassesChance_LookupFailureFailsClosed(t *testing.T) {
	src := &mockSource{}
	src.On("Chance", "x", mock.Anything).Return(0.0, errors.New(errors.ErrChanceLookup, "config unavailable"))
	roller := newRoller(1)

	effect := NewChanceMultiplier("x", src, roller)
	assert.False(t, effect.PassesChance(dispatcher.Global()))
	assert.Equal(t, 0, roller.draws)
}

func TestElytraBoostSaveChance(t *testing.T) {
	player := &types.Actor{ID: uuid.New(), DisplayName: "alice"}

	tests := []struct {
		name        string
		p           float64
		wantConsume bool
	}{
		{"passes: firework kept", 1.0, false},
		{"fails: firework consumed", 0.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			src.On("Chance", ElytraBoostSaveChanceID, dispatcher.ForActor(player)).Return(tt.p, nil)
			effect := NewElytraBoostSaveChance(src, fixedRoller(0.5))

			ev := &types.ElytraBoostEvent{Player: player, ShouldConsume: true}
			assert.True(t, effect.Handle(ev))
			assert.Equal(t, tt.wantConsume, ev.ShouldConsume)
			assert.Equal(t, types.EventElytraBoost, effect.EventType())
			assert.Equal(t, ElytraBoostSaveChanceID, effect.ID())
		})
	}
}

func TestElytraBoostSaveChance_IgnoresOtherEvents(t *testing.T) {
	src := &mockSource{}
	effect := NewElytraBoostSaveChance(src, fixedRoller(0))

	assert.False(t, effect.Handle(&types.FishEvent{}))
	assert.False(t, effect.Handle(&types.ElytraBoostEvent{}))
	assert.False(t, effect.Handle(&types.ElytraBoostEvent{Player: (*types.Actor)(nil), ShouldConsume: true}))
	src.AssertNotCalled(t, "Chance", mock.Anything, mock.Anything)
}
