package baccarat

import (
	"context"
	"math/rand"
	"testing"

	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	st := store.New(store.NewMemoryRepo(), nil)
	return NewEngine(st, dealer.NewDealer(11), simulator.Instant(), nil, 1000)
}

func TestEngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	v, err := e.PlaceBet(ctx, "0xA", BetBanker, 50)
	require.NoError(t, err)
	assert.Equal(t, 950.0, v.Chips)
	assert.Equal(t, 50.0, v.Bets.Banker)

	v, err = e.Deal(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, RoundOver, v.State)
	assert.NotEqual(t, NoWinner, v.Winner)
	assert.Len(t, v.History, 1)
	assert.InDelta(t, 950.0+v.NetRoundWinnings+50, v.Chips, 1e-9)

	v, err = e.State(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, RoundOver, v.State)

	v, err = e.NextRound(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, Betting, v.State)

	v, err = e.RepeatLastBet(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v.Bets.Banker)

	v, err = e.ClearBets(ctx, "0xA")
	require.NoError(t, err)
	assert.Zero(t, v.Bets.Total())
}

func TestEngineConservationOverManyRounds(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	rnd := rand.New(rand.NewSource(3))

	v, err := e.State(ctx, "0xA")
	require.NoError(t, err)
	chips := v.Chips

	for round := 0; round < 300 && chips >= 10; round++ {
		stake := 0.0
		for _, bt := range BetTypes {
			if rnd.Intn(2) == 0 || chips-stake < 20 {
				continue
			}
			amt := float64(10 + rnd.Intn(3)*5)
			v, err = e.PlaceBet(ctx, "0xA", bt, amt)
			require.NoError(t, err)
			require.False(t, v.Log.Rejected())
			stake += amt
		}
		if stake < 10 {
			v, err = e.PlaceBet(ctx, "0xA", BetPlayer, 10)
			require.NoError(t, err)
			stake += 10
		}

		v, err = e.Deal(ctx, "0xA")
		require.NoError(t, err)
		require.Equal(t, RoundOver, v.State, "round %d: %v", round, v.Log)
		assert.InDelta(t, chips+v.NetRoundWinnings, v.Chips, 1e-9, "round %d", round)
		chips = v.Chips

		_, err = e.NextRound(ctx, "0xA")
		require.NoError(t, err)
	}
}
