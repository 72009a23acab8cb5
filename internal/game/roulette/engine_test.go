package roulette

import (
	"context"
	"testing"

	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	st := store.New(store.NewMemoryRepo(), nil)
	return NewEngine(st, dealer.NewDealer(5), simulator.Instant(), nil, 1000)
}

func TestEngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	v, err := e.State(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, Betting, v.State)
	assert.Equal(t, -1, v.WinningIndex)

	v, err = e.PlaceBet(ctx, "0xA", mustBet(t, "straight_17"), 10)
	require.NoError(t, err)
	v, err = e.PlaceBet(ctx, "0xA", Bet{Kind: RedBet}, 10)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.TotalBet)

	v, err = e.Spin(ctx, "0xA")
	require.NoError(t, err)
	require.Equal(t, Spinning, v.State)
	require.NotNil(t, v.Winning)
	assert.Zero(t, v.NetRoundWinnings)

	v, err = e.CalculatePayouts(ctx, "0xA")
	require.NoError(t, err)
	require.Equal(t, Payout, v.State)
	assert.InDelta(t, 1000+v.NetRoundWinnings, v.Chips, 1e-9)

	v, err = e.NextRound(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, Betting, v.State)

	v, err = e.RepeatLastBet(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.TotalBet)

	v, err = e.ClearBets(ctx, "0xA")
	require.NoError(t, err)
	assert.Zero(t, v.TotalBet)

	v, err = e.UpdateSettings(ctx, "0xA", Settings{MinBet: 1, MaxBet: 50})
	require.NoError(t, err)
	assert.Equal(t, 50.0, v.Settings.MaxBet)
}

func TestEngineConservationOverManyRounds(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	keys := []string{"straight_00", "split_8-11", "street_25-26-27", "corner_20-21-23-24", "sixLine_1-2-3-4-5-6", "column_1", "dozen_3", "black", "even", "high"}

	chips := 1000.0
	for round := 0; round < 200 && chips >= 5; round++ {
		key := keys[round%len(keys)]
		_, err := e.PlaceBet(ctx, "0xA", mustBet(t, key), 5)
		require.NoError(t, err)

		_, err = e.Spin(ctx, "0xA")
		require.NoError(t, err)
		v, err := e.CalculatePayouts(ctx, "0xA")
		require.NoError(t, err)
		require.Equal(t, Payout, v.State, "round %d: %v", round, v.Log)
		assert.InDelta(t, chips+v.NetRoundWinnings, v.Chips, 1e-9, "round %d", round)
		chips = v.Chips

		_, err = e.NextRound(ctx, "0xA")
		require.NoError(t, err)
	}
}
