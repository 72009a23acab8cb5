package roulette

import (
	"testing"

	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDealer = dealer.NewDealer(1)

func mustBet(t *testing.T, key string) Bet {
	t.Helper()
	b, err := ParseBet(key)
	require.NoError(t, err)
	return b
}

func place(t *testing.T, r *Record, key string, amount float64) {
	t.Helper()
	r.apply(placeBet{bet: mustBet(t, key), amount: amount}, testDealer)
	require.False(t, r.Log.Rejected(), "bet rejected: %v", r.Log)
}

// settleOn 直接让球落在 n 上并结算
func settleOn(t *testing.T, r *Record, n int) {
	t.Helper()
	idx := IndexOf(n)
	require.GreaterOrEqual(t, idx, 0)
	r.land(idx)
	r.apply(calculatePayouts{}, testDealer)
	require.False(t, r.Log.Rejected(), "payout rejected: %v", r.Log)
	require.Equal(t, Payout, r.State)
	assert.InDelta(t, r.Ledger.Credited-r.Ledger.Wagered, r.NetRoundWinnings, 1e-9)
}

func TestStraightUpPays35(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "straight_17", 10)
	settleOn(t, &r, 17)
	assert.Equal(t, 360.0, r.Ledger.Credited)
	assert.Equal(t, 350.0, r.NetRoundWinnings)
	assert.Equal(t, 1350.0, r.Chips)

	lose := NewRecord(1000)
	place(t, &lose, "straight_17", 10)
	settleOn(t, &lose, 18)
	assert.Equal(t, 0.0, lose.Ledger.Credited)
	assert.Equal(t, -10.0, lose.NetRoundWinnings)
	assert.Equal(t, 990.0, lose.Chips)
}

func TestMixedBoardPayouts(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "split_17-20", 10)
	place(t, &r, "corner_13-14-16-17", 10)
	place(t, &r, "street_16-17-18", 10)
	place(t, &r, "sixLine_13-14-15-16-17-18", 10)
	place(t, &r, "column_2", 10)
	place(t, &r, "dozen_2", 10)
	place(t, &r, "black", 10)
	place(t, &r, "odd", 10)
	place(t, &r, "low", 10)
	place(t, &r, "red", 10)
	assert.Equal(t, 900.0, r.Chips)

	settleOn(t, &r, 17)
	// 180 + 90 + 120 + 60 + 30 + 30 + 20 + 20 + 20，red 输
	assert.Equal(t, 570.0, r.Ledger.Credited)
	assert.Equal(t, 470.0, r.NetRoundWinnings)
	assert.Equal(t, 1470.0, r.Chips)
	assert.Equal(t, "17 black", r.Result)
}

func TestZeroSweepsOutsideBets(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "red", 50)
	place(t, &r, "even", 50)
	place(t, &r, "split_0-00", 10)
	settleOn(t, &r, DoubleZero)
	assert.Equal(t, 180.0, r.Ledger.Credited)
	assert.Equal(t, 70.0, r.NetRoundWinnings)
}

func TestPlaceBetAccumulatesOnSameSpot(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "split_2-1", 10)
	place(t, &r, "split_1-2", 15)
	require.Len(t, r.Bets, 1)
	assert.Equal(t, 25.0, r.Bets[0].Amount)
	assert.Equal(t, "split_1-2", r.Bets[0].Bet.Key())
}

func TestPlaceBetRejections(t *testing.T) {
	r := NewRecord(100)

	r.apply(placeBet{bet: Bet{Kind: Corner, Numbers: []int{1, 2, 3, 4}}, amount: 10}, testDealer)
	assert.True(t, r.Log.Rejected())
	r.apply(placeBet{bet: Bet{Kind: RedBet}, amount: -1}, testDealer)
	assert.True(t, r.Log.Rejected())
	r.apply(placeBet{bet: Bet{Kind: RedBet}, amount: 200}, testDealer)
	assert.True(t, r.Log.Rejected())
	assert.Equal(t, 100.0, r.Chips)
	assert.Empty(t, r.Bets)
}

func TestSpinGuards(t *testing.T) {
	r := NewRecord(5000)
	r.apply(spin{}, testDealer)
	assert.True(t, r.Log.Rejected(), "no bets")

	place(t, &r, "red", 2)
	r.apply(spin{}, testDealer)
	assert.True(t, r.Log.Rejected(), "below minimum")

	place(t, &r, "black", 1001)
	r.apply(spin{}, testDealer)
	assert.True(t, r.Log.Rejected(), "above maximum")
	assert.Equal(t, Betting, r.State)
	assert.Equal(t, -1, r.WinningIndex)
}

func TestSpinThenPayoutThenNextRound(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "even", 20)

	r.apply(spin{}, testDealer)
	require.False(t, r.Log.Rejected())
	require.Equal(t, Spinning, r.State)
	require.NotNil(t, r.Winning)
	assert.Equal(t, Wheel[r.WinningIndex], *r.Winning)
	assert.NotEmpty(t, r.RoundID)
	assert.Len(t, r.History, 1)

	// 动画期间不能加注
	r.apply(placeBet{bet: Bet{Kind: OddBet}, amount: 10}, testDealer)
	require.Len(t, r.Log, 1)
	assert.Equal(t, table.CatState, r.Log[0].Category)

	r.apply(calculatePayouts{}, testDealer)
	require.Equal(t, Payout, r.State)
	assert.InDelta(t, 1000+r.NetRoundWinnings, r.Chips, 1e-9)

	r.apply(calculatePayouts{}, testDealer)
	assert.True(t, r.Log.Rejected(), "payouts only once")

	r.apply(nextRound{}, testDealer)
	assert.Equal(t, Betting, r.State)
	assert.Empty(t, r.Bets)
	assert.Nil(t, r.Winning)
	assert.Len(t, r.History, 1)

	chips := r.Chips
	r.apply(repeatLastBet{}, testDealer)
	require.False(t, r.Log.Rejected())
	assert.Equal(t, chips-20, r.Chips)
	require.Len(t, r.Bets, 1)
	assert.Equal(t, EvenBet, r.Bets[0].Bet.Kind)
}

func TestHistoryKeepsLastFourteen(t *testing.T) {
	r := NewRecord(1000)
	for i := 0; i < 20; i++ {
		place(t, &r, "red", 5)
		settleOn(t, &r, i%37)
		r.apply(nextRound{}, testDealer)
	}
	require.Len(t, r.History, HistorySize)
	assert.Equal(t, "19", r.History[HistorySize-1].Label)
	assert.Equal(t, "6", r.History[0].Label)
}

func TestClearBetsIdempotent(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "straight_5", 10)
	r.apply(clearBets{}, testDealer)
	assert.Equal(t, 1000.0, r.Chips)
	r.apply(clearBets{}, testDealer)
	assert.False(t, r.Log.Rejected())
	assert.Equal(t, 1000.0, r.Chips)
}

func TestUpdateSettings(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "dozen_3", 40)

	s := Settings{MinBet: 10, MaxBet: 200}
	r.apply(updateSettings{settings: s}, testDealer)
	require.False(t, r.Log.Rejected())
	assert.Equal(t, 1000.0, r.Chips)
	assert.Empty(t, r.Bets)
	assert.Equal(t, s, r.Settings)

	r.apply(updateSettings{settings: Settings{MinBet: 10, MaxBet: 5}}, testDealer)
	assert.True(t, r.Log.Rejected())
	assert.Equal(t, s, r.Settings)

	place(t, &r, "straight_1", 10)
	r.land(IndexOf(2))
	r.apply(updateSettings{settings: DefaultSettings()}, testDealer)
	assert.Equal(t, table.CatState, r.Log[0].Category, "not while the wheel spins")

	r.apply(calculatePayouts{}, testDealer)
	r.apply(updateSettings{settings: DefaultSettings()}, testDealer)
	require.False(t, r.Log.Rejected())
	assert.Equal(t, 990.0, r.Chips, "settled stakes are not returned")
	assert.Equal(t, Betting, r.State)
}

func TestSanitizeCopies(t *testing.T) {
	r := NewRecord(1000)
	place(t, &r, "split_1-4", 10)
	settleOn(t, &r, 4)

	v := Sanitize(r)
	assert.Equal(t, 10.0, v.TotalBet)
	require.NotNil(t, v.Winning)

	cp := v.Clone()
	cp.Winning.Label = "x"
	cp.Bets[0].Bet.Numbers[0] = 30
	assert.Equal(t, "4", v.Winning.Label)
	assert.Equal(t, 1, v.Bets[0].Bet.Numbers[0])
	assert.Equal(t, "4", r.Winning.Label)
}
