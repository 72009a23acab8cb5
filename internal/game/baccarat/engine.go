package baccarat

import (
	"context"

	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/engine"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/charmbracelet/log"
)

type Engine struct {
	h      *engine.Harness[Record, View]
	dealer *dealer.Dealer
}

func NewEngine(st *store.Store, d *dealer.Dealer, sim *simulator.Simulator, logger *log.Logger, startingChips float64) *Engine {
	return &Engine{
		h: engine.NewHarness(store.Baccarat, st, sim, logger,
			func() Record { return NewRecord(startingChips) },
			Sanitize,
		),
		dealer: d,
	}
}

func (e *Engine) do(ctx context.Context, player string, a action) (View, error) {
	return e.h.Do(ctx, player, a.name(), func(r *Record) { r.apply(a, e.dealer) })
}

func (e *Engine) State(ctx context.Context, player string) (View, error) {
	return e.h.View(ctx, player)
}

func (e *Engine) UpdateSettings(ctx context.Context, player string, s Settings) (View, error) {
	return e.do(ctx, player, updateSettings{settings: s})
}

func (e *Engine) PlaceBet(ctx context.Context, player string, t BetType, amount float64) (View, error) {
	return e.do(ctx, player, placeBet{bet: t, amount: amount})
}

func (e *Engine) ClearBets(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, clearBets{})
}

func (e *Engine) RepeatLastBet(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, repeatLastBet{})
}

func (e *Engine) Deal(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, deal{})
}

func (e *Engine) NextRound(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, nextRound{})
}
