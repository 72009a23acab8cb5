package blackjack

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
		h: engine.NewHarness(store.Blackjack, st, sim, logger,
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

func (e *Engine) PlaceBet(ctx context.Context, player string, amount float64) (View, error) {
	return e.do(ctx, player, placeBet{amount: amount})
}

func (e *Engine) ClearBet(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, clearBet{})
}

func (e *Engine) RepeatBet(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, repeatBet{})
}

func (e *Engine) MaxBet(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, maxBet{})
}

func (e *Engine) Deal(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, deal{})
}

func (e *Engine) DecideInsurance(ctx context.Context, player string, accept bool) (View, error) {
	return e.do(ctx, player, decideInsurance{accept: accept})
}

func (e *Engine) DecideEvenMoney(ctx context.Context, player string, accept bool) (View, error) {
	return e.do(ctx, player, decideEvenMoney{accept: accept})
}

func (e *Engine) Hit(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, hit{})
}

func (e *Engine) Stand(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, stand{})
}

func (e *Engine) Double(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, double{})
}

func (e *Engine) Split(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, split{})
}

func (e *Engine) Surrender(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, surrender{})
}

func (e *Engine) NextRound(ctx context.Context, player string) (View, error) {
	return e.do(ctx, player, nextRound{})
}
