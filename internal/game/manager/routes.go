package manager

import (
	"context"
	"encoding/json"
	"fmt"

	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/chat"
	"BlockCasino/internal/game/roulette"
)

// simple 无参数动作
func simple[V any](f func(context.Context, string) (V, error)) handler {
	return func(ctx context.Context, player string, _ json.RawMessage) (any, error) {
		return f(ctx, player)
	}
}

// with 先解码参数再执行
func with[P, V any](f func(context.Context, string, P) (V, error)) handler {
	return func(ctx context.Context, player string, data json.RawMessage) (any, error) {
		p, err := decode[P](data)
		if err != nil {
			return nil, err
		}
		return f(ctx, player, p)
	}
}

func (m *GameManager) registerBlackjack(e *blackjack.Engine) {
	const reply = "blackjack.state"
	m.handle("blackjack.state", reply, simple(e.State))
	m.handle("blackjack.settings", reply, with(e.UpdateSettings))
	m.handle("blackjack.bet", reply, with(func(ctx context.Context, p string, a amountPayload) (blackjack.View, error) {
		return e.PlaceBet(ctx, p, a.Amount)
	}))
	m.handle("blackjack.clearBet", reply, simple(e.ClearBet))
	m.handle("blackjack.repeatBet", reply, simple(e.RepeatBet))
	m.handle("blackjack.maxBet", reply, simple(e.MaxBet))
	m.handle("blackjack.deal", reply, simple(e.Deal))
	m.handle("blackjack.insurance", reply, with(func(ctx context.Context, p string, c choicePayload) (blackjack.View, error) {
		return e.DecideInsurance(ctx, p, c.Accept)
	}))
	m.handle("blackjack.evenMoney", reply, with(func(ctx context.Context, p string, c choicePayload) (blackjack.View, error) {
		return e.DecideEvenMoney(ctx, p, c.Accept)
	}))
	m.handle("blackjack.hit", reply, simple(e.Hit))
	m.handle("blackjack.stand", reply, simple(e.Stand))
	m.handle("blackjack.double", reply, simple(e.Double))
	m.handle("blackjack.split", reply, simple(e.Split))
	m.handle("blackjack.surrender", reply, simple(e.Surrender))
	m.handle("blackjack.nextRound", reply, simple(e.NextRound))
}

type baccaratBet struct {
	Type   baccarat.BetType `json:"type"`
	Amount float64          `json:"amount"`
}

func (m *GameManager) registerBaccarat(e *baccarat.Engine) {
	const reply = "baccarat.state"
	m.handle("baccarat.state", reply, simple(e.State))
	m.handle("baccarat.settings", reply, with(e.UpdateSettings))
	m.handle("baccarat.bet", reply, with(func(ctx context.Context, p string, b baccaratBet) (baccarat.View, error) {
		if !baccarat.ValidBetType(b.Type) {
			return baccarat.View{}, fmt.Errorf("%w: unknown bet type %q", errBadPayload, b.Type)
		}
		return e.PlaceBet(ctx, p, b.Type, b.Amount)
	}))
	m.handle("baccarat.clearBets", reply, simple(e.ClearBets))
	m.handle("baccarat.repeatLastBet", reply, simple(e.RepeatLastBet))
	m.handle("baccarat.deal", reply, simple(e.Deal))
	m.handle("baccarat.nextRound", reply, simple(e.NextRound))
}

type rouletteBet struct {
	Bet    string  `json:"bet"`
	Amount float64 `json:"amount"`
}

func (m *GameManager) registerRoulette(e *roulette.Engine) {
	const reply = "roulette.state"
	m.handle("roulette.state", reply, simple(e.State))
	m.handle("roulette.settings", reply, with(e.UpdateSettings))
	m.handle("roulette.bet", reply, with(func(ctx context.Context, p string, b rouletteBet) (roulette.View, error) {
		bet, err := roulette.ParseBet(b.Bet)
		if err != nil {
			return roulette.View{}, fmt.Errorf("%w: %v", errBadPayload, err)
		}
		return e.PlaceBet(ctx, p, bet, b.Amount)
	}))
	m.handle("roulette.clearBets", reply, simple(e.ClearBets))
	m.handle("roulette.repeatLastBet", reply, simple(e.RepeatLastBet))
	m.handle("roulette.spin", reply, simple(e.Spin))
	m.handle("roulette.payouts", reply, simple(e.CalculatePayouts))
	m.handle("roulette.nextRound", reply, simple(e.NextRound))
}

type chatPayload struct {
	Text string `json:"text"`
}

func (m *GameManager) registerChat(e *chat.Engine) {
	const reply = "chat.history"
	m.handle("chat.history", reply, simple(e.History))
	m.handle("chat.send", reply, with(func(ctx context.Context, p string, c chatPayload) (chat.View, error) {
		return e.Send(ctx, p, c.Text)
	}))
}
