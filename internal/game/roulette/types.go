package roulette

import (
	"errors"

	"BlockCasino/internal/game/table"
)

// HistorySize 轮盘旁显示的最近开奖数
const HistorySize = 14

type State string

const (
	Betting  State = "betting"
	Spinning State = "spinning"
	Payout   State = "payout"
)

var States = []State{Betting, Spinning, Payout}

type Settings struct {
	MinBet float64 `json:"minBet"`
	MaxBet float64 `json:"maxBet"`
}

func DefaultSettings() Settings {
	return Settings{
		MinBet: 5,
		MaxBet: 1000,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.MinBet <= 0:
		return errors.New("minimum bet must be positive")
	case s.MaxBet < s.MinBet:
		return errors.New("maximum bet below minimum bet")
	}
	return nil
}

// Wager 一个注位上的累计金额
type Wager struct {
	Bet    Bet     `json:"bet"`
	Amount float64 `json:"amount"`
}

func totalOf(ws []Wager) float64 {
	total := 0.0
	for _, w := range ws {
		total += w.Amount
	}
	return total
}

type Record struct {
	Settings         Settings      `json:"settings"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bets             []Wager       `json:"bets"`
	LastBets         []Wager       `json:"lastBets"`
	WinningIndex     int           `json:"winningIndex"`
	Winning          *Pocket       `json:"winning"`
	Result           string        `json:"result"`
	NetRoundWinnings float64       `json:"netRoundWinnings"`
	Ledger           table.Ledger  `json:"ledger"`
	RoundID          string        `json:"roundId,omitempty"`
	History          []Pocket      `json:"history"`
	Log              table.Journal `json:"log"`
}

func NewRecord(chips float64) Record {
	return Record{
		Settings:     DefaultSettings(),
		State:        Betting,
		Chips:        chips,
		WinningIndex: -1,
	}
}
