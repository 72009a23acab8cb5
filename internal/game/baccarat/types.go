package baccarat

import (
	"errors"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

// ReshuffleThreshold 开局前牌靴少于此数即整副重洗
const ReshuffleThreshold = 30

// HistorySize 路单保留的局数
const HistorySize = 60

type State string

const (
	Betting   State = "betting"
	Dealing   State = "dealing"
	RoundOver State = "round_over"
)

var States = []State{Betting, Dealing, RoundOver}

type BetType string

const (
	BetPlayer     BetType = "player"
	BetBanker     BetType = "banker"
	BetTie        BetType = "tie"
	BetPlayerPair BetType = "playerPair"
	BetBankerPair BetType = "bankerPair"
)

var BetTypes = []BetType{BetPlayer, BetBanker, BetTie, BetPlayerPair, BetBankerPair}

// Bets 五个独立下注区
type Bets struct {
	Player     float64 `json:"player"`
	Banker     float64 `json:"banker"`
	Tie        float64 `json:"tie"`
	PlayerPair float64 `json:"playerPair"`
	BankerPair float64 `json:"bankerPair"`
}

func (b *Bets) slot(t BetType) *float64 {
	switch t {
	case BetPlayer:
		return &b.Player
	case BetBanker:
		return &b.Banker
	case BetTie:
		return &b.Tie
	case BetPlayerPair:
		return &b.PlayerPair
	case BetBankerPair:
		return &b.BankerPair
	}
	return nil
}

func (b Bets) Get(t BetType) float64 {
	if p := b.slot(t); p != nil {
		return *p
	}
	return 0
}

func (b Bets) Total() float64 {
	return b.Player + b.Banker + b.Tie + b.PlayerPair + b.BankerPair
}

func ValidBetType(t BetType) bool {
	var b Bets
	return b.slot(t) != nil
}

// Settings 桌规
type Settings struct {
	Decks      int     `json:"decks"`
	MinBet     float64 `json:"minBet"`
	MaxBet     float64 `json:"maxBet"`
	TieOdds    float64 `json:"tieOdds"`
	PairOdds   float64 `json:"pairOdds"`
	Commission float64 `json:"commission"`
}

func DefaultSettings() Settings {
	return Settings{
		Decks:      8,
		MinBet:     10,
		MaxBet:     1000,
		TieOdds:    8,
		PairOdds:   11,
		Commission: 0.05,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.Decks < 1 || s.Decks > 8:
		return errors.New("decks must be between 1 and 8")
	case s.MinBet <= 0:
		return errors.New("minimum bet must be positive")
	case s.MaxBet < s.MinBet:
		return errors.New("maximum bet below minimum bet")
	case s.TieOdds <= 0 || s.PairOdds <= 0:
		return errors.New("odds must be positive")
	case s.Commission < 0 || s.Commission >= 1:
		return errors.New("commission must be in [0, 1)")
	}
	return nil
}

type Winner string

const (
	NoWinner     Winner = ""
	WinnerPlayer Winner = "player"
	WinnerBanker Winner = "banker"
	WinnerTie    Winner = "tie"
)

// Record 持久化记录
type Record struct {
	Settings         Settings      `json:"settings"`
	Deck             cards.Deck    `json:"deck"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bets             Bets          `json:"bets"`
	LastBets         Bets          `json:"lastBets"`
	PlayerHand       []cards.Card  `json:"playerHand"`
	BankerHand       []cards.Card  `json:"bankerHand"`
	Natural          bool          `json:"natural"`
	Winner           Winner        `json:"winner"`
	PlayerPair       bool          `json:"playerPair"`
	BankerPair       bool          `json:"bankerPair"`
	Result           string        `json:"result"`
	NetRoundWinnings float64       `json:"netRoundWinnings"`
	Ledger           table.Ledger  `json:"ledger"`
	RoundID          string        `json:"roundId,omitempty"`
	History          []Winner      `json:"history"`
	Log              table.Journal `json:"log"`
}

func NewRecord(chips float64) Record {
	return Record{
		Settings: DefaultSettings(),
		State:    Betting,
		Chips:    chips,
	}
}
