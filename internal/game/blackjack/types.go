package blackjack

import (
	"errors"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

// ReshuffleThreshold 开局前牌靴少于此数即整副重洗
const ReshuffleThreshold = 52

type State string

const (
	Betting          State = "betting"
	InsuranceBetting State = "insurance_betting"
	EvenMoneyChoice  State = "even_money_choice"
	PlayerTurn       State = "player_turn"
	DealerTurn       State = "dealer_turn"
	RoundOver        State = "round_over"
)

var States = []State{Betting, InsuranceBetting, EvenMoneyChoice, PlayerTurn, DealerTurn, RoundOver}

const (
	PayoutThreeToTwo = 1.5
	PayoutSixToFive  = 1.2
)

// Settings 桌规
type Settings struct {
	Decks            int     `json:"decks"`
	MinBet           float64 `json:"minBet"`
	MaxBet           float64 `json:"maxBet"`
	HitSoft17        bool    `json:"hitSoft17"`
	BlackjackPayout  float64 `json:"blackjackPayout"`
	InsuranceEnabled bool    `json:"insuranceEnabled"`
	SurrenderAllowed bool    `json:"surrenderAllowed"`
	MaxHands         int     `json:"maxHands"`
}

func DefaultSettings() Settings {
	return Settings{
		Decks:            6,
		MinBet:           10,
		MaxBet:           500,
		HitSoft17:        false,
		BlackjackPayout:  PayoutThreeToTwo,
		InsuranceEnabled: true,
		SurrenderAllowed: true,
		MaxHands:         4,
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
	case s.BlackjackPayout != PayoutThreeToTwo && s.BlackjackPayout != PayoutSixToFive:
		return errors.New("blackjack payout must be 3:2 or 6:5")
	case s.MaxHands < 1:
		return errors.New("max hands must be at least 1")
	}
	return nil
}

// Outcome 单手结算结果
type Outcome string

const (
	Pending     Outcome = ""
	Win         Outcome = "win"
	Lose        Outcome = "lose"
	Push        Outcome = "push"
	Bust        Outcome = "bust"
	Natural     Outcome = "blackjack"
	Surrendered Outcome = "surrender"
	EvenMoney   Outcome = "even_money"
)

type Hand struct {
	Cards   []cards.Card `json:"cards"`
	Bet     float64      `json:"bet"`
	Doubled bool         `json:"doubled,omitempty"`
	Result  Outcome      `json:"result,omitempty"`
}

// Record 持久化记录，牌靴与底牌只在服务端
type Record struct {
	Settings         Settings      `json:"settings"`
	Deck             cards.Deck    `json:"deck"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bet              float64       `json:"bet"`
	LastBet          float64       `json:"lastBet"`
	Hands            []Hand        `json:"hands"`
	ActiveHand       int           `json:"activeHand"`
	Dealer           []cards.Card  `json:"dealer"`
	InsuranceBet     float64       `json:"insuranceBet"`
	Result           string        `json:"result"`
	NetRoundWinnings float64       `json:"netRoundWinnings"`
	Ledger           table.Ledger  `json:"ledger"`
	RoundID          string        `json:"roundId,omitempty"`
	Log              table.Journal `json:"log"`
}

func NewRecord(chips float64) Record {
	return Record{
		Settings: DefaultSettings(),
		State:    Betting,
		Chips:    chips,
	}
}
