package baccarat

import (
	"slices"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

// View 对外快照，不含牌靴
type View struct {
	Settings         Settings      `json:"settings"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bets             Bets          `json:"bets"`
	LastBets         Bets          `json:"lastBets"`
	PlayerHand       []cards.Card  `json:"playerHand"`
	PlayerScore      int           `json:"playerScore"`
	BankerHand       []cards.Card  `json:"bankerHand"`
	BankerScore      int           `json:"bankerScore"`
	Natural          bool          `json:"natural"`
	Winner           Winner        `json:"winner"`
	PlayerPair       bool          `json:"playerPair"`
	BankerPair       bool          `json:"bankerPair"`
	Result           string        `json:"result"`
	NetRoundWinnings float64       `json:"netRoundWinnings"`
	Ledger           table.Ledger  `json:"ledger"`
	CardsRemaining   int           `json:"cardsRemaining"`
	RoundID          string        `json:"roundId,omitempty"`
	History          []Winner      `json:"history"`
	Log              table.Journal `json:"log"`
}

func Sanitize(r Record) View {
	return View{
		Settings:         r.Settings,
		State:            r.State,
		Chips:            r.Chips,
		Bets:             r.Bets,
		LastBets:         r.LastBets,
		PlayerHand:       slices.Clone(r.PlayerHand),
		PlayerScore:      Score(r.PlayerHand),
		BankerHand:       slices.Clone(r.BankerHand),
		BankerScore:      Score(r.BankerHand),
		Natural:          r.Natural,
		Winner:           r.Winner,
		PlayerPair:       r.PlayerPair,
		BankerPair:       r.BankerPair,
		Result:           r.Result,
		NetRoundWinnings: r.NetRoundWinnings,
		Ledger:           r.Ledger,
		CardsRemaining:   r.Deck.Remaining(),
		RoundID:          r.RoundID,
		History:          slices.Clone(r.History),
		Log:              slices.Clone(r.Log),
	}
}

func (v View) Clone() View {
	out := v
	out.PlayerHand = slices.Clone(v.PlayerHand)
	out.BankerHand = slices.Clone(v.BankerHand)
	out.History = slices.Clone(v.History)
	out.Log = slices.Clone(v.Log)
	return out
}

func (v View) Advisories() table.Journal {
	return v.Log
}
