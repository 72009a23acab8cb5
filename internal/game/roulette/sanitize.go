package roulette

import (
	"slices"

	"BlockCasino/internal/game/table"
)

type View struct {
	Settings         Settings      `json:"settings"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bets             []Wager       `json:"bets"`
	TotalBet         float64       `json:"totalBet"`
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

func Sanitize(r Record) View {
	v := View{
		Settings:         r.Settings,
		State:            r.State,
		Chips:            r.Chips,
		Bets:             cloneWagers(r.Bets),
		TotalBet:         totalOf(r.Bets),
		LastBets:         cloneWagers(r.LastBets),
		WinningIndex:     r.WinningIndex,
		Result:           r.Result,
		NetRoundWinnings: r.NetRoundWinnings,
		Ledger:           r.Ledger,
		RoundID:          r.RoundID,
		History:          slices.Clone(r.History),
		Log:              slices.Clone(r.Log),
	}
	if r.Winning != nil {
		p := *r.Winning
		v.Winning = &p
	}
	return v
}

func (v View) Clone() View {
	out := v
	out.Bets = cloneWagers(v.Bets)
	out.LastBets = cloneWagers(v.LastBets)
	out.History = slices.Clone(v.History)
	out.Log = slices.Clone(v.Log)
	if v.Winning != nil {
		p := *v.Winning
		out.Winning = &p
	}
	return out
}

func (v View) Advisories() table.Journal {
	return v.Log
}
