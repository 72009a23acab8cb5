package blackjack

import (
	"slices"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

type HandView struct {
	Cards   []cards.Card `json:"cards"`
	Value   int          `json:"value"`
	Soft    bool         `json:"soft"`
	Bet     float64      `json:"bet"`
	Doubled bool         `json:"doubled,omitempty"`
	Result  Outcome      `json:"result,omitempty"`
}

// View 对外快照：不含牌靴，庄家底牌在揭开前用占位牌替代
type View struct {
	Settings         Settings      `json:"settings"`
	State            State         `json:"gameState"`
	Chips            float64       `json:"chips"`
	Bet              float64       `json:"bet"`
	LastBet          float64       `json:"lastBet"`
	Hands            []HandView    `json:"hands"`
	ActiveHand       int           `json:"activeHand"`
	Dealer           []cards.Card  `json:"dealer"`
	DealerValue      int           `json:"dealerValue"`
	InsuranceBet     float64       `json:"insuranceBet"`
	Result           string        `json:"result"`
	NetRoundWinnings float64       `json:"netRoundWinnings"`
	Ledger           table.Ledger  `json:"ledger"`
	CardsRemaining   int           `json:"cardsRemaining"`
	RoundID          string        `json:"roundId,omitempty"`
	Log              table.Journal `json:"log"`
}

func holeRevealed(s State) bool {
	return s == DealerTurn || s == RoundOver
}

func Sanitize(r Record) View {
	v := View{
		Settings:         r.Settings,
		State:            r.State,
		Chips:            r.Chips,
		Bet:              r.Bet,
		LastBet:          r.LastBet,
		ActiveHand:       r.ActiveHand,
		Dealer:           slices.Clone(r.Dealer),
		InsuranceBet:     r.InsuranceBet,
		Result:           r.Result,
		NetRoundWinnings: r.NetRoundWinnings,
		Ledger:           r.Ledger,
		CardsRemaining:   r.Deck.Remaining(),
		RoundID:          r.RoundID,
		Log:              slices.Clone(r.Log),
	}
	if len(v.Dealer) > 1 && !holeRevealed(r.State) {
		v.Dealer[1] = cards.Hidden
	}
	v.DealerValue, _ = HandValue(v.Dealer)
	for _, h := range r.Hands {
		total, soft := HandValue(h.Cards)
		v.Hands = append(v.Hands, HandView{
			Cards:   slices.Clone(h.Cards),
			Value:   total,
			Soft:    soft,
			Bet:     h.Bet,
			Doubled: h.Doubled,
			Result:  h.Result,
		})
	}
	return v
}

func (v View) Clone() View {
	out := v
	out.Dealer = slices.Clone(v.Dealer)
	out.Log = slices.Clone(v.Log)
	out.Hands = nil
	for _, h := range v.Hands {
		h.Cards = slices.Clone(h.Cards)
		out.Hands = append(out.Hands, h)
	}
	return out
}

func (v View) Advisories() table.Journal {
	return v.Log
}
