package baccarat

import (
	"slices"

	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/table"

	"github.com/google/uuid"
)

type action interface {
	name() string
}

type (
	updateSettings struct{ settings Settings }
	placeBet       struct {
		bet    BetType
		amount float64
	}
	clearBets     struct{}
	repeatLastBet struct{}
	deal          struct{}
	nextRound     struct{}
)

func (updateSettings) name() string { return "updateSettings" }
func (placeBet) name() string       { return "placeBet" }
func (clearBets) name() string      { return "clearBets" }
func (repeatLastBet) name() string  { return "repeatLastBet" }
func (deal) name() string           { return "deal" }
func (nextRound) name() string      { return "nextRound" }

// Dealing 只在 deal 内部出现，落盘前一定已结算
var allowed = map[string][]State{
	"updateSettings": {Betting, RoundOver},
	"placeBet":       {Betting},
	"clearBets":      {Betting},
	"repeatLastBet":  {Betting},
	"deal":           {Betting},
	"nextRound":      {RoundOver},
}

func (r *Record) apply(a action, d *dealer.Dealer) {
	r.Log = nil
	if !slices.Contains(allowed[a.name()], r.State) {
		r.Log.Add(table.CatState, "%s is not available while %s", a.name(), r.State)
		return
	}
	switch a := a.(type) {
	case updateSettings:
		r.updateSettings(a.settings, d)
	case placeBet:
		r.placeBet(a.bet, a.amount)
	case clearBets:
		r.clearBets()
	case repeatLastBet:
		r.repeatLastBet()
	case deal:
		r.deal(d)
	case nextRound:
		r.nextRound()
	}
}

func (r *Record) resetRound() {
	r.Bets = Bets{}
	r.PlayerHand = nil
	r.BankerHand = nil
	r.Natural = false
	r.Winner = NoWinner
	r.PlayerPair = false
	r.BankerPair = false
	r.Result = ""
	r.NetRoundWinnings = 0
	r.Ledger = table.Ledger{}
	r.RoundID = ""
}

func (r *Record) updateSettings(s Settings, d *dealer.Dealer) {
	if err := s.Validate(); err != nil {
		r.Log.Add(table.CatError, "invalid settings: %v", err)
		return
	}
	// 已结算的注码不能再退
	if r.State == Betting && r.Bets.Total() > 0 {
		total := r.Bets.Total()
		r.Ledger.Refund(&r.Chips, total)
		r.Log.Add(table.CatInfo, "bets of %v returned", total)
	}
	r.Settings = s
	r.Deck = d.NewShoe(s.Decks)
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatGame, "settings updated, %d-deck shoe shuffled", s.Decks)
}

func (r *Record) placeBet(t BetType, amount float64) {
	slot := r.Bets.slot(t)
	switch {
	case slot == nil:
		r.Log.Add(table.CatError, "unknown bet type %q", t)
		return
	case amount <= 0:
		r.Log.Add(table.CatError, "bet must be positive")
		return
	case amount > r.Chips:
		r.Log.Add(table.CatError, "insufficient chips: %v requested, %v available", amount, r.Chips)
		return
	}
	r.Ledger.Wager(&r.Chips, amount)
	*slot += amount
	r.Log.Add(table.CatAction, "%s bet %v, total %v", t, amount, *slot)
}

func (r *Record) clearBets() {
	total := r.Bets.Total()
	if total == 0 {
		r.Log.Add(table.CatInfo, "no bets to clear")
		return
	}
	r.Ledger.Refund(&r.Chips, total)
	r.Bets = Bets{}
	r.Log.Add(table.CatAction, "bets of %v cleared", total)
}

func (r *Record) repeatLastBet() {
	last := r.LastBets.Total()
	if last == 0 {
		r.Log.Add(table.CatInfo, "no previous bets to repeat")
		return
	}
	current := r.Bets.Total()
	if last > r.Chips+current {
		r.Log.Add(table.CatError, "insufficient chips to repeat bets of %v", last)
		return
	}
	if current > 0 {
		r.Ledger.Refund(&r.Chips, current)
	}
	r.Ledger.Wager(&r.Chips, last)
	r.Bets = r.LastBets
	r.Log.Add(table.CatAction, "repeated bets of %v", last)
}

func (r *Record) deal(d *dealer.Dealer) {
	total := r.Bets.Total()
	if total == 0 {
		r.Log.Add(table.CatError, "no bets placed")
		return
	}
	if total < r.Settings.MinBet {
		r.Log.Add(table.CatError, "total bet %v is below the table minimum of %v", total, r.Settings.MinBet)
		return
	}
	for _, t := range BetTypes {
		if amt := r.Bets.Get(t); amt > r.Settings.MaxBet {
			r.Log.Add(table.CatError, "%s bet %v is above the table maximum of %v", t, amt, r.Settings.MaxBet)
			return
		}
	}
	if r.Deck.Remaining() < ReshuffleThreshold {
		r.Deck = d.NewShoe(r.Settings.Decks)
		r.Log.Add(table.CatInfo, "shoe reshuffled")
	}

	r.State = Dealing
	r.RoundID = uuid.NewString()
	r.LastBets = r.Bets
	r.play()
	r.settle()

	r.History = append(r.History, r.Winner)
	if n := len(r.History); n > HistorySize {
		r.History = slices.Clone(r.History[n-HistorySize:])
	}
	r.State = RoundOver
}

func (r *Record) nextRound() {
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatInfo, "place your bets")
}
