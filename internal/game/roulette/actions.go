package roulette

import (
	"fmt"
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
		bet    Bet
		amount float64
	}
	clearBets        struct{}
	repeatLastBet    struct{}
	spin             struct{}
	calculatePayouts struct{}
	nextRound        struct{}
)

func (updateSettings) name() string   { return "updateSettings" }
func (placeBet) name() string         { return "placeBet" }
func (clearBets) name() string        { return "clearBets" }
func (repeatLastBet) name() string    { return "repeatLastBet" }
func (spin) name() string             { return "spin" }
func (calculatePayouts) name() string { return "calculatePayouts" }
func (nextRound) name() string        { return "nextRound" }

// spin 与 calculatePayouts 之间留给前端播放转盘动画
var allowed = map[string][]State{
	"updateSettings":   {Betting, Payout},
	"placeBet":         {Betting},
	"clearBets":        {Betting},
	"repeatLastBet":    {Betting},
	"spin":             {Betting},
	"calculatePayouts": {Spinning},
	"nextRound":        {Payout},
}

func (r *Record) apply(a action, d *dealer.Dealer) {
	r.Log = nil
	if !slices.Contains(allowed[a.name()], r.State) {
		r.Log.Add(table.CatState, "%s is not available while %s", a.name(), r.State)
		return
	}
	switch a := a.(type) {
	case updateSettings:
		r.updateSettings(a.settings)
	case placeBet:
		r.placeBet(a.bet, a.amount)
	case clearBets:
		r.clearBets()
	case repeatLastBet:
		r.repeatLastBet()
	case spin:
		r.spin(d)
	case calculatePayouts:
		r.calculatePayouts()
	case nextRound:
		r.nextRound()
	}
}

func (r *Record) resetRound() {
	r.Bets = nil
	r.WinningIndex = -1
	r.Winning = nil
	r.Result = ""
	r.NetRoundWinnings = 0
	r.Ledger = table.Ledger{}
	r.RoundID = ""
}

func (r *Record) updateSettings(s Settings) {
	if err := s.Validate(); err != nil {
		r.Log.Add(table.CatError, "invalid settings: %v", err)
		return
	}
	if total := totalOf(r.Bets); r.State == Betting && total > 0 {
		r.Ledger.Refund(&r.Chips, total)
		r.Log.Add(table.CatInfo, "bets of %v returned", total)
	}
	r.Settings = s
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatGame, "settings updated")
}

func (r *Record) placeBet(b Bet, amount float64) {
	b = b.normalize()
	if err := b.Validate(); err != nil {
		r.Log.Add(table.CatError, "%v", err)
		return
	}
	switch {
	case amount <= 0:
		r.Log.Add(table.CatError, "bet must be positive")
		return
	case amount > r.Chips:
		r.Log.Add(table.CatError, "insufficient chips: %v requested, %v available", amount, r.Chips)
		return
	}
	r.Ledger.Wager(&r.Chips, amount)

	key := b.Key()
	i := slices.IndexFunc(r.Bets, func(w Wager) bool { return w.Bet.Key() == key })
	if i < 0 {
		r.Bets = append(r.Bets, Wager{Bet: b})
		i = len(r.Bets) - 1
	}
	r.Bets[i].Amount += amount
	r.Log.Add(table.CatAction, "%s bet %v, total %v", key, amount, r.Bets[i].Amount)
}

func (r *Record) clearBets() {
	total := totalOf(r.Bets)
	if total == 0 {
		r.Log.Add(table.CatInfo, "no bets to clear")
		return
	}
	r.Ledger.Refund(&r.Chips, total)
	r.Bets = nil
	r.Log.Add(table.CatAction, "bets of %v cleared", total)
}

func (r *Record) repeatLastBet() {
	last := totalOf(r.LastBets)
	if last == 0 {
		r.Log.Add(table.CatInfo, "no previous bets to repeat")
		return
	}
	current := totalOf(r.Bets)
	if last > r.Chips+current {
		r.Log.Add(table.CatError, "insufficient chips to repeat bets of %v", last)
		return
	}
	if current > 0 {
		r.Ledger.Refund(&r.Chips, current)
	}
	r.Ledger.Wager(&r.Chips, last)
	r.Bets = cloneWagers(r.LastBets)
	r.Log.Add(table.CatAction, "repeated %d bets totalling %v", len(r.Bets), last)
}

func (r *Record) spin(d *dealer.Dealer) {
	total := totalOf(r.Bets)
	if total == 0 {
		r.Log.Add(table.CatError, "no bets placed")
		return
	}
	if total < r.Settings.MinBet {
		r.Log.Add(table.CatError, "total bet %v is below the table minimum of %v", total, r.Settings.MinBet)
		return
	}
	for _, w := range r.Bets {
		if w.Amount > r.Settings.MaxBet {
			r.Log.Add(table.CatError, "%s bet %v is above the table maximum of %v", w.Bet.Key(), w.Amount, r.Settings.MaxBet)
			return
		}
	}
	r.land(d.Intn(len(Wheel)))
}

// land 记录落点并进入 Spinning，结算留给 calculatePayouts
func (r *Record) land(idx int) {
	p := Wheel[idx]
	r.WinningIndex = idx
	r.Winning = &p
	r.RoundID = uuid.NewString()
	r.LastBets = cloneWagers(r.Bets)
	r.History = append(r.History, p)
	if n := len(r.History); n > HistorySize {
		r.History = slices.Clone(r.History[n-HistorySize:])
	}
	r.State = Spinning
	r.Log.Add(table.CatGame, "ball lands on %s %s", p.Label, p.Color)
}

func (r *Record) calculatePayouts() {
	if r.Winning == nil {
		r.Log.Add(table.CatError, "no winning pocket recorded")
		return
	}
	p := *r.Winning
	for _, w := range r.Bets {
		if !w.Bet.Wins(p) {
			continue
		}
		ret := w.Amount * (Odds[w.Bet.Kind] + 1)
		r.Ledger.Credit(&r.Chips, ret)
		r.Log.Add(table.CatPayout, "%s wins, returns %v", w.Bet.Key(), ret)
	}
	r.NetRoundWinnings = r.Ledger.Net()
	r.Result = fmt.Sprintf("%s %s", p.Label, p.Color)
	r.Log.Add(table.CatPayout, "%s: wagered %v, returned %v, net %+v",
		r.Result, r.Ledger.Wagered, r.Ledger.Credited, r.NetRoundWinnings)
	r.State = Payout
}

func (r *Record) nextRound() {
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatInfo, "place your bets")
}

func cloneWagers(ws []Wager) []Wager {
	out := make([]Wager, len(ws))
	for i, w := range ws {
		w.Bet.Numbers = slices.Clone(w.Bet.Numbers)
		out[i] = w
	}
	return out
}
