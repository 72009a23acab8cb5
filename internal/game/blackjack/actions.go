package blackjack

import (
	"slices"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/table"

	"github.com/google/uuid"
)

// action 封闭的动作集合
type action interface {
	name() string
}

type (
	updateSettings  struct{ settings Settings }
	placeBet        struct{ amount float64 }
	clearBet        struct{}
	repeatBet       struct{}
	maxBet          struct{}
	deal            struct{}
	decideInsurance struct{ accept bool }
	decideEvenMoney struct{ accept bool }
	hit             struct{}
	stand           struct{}
	double          struct{}
	split           struct{}
	surrender       struct{}
	nextRound       struct{}
)

func (updateSettings) name() string  { return "updateSettings" }
func (placeBet) name() string        { return "placeBet" }
func (clearBet) name() string        { return "clearBet" }
func (repeatBet) name() string       { return "repeatBet" }
func (maxBet) name() string          { return "maxBet" }
func (deal) name() string            { return "deal" }
func (decideInsurance) name() string { return "decideInsurance" }
func (decideEvenMoney) name() string { return "decideEvenMoney" }
func (hit) name() string             { return "hit" }
func (stand) name() string           { return "stand" }
func (double) name() string          { return "double" }
func (split) name() string           { return "split" }
func (surrender) name() string       { return "surrender" }
func (nextRound) name() string       { return "nextRound" }

// allowed 每个动作可执行的状态；其余状态一律记录后忽略
var allowed = map[string][]State{
	"updateSettings":  {Betting, RoundOver},
	"placeBet":        {Betting},
	"clearBet":        {Betting},
	"repeatBet":       {Betting},
	"maxBet":          {Betting},
	"deal":            {Betting},
	"decideInsurance": {InsuranceBetting},
	"decideEvenMoney": {EvenMoneyChoice},
	"hit":             {PlayerTurn},
	"stand":           {PlayerTurn},
	"double":          {PlayerTurn},
	"split":           {PlayerTurn},
	"surrender":       {PlayerTurn},
	"nextRound":       {RoundOver},
}

// apply 唯一的状态转移入口
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
		r.placeBet(a.amount)
	case clearBet:
		r.clearBet()
	case repeatBet:
		r.repeatBet()
	case maxBet:
		r.maxBet()
	case deal:
		r.deal(d)
	case decideInsurance:
		r.decideInsurance(a.accept)
	case decideEvenMoney:
		r.decideEvenMoney(a.accept)
	case hit:
		r.hit()
	case stand:
		r.stand()
	case double:
		r.double()
	case split:
		r.split()
	case surrender:
		r.surrender()
	case nextRound:
		r.nextRound()
	}
}

func (r *Record) resetRound() {
	r.Hands = nil
	r.Dealer = nil
	r.ActiveHand = 0
	r.InsuranceBet = 0
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
	if r.Bet > 0 {
		r.Ledger.Refund(&r.Chips, r.Bet)
		r.Log.Add(table.CatInfo, "bet of %v returned", r.Bet)
		r.Bet = 0
	}
	r.Settings = s
	r.Deck = d.NewShoe(s.Decks)
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatGame, "settings updated, %d-deck shoe shuffled", s.Decks)
}

func (r *Record) placeBet(amount float64) {
	switch {
	case amount <= 0:
		r.Log.Add(table.CatError, "bet must be positive")
		return
	case amount > r.Chips:
		r.Log.Add(table.CatError, "insufficient chips: %v requested, %v available", amount, r.Chips)
		return
	}
	r.Ledger.Wager(&r.Chips, amount)
	r.Bet += amount
	r.Log.Add(table.CatAction, "bet %v, total %v", amount, r.Bet)
}

func (r *Record) clearBet() {
	if r.Bet == 0 {
		r.Log.Add(table.CatInfo, "no bet to clear")
		return
	}
	r.Ledger.Refund(&r.Chips, r.Bet)
	r.Log.Add(table.CatAction, "bet of %v cleared", r.Bet)
	r.Bet = 0
}

func (r *Record) repeatBet() {
	if r.LastBet == 0 {
		r.Log.Add(table.CatInfo, "no previous bet to repeat")
		return
	}
	if r.LastBet > r.Chips+r.Bet {
		r.Log.Add(table.CatError, "insufficient chips to repeat bet of %v", r.LastBet)
		return
	}
	r.replaceBet(r.LastBet)
	r.Log.Add(table.CatAction, "repeated bet of %v", r.Bet)
}

func (r *Record) maxBet() {
	target := min(r.Settings.MaxBet, r.Chips+r.Bet)
	if target < r.Settings.MinBet {
		r.Log.Add(table.CatError, "insufficient chips for the table minimum of %v", r.Settings.MinBet)
		return
	}
	r.replaceBet(target)
	r.Log.Add(table.CatAction, "max bet %v", r.Bet)
}

func (r *Record) replaceBet(amount float64) {
	if r.Bet > 0 {
		r.Ledger.Refund(&r.Chips, r.Bet)
	}
	r.Ledger.Wager(&r.Chips, amount)
	r.Bet = amount
}

func (r *Record) draw() (cards.Card, bool) {
	return r.Deck.Draw()
}

func (r *Record) deal(d *dealer.Dealer) {
	switch {
	case r.Bet < r.Settings.MinBet:
		r.Log.Add(table.CatError, "bet %v is below the table minimum of %v", r.Bet, r.Settings.MinBet)
		return
	case r.Bet > r.Settings.MaxBet:
		r.Log.Add(table.CatError, "bet %v is above the table maximum of %v", r.Bet, r.Settings.MaxBet)
		return
	}
	if r.Deck.Remaining() < ReshuffleThreshold {
		r.Deck = d.NewShoe(r.Settings.Decks)
		r.Log.Add(table.CatInfo, "shoe reshuffled")
	}

	var p, dl [2]cards.Card
	for i := 0; i < 2; i++ {
		p[i], _ = r.draw()
		dl[i], _ = r.draw()
	}

	wagered := r.Ledger
	r.resetRound()
	r.Ledger = wagered
	r.RoundID = uuid.NewString()
	r.Hands = []Hand{{Cards: []cards.Card{p[0], p[1]}, Bet: r.Bet}}
	r.Dealer = []cards.Card{dl[0], dl[1]}
	r.LastBet = r.Bet
	r.Bet = 0
	r.Log.Add(table.CatAction, "dealt %s against %s", cards.Format(r.Hands[0].Cards), r.Dealer[0])

	r.resolveOpening()
}

// resolveOpening 开局天牌、保险与平赔的判定
func (r *Record) resolveOpening() {
	h := &r.Hands[0]
	playerNatural := IsNatural(h.Cards)
	dealerNatural := IsNatural(r.Dealer)
	aceUp := r.Dealer[0].Rank == cards.Ace && r.Settings.InsuranceEnabled

	switch {
	case playerNatural && aceUp:
		r.State = EvenMoneyChoice
		r.Log.Add(table.CatDecision, "blackjack against an ace: take even money?")
	case playerNatural && dealerNatural:
		h.Result = Push
		r.Ledger.Credit(&r.Chips, h.Bet)
		r.Log.Add(table.CatGame, "both have blackjack")
		r.finishRound()
	case playerNatural:
		h.Result = Natural
		r.Ledger.Credit(&r.Chips, h.Bet+h.Bet*r.Settings.BlackjackPayout)
		r.Log.Add(table.CatGame, "blackjack!")
		r.finishRound()
	case aceUp:
		r.State = InsuranceBetting
		r.Log.Add(table.CatDecision, "dealer shows an ace: insurance?")
	case dealerNatural:
		h.Result = Lose
		r.Log.Add(table.CatGame, "dealer has blackjack")
		r.finishRound()
	default:
		r.State = PlayerTurn
	}
}

func (r *Record) decideInsurance(accept bool) {
	h := &r.Hands[0]
	if accept {
		cost := h.Bet / 2
		if cost > r.Chips {
			r.Log.Add(table.CatError, "insufficient chips for insurance of %v", cost)
			return
		}
		r.Ledger.Wager(&r.Chips, cost)
		r.InsuranceBet = cost
		r.Log.Add(table.CatDecision, "insurance taken for %v", cost)
	} else {
		r.Log.Add(table.CatDecision, "insurance declined")
	}

	if IsNatural(r.Dealer) {
		if r.InsuranceBet > 0 {
			r.Ledger.Credit(&r.Chips, 3*r.InsuranceBet)
			r.Log.Add(table.CatPayout, "insurance pays %v", 2*r.InsuranceBet)
		}
		h.Result = Lose
		r.Log.Add(table.CatGame, "dealer has blackjack")
		r.finishRound()
		return
	}
	if r.InsuranceBet > 0 {
		r.Log.Add(table.CatPayout, "dealer has no blackjack, insurance lost")
	}
	r.State = PlayerTurn
}

func (r *Record) decideEvenMoney(accept bool) {
	h := &r.Hands[0]
	switch {
	case accept:
		h.Result = EvenMoney
		r.Ledger.Credit(&r.Chips, 2*h.Bet)
		r.Log.Add(table.CatDecision, "even money taken")
	case IsNatural(r.Dealer):
		h.Result = Push
		r.Ledger.Credit(&r.Chips, h.Bet)
		r.Log.Add(table.CatDecision, "even money declined, dealer also has blackjack")
	default:
		h.Result = Natural
		r.Ledger.Credit(&r.Chips, h.Bet+h.Bet*r.Settings.BlackjackPayout)
		r.Log.Add(table.CatDecision, "even money declined, blackjack pays")
	}
	r.finishRound()
}

func (r *Record) active() *Hand {
	return &r.Hands[r.ActiveHand]
}

func (r *Record) hit() {
	h := r.active()
	c, ok := r.draw()
	if !ok {
		r.Log.Add(table.CatError, "shoe exhausted")
		return
	}
	h.Cards = append(h.Cards, c)
	total := handTotal(h.Cards)
	r.Log.Add(table.CatAction, "hand %d hits %s, total %d", r.ActiveHand+1, c, total)
	if total > 21 {
		h.Result = Bust
		r.Log.Add(table.CatGame, "hand %d busts", r.ActiveHand+1)
		r.advance()
	}
}

func (r *Record) stand() {
	r.Log.Add(table.CatAction, "hand %d stands on %d", r.ActiveHand+1, handTotal(r.active().Cards))
	r.advance()
}

func (r *Record) double() {
	h := r.active()
	switch {
	case len(h.Cards) != 2:
		r.Log.Add(table.CatError, "double is only allowed on two cards")
		return
	case h.Bet > r.Chips:
		r.Log.Add(table.CatError, "insufficient chips to double %v", h.Bet)
		return
	case r.Deck.Remaining() == 0:
		r.Log.Add(table.CatError, "shoe exhausted")
		return
	}
	r.Ledger.Wager(&r.Chips, h.Bet)
	h.Bet *= 2
	h.Doubled = true
	c, _ := r.draw()
	h.Cards = append(h.Cards, c)
	total := handTotal(h.Cards)
	r.Log.Add(table.CatAction, "hand %d doubles to %v, draws %s, total %d", r.ActiveHand+1, h.Bet, c, total)
	if total > 21 {
		h.Result = Bust
		r.Log.Add(table.CatGame, "hand %d busts", r.ActiveHand+1)
	}
	r.advance()
}

func (r *Record) split() {
	h := r.active()
	switch {
	case !CanSplit(*h):
		r.Log.Add(table.CatError, "split needs two cards of equal value")
		return
	case len(r.Hands) >= r.Settings.MaxHands:
		r.Log.Add(table.CatError, "no more than %d hands", r.Settings.MaxHands)
		return
	case h.Bet > r.Chips:
		r.Log.Add(table.CatError, "insufficient chips to split %v", h.Bet)
		return
	case r.Deck.Remaining() < 2:
		r.Log.Add(table.CatError, "shoe exhausted")
		return
	}
	r.Ledger.Wager(&r.Chips, h.Bet)
	c1, _ := r.draw()
	c2, _ := r.draw()
	first := Hand{Cards: []cards.Card{h.Cards[0], c1}, Bet: h.Bet}
	second := Hand{Cards: []cards.Card{h.Cards[1], c2}, Bet: h.Bet}
	i := r.ActiveHand
	r.Hands = slices.Replace(r.Hands, i, i+1, first, second)
	r.Log.Add(table.CatAction, "split into %s and %s", cards.Format(first.Cards), cards.Format(second.Cards))
}

func (r *Record) surrender() {
	switch {
	case !r.Settings.SurrenderAllowed:
		r.Log.Add(table.CatError, "surrender is not offered at this table")
		return
	case len(r.Hands) != 1 || len(r.Hands[0].Cards) != 2:
		r.Log.Add(table.CatError, "surrender is only allowed as the first decision")
		return
	}
	h := &r.Hands[0]
	h.Result = Surrendered
	r.Ledger.Credit(&r.Chips, h.Bet/2)
	r.Log.Add(table.CatAction, "surrendered, %v returned", h.Bet/2)
	r.finishRound()
}

// advance 切到下一手；没有剩余手牌时庄家行动并结算
func (r *Record) advance() {
	if r.ActiveHand+1 < len(r.Hands) {
		r.ActiveHand++
		r.Log.Add(table.CatInfo, "playing hand %d", r.ActiveHand+1)
		return
	}
	r.State = DealerTurn
	r.playDealer()
	r.settle()
}

func (r *Record) nextRound() {
	r.resetRound()
	r.State = Betting
	r.Log.Add(table.CatInfo, "place your bets")
}
