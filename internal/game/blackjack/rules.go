package blackjack

import (
	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

// HandValue 先把 A 计 11，超过 21 时逐张降为 1；soft 表示仍有 A 计 11
func HandValue(cs []cards.Card) (total int, soft bool) {
	aces := 0
	for _, c := range cs {
		if c.IsHidden() {
			continue
		}
		total += c.BlackjackValue()
		if c.Rank == cards.Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

func handTotal(cs []cards.Card) int {
	t, _ := HandValue(cs)
	return t
}

// IsNatural 首两张 21 点
func IsNatural(cs []cards.Card) bool {
	return len(cs) == 2 && handTotal(cs) == 21
}

// DealerShouldHit 小于 17 必须要牌；软 17 视 hitSoft17
func DealerShouldHit(cs []cards.Card, hitSoft17 bool) bool {
	t, soft := HandValue(cs)
	return t < 17 || (t == 17 && soft && hitSoft17)
}

// CanSplit 两张且点数相同（10/J/Q/K 视为同点）
func CanSplit(h Hand) bool {
	return len(h.Cards) == 2 && h.Cards[0].BlackjackValue() == h.Cards[1].BlackjackValue()
}

// playDealer 牌靴耗尽时停止要牌
func (r *Record) playDealer() {
	for DealerShouldHit(r.Dealer, r.Settings.HitSoft17) {
		c, ok := r.Deck.Draw()
		if !ok {
			r.Log.Add(table.CatError, "shoe exhausted, dealer stands on %d", handTotal(r.Dealer))
			return
		}
		r.Dealer = append(r.Dealer, c)
	}
	t, soft := HandValue(r.Dealer)
	switch {
	case t > 21:
		r.Log.Add(table.CatGame, "dealer busts with %d (%s)", t, cards.Format(r.Dealer))
	case soft:
		r.Log.Add(table.CatGame, "dealer stands on soft %d (%s)", t, cards.Format(r.Dealer))
	default:
		r.Log.Add(table.CatGame, "dealer stands on %d (%s)", t, cards.Format(r.Dealer))
	}
}

// settle 逐手比较；已爆牌的手已按输处理，跳过
func (r *Record) settle() {
	dealerTotal := handTotal(r.Dealer)
	dealerBust := dealerTotal > 21
	for i := range r.Hands {
		h := &r.Hands[i]
		if h.Result != Pending {
			continue
		}
		p := handTotal(h.Cards)
		switch {
		case dealerBust || p > dealerTotal:
			h.Result = Win
			r.Ledger.Credit(&r.Chips, 2*h.Bet)
			r.Log.Add(table.CatPayout, "hand %d wins %v with %d", i+1, h.Bet, p)
		case dealerTotal > p:
			h.Result = Lose
			r.Log.Add(table.CatPayout, "hand %d loses %v with %d against %d", i+1, h.Bet, p, dealerTotal)
		default:
			h.Result = Push
			r.Ledger.Credit(&r.Chips, h.Bet)
			r.Log.Add(table.CatPayout, "hand %d pushes on %d", i+1, p)
		}
	}
	r.finishRound()
}

// finishRound 记录净输赢并进入 RoundOver
func (r *Record) finishRound() {
	r.State = RoundOver
	r.NetRoundWinnings = r.Ledger.Net()
	r.Result = summarize(r.Hands, r.NetRoundWinnings)
	r.Log.Add(table.CatPayout, "round %s: wagered %v, returned %v, net %+v",
		r.Result, r.Ledger.Wagered, r.Ledger.Credited, r.NetRoundWinnings)
}

func summarize(hands []Hand, net float64) string {
	if len(hands) == 1 {
		if hands[0].Result == Bust {
			return string(Lose)
		}
		return string(hands[0].Result)
	}
	switch {
	case net > 0:
		return string(Win)
	case net < 0:
		return string(Lose)
	}
	return string(Push)
}
