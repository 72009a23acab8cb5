package baccarat

import (
	"fmt"

	"BlockCasino/internal/game/cards"
	"BlockCasino/internal/game/table"
)

// Score 各牌点数之和取个位
func Score(cs []cards.Card) int {
	total := 0
	for _, c := range cs {
		total += c.BaccaratValue()
	}
	return total % 10
}

// IsNatural 首两张 8 或 9 点
func IsNatural(score int) bool {
	return score >= 8
}

func PlayerDraws(score int) bool {
	return score <= 5
}

// BankerDraws 补牌表；playerDrew=false 时 p3 无意义
func BankerDraws(banker int, playerDrew bool, p3 int) bool {
	if !playerDrew {
		return banker <= 5
	}
	switch banker {
	case 0, 1, 2:
		return true
	case 3:
		return p3 != 8
	case 4:
		return p3 >= 2 && p3 <= 7
	case 5:
		return p3 >= 4 && p3 <= 7
	case 6:
		return p3 == 6 || p3 == 7
	}
	return false
}

// IsPair 首两张同点数牌
func IsPair(cs []cards.Card) bool {
	return len(cs) >= 2 && cs[0].Rank == cs[1].Rank
}

func decide(player, banker int) Winner {
	switch {
	case player > banker:
		return WinnerPlayer
	case banker > player:
		return WinnerBanker
	}
	return WinnerTie
}

// play 按固定规则完成一局发牌与补牌
func (r *Record) play() {
	var p, b [2]cards.Card
	for i := 0; i < 2; i++ {
		p[i], _ = r.Deck.Draw()
		b[i], _ = r.Deck.Draw()
	}
	r.PlayerHand = []cards.Card{p[0], p[1]}
	r.BankerHand = []cards.Card{b[0], b[1]}
	r.PlayerPair = IsPair(r.PlayerHand)
	r.BankerPair = IsPair(r.BankerHand)

	ps, bs := Score(r.PlayerHand), Score(r.BankerHand)
	r.Log.Add(table.CatGame, "player %s (%d), banker %s (%d)",
		cards.Format(r.PlayerHand), ps, cards.Format(r.BankerHand), bs)

	if IsNatural(ps) || IsNatural(bs) {
		r.Natural = true
		r.Winner = decide(ps, bs)
		r.Log.Add(table.CatGame, "natural, no third cards")
		return
	}

	playerDrew, p3 := false, 0
	if PlayerDraws(ps) {
		c, ok := r.Deck.Draw()
		if !ok {
			r.Log.Add(table.CatError, "shoe exhausted")
		} else {
			r.PlayerHand = append(r.PlayerHand, c)
			playerDrew, p3 = true, c.BaccaratValue()
			r.Log.Add(table.CatGame, "player draws %s", c)
		}
	}
	if BankerDraws(bs, playerDrew, p3) {
		c, ok := r.Deck.Draw()
		if !ok {
			r.Log.Add(table.CatError, "shoe exhausted")
		} else {
			r.BankerHand = append(r.BankerHand, c)
			r.Log.Add(table.CatGame, "banker draws %s", c)
		}
	}
	r.Winner = decide(Score(r.PlayerHand), Score(r.BankerHand))
}

// settle 和局时闲/庄主注退回；庄赢按佣金扣减
func (r *Record) settle() {
	s := r.Settings
	bets := r.Bets
	credit := func(t BetType, amount float64) {
		r.Ledger.Credit(&r.Chips, amount)
		r.Log.Add(table.CatPayout, "%s bet returns %v", t, amount)
	}

	switch r.Winner {
	case WinnerTie:
		if bets.Tie > 0 {
			credit(BetTie, bets.Tie*(s.TieOdds+1))
		}
		if bets.Player > 0 {
			credit(BetPlayer, bets.Player)
		}
		if bets.Banker > 0 {
			credit(BetBanker, bets.Banker)
		}
	case WinnerPlayer:
		if bets.Player > 0 {
			credit(BetPlayer, 2*bets.Player)
		}
	case WinnerBanker:
		if bets.Banker > 0 {
			credit(BetBanker, bets.Banker+bets.Banker*(1-s.Commission))
		}
	}
	if r.PlayerPair && bets.PlayerPair > 0 {
		credit(BetPlayerPair, bets.PlayerPair*(s.PairOdds+1))
	}
	if r.BankerPair && bets.BankerPair > 0 {
		credit(BetBankerPair, bets.BankerPair*(s.PairOdds+1))
	}

	r.NetRoundWinnings = r.Ledger.Net()
	r.Result = describe(r.Winner, Score(r.PlayerHand), Score(r.BankerHand))
	r.Log.Add(table.CatPayout, "%s: wagered %v, returned %v, net %+v",
		r.Result, r.Ledger.Wagered, r.Ledger.Credited, r.NetRoundWinnings)
}

func describe(w Winner, player, banker int) string {
	switch w {
	case WinnerPlayer:
		return fmt.Sprintf("player wins %d to %d", player, banker)
	case WinnerBanker:
		return fmt.Sprintf("banker wins %d to %d", banker, player)
	}
	return fmt.Sprintf("tie at %d", player)
}
