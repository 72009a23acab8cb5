package dealer

import (
	"math/rand"
	"sync"

	"BlockCasino/internal/game/cards"
)

// Dealer 只负责洗牌与随机数（无规则判断）
type Dealer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// NewShoe 生成 decks 副牌并洗牌
func (d *Dealer) NewShoe(decks int) cards.Deck {
	shoe := cards.NewOrderedShoe(decks)
	d.Shuffle(shoe)
	return shoe
}

// Shuffle 原地 Fisher–Yates
func (d *Dealer) Shuffle(deck cards.Deck) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(deck) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Intn 均匀取 [0,n)，轮盘开奖用
func (d *Dealer) Intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rnd.Intn(n)
}
