package cards

import "strings"

type Suit string

const (
	Spade   Suit = "spade"
	Club    Suit = "club"
	Heart   Suit = "heart"
	Diamond Suit = "diamond"
)

// Suits 按建牌顺序排列
var Suits = []Suit{Spade, Club, Heart, Diamond}

type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card 不可变的牌值
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Hidden 暗牌占位，返回给前端时替换庄家底牌
var Hidden = Card{Suit: "hidden", Rank: "?"}

func (c Card) IsHidden() bool {
	return c == Hidden
}

func (c Card) String() string {
	return fmtCard(c)
}

func fmtCard(c Card) string {
	suits := map[Suit]string{
		Spade:   "♠",
		Club:    "♣",
		Heart:   "♥",
		Diamond: "♦",
	}
	suitStr, ok := suits[c.Suit]
	if !ok {
		suitStr = "?"
	}
	return string(c.Rank) + suitStr
}

// pips 点数牌的面值，A 与人头牌单独处理
var pips = map[Rank]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8, Nine: 9, Ten: 10,
}

// BlackjackValue A 计 11，人头牌计 10
func (c Card) BlackjackValue() int {
	switch c.Rank {
	case Ace:
		return 11
	case Jack, Queen, King:
		return 10
	}
	return pips[c.Rank]
}

// BaccaratValue 点数对 10 取模：10/J/Q/K 为 0，A 为 1
func (c Card) BaccaratValue() int {
	switch c.Rank {
	case Ace:
		return 1
	case Jack, Queen, King:
		return 0
	}
	return pips[c.Rank] % 10
}

// Deck 牌堆，从末尾抽牌
type Deck []Card

// NewOrderedShoe 按顺序生成 decks 副牌（未洗牌）
func NewOrderedShoe(decks int) Deck {
	if decks < 1 {
		decks = 1
	}
	shoe := make(Deck, 0, decks*52)
	for n := 0; n < decks; n++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				shoe = append(shoe, Card{Suit: s, Rank: r})
			}
		}
	}
	return shoe
}

// Draw 弹出末尾一张；牌堆为空时返回 false
func (d *Deck) Draw() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

func (d Deck) Remaining() int {
	return len(d)
}

// Format 以空格连接，便于日志输出
func Format(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
