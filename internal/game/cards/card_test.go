package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderedShoe(t *testing.T) {
	shoe := NewOrderedShoe(6)
	assert.Len(t, shoe, 6*52)

	counts := make(map[Card]int)
	for _, c := range shoe {
		counts[c]++
	}
	assert.Len(t, counts, 52)
	for c, n := range counts {
		assert.Equal(t, 6, n, "card %s", c)
	}
}

func TestDrawPopsFromEnd(t *testing.T) {
	d := Deck{{Suit: Spade, Rank: Two}, {Suit: Heart, Rank: King}}

	c, ok := d.Draw()
	assert.True(t, ok)
	assert.Equal(t, Card{Suit: Heart, Rank: King}, c)
	assert.Equal(t, 1, d.Remaining())

	c, ok = d.Draw()
	assert.True(t, ok)
	assert.Equal(t, Card{Suit: Spade, Rank: Two}, c)

	_, ok = d.Draw()
	assert.False(t, ok)
}

func TestCardValues(t *testing.T) {
	tests := []struct {
		rank      Rank
		blackjack int
		baccarat  int
	}{
		{Ace, 11, 1}, {Two, 2, 2}, {Five, 5, 5}, {Nine, 9, 9},
		{Ten, 10, 0}, {Jack, 10, 0}, {Queen, 10, 0}, {King, 10, 0},
	}
	for _, tt := range tests {
		c := Card{Suit: Club, Rank: tt.rank}
		assert.Equal(t, tt.blackjack, c.BlackjackValue(), "blackjack %s", tt.rank)
		assert.Equal(t, tt.baccarat, c.BaccaratValue(), "baccarat %s", tt.rank)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Suit: Spade, Rank: Ace}.String())
	assert.Equal(t, "10♦", Card{Suit: Diamond, Rank: Ten}.String())
	assert.True(t, Hidden.IsHidden())
	assert.Equal(t, "8♠ 8♦", Format([]Card{{Spade, Eight}, {Diamond, Eight}}))
}
