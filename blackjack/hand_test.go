package blackjack

import (
	"testing"

	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
		value int
		soft  bool
	}{
		{"empty", "", 0, false},
		{"hard 15", "8h 7d", 15, false},
		{"soft 17", "As 6h", 17, true},
		{"ace reduced", "As 6h 9c", 16, false},
		{"two aces", "As Ah", 12, true},
		{"two aces and nine", "As Ah 9c", 21, true},
		{"natural", "As Kd", 21, true},
		{"bust", "Kh Qd 5c", 25, false},
		{"four aces", "As Ah Ad Ac", 14, true},
		{"hard 21", "7s 7h 7d", 21, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, soft := Evaluate(MustParseCards(tt.cards))
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.soft, soft)
		})
	}
}

// Every sequence stays within [count, count*11]; a soft total never busts.
func TestEvaluateBounds(t *testing.T) {
	t.Parallel()

	rng := randutil.New(99)
	shoe := NewShoe(8, rng)
	for range 2000 {
		n := 1 + rng.IntN(8)
		if shoe.Remaining() < n {
			shoe.Rebuild()
		}
		cards := make([]Card, 0, n)
		aces := 0
		for range n {
			c, _ := shoe.Draw()
			if c.IsAce() {
				aces++
			}
			cards = append(cards, c)
		}

		value, soft := Evaluate(cards)
		require.GreaterOrEqual(t, value, n)
		require.LessOrEqual(t, value, n*11)
		if soft {
			require.LessOrEqual(t, value, BlackjackValue, "soft total %v", cards)
			require.Positive(t, aces)
		}
		if value > BlackjackValue {
			require.False(t, soft)
		}
	}
}

func TestHandStatusTransitions(t *testing.T) {
	t.Parallel()

	h := NewHand(10)
	h.AddCard(NewCard(Hearts, Ace))
	assert.Equal(t, StatusActive, h.Status())
	h.AddCard(NewCard(Spades, King))
	assert.Equal(t, StatusBlackjack, h.Status())
	assert.True(t, h.IsBlackjack())

	h = NewHand(10)
	for _, c := range MustParseCards("Th 6c") {
		h.AddCard(c)
	}
	assert.Equal(t, StatusActive, h.Status())
	h.AddCard(NewCard(Diamonds, Nine))
	assert.Equal(t, StatusBust, h.Status())
	assert.True(t, h.IsBust())
}

func TestHandThreeCardTwentyOneIsNotNatural(t *testing.T) {
	t.Parallel()

	h := NewHand(10)
	for _, c := range MustParseCards("7h 7c 7d") {
		h.AddCard(c)
	}
	assert.Equal(t, StatusActive, h.Status())
	assert.False(t, h.IsBlackjack())
	assert.Equal(t, 21, h.Value())
}

func TestSplitHandTwentyOneIsNotNatural(t *testing.T) {
	t.Parallel()

	h := NewSplitHand(NewCard(Hearts, Ace), 10)
	h.AddCard(NewCard(Clubs, King))
	assert.Equal(t, StatusActive, h.Status())
	assert.False(t, h.IsBlackjack())
	assert.True(t, h.FromSplit())
}

func TestHandSplitHelpers(t *testing.T) {
	t.Parallel()

	h := NewHand(10)
	for _, c := range MustParseCards("8h 8d") {
		h.AddCard(c)
	}
	require.True(t, h.CanSplit())
	assert.False(t, h.IsPairOfAces())

	card, ok := h.TakeSplitCard()
	require.True(t, ok)
	assert.Equal(t, NewCard(Diamonds, Eight), card)
	assert.Equal(t, 1, h.Len())
	assert.True(t, h.FromSplit())

	_, ok = h.TakeSplitCard()
	assert.False(t, ok)

	// Ten and king are both worth ten but are not a pair
	h = NewHand(10)
	for _, c := range MustParseCards("Th Kd") {
		h.AddCard(c)
	}
	assert.False(t, h.CanSplit())
}

func TestHandCloneIsIndependent(t *testing.T) {
	t.Parallel()

	h := NewHand(10)
	h.AddCard(NewCard(Hearts, Five))
	clone := h.Clone()
	h.AddCard(NewCard(Hearts, Six))
	h.DoubleBet()

	assert.Equal(t, 1, clone.Len())
	assert.Equal(t, 10, clone.Bet())
	assert.Equal(t, 20, h.Bet())
}

func TestDealerHandHoleCard(t *testing.T) {
	t.Parallel()

	d := NewDealerHand()
	d.AddCard(NewCard(Spades, Six))
	d.AddCard(NewCard(Hearts, Ten))

	assert.Equal(t, 6, d.VisibleValue())
	assert.Equal(t, 16, d.Value())
	assert.Equal(t, "6s ??", d.String())

	d.RevealHole()
	assert.Equal(t, 16, d.VisibleValue())
	assert.Equal(t, "6s Th", d.String())

	up, ok := d.UpCard()
	require.True(t, ok)
	assert.Equal(t, Six, up.Rank)

	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.HoleRevealed())
	_, ok = d.UpCard()
	assert.False(t, ok)
}

func TestDealerBlackjack(t *testing.T) {
	t.Parallel()

	d := NewDealerHand()
	d.AddCard(NewCard(Spades, Ace))
	d.AddCard(NewCard(Clubs, Ten))
	assert.True(t, d.IsBlackjack())
	assert.True(t, d.IsSoft())
	assert.False(t, d.IsBust())
}
