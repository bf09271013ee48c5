package blackjack

import (
	rand "math/rand/v2"
)

// Shoe holds the cards for one or more decks. Cards are drawn from the end
// of the slice, so after shuffling only the order matters.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe builds a shoe of the given number of decks and shuffles it with rng.
// The rng is kept for later rebuilds; the caller must not share it without
// synchronisation.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		cards: make([]Card, 0, decks*DeckSize),
		decks: decks,
		rng:   rng,
	}
	s.Rebuild()
	return s
}

// NewStackedShoe returns a shoe that will deal exactly the given cards in
// order (draws[0] first). Rebuild restores a full shuffled shoe using rng.
func NewStackedShoe(decks int, rng *rand.Rand, draws []Card) *Shoe {
	s := NewShoe(decks, rng)
	s.Stack(draws)
	return s
}

// Rebuild regenerates every card for the configured number of decks and
// shuffles them.
func (s *Shoe) Rebuild() {
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for _, suit := range Suits {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Stack replaces the contents of the shoe so that the given cards are drawn
// in order. A shoe never holds more than Total cards, so draws beyond that
// are dropped. It is intended for tests and scripted fixtures.
func (s *Shoe) Stack(draws []Card) {
	if total := s.Total(); len(draws) > total {
		draws = draws[:total]
	}
	s.cards = s.cards[:0]
	for i := len(draws) - 1; i >= 0; i-- {
		s.cards = append(s.cards, draws[i])
	}
}

// Draw removes and returns the top card. ok is false when the shoe is empty.
func (s *Shoe) Draw() (card Card, ok bool) {
	n := len(s.cards)
	if n == 0 {
		return Card{}, false
	}
	card = s.cards[n-1]
	s.cards = s.cards[:n-1]
	return card, true
}

// Peek returns the next card without removing it
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Total returns the number of cards in a full shoe
func (s *Shoe) Total() int {
	return s.decks * DeckSize
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// UsedFraction returns the share of the full shoe that has been dealt.
func (s *Shoe) UsedFraction() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return 1 - float64(len(s.cards))/float64(total)
}

// NeedsReshuffle reports whether the dealt share has reached penetration.
// A penetration of zero disables reshuffling.
func (s *Shoe) NeedsReshuffle(penetration float64) bool {
	if penetration == 0 {
		return false
	}
	return s.UsedFraction() >= penetration
}
