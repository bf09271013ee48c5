package blackjack

import (
	"strings"
)

// BlackjackValue is the target total.
const BlackjackValue = 21

// Evaluate returns the best total for cards and whether that total is soft
// (at least one ace still counted as eleven). Aces start at eleven and are
// reduced to one, one at a time, while the total is over 21.
func Evaluate(cards []Card) (value int, soft bool) {
	softAces := 0
	for _, c := range cards {
		if c.IsAce() {
			softAces++
		}
		value += c.Value()
	}

	for value > BlackjackValue && softAces > 0 {
		value -= 10
		softAces--
	}

	return value, softAces > 0 && value <= BlackjackValue
}

// HandStatus is the lifecycle state of a player hand
type HandStatus uint8

const (
	StatusActive HandStatus = iota
	StatusStand
	StatusBust
	StatusBlackjack
	StatusSurrendered
)

// String returns the lower-case status name
func (s HandStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStand:
		return "stand"
	case StatusBust:
		return "bust"
	case StatusBlackjack:
		return "blackjack"
	case StatusSurrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// Hand is a player's hand within a round.
type Hand struct {
	cards     []Card
	status    HandStatus
	bet       int
	fromSplit bool
}

// NewHand creates an empty active hand carrying bet.
func NewHand(bet int) *Hand {
	return &Hand{bet: bet}
}

// NewSplitHand creates a hand holding the single card moved out of a split.
func NewSplitHand(card Card, bet int) *Hand {
	return &Hand{
		cards:     []Card{card},
		bet:       bet,
		fromSplit: true,
	}
}

// AddCard appends card and re-evaluates the status. A total over 21 busts the
// hand; two cards totalling 21 on a hand that did not come from a split is a
// natural. Hands that are already resolved keep their status.
func (h *Hand) AddCard(card Card) {
	h.cards = append(h.cards, card)

	value, _ := Evaluate(h.cards)
	switch {
	case value > BlackjackValue:
		h.status = StatusBust
	case h.status == StatusActive && len(h.cards) == 2 && value == BlackjackValue && !h.fromSplit:
		h.status = StatusBlackjack
	}
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Status returns the current status
func (h *Hand) Status() HandStatus {
	return h.status
}

// SetStatus overrides the status (stand, surrender, forced stand on split aces).
func (h *Hand) SetStatus(status HandStatus) {
	h.status = status
}

// IsActive reports whether the hand can still act
func (h *Hand) IsActive() bool {
	return h.status == StatusActive
}

// Bet returns the amount riding on the hand
func (h *Hand) Bet() int {
	return h.bet
}

// DoubleBet doubles the amount riding on the hand
func (h *Hand) DoubleBet() {
	h.bet *= 2
}

// FromSplit reports whether the hand was created by splitting
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// Value returns the best total of the hand
func (h *Hand) Value() int {
	v, _ := Evaluate(h.cards)
	return v
}

// IsSoft reports whether an ace is still counted as eleven
func (h *Hand) IsSoft() bool {
	_, soft := Evaluate(h.cards)
	return soft
}

// IsBust reports whether the total is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

// IsBlackjack reports whether the hand is a natural
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && !h.fromSplit && h.Value() == BlackjackValue
}

// CanSplit reports whether the hand is exactly two cards of equal rank
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// IsPairOfAces reports whether the first card is an ace; only meaningful
// together with CanSplit.
func (h *Hand) IsPairOfAces() bool {
	return len(h.cards) > 0 && h.cards[0].IsAce()
}

// TakeSplitCard removes and returns the second card of a two-card hand. The
// hand left behind counts as a split hand from then on.
func (h *Hand) TakeSplitCard() (Card, bool) {
	if len(h.cards) != 2 {
		return Card{}, false
	}
	card := h.cards[1]
	h.cards = h.cards[:1]
	h.fromSplit = true
	return card, true
}

// Clone returns a deep copy of the hand
func (h *Hand) Clone() Hand {
	c := *h
	c.cards = h.Cards()
	return c
}

// String renders the hand as space separated cards
func (h *Hand) String() string {
	return formatCards(h.cards)
}

// DealerHand is the dealer's hand. The first card is the up card; the second
// stays hidden until RevealHole.
type DealerHand struct {
	cards        []Card
	holeRevealed bool
}

// NewDealerHand creates an empty dealer hand
func NewDealerHand() *DealerHand {
	return &DealerHand{}
}

// AddCard appends card to the dealer hand
func (d *DealerHand) AddCard(card Card) {
	d.cards = append(d.cards, card)
}

// Cards returns a copy of all dealer cards, including a hidden hole card
func (d *DealerHand) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of dealer cards
func (d *DealerHand) Len() int {
	return len(d.cards)
}

// UpCard returns the visible first card
func (d *DealerHand) UpCard() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}

// HoleRevealed reports whether the hole card is face up
func (d *DealerHand) HoleRevealed() bool {
	return d.holeRevealed
}

// RevealHole turns the hole card face up
func (d *DealerHand) RevealHole() {
	d.holeRevealed = true
}

// Value returns the full total including the hole card
func (d *DealerHand) Value() int {
	v, _ := Evaluate(d.cards)
	return v
}

// VisibleValue returns the up card value until the hole is revealed
func (d *DealerHand) VisibleValue() int {
	if d.holeRevealed {
		return d.Value()
	}
	if len(d.cards) == 0 {
		return 0
	}
	return d.cards[0].Value()
}

// IsSoft reports whether an ace is still counted as eleven
func (d *DealerHand) IsSoft() bool {
	_, soft := Evaluate(d.cards)
	return soft
}

// IsBlackjack reports whether the dealer holds a two-card 21
func (d *DealerHand) IsBlackjack() bool {
	return len(d.cards) == 2 && d.Value() == BlackjackValue
}

// IsBust reports whether the dealer total is over 21
func (d *DealerHand) IsBust() bool {
	return d.Value() > BlackjackValue
}

// Clear empties the hand for a new round
func (d *DealerHand) Clear() {
	d.cards = d.cards[:0]
	d.holeRevealed = false
}

// Clone returns a deep copy of the dealer hand
func (d *DealerHand) Clone() *DealerHand {
	return &DealerHand{cards: d.Cards(), holeRevealed: d.holeRevealed}
}

// String renders the dealer hand, masking the hole card until revealed
func (d *DealerHand) String() string {
	if d.holeRevealed || len(d.cards) < 2 {
		return formatCards(d.cards)
	}
	return d.cards[0].String() + " ??"
}

func formatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
