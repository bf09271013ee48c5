// Package snapshot renders a player's view of a table as plain JSON-ready
// structs. The field names and string values match what browser and bot
// clients already consume.
package snapshot

import (
	"encoding/json"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/game"
)

// Snapshot is everything one player may see at a moment in the round.
type Snapshot struct {
	State            string   `json:"state"`
	PlayerID         *int     `json:"player_id"`
	Money            *int     `json:"money"`
	Bet              *int     `json:"bet"`
	Hands            []Hand   `json:"hands"`
	Dealer           Dealer   `json:"dealer"`
	CurrentTurn      *Turn    `json:"current_turn"`
	InsuranceOffered bool     `json:"insurance_offered"`
	InsuranceBet     *int     `json:"insurance_bet"`
	CardsRemaining   int      `json:"cards_remaining"`
	RoundID          string   `json:"round_id,omitempty"`
	Actions          []string `json:"actions,omitempty"`
}

// Turn identifies the hand being played
type Turn struct {
	PlayerID  int `json:"player_id"`
	HandIndex int `json:"hand_index"`
}

// Card is a card with the suit spelled out and the rank as 1 (ace) to 13.
type Card struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

type Hand struct {
	Index     int    `json:"index"`
	Cards     []Card `json:"cards"`
	Value     int    `json:"value"`
	IsSoft    bool   `json:"is_soft"`
	Status    string `json:"status"`
	Bet       int    `json:"bet"`
	FromSplit bool   `json:"from_split"`
	CanSplit  bool   `json:"can_split"`
}

// Dealer is the dealer's hand. Until the hole card is revealed it is sent as
// null and the totals cover the up card only.
type Dealer struct {
	Cards        []*Card `json:"cards"`
	Value        int     `json:"value"`
	VisibleValue int     `json:"visible_value"`
	IsSoft       bool    `json:"is_soft"`
	IsBlackjack  bool    `json:"is_blackjack"`
	IsBust       bool    `json:"is_bust"`
	HoleRevealed bool    `json:"hole_revealed"`
}

// Take captures the table as seen by player. A player that is not seated
// gets the shared parts only.
func Take(g *game.Game, player game.PlayerID) Snapshot {
	s := Snapshot{
		State:            g.State().String(),
		Hands:            []Hand{},
		Dealer:           NewDealer(g.DealerHand()),
		InsuranceOffered: g.IsInsuranceOffered(),
		CardsRemaining:   g.CardsRemaining(),
		RoundID:          g.RoundID(),
	}

	if money, ok := g.Money(player); ok {
		id := int(player)
		s.PlayerID = &id
		s.Money = &money
	}
	if bet, ok := g.PlacedBet(player); ok {
		s.Bet = &bet
	}
	if ins, ok := g.InsuranceBet(player); ok {
		s.InsuranceBet = &ins
	}
	if hands, ok := g.Hands(player); ok {
		for i := range hands {
			s.Hands = append(s.Hands, NewHand(i, &hands[i]))
		}
	}
	if current, ok := g.CurrentPlayer(); ok && g.State() == game.PlayerTurn {
		s.CurrentTurn = &Turn{PlayerID: int(current), HandIndex: g.CurrentTurn().HandIndex}
	}
	for _, a := range g.AvailableActions(player).List() {
		s.Actions = append(s.Actions, a.String())
	}
	return s
}

// Marshal encodes the snapshot as JSON
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// NewCard converts an engine card
func NewCard(c blackjack.Card) Card {
	return Card{Suit: SuitName(c.Suit), Rank: int(c.Rank)}
}

// NewHand converts a player hand at index
func NewHand(index int, h *blackjack.Hand) Hand {
	cards := make([]Card, 0, h.Len())
	for _, c := range h.Cards() {
		cards = append(cards, NewCard(c))
	}
	return Hand{
		Index:     index,
		Cards:     cards,
		Value:     h.Value(),
		IsSoft:    h.IsSoft(),
		Status:    StatusName(h.Status()),
		Bet:       h.Bet(),
		FromSplit: h.FromSplit(),
		CanSplit:  h.CanSplit(),
	}
}

// NewDealer converts the dealer hand, masking the hole card while it is
// face down.
func NewDealer(d *blackjack.DealerHand) Dealer {
	revealed := d.HoleRevealed()
	out := Dealer{
		Cards:        make([]*Card, 0, d.Len()),
		VisibleValue: d.VisibleValue(),
		HoleRevealed: revealed,
	}
	for i, c := range d.Cards() {
		if i == 0 || revealed {
			card := NewCard(c)
			out.Cards = append(out.Cards, &card)
		} else {
			out.Cards = append(out.Cards, nil)
		}
	}
	if revealed {
		out.Value = d.Value()
		out.IsSoft = d.IsSoft()
		out.IsBlackjack = d.IsBlackjack()
		out.IsBust = d.IsBust()
	} else {
		out.Value = out.VisibleValue
	}
	return out
}

// SuitName returns the capitalised suit name
func SuitName(s blackjack.Suit) string {
	switch s {
	case blackjack.Hearts:
		return "Hearts"
	case blackjack.Diamonds:
		return "Diamonds"
	case blackjack.Clubs:
		return "Clubs"
	case blackjack.Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// StatusName returns the capitalised hand status
func StatusName(s blackjack.HandStatus) string {
	switch s {
	case blackjack.StatusActive:
		return "Active"
	case blackjack.StatusStand:
		return "Stand"
	case blackjack.StatusBust:
		return "Bust"
	case blackjack.StatusBlackjack:
		return "Blackjack"
	case blackjack.StatusSurrendered:
		return "Surrendered"
	default:
		return "Unknown"
	}
}
