package game

import (
	"github.com/lox/blackjackforbots/blackjack"
)

// NewTestGame creates a game on the default rules with opts applied.
func NewTestGame(seed uint64, opts ...blackjack.RuleOption) *Game {
	return NewGame(blackjack.NewRules(opts...), seed)
}

// DealScripted seats one player per bet, each with stake, places the bets,
// stacks the shoe with draws (a space separated card list, first card drawn
// first) and deals. Cards are dealt player by player, then the dealer up
// card, then a second round, then the hole card.
func DealScripted(g *Game, draws string, stake int, bets ...int) ([]PlayerID, error) {
	ids := make([]PlayerID, len(bets))
	for i := range bets {
		ids[i] = g.Join(stake)
	}

	g.StartBetting()
	for i, amount := range bets {
		if err := g.Bet(ids[i], amount); err != nil {
			return ids, err
		}
	}

	g.StackShoe(blackjack.MustParseCards(draws))
	return ids, g.Deal()
}
