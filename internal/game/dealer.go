package game

import "github.com/lox/blackjackforbots/blackjack"

// DealerPlay reveals the hole card and draws to the house rules: below 17
// always, and on soft 17 unless the dealer stands on soft 17. If every hand
// has already busted or surrendered the dealer does not draw. The drawn cards
// are returned.
//
// If the shoe runs out mid-draw the cards drawn so far stay with the dealer,
// the table stays in DealerTurn and ShowdownNoCards is returned.
func (g *Game) DealerPlay() ([]blackjack.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != DealerTurn {
		return nil, ShowdownInvalidState
	}
	g.dealer.RevealHole()

	if !g.anyHandInPlay() {
		g.logger.Debug("dealer stands pat, no hands in play", "round", g.roundID)
		g.setState(RoundOver)
		return nil, nil
	}

	var drawn []blackjack.Card
	for g.dealerMustHit() {
		card, ok := g.draw()
		if !ok {
			return drawn, ShowdownNoCards
		}
		g.dealer.AddCard(card)
		drawn = append(drawn, card)
	}

	g.logger.Debug("dealer done", "round", g.roundID, "hand", g.dealer, "value", g.dealer.Value())
	g.setState(RoundOver)
	return drawn, nil
}

func (g *Game) dealerMustHit() bool {
	value := g.dealer.Value()
	if value < 17 {
		return true
	}
	return value == 17 && g.dealer.IsSoft() && !g.rules.StandOnSoft17
}

// anyHandInPlay reports whether some hand still needs the dealer's total.
func (g *Game) anyHandInPlay() bool {
	for _, id := range g.bettingOrder {
		for _, h := range g.hands[id] {
			switch h.Status() {
			case blackjack.StatusStand, blackjack.StatusBlackjack:
				return true
			}
		}
	}
	return false
}
