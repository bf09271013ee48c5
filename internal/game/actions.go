package game

import "github.com/lox/blackjackforbots/blackjack"

// actingHand validates the preconditions shared by every player action and
// returns the hand being played.
func (g *Game) actingHand(id PlayerID, hand int) (*blackjack.Hand, error) {
	if g.state != PlayerTurn {
		return nil, ActionInvalidState
	}
	if !g.isTurn(id, hand) {
		return nil, ActionNotYourTurn
	}
	return g.lookupHand(id, hand)
}

func (g *Game) lookupHand(id PlayerID, hand int) (*blackjack.Hand, error) {
	hands, ok := g.hands[id]
	if !ok {
		return nil, ActionPlayerNotFound
	}
	if hand < 0 || hand >= len(hands) {
		return nil, ActionHandNotFound
	}
	h := hands[hand]
	if !h.IsActive() {
		return nil, ActionHandNotActive
	}
	return h, nil
}

// Hit draws one card into the hand. The turn moves on if the hand busts.
func (g *Game) Hit(id PlayerID, hand int) (blackjack.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, err := g.actingHand(id, hand)
	if err != nil {
		return blackjack.Card{}, err
	}
	card, ok := g.draw()
	if !ok {
		return blackjack.Card{}, ActionNoCards
	}

	h.AddCard(card)
	g.logger.Debug("hit", "round", g.roundID, "player", id, "hand", hand, "card", card, "value", h.Value())
	if !h.IsActive() {
		g.advanceAfterHand()
	}
	return card, nil
}

// Stand ends play on the hand.
func (g *Game) Stand(id PlayerID, hand int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, err := g.actingHand(id, hand)
	if err != nil {
		return err
	}

	h.SetStatus(blackjack.StatusStand)
	g.logger.Debug("stand", "round", g.roundID, "player", id, "hand", hand, "value", h.Value())
	g.advanceAfterHand()
	return nil
}

// DoubleDown doubles the bet on a two-card hand, draws exactly one card and
// stands unless that card busts the hand.
func (g *Game) DoubleDown(id PlayerID, hand int) (blackjack.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, err := g.actingHand(id, hand)
	if err != nil {
		return blackjack.Card{}, err
	}
	if !canDouble(g.rules, h) {
		return blackjack.Card{}, ActionCannotDouble
	}
	bet := h.Bet()
	if g.money[id] < bet {
		return blackjack.Card{}, ActionInsufficientFunds
	}
	card, ok := g.draw()
	if !ok {
		return blackjack.Card{}, ActionNoCards
	}

	g.money[id] -= bet
	h.DoubleBet()
	h.AddCard(card)
	if h.IsActive() {
		h.SetStatus(blackjack.StatusStand)
	}
	g.logger.Debug("double down", "round", g.roundID, "player", id, "hand", hand, "card", card, "bet", h.Bet())
	g.advanceAfterHand()
	return card, nil
}

// Split turns a pair into two hands, each with the original bet, and deals
// one card to each. The new hand is inserted directly after the one being
// split so the cursor stays on the original. Split aces may be forced to
// stand at once.
func (g *Game) Split(id PlayerID, hand int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != PlayerTurn {
		return ActionInvalidState
	}
	if !g.isTurn(id, hand) {
		return ActionNotYourTurn
	}
	hands, ok := g.hands[id]
	if !ok {
		return ActionPlayerNotFound
	}
	if len(hands) > g.rules.MaxSplits {
		return ActionMaxSplitsReached
	}
	h, err := g.lookupHand(id, hand)
	if err != nil {
		return err
	}
	if !h.CanSplit() || splitAcesBlocked(g.rules, h) {
		return ActionCannotSplit
	}
	bet := h.Bet()
	if g.money[id] < bet {
		return ActionInsufficientFunds
	}
	if g.shoe.Remaining() < 2 {
		return ActionNoCards
	}

	aces := h.IsPairOfAces()
	g.money[id] -= bet

	moved, _ := h.TakeSplitCard()
	split := blackjack.NewSplitHand(moved, bet)
	first, _ := g.draw()
	second, _ := g.draw()
	h.AddCard(first)
	split.AddCard(second)

	oneCard := aces && g.rules.SplitAcesReceiveOneCard
	if oneCard {
		for _, sh := range []*blackjack.Hand{h, split} {
			if sh.IsActive() {
				sh.SetStatus(blackjack.StatusStand)
			}
		}
	}

	hands = append(hands, nil)
	copy(hands[hand+2:], hands[hand+1:])
	hands[hand+1] = split
	g.hands[id] = hands

	g.logger.Debug("split", "round", g.roundID, "player", id, "hand", hand, "hands", len(hands))

	if oneCard {
		g.advanceAfterHand()
	}
	return nil
}

// Surrender gives up a two-card hand that did not come from a split and
// refunds half its bet immediately. The refund is returned.
func (g *Game) Surrender(id PlayerID, hand int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != PlayerTurn {
		return 0, ActionInvalidState
	}
	if !g.rules.Surrender {
		return 0, ActionCannotSurrender
	}
	if !g.isTurn(id, hand) {
		return 0, ActionNotYourTurn
	}
	h, err := g.lookupHand(id, hand)
	if err != nil {
		return 0, err
	}
	if !canSurrender(g.rules, h) {
		return 0, ActionCannotSurrender
	}

	h.SetStatus(blackjack.StatusSurrendered)
	refund := blackjack.SurrenderRefund(h.Bet(), g.rules.RoundingSurrender)
	g.money[id] += refund
	g.logger.Debug("surrender", "round", g.roundID, "player", id, "hand", hand, "refund", refund)
	g.advanceAfterHand()
	return refund, nil
}
