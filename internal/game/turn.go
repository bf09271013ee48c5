package game

import "github.com/lox/blackjackforbots/blackjack"

// beginPlayerTurns moves the cursor off any first hand that resolved on the
// deal and enters PlayerTurn. When no hand is left to act the round goes
// straight to DealerTurn.
func (g *Game) beginPlayerTurns() {
	if h := g.handAt(g.turn); h != nil && !h.IsActive() {
		g.advance()
	}
	if g.allPlayersDone() {
		g.setState(DealerTurn)
		return
	}
	g.setState(PlayerTurn)
}

// advanceAfterHand moves the cursor on from a hand that can no longer act.
func (g *Game) advanceAfterHand() {
	g.advance()
	if g.allPlayersDone() {
		g.setState(DealerTurn)
	}
}

// advance moves the cursor to the next Active hand: later hands of the same
// player first, then each following player's hands from the first. If none is
// found the cursor ends past the end of the betting order.
func (g *Game) advance() {
	for g.turn.PlayerIndex < len(g.bettingOrder) {
		hands := g.hands[g.bettingOrder[g.turn.PlayerIndex]]
		for g.turn.HandIndex++; g.turn.HandIndex < len(hands); g.turn.HandIndex++ {
			if hands[g.turn.HandIndex].IsActive() {
				return
			}
		}

		g.turn.PlayerIndex++
		g.turn.HandIndex = 0
		if g.turn.PlayerIndex >= len(g.bettingOrder) {
			return
		}
		next := g.hands[g.bettingOrder[g.turn.PlayerIndex]]
		if len(next) > 0 && next[0].IsActive() {
			return
		}
	}
}

func (g *Game) allPlayersDone() bool {
	return g.turn.PlayerIndex >= len(g.bettingOrder)
}

// handAt returns the hand the cursor points at, or nil.
func (g *Game) handAt(pos TurnPosition) *blackjack.Hand {
	if pos.PlayerIndex < 0 || pos.PlayerIndex >= len(g.bettingOrder) {
		return nil
	}
	hands := g.hands[g.bettingOrder[pos.PlayerIndex]]
	if pos.HandIndex < 0 || pos.HandIndex >= len(hands) {
		return nil
	}
	return hands[pos.HandIndex]
}

func (g *Game) isTurn(id PlayerID, hand int) bool {
	current, ok := g.currentPlayer()
	return ok && current == id && g.turn.HandIndex == hand
}

// AvailableActions returns the actions id may take right now. The set is empty
// unless it is id's turn on an Active hand.
func (g *Game) AvailableActions(id PlayerID) ActionSet {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != PlayerTurn {
		return ActionSet{}
	}
	current, ok := g.currentPlayer()
	if !ok || current != id {
		return ActionSet{}
	}
	h := g.handAt(g.turn)
	if h == nil || !h.IsActive() {
		return ActionSet{}
	}

	funds := g.money[id] >= h.Bet()
	return ActionSet{
		Hit:        true,
		Stand:      true,
		DoubleDown: canDouble(g.rules, h) && funds,
		Split: h.CanSplit() &&
			len(g.hands[id]) <= g.rules.MaxSplits &&
			!splitAcesBlocked(g.rules, h) &&
			funds,
		Surrender: canSurrender(g.rules, h),
	}
}
