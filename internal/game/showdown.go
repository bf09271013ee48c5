package game

import "github.com/lox/blackjackforbots/blackjack"

// Showdown settles every hand against the dealer, credits the payouts and
// returns the result. Hands and the dealer are not changed; the state stays
// RoundOver until ClearRound. A round can only be settled once.
func (g *Game) Showdown() (*blackjack.RoundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != RoundOver {
		return nil, ShowdownInvalidState
	}
	if g.settled {
		return nil, ShowdownAlreadySettled
	}

	result := &blackjack.RoundResult{
		RoundID:         g.roundID,
		DealerValue:     g.dealer.Value(),
		DealerBust:      g.dealer.IsBust(),
		DealerBlackjack: g.dealer.IsBlackjack(),
	}

	for _, id := range g.bettingOrder {
		hands, ok := g.hands[id]
		if !ok {
			continue
		}
		pr := g.settlePlayer(id, hands, result)
		g.money[id] += pr.TotalPayout
		result.Players = append(result.Players, pr)
	}

	g.settled = true
	g.logger.Debug("round settled",
		"round", g.roundID,
		"dealer", result.DealerValue,
		"players", len(result.Players),
		"net", result.TotalNet())
	return result, nil
}

func (g *Game) settlePlayer(id PlayerID, hands []*blackjack.Hand, round *blackjack.RoundResult) blackjack.PlayerResult {
	pr := blackjack.PlayerResult{PlayerID: id}
	staked := 0
	refunded := 0

	for i, h := range hands {
		outcome, payout := g.settleHand(h, round)
		staked += h.Bet()
		if outcome == blackjack.OutcomeSurrendered {
			refunded += blackjack.SurrenderRefund(h.Bet(), g.rules.RoundingSurrender)
		}
		pr.TotalPayout += payout
		pr.Hands = append(pr.Hands, blackjack.HandResult{
			HandIndex:   i,
			Outcome:     outcome,
			Bet:         h.Bet(),
			Payout:      payout,
			PlayerValue: h.Value(),
			DealerValue: round.DealerValue,
		})
	}

	pr.InsuranceBet = g.insuranceBets[id]
	if round.DealerBlackjack && pr.InsuranceBet > 0 {
		pr.InsurancePayout = pr.InsuranceBet * 3
	}
	pr.TotalPayout += pr.InsurancePayout
	staked += pr.InsuranceBet

	pr.Net = pr.TotalPayout + refunded - staked
	return pr
}

// settleHand returns the outcome and the amount credited for one hand. The
// amount includes the returned stake.
func (g *Game) settleHand(h *blackjack.Hand, round *blackjack.RoundResult) (blackjack.HandOutcome, int) {
	bet := h.Bet()

	switch h.Status() {
	case blackjack.StatusSurrendered:
		return blackjack.OutcomeSurrendered, 0
	case blackjack.StatusBust:
		return blackjack.OutcomeLose, 0
	case blackjack.StatusBlackjack:
		if round.DealerBlackjack {
			return blackjack.OutcomePush, bet
		}
		return blackjack.OutcomeBlackjack, bet + blackjack.BlackjackBonus(bet, g.rules.BlackjackPays, g.rules.RoundingBlackjack)
	}

	value := h.Value()
	switch {
	case round.DealerBust:
		return blackjack.OutcomeWin, bet * 2
	case round.DealerBlackjack && !h.FromSplit() && h.Len() == 2:
		return blackjack.OutcomeLose, 0
	case value > round.DealerValue:
		return blackjack.OutcomeWin, bet * 2
	case value < round.DealerValue:
		return blackjack.OutcomeLose, 0
	default:
		return blackjack.OutcomePush, bet
	}
}
