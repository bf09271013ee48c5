package game

// IsInsuranceOffered reports whether the table is waiting on insurance
// decisions.
func (g *Game) IsInsuranceOffered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Insurance
}

// TakeInsurance stakes half the player's original bet, rounded down, against a
// dealer blackjack and returns the stake.
func (g *Game) TakeInsurance(id PlayerID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Insurance {
		return 0, InsuranceInvalidState
	}
	if !g.rules.Insurance {
		return 0, InsuranceNotOffered
	}
	if g.insuranceDecided[id] {
		return 0, InsuranceAlreadyDecided
	}
	bet, ok := g.bets[id]
	if !ok || !g.seated(id) {
		return 0, InsuranceNoBet
	}
	balance, ok := g.money[id]
	if !ok {
		return 0, InsurancePlayerNotFound
	}

	stake := bet / 2
	if balance < stake {
		return 0, InsuranceInsufficientFunds
	}

	g.money[id] = balance - stake
	g.insuranceBets[id] = stake
	g.insuranceDecided[id] = true
	g.logger.Debug("insurance taken", "round", g.roundID, "player", id, "stake", stake)
	return stake, nil
}

// DeclineInsurance records that the player will not insure.
func (g *Game) DeclineInsurance(id PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Insurance {
		return InsuranceInvalidState
	}
	if g.insuranceDecided[id] {
		return InsuranceAlreadyDecided
	}
	if _, ok := g.bets[id]; !ok || !g.seated(id) {
		return InsuranceNoBet
	}

	g.insuranceDecided[id] = true
	return nil
}

// AllInsuranceDecided reports whether every player in the round has taken or
// declined insurance.
func (g *Game) AllInsuranceDecided() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range g.bettingOrder {
		if !g.insuranceDecided[id] {
			return false
		}
	}
	return true
}

// FinishInsurance closes the insurance window and peeks at the hole card. On a
// dealer blackjack the hole is revealed, the round is over and true is
// returned. Otherwise play continues as it would have after the deal.
// Undecided players are treated as having declined.
func (g *Game) FinishInsurance() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Insurance {
		return false, InsuranceInvalidState
	}

	if g.dealer.IsBlackjack() {
		g.dealer.RevealHole()
		g.logger.Debug("dealer blackjack", "round", g.roundID)
		g.setState(RoundOver)
		return true, nil
	}

	g.beginPlayerTurns()
	return false, nil
}
