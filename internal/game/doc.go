// Package game implements the blackjack table engine.
//
// A Game owns the shoe, the seated players' balances and everything about the
// round in progress. Callers drive it through a fixed sequence of operations;
// each one checks the current GameState and fails with a typed error when it
// is called out of order.
//
// # Basic Usage
//
//	g := game.NewGame(blackjack.DefaultRules(), seed)
//	alice := g.Join(100)
//
//	g.StartBetting()
//	_ = g.Bet(alice, 10)
//	_ = g.Deal()
//
//	if g.IsInsuranceOffered() {
//	    _ = g.DeclineInsurance(alice)
//	    _, _ = g.FinishInsurance()
//	}
//	for g.State() == game.PlayerTurn {
//	    turn := g.CurrentTurn()
//	    _ = g.Stand(alice, turn.HandIndex)
//	}
//	if g.State() == game.DealerTurn {
//	    _, _ = g.DealerPlay()
//	}
//	result, _ := g.Showdown()
//	g.ClearRound()
//
// A round that cannot be finished, for example because the shoe ran dry with
// penetration disabled, is called off with VoidRound, which hands back every
// outstanding stake. Reshuffling below MinRoundCards between rounds avoids it.
//
// # Errors
//
// Every operation family has its own error type (BetError, DealError,
// ActionError, InsuranceError, ShowdownError, ReshuffleError, LeaveError).
// The values compare with errors.Is:
//
//	if errors.Is(err, game.ActionNotYourTurn) { ... }
//
// # Concurrency
//
// All methods serialise on a single table lock, reads included. No method
// releases the lock part way through, so a validated player or hand cannot
// disappear before it is used. Leave refuses players dealt into an unsettled
// round for the same reason.
//
// # Deterministic Testing
//
// The shoe is shuffled from the seed passed to NewGame. For exact scenarios
// StackShoe queues the next cards to be drawn:
//
//	g.StackShoe(blackjack.MustParseCards("8h 6c 7d Ts 4h 5c"))
package game
