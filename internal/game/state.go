package game

import "github.com/lox/blackjackforbots/blackjack"

// GameState is the phase of the current round. It alone decides which
// operations are legal.
type GameState uint8

const (
	WaitingForPlayers GameState = iota
	Betting
	Dealing
	Insurance
	PlayerTurn
	DealerTurn
	RoundOver
)

func (s GameState) String() string {
	switch s {
	case WaitingForPlayers:
		return "WaitingForPlayers"
	case Betting:
		return "Betting"
	case Dealing:
		return "Dealing"
	case Insurance:
		return "Insurance"
	case PlayerTurn:
		return "PlayerTurn"
	case DealerTurn:
		return "DealerTurn"
	case RoundOver:
		return "RoundOver"
	default:
		return "Unknown"
	}
}

// inRound reports whether cards are on the table.
func (s GameState) inRound() bool {
	switch s {
	case Dealing, Insurance, PlayerTurn, DealerTurn, RoundOver:
		return true
	default:
		return false
	}
}

// TurnPosition is the turn cursor: an index into the round's betting order and
// an index into that player's hands. PlayerIndex at or past the end of the
// order means every player is done.
type TurnPosition struct {
	PlayerIndex int
	HandIndex   int
}

// Before reports whether p precedes o in turn order.
func (p TurnPosition) Before(o TurnPosition) bool {
	if p.PlayerIndex != o.PlayerIndex {
		return p.PlayerIndex < o.PlayerIndex
	}
	return p.HandIndex < o.HandIndex
}

// Action is a player decision on the hand whose turn it is.
type Action uint8

const (
	Hit Action = iota
	Stand
	DoubleDown
	Split
	Surrender
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ActionSet is the set of actions the current hand may legally take.
type ActionSet struct {
	Hit        bool
	Stand      bool
	DoubleDown bool
	Split      bool
	Surrender  bool
}

// Allows reports whether a is in the set
func (s ActionSet) Allows(a Action) bool {
	switch a {
	case Hit:
		return s.Hit
	case Stand:
		return s.Stand
	case DoubleDown:
		return s.DoubleDown
	case Split:
		return s.Split
	case Surrender:
		return s.Surrender
	default:
		return false
	}
}

// List returns the allowed actions in a fixed order
func (s ActionSet) List() []Action {
	var out []Action
	for _, a := range []Action{Hit, Stand, DoubleDown, Split, Surrender} {
		if s.Allows(a) {
			out = append(out, a)
		}
	}
	return out
}

// Empty reports whether no action is allowed
func (s ActionSet) Empty() bool {
	return s == ActionSet{}
}

// canDouble applies the double-down eligibility rules, without funds.
func canDouble(rules blackjack.Rules, h *blackjack.Hand) bool {
	if h.Len() != 2 {
		return false
	}
	if h.FromSplit() && !rules.DoubleAfterSplit {
		return false
	}
	return rules.Double.Allows(h.Value())
}

// splitAcesBlocked reports whether re-splitting a pair of aces is forbidden.
func splitAcesBlocked(rules blackjack.Rules, h *blackjack.Hand) bool {
	return h.IsPairOfAces() && h.FromSplit() && rules.SplitAcesOnlyOnce
}

// canSurrender applies the late-surrender rules.
func canSurrender(rules blackjack.Rules, h *blackjack.Hand) bool {
	return rules.Surrender && h.Len() == 2 && !h.FromSplit()
}
