package bot

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/game"
)

// View is what an agent may see when asked for a decision. Hand fields are
// zero when the view is built for betting or insurance before play starts.
type View struct {
	PlayerID       game.PlayerID
	Money          int
	Bet            int
	Hand           blackjack.Hand
	HandIndex      int
	HandCount      int
	DealerUp       blackjack.Card
	Actions        game.ActionSet
	Rules          blackjack.Rules
	CardsRemaining int
}

// Decision is an agent's chosen action with a short human readable reason.
type Decision struct {
	Action    game.Action
	Reasoning string
}

// Agent decides on behalf of one seat.
type Agent interface {
	// Bet returns the stake for the next round. Zero sits the round out.
	Bet(v View) int
	// Insurance reports whether to insure against a dealer ace.
	Insurance(v View) bool
	// Act picks an action for the hand in v.
	Act(v View) Decision
}

// Kinds lists the names accepted by New.
var Kinds = []string{"basic", "mimic", "random"}

// New builds an agent by name. unit is the flat stake the agent bets.
func New(kind string, unit int, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	if logger != nil {
		logger = logger.WithPrefix("bot")
	}
	switch strings.ToLower(kind) {
	case "basic", "chart":
		return NewBasicStrategy(unit, logger), nil
	case "mimic", "dealer":
		return NewDealerMimic(unit, logger), nil
	case "random", "rand":
		return NewRandom(unit, rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}

// NewView builds the view for id's current hand. ok is false when id is not
// seated. Outside PlayerTurn, or when it is someone else's turn, the hand
// fields are left empty.
func NewView(g *game.Game, id game.PlayerID) (View, bool) {
	money, ok := g.Money(id)
	if !ok {
		return View{}, false
	}
	v := View{
		PlayerID:       id,
		Money:          money,
		Rules:          g.Rules(),
		CardsRemaining: g.CardsRemaining(),
		Actions:        g.AvailableActions(id),
	}
	v.Bet, _ = g.PlacedBet(id)
	v.DealerUp, _ = g.DealerHand().UpCard()

	current, ok := g.CurrentPlayer()
	if !ok || current != id || g.State() != game.PlayerTurn {
		return v, true
	}
	hands, _ := g.Hands(id)
	turn := g.CurrentTurn()
	if turn.HandIndex < len(hands) {
		v.Hand = hands[turn.HandIndex]
		v.HandIndex = turn.HandIndex
		v.HandCount = len(hands)
	}
	return v, true
}

// Apply performs action for id on the given hand.
func Apply(g *game.Game, id game.PlayerID, hand int, action game.Action) error {
	var err error
	switch action {
	case game.Hit:
		_, err = g.Hit(id, hand)
	case game.Stand:
		err = g.Stand(id, hand)
	case game.DoubleDown:
		_, err = g.DoubleDown(id, hand)
	case game.Split:
		err = g.Split(id, hand)
	case game.Surrender:
		_, err = g.Surrender(id, hand)
	default:
		return fmt.Errorf("unknown action %d", action)
	}
	if err != nil {
		return fmt.Errorf("%s hand %d: %w", action, hand, err)
	}
	return nil
}

// Play asks agent for a decision on id's current hand and applies it. An
// action the hand cannot take is replaced by a hit or a stand.
func Play(g *game.Game, id game.PlayerID, agent Agent) (Decision, error) {
	v, ok := NewView(g, id)
	if !ok {
		return Decision{}, fmt.Errorf("player %d is not seated", id)
	}
	if v.Actions.Empty() {
		return Decision{}, fmt.Errorf("player %d has no hand to play", id)
	}

	d := agent.Act(v)
	if !v.Actions.Allows(d.Action) {
		d = fallback(v, d)
	}
	return d, Apply(g, id, v.HandIndex, d.Action)
}

// PlaceBet asks agent for a stake and places it. A stake of zero, or one the
// player cannot cover, sits the round out and returns 0.
func PlaceBet(g *game.Game, id game.PlayerID, agent Agent) (int, error) {
	v, ok := NewView(g, id)
	if !ok {
		return 0, fmt.Errorf("player %d is not seated", id)
	}
	amount := min(agent.Bet(v), v.Money)
	if amount <= 0 {
		return 0, nil
	}
	if err := g.Bet(id, amount); err != nil {
		return 0, fmt.Errorf("bet %d: %w", amount, err)
	}
	return amount, nil
}

// DecideInsurance records agent's insurance decision. A player who cannot
// afford the stake declines.
func DecideInsurance(g *game.Game, id game.PlayerID, agent Agent) (bool, error) {
	v, ok := NewView(g, id)
	if !ok {
		return false, fmt.Errorf("player %d is not seated", id)
	}
	if agent.Insurance(v) && v.Money >= v.Bet/2 {
		if _, err := g.TakeInsurance(id); err != nil {
			return false, fmt.Errorf("take insurance: %w", err)
		}
		return true, nil
	}
	if err := g.DeclineInsurance(id); err != nil {
		return false, fmt.Errorf("decline insurance: %w", err)
	}
	return false, nil
}

func fallback(v View, d Decision) Decision {
	action := game.Stand
	if v.Hand.Value() < 17 {
		action = game.Hit
	}
	return Decision{
		Action:    action,
		Reasoning: fmt.Sprintf("%s unavailable, %s instead (%s)", d.Action, action, d.Reasoning),
	}
}

func flatBet(unit int, v View) int {
	return min(unit, v.Money)
}
