package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// Random makes uniform random legal decisions and bets a random stake up to
// twice its unit.
type Random struct {
	unit   int
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a random agent. rng must not be nil.
func NewRandom(unit int, rng *rand.Rand, logger *log.Logger) *Random {
	if rng == nil {
		panic("bot: NewRandom requires a random source")
	}
	return &Random{unit: unit, rng: rng, logger: logger}
}

func (r *Random) Bet(v View) int {
	limit := min(2*r.unit, v.Money)
	if limit <= 0 {
		return 0
	}
	return 1 + r.rng.IntN(limit)
}

func (r *Random) Insurance(View) bool {
	return r.rng.IntN(2) == 0
}

func (r *Random) Act(v View) Decision {
	actions := v.Actions.List()
	if len(actions) == 0 {
		return Decision{Action: game.Stand, Reasoning: "rand-bot no valid actions"}
	}
	return Decision{Action: actions[r.rng.IntN(len(actions))], Reasoning: "rand-bot random action"}
}
