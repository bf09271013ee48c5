package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// DealerMimic plays the house's own rule: hit below 17, stand otherwise. It
// never doubles, splits, surrenders or insures.
type DealerMimic struct {
	unit   int
	logger *log.Logger
}

// NewDealerMimic creates a mimic betting unit per round
func NewDealerMimic(unit int, logger *log.Logger) *DealerMimic {
	return &DealerMimic{unit: unit, logger: logger}
}

func (m *DealerMimic) Bet(v View) int { return flatBet(m.unit, v) }

func (m *DealerMimic) Insurance(View) bool { return false }

func (m *DealerMimic) Act(v View) Decision {
	if v.Hand.Value() < 17 {
		return Decision{Action: game.Hit, Reasoning: "mimic hits below 17"}
	}
	return Decision{Action: game.Stand, Reasoning: "mimic stands on 17+"}
}
