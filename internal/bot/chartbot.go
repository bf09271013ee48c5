package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/game"
)

// Chart codes. Columns are dealer up cards 2 through ace.
const (
	hit         = 'H'
	stand       = 'S'
	doubleHit   = 'D' // double, else hit
	doubleStand = 'd' // double, else stand
	split       = 'P'
	splitDAS    = 'p' // split only when doubling after a split is allowed
	surrHit     = 'R' // surrender, else hit
	surrStand   = 'r' // surrender, else stand
	surrSplit   = 'Q' // surrender, else split
)

// hardChart is indexed by total, 4 to 21.
var hardChart = map[int]string{
	4:  "HHHHHHHHHH",
	5:  "HHHHHHHHHH",
	6:  "HHHHHHHHHH",
	7:  "HHHHHHHHHH",
	8:  "HHHHHHHHHH",
	9:  "HDDDDHHHHH",
	10: "DDDDDDDDHH",
	11: "DDDDDDDDDH",
	12: "HHSSSHHHHH",
	13: "SSSSSHHHHH",
	14: "SSSSSHHHHH",
	15: "SSSSSHHHRH",
	16: "SSSSSHHRRR",
	17: "SSSSSSSSSS",
}

// softChart is indexed by total, 13 (A2) to 21.
var softChart = map[int]string{
	13: "HHHDDHHHHH",
	14: "HHHDDHHHHH",
	15: "HHDDDHHHHH",
	16: "HHDDDHHHHH",
	17: "HDDDDHHHHH",
	18: "SddddSSHHH",
	19: "SSSSSSSSSS",
	20: "SSSSSSSSSS",
	21: "SSSSSSSSSS",
}

// pairChart is indexed by the value of one card of the pair, ace as 11.
var pairChart = map[int]string{
	2:  "ppPPPPHHHH",
	3:  "ppPPPPHHHH",
	4:  "HHHppHHHHH",
	5:  "DDDDDDDDHH",
	6:  "pPPPPHHHHH",
	7:  "PPPPPPHHHH",
	8:  "PPPPPPPPPP",
	9:  "PPPPPSPPSS",
	10: "SSSSSSSSSS",
	11: "PPPPPPPPPP",
}

// h17 holds the cells that change when the dealer hits soft 17.
var h17 = map[string]byte{
	"hard:11:11": doubleHit,
	"hard:15:11": surrHit,
	"hard:17:11": surrStand,
	"soft:18:2":  doubleStand,
	"soft:19:6":  doubleStand,
	"pair:8:11":  surrSplit,
}

// BasicStrategy plays the multi-deck basic strategy chart and bets flat.
// It never takes insurance.
type BasicStrategy struct {
	unit   int
	logger *log.Logger
}

// NewBasicStrategy creates a chart player betting unit per round
func NewBasicStrategy(unit int, logger *log.Logger) *BasicStrategy {
	return &BasicStrategy{unit: unit, logger: logger}
}

func (b *BasicStrategy) Bet(v View) int { return flatBet(b.unit, v) }

func (b *BasicStrategy) Insurance(View) bool { return false }

func (b *BasicStrategy) Act(v View) Decision {
	code, chart := b.lookup(v)
	d := resolve(code, v)
	d.Reasoning = fmt.Sprintf("chart %s %s vs %s: %s", chart, v.Hand.String(), v.DealerUp, d.Reasoning)

	if b.logger != nil {
		b.logger.Debug("chart decision", "player", v.PlayerID, "hand", v.Hand.String(), "up", v.DealerUp, "action", d.Action)
	}
	return d
}

// lookup returns the chart cell for the hand and the name of the chart used.
func (b *BasicStrategy) lookup(v View) (byte, string) {
	col := upIndex(v.DealerUp)
	up := v.DealerUp.Rank.Value()
	h := v.Hand

	if h.Len() == 2 && h.CanSplit() {
		cards := h.Cards()
		pair := cards[0].Rank.Value()
		code := pairChart[pair][col]
		code = adjustH17(v.Rules, fmt.Sprintf("pair:%d:%d", pair, up), code)
		// A declined split falls through to the total
		if code != split && code != splitDAS && code != surrSplit {
			if pair == 11 {
				return softCell(v, 12, col, up), "soft"
			}
			return hardCell(v, pair*2, col, up), "hard"
		}
		if code == splitDAS && !v.Rules.DoubleAfterSplit {
			return hardCell(v, pair*2, col, up), "hard"
		}
		return code, "pair"
	}

	total := h.Value()
	if h.IsSoft() {
		return softCell(v, total, col, up), "soft"
	}
	return hardCell(v, total, col, up), "hard"
}

func hardCell(v View, total, col, up int) byte {
	switch {
	case total >= 17:
		total = 17
	case total < 4:
		total = 4
	}
	return adjustH17(v.Rules, fmt.Sprintf("hard:%d:%d", total, up), hardChart[total][col])
}

func softCell(v View, total, col, up int) byte {
	if total < 13 {
		// Soft 12 is a pair of aces that may not split again
		return hit
	}
	return adjustH17(v.Rules, fmt.Sprintf("soft:%d:%d", total, up), softChart[total][col])
}

func adjustH17(rules blackjack.Rules, key string, code byte) byte {
	if rules.StandOnSoft17 {
		return code
	}
	if alt, ok := h17[key]; ok {
		return alt
	}
	return code
}

// resolve turns a chart code into an action the hand can take.
func resolve(code byte, v View) Decision {
	can := v.Actions
	switch code {
	case stand:
		return Decision{Action: game.Stand, Reasoning: "stand"}
	case doubleHit:
		if can.DoubleDown {
			return Decision{Action: game.DoubleDown, Reasoning: "double"}
		}
		return Decision{Action: game.Hit, Reasoning: "double unavailable, hit"}
	case doubleStand:
		if can.DoubleDown {
			return Decision{Action: game.DoubleDown, Reasoning: "double"}
		}
		return Decision{Action: game.Stand, Reasoning: "double unavailable, stand"}
	case split, splitDAS:
		if can.Split {
			return Decision{Action: game.Split, Reasoning: "split"}
		}
		return totalFallback(v, "split unavailable")
	case surrHit:
		if can.Surrender {
			return Decision{Action: game.Surrender, Reasoning: "surrender"}
		}
		return Decision{Action: game.Hit, Reasoning: "surrender unavailable, hit"}
	case surrStand:
		if can.Surrender {
			return Decision{Action: game.Surrender, Reasoning: "surrender"}
		}
		return Decision{Action: game.Stand, Reasoning: "surrender unavailable, stand"}
	case surrSplit:
		if can.Surrender {
			return Decision{Action: game.Surrender, Reasoning: "surrender"}
		}
		if can.Split {
			return Decision{Action: game.Split, Reasoning: "surrender unavailable, split"}
		}
		return totalFallback(v, "surrender and split unavailable")
	default:
		return Decision{Action: game.Hit, Reasoning: "hit"}
	}
}

// totalFallback plays a pair that cannot be split by its total alone.
func totalFallback(v View, why string) Decision {
	col := upIndex(v.DealerUp)
	up := v.DealerUp.Rank.Value()
	var code byte
	if v.Hand.IsSoft() {
		code = softCell(v, v.Hand.Value(), col, up)
	} else {
		code = hardCell(v, v.Hand.Value(), col, up)
	}
	d := resolve(code, v)
	d.Reasoning = why + ", " + d.Reasoning
	return d
}

// upIndex maps the dealer up card to a chart column.
func upIndex(up blackjack.Card) int {
	value := up.Rank.Value()
	if value < 2 {
		return 0
	}
	return value - 2
}
