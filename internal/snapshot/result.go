package snapshot

import (
	"encoding/json"

	"github.com/lox/blackjackforbots/blackjack"
)

// RoundSummary is the JSON form of a settled round.
type RoundSummary struct {
	RoundID         string          `json:"round_id,omitempty"`
	Players         []PlayerSummary `json:"players"`
	DealerValue     int             `json:"dealer_value"`
	DealerBust      bool            `json:"dealer_bust"`
	DealerBlackjack bool            `json:"dealer_blackjack"`
}

type PlayerSummary struct {
	PlayerID        int           `json:"player_id"`
	Hands           []HandSummary `json:"hands"`
	TotalPayout     int           `json:"total_payout"`
	Net             int           `json:"net"`
	InsuranceBet    int           `json:"insurance_bet"`
	InsurancePayout int           `json:"insurance_payout"`
}

type HandSummary struct {
	HandIndex   int    `json:"hand_index"`
	Outcome     string `json:"outcome"`
	Bet         int    `json:"bet"`
	Payout      int    `json:"payout"`
	PlayerValue int    `json:"player_value"`
	DealerValue int    `json:"dealer_value"`
}

// FromRoundResult converts a showdown result
func FromRoundResult(r *blackjack.RoundResult) RoundSummary {
	out := RoundSummary{
		RoundID:         r.RoundID,
		Players:         make([]PlayerSummary, 0, len(r.Players)),
		DealerValue:     r.DealerValue,
		DealerBust:      r.DealerBust,
		DealerBlackjack: r.DealerBlackjack,
	}
	for _, p := range r.Players {
		ps := PlayerSummary{
			PlayerID:        int(p.PlayerID),
			Hands:           make([]HandSummary, 0, len(p.Hands)),
			TotalPayout:     p.TotalPayout,
			Net:             p.Net,
			InsuranceBet:    p.InsuranceBet,
			InsurancePayout: p.InsurancePayout,
		}
		for _, h := range p.Hands {
			ps.Hands = append(ps.Hands, HandSummary{
				HandIndex:   h.HandIndex,
				Outcome:     OutcomeName(h.Outcome),
				Bet:         h.Bet,
				Payout:      h.Payout,
				PlayerValue: h.PlayerValue,
				DealerValue: h.DealerValue,
			})
		}
		out.Players = append(out.Players, ps)
	}
	return out
}

// Marshal encodes the summary as JSON
func (r RoundSummary) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// OutcomeName returns the capitalised outcome
func OutcomeName(o blackjack.HandOutcome) string {
	switch o {
	case blackjack.OutcomeWin:
		return "Win"
	case blackjack.OutcomeLose:
		return "Lose"
	case blackjack.OutcomePush:
		return "Push"
	case blackjack.OutcomeBlackjack:
		return "Blackjack"
	case blackjack.OutcomeSurrendered:
		return "Surrendered"
	default:
		return "Unknown"
	}
}
