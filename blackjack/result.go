package blackjack

// HandOutcome is how a single hand settled against the dealer.
type HandOutcome uint8

const (
	OutcomeWin HandOutcome = iota
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
	OutcomeSurrendered
)

// String returns the lower-case outcome name
func (o HandOutcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeSurrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// HandResult is the settlement of one hand. Payout is the amount credited at
// showdown, including the returned stake.
type HandResult struct {
	HandIndex   int
	Outcome     HandOutcome
	Bet         int
	Payout      int
	PlayerValue int
	DealerValue int
}

// PlayerResult is the settlement of every hand a player held in the round.
type PlayerResult struct {
	PlayerID    PlayerID
	Hands       []HandResult
	TotalPayout int
	// Net is the round profit or loss including surrender refunds that were
	// paid before showdown.
	Net             int
	InsuranceBet    int
	InsurancePayout int
}

// RoundResult is the outcome of a showdown
type RoundResult struct {
	RoundID         string
	Players         []PlayerResult
	DealerValue     int
	DealerBust      bool
	DealerBlackjack bool
}

// Player returns the result for id
func (r *RoundResult) Player(id PlayerID) (PlayerResult, bool) {
	for _, p := range r.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return PlayerResult{}, false
}

// TotalNet sums Net over every player. The house result is its negation.
func (r *RoundResult) TotalNet() int {
	total := 0
	for _, p := range r.Players {
		total += p.Net
	}
	return total
}

// PlayerID identifies a seated player. Ids are assigned by the engine in join
// order and never reused by the same engine.
type PlayerID int
