package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjackforbots/blackjack"
)

// MaxSeats bounds the per-seat breakdown.
const MaxSeats = 7

// RoundResult is one seat's outcome for a single round
type RoundResult struct {
	Net             int     // Chips won or lost this round
	Units           float64 // Net in units of the seat's flat bet
	Seed            uint64  // Table seed, for replay
	Seat            int     // Seat index, 0 based
	Outcomes        []blackjack.HandOutcome
	Doubled         int // Hands doubled
	Splits          int // Extra hands created by splitting
	InsuranceTaken  bool
	InsurancePayout int
}

// SeatStats tracks results for one seat
type SeatStats struct {
	Rounds   int
	SumUnits float64
	SumNet   int
}

// Statistics accumulates per-round results across a simulation
type Statistics struct {
	Rounds    int
	SumUnits  float64
	SumUnits2 float64   // Sum of squares for variance calculation
	Values    []float64 // Every result, for median and percentiles
	TotalNet  int

	// Hand outcomes
	Hands       int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Surrenders  int
	Doubles     int
	Splits      int
	WinningRuns int // Rounds with a positive net

	// Insurance
	InsuranceTaken int
	InsuranceWon   int
	InsurancePaid  int

	Reshuffles int

	SeatResults [MaxSeats]SeatStats
}

// Mean returns the arithmetic mean of all results in units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates one seat's round
func (s *Statistics) Add(result RoundResult) {
	units := result.Units
	s.Rounds++
	s.SumUnits += units
	s.SumUnits2 += units * units
	s.Values = append(s.Values, units)
	s.TotalNet += result.Net
	if result.Net > 0 {
		s.WinningRuns++
	}

	for _, o := range result.Outcomes {
		s.Hands++
		switch o {
		case blackjack.OutcomeWin:
			s.Wins++
		case blackjack.OutcomeLose:
			s.Losses++
		case blackjack.OutcomePush:
			s.Pushes++
		case blackjack.OutcomeBlackjack:
			s.Blackjacks++
		case blackjack.OutcomeSurrendered:
			s.Surrenders++
		}
	}
	s.Doubles += result.Doubled
	s.Splits += result.Splits

	if result.InsuranceTaken {
		s.InsuranceTaken++
		if result.InsurancePayout > 0 {
			s.InsuranceWon++
			s.InsurancePaid += result.InsurancePayout
		}
	}

	if seat := result.Seat; seat >= 0 && seat < MaxSeats {
		s.SeatResults[seat].Rounds++
		s.SeatResults[seat].SumUnits += units
		s.SeatResults[seat].SumNet += result.Net
	}
}

// Merge folds other into s. Used to combine tables simulated in parallel.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Values = append(s.Values, other.Values...)
	s.TotalNet += other.TotalNet
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Surrenders += other.Surrenders
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.WinningRuns += other.WinningRuns
	s.InsuranceTaken += other.InsuranceTaken
	s.InsuranceWon += other.InsuranceWon
	s.InsurancePaid += other.InsurancePaid
	s.Reshuffles += other.Reshuffles
	for i := range s.SeatResults {
		s.SeatResults[i].Rounds += other.SeatResults[i].Rounds
		s.SeatResults[i].SumUnits += other.SeatResults[i].SumUnits
		s.SeatResults[i].SumNet += other.SeatResults[i].SumNet
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result for a seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= MaxSeats {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Rounds == 0 {
		return 0
	}
	return ss.SumUnits / float64(ss.Rounds)
}

// HouseEdge returns the share of every chip risked on initial bets that the
// house kept, estimated from the mean in units.
func (s *Statistics) HouseEdge() float64 {
	return -s.Mean()
}

// Validate checks that the accumulated counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	outcomes := s.Wins + s.Losses + s.Pushes + s.Blackjacks + s.Surrenders
	if outcomes != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands (%d)", outcomes, s.Hands)
	}
	if s.Hands < s.Rounds {
		return fmt.Errorf("fewer hands (%d) than rounds (%d)", s.Hands, s.Rounds)
	}
	if s.InsuranceWon > s.InsuranceTaken {
		return fmt.Errorf("insurance won (%d) exceeds taken (%d)", s.InsuranceWon, s.InsuranceTaken)
	}

	seatRounds, seatNet := 0, 0
	for _, ss := range s.SeatResults {
		seatRounds += ss.Rounds
		seatNet += ss.SumNet
	}
	if seatRounds != s.Rounds {
		return fmt.Errorf("seat rounds total (%d) does not match rounds (%d)", seatRounds, s.Rounds)
	}
	if seatNet != s.TotalNet {
		return fmt.Errorf("seat net total (%d) does not match net (%d)", seatNet, s.TotalNet)
	}
	return nil
}
