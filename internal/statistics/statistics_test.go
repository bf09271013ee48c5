package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate())
}

func TestStatistics_SingleRound(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(RoundResult{
		Net:      15,
		Units:    1.5,
		Seat:     2,
		Outcomes: []blackjack.HandOutcome{blackjack.OutcomeBlackjack},
	})

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, 1.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 1.5, stats.Median())
	assert.Equal(t, 1, stats.Blackjacks)
	assert.Equal(t, 1, stats.WinningRuns)
	assert.Equal(t, 1.5, stats.SeatMean(2))
	assert.Zero(t, stats.SeatMean(0))
	assert.Zero(t, stats.SeatMean(MaxSeats))
	require.NoError(t, stats.Validate())
}

func TestStatistics_Moments(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for i, units := range []float64{1, -1, 1, -1, 0, 2} {
		stats.Add(RoundResult{
			Net:      int(units * 10),
			Units:    units,
			Seat:     i % 3,
			Outcomes: []blackjack.HandOutcome{blackjack.OutcomeWin},
		})
	}

	assert.InDelta(t, 2.0/6.0, stats.Mean(), 1e-9)
	// Sample variance of {1,-1,1,-1,0,2}
	mean := 2.0 / 6.0
	ss := 0.0
	for _, v := range []float64{1, -1, 1, -1, 0, 2} {
		ss += (v - mean) * (v - mean)
	}
	assert.InDelta(t, ss/5, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(ss/5)/math.Sqrt(6), stats.StdError(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
	assert.InDelta(t, -stats.Mean(), stats.HouseEdge(), 1e-12)

	assert.Equal(t, 0.5, stats.Median())
	assert.Equal(t, -1.0, stats.Percentile(0))
	assert.Equal(t, 2.0, stats.Percentile(1))
	require.NoError(t, stats.Validate())
}

func TestStatistics_Outcomes(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(RoundResult{
		Net:      0,
		Outcomes: []blackjack.HandOutcome{blackjack.OutcomeWin, blackjack.OutcomeLose},
		Splits:   1,
	})
	stats.Add(RoundResult{
		Net:      -5,
		Units:    -0.5,
		Outcomes: []blackjack.HandOutcome{blackjack.OutcomeSurrendered},
	})
	stats.Add(RoundResult{
		Net:             0,
		Outcomes:        []blackjack.HandOutcome{blackjack.OutcomeLose},
		InsuranceTaken:  true,
		InsurancePayout: 15,
	})
	stats.Add(RoundResult{
		Net:            20,
		Units:          2,
		Outcomes:       []blackjack.HandOutcome{blackjack.OutcomeWin},
		Doubled:        1,
		InsuranceTaken: true,
	})

	assert.Equal(t, 5, stats.Hands)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Surrenders)
	assert.Equal(t, 1, stats.Splits)
	assert.Equal(t, 1, stats.Doubles)
	assert.Equal(t, 2, stats.InsuranceTaken)
	assert.Equal(t, 1, stats.InsuranceWon)
	assert.Equal(t, 15, stats.InsurancePaid)
	assert.Equal(t, 15, stats.TotalNet)
	require.NoError(t, stats.Validate())
}

func TestStatistics_Merge(t *testing.T) {
	t.Parallel()

	a, b := &Statistics{}, &Statistics{}
	a.Add(RoundResult{Net: 10, Units: 1, Seat: 0, Outcomes: []blackjack.HandOutcome{blackjack.OutcomeWin}})
	b.Add(RoundResult{Net: -10, Units: -1, Seat: 1, Outcomes: []blackjack.HandOutcome{blackjack.OutcomeLose}})
	b.Reshuffles = 2

	a.Merge(b)
	assert.Equal(t, 2, a.Rounds)
	assert.Zero(t, a.Mean())
	assert.Equal(t, 2, a.Reshuffles)
	assert.Equal(t, 1, a.SeatResults[1].Rounds)
	assert.Len(t, a.Values, 2)
	require.NoError(t, a.Validate())
}

func TestStatistics_ValidateCatchesMismatch(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(RoundResult{Net: 10, Units: 1, Outcomes: []blackjack.HandOutcome{blackjack.OutcomeWin}})

	stats.Wins++
	assert.ErrorContains(t, stats.Validate(), "outcome total")
	stats.Wins--

	stats.TotalNet++
	assert.ErrorContains(t, stats.Validate(), "seat net total")
	stats.TotalNet--

	stats.Values = nil
	assert.ErrorContains(t, stats.Validate(), "values array length")
}
