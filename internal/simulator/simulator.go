package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrStalled is returned when a table makes no progress within the stall
// timeout.
var ErrStalled = errors.New("table stalled")

// Seat describes one player at every simulated table.
type Seat struct {
	Name  string
	Kind  string // Agent kind understood by bot.New
	Stake int
	Unit  int

	// Agent overrides Kind when set. It is shared by every table, so it must
	// be safe for concurrent use when Tables > 1.
	Agent bot.Agent
}

// Config holds configuration for running simulations
type Config struct {
	Rules        blackjack.Rules
	Seats        []Seat
	Rounds       int // Rounds per table
	Tables       int
	Parallelism  int // Tables simulated at once, 0 for one per table
	Seed         uint64
	StallTimeout time.Duration // Longest a table may go without finishing a round, 0 disables
	Clock        quartz.Clock
	Logger       *log.Logger
}

// Report is the outcome of a simulation
type Report struct {
	Stats        *statistics.Statistics
	Seats        []SeatReport
	Tables       int
	RoundsPlayed int
	Elapsed      time.Duration
}

// SeatReport summarises one seat across every table
type SeatReport struct {
	Name  string
	Kind  string
	Net   int
	Mean  float64
	Final []int // Balance at the end of each table
}

// Simulator runs blackjack tables with bot seats
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	s := &Simulator{config: config, logger: config.Logger, clock: config.Clock}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.WithPrefix("simulator")
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.config.Tables <= 0 {
		s.config.Tables = 1
	}
	return s
}

// Validate checks the configuration before anything is dealt
func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if len(c.Seats) == 0 {
		return errors.New("at least one seat is required")
	}
	if len(c.Seats) > statistics.MaxSeats {
		return fmt.Errorf("at most %d seats are supported, got %d", statistics.MaxSeats, len(c.Seats))
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	for i, seat := range c.Seats {
		if seat.Stake <= 0 || seat.Unit <= 0 {
			return fmt.Errorf("seat %d: stake and unit must be positive", i)
		}
		if seat.Agent == nil {
			if _, err := bot.New(seat.Kind, seat.Unit, randutil.New(0), nil); err != nil {
				return fmt.Errorf("seat %d: %w", i, err)
			}
		}
	}
	return nil
}

// Run simulates every table and merges the results
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	start := s.clock.Now()
	tables := make([]*tableResult, s.config.Tables)

	g, ctx := errgroup.WithContext(ctx)
	if s.config.Parallelism > 0 {
		g.SetLimit(s.config.Parallelism)
	}
	for i := range tables {
		g.Go(func() error {
			res, err := s.runTable(ctx, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			tables[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Stats:  &statistics.Statistics{},
		Tables: len(tables),
		Seats:  make([]SeatReport, len(s.config.Seats)),
	}
	for i, seat := range s.config.Seats {
		report.Seats[i] = SeatReport{Name: seat.Name, Kind: seat.Kind}
	}
	for _, t := range tables {
		report.Stats.Merge(t.stats)
		report.RoundsPlayed += t.rounds
		for i, final := range t.finals {
			report.Seats[i].Final = append(report.Seats[i].Final, final)
			report.Seats[i].Net += final - s.config.Seats[i].Stake
		}
	}
	for i := range report.Seats {
		report.Seats[i].Mean = report.Stats.SeatMean(i)
	}
	report.Elapsed = s.clock.Since(start)

	if report.RoundsPlayed > 0 {
		if err := report.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	s.logger.Info("simulation complete",
		"tables", report.Tables,
		"rounds", report.RoundsPlayed,
		"mean", report.Stats.Mean(),
		"elapsed", report.Elapsed)
	return report, nil
}

type tableResult struct {
	stats  *statistics.Statistics
	rounds int
	finals []int
}

type seated struct {
	id    game.PlayerID
	seat  int
	unit  int
	agent bot.Agent
}

// runTable plays up to Rounds rounds at one table. A watchdog cancels the
// table if a round takes longer than StallTimeout. The round in progress
// notices at its next step: after betting, between player decisions and
// before the dealer plays.
func (s *Simulator) runTable(ctx context.Context, table int) (*tableResult, error) {
	seed := s.config.Seed + uint64(table)
	logger := s.logger.With("table", table, "seed", seed)
	g := game.NewGame(s.config.Rules, seed, game.WithLogger(logger))

	players := make([]seated, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		agent := seat.Agent
		if agent == nil {
			var err error
			agent, err = bot.New(seat.Kind, seat.Unit, randutil.New(seed^uint64(i+1)<<32), logger)
			if err != nil {
				return nil, err
			}
		}
		players[i] = seated{id: g.Join(seat.Stake), seat: i, unit: seat.Unit, agent: agent}
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var watchdog *quartz.Timer
	if s.config.StallTimeout > 0 {
		watchdog = s.clock.AfterFunc(s.config.StallTimeout, func() {
			cancel(ErrStalled)
		}, "watchdog")
		defer watchdog.Stop()
	}

	res := &tableResult{stats: &statistics.Statistics{}}
	for round := 0; round < s.config.Rounds; round++ {
		if err := context.Cause(ctx); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}

		played, err := s.playRound(ctx, g, players, seed, res.stats)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if !played {
			logger.Info("no seat can cover a bet, table closed", "round", round)
			break
		}
		res.rounds++

		if watchdog != nil {
			watchdog.Reset(s.config.StallTimeout, "watchdog")
		}
	}

	for _, p := range players {
		money, _ := g.Money(p.id)
		res.finals = append(res.finals, money)
	}
	return res, nil
}

// playRound drives one round end to end and records a result per bettor. It
// reports false when nobody placed a bet. A cancelled ctx abandons the round.
func (s *Simulator) playRound(ctx context.Context, g *game.Game, players []seated, seed uint64, stats *statistics.Statistics) (bool, error) {
	reshuffled, err := g.CheckAndReshuffle()
	if err != nil {
		return false, err
	}
	// With penetration disabled the shoe could empty mid-round
	if !reshuffled && g.CardsRemaining() < game.MinRoundCards(len(players)) {
		if err := g.Reshuffle(); err != nil {
			return false, err
		}
		reshuffled = true
	}
	if reshuffled {
		stats.Reshuffles++
	}

	g.StartBetting()
	before := make(map[game.PlayerID]int, len(players))
	bets := make(map[game.PlayerID]int, len(players))
	for _, p := range players {
		before[p.id], _ = g.Money(p.id)
		amount, err := bot.PlaceBet(g, p.id, p.agent)
		if err != nil {
			return false, fmt.Errorf("seat %d: %w", p.seat, err)
		}
		if amount > 0 {
			bets[p.id] = amount
		}
	}
	if len(bets) == 0 {
		g.ClearRound()
		return false, nil
	}
	if err := context.Cause(ctx); err != nil {
		return false, err
	}

	if err := g.Deal(); err != nil {
		if !errors.Is(err, game.DealNotEnoughCards) {
			return false, err
		}
		// A failed deal leaves the table in Betting, where a reshuffle is legal
		if err := g.Reshuffle(); err != nil {
			return false, err
		}
		stats.Reshuffles++
		if err := g.Deal(); err != nil {
			return false, err
		}
	}

	if g.IsInsuranceOffered() {
		for _, p := range players {
			if _, ok := bets[p.id]; !ok {
				continue
			}
			if _, err := bot.DecideInsurance(g, p.id, p.agent); err != nil {
				return false, fmt.Errorf("seat %d: %w", p.seat, err)
			}
		}
		if _, err := g.FinishInsurance(); err != nil {
			return false, err
		}
	}

	agents := make(map[game.PlayerID]seated, len(players))
	for _, p := range players {
		agents[p.id] = p
	}
	for g.State() == game.PlayerTurn {
		if err := context.Cause(ctx); err != nil {
			return false, err
		}
		id, ok := g.CurrentPlayer()
		if !ok {
			return false, errors.New("player turn without a current player")
		}
		if _, err := bot.Play(g, id, agents[id].agent); err != nil {
			return false, fmt.Errorf("seat %d: %w", agents[id].seat, err)
		}
	}

	if g.State() == game.DealerTurn {
		if err := context.Cause(ctx); err != nil {
			return false, err
		}
		if _, err := g.DealerPlay(); err != nil {
			return false, err
		}
	}

	hands := make(map[game.PlayerID][]blackjack.Hand, len(bets))
	for id := range bets {
		hands[id], _ = g.Hands(id)
	}

	result, err := g.Showdown()
	if err != nil {
		return false, err
	}

	delta := 0
	for _, p := range players {
		after, _ := g.Money(p.id)
		delta += after - before[p.id]
	}
	if delta != result.TotalNet() {
		return false, fmt.Errorf("money not conserved: balances moved %d, results net %d", delta, result.TotalNet())
	}

	for _, pr := range result.Players {
		p := agents[pr.PlayerID]
		rr := statistics.RoundResult{
			Net:             pr.Net,
			Units:           float64(pr.Net) / float64(p.unit),
			Seed:            seed,
			Seat:            p.seat,
			Splits:          len(pr.Hands) - 1,
			InsuranceTaken:  pr.InsuranceBet > 0,
			InsurancePayout: pr.InsurancePayout,
		}
		for i, hr := range pr.Hands {
			rr.Outcomes = append(rr.Outcomes, hr.Outcome)
			if i < len(hands[pr.PlayerID]) && hands[pr.PlayerID][i].Bet() > bets[pr.PlayerID] {
				rr.Doubled++
			}
		}
		stats.Add(rr)
	}

	g.ClearRound()
	return true, nil
}

// Summary renders a human readable report
func Summary(r *Report) string {
	stats := r.Stats
	var b strings.Builder

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(&b, "\n=== RESULTS (%d tables, %d rounds, %s) ===\n", r.Tables, r.RoundsPlayed, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "Mean: %.4f units/round\n", stats.Mean())
	fmt.Fprintf(&b, "Median: %.4f units/round\n", stats.Median())
	fmt.Fprintf(&b, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(&b, "Std Error: %.4f units\n", stats.StdError())
	fmt.Fprintf(&b, "95%% CI: [%.4f, %.4f] units/round\n", low, high)
	fmt.Fprintf(&b, "House edge: %.2f%%\n", stats.HouseEdge()*100)

	fmt.Fprintf(&b, "\n=== HAND OUTCOMES ===\n")
	if stats.Hands > 0 {
		pct := func(n int) float64 { return float64(n) / float64(stats.Hands) * 100 }
		fmt.Fprintf(&b, "Hands: %d\n", stats.Hands)
		fmt.Fprintf(&b, "Win %.1f%%  Lose %.1f%%  Push %.1f%%  Blackjack %.1f%%  Surrender %.1f%%\n",
			pct(stats.Wins), pct(stats.Losses), pct(stats.Pushes), pct(stats.Blackjacks), pct(stats.Surrenders))
	}
	fmt.Fprintf(&b, "Doubles: %d  Splits: %d  Reshuffles: %d\n", stats.Doubles, stats.Splits, stats.Reshuffles)
	fmt.Fprintf(&b, "Insurance: %d taken, %d won, %d paid\n", stats.InsuranceTaken, stats.InsuranceWon, stats.InsurancePaid)

	fmt.Fprintf(&b, "\n=== SEATS ===\n")
	for i, seat := range r.Seats {
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("seat %d", i)
		}
		fmt.Fprintf(&b, "%s (%s): net %+d, %.4f units/round\n", name, seat.Kind, seat.Net, seat.Mean)
	}
	return b.String()
}
