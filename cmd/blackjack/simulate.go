package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/cmd/blackjack/shared"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/fileutil"
	"github.com/lox/blackjackforbots/internal/simulator"
)

// SimulateCmd plays bot seats against each other for many rounds
type SimulateCmd struct {
	Rounds      int      `help:"Rounds per table, overrides the config"`
	Tables      int      `help:"Independent tables, overrides the config"`
	Parallelism int      `help:"Tables simulated at once (0 for all)"`
	Seed        uint64   `help:"Base seed, 0 picks one at random" env:"BLACKJACK_SEED"`
	Seat        []string `help:"Bot seat as kind[:stake[:unit]], repeatable, replaces configured seats"`
	Out         string   `help:"Write a JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules.ToRules()
	if err != nil {
		return err
	}
	logger, err := shared.SetupLogger(cfg.Table.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	seats, err := c.seats(cfg)
	if err != nil {
		return err
	}

	sc := simulator.Config{
		Rules:        rules,
		Seats:        seats,
		Rounds:       cfg.Table.Rounds,
		Tables:       cfg.Table.Tables,
		Parallelism:  cfg.Table.Parallelism,
		Seed:         pickSeed(c.Seed, cfg.Table.Seed),
		StallTimeout: cfg.Table.StallTimeoutDuration(),
		Logger:       logger,
	}
	if c.Rounds > 0 {
		sc.Rounds = c.Rounds
	}
	if c.Tables > 0 {
		sc.Tables = c.Tables
	}
	if c.Parallelism > 0 {
		sc.Parallelism = c.Parallelism
	}

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	logger.Info("starting simulation", "seats", len(sc.Seats), "tables", sc.Tables, "rounds", sc.Rounds, "seed", sc.Seed)
	report, err := simulator.New(sc).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(simulator.Summary(report))

	if c.Out != "" {
		if err := fileutil.WriteJSONAtomic(c.Out, newReportFile(report, rules, sc.Seed)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", c.Out)
	}
	return nil
}

// seats returns the --seat flags when given, otherwise every configured bot
// seat. Human seats are skipped since nobody is at the keyboard.
func (c *SimulateCmd) seats(cfg *config.Config) ([]simulator.Seat, error) {
	var seats []simulator.Seat
	if len(c.Seat) > 0 {
		for i, arg := range c.Seat {
			seat, err := parseSeat(arg)
			if err != nil {
				return nil, err
			}
			seat.Name = fmt.Sprintf("%s-%d", seat.Kind, i+1)
			seats = append(seats, seat)
		}
		return seats, nil
	}

	for _, seat := range cfg.BotSeats() {
		seats = append(seats, simulator.Seat{Name: seat.Name, Kind: seat.Kind, Stake: seat.Stake, Unit: seat.Unit})
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("no bot seats configured, add one with --seat basic")
	}
	return seats, nil
}

// parseSeat parses kind[:stake[:unit]]
func parseSeat(arg string) (simulator.Seat, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 3 || parts[0] == "" {
		return simulator.Seat{}, fmt.Errorf("invalid seat %q, want kind[:stake[:unit]]", arg)
	}
	seat := simulator.Seat{Kind: parts[0], Stake: 1000, Unit: 10}
	if len(parts) > 1 {
		stake, err := strconv.Atoi(parts[1])
		if err != nil {
			return simulator.Seat{}, fmt.Errorf("seat %q: invalid stake: %w", arg, err)
		}
		seat.Stake = stake
	}
	if len(parts) > 2 {
		unit, err := strconv.Atoi(parts[2])
		if err != nil {
			return simulator.Seat{}, fmt.Errorf("seat %q: invalid unit: %w", arg, err)
		}
		seat.Unit = unit
	}
	return seat, nil
}

// reportFile is the JSON written by --out
type reportFile struct {
	Seed       uint64         `json:"seed"`
	Tables     int            `json:"tables"`
	Rounds     int            `json:"rounds"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	Rules      map[string]any `json:"rules"`
	Mean       float64        `json:"mean_units"`
	StdDev     float64        `json:"stddev_units"`
	StdError   float64        `json:"stderr_units"`
	CI95       [2]float64     `json:"ci95_units"`
	HouseEdge  float64        `json:"house_edge"`
	TotalNet   int            `json:"total_net"`
	Outcomes   map[string]int `json:"outcomes"`
	Doubles    int            `json:"doubles"`
	Splits     int            `json:"splits"`
	Insurance  map[string]int `json:"insurance"`
	Reshuffles int            `json:"reshuffles"`
	Seats      []seatReport   `json:"seats"`
}

type seatReport struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Net   int     `json:"net"`
	Mean  float64 `json:"mean_units"`
	Final []int   `json:"final"`
}

func newReportFile(r *simulator.Report, rules blackjack.Rules, seed uint64) reportFile {
	s := r.Stats
	low, high := s.ConfidenceInterval95()
	out := reportFile{
		Seed:      seed,
		Tables:    r.Tables,
		Rounds:    r.RoundsPlayed,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Rules:     rulesMap(rules),
		Mean:      s.Mean(),
		StdDev:    s.StdDev(),
		StdError:  s.StdError(),
		CI95:      [2]float64{low, high},
		HouseEdge: s.HouseEdge(),
		TotalNet:  s.TotalNet,
		Outcomes: map[string]int{
			blackjack.OutcomeWin.String():         s.Wins,
			blackjack.OutcomeLose.String():        s.Losses,
			blackjack.OutcomePush.String():        s.Pushes,
			blackjack.OutcomeBlackjack.String():   s.Blackjacks,
			blackjack.OutcomeSurrendered.String(): s.Surrenders,
		},
		Doubles: s.Doubles,
		Splits:  s.Splits,
		Insurance: map[string]int{
			"taken": s.InsuranceTaken,
			"won":   s.InsuranceWon,
			"paid":  s.InsurancePaid,
		},
		Reshuffles: s.Reshuffles,
	}
	for _, seat := range r.Seats {
		out.Seats = append(out.Seats, seatReport(seat))
	}
	return out
}
