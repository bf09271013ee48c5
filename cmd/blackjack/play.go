package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjackforbots/cmd/blackjack/shared"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/tui"
)

// PlayCmd seats you at a table with the configured bots
type PlayCmd struct {
	Name    string `help:"Your name at the table" default:"you"`
	Stake   int    `help:"Your starting balance, overrides the human seat in the config"`
	Seed    uint64 `help:"Shoe seed, 0 picks one at random" env:"BLACKJACK_SEED"`
	NoColor bool   `help:"Disable colour output" env:"NO_COLOR"`
	LogFile string `help:"Write engine logs to this file" type:"path"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules.ToRules()
	if err != nil {
		return err
	}

	// The table owns the terminal, so logs only go to a file when asked
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := shared.SetupLogger(cfg.Table.LogLevel, out)
	if err != nil {
		return err
	}

	seed := pickSeed(c.Seed, cfg.Table.Seed)
	logger.Info("opening table", "seed", seed, "decks", rules.Decks)
	g := game.NewGame(rules, seed, game.WithLogger(logger))

	stake := c.Stake
	var seats []tui.Seat
	for i, seat := range cfg.Seats {
		if seat.Kind == config.HumanKind {
			if stake == 0 {
				stake = seat.Stake
			}
			continue
		}
		agent, err := bot.New(seat.Kind, seat.Unit, randutil.New(seed^uint64(i+1)<<32), logger)
		if err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		seats = append(seats, tui.Seat{Name: seat.Name, Stake: seat.Stake, Agent: agent})
	}
	if stake <= 0 {
		stake = 1000
	}

	table := tui.NewTable(g, c.Name, stake, seats, logger)
	table.Start()

	tui.ConfigureColor(c.NoColor)
	program := tea.NewProgram(tui.New(table, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run table: %w", err)
	}

	money, _ := g.Money(table.Human())
	fmt.Printf("You leave the table with %d (%+d)\n", money, money-stake)
	return nil
}

func pickSeed(flag, configured uint64) uint64 {
	switch {
	case flag != 0:
		return flag
	case configured != 0:
		return configured
	default:
		return randutil.NewSeed()
	}
}

