// Package config loads table, rules and seat settings from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/statistics"
)

// HumanKind marks the seat driven from the terminal in play mode.
const HumanKind = "human"

// Config represents a complete table configuration
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Rules *RulesConfig   `hcl:"rules,block"`
	Seats []SeatConfig   `hcl:"seat,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Seed         uint64 `hcl:"seed,optional"`
	Rounds       int    `hcl:"rounds,optional"`
	Tables       int    `hcl:"tables,optional"`
	Parallelism  int    `hcl:"parallelism,optional"`
	StallTimeout string `hcl:"stall_timeout,optional"`
	LogLevel     string `hcl:"log_level,optional"`
}

// RulesConfig overrides house rules. Unset attributes keep the defaults.
type RulesConfig struct {
	Decks                   *int     `hcl:"decks,optional"`
	BlackjackPays           *float64 `hcl:"blackjack_pays,optional"`
	StandOnSoft17           *bool    `hcl:"stand_on_soft_17,optional"`
	Double                  *string  `hcl:"double,optional"`
	MaxSplits               *int     `hcl:"max_splits,optional"`
	DoubleAfterSplit        *bool    `hcl:"double_after_split,optional"`
	SplitAcesOnlyOnce       *bool    `hcl:"split_aces_only_once,optional"`
	SplitAcesReceiveOneCard *bool    `hcl:"split_aces_receive_one_card,optional"`
	Surrender               *bool    `hcl:"surrender,optional"`
	Insurance               *bool    `hcl:"insurance,optional"`
	RoundingBlackjack       *string  `hcl:"rounding_blackjack,optional"`
	RoundingSurrender       *string  `hcl:"rounding_surrender,optional"`
	Penetration             *float64 `hcl:"penetration,optional"`
}

// SeatConfig defines one seat at the table
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Kind  string `hcl:"kind,optional"`
	Stake int    `hcl:"stake,optional"`
	Unit  int    `hcl:"unit,optional"`
}

// DefaultConfig returns a single human seat against a basic strategy bot
func DefaultConfig() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "you", Kind: HumanKind},
			{Name: "chart", Kind: "basic"},
		},
	}
	c.applyDefaults()
	return c
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	return decode(file, diags)
}

// ParseConfig decodes HCL source held in memory. The filename is only used
// in diagnostics.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	return decode(file, diags)
}

func decode(file *hcl.File, diags hcl.Diagnostics) (*Config, error) {
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.Table.Rounds == 0 {
		c.Table.Rounds = 1000
	}
	if c.Table.Tables == 0 {
		c.Table.Tables = 1
	}
	if c.Table.StallTimeout == "" {
		c.Table.StallTimeout = "30s"
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = "info"
	}

	for i := range c.Seats {
		if c.Seats[i].Kind == "" {
			c.Seats[i].Kind = "basic"
		}
		if c.Seats[i].Stake == 0 {
			c.Seats[i].Stake = 1000
		}
		if c.Seats[i].Unit == 0 {
			c.Seats[i].Unit = 10
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	rules, err := c.Rules.ToRules()
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	if c.Table.Rounds <= 0 {
		return fmt.Errorf("table: rounds must be positive, got %d", c.Table.Rounds)
	}
	if c.Table.Tables <= 0 {
		return fmt.Errorf("table: tables must be positive, got %d", c.Table.Tables)
	}
	if c.Table.Parallelism < 0 {
		return fmt.Errorf("table: parallelism must not be negative, got %d", c.Table.Parallelism)
	}
	if _, err := time.ParseDuration(c.Table.StallTimeout); err != nil {
		return fmt.Errorf("table: invalid stall_timeout: %w", err)
	}

	if len(c.Seats) == 0 {
		return fmt.Errorf("at least one seat must be configured")
	}
	if len(c.Seats) > statistics.MaxSeats {
		return fmt.Errorf("at most %d seats are supported, got %d", statistics.MaxSeats, len(c.Seats))
	}

	validKinds := map[string]bool{HumanKind: true}
	for _, kind := range bot.Kinds {
		validKinds[kind] = true
	}
	humans := 0
	seen := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if seen[seat.Name] {
			return fmt.Errorf("seat %s: duplicate name", seat.Name)
		}
		seen[seat.Name] = true
		if !validKinds[seat.Kind] {
			return fmt.Errorf("seat %s: invalid kind %s", seat.Name, seat.Kind)
		}
		if seat.Kind == HumanKind {
			humans++
		}
		if seat.Stake <= 0 {
			return fmt.Errorf("seat %s: stake must be positive", seat.Name)
		}
		if seat.Unit <= 0 {
			return fmt.Errorf("seat %s: unit must be positive", seat.Name)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}
	return nil
}

// StallTimeoutDuration returns the parsed watchdog timeout, zero when unparseable
func (t *TableSettings) StallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(t.StallTimeout)
	return d
}

// BotSeats returns every seat not driven by a human
func (c *Config) BotSeats() []SeatConfig {
	var seats []SeatConfig
	for _, seat := range c.Seats {
		if seat.Kind != HumanKind {
			seats = append(seats, seat)
		}
	}
	return seats
}

// ToRules maps the configured overrides onto blackjack.DefaultRules
func (r *RulesConfig) ToRules() (blackjack.Rules, error) {
	rules := blackjack.DefaultRules()
	if r == nil {
		return rules, nil
	}

	var opts []blackjack.RuleOption
	if r.Decks != nil {
		opts = append(opts, blackjack.WithDecks(*r.Decks))
	}
	if r.BlackjackPays != nil {
		opts = append(opts, blackjack.WithBlackjackPays(*r.BlackjackPays))
	}
	if r.StandOnSoft17 != nil {
		opts = append(opts, blackjack.WithStandOnSoft17(*r.StandOnSoft17))
	}
	if r.Double != nil {
		rule, err := blackjack.ParseDoubleRule(*r.Double)
		if err != nil {
			return rules, fmt.Errorf("rules: %w", err)
		}
		opts = append(opts, blackjack.WithDouble(rule))
	}
	if r.MaxSplits != nil {
		opts = append(opts, blackjack.WithMaxSplits(*r.MaxSplits))
	}
	if r.DoubleAfterSplit != nil {
		opts = append(opts, blackjack.WithDoubleAfterSplit(*r.DoubleAfterSplit))
	}
	if r.SplitAcesOnlyOnce != nil {
		opts = append(opts, blackjack.WithSplitAcesOnlyOnce(*r.SplitAcesOnlyOnce))
	}
	if r.SplitAcesReceiveOneCard != nil {
		opts = append(opts, blackjack.WithSplitAcesReceiveOneCard(*r.SplitAcesReceiveOneCard))
	}
	if r.Surrender != nil {
		opts = append(opts, blackjack.WithSurrender(*r.Surrender))
	}
	if r.Insurance != nil {
		opts = append(opts, blackjack.WithInsurance(*r.Insurance))
	}
	if r.RoundingBlackjack != nil {
		mode, err := blackjack.ParseRoundingMode(*r.RoundingBlackjack)
		if err != nil {
			return rules, fmt.Errorf("rules: rounding_blackjack: %w", err)
		}
		opts = append(opts, blackjack.WithRoundingBlackjack(mode))
	}
	if r.RoundingSurrender != nil {
		mode, err := blackjack.ParseRoundingMode(*r.RoundingSurrender)
		if err != nil {
			return rules, fmt.Errorf("rules: rounding_surrender: %w", err)
		}
		opts = append(opts, blackjack.WithRoundingSurrender(mode))
	}
	if r.Penetration != nil {
		opts = append(opts, blackjack.WithPenetration(*r.Penetration))
	}
	return rules.With(opts...), nil
}
