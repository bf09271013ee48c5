package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
table {
  seed          = 42
  rounds        = 5000
  tables        = 4
  stall_timeout = "5s"
  log_level     = "debug"
}

rules {
  decks              = 6
  blackjack_pays     = 1.2
  stand_on_soft_17   = false
  double             = "9-11"
  surrender          = false
  rounding_blackjack = "up"
  penetration        = 0.8
}

seat "alice" {
  kind = "human"
}

seat "chart" {
  kind  = "basic"
  stake = 5000
  unit  = 25
}

seat "chaos" {
  kind = "random"
}
`

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]byte(sampleConfig), "table.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint64(42), cfg.Table.Seed)
	assert.Equal(t, 5000, cfg.Table.Rounds)
	assert.Equal(t, 4, cfg.Table.Tables)
	assert.Equal(t, 5*time.Second, cfg.Table.StallTimeoutDuration())
	assert.Equal(t, "debug", cfg.Table.LogLevel)

	require.Len(t, cfg.Seats, 3)
	assert.Equal(t, "alice", cfg.Seats[0].Name)
	assert.Equal(t, 1000, cfg.Seats[0].Stake)
	assert.Equal(t, 10, cfg.Seats[0].Unit)
	assert.Equal(t, 25, cfg.Seats[1].Unit)
	assert.Len(t, cfg.BotSeats(), 2)

	rules, err := cfg.Rules.ToRules()
	require.NoError(t, err)
	assert.Equal(t, 6, rules.Decks)
	assert.Equal(t, 1.2, rules.BlackjackPays)
	assert.False(t, rules.StandOnSoft17)
	assert.Equal(t, blackjack.DoubleNineThroughEleven, rules.Double)
	assert.False(t, rules.Surrender)
	assert.Equal(t, blackjack.RoundUp, rules.RoundingBlackjack)
	assert.Equal(t, 0.8, rules.Penetration)

	// Untouched attributes keep the house defaults
	defaults := blackjack.DefaultRules()
	assert.Equal(t, defaults.MaxSplits, rules.MaxSplits)
	assert.Equal(t, defaults.Insurance, rules.Insurance)
	assert.Equal(t, defaults.RoundingSurrender, rules.RoundingSurrender)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultConfig(), cfg)

	rules, err := cfg.Rules.ToRules()
	require.NoError(t, err)
	assert.Equal(t, blackjack.DefaultRules(), rules)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Seats, 3)
}

func TestLoadConfigReportsDiagnostics(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig([]byte(`table { rounds = `), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = ParseConfig([]byte(`rules { decks = "many" }`), "typed.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")

	_, err = ParseConfig([]byte(`croupier {}`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad decks", `rules { decks = 0 }`, "decks must be between"},
		{"bad double", `rules { double = "soft" }`, "unknown double rule"},
		{"bad rounding", `rules { rounding_surrender = "banker" }`, "rounding_surrender"},
		{"no seats", `table { rounds = 10 }`, "at least one seat"},
		{"bad kind", `seat "x" { kind = "counter" }`, "invalid kind"},
		{"two humans", `
seat "a" { kind = "human" }
seat "b" { kind = "human" }`, "at most one human"},
		{"duplicate", `
seat "a" {}
seat "a" {}`, "duplicate name"},
		{"negative stake", `seat "a" { stake = -5 }`, "stake must be positive"},
		{"bad timeout", `
table { stall_timeout = "soon" }
seat "a" {}`, "stall_timeout"},
		{"too many seats", `
seat "a" {}
seat "b" {}
seat "c" {}
seat "d" {}
seat "e" {}
seat "f" {}
seat "g" {}
seat "h" {}`, "at most 7 seats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
