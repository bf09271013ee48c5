package blackjack

import (
	"fmt"
	"strings"
)

// DoubleRule restricts which two-card totals may be doubled.
type DoubleRule uint8

const (
	DoubleAny DoubleRule = iota
	DoubleNineOrTen
	DoubleNineThroughEleven
	DoubleNineThroughFifteen
	DoubleNone
)

// Allows reports whether a hand totalling value may double down.
func (r DoubleRule) Allows(value int) bool {
	switch r {
	case DoubleAny:
		return true
	case DoubleNineOrTen:
		return value == 9 || value == 10
	case DoubleNineThroughEleven:
		return value >= 9 && value <= 11
	case DoubleNineThroughFifteen:
		return value >= 9 && value <= 15
	default:
		return false
	}
}

// String returns the configuration name of the rule
func (r DoubleRule) String() string {
	switch r {
	case DoubleAny:
		return "any"
	case DoubleNineOrTen:
		return "9-10"
	case DoubleNineThroughEleven:
		return "9-11"
	case DoubleNineThroughFifteen:
		return "9-15"
	case DoubleNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseDoubleRule parses the names produced by DoubleRule.String
func ParseDoubleRule(s string) (DoubleRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "":
		return DoubleAny, nil
	case "9-10", "nine-or-ten":
		return DoubleNineOrTen, nil
	case "9-11", "nine-through-eleven":
		return DoubleNineThroughEleven, nil
	case "9-15", "nine-through-fifteen":
		return DoubleNineThroughFifteen, nil
	case "none", "never":
		return DoubleNone, nil
	default:
		return DoubleAny, fmt.Errorf("unknown double rule %q", s)
	}
}

// Rules is the immutable table configuration every engine decision reads.
type Rules struct {
	Decks                   int
	BlackjackPays           float64
	StandOnSoft17           bool
	Double                  DoubleRule
	MaxSplits               int
	DoubleAfterSplit        bool
	SplitAcesOnlyOnce       bool
	SplitAcesReceiveOneCard bool
	Surrender               bool
	Insurance               bool
	RoundingBlackjack       RoundingMode
	RoundingSurrender       RoundingMode
	// Penetration is the dealt share of the shoe that triggers a reshuffle.
	// Zero disables reshuffling.
	Penetration float64
}

// RuleOption adjusts Rules during construction.
type RuleOption func(*Rules)

// DefaultRules returns the house defaults: two decks, 3:2 blackjack, dealer
// stands on soft 17, double on anything, up to three splits.
func DefaultRules() Rules {
	return Rules{
		Decks:                   2,
		BlackjackPays:           1.5,
		StandOnSoft17:           true,
		Double:                  DoubleAny,
		MaxSplits:               3,
		DoubleAfterSplit:        true,
		SplitAcesOnlyOnce:       true,
		SplitAcesReceiveOneCard: true,
		Surrender:               true,
		Insurance:               true,
		RoundingBlackjack:       RoundDown,
		RoundingSurrender:       RoundNearest,
		Penetration:             0.75,
	}
}

// NewRules returns DefaultRules with opts applied in order.
func NewRules(opts ...RuleOption) Rules {
	r := DefaultRules()
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// With returns a copy of r with opts applied.
func (r Rules) With(opts ...RuleOption) Rules {
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Validate checks the rules are internally consistent
func (r Rules) Validate() error {
	if r.Decks < 1 || r.Decks > 255 {
		return fmt.Errorf("decks must be between 1 and 255, got %d", r.Decks)
	}
	if r.BlackjackPays < 0 {
		return fmt.Errorf("blackjack payout must not be negative, got %v", r.BlackjackPays)
	}
	if r.MaxSplits < 0 {
		return fmt.Errorf("max splits must not be negative, got %d", r.MaxSplits)
	}
	if r.Penetration < 0 || r.Penetration > 1 {
		return fmt.Errorf("penetration must be between 0 and 1, got %v", r.Penetration)
	}
	return nil
}

// String summarises the rules on one line
func (r Rules) String() string {
	soft17 := "H17"
	if r.StandOnSoft17 {
		soft17 = "S17"
	}
	return fmt.Sprintf("%dD %s BJ %.2f double=%s splits=%d DAS=%t RSA=%t surrender=%t insurance=%t pen=%.2f",
		r.Decks, soft17, r.BlackjackPays, r.Double, r.MaxSplits, r.DoubleAfterSplit,
		!r.SplitAcesOnlyOnce, r.Surrender, r.Insurance, r.Penetration)
}

// Option Functions

// WithDecks sets the number of decks in the shoe.
func WithDecks(decks int) RuleOption {
	return func(r *Rules) { r.Decks = decks }
}

// WithBlackjackPays sets the natural payout ratio (1.5 for 3:2, 1.2 for 6:5).
func WithBlackjackPays(ratio float64) RuleOption {
	return func(r *Rules) { r.BlackjackPays = ratio }
}

// WithStandOnSoft17 sets whether the dealer stands on soft 17.
func WithStandOnSoft17(stand bool) RuleOption {
	return func(r *Rules) { r.StandOnSoft17 = stand }
}

// WithDouble sets the double-down eligibility rule.
func WithDouble(rule DoubleRule) RuleOption {
	return func(r *Rules) { r.Double = rule }
}

// WithMaxSplits sets how many times a player may split in one round.
func WithMaxSplits(n int) RuleOption {
	return func(r *Rules) { r.MaxSplits = n }
}

// WithDoubleAfterSplit sets whether split hands may double down.
func WithDoubleAfterSplit(allowed bool) RuleOption {
	return func(r *Rules) { r.DoubleAfterSplit = allowed }
}

// WithSplitAcesOnlyOnce sets whether a hand from split aces may be split again.
func WithSplitAcesOnlyOnce(onlyOnce bool) RuleOption {
	return func(r *Rules) { r.SplitAcesOnlyOnce = onlyOnce }
}

// WithSplitAcesReceiveOneCard sets whether split aces stand after one card.
func WithSplitAcesReceiveOneCard(oneCard bool) RuleOption {
	return func(r *Rules) { r.SplitAcesReceiveOneCard = oneCard }
}

// WithSurrender sets whether late surrender is offered.
func WithSurrender(allowed bool) RuleOption {
	return func(r *Rules) { r.Surrender = allowed }
}

// WithInsurance sets whether insurance is offered against a dealer ace.
func WithInsurance(offered bool) RuleOption {
	return func(r *Rules) { r.Insurance = offered }
}

// WithRoundingBlackjack sets how fractional natural payouts are rounded.
func WithRoundingBlackjack(mode RoundingMode) RuleOption {
	return func(r *Rules) { r.RoundingBlackjack = mode }
}

// WithRoundingSurrender sets how fractional surrender refunds are rounded.
func WithRoundingSurrender(mode RoundingMode) RuleOption {
	return func(r *Rules) { r.RoundingSurrender = mode }
}

// WithPenetration sets the reshuffle threshold. Zero disables reshuffling.
func WithPenetration(p float64) RuleOption {
	return func(r *Rules) { r.Penetration = p }
}
