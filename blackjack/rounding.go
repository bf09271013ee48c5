package blackjack

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode controls how fractional payouts become whole units.
type RoundingMode uint8

const (
	RoundUp RoundingMode = iota
	RoundDown
	RoundNearest
)

// String returns the configuration name of the mode
func (m RoundingMode) String() string {
	switch m {
	case RoundUp:
		return "up"
	case RoundDown:
		return "down"
	case RoundNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses "up", "down" or "nearest"
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "ceil":
		return RoundUp, nil
	case "down", "floor":
		return RoundDown, nil
	case "nearest", "round":
		return RoundNearest, nil
	default:
		return RoundDown, fmt.Errorf("unknown rounding mode %q", s)
	}
}

// Apply rounds amount to a whole number. Nearest rounds halves away from zero.
func (m RoundingMode) Apply(amount decimal.Decimal) int {
	var rounded decimal.Decimal
	switch m {
	case RoundUp:
		rounded = amount.Ceil()
	case RoundNearest:
		rounded = amount.Round(0)
	default:
		rounded = amount.Floor()
	}
	return int(rounded.IntPart())
}

// ScaledPayout multiplies amount by ratio and rounds the product with mode.
// Only the scaled portion is rounded; callers add any integral base
// themselves.
func ScaledPayout(amount int, ratio float64, mode RoundingMode) int {
	product := decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromFloat(ratio))
	return mode.Apply(product)
}

// SurrenderRefund is the half-bet returned on surrender.
func SurrenderRefund(bet int, mode RoundingMode) int {
	return ScaledPayout(bet, 0.5, mode)
}

// BlackjackBonus is the winnings on top of the returned stake for a natural.
func BlackjackBonus(bet int, ratio float64, mode RoundingMode) int {
	return ScaledPayout(bet, ratio, mode)
}
