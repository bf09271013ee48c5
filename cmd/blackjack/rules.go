package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjackforbots/blackjack"
)

// RulesCmd prints the rules a table would be opened with
type RulesCmd struct {
	JSON bool `help:"Print as JSON"`
}

func (c *RulesCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules.ToRules()
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rulesMap(rules))
	}
	fmt.Println(rulesTable(rules))
	return nil
}

// ruleRows lists the rules in display order
func ruleRows(r blackjack.Rules) [][2]string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	dealer := "hits soft 17"
	if r.StandOnSoft17 {
		dealer = "stands on soft 17"
	}
	return [][2]string{
		{"decks", strconv.Itoa(r.Decks)},
		{"blackjack_pays", strconv.FormatFloat(r.BlackjackPays, 'f', -1, 64)},
		{"dealer", dealer},
		{"double", r.Double.String()},
		{"max_splits", strconv.Itoa(r.MaxSplits)},
		{"double_after_split", yesNo(r.DoubleAfterSplit)},
		{"split_aces_only_once", yesNo(r.SplitAcesOnlyOnce)},
		{"split_aces_receive_one_card", yesNo(r.SplitAcesReceiveOneCard)},
		{"surrender", yesNo(r.Surrender)},
		{"insurance", yesNo(r.Insurance)},
		{"rounding_blackjack", r.RoundingBlackjack.String()},
		{"rounding_surrender", r.RoundingSurrender.String()},
		{"penetration", strconv.FormatFloat(r.Penetration, 'f', -1, 64)},
	}
}

func rulesTable(r blackjack.Rules) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers("Rule", "Value")
	for _, row := range ruleRows(r) {
		t.Row(row[0], row[1])
	}
	return t.Render()
}

func rulesMap(r blackjack.Rules) map[string]any {
	return map[string]any{
		"decks":                       r.Decks,
		"blackjack_pays":              r.BlackjackPays,
		"stand_on_soft_17":            r.StandOnSoft17,
		"double":                      r.Double.String(),
		"max_splits":                  r.MaxSplits,
		"double_after_split":          r.DoubleAfterSplit,
		"split_aces_only_once":        r.SplitAcesOnlyOnce,
		"split_aces_receive_one_card": r.SplitAcesReceiveOneCard,
		"surrender":                   r.Surrender,
		"insurance":                   r.Insurance,
		"rounding_blackjack":          r.RoundingBlackjack.String(),
		"rounding_surrender":          r.RoundingSurrender.String(),
		"penetration":                 r.Penetration,
	}
}
