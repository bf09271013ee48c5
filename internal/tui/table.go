package tui

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/snapshot"
)

// LineKind selects how a log line is styled
type LineKind uint8

const (
	LineInfo LineKind = iota
	LineHeader
	LineResult
	LineError
)

// Line is one entry in the table log
type Line struct {
	Kind LineKind
	Text string
}

// Seat is a bot sitting alongside the human
type Seat struct {
	Name  string
	Stake int
	Agent bot.Agent
}

// SeatInfo is a row in the sidebar
type SeatInfo struct {
	Name  string
	Money int
	Bet   int
	Human bool
}

type botSeat struct {
	id    game.PlayerID
	name  string
	agent bot.Agent
}

// Table runs rounds for one human seat. Bots act on their own whenever the
// turn reaches them, so after each command the table is either waiting on
// the human or between rounds.
type Table struct {
	game   *game.Game
	logger *log.Logger

	human game.PlayerID
	names map[game.PlayerID]string
	bots  []botSeat
	lines []Line

	botsInsured bool
	result      *blackjack.RoundResult
	over        bool
}

const helpText = "bet N, deal, h(it), s(tand), d(ouble), p (split), u (surrender), y/n (insurance), next, quit"

// NewTable seats the human first and then each bot
func NewTable(g *game.Game, humanName string, humanStake int, seats []Seat, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Table{
		game:   g,
		logger: logger.WithPrefix("tui"),
		names:  make(map[game.PlayerID]string),
	}
	t.human = g.Join(humanStake)
	t.names[t.human] = humanName
	for _, s := range seats {
		id := g.Join(s.Stake)
		t.names[id] = s.Name
		t.bots = append(t.bots, botSeat{id: id, name: s.Name, agent: s.Agent})
	}
	return t
}

// Start opens betting on the first round
func (t *Table) Start() {
	t.headerf("Welcome to blackjack. Commands: %s", helpText)
	t.newRound()
}

// Execute runs one line of input. quit is true when the player asked to
// leave.
func (t *Table) Execute(input string) (quit bool, err error) {
	if t.over {
		return true, nil
	}
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		if t.game.State() == game.RoundOver {
			return false, t.next()
		}
		return false, nil
	}

	switch cmd := fields[0]; cmd {
	case "quit", "q", "exit":
		return true, nil
	case "help", "?":
		t.infof("Commands: %s", helpText)
		return false, nil
	case "bet", "b":
		if len(fields) < 2 {
			return false, errors.New("usage: bet N")
		}
		amount, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return false, fmt.Errorf("bet amount %q is not a number", fields[1])
		}
		err = t.bet(amount)
	case "deal":
		err = t.deal()
	case "h", "hit":
		err = t.act(game.Hit)
	case "s", "stand":
		err = t.act(game.Stand)
	case "d", "double":
		err = t.act(game.DoubleDown)
	case "p", "split":
		err = t.act(game.Split)
	case "u", "surrender":
		err = t.act(game.Surrender)
	case "y", "yes", "insure":
		err = t.insure(true)
	case "n", "no":
		err = t.insure(false)
	case "next":
		err = t.next()
	default:
		return false, fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	if err != nil {
		t.logger.Debug("command failed", "input", input, "error", err)
		return false, err
	}

	t.advance()
	return false, nil
}

// Human returns the human's player id
func (t *Table) Human() game.PlayerID {
	return t.human
}

// Game returns the underlying engine
func (t *Table) Game() *game.Game {
	return t.game
}

// Lines returns a copy of the log
func (t *Table) Lines() []Line {
	return slices.Clone(t.lines)
}

// Result returns the last showdown, nil until the round settles
func (t *Table) Result() *blackjack.RoundResult {
	return t.result
}

// Over reports whether the human ran out of money. Any further input ends
// the session.
func (t *Table) Over() bool {
	return t.over
}

// Snapshot returns the human's view of the table
func (t *Table) Snapshot() snapshot.Snapshot {
	return snapshot.Take(t.game, t.human)
}

// Seats lists every seat with its balance and stake
func (t *Table) Seats() []SeatInfo {
	var seats []SeatInfo
	for _, id := range t.game.Players() {
		money, _ := t.game.Money(id)
		bet, _ := t.game.PlacedBet(id)
		seats = append(seats, SeatInfo{Name: t.names[id], Money: money, Bet: bet, Human: id == t.human})
	}
	return seats
}

// Prompt describes what the table is waiting for
func (t *Table) Prompt() string {
	if t.over {
		return "Game over. Press Enter to leave"
	}
	switch t.game.State() {
	case game.Betting:
		return "Place a bet with 'bet N', then 'deal'"
	case game.Insurance:
		return "Dealer shows an ace. Insure? (y/n)"
	case game.PlayerTurn:
		if id, ok := t.game.CurrentPlayer(); ok && id == t.human {
			return fmt.Sprintf("Your hand %d: h, s, d, p or u", t.game.CurrentTurn().HandIndex+1)
		}
		return "Waiting..."
	case game.RoundOver:
		return "Enter or 'next' for another round, 'quit' to leave"
	default:
		return "Waiting..."
	}
}

func (t *Table) newRound() {
	if money, _ := t.game.Money(t.human); money == 0 {
		t.over = true
		t.headerf("You are out of money. Game over.")
		return
	}

	reshuffled, err := t.game.CheckAndReshuffle()
	if err == nil && !reshuffled && t.game.CardsRemaining() < game.MinRoundCards(t.game.PlayerCount()) {
		err = t.game.Reshuffle()
		reshuffled = err == nil
	}
	if err != nil {
		t.errorf("reshuffle: %v", err)
	} else if reshuffled {
		t.infof("Shoe reshuffled (%d cards)", t.game.CardsRemaining())
	}

	t.game.StartBetting()
	t.botsInsured = false
	t.result = nil

	for _, b := range t.bots {
		amount, err := bot.PlaceBet(t.game, b.id, b.agent)
		switch {
		case err != nil:
			t.errorf("%s: %v", b.name, err)
		case amount > 0:
			t.infof("%s bets %d", b.name, amount)
		default:
			t.infof("%s sits out", b.name)
		}
	}
	money, _ := t.game.Money(t.human)
	t.infof("You have %d. %s", money, t.Prompt())
}

func (t *Table) bet(amount int) error {
	if err := t.game.Bet(t.human, amount); err != nil {
		return err
	}
	t.infof("You bet %d", amount)
	return nil
}

func (t *Table) deal() error {
	err := t.game.Deal()
	if errors.Is(err, game.DealNotEnoughCards) {
		if err := t.game.Reshuffle(); err != nil {
			return err
		}
		t.infof("Shoe reshuffled (%d cards)", t.game.CardsRemaining())
		err = t.game.Deal()
	}
	if err != nil {
		return err
	}

	t.headerf("Round %s", shortID(t.game.RoundID()))
	t.infof("Dealer shows %s", t.game.DealerHand().String())
	for _, id := range t.game.BettingOrder() {
		hands, _ := t.game.Hands(id)
		for i := range hands {
			t.infof("%s: %s", t.names[id], describe(&hands[i]))
		}
	}
	return nil
}

func (t *Table) act(action game.Action) error {
	id, ok := t.game.CurrentPlayer()
	if t.game.State() != game.PlayerTurn || !ok || id != t.human {
		return errors.New("it is not your turn")
	}
	hand := t.game.CurrentTurn().HandIndex
	if err := bot.Apply(t.game, t.human, hand, action); err != nil {
		if errors.Is(err, game.ActionNoCards) {
			t.voidRound()
			return nil
		}
		return err
	}
	t.logAction(t.human, hand, action, "")
	return nil
}

func (t *Table) insure(take bool) error {
	if !t.game.IsInsuranceOffered() {
		return errors.New("insurance is not on offer")
	}
	if !take {
		if err := t.game.DeclineInsurance(t.human); err != nil {
			return err
		}
		t.infof("You decline insurance")
		return nil
	}
	stake, err := t.game.TakeInsurance(t.human)
	if err != nil {
		return err
	}
	t.infof("You insure for %d", stake)
	return nil
}

func (t *Table) next() error {
	if t.game.State() != game.RoundOver {
		return errors.New("the round is still in play")
	}
	t.game.ClearRound()
	t.newRound()
	return nil
}

// advance runs bots, insurance, the dealer and the showdown until the human
// has to act or the round is over.
func (t *Table) advance() {
	for {
		switch t.game.State() {
		case game.Insurance:
			if !t.botsInsured {
				t.insureBots()
			}
			if !t.game.AllInsuranceDecided() {
				return
			}
			dealerBlackjack, err := t.game.FinishInsurance()
			if err != nil {
				t.errorf("insurance: %v", err)
				return
			}
			if dealerBlackjack {
				t.infof("Dealer has blackjack")
			} else {
				t.infof("Dealer does not have blackjack")
			}

		case game.PlayerTurn:
			id, ok := t.game.CurrentPlayer()
			if !ok || id == t.human {
				return
			}
			b, found := t.bot(id)
			if !found {
				t.errorf("no agent for player %d", id)
				return
			}
			hand := t.game.CurrentTurn().HandIndex
			d, err := bot.Play(t.game, id, b.agent)
			if errors.Is(err, game.ActionNoCards) {
				t.voidRound()
				return
			}
			if err != nil {
				t.errorf("%s: %v", b.name, err)
				return
			}
			t.logAction(id, hand, d.Action, d.Reasoning)

		case game.DealerTurn:
			if !t.dealerPlay() {
				return
			}

		case game.RoundOver:
			if !t.game.Settled() {
				t.settle()
			}
			return

		default:
			return
		}
	}
}

func (t *Table) insureBots() {
	t.botsInsured = true
	order := t.game.BettingOrder()
	for _, b := range t.bots {
		if !slices.Contains(order, b.id) {
			continue
		}
		took, err := bot.DecideInsurance(t.game, b.id, b.agent)
		switch {
		case err != nil:
			t.errorf("%s: %v", b.name, err)
		case took:
			t.infof("%s takes insurance", b.name)
		default:
			t.infof("%s declines insurance", b.name)
		}
	}
}

func (t *Table) dealerPlay() bool {
	drawn, err := t.game.DealerPlay()
	if errors.Is(err, game.ShowdownNoCards) {
		t.voidRound()
		return false
	}
	if err != nil {
		t.errorf("dealer: %v", err)
		return false
	}
	if len(drawn) > 0 {
		t.infof("Dealer draws %s", joinCards(drawn))
	}
	return true
}

// voidRound calls off a round the shoe cannot finish, hands every stake back
// and opens the next round on a fresh shoe.
func (t *Table) voidRound() {
	t.errorf("The shoe ran out of cards. Round void, stakes returned")
	refunds := t.game.VoidRound()
	for _, id := range t.game.Players() {
		if amount := refunds[id]; amount > 0 {
			t.infof("%d returned to %s", amount, t.names[id])
		}
	}
	t.newRound()
}

func (t *Table) settle() {
	dealer := t.game.DealerHand()
	t.infof("Dealer: %s (%d)", dealer.String(), dealer.Value())

	result, err := t.game.Showdown()
	if err != nil {
		t.errorf("showdown: %v", err)
		return
	}
	t.result = result
	for _, pr := range result.Players {
		name := t.names[pr.PlayerID]
		for _, hr := range pr.Hands {
			t.resultf("%s hand %d: %s (%d vs %d)", name, hr.HandIndex+1, hr.Outcome, hr.PlayerValue, hr.DealerValue)
		}
		if pr.InsuranceBet > 0 {
			t.resultf("%s insurance pays %d", name, pr.InsurancePayout)
		}
		t.resultf("%s net %+d", name, pr.Net)
	}
	t.infof("%s", t.Prompt())
}

func (t *Table) logAction(id game.PlayerID, hand int, action game.Action, reasoning string) {
	hands, _ := t.game.Hands(id)
	name := t.names[id]
	suffix := ""
	if reasoning != "" {
		suffix = " (" + reasoning + ")"
	}
	if hand >= len(hands) {
		t.infof("%s %ss%s", name, action, suffix)
		return
	}
	t.infof("%s %ss: %s%s", name, action, describe(&hands[hand]), suffix)
	if action == game.Split && hand+1 < len(hands) {
		t.infof("%s: %s", name, describe(&hands[hand+1]))
	}
}

func (t *Table) bot(id game.PlayerID) (botSeat, bool) {
	for _, b := range t.bots {
		if b.id == id {
			return b, true
		}
	}
	return botSeat{}, false
}

func (t *Table) add(kind LineKind, format string, args ...any) {
	t.lines = append(t.lines, Line{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

func (t *Table) infof(format string, args ...any)   { t.add(LineInfo, format, args...) }
func (t *Table) headerf(format string, args ...any) { t.add(LineHeader, format, args...) }
func (t *Table) resultf(format string, args ...any) { t.add(LineResult, format, args...) }
func (t *Table) errorf(format string, args ...any)  { t.add(LineError, format, args...) }

// ReportError logs an error returned by Execute
func (t *Table) ReportError(err error) {
	t.errorf("%v", err)
}

func describe(h *blackjack.Hand) string {
	value := strconv.Itoa(h.Value())
	if h.IsSoft() {
		value = "soft " + value
	}
	return fmt.Sprintf("%s (%s) %s", h.String(), value, strings.ToLower(h.Status().String()))
}

func joinCards(cards []blackjack.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
