package game

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/gameid"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// PlayerID is re-exported for callers that only import the engine.
type PlayerID = blackjack.PlayerID

// Game is a single blackjack table. Every exported method takes the table
// lock for its whole duration, so a Game is safe for concurrent use and the
// shoe is drawn from in lock acquisition order.
type Game struct {
	mu sync.Mutex

	rules  blackjack.Rules
	logger *log.Logger
	shoe   *blackjack.Shoe
	ids    *gameid.Generator

	state  GameState
	nextID PlayerID

	// Seated players in join order and their balances
	players []PlayerID
	money   map[PlayerID]int

	// Round scoped; cleared together by ClearRound
	roundID          string
	bets             map[PlayerID]int
	hands            map[PlayerID][]*blackjack.Hand
	dealer           *blackjack.DealerHand
	bettingOrder     []PlayerID
	turn             TurnPosition
	insuranceBets    map[PlayerID]int
	insuranceDecided map[PlayerID]bool
	settled          bool
}

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger sets the logger. The engine logs under the "game" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger.WithPrefix("game")
		}
	}
}

// WithIDGenerator sets the source of round ids.
func WithIDGenerator(ids *gameid.Generator) Option {
	return func(g *Game) { g.ids = ids }
}

// NewGame creates a table with the given rules. The shoe is shuffled by a
// generator derived from seed, so equal seeds deal equal shoes. NewGame panics
// if the rules do not validate.
func NewGame(rules blackjack.Rules, seed uint64, opts ...Option) *Game {
	if err := rules.Validate(); err != nil {
		panic("invalid rules: " + err.Error())
	}

	rng := randutil.New(seed)
	g := &Game{
		rules:            rules,
		logger:           log.New(io.Discard),
		shoe:             blackjack.NewShoe(rules.Decks, rng),
		state:            WaitingForPlayers,
		money:            make(map[PlayerID]int),
		bets:             make(map[PlayerID]int),
		hands:            make(map[PlayerID][]*blackjack.Hand),
		dealer:           blackjack.NewDealerHand(),
		insuranceBets:    make(map[PlayerID]int),
		insuranceDecided: make(map[PlayerID]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.ids == nil {
		g.ids = gameid.NewGenerator(randutil.NewReader(seed))
	}
	return g
}

// Join seats a player with the given stake and returns their id.
func (g *Game) Join(stake int) PlayerID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.players = append(g.players, id)
	g.money[id] = max(stake, 0)
	g.logger.Debug("player joined", "player", id, "stake", stake)
	return id
}

// Leave removes a player and returns the balance they leave with. A bet placed
// during Betting is refunded first. Players holding hands in a round that has
// not been settled cannot leave.
func (g *Game) Leave(id PlayerID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	balance, ok := g.money[id]
	if !ok {
		return 0, LeavePlayerNotFound
	}
	if g.state.inRound() && !g.settled && slices.Contains(g.bettingOrder, id) {
		return 0, LeaveRoundInProgress
	}

	if !g.state.inRound() {
		balance += g.bets[id]
		delete(g.bets, id)
	}
	delete(g.money, id)
	g.players = slices.DeleteFunc(g.players, func(p PlayerID) bool { return p == id })
	g.logger.Debug("player left", "player", id, "balance", balance)
	return balance, nil
}

// StartBetting opens the table for bets. It only acts in WaitingForPlayers
// and is a no-op in Betting. From any other state it does nothing: a round in
// play or awaiting settlement must be cleared with ClearRound or VoidRound
// first.
func (g *Game) StartBetting() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != WaitingForPlayers && g.state != Betting {
		g.logger.Debug("start betting ignored", "round", g.roundID, "state", g.state)
		return
	}
	g.setState(Betting)
}

// ClearRound discards every round scoped record and returns the table to
// WaitingForPlayers. Unsettled bets are not refunded. Calling it twice is safe.
func (g *Game) ClearRound() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearRound()
}

// VoidRound calls the round off and returns every stake still riding on it:
// hand bets (doubled and split included), the unrefunded half of surrendered
// hands and insurance. After Showdown nothing is owed and it only clears.
// The table ends in WaitingForPlayers. The refund per player is returned.
func (g *Game) VoidRound() map[PlayerID]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	refunds := make(map[PlayerID]int, len(g.bets))
	if !g.settled {
		for id, bet := range g.bets {
			hands, dealt := g.hands[id]
			if !dealt {
				refunds[id] = bet
				continue
			}
			owed := g.insuranceBets[id]
			for _, h := range hands {
				owed += h.Bet()
				if h.Status() == blackjack.StatusSurrendered {
					owed -= blackjack.SurrenderRefund(h.Bet(), g.rules.RoundingSurrender)
				}
			}
			refunds[id] = owed
		}
		for id, amount := range refunds {
			if _, seated := g.money[id]; seated {
				g.money[id] += amount
			}
		}
	}

	g.logger.Debug("round void", "round", g.roundID, "state", g.state, "refunds", refunds)
	g.clearRound()
	return refunds
}

func (g *Game) clearRound() {
	clear(g.bets)
	clear(g.hands)
	clear(g.insuranceBets)
	clear(g.insuranceDecided)
	g.dealer.Clear()
	g.bettingOrder = g.bettingOrder[:0]
	g.turn = TurnPosition{}
	g.roundID = ""
	g.settled = false
	g.setState(WaitingForPlayers)
}

// Reshuffle rebuilds and shuffles a full shoe. It is only legal between rounds.
func (g *Game) Reshuffle() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reshuffle()
}

func (g *Game) reshuffle() error {
	if g.state != WaitingForPlayers && g.state != Betting {
		return ReshuffleInvalidState
	}
	g.shoe.Rebuild()
	g.logger.Debug("shoe reshuffled", "cards", g.shoe.Remaining())
	return nil
}

// NeedsReshuffle reports whether the dealt share of the shoe has reached the
// configured penetration.
func (g *Game) NeedsReshuffle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shoe.NeedsReshuffle(g.rules.Penetration)
}

// MinRoundCards is a generous bound on the cards one round can use with the
// given number of seats. Callers reshuffle below it between rounds so a round
// never runs the shoe dry when penetration is disabled.
func MinRoundCards(seats int) int {
	return (seats + 1) * 8
}

// CheckAndReshuffle reshuffles when NeedsReshuffle would report true and
// returns whether it did.
func (g *Game) CheckAndReshuffle() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.shoe.NeedsReshuffle(g.rules.Penetration) {
		return false, nil
	}
	if err := g.reshuffle(); err != nil {
		return false, err
	}
	return true, nil
}

// StackShoe replaces the shoe contents so the next draws are exactly cards, in
// order, up to one full shoe. Intended for tests and scripted scenarios.
func (g *Game) StackShoe(cards []blackjack.Card) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shoe.Stack(cards)
}

// Accessors

// State returns the current phase
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Rules returns the table rules
func (g *Game) Rules() blackjack.Rules {
	return g.rules
}

// RoundID returns the id of the round on the table, or "" between rounds.
func (g *Game) RoundID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundID
}

// Money returns a player's balance
func (g *Game) Money(id PlayerID) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.money[id]
	return m, ok
}

// PlacedBet returns the bet a player placed this round
func (g *Game) PlacedBet(id PlayerID) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.bets[id]
	return b, ok
}

// InsuranceBet returns the insurance stake a player took this round
func (g *Game) InsuranceBet(id PlayerID) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.insuranceBets[id]
	return b, ok
}

// Hands returns copies of a player's hands this round
func (g *Game) Hands(id PlayerID) ([]blackjack.Hand, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hands, ok := g.hands[id]
	if !ok {
		return nil, false
	}
	out := make([]blackjack.Hand, len(hands))
	for i, h := range hands {
		out[i] = h.Clone()
	}
	return out, true
}

// DealerHand returns a copy of the dealer's hand, hole card included. Callers
// rendering it should respect HoleRevealed.
func (g *Game) DealerHand() *blackjack.DealerHand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dealer.Clone()
}

// CurrentTurn returns the turn cursor
func (g *Game) CurrentTurn() TurnPosition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// CurrentPlayer returns the player the cursor points at, if any
func (g *Game) CurrentPlayer() (PlayerID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayer()
}

func (g *Game) currentPlayer() (PlayerID, bool) {
	if g.turn.PlayerIndex < 0 || g.turn.PlayerIndex >= len(g.bettingOrder) {
		return 0, false
	}
	return g.bettingOrder[g.turn.PlayerIndex], true
}

// BettingOrder returns the players dealt into this round, in turn order
func (g *Game) BettingOrder() []PlayerID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.bettingOrder)
}

// CardsRemaining returns the number of undealt cards
func (g *Game) CardsRemaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shoe.Remaining()
}

// Players returns the seated players in join order
func (g *Game) Players() []PlayerID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.players)
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// Settled reports whether Showdown has paid out the current round
func (g *Game) Settled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled
}

func (g *Game) setState(s GameState) {
	if g.state == s {
		return
	}
	g.logger.Debug("state", "round", g.roundID, "from", g.state, "to", s)
	g.state = s
}

func (g *Game) draw() (blackjack.Card, bool) {
	return g.shoe.Draw()
}
