// Package tui is a terminal blackjack table: one human seat driven from a
// text prompt with bot seats playing alongside.
package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/snapshot"
)

// Model is the Bubble Tea model for a table
type Model struct {
	table  *Table
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	quitting    bool
	focusedPane int // 0 = log, 1 = input

	width       int
	height      int
	initialized bool
}

// New creates a model for table. Call table.Start first so the log has a
// welcome and the first betting round is open.
func New(table *Table, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "bet 10, deal, h, s, d, p, u, y, n, next, quit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = PromptStyle
	ti.TextStyle = PlayerInfoStyle
	ti.Prompt = "> "

	m := &Model{
		table:       table,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
	}
	m.refreshLog()
	return m
}

// Init starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if m.Submit(input) {
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs a command line against the table and reports whether the
// player quit.
func (m *Model) Submit(input string) bool {
	quit, err := m.table.Execute(input)
	if err != nil {
		m.table.ReportError(err)
	}
	if quit {
		m.quitting = true
		return true
	}
	m.refreshLog()
	return false
}

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.table.Snapshot()

	actionContent := m.renderActionPane(snap)
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor(m.focusedPane == 1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebar(snap)
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor(m.focusedPane == 0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(m.renderLog())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) renderLog() string {
	lines := m.table.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = lineStyle(l.Kind).Render(l.Text)
	}
	return strings.Join(out, "\n")
}

// renderSidebar shows the dealer, the shoe and every seat's balance
func (m *Model) renderSidebar(snap snapshot.Snapshot) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" Dealer "))
	b.WriteString("\n")
	if len(snap.Dealer.Cards) > 0 {
		b.WriteString(renderDealer(snap.Dealer))
	} else {
		b.WriteString(InfoStyle.Render("no cards"))
	}
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render(fmt.Sprintf("State: %s", snap.State)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d cards", snap.CardsRemaining)))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render("Seats:"))
	b.WriteString("\n")
	for _, seat := range m.table.Seats() {
		line := fmt.Sprintf("  %s: $%d", seat.Name, seat.Money)
		if seat.Bet > 0 {
			line += fmt.Sprintf(" (bet %d)", seat.Bet)
		}
		if seat.Human {
			line = HandInfoStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderActionPane shows the human's hands, the actions and the prompt
func (m *Model) renderActionPane(snap snapshot.Snapshot) string {
	var b strings.Builder

	current := -1
	if snap.CurrentTurn != nil && snap.PlayerID != nil && snap.CurrentTurn.PlayerID == *snap.PlayerID {
		current = snap.CurrentTurn.HandIndex
	}
	for _, h := range snap.Hands {
		b.WriteString(renderHand(h, h.Index == current))
		b.WriteString("\n")
	}
	if snap.InsuranceBet != nil && *snap.InsuranceBet > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Insured for %d", *snap.InsuranceBet)))
		b.WriteString("\n")
	}

	b.WriteString(renderActions(snap.Actions))
	b.WriteString("\n")
	b.WriteString(ActionsStyle.Render(m.table.Prompt()))
	b.WriteString("\n")
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

var actionKeys = []struct {
	action game.Action
	label  string
}{
	{game.Hit, "[h]it"},
	{game.Stand, "[s]tand"},
	{game.DoubleDown, "[d]ouble"},
	{game.Split, "s[p]lit"},
	{game.Surrender, "s[u]rrender"},
}

// renderActions lists every action, coloured by whether it is allowed now
func renderActions(allowed []string) string {
	parts := make([]string, 0, len(actionKeys))
	for _, k := range actionKeys {
		if slices.Contains(allowed, k.action.String()) {
			parts = append(parts, SuccessStyle.Render(k.label))
		} else {
			parts = append(parts, DisabledStyle.Render(k.label))
		}
	}
	return ActionsStyle.Render("Actions: ") + strings.Join(parts, " ")
}

func renderHand(h snapshot.Hand, current bool) string {
	value := fmt.Sprintf("%d", h.Value)
	if h.IsSoft {
		value = "soft " + value
	}
	marker := "  "
	if current {
		marker = "> "
	}
	text := fmt.Sprintf("%sHand %d: %s %s  bet %d  %s", marker, h.Index+1, renderCards(h.Cards), value, h.Bet, h.Status)
	if current {
		return HandInfoStyle.Render(text)
	}
	return PlayerInfoStyle.Render(text)
}

func renderDealer(d snapshot.Dealer) string {
	parts := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		if c == nil {
			parts[i] = InfoStyle.Render("??")
			continue
		}
		parts[i] = renderCard(*c)
	}
	out := "[" + strings.Join(parts, " ") + "]"
	switch {
	case d.IsBlackjack:
		return out + " " + WarningStyle.Render("blackjack")
	case d.IsBust:
		return out + " " + ErrorStyle.Render(fmt.Sprintf("bust %d", d.Value))
	case d.HoleRevealed:
		return out + fmt.Sprintf(" %d", d.Value)
	default:
		return out + fmt.Sprintf(" showing %d", d.VisibleValue)
	}
}

func renderCards(cards []snapshot.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func renderCard(c snapshot.Card) string {
	text := blackjack.Rank(c.Rank).String() + suitSymbol(c.Suit)
	if c.Suit == "Hearts" || c.Suit == "Diamonds" {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

func suitSymbol(suit string) string {
	switch suit {
	case "Hearts":
		return "♥"
	case "Diamonds":
		return "♦"
	case "Clubs":
		return "♣"
	case "Spades":
		return "♠"
	default:
		return "?"
	}
}
