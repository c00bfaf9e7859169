package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/oxtail-cards/oxtail/internal/game"
	"github.com/oxtail-cards/oxtail/internal/server"
)

// intentSender is the client surface the model drives. Tests substitute a
// recording fake.
type intentSender interface {
	TakeSeat(seat int) error
	LeaveSeat() error
	StartHand() error
	Bet(action string, amount int) error
	ComboUpdate(picks []server.ComboPick) error
	ComboSubmit(picks []server.ComboPick) error
	Restart() error
	Close() error
}

// Model is the Bubble Tea model for the game client. All table state arrives
// over the wire; the model never simulates rules locally.
type Model struct {
	sender intentSender
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// Wire state
	playerName string
	snapshot   *game.Snapshot
	private    *game.PrivateView
	picks      []server.ComboPick

	// State
	gameLog     []string
	lastStatus  string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

// NewModel creates the client model. The sender is typically a *Client.
func NewModel(playerName string, sender intentSender, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "seat 3 | start | call | raise 20 | combo TH AS! | submit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		sender:      sender,
		logger:      logger.WithPrefix("tui"),
		playerName:  playerName,
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		focusedPane: 1,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case SnapshotMsg:
		snap := game.Snapshot(msg)
		m.snapshot = &snap
		if snap.Status != m.lastStatus {
			m.lastStatus = snap.Status
			m.addLog(InfoStyle.Render(snap.Status))
		}
		return m, nil

	case PrivateMsg:
		view := game.PrivateView(msg)
		m.private = &view
		return m, nil

	case ResultMsg:
		m.addLog(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", msg.HandNum)))
		m.addLog(msg.Description)
		for _, w := range msg.Winners {
			m.addLog(SuccessStyle.Render(fmt.Sprintf("%s wins %d", w.Name, w.Payout)))
		}
		m.picks = nil
		return m, nil

	case ServerErrorMsg:
		m.addLog(ErrorStyle.Render(msg.Message))
		return m, nil

	case DisconnectedMsg:
		m.addLog(ErrorStyle.Render("disconnected from server"))
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			_ = m.sender.Close()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
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
				if cmd := m.execute(input); cmd != nil {
					return m, cmd
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

// execute parses and dispatches one input line. Returns a command only when
// the program should quit.
func (m *Model) execute(input string) tea.Cmd {
	cmd, err := parseCommand(input)
	if err != nil {
		m.addLog(ErrorStyle.Render(err.Error()))
		return nil
	}

	var sendErr error
	switch cmd.kind {
	case cmdNone:
	case cmdSeat:
		sendErr = m.sender.TakeSeat(cmd.seat)
	case cmdLeave:
		sendErr = m.sender.LeaveSeat()
	case cmdStart:
		sendErr = m.sender.StartHand()
	case cmdFold:
		sendErr = m.sender.Bet("fold", 0)
	case cmdCheck:
		sendErr = m.sender.Bet("check", 0)
	case cmdCall:
		sendErr = m.sender.Bet("call", 0)
	case cmdRaise:
		sendErr = m.sender.Bet("raise", cmd.amount)
	case cmdCombo:
		m.picks = cmd.picks
		sendErr = m.sender.ComboUpdate(cmd.picks)
	case cmdSubmit:
		sendErr = m.sender.ComboSubmit(m.picks)
	case cmdRestart:
		sendErr = m.sender.Restart()
	case cmdClear:
		m.gameLog = nil
		m.logViewport.SetContent("")
	case cmdQuit:
		m.quitting = true
		_ = m.sender.Close()
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	}

	if sendErr != nil {
		m.addLog(ErrorStyle.Render("send failed: " + sendErr.Error()))
	}
	return nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionWidth := max(m.width-2, 1)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(actionWidth).
		Height(max(actionHeight-2, 1))
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	sidebarHeight := max(m.height-actionHeight-4, 1)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(sidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	logWidth := max(m.width-sidebarWidth-4, 1)
	logHeight := max(m.height-actionHeight-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight

	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the boss and the table.
func (m *Model) renderSidebarPane() string {
	var b strings.Builder

	if m.snapshot == nil {
		b.WriteString(InfoStyle.Render("connecting..."))
		return b.String()
	}
	snap := m.snapshot

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s ", snap.Phase)))
	if snap.HandNum > 0 {
		b.WriteString(fmt.Sprintf("  hand #%d", snap.HandNum))
	}
	b.WriteString("\n\n")

	if len(snap.Boss) > 0 {
		b.WriteString(BossStyle.Render("Boss: "))
		b.WriteString(formatCards(snap.Boss))
		hidden := 5 - snap.BossRevealed
		if hidden > 0 {
			b.WriteString(InfoStyle.Render(strings.Repeat(" ??", hidden)))
		}
		b.WriteString("\n")
	}

	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d", snap.Pot)))
	if snap.SidePot > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  Side: %d", snap.SidePot)))
	}
	if snap.CurrentBet > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  Bet: %d", snap.CurrentBet)))
	}
	b.WriteString("\n\n")

	for _, seat := range snap.Seats {
		b.WriteString(m.renderSeat(seat))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSeat renders one seat line for the sidebar.
func (m *Model) renderSeat(seat game.SeatView) string {
	if !seat.Occupied {
		return InfoStyle.Render(fmt.Sprintf("%d. (empty)", seat.Seat))
	}

	var marks []string
	if seat.Dealer {
		marks = append(marks, "D")
	}
	if seat.SmallBlind {
		marks = append(marks, "SB")
	}
	if seat.BigBlind {
		marks = append(marks, "BB")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = " [" + strings.Join(marks, ",") + "]"
	}

	line := fmt.Sprintf("%d. %s %d%s", seat.Seat, seat.Name, seat.Chips, suffix)
	if seat.Bet > 0 {
		line += fmt.Sprintf(" bet:%d", seat.Bet)
	}
	if len(seat.Combo) > 0 {
		line += " " + formatCards(seat.Combo)
	}

	switch {
	case seat.Folded:
		return InfoStyle.Render(line + " (folded)")
	case seat.Acting:
		return ActionsStyle.Render("→ " + line)
	case seat.PlayerID == m.playerName:
		return HandInfoStyle.Render(line)
	}
	return line
}

// renderActionPane renders the hand, selection, legal actions and input.
func (m *Model) renderActionPane() string {
	var b strings.Builder

	if m.private != nil && len(m.private.Hand) > 0 {
		b.WriteString(HandInfoStyle.Render("Hand: "))
		b.WriteString(formatCards(m.private.Hand))
		b.WriteString(fmt.Sprintf("   Chips: %d", m.private.Chips))
		b.WriteString("\n")

		if len(m.private.Selection) > 0 {
			b.WriteString(HandInfoStyle.Render("Combo: "))
			b.WriteString(formatCards(m.private.Selection))
			b.WriteString(fmt.Sprintf(" = %d", m.private.ComboTotal))
			b.WriteString("\n")
		}
	}

	if m.private != nil && len(m.private.Actions) > 0 {
		b.WriteString(renderLegalActions(m.private.Actions))
		b.WriteString("\n")
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// renderLegalActions renders the engine's available actions.
func renderLegalActions(legal []game.LegalAction) string {
	var actions []string
	for _, la := range legal {
		switch la.Action {
		case "fold":
			actions = append(actions, ErrorStyle.Render("[fold]"))
		case "check":
			actions = append(actions, SuccessStyle.Render("[check]"))
		case "call":
			actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call %d]", la.Amount)))
		case "raise":
			actions = append(actions, WarningStyle.Render(fmt.Sprintf("[raise %d..%d]", la.Amount, la.Max)))
		case "combo_submit":
			actions = append(actions, WarningStyle.Render("[submit]"))
		case "combo_update":
			actions = append(actions, InfoStyle.Render("[combo ...]"))
		case "start_hand":
			actions = append(actions, SuccessStyle.Render("[start]"))
		}
	}
	return ActionsStyle.Render("Actions: " + strings.Join(actions, " "))
}

// formatCards formats wire cards with suit colors; high cards are marked.
func formatCards(cards []game.CardView) string {
	var formatted []string
	for _, c := range cards {
		text := c.Rank + c.Suit
		switch {
		case c.High:
			formatted = append(formatted, HighCardStyle.Render(text+"!"))
		case c.Suit == "♥" || c.Suit == "♦":
			formatted = append(formatted, RedCardStyle.Render(text))
		default:
			formatted = append(formatted, BlackCardStyle.Render(text))
		}
	}
	return strings.Join(formatted, " ")
}

// addLog appends an entry and keeps the viewport pinned to the bottom.
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
