// Package ui provides the Bubble Tea TUI for the arbitrage bot.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solwatch/arbbot/pkg/ui/components"
)

// ConnectionInfo holds connection state and latency.
type ConnectionInfo struct {
	Connected bool
	Latency   time.Duration
	LastSeen  time.Time
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseDashboard Phase = "dashboard" // Main dashboard
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Components
	observations  *components.ObservationsComponent
	opportunities *components.OpportunitiesComponent
	stats         *components.StatsComponent

	// Phase state
	phase        Phase
	welcomeStart time.Time

	keys KeyMap

	// State
	quitting        bool
	paused          bool
	width           int
	height          int
	connectionState map[string]*ConnectionInfo
	lastUpdate      time.Time
	lastCycleTime   time.Time
	cycleCount      int64
	errors          []ErrorEntry // Persistent error panel (last 3)
	activityFeed    []string     // Recent cycle outcomes
	marketLine      string
}

// New creates a new TUI model.
func New() Model {
	return Model{
		observations:  components.NewObservationsComponent(),
		opportunities: components.NewOpportunitiesComponent(50),
		stats:         components.NewStatsComponent(),
		phase:         PhaseWelcome,
		welcomeStart:  time.Now(),
		keys:          DefaultKeyMap(),
		connectionState: map[string]*ConnectionInfo{
			"Jupiter": {Connected: false},
			"Solana":  {Connected: false},
			"Binance": {Connected: false},
		},
		errors:       make([]ErrorEntry, 0, 3),
		activityFeed: make([]string, 0, 8),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		// During welcome phase, any other key skips to the dashboard
		if m.phase == PhaseWelcome {
			m.advanceToDashboard()
			return m, tickCmd()
		}
		switch {
		case key.Matches(msg, m.keys.Clear):
			m.opportunities.Clear()
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.ClearErrors):
			m.errors = make([]ErrorEntry, 0, 3)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.advanceToDashboard()
		}
		return m, tickCmd()

	case CycleMsg:
		if m.paused {
			return m, nil
		}
		m.cycleCount = msg.Cycle
		m.lastCycleTime = time.Now()
		m.lastUpdate = time.Now()
		m.observations.SetPair(msg.Pair)

		rows := make([]components.ObservationRow, 0, len(msg.Observations))
		for _, obs := range msg.Observations {
			rows = append(rows, components.ObservationRow{Venue: obs.Venue, Price: obs.Price})
		}
		if len(rows) > 0 {
			m.observations.Update(rows)
		}

		activity := fmt.Sprintf("cycle %d: %s (%d venues)", msg.Cycle, msg.Outcome, len(msg.Observations))
		m.activityFeed = addActivity(m.activityFeed, activity)

	case OpportunityMsg:
		if msg.Opportunity == nil || m.paused {
			return m, nil
		}
		opp := msg.Opportunity

		riskLevel := "n/a"
		if opp.Risk != nil {
			riskLevel = string(opp.Risk.Level)
		}
		size := "n/a"
		if opp.RecommendedSize != nil {
			size = opp.RecommendedSize.String()
		}

		m.opportunities.Add(components.OpportunityRow{
			Timestamp: opp.Timestamp.Format("15:04:05"),
			Pair:      opp.Pair.String(),
			BuyVenue:  opp.BuyVenue,
			SellVenue: opp.SellVenue,
			DiffPct:   opp.PriceDiffPct,
			NetPct:    opp.NetProfitPct,
			RiskLevel: riskLevel,
			Size:      size,
		})
		m.lastUpdate = time.Now()

	case StatsMsg:
		m.stats.Update(components.Stats{
			Started:       msg.Stats.Started,
			CyclesRun:     msg.Stats.CyclesRun,
			CyclesSkipped: msg.Stats.CyclesSkipped,
			Opportunities: msg.Stats.Opportunities,
			LastNetPct:    msg.Stats.LastNetProfit.InexactFloat64(),
			LastRiskLevel: string(msg.Stats.LastRiskLevel),
			TotalPct:      msg.Stats.TotalProfit.InexactFloat64(),
		})
		m.lastUpdate = time.Now()

	case MarketMsg:
		source := "assumed"
		if msg.Market.FeedLive {
			source = "live"
		}
		m.marketLine = fmt.Sprintf("Ref mid: $%s  │  Volatility: %s%% (%s)",
			msg.Market.ReferenceMid.StringFixed(2),
			msg.Market.VolatilityPct.StringFixed(3),
			source)

	case ConnectionStatusMsg:
		m.connectionState[msg.Name] = &ConnectionInfo{
			Connected: msg.Connected,
			Latency:   msg.Latency,
			LastSeen:  time.Now(),
		}
		m.lastUpdate = time.Now()

	case ErrorMsg:
		m.errors = append(m.errors, ErrorEntry{
			Message:   msg.Error.Error(),
			Timestamp: time.Now(),
		})
		if len(m.errors) > 3 {
			m.errors = m.errors[len(m.errors)-3:]
		}

	case LogMsg:
		m.activityFeed = addActivity(m.activityFeed, msg.Level+": "+msg.Message)
	}

	return m, nil
}

func (m *Model) advanceToDashboard() {
	m.phase = PhaseDashboard
	// Trigger callback directly (don't use Send() from within Update)
	if OnStartModules != nil {
		go OnStartModules()
	}
}

// addActivity adds an activity message and returns the updated slice (keeps last 6).
func addActivity(feed []string, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", timestamp, message)
	feed = append(feed, line)
	if len(feed) > 6 {
		feed = feed[len(feed)-6:]
	}
	return feed
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	if m.phase == PhaseWelcome {
		return m.renderWelcomeScreen()
	}

	var b strings.Builder

	title := TitleStyle.Render(" ◎ SOL Cross-Venue Scanner ")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	leftCol := m.observations.View()
	if m.marketLine != "" {
		leftCol += "\n\n" + MutedValue.Render(m.marketLine)
	}

	var rightContent strings.Builder
	rightContent.WriteString(m.renderActivityFeed())
	rightContent.WriteString("\n\n")
	rightContent.WriteString(m.opportunities.View())
	rightCol := rightContent.String()

	// Side by side if enough width
	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}

	b.WriteString("\n\n")
	b.WriteString(m.stats.View())
	b.WriteString("\n\n")

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		errorHeader := HeaderStyle.Foreground(ColorDanger)

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(MutedValue.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(NegativeValue.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(MutedValue.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var helpParts []string
	for _, binding := range m.keys.ShortHelp() {
		helpParts = append(helpParts, binding.Help().Key+": "+binding.Help().Desc)
	}
	helpText := strings.Join(helpParts, " • ")
	if m.paused {
		b.WriteString(PausedStyle.Render("⏸ PAUSED"))
		b.WriteString(" • ")
	}
	b.WriteString(HelpStyle.Render(helpText))

	return b.String()
}

// renderActivityFeed renders the recent activity feed.
func (m Model) renderActivityFeed() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("LIVE ACTIVITY"))
	sb.WriteString("\n\n")

	if len(m.activityFeed) == 0 {
		sb.WriteString(MutedValue.Render("  Waiting for first scan cycle..."))
	} else {
		for _, activity := range m.activityFeed {
			sb.WriteString(MutedValue.Render("  " + activity))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := HeaderStyle
	mutedStyle := MutedValue
	greenStyle := PositiveValue

	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	sb.WriteString("\n\n\n\n")

	logo := `
    ███████╗ ██████╗ ██╗      ██╗    ██╗ █████╗ ████████╗ ██████╗██╗  ██╗
    ██╔════╝██╔═══██╗██║      ██║    ██║██╔══██╗╚══██╔══╝██╔════╝██║  ██║
    ███████╗██║   ██║██║      ██║ █╗ ██║███████║   ██║   ██║     ███████║
    ╚════██║██║   ██║██║      ██║███╗██║██╔══██║   ██║   ██║     ██╔══██║
    ███████║╚██████╔╝███████╗ ╚███╔███╔╝██║  ██║   ██║   ╚██████╗██║  ██║
    ╚══════╝ ╚═════╝ ╚══════╝  ╚══╝╚══╝ ╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	subtitle := "          C R O S S - V E N U E   O P P O R T U N I T Y   S C A N N E R"
	sb.WriteString(mutedStyle.Render(subtitle))
	sb.WriteString("\n\n\n")

	loading := fmt.Sprintf("                  Initializing%s", dots)
	sb.WriteString(greenStyle.Render(loading))
	sb.WriteString("\n\n")

	hint := "            Press any key to skip, or wait..."
	sb.WriteString(mutedStyle.Render(hint))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	// Scanning indicator (animated when a cycle just finished)
	if time.Since(m.lastCycleTime) < 500*time.Millisecond {
		spinners := []string{"⟳", "◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/100) % len(spinners)
		parts = append(parts, StatusConnected.Render(spinners[idx]+" Scanning"))
	}

	parts = append(parts, fmt.Sprintf("Cycle: #%d", m.cycleCount))

	for _, name := range []string{"Jupiter", "Solana", "Binance"} {
		info := m.connectionState[name]
		var statusStyle lipgloss.Style
		var icon, status string
		if info != nil && info.Connected {
			statusStyle = StatusConnected
			icon = "●"
			if info.Latency > 0 {
				status = fmt.Sprintf("%s (%dms)", name, info.Latency.Milliseconds())
			} else {
				status = name
			}
		} else {
			statusStyle = StatusDisconnected
			icon = "○"
			status = name + " (disconnected)"
		}
		parts = append(parts, statusStyle.Render(icon+" "+status))
	}

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		indicator := ""
		if ago < 2*time.Second {
			indicator = "▪"
		}
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago %s", ago, indicator)))
	}

	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
// This is set by main.go to signal when to begin loading modules.
var OnStartModules func()

// Run starts the Bubble Tea program.
func Run() error {
	Program = tea.NewProgram(New(), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
