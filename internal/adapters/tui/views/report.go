package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"certwatch/internal/adapters/tui/styles"
	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// ReportKeyMap defines key bindings for the report browser
type ReportKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var ReportKeys = ReportKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "expand/collapse"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// memberRow pairs a crew member with their classification breakdown
type memberRow struct {
	member    domain.CrewMember
	breakdown domain.Breakdown
	expanded  bool
}

// ReportModel is the model for the certification report browser
type ReportModel struct {
	roster     ports.RosterStore
	dateFormat string

	rows       []memberRow
	cursor     int
	loaded     bool
	message    string
	messageErr bool
	width      int
	height     int
}

// NewReportModel creates a new report browser model
func NewReportModel(roster ports.RosterStore, dateFormat string) *ReportModel {
	return &ReportModel{
		roster:     roster,
		dateFormat: dateFormat,
	}
}

// Init starts the initial roster load
func (m *ReportModel) Init() tea.Cmd {
	return m.loadCrew
}

type crewLoadedMsg struct {
	members []domain.CrewMember
}

type errMsg struct {
	err error
}

func (m *ReportModel) loadCrew() tea.Msg {
	members, err := m.roster.FetchCrew(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return crewLoadedMsg{members}
}

// SetSize updates the view dimensions
func (m *ReportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the report browser
func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case crewLoadedMsg:
		ref := time.Now()
		m.rows = make([]memberRow, 0, len(msg.members))
		for _, member := range msg.members {
			m.rows = append(m.rows, memberRow{
				member:    member,
				breakdown: domain.BuildBreakdown(member, ref, m.dateFormat),
			})
		}
		m.loaded = true
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		m.message = ""

		switch {
		case key.Matches(msg, ReportKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ReportKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Toggle):
			if m.cursor < len(m.rows) {
				m.rows[m.cursor].expanded = !m.rows[m.cursor].expanded
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Reload):
			m.loaded = false
			return m, m.loadCrew
		}
	}

	return m, nil
}

// View renders the report browser
func (m *ReportModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Crew Certification Report"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.MutedText.Render("Loading crew data..."))
		b.WriteString("\n")
	case len(m.rows) == 0:
		b.WriteString(styles.MutedText.Render("No crew members found."))
		b.WriteString("\n")
	default:
		for i, row := range m.rows {
			b.WriteString(m.renderRow(i, row))
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.message, m.messageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(ReportKeys.Up, ReportKeys.Down, ReportKeys.Toggle, ReportKeys.Reload, ReportKeys.Quit))

	return styles.App.Render(b.String())
}

func (m *ReportModel) renderRow(i int, row memberRow) string {
	var b strings.Builder

	marker := "▶"
	if row.expanded {
		marker = "▼"
	}

	email := row.member.Email
	if email == "" {
		email = "no email"
	}
	header := fmt.Sprintf("%s %s (%s)", marker, row.member.DisplayName(), email)
	if i == m.cursor {
		header = styles.MemberSelected.Render(header)
	}

	counts := fmt.Sprintf("%s %s %s",
		styles.LabelValid.Render(fmt.Sprintf("%d valid", len(row.breakdown.Valid))),
		styles.LabelExpired.Render(fmt.Sprintf("%d expired", len(row.breakdown.Expired))),
		styles.LabelUnknown.Render(fmt.Sprintf("%d unknown", len(row.breakdown.ExpiryNotMentioned))),
	)

	b.WriteString(header)
	b.WriteString("  ")
	b.WriteString(counts)
	b.WriteString("\n")

	if row.expanded {
		b.WriteString(renderBucket("expired", styles.LabelExpired, row.breakdown.Expired))
		b.WriteString(renderBucket("valid", styles.LabelValid, row.breakdown.Valid))
		b.WriteString(renderBucket("expiry not mentioned", styles.LabelUnknown, row.breakdown.ExpiryNotMentioned))
	}

	return b.String()
}

func renderBucket(label string, style lipgloss.Style, titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(style.Render(label + ":"))
	b.WriteString("\n")
	for _, title := range titles {
		b.WriteString("      - ")
		b.WriteString(title)
		b.WriteString("\n")
	}
	return b.String()
}
