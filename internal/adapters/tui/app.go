package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"certwatch/internal/adapters/tui/views"
	"certwatch/internal/ports"
)

// App is the main TUI application model wrapping the report browser
type App struct {
	report *views.ReportModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(roster ports.RosterStore, dateFormat string) *App {
	return &App{
		report: views.NewReportModel(roster, dateFormat),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.report.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
		a.report.SetSize(size.Width, size.Height)
		return a, nil
	}

	_, cmd := a.report.Update(msg)
	return a, cmd
}

// View renders the application
func (a *App) View() string {
	return a.report.View()
}
