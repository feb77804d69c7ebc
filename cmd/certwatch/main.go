package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"certwatch/internal/adapters/firebase"
	"certwatch/internal/adapters/tui"
	"certwatch/internal/config"
)

func main() {
	cfg := config.Load()

	store, err := firebase.NewStore(context.Background(), firebase.Config{
		CredentialsFile: cfg.CredentialsFile,
		DatabaseURL:     cfg.DatabaseURL,
		CrewDataPath:    cfg.CrewDataPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create and run TUI app
	app := tui.NewApp(store, cfg.DateFormat)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
