package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"certwatch/internal/adapters/firebase"
	mcpadapter "certwatch/internal/adapters/mcp"
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
		log.Fatalf("certwatch-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"certwatch-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store, cfg.DateFormat)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("certwatch-mcp: %v", err)
	}
}
