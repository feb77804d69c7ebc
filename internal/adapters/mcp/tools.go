package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// RegisterReadTools adds the read-only roster tools to the MCP server.
// Notification and ledger writes stay off the MCP surface on purpose.
func RegisterReadTools(s *server.MCPServer, roster ports.RosterStore, dateFormat string) {
	s.AddTool(listCrewTool(), listCrewHandler(roster))
	s.AddTool(crewStatusTool(), crewStatusHandler(roster, dateFormat))
	s.AddTool(analyzeCrewTool(), analyzeCrewHandler(roster, dateFormat))
}

// --- list_crew ---

func listCrewTool() mcp.Tool {
	return mcp.NewTool("list_crew",
		mcp.WithDescription("List all crew members with their roster IDs, names, emails, and document counts."),
	)
}

func listCrewHandler(roster ports.RosterStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		members, err := roster.FetchCrew(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(members) == 0 {
			return mcp.NewToolResultText("No crew members found."), nil
		}

		var sb strings.Builder
		for _, m := range members {
			email := m.Email
			if email == "" {
				email = "(no email)"
			}
			fmt.Fprintf(&sb, "%s  %s  %s  %d document(s)\n", m.ID, m.DisplayName(), email, len(m.Documents))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- crew_status ---

func crewStatusTool() mcp.Tool {
	return mcp.NewTool("crew_status",
		mcp.WithDescription("Show one crew member's certification status: each document with its expiry date and classification (valid, expired, or expiry_not_mentioned)."),
		mcp.WithString("crew_id",
			mcp.Description("Roster ID of the crew member"),
			mcp.Required(),
		),
	)
}

func crewStatusHandler(roster ports.RosterStore, dateFormat string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		crewID := req.GetString("crew_id", "")
		if crewID == "" {
			return toolError(fmt.Errorf("crew_id is required"))
		}

		member, err := roster.FetchMember(ctx, crewID)
		if err != nil {
			return toolError(err)
		}
		if len(member.Documents) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("%s has no documents on record.", member.DisplayName())), nil
		}

		now := time.Now()
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s)\n", member.DisplayName(), member.ID)
		for _, doc := range member.Documents {
			title := doc.Title
			if title == "" {
				title = "N/A"
			}
			expiry := doc.ExpiryDate
			if expiry == "" {
				expiry = "not mentioned"
			}
			status := domain.Classify(doc, now, dateFormat)
			fmt.Fprintf(&sb, "- %s  expires %s  [%s]\n", title, expiry, status)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- analyze_crew ---

func analyzeCrewTool() mcp.Tool {
	return mcp.NewTool("analyze_crew",
		mcp.WithDescription("Classify every crew member's documents and return the full analysis report as JSON, keyed by crew email."),
	)
}

func analyzeCrewHandler(roster ports.RosterStore, dateFormat string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		members, err := roster.FetchCrew(ctx)
		if err != nil {
			return toolError(err)
		}

		now := time.Now()
		report := make(domain.AnalysisReport, len(members))
		for _, m := range members {
			report[domain.ReportKey(m)] = domain.BuildBreakdown(m, now, dateFormat)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
