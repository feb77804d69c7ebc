package ports

import (
	"context"

	"certwatch/internal/domain"
)

// RosterStore provides read-only access to the crew roster
type RosterStore interface {
	// FetchCrew returns all crew members in one bulk read, sorted by ID
	FetchCrew(ctx context.Context) ([]domain.CrewMember, error)

	// FetchMember returns a single crew member by roster ID
	FetchMember(ctx context.Context, crewID string) (*domain.CrewMember, error)
}
