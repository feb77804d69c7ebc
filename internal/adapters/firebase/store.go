package firebase

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"certwatch/internal/application"
	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// Config holds the Realtime Database connection settings
type Config struct {
	CredentialsFile string
	DatabaseURL     string
	CrewDataPath    string // e.g. "erp/data/shipping/fleet_management/crew-profile"
}

// Store implements ports.RosterStore and ports.NotificationLedger against
// a Firebase Realtime Database. Both live in the same subtree: crew
// profiles under CrewDataPath, notification logs nested per member.
type Store struct {
	client   *db.Client
	crewPath string
}

// Ensure Store implements both ports
var (
	_ ports.RosterStore        = (*Store)(nil)
	_ ports.NotificationLedger = (*Store)(nil)
)

// NewStore initializes the Firebase app and database client. The returned
// handle is safe to share; callers construct it once and inject it.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL: %w", application.ErrNotConfigured)
	}
	if cfg.CrewDataPath == "" {
		return nil, fmt.Errorf("crew data path: %w", application.ErrNotConfigured)
	}

	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: cfg.DatabaseURL},
		option.WithCredentialsFile(cfg.CredentialsFile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database client: %w", err)
	}

	return &Store{
		client:   client,
		crewPath: strings.Trim(cfg.CrewDataPath, "/"),
	}, nil
}

// FetchCrew reads all crew profiles in one bulk get and decodes them into
// typed records, sorted by roster ID.
func (s *Store) FetchCrew(ctx context.Context) ([]domain.CrewMember, error) {
	var raw map[string]map[string]any
	if err := s.client.NewRef(s.crewPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read crew data at %s: %w", s.crewPath, err)
	}

	members := make([]domain.CrewMember, 0, len(raw))
	for id, record := range raw {
		members = append(members, domain.DecodeCrewMember(id, record))
	}
	domain.SortCrewMembers(members)
	return members, nil
}

// FetchMember reads a single crew profile by roster ID
func (s *Store) FetchMember(ctx context.Context, crewID string) (*domain.CrewMember, error) {
	var raw map[string]any
	ref := s.client.NewRef(memberPath(s.crewPath, crewID))
	if err := ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read crew member %s: %w", crewID, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("crew member %s: %w", crewID, application.ErrNotFound)
	}
	member := domain.DecodeCrewMember(crewID, raw)
	return &member, nil
}

// FetchRaw returns the undecoded crew subtree, used by the dump command
func (s *Store) FetchRaw(ctx context.Context) (any, error) {
	var raw any
	if err := s.client.NewRef(s.crewPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read crew data at %s: %w", s.crewPath, err)
	}
	return raw, nil
}

func memberPath(crewPath, crewID string) string {
	return crewPath + "/" + crewID
}
