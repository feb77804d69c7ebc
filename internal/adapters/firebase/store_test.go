package firebase

import (
	"context"
	"testing"
)

func TestNotificationLogPath(t *testing.T) {
	got := notificationLogPath("erp/data/shipping/fleet_management/crew-profile", "crew_001", "EXPIRED_A_1_2_3")
	want := "erp/data/shipping/fleet_management/crew-profile/crew_001/notification_log/EXPIRED_A_1_2_3"
	if got != want {
		t.Errorf("notificationLogPath = %q, want %q", got, want)
	}
}

func TestMemberPath(t *testing.T) {
	got := memberPath("crew-profile", "crew_001")
	if got != "crew-profile/crew_001" {
		t.Errorf("memberPath = %q", got)
	}
}

func TestNewStoreRequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing database URL",
			cfg:  Config{CrewDataPath: "crew-profile"},
		},
		{
			name: "missing crew data path",
			cfg:  Config{DatabaseURL: "https://example.firebasedatabase.app/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStore(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
