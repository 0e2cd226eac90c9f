package config

import (
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "hotelier"
  environment: "test"
database:
  path: "test.db"
booking:
  max_stay_nights: 14
hotels:
  - id: "hotel-1"
    name: "Grand Plaza"
    address: "1 Main St"
    rooms:
      - id: "room-1"
        number: "101"
        type: "standard"
        price: 120
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "test.db" {
		t.Errorf("expected database path test.db, got %s", cfg.Database.Path)
	}
	if cfg.Booking.MaxStayNights != 14 {
		t.Errorf("expected max_stay_nights 14, got %d", cfg.Booking.MaxStayNights)
	}
	if len(cfg.Hotels) != 1 || len(cfg.Hotels[0].Rooms) != 1 {
		t.Errorf("expected 1 hotel with 1 room")
	}

	// Defaults kick in for everything unset.
	if cfg.API.Port != 8080 {
		t.Errorf("expected default api port 8080, got %d", cfg.API.Port)
	}
	if cfg.Session.TTLSeconds != models.DefaultSessionTTL {
		t.Errorf("expected default session ttl, got %d", cfg.Session.TTLSeconds)
	}
	if cfg.API.Auth.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header, got %s", cfg.API.Auth.HeaderAPIKey)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("HOTELIER_DB_PATH", "/var/lib/hotelier/data.db")

	yamlContent := `
database:
  path: "${HOTELIER_DB_PATH}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "/var/lib/hotelier/data.db" {
		t.Errorf("expected expanded path, got %s", cfg.Database.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Hotels: []models.Hotel{
					{ID: "h1", Name: "Hotel", Rooms: []models.Room{{ID: "r1", Number: "101"}}},
				},
			},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "duplicate hotel id",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Hotels: []models.Hotel{
					{ID: "h1", Name: "Hotel 1"},
					{ID: "h1", Name: "Hotel 2"},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate room id across hotels",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Hotels: []models.Hotel{
					{ID: "h1", Name: "Hotel 1", Rooms: []models.Room{{ID: "r1", Number: "101"}}},
					{ID: "h2", Name: "Hotel 2", Rooms: []models.Room{{ID: "r1", Number: "201"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "empty room id",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Hotels: []models.Hotel{
					{ID: "h1", Name: "Hotel 1", Rooms: []models.Room{{Number: "101"}}},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
