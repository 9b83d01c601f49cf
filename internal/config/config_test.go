package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			AllowedOrigin: "http://localhost:3000",
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Database:       "storefront",
			MaxConnections: 25,
			MinConnections: 5,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			SessionSecret:   "test-secret",
			SessionTTLHours: 24,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "storefront", cfg.Database.Database)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 24, cfg.Auth.SessionTTLHours)
	assert.False(t, cfg.Seed.Enabled)
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "storefront_test")
	t.Setenv("OWNER_OPEN_ID", "owner-123")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("SEED_FILE", "catalogue.jsonl.gz")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "storefront_test", cfg.Database.Database)
	assert.Equal(t, "owner-123", cfg.Auth.OwnerOpenID)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "catalogue.jsonl.gz", cfg.Seed.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "Valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "Invalid server port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "Missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: true,
		},
		{
			name:    "Min connections exceed max",
			mutate:  func(c *Config) { c.Database.MinConnections = 50 },
			wantErr: true,
		},
		{
			name:    "Missing session secret",
			mutate:  func(c *Config) { c.Auth.SessionSecret = "" },
			wantErr: true,
		},
		{
			name:    "Zero session TTL",
			mutate:  func(c *Config) { c.Auth.SessionTTLHours = 0 },
			wantErr: true,
		},
		{
			name:    "Unknown log level",
			mutate:  func(c *Config) { c.Logger.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "Unknown log format",
			mutate:  func(c *Config) { c.Logger.Format = "xml" },
			wantErr: true,
		},
		{
			name: "S3 seeding without bucket",
			mutate: func(c *Config) {
				c.Seed.S3 = true
				c.Seed.Region = "us-east-1"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "pw",
		Database: "storefront",
	}

	assert.Equal(t, "postgres://app:pw@db.internal:5433/storefront?sslmode=disable", cfg.ConnectionString())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", cfg.Address())
}
