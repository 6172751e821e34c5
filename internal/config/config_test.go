package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MinimalUsesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
admin_token = "change-me-please"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, NotifierLog, cfg.Notifier.Driver)
	assert.Equal(t, 25, cfg.Booking.DefaultCapacity)
	assert.Equal(t, 3, cfg.Booking.IDRetryAttempts)
	assert.Equal(t, 90, cfg.Booking.RecurringHorizonDays)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
admin_token = "s3cret-token"

[storage]
driver = "postgres"
auto_migrate = true

[database]
host = "db"
port = 5433
user = "booking"
password = "pw"
dbname = "center_booking"

[logs]
level = "debug"
file = "/tmp/booking.log"

[metrics]
enabled = true
service_name = "center-booking"
path = "/metrics"

[booking]
default_capacity = 30
id_retry_attempts = 5

[notifier]
driver = "redis"

[redis]
url = "redis://localhost:6379/0"
stream = "events"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, "host=db port=5433 user=booking password=pw dbname=center_booking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 30, cfg.Booking.DefaultCapacity)
	assert.Equal(t, "events", cfg.Redis.Stream)
}

func TestLoad_MailerKeyFromEnv(t *testing.T) {
	t.Setenv(envMailerAPIKey, "re_from_env")
	path := writeConfig(t, `
[server]
admin_token = "change-me-please"

[notifier]
driver = "mailer"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "re_from_env", cfg.Mailer.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing admin token", content: ``},
		{name: "unknown storage", content: `
[server]
admin_token = "change-me-please"
[storage]
driver = "mongo"
`},
		{name: "postgres without database", content: `
[server]
admin_token = "change-me-please"
[storage]
driver = "postgres"
[database]
host = ""
`},
		{name: "redis notifier without url", content: `
[server]
admin_token = "change-me-please"
[notifier]
driver = "redis"
`},
		{name: "bad log level", content: `
[server]
admin_token = "change-me-please"
[logs]
level = "verbose"
`},
		{name: "zero capacity", content: `
[server]
admin_token = "change-me-please"
[booking]
default_capacity = 0
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BrokenTOML(t *testing.T) {
	_, err := Load(writeConfig(t, `[server`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
}
