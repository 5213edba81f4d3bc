package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 8083
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "appointment_service"
password = "appointment_service"
dbname = "appointment_service"
sslmode = "disable"

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "smc-appointment-service"

[scheduling]
search_budget_ms = 500
staff_fallback_enabled = false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 500, cfg.Scheduling.SearchBudgetMs)
	assert.False(t, cfg.Scheduling.StaffFallbackEnabled)
}

func TestLoad_InvalidPort(t *testing.T) {
	content := `
[server]
http_port = 0

[database]
host = "localhost"
dbname = "appointment_service"
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestLoad_NegativeSearchBudget(t *testing.T) {
	content := `
[server]
http_port = 8083

[database]
host = "localhost"
dbname = "appointment_service"

[scheduling]
search_budget_ms = -1
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "svc",
		DBName:   "appointments",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=svc password=svc dbname=appointments sslmode=disable",
		d.DSN())
}
