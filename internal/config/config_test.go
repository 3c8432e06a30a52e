package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090
shutdown_timeout = 5

[database]
host = "db"
port = 5433
user = "barber"
password = "from-file"
dbname = "barber_booking"

[logs]
level = "debug"

[metrics]
enabled = true
path = "/internal/metrics"

[notifier]
transport = "smtp"
from_email = "noreply@stylishcuts.com"
admin_email = "admin@stylishcuts.com"
timeout = 7

[notifier.smtp]
host = "smtp.gmail.com"
port = 587

[ratelimit]
enabled = true
redis_addr = "redis:6379"
limit = 10
window = 30

[security]
admin_token = "file-token"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "default kept when the key is absent")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "barber-booking", cfg.Metrics.ServiceName)
	assert.Equal(t, "smtp", cfg.Notifier.Transport)
	assert.Equal(t, "Stylish Cuts", cfg.Notifier.FromName)
	assert.Equal(t, 7*time.Second, cfg.Notifier.SendTimeout())
	assert.Equal(t, "smtp.gmail.com", cfg.Notifier.SMTP.Host)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.WindowDuration())
	assert.True(t, cfg.RateLimit.FailOpen)
	assert.False(t, cfg.RateLimit.TrustForwardedFor)
}

func TestLoad_TrustForwardedFor(t *testing.T) {
	content := strings.Replace(sampleConfig, "window = 30", "window = 30\ntrust_forwarded_for = true", 1)
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.True(t, cfg.RateLimit.TrustForwardedFor)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envMailUsername, "mailer@stylishcuts.com")
	t.Setenv(envMailPassword, "app-password")
	t.Setenv(envSendGridAPIKey, "SG.key")
	t.Setenv(envAdminToken, "env-token")
	t.Setenv(envWebhookSecret, "hook")
	t.Setenv(envRedisPassword, "redis-pass")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "mailer@stylishcuts.com", cfg.Notifier.SMTP.Username)
	assert.Equal(t, "app-password", cfg.Notifier.SMTP.Password)
	assert.Equal(t, "SG.key", cfg.Notifier.SendGrid.APIKey)
	assert.Equal(t, "env-token", cfg.Security.AdminToken)
	assert.Equal(t, "hook", cfg.Security.WebhookSecret)
	assert.Equal(t, "redis-pass", cfg.RateLimit.RedisPassword)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server]\nhttp_port = 70000\n[notifier]\nadmin_email = \"a@x.com\"\n[database]\ndbname = \"x\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.DBName = "barber_booking"
		cfg.Notifier.AdminEmail = "admin@stylishcuts.com"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{name: "dbname", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "idle over open", mutate: func(c *Config) { c.Database.MaxIdleConns = 50 }},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }},
		{name: "notifier timeout", mutate: func(c *Config) { c.Notifier.Timeout = 0 }},
		{name: "admin email", mutate: func(c *Config) { c.Notifier.AdminEmail = "" }},
		{name: "ratelimit addr", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RedisAddr = "" }},
		{name: "ratelimit window", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "barber", Password: "p@ss", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=barber password=p@ss dbname=shop sslmode=disable", c.DSN())

	c.Password = "it's secret"
	assert.Contains(t, c.DSN(), `password='it\'s secret'`)

	c.Password = ""
	assert.Contains(t, c.DSN(), "password=''")
}
