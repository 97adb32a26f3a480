package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/timetable")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)
	assert.Equal(t, time.Hour, cfg.ReminderLead())
	assert.Equal(t, "* * * * *", cfg.Reminders.Cron)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestLoad_RequiresDSNAndToken(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "postgres://localhost/timetable")
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
timezone: Asia/Novosibirsk
reminders:
  lead_minutes: 30
  cron: "*/5 * * * *"
cache:
  ttl: 2m
subjects:
  default_color: green
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REMINDER_LEAD_MINUTES", "")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Timezone, "переменная окружения важнее файла")
	assert.Equal(t, 30*time.Minute, cfg.ReminderLead())
	assert.Equal(t, "*/5 * * * *", cfg.Reminders.Cron)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "green", cfg.Subjects.DefaultColor)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad cron", func(c *Config) { c.Reminders.Cron = "every minute" }},
		{"negative lead", func(c *Config) { c.Reminders.LeadMinutes = -1 }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.DBDSN = "postgres://localhost/timetable"
			cfg.TelegramToken = "123:abc"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
