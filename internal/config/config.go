package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken string `yaml:"-"`
	DBDSN         string `yaml:"-"`
	Environment   string `yaml:"-"`
	Timezone      string `yaml:"timezone"`
	MigrationsDir string `yaml:"migrations_dir"` // пусто - встроенные миграции

	Reminders RemindersConfig `yaml:"reminders"`
	Cache     CacheConfig     `yaml:"cache"`
	Subjects  SubjectsConfig  `yaml:"subjects"`
	Log       LogConfig       `yaml:"log"`

	location *time.Location
}

type RemindersConfig struct {
	LeadMinutes int    `yaml:"lead_minutes"`
	Cron        string `yaml:"cron"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type SubjectsConfig struct {
	DefaultColor string `yaml:"default_color"`
}

// LogConfig пустой Level - уровень по умолчанию для окружения
type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Environment: "development",
		Timezone:    "Europe/Moscow",
		Reminders: RemindersConfig{
			LeadMinutes: 60,
			Cron:        "* * * * *",
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		Subjects: SubjectsConfig{
			DefaultColor: "blue",
		},
	}
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded (env=%s, tz=%s)\n", cfg.Environment, cfg.Timezone)

	return cfg, nil
}

// loadFile читает необязательные настройки из YAML поверх значений по умолчанию
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv переменные окружения важнее файла
func (c *Config) applyEnv() {
	c.DBDSN = os.Getenv("DB_DSN")
	c.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if v := os.Getenv("ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		c.MigrationsDir = v
	}
	if v := os.Getenv("REMINDER_LEAD_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reminders.LeadMinutes = n
		} else {
			log.Printf("⚠️  Ignoring REMINDER_LEAD_MINUTES=%q: %v\n", v, err)
		}
	}
}

// Validate проверяет обязательные поля и разбирает часовой пояс
func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required but not set")
	}
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required but not set")
	}
	if c.Reminders.LeadMinutes < 0 {
		return fmt.Errorf("reminders.lead_minutes must not be negative, got %d", c.Reminders.LeadMinutes)
	}
	if _, err := cron.ParseStandard(c.Reminders.Cron); err != nil {
		return fmt.Errorf("reminders.cron %q: %w", c.Reminders.Cron, err)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// Location часовой пояс пользователей бота
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ReminderLead за сколько до срока задачи напоминать
func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.Reminders.LeadMinutes) * time.Minute
}
