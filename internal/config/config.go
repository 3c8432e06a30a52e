package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения с секретами, перекрывающие значения из файла
const (
	envDBPassword     = "DB_PASSWORD"
	envMailUsername   = "MAIL_USERNAME"
	envMailPassword   = "MAIL_PASSWORD"
	envSendGridAPIKey = "SENDGRID_API_KEY"
	envAdminToken     = "ADMIN_TOKEN"
	envWebhookSecret  = "WEBHOOK_SECRET"
	envRedisPassword  = "REDIS_PASSWORD"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Notifier  NotifierConfig  `toml:"notifier"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Security  SecurityConfig  `toml:"security"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, quoteDSNValue(c.Password), c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки почтовых уведомлений
// transport: smtp, sendgrid или log
type NotifierConfig struct {
	Transport  string         `toml:"transport"`
	FromName   string         `toml:"from_name"`
	FromEmail  string         `toml:"from_email"`
	AdminEmail string         `toml:"admin_email"`
	Timeout    int            `toml:"timeout"`
	SMTP       SMTPConfig     `toml:"smtp"`
	SendGrid   SendGridConfig `toml:"sendgrid"`
}

// SendTimeout таймаут на одно письмо
func (c NotifierConfig) SendTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type SendGridConfig struct {
	APIKey string `toml:"api_key"`
}

// RateLimitConfig лимит запросов на публичные POST маршруты
type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Limit         int    `toml:"limit"`
	Window        int    `toml:"window"`
	Prefix        string `toml:"prefix"`
	FailOpen      bool   `toml:"fail_open"`

	// TrustForwardedFor включать только за собственным reverse proxy
	TrustForwardedFor bool `toml:"trust_forwarded_for"`
}

// WindowDuration окно лимитера
func (c RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(c.Window) * time.Second
}

type SecurityConfig struct {
	AdminToken    string `toml:"admin_token"`
	WebhookSecret string `toml:"webhook_secret"`
}

// Load читает TOML файл, подхватывает .env и перекрывает секреты из окружения
func Load(path string) (*Config, error) {
	// .env необязателен, в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber-booking",
		},
		Notifier: NotifierConfig{
			Transport: "log",
			FromName:  "Stylish Cuts",
			Timeout:   10,
			SMTP: SMTPConfig{
				Port: 587,
			},
		},
		RateLimit: RateLimitConfig{
			RedisAddr: "localhost:6379",
			Limit:     30,
			Window:    60,
			FailOpen:  true,
		},
	}
}

func (c *Config) applyEnv() {
	override(&c.Database.Password, envDBPassword)
	override(&c.Notifier.SMTP.Username, envMailUsername)
	override(&c.Notifier.SMTP.Password, envMailPassword)
	override(&c.Notifier.SendGrid.APIKey, envSendGridAPIKey)
	override(&c.Security.AdminToken, envAdminToken)
	override(&c.Security.WebhookSecret, envWebhookSecret)
	override(&c.RateLimit.RedisPassword, envRedisPassword)
}

func override(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Validate отклоняет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server.shutdown_timeout must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns && c.Database.MaxOpenConns > 0 {
		problems = append(problems, "database.max_idle_conns exceeds max_open_conns")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path must start with '/': %q", c.Metrics.Path))
	}
	if c.Notifier.Timeout <= 0 {
		problems = append(problems, "notifier.timeout must be positive")
	}
	if c.Notifier.AdminEmail == "" {
		problems = append(problems, "notifier.admin_email is required")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RedisAddr == "" {
			problems = append(problems, "ratelimit.redis_addr is required when enabled")
		}
		if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
			problems = append(problems, "ratelimit.limit and ratelimit.window must be positive")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// quoteDSNValue экранирует значение для key=value DSN lib/pq
func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
