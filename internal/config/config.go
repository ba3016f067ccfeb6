package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is read from the environment (and an optional .env / config file).
type Config struct {
	Port string `mapstructure:"port"`

	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Settings SettingsConfig `mapstructure:"settings"`
}

// ServerConfig holds the HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver"` // postgres | sqlite
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Broker string `mapstructure:"broker"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// Timeout bounds the dial and every SMTP command.
	Timeout time.Duration `mapstructure:"timeout"`
}

type ReportConfig struct {
	FontPath string `mapstructure:"font_path"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type NotifyConfig struct {
	To string `mapstructure:"to"`
}

// SettingsConfig holds knobs shared by the HTTP surface.
type SettingsConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	CacheTTL       string  `mapstructure:"cache_ttl"`
}

// Load reads configuration. Every key can be overridden by an env var where
// dots become underscores: db.driver -> DB_DRIVER, report.font_path -> REPORT_FONT_PATH.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")

	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "grafik")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "grafik.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("kafka.broker", "")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.timeout", "15s")

	v.SetDefault("report.font_path", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("notify.to", "")

	v.SetDefault("settings.rate_limit_rps", 20.0)
	v.SetDefault("settings.rate_limit_burst", 40)
	v.SetDefault("settings.cache_ttl", "10m")
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres":
		if c.DB.Host == "" {
			return fmt.Errorf("db.host is required for postgres")
		}
	case "sqlite":
		if c.DB.Path == "" {
			return fmt.Errorf("db.path is required for sqlite")
		}
	default:
		return fmt.Errorf("db.driver must be 'postgres' or 'sqlite', got '%s'", c.DB.Driver)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	if c.Settings.RateLimitRPS <= 0 {
		return fmt.Errorf("settings.rate_limit_rps must be positive")
	}

	return nil
}

// GetCacheTTL falls back to 10 minutes when the value is missing or malformed.
func (s SettingsConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(s.CacheTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}
