package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/clinicore/clinic-admin/internal/repository/postgres"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  postgres.Config `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	TemplateGlob   string `mapstructure:"template_glob"`
	ReleaseMode    bool   `mapstructure:"release_mode"`
}

type RedisConfig struct {
	// Enabled switches sessions to Redis; otherwise they live in process
	// memory and die with it.
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	TTLHours   int    `mapstructure:"ttl_hours"`
}

type AuthConfig struct {
	RememberSecret string `mapstructure:"remember_secret" envconfig:"REMEMBER_SECRET"`
	RememberDays   int    `mapstructure:"remember_days"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type MetricsConfig struct {
	Prefix string `mapstructure:"prefix"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

func (a AuthConfig) RememberTTL() time.Duration {
	return time.Duration(a.RememberDays) * 24 * time.Hour
}

// LoadConfig reads config.yaml and then applies CLINIC_* environment
// overrides, so secrets never have to live in the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinic", &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.TimeoutSeconds == 0 {
		config.Server.TimeoutSeconds = 30
	}
	if config.Server.TemplateGlob == "" {
		config.Server.TemplateGlob = "web/templates/*.html"
	}
	if config.Session.CookieName == "" {
		config.Session.CookieName = "clinic_session"
	}
	if config.Session.TTLHours == 0 {
		config.Session.TTLHours = 12
	}
	if config.Auth.RememberDays == 0 {
		config.Auth.RememberDays = 30
	}
	if config.Metrics.Prefix == "" {
		config.Metrics.Prefix = "clinic"
	}
}
