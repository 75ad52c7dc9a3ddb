package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	OMDb      OMDbConfig      `mapstructure:"omdb"`
	Translate TranslateConfig `mapstructure:"translate"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Shell     ShellConfig     `mapstructure:"shell"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// OMDbConfig holds catalog API configuration
type OMDbConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// An empty key is allowed; the catalog rejects the requests.
	APIKey string `mapstructure:"api_key"`
	// Timeout in seconds, 0 means no timeout.
	Timeout int    `mapstructure:"timeout" validate:"gte=0"`
	Proxy   string `mapstructure:"proxy" validate:"omitempty,url"`
}

// TranslateConfig holds the optional plot translation endpoint
type TranslateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Source  string `mapstructure:"source" validate:"required_if=Enabled true"`
	Target  string `mapstructure:"target" validate:"required_if=Enabled true"`
	Timeout int    `mapstructure:"timeout" validate:"gte=0"`
}

// FavoritesConfig selects where the favorites list is persisted
type FavoritesConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file redis postgres memory"`
	Path    string `mapstructure:"path" validate:"required_if=Backend file"`
	Key     string `mapstructure:"key" validate:"required"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type ShellConfig struct {
	Prompt      string `mapstructure:"prompt"`
	HistoryFile string `mapstructure:"history_file"`
}

// Load reads .env, then config.yaml (optional) with environment variable
// overrides. Extra search paths for config.yaml may be given.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("omdb.api_key", "OMDB_API_KEY", "VITE_OMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding api key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug("config.yaml not found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("omdb.base_url", "https://www.omdbapi.com")
	v.SetDefault("omdb.api_key", "")
	v.SetDefault("omdb.timeout", 0)
	v.SetDefault("omdb.proxy", "")

	v.SetDefault("translate.enabled", false)
	v.SetDefault("translate.url", "https://libretranslate.com/translate")
	v.SetDefault("translate.source", "en")
	v.SetDefault("translate.target", "pt")
	v.SetDefault("translate.timeout", 15)

	v.SetDefault("favorites.backend", "file")
	v.SetDefault("favorites.path", "./favorites.json")
	v.SetDefault("favorites.key", "omdb_favorites_v1")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "omdb")
	v.SetDefault("database.user", "omdb_user")
	v.SetDefault("database.password", "omdb_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("metrics.addr", "")

	v.SetDefault("shell.prompt", "omdb> ")
	v.SetDefault("shell.history_file", ".omdb_history")
}

// DSN returns the pgx connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
