package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid config")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string     `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB         `mapstructure:"database"`
	Words            Words      `mapstructure:"words"`
	Quiz             Quiz       `mapstructure:"quiz"`
	Admin            Admin      `mapstructure:"admin"`
	Reminders        Reminders  `mapstructure:"reminders"`
	Migrations       Migrations `mapstructure:"migrations"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Words bounds the size of a word list page.
type Words struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MinLimit     int `mapstructure:"min_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// Limits converts the section into entities.WordLimits.
func (w Words) Limits() entities.WordLimits {
	return entities.WordLimits{Default: w.DefaultLimit, Min: w.MinLimit, Max: w.MaxLimit}
}

type Quiz struct {
	Options int `mapstructure:"options"` // choices per multiple-choice question
}

type Admin struct {
	UserIDs []int64 `mapstructure:"user_ids"` // Telegram ids allowed to grant memberships
}

type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron spec
	Timezone string `mapstructure:"timezone"` // zone the schedule is read in, e.g. "UTC+8"
}

// Location resolves Timezone.
func (r Reminders) Location() (*time.Location, error) {
	return entities.ParseLocation(r.Timezone)
}

type Migrations struct {
	Auto bool `mapstructure:"auto"` // apply embedded migrations on bot start
}

// Load reads the bot configuration. The Telegram token and the database URL
// are required.
func Load() (*Config, error) {
	cfg, err := load("./config")
	if err != nil {
		return nil, err
	}
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return cfg, nil
}

// LoadDatabase reads the configuration needed by command line tools, which
// only talk to the database.
func LoadDatabase() (*Config, error) {
	return load("./config")
}

func load(configDir string) (*Config, error) {
	// Values already present in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("words.default_limit", entities.DefaultWordLimit)
	v.SetDefault("words.min_limit", entities.MinWordLimit)
	v.SetDefault("words.max_limit", entities.MaxWordLimit)
	v.SetDefault("quiz.options", 4)
	v.SetDefault("admin.user_ids", []int64{})
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 9 * * *")
	v.SetDefault("reminders.timezone", "UTC")
	v.SetDefault("migrations.auto", false)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	var problems []string

	w := c.Words
	if w.MinLimit <= 0 {
		problems = append(problems, "words.min_limit must be positive")
	}
	if w.MinLimit > w.MaxLimit {
		problems = append(problems, "words.min_limit must not exceed words.max_limit")
	}
	if w.DefaultLimit < w.MinLimit || w.DefaultLimit > w.MaxLimit {
		problems = append(problems, "words.default_limit must lie within [min_limit, max_limit]")
	}
	if c.Quiz.Options < 2 {
		problems = append(problems, "quiz.options must be at least 2")
	}
	if c.DB.MaxConnections <= 0 {
		problems = append(problems, "database.max_connections must be positive")
	}
	if c.Reminders.Enabled && c.Reminders.Schedule == "" {
		problems = append(problems, "reminders.schedule is required when reminders are enabled")
	}
	if _, err := c.Reminders.Location(); err != nil {
		problems = append(problems, "reminders.timezone: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the bot runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
