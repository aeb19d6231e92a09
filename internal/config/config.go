// internal/config/config.go
//
// Server and CLI configuration.
// Load order (later wins):
//  1. Built-in defaults (Default).
//  2. .env in the working directory, if present (godotenv; never overrides real env vars).
//  3. YAML file named by LADDER_CONFIG, if set.
//  4. Environment variables (PORT, LOG_LEVEL, DB_PATH, ...).
//
// The result is checked with validator tags before it is returned.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordladder/internal/search"
)

// DevSecret is the JWT secret used when none is configured outside production.
const DevSecret = "dev_secret_change_me"

// Config holds every tunable of the server.
type Config struct {
	Port            string `yaml:"port" validate:"required,numeric"`
	LogLevel        string `yaml:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	DBPath          string `yaml:"db_path" validate:"required"`
	WordsFile       string `yaml:"words_file"`
	WordMinLen      int    `yaml:"word_min_len" validate:"gte=1,lte=32"`
	WordMaxLen      int    `yaml:"word_max_len" validate:"gtefield=WordMinLen,lte=32"`
	JWTSecret       string `yaml:"jwt_secret" validate:"required"`
	JWTExpiresDays  int    `yaml:"jwt_expires_days" validate:"gte=1,lte=365"`
	CookieName      string `yaml:"cookie_name" validate:"required"`
	ClientOrigin    string `yaml:"client_origin" validate:"required,url"`
	DailySalt       string `yaml:"daily_salt" validate:"required"`
	DefaultStrategy string `yaml:"default_strategy" validate:"oneof=bfs ucs gbfs astar"`
	Env             string `yaml:"env" validate:"oneof=development production test"`
	GameTTLHours    int    `yaml:"game_ttl_hours" validate:"gte=1"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:            "5175",
		LogLevel:        "info",
		DBPath:          "./data/ladder.db",
		WordMinLen:      3,
		WordMaxLen:      6,
		JWTSecret:       DevSecret,
		JWTExpiresDays:  14,
		CookieName:      "ladder_token",
		ClientOrigin:    "http://localhost:5173",
		DailySalt:       "local_dev_salt",
		DefaultStrategy: string(search.AStar),
		Env:             "development",
		GameTTLHours:    24,
	}
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool { return c.Env == "production" }

// Strategy returns the parsed default strategy.
func (c Config) Strategy() search.Strategy {
	s, err := search.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return search.AStar
	}
	return s
}

// JWTTTL returns the token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

// GameTTL returns how long an in-memory game is kept.
func (c Config) GameTTL() time.Duration {
	return time.Duration(c.GameTTLHours) * time.Hour
}

// Load builds the configuration from defaults, .env, LADDER_CONFIG and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("LADDER_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	str := map[string]*string{
		"PORT":             &c.Port,
		"LOG_LEVEL":        &c.LogLevel,
		"DB_PATH":          &c.DBPath,
		"WORDS_FILE":       &c.WordsFile,
		"JWT_SECRET":       &c.JWTSecret,
		"COOKIE_NAME":      &c.CookieName,
		"CLIENT_ORIGIN":    &c.ClientOrigin,
		"DAILY_SALT":       &c.DailySalt,
		"DEFAULT_STRATEGY": &c.DefaultStrategy,
		"NODE_ENV":         &c.Env,
	}
	for k, dst := range str {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORD_MIN_LEN":     &c.WordMinLen,
		"WORD_MAX_LEN":     &c.WordMaxLen,
		"JWT_EXPIRES_DAYS": &c.JWTExpiresDays,
		"GAME_TTL_HOURS":   &c.GameTTLHours,
	}
	for k, dst := range ints {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", k, err)
		}
		*dst = n
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if s, err := search.ParseStrategy(c.DefaultStrategy); err == nil {
		c.DefaultStrategy = string(s)
	}
	return nil
}

// Validate checks field constraints and rejects the development secret in production.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s (%s=%s): %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	if c.Production() && c.JWTSecret == DevSecret {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}
