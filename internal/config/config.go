package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Postgres contains connection settings for the cache database.
type Postgres struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// DSN renders the pgx connection string. Credentials are URL-escaped so
// passwords containing reserved characters survive intact.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	return u.String()
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// OpenAI contains configuration for the language model fallback.
type OpenAI struct {
	APIKey       string `toml:"api_key"`
	Organization string `toml:"organization"`
	Model        string `toml:"model"`
	BaseURL      string `toml:"base_url"`
}

// Log contains logger construction settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration object.
type Config struct {
	Bind     string   `toml:"bind"`
	Log      Log      `toml:"log"`
	Postgres Postgres `toml:"postgres"`
	TMDB     TMDB     `toml:"tmdb"`
	OpenAI   OpenAI   `toml:"openai"`
}

// Load builds a Config from defaults, an optional TOML file, and the
// environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Bind, "MEDIAID_BIND")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	setString(&cfg.Postgres.Host, "POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "POSTGRES_PORT")
	setString(&cfg.Postgres.User, "POSTGRES_USER")
	setString(&cfg.Postgres.Password, "POSTGRES_PASSWORD")
	setString(&cfg.Postgres.Database, "POSTGRES_DB")

	setString(&cfg.TMDB.APIKey, "TMDB_API_KEY")
	setString(&cfg.TMDB.BaseURL, "TMDB_BASE_URL")
	setString(&cfg.TMDB.Language, "TMDB_LANGUAGE")

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.Organization, "OPENAI_ORGANIZATION")
	setString(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func setInt(target *int, key string) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return
	}
	*target = parsed
}
