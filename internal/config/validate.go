package config

import (
	"strings"

	"mediaid/internal/services"
)

// Normalize trims string settings so later comparisons are stable.
func (c *Config) Normalize() {
	c.Bind = strings.TrimSpace(c.Bind)
	c.Log.Level = strings.TrimSpace(c.Log.Level)
	c.Log.Format = strings.TrimSpace(c.Log.Format)
	c.Postgres.Host = strings.TrimSpace(c.Postgres.Host)
	c.Postgres.User = strings.TrimSpace(c.Postgres.User)
	c.Postgres.Database = strings.TrimSpace(c.Postgres.Database)
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.OpenAI.Organization = strings.TrimSpace(c.OpenAI.Organization)
	c.OpenAI.Model = strings.TrimSpace(c.OpenAI.Model)
	c.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAI.BaseURL), "/")
}

// Validate checks the settings a running service cannot do without.
func (c *Config) Validate() error {
	if c.Bind == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "bind address required", nil)
	}
	if c.Postgres.Host == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "postgres host required", nil)
	}
	if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "postgres port out of range", nil)
	}
	if c.Postgres.Database == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "postgres database required", nil)
	}
	if c.TMDB.APIKey == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "TMDB_API_KEY required", nil)
	}
	if c.TMDB.BaseURL == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "tmdb base url required", nil)
	}
	return nil
}
