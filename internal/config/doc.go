// Package config loads runtime configuration for the identification service.
//
// Configuration is environment-first: every setting can be supplied through
// an environment variable (POSTGRES_HOST, TMDB_API_KEY, OPENAI_API_KEY, and
// so on), and a .env file loaded at startup feeds the same variables. An
// optional TOML file provides a base layer that the environment overrides.
package config
