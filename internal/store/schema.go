package store

import (
	"context"

	"mediaid/internal/services"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cached_media (
		id BIGSERIAL PRIMARY KEY,
		searchable_reference TEXT NOT NULL,
		tmdb_id BIGINT NOT NULL UNIQUE,
		tmdb_series_id BIGINT,
		imdb_id TEXT,
		tvdb_id BIGINT,
		tvrage_id BIGINT,
		wikidata_id TEXT,
		facebook_id TEXT,
		instagram_id TEXT,
		twitter_id TEXT,
		genres TEXT[],
		title TEXT NOT NULL,
		original_title TEXT NOT NULL,
		overview TEXT,
		episode_title TEXT,
		season INTEGER,
		episode INTEGER,
		original_language TEXT,
		media_type TEXT NOT NULL,
		year INTEGER NOT NULL,
		tagline TEXT,
		used_guessit BOOLEAN NOT NULL DEFAULT FALSE,
		used_tmdb BOOLEAN NOT NULL DEFAULT FALSE,
		used_openai BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cached_media_searchable_reference
		ON cached_media (searchable_reference)`,
	`CREATE INDEX IF NOT EXISTS idx_cached_media_tv_episode
		ON cached_media (tmdb_series_id, season, episode)`,
	`CREATE TABLE IF NOT EXISTS request_history (
		id UUID PRIMARY KEY,
		endpoint TEXT NOT NULL,
		filename TEXT,
		requester_ip TEXT,
		result_status TEXT,
		result_media_id BIGINT,
		received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		responded_at TIMESTAMPTZ,
		error_message TEXT,
		elapsed_time DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS idx_request_history_received_at
		ON request_history (received_at DESC)`,
	`CREATE TABLE IF NOT EXISTS openai_history (
		id BIGSERIAL PRIMARY KEY,
		request_id UUID,
		input_tokens BIGINT NOT NULL DEFAULT 0,
		cached_tokens BIGINT NOT NULL DEFAULT 0,
		output_tokens BIGINT NOT NULL DEFAULT 0,
		reasoning_tokens BIGINT NOT NULL DEFAULT 0,
		total_tokens BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_openai_history_request_id
		ON openai_history (request_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return services.Wrap(services.ErrPersistence, "store", "ensure_schema", "apply schema statement", err)
		}
	}
	s.log.Info("database schema verified")
	return nil
}
