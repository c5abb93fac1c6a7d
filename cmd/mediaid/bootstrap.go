package main

import (
	"context"
	"log/slog"

	"mediaid/internal/config"
	"mediaid/internal/guess"
	"mediaid/internal/identify"
	"mediaid/internal/logging"
	"mediaid/internal/services/openai"
	"mediaid/internal/store"
	"mediaid/internal/tmdb"
)

// runtime bundles everything a command needs once configuration has been
// loaded and the database is reachable.
type runtime struct {
	cfg        *config.Config
	log        *slog.Logger
	store      *store.Store
	identifier *identify.Identifier
}

func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
}

// bootstrap loads configuration, connects to Postgres, and wires the
// identification pipeline with its catalog and model clients.
func bootstrap(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithLogger(log))
	if err != nil {
		st.Close()
		return nil, err
	}

	model, err := openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Organization, cfg.OpenAI.Model, cfg.OpenAI.BaseURL,
		openai.WithLogger(log),
		openai.WithRecorder(st))
	if err != nil {
		st.Close()
		return nil, err
	}

	identifier := identify.New(guess.NewParser(log), model, catalog, st, log)

	return &runtime{
		cfg:        cfg,
		log:        log,
		store:      st,
		identifier: identifier,
	}, nil
}
