package identify

import (
	"context"
	"log/slog"

	"mediaid/internal/logging"
	"mediaid/internal/media"
)

// FilenameParser extracts a candidate record from a path without touching
// the network.
type FilenameParser interface {
	Parse(path string) *media.Info
}

// Classifier is the language-model fallback. All operations fail soft by
// returning zero values.
type Classifier interface {
	ClassifyType(ctx context.Context, path string) media.Type
	ExtractMovieTitle(ctx context.Context, path string) string
	ExtractSeriesTitle(ctx context.Context, path string) string
	ExtractSeasonEpisode(ctx context.Context, path string) (int, int)
}

// Catalog is the external metadata provider. A (nil, nil) return is a
// clean miss.
type Catalog interface {
	SearchMovie(ctx context.Context, title string, year int) (*media.Info, error)
	SearchSeries(ctx context.Context, title string, year int) (*media.Info, error)
	GetMovieDetails(ctx context.Context, tmdbID int64) (*media.Info, error)
	GetSeriesDetails(ctx context.Context, seriesID int64) (*media.Info, error)
	GetEpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*media.Info, error)
	GetExternalIDs(ctx context.Context, id int64, mediaType media.Type, season, episode int) (*media.Info, error)
}

// Cache is the persistent record repository.
type Cache interface {
	GetCachedByInfo(ctx context.Context, obj *media.Info) (*media.Info, error)
	GetCachedByTMDBID(ctx context.Context, tmdbID int64) (*media.Info, error)
	GetCachedTVEpisode(ctx context.Context, seriesID int64, season, episode int) (*media.Info, error)
	InsertCachedMedia(ctx context.Context, info *media.Info) (*media.Info, error)
}

// Stage is one pipeline step: a cheap guard plus the actual work.
type Stage struct {
	Name    string
	Handles func(*Context) bool
	Invoke  func(context.Context, *Context) StepResult
}

// Stages builds the individual pipeline steps from the shared
// collaborators.
type Stages struct {
	parser     FilenameParser
	classifier Classifier
	catalog    Catalog
	cache      Cache
	log        *slog.Logger
}

// NewStages wires the stage factory. A nil logger is replaced with a
// no-op logger.
func NewStages(parser FilenameParser, classifier Classifier, catalog Catalog, cache Cache, log *slog.Logger) *Stages {
	if log == nil {
		log = logging.NewNop()
	}
	return &Stages{
		parser:     parser,
		classifier: classifier,
		catalog:    catalog,
		cache:      cache,
		log:        log.With(logging.FieldComponent, "identify"),
	}
}

// GuessIt runs the deterministic filename parser.
func (s *Stages) GuessIt() Stage {
	return Stage{
		Name: "guessit",
		Handles: func(c *Context) bool {
			return c.Request != nil && c.Request.Mode == media.ModeFilename && c.FilePath() != ""
		},
		Invoke: func(_ context.Context, c *Context) StepResult {
			parsed := s.parser.Parse(c.FilePath())
			if parsed == nil {
				return StepSkip
			}
			c.Merge(parsed)
			return StepSuccess
		},
	}
}

// CacheLookup checks the repository for an existing record. The label
// names the position in the pipeline for logging.
func (s *Stages) CacheLookup(label string) Stage {
	return Stage{
		Name: "cache-lookup-" + label,
		Handles: func(c *Context) bool {
			return c.HasTitle() && c.HasMediaType()
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			hit, err := s.cache.GetCachedByInfo(ctx, c.Media)
			if err != nil {
				c.AddError(err)
				return StepFatal
			}
			if hit == nil {
				return StepSuccess
			}
			s.log.Info("cache hit",
				logging.FieldStage, "cache-lookup-"+label,
				"id", hit.ID,
				"tmdb_id", hit.TMDBID)
			c.Cached = hit
			c.Completed = true
			return StepDone
		},
	}
}

// OpenAIBasic establishes a (title, media type) pair via the language
// model when the deterministic parser could not.
func (s *Stages) OpenAIBasic() Stage {
	return Stage{
		Name: "openai-basic",
		Handles: func(c *Context) bool {
			if c.FilePath() == "" {
				return false
			}
			return !(c.HasTitle() && c.HasMediaType())
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			path := c.FilePath()
			kind := c.MediaType()
			if !media.IsValidType(kind) {
				kind = s.classifier.ClassifyType(ctx, path)
				if !media.IsValidType(kind) {
					s.log.Warn("model could not classify media type", "path", path)
					return StepSkip
				}
			}

			next := &media.Info{MediaType: kind, UsedOpenAI: true}
			if media.IsMovie(kind) {
				next.Title = s.classifier.ExtractMovieTitle(ctx, path)
			} else {
				next.Title = s.classifier.ExtractSeriesTitle(ctx, path)
				next.Season, next.Episode = s.classifier.ExtractSeasonEpisode(ctx, path)
			}
			if next.Title == "" {
				s.log.Warn("model could not extract title", "path", path)
				return StepSkip
			}
			next.OriginalTitle = next.Title
			next.DeriveSearchableReference()
			c.Merge(next)
			return StepSuccess
		},
	}
}

// IdentifyMovie resolves a movie against the catalog. This is the only
// sensible movie path, so a miss is fatal.
func (s *Stages) IdentifyMovie() Stage {
	return Stage{
		Name: "tmdb-identify-movie",
		Handles: func(c *Context) bool {
			return media.IsMovie(c.MediaType()) && c.Media.TMDBID == 0
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			found, err := s.catalog.SearchMovie(ctx, c.Media.Title, c.Media.Year)
			if err != nil {
				c.AddError(err)
				return StepFatal
			}
			if found == nil {
				s.log.Warn("movie not found in catalog", "title", c.Media.Title, "year", c.Media.Year)
				return StepFatal
			}
			c.Merge(found)

			details, err := s.catalog.GetMovieDetails(ctx, c.Media.TMDBID)
			if err != nil {
				c.AddError(err)
				return StepFatal
			}
			if details == nil {
				return StepFatal
			}
			c.Merge(details)
			return StepSuccess
		},
	}
}

// IdentifySeries resolves a TV series against the catalog.
func (s *Stages) IdentifySeries() Stage {
	return Stage{
		Name: "tmdb-identify-series",
		Handles: func(c *Context) bool {
			return media.IsTV(c.MediaType()) && c.Media.TMDBSeriesID == 0
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			found, err := s.catalog.SearchSeries(ctx, c.Media.Title, c.Media.Year)
			if err != nil {
				c.AddError(err)
				return StepFatal
			}
			if found == nil {
				s.log.Warn("series not found in catalog", "title", c.Media.Title, "year", c.Media.Year)
				return StepFatal
			}
			c.Merge(found)

			details, err := s.catalog.GetSeriesDetails(ctx, c.Media.TMDBSeriesID)
			if err != nil {
				c.AddError(err)
				return StepFatal
			}
			if details == nil {
				return StepFatal
			}
			c.Merge(details)
			return StepSuccess
		},
	}
}

// OpenAISeasonEpisode recovers season and episode numbers for a series
// that was identified without them.
func (s *Stages) OpenAISeasonEpisode() Stage {
	return Stage{
		Name: "openai-season-episode",
		Handles: func(c *Context) bool {
			return media.IsTV(c.MediaType()) &&
				c.Media.TMDBSeriesID != 0 &&
				(c.Media.Season < 1 || c.Media.Episode < 1) &&
				c.FilePath() != ""
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			season, episode := s.classifier.ExtractSeasonEpisode(ctx, c.FilePath())
			if season < 1 || episode < 1 {
				s.log.Warn("model could not extract season and episode", "path", c.FilePath())
				return StepSkip
			}
			c.Merge(&media.Info{Season: season, Episode: episode, UsedOpenAI: true})
			return StepSuccess
		},
	}
}

// MovieExternalIDs enriches a movie with cross-catalog identifiers.
// Enrichment failures are not fatal.
func (s *Stages) MovieExternalIDs() Stage {
	return Stage{
		Name: "tmdb-movie-external-ids",
		Handles: func(c *Context) bool {
			return media.IsMovie(c.MediaType()) && c.Media.TMDBID != 0
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			ids, err := s.catalog.GetExternalIDs(ctx, c.Media.TMDBID, media.TypeMovie, 0, 0)
			if err != nil || ids == nil {
				s.log.Warn("movie external ids unavailable", "tmdb_id", c.Media.TMDBID, "error", err)
				return StepSkip
			}
			c.Merge(ids)
			return StepSuccess
		},
	}
}

// SeriesExternalIDs enriches a series with cross-catalog identifiers. The
// catalog response carries no primary TMDB ID, so the merge cannot clobber
// the episode ID claimed later.
func (s *Stages) SeriesExternalIDs() Stage {
	return Stage{
		Name: "tmdb-series-external-ids",
		Handles: func(c *Context) bool {
			return media.IsTV(c.MediaType()) && c.Media.TMDBSeriesID != 0
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			ids, err := s.catalog.GetExternalIDs(ctx, c.Media.TMDBSeriesID, media.TypeTV, 0, 0)
			if err != nil || ids == nil {
				s.log.Warn("series external ids unavailable", "tmdb_series_id", c.Media.TMDBSeriesID, "error", err)
				return StepSkip
			}
			ids.TMDBID = 0
			c.Merge(ids)
			return StepSuccess
		},
	}
}

// EpisodeDetails claims the record's primary TMDB ID for the episode once
// series, season, and episode are all known.
func (s *Stages) EpisodeDetails() Stage {
	return Stage{
		Name: "tmdb-episode-details",
		Handles: func(c *Context) bool {
			return media.IsTV(c.MediaType()) &&
				c.Media.TMDBSeriesID != 0 &&
				c.Media.Season >= 1 &&
				c.Media.Episode >= 1 &&
				c.Media.TMDBID == 0
		},
		Invoke: func(ctx context.Context, c *Context) StepResult {
			details, err := s.catalog.GetEpisodeDetails(ctx, c.Media.TMDBSeriesID, c.Media.Season, c.Media.Episode)
			if err != nil || details == nil {
				s.log.Warn("episode details unavailable",
					"tmdb_series_id", c.Media.TMDBSeriesID,
					"season", c.Media.Season,
					"episode", c.Media.Episode,
					"error", err)
				return StepSkip
			}
			c.Merge(details)
			return StepSuccess
		},
	}
}
