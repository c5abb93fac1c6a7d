package identify

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"mediaid/internal/logging"
	"mediaid/internal/media"
	"mediaid/internal/services"
)

// Identifier is the request façade: it validates input, runs the pipeline,
// applies the filename retry policy, and persists the outcome.
type Identifier struct {
	stages *Stages
	cache  Cache
	log    *slog.Logger
}

// New wires an Identifier from its collaborators.
func New(parser FilenameParser, classifier Classifier, catalog Catalog, cache Cache, log *slog.Logger) *Identifier {
	if log == nil {
		log = logging.NewNop()
	}
	return &Identifier{
		stages: NewStages(parser, classifier, catalog, cache, log),
		cache:  cache,
		log:    log.With(logging.FieldComponent, "identify"),
	}
}

// IdentifyByFilename identifies the media a path refers to. A nil record
// with a nil error means the pipeline completed without identification.
func (i *Identifier) IdentifyByFilename(ctx context.Context, path string) (*media.Info, error) {
	req, err := media.NewFilenameRequest(path)
	if err != nil {
		return nil, err
	}

	result, err := i.run(ctx, req)
	if err == nil {
		return result, nil
	}

	// Only a pipeline-fatal run earns the retry. Persistence failures
	// surface immediately; a second pass would repeat the same failure
	// at double the catalog and model spend.
	var execErr *ExecutionError
	if !errors.As(err, &execErr) || errors.Is(err, services.ErrPersistence) {
		return nil, err
	}

	// A fatal run with the full path gets one more chance with just the
	// basename; deep directory trees often confuse extraction.
	base := filepath.Base(req.FilePath)
	if base == req.FilePath || base == "." || base == string(filepath.Separator) {
		return nil, err
	}
	i.log.Warn("pipeline fatal, retrying with basename", "path", path, "basename", base, "error", err)
	retryReq, retryErr := media.NewFilenameRequest(base)
	if retryErr != nil {
		return nil, err
	}
	return i.run(ctx, retryReq)
}

// IdentifyByMetadata identifies media from explicit metadata fields.
func (i *Identifier) IdentifyByMetadata(ctx context.Context, params media.MetadataParams) (*media.Info, error) {
	req, err := media.NewMetadataRequest(params)
	if err != nil {
		return nil, err
	}
	return i.run(ctx, req)
}

// run executes one pipeline pass and persists a fresh identification.
func (i *Identifier) run(ctx context.Context, req *media.Request) (*media.Info, error) {
	pctx := NewContext(req)
	stages := i.stages.BuildPipeline(req)

	if err := runStages(ctx, pctx, stages, i.stages.log); err != nil {
		return nil, err
	}
	if pctx.Cached != nil {
		return pctx.Cached, nil
	}
	return i.persist(ctx, pctx.Media)
}

// persist validates the pipeline's record and writes it through the cache
// fast paths. An invalid record is a miss, not an error.
func (i *Identifier) persist(ctx context.Context, info *media.Info) (*media.Info, error) {
	if info == nil {
		return nil, nil
	}
	if err := info.ValidForPersistence(); err != nil {
		i.log.Info("pipeline finished without a persistable record",
			"title", info.Title,
			"media_type", string(info.MediaType),
			"error", err)
		return nil, nil
	}

	if existing, err := i.cache.GetCachedByTMDBID(ctx, info.TMDBID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	if media.IsTV(info.MediaType) {
		existing, err := i.cache.GetCachedTVEpisode(ctx, info.TMDBSeriesID, info.Season, info.Episode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}
	return i.cache.InsertCachedMedia(ctx, info)
}
