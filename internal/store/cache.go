package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"mediaid/internal/media"
	"mediaid/internal/services"
	"mediaid/internal/textutil"
)

const cachedMediaColumns = `id, searchable_reference, tmdb_id, tmdb_series_id, imdb_id,
	tvdb_id, tvrage_id, wikidata_id, facebook_id, instagram_id, twitter_id,
	genres, title, original_title, overview, episode_title, season, episode,
	original_language, media_type, year, tagline,
	used_guessit, used_tmdb, used_openai, created_at, modified_at`

// lookupColumns whitelists the columns GetCached may filter on. Text
// columns match case-insensitively, the rest by equality.
var lookupColumns = map[string]bool{
	"id":                   false,
	"tmdb_id":              false,
	"imdb_id":              true,
	"title":                true,
	"searchable_reference": true,
}

// InsertCachedMedia persists a fully identified record and returns it with
// the assigned surrogate ID and timestamps.
func (s *Store) InsertCachedMedia(ctx context.Context, info *media.Info) (*media.Info, error) {
	if err := info.ValidForPersistence(); err != nil {
		return nil, err
	}
	if info.SearchableReference == "" {
		info = info.Clone()
		info.DeriveSearchableReference()
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO cached_media (
			searchable_reference, tmdb_id, tmdb_series_id, imdb_id,
			tvdb_id, tvrage_id, wikidata_id, facebook_id, instagram_id, twitter_id,
			genres, title, original_title, overview, episode_title, season, episode,
			original_language, media_type, year, tagline,
			used_guessit, used_tmdb, used_openai
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21,
			$22, $23, $24
		)
		RETURNING `+cachedMediaColumns,
		info.SearchableReference, info.TMDBID, nullInt64(info.TMDBSeriesID), nullString(info.IMDBID),
		nullInt64(info.TVDBID), nullInt64(info.TVRageID), nullString(info.WikidataID),
		nullString(info.FacebookID), nullString(info.InstagramID), nullString(info.TwitterID),
		info.Genres, info.Title, info.OriginalTitle, nullString(info.Overview),
		nullString(info.EpisodeTitle), nullInt(info.Season), nullInt(info.Episode),
		nullString(info.OriginalLanguage), string(info.MediaType), info.Year, nullString(info.Tagline),
		info.UsedGuessit, info.UsedTMDB, info.UsedOpenAI,
	)
	saved, err := scanCachedMedia(row)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "insert_cached_media", "insert record", err)
	}
	s.log.Info("cached media record",
		"id", saved.ID,
		"tmdb_id", saved.TMDBID,
		"media_type", string(saved.MediaType),
		"title", saved.Title)
	return saved, nil
}

// UpdateCachedMedia rewrites an existing row by ID and refreshes the
// modification timestamp.
func (s *Store) UpdateCachedMedia(ctx context.Context, info *media.Info) (*media.Info, error) {
	if info == nil || info.ID == "" {
		return nil, services.Wrap(services.ErrInput, "store", "update_cached_media", "record has no id", nil)
	}
	id, err := strconv.ParseInt(info.ID, 10, 64)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "store", "update_cached_media", "record id is not numeric", err)
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE cached_media SET
			searchable_reference = $2, tmdb_id = $3, tmdb_series_id = $4, imdb_id = $5,
			tvdb_id = $6, tvrage_id = $7, wikidata_id = $8, facebook_id = $9,
			instagram_id = $10, twitter_id = $11, genres = $12, title = $13,
			original_title = $14, overview = $15, episode_title = $16, season = $17,
			episode = $18, original_language = $19, media_type = $20, year = $21,
			tagline = $22, used_guessit = $23, used_tmdb = $24, used_openai = $25,
			modified_at = NOW()
		WHERE id = $1
		RETURNING `+cachedMediaColumns,
		id,
		info.SearchableReference, info.TMDBID, nullInt64(info.TMDBSeriesID), nullString(info.IMDBID),
		nullInt64(info.TVDBID), nullInt64(info.TVRageID), nullString(info.WikidataID),
		nullString(info.FacebookID), nullString(info.InstagramID), nullString(info.TwitterID),
		info.Genres, info.Title, info.OriginalTitle, nullString(info.Overview),
		nullString(info.EpisodeTitle), nullInt(info.Season), nullInt(info.Episode),
		nullString(info.OriginalLanguage), string(info.MediaType), info.Year, nullString(info.Tagline),
		info.UsedGuessit, info.UsedTMDB, info.UsedOpenAI,
	)
	saved, err := scanCachedMedia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.Wrap(services.ErrPersistence, "store", "update_cached_media", "no row with id "+info.ID, nil)
		}
		return nil, services.Wrap(services.ErrPersistence, "store", "update_cached_media", "update record", err)
	}
	return saved, nil
}

// GetCached performs a point lookup on one whitelisted column. The media
// type, when given, further narrows the match. A miss returns (nil, nil).
func (s *Store) GetCached(ctx context.Context, term string, mediaType media.Type, column string) (*media.Info, error) {
	caseInsensitive, ok := lookupColumns[column]
	if !ok {
		return nil, services.Wrap(services.ErrInput, "store", "get_cached", "column not allowed: "+column, nil)
	}
	operator := "="
	if caseInsensitive {
		operator = "ILIKE"
	}
	query := fmt.Sprintf("SELECT %s FROM cached_media WHERE %s %s $1", cachedMediaColumns, column, operator)
	args := []any{term}
	if mediaType != "" {
		query += " AND media_type ILIKE $2"
		args = append(args, string(mediaType))
	}
	query += " ORDER BY modified_at DESC LIMIT 1"

	info, err := scanCachedMedia(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrPersistence, "store", "get_cached", "query record", err)
	}
	return info, nil
}

// GetCachedByInfo is the mid-pipeline compound lookup. It needs a title
// and a valid media type; TV lookups additionally need season and episode.
// A record that does not qualify, or a miss, returns (nil, nil).
func (s *Store) GetCachedByInfo(ctx context.Context, obj *media.Info) (*media.Info, error) {
	if obj == nil || strings.TrimSpace(obj.Title) == "" || !media.IsValidType(obj.MediaType) {
		return nil, nil
	}
	isTV := media.IsTV(obj.MediaType)
	if isTV && (obj.Season < 1 || obj.Episode < 1) {
		return nil, nil
	}

	ref1 := textutil.SearchableReference(obj.Title)
	ref2 := obj.SearchableReference
	if ref2 == "" {
		ref2 = ref1
	}

	query := fmt.Sprintf(`SELECT %s FROM cached_media
		WHERE (title ILIKE $1 OR searchable_reference ILIKE $2 OR searchable_reference ILIKE $3)
		AND media_type ILIKE $4`, cachedMediaColumns)
	args := []any{obj.Title, ref1, ref2, string(obj.MediaType)}
	if isTV {
		query += fmt.Sprintf(" AND season = $%d AND episode = $%d", len(args)+1, len(args)+2)
		args = append(args, obj.Season, obj.Episode)
	}
	if media.PlausibleYear(obj.Year) {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, obj.Year)
	}
	query += " ORDER BY modified_at DESC LIMIT 1"

	info, err := scanCachedMedia(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrPersistence, "store", "get_cached_by_obj", "query record", err)
	}
	return info, nil
}

// GetCachedByTMDBID is the persistence-time fast path on the unique
// catalog ID.
func (s *Store) GetCachedByTMDBID(ctx context.Context, tmdbID int64) (*media.Info, error) {
	if tmdbID <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM cached_media WHERE tmdb_id = $1", cachedMediaColumns)
	info, err := scanCachedMedia(s.pool.QueryRow(ctx, query, tmdbID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrPersistence, "store", "get_cached_by_tmdb_id", "query record", err)
	}
	return info, nil
}

// GetCachedTVEpisode finds one episode by its parent series and position.
func (s *Store) GetCachedTVEpisode(ctx context.Context, seriesID int64, season, episode int) (*media.Info, error) {
	if seriesID <= 0 || season < 1 || episode < 1 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM cached_media
		WHERE tmdb_series_id = $1 AND season = $2 AND episode = $3
		ORDER BY modified_at DESC LIMIT 1`, cachedMediaColumns)
	info, err := scanCachedMedia(s.pool.QueryRow(ctx, query, seriesID, season, episode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrPersistence, "store", "get_cached_tv_episode", "query record", err)
	}
	return info, nil
}

func scanCachedMedia(row pgx.Row) (*media.Info, error) {
	var (
		id                                            int64
		info                                          media.Info
		seriesID, tvdbID, tvrageID                    *int64
		imdbID, wikidataID, facebookID, instagramID   *string
		twitterID, overview, episodeTitle, language   *string
		tagline                                       *string
		season, episode                               *int
		mediaType                                     string
		createdAt, modifiedAt                         time.Time
	)
	err := row.Scan(
		&id, &info.SearchableReference, &info.TMDBID, &seriesID, &imdbID,
		&tvdbID, &tvrageID, &wikidataID, &facebookID, &instagramID, &twitterID,
		&info.Genres, &info.Title, &info.OriginalTitle, &overview, &episodeTitle,
		&season, &episode, &language, &mediaType, &info.Year, &tagline,
		&info.UsedGuessit, &info.UsedTMDB, &info.UsedOpenAI, &createdAt, &modifiedAt,
	)
	if err != nil {
		return nil, err
	}
	info.ID = strconv.FormatInt(id, 10)
	info.TMDBSeriesID = derefInt64(seriesID)
	info.IMDBID = derefString(imdbID)
	info.TVDBID = derefInt64(tvdbID)
	info.TVRageID = derefInt64(tvrageID)
	info.WikidataID = derefString(wikidataID)
	info.FacebookID = derefString(facebookID)
	info.InstagramID = derefString(instagramID)
	info.TwitterID = derefString(twitterID)
	info.Overview = derefString(overview)
	info.EpisodeTitle = derefString(episodeTitle)
	info.Season = derefInt(season)
	info.Episode = derefInt(episode)
	info.OriginalLanguage = derefString(language)
	info.MediaType = media.Type(mediaType)
	info.Tagline = derefString(tagline)
	info.CreatedAt = createdAt
	info.ModifiedAt = modifiedAt
	return &info, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt64(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func nullInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
