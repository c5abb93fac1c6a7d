package api

import (
	"time"

	"mediaid/internal/media"
)

// mediaPayload is the JSON shape of an identified record. Unset fields
// serialize as null rather than zero values.
type mediaPayload struct {
	ID                  *string  `json:"id"`
	SearchableReference *string  `json:"searchable_reference"`
	TMDBID              *int64   `json:"tmdb_id"`
	TMDBSeriesID        *int64   `json:"tmdb_series_id"`
	IMDBID              *string  `json:"imdb_id"`
	TVDBID              *int64   `json:"tvdb_id"`
	TVRageID            *int64   `json:"tvrage_id"`
	WikidataID          *string  `json:"wikidata_id"`
	FacebookID          *string  `json:"facebook_id"`
	InstagramID         *string  `json:"instagram_id"`
	TwitterID           *string  `json:"twitter_id"`
	Genres              []string `json:"genres"`
	Title               *string  `json:"title"`
	OriginalTitle       *string  `json:"original_title"`
	Overview            *string  `json:"overview"`
	EpisodeTitle        *string  `json:"episode_title"`
	Season              *int     `json:"season"`
	Episode             *int     `json:"episode"`
	OriginalLanguage    *string  `json:"original_language"`
	MediaType           *string  `json:"media_type"`
	Year                *int     `json:"year"`
	Tagline             *string  `json:"tagline"`
	UsedGuessit         bool     `json:"used_guessit"`
	UsedTMDB            bool     `json:"used_tmdb"`
	UsedOpenAI          bool     `json:"used_openai"`
	CreatedAt           *string  `json:"created_at"`
	ModifiedAt          *string  `json:"modified_at"`
}

func toMediaPayload(info *media.Info) *mediaPayload {
	if info == nil {
		return nil
	}
	return &mediaPayload{
		ID:                  optString(info.ID),
		SearchableReference: optString(info.SearchableReference),
		TMDBID:              optInt64(info.TMDBID),
		TMDBSeriesID:        optInt64(info.TMDBSeriesID),
		IMDBID:              optString(info.IMDBID),
		TVDBID:              optInt64(info.TVDBID),
		TVRageID:            optInt64(info.TVRageID),
		WikidataID:          optString(info.WikidataID),
		FacebookID:          optString(info.FacebookID),
		InstagramID:         optString(info.InstagramID),
		TwitterID:           optString(info.TwitterID),
		Genres:              info.Genres,
		Title:               optString(info.Title),
		OriginalTitle:       optString(info.OriginalTitle),
		Overview:            optString(info.Overview),
		EpisodeTitle:        optString(info.EpisodeTitle),
		Season:              optInt(info.Season),
		Episode:             optInt(info.Episode),
		OriginalLanguage:    optString(info.OriginalLanguage),
		MediaType:           optString(string(info.MediaType)),
		Year:                optInt(info.Year),
		Tagline:             optString(info.Tagline),
		UsedGuessit:         info.UsedGuessit,
		UsedTMDB:            info.UsedTMDB,
		UsedOpenAI:          info.UsedOpenAI,
		CreatedAt:           optTime(info.CreatedAt),
		ModifiedAt:          optTime(info.ModifiedAt),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt64(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func optInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func optTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
