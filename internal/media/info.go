package media

import (
	"time"

	"mediaid/internal/services"
	"mediaid/internal/textutil"
)

// earliestYear is the year of the first film; anything before it is noise.
const earliestYear = 1888

// Info is the canonical in-memory identification record. The zero value of
// each field means "unset"; fields are filled in as resolvers contribute
// evidence and some become required at persistence time.
type Info struct {
	ID                  string
	SearchableReference string
	TMDBID              int64
	TMDBSeriesID        int64
	IMDBID              string
	TVDBID              int64
	TVRageID            int64
	WikidataID          string
	FacebookID          string
	InstagramID         string
	TwitterID           string
	Genres              []string
	Title               string
	OriginalTitle       string
	Overview            string
	EpisodeTitle        string
	Season              int
	Episode             int
	OriginalLanguage    string
	MediaType           Type
	Year                int
	Tagline             string
	UsedGuessit         bool
	UsedTMDB            bool
	UsedOpenAI          bool
	CreatedAt           time.Time
	ModifiedAt          time.Time
}

// PlausibleYear reports whether year falls in the range a real release could
// occupy: the first film through next year.
func PlausibleYear(year int) bool {
	return year >= earliestYear && year <= time.Now().Year()+1
}

// DeriveSearchableReference fills SearchableReference from Title when a
// title is present. Re-deriving is a no-op thanks to normalization
// idempotence.
func (i *Info) DeriveSearchableReference() {
	if i == nil || i.Title == "" {
		return
	}
	i.SearchableReference = textutil.SearchableReference(i.Title)
}

// Clone returns a deep copy of the record.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	out := *i
	if i.Genres != nil {
		out.Genres = append([]string(nil), i.Genres...)
	}
	return &out
}

// Merge combines two records. Nil inputs pass through; otherwise every set
// field of next overwrites existing, except the provenance flags, which are
// OR-monotonic: once true they stay true. Neither input is mutated.
func Merge(existing, next *Info) *Info {
	if existing == nil && next == nil {
		return nil
	}
	if existing == nil {
		return next.Clone()
	}
	merged := existing.Clone()
	if next == nil {
		return merged
	}

	if next.ID != "" {
		merged.ID = next.ID
	}
	if next.SearchableReference != "" {
		merged.SearchableReference = next.SearchableReference
	}
	if next.TMDBID != 0 {
		merged.TMDBID = next.TMDBID
	}
	if next.TMDBSeriesID != 0 {
		merged.TMDBSeriesID = next.TMDBSeriesID
	}
	if next.IMDBID != "" {
		merged.IMDBID = next.IMDBID
	}
	if next.TVDBID != 0 {
		merged.TVDBID = next.TVDBID
	}
	if next.TVRageID != 0 {
		merged.TVRageID = next.TVRageID
	}
	if next.WikidataID != "" {
		merged.WikidataID = next.WikidataID
	}
	if next.FacebookID != "" {
		merged.FacebookID = next.FacebookID
	}
	if next.InstagramID != "" {
		merged.InstagramID = next.InstagramID
	}
	if next.TwitterID != "" {
		merged.TwitterID = next.TwitterID
	}
	if len(next.Genres) > 0 {
		merged.Genres = append([]string(nil), next.Genres...)
	}
	if next.Title != "" {
		merged.Title = next.Title
	}
	if next.OriginalTitle != "" {
		merged.OriginalTitle = next.OriginalTitle
	}
	if next.Overview != "" {
		merged.Overview = next.Overview
	}
	if next.EpisodeTitle != "" {
		merged.EpisodeTitle = next.EpisodeTitle
	}
	if next.Season != 0 {
		merged.Season = next.Season
	}
	if next.Episode != 0 {
		merged.Episode = next.Episode
	}
	if next.OriginalLanguage != "" {
		merged.OriginalLanguage = next.OriginalLanguage
	}
	if next.MediaType != "" {
		merged.MediaType = next.MediaType
	}
	if next.Year != 0 {
		merged.Year = next.Year
	}
	if next.Tagline != "" {
		merged.Tagline = next.Tagline
	}

	// Provenance flags only ever accumulate.
	merged.UsedGuessit = merged.UsedGuessit || next.UsedGuessit
	merged.UsedTMDB = merged.UsedTMDB || next.UsedTMDB
	merged.UsedOpenAI = merged.UsedOpenAI || next.UsedOpenAI

	if !next.CreatedAt.IsZero() {
		merged.CreatedAt = next.CreatedAt
	}
	if !next.ModifiedAt.IsZero() {
		merged.ModifiedAt = next.ModifiedAt
	}
	return merged
}

// ValidForPersistence checks the invariants a record must satisfy before it
// can be written to the cache.
func (i *Info) ValidForPersistence() error {
	if i == nil {
		return services.Wrap(services.ErrNotIdentified, "media", "validate", "no record", nil)
	}
	if !IsValidType(i.MediaType) {
		return services.Wrap(services.ErrNotIdentified, "media", "validate", "media type not resolved", nil)
	}
	if i.TMDBID == 0 || i.Title == "" || i.OriginalTitle == "" {
		return services.Wrap(services.ErrNotIdentified, "media", "validate", "record incomplete", nil)
	}
	if !PlausibleYear(i.Year) {
		return services.Wrap(services.ErrNotIdentified, "media", "validate", "year not plausible", nil)
	}
	if IsTV(i.MediaType) {
		if i.Season < 1 || i.Episode < 1 {
			return services.Wrap(services.ErrNotIdentified, "media", "validate", "tv record missing season or episode", nil)
		}
		if i.TMDBSeriesID == 0 {
			return services.Wrap(services.ErrNotIdentified, "media", "validate", "tv record missing series id", nil)
		}
	}
	return nil
}
