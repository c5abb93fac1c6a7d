package media_test

import (
	"testing"
	"time"

	"mediaid/internal/media"
)

func TestMergeRightBias(t *testing.T) {
	existing := &media.Info{
		Title:        "Old Title",
		Year:         1999,
		MediaType:    media.TypeMovie,
		Overview:     "kept when next is silent",
		TMDBID:       100,
		TMDBSeriesID: 5,
	}
	next := &media.Info{
		Title:  "New Title",
		Year:   2001,
		TMDBID: 200,
	}
	merged := media.Merge(existing, next)
	if merged.Title != "New Title" {
		t.Fatalf("Title = %q, want New Title", merged.Title)
	}
	if merged.Year != 2001 {
		t.Fatalf("Year = %d, want 2001", merged.Year)
	}
	if merged.TMDBID != 200 {
		t.Fatalf("TMDBID = %d, want 200", merged.TMDBID)
	}
	if merged.Overview != "kept when next is silent" {
		t.Fatalf("Overview = %q, unset fields must not clobber", merged.Overview)
	}
	if merged.MediaType != media.TypeMovie {
		t.Fatalf("MediaType = %q, want movie", merged.MediaType)
	}
	if merged.TMDBSeriesID != 5 {
		t.Fatalf("TMDBSeriesID = %d, want 5", merged.TMDBSeriesID)
	}
}

func TestMergeProvenanceMonotonic(t *testing.T) {
	existing := &media.Info{UsedGuessit: true, UsedOpenAI: true}
	next := &media.Info{UsedTMDB: true}
	merged := media.Merge(existing, next)
	if !merged.UsedGuessit || !merged.UsedOpenAI || !merged.UsedTMDB {
		t.Fatalf("provenance flags must accumulate: %+v", merged)
	}

	// A later record with all flags false must not clear anything.
	again := media.Merge(merged, &media.Info{Title: "x"})
	if !again.UsedGuessit || !again.UsedOpenAI || !again.UsedTMDB {
		t.Fatalf("false flags cleared earlier provenance: %+v", again)
	}
}

func TestMergeNilHandling(t *testing.T) {
	if media.Merge(nil, nil) != nil {
		t.Fatal("merging two nils should be nil")
	}
	only := &media.Info{Title: "solo"}
	if got := media.Merge(nil, only); got == nil || got.Title != "solo" {
		t.Fatalf("Merge(nil, x) = %+v", got)
	}
	if got := media.Merge(only, nil); got == nil || got.Title != "solo" {
		t.Fatalf("Merge(x, nil) = %+v", got)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := &media.Info{Title: "left", Genres: []string{"Drama"}}
	next := &media.Info{Genres: []string{"Comedy"}}
	merged := media.Merge(existing, next)
	merged.Genres[0] = "Mutated"
	if existing.Genres[0] != "Drama" || next.Genres[0] != "Comedy" {
		t.Fatal("merge must deep-copy genre slices")
	}
	if existing.Title != "left" {
		t.Fatal("merge must not mutate existing")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := &media.Info{Title: "a", Genres: []string{"Drama"}}
	cp := orig.Clone()
	cp.Title = "b"
	cp.Genres[0] = "Comedy"
	if orig.Title != "a" || orig.Genres[0] != "Drama" {
		t.Fatalf("clone shares state with original: %+v", orig)
	}
}

func TestPlausibleYear(t *testing.T) {
	now := time.Now().Year()
	tests := []struct {
		year int
		want bool
	}{
		{1887, false},
		{1888, true},
		{1999, true},
		{now, true},
		{now + 1, true},
		{now + 2, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := media.PlausibleYear(tt.year); got != tt.want {
			t.Fatalf("PlausibleYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestValidForPersistence(t *testing.T) {
	movie := &media.Info{
		MediaType:     media.TypeMovie,
		TMDBID:        603,
		Title:         "The Matrix",
		OriginalTitle: "The Matrix",
		Year:          1999,
	}
	if err := movie.ValidForPersistence(); err != nil {
		t.Fatalf("valid movie rejected: %v", err)
	}

	episode := &media.Info{
		MediaType:     media.TypeTV,
		TMDBID:        349232,
		TMDBSeriesID:  1396,
		Title:         "Breaking Bad",
		OriginalTitle: "Breaking Bad",
		Year:          2008,
		Season:        1,
		Episode:       1,
	}
	if err := episode.ValidForPersistence(); err != nil {
		t.Fatalf("valid episode rejected: %v", err)
	}

	broken := []*media.Info{
		nil,
		{},
		{MediaType: media.TypeMovie, Title: "x", OriginalTitle: "x", Year: 1999}, // no tmdb id
		{MediaType: media.TypeMovie, TMDBID: 1, OriginalTitle: "x", Year: 1999}, // no title
		{MediaType: media.TypeMovie, TMDBID: 1, Title: "x", OriginalTitle: "x", Year: 1700},
		{MediaType: media.TypeTV, TMDBID: 1, TMDBSeriesID: 2, Title: "x", OriginalTitle: "x", Year: 2008, Season: 1}, // no episode
		{MediaType: media.TypeTV, TMDBID: 1, Title: "x", OriginalTitle: "x", Year: 2008, Season: 1, Episode: 1},      // no series id
	}
	for i, info := range broken {
		if err := info.ValidForPersistence(); err == nil {
			t.Fatalf("case %d: incomplete record accepted: %+v", i, info)
		}
	}
}

func TestDeriveSearchableReference(t *testing.T) {
	info := &media.Info{Title: "Rocky II: The Rematch!"}
	info.DeriveSearchableReference()
	if info.SearchableReference != "Rocky 2 The Rematch" {
		t.Fatalf("SearchableReference = %q", info.SearchableReference)
	}

	empty := &media.Info{SearchableReference: "keep"}
	empty.DeriveSearchableReference()
	if empty.SearchableReference != "keep" {
		t.Fatal("empty title must not clear an existing reference")
	}
}
