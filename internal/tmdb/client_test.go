package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediaid/internal/media"
	"mediaid/internal/tmdb"
)

func newClient(t *testing.T, url string, opts ...tmdb.Option) *tmdb.Client {
	t.Helper()
	client, err := tmdb.New("test-token", url, "en-US", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := tmdb.New("", "https://example.test", ""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := tmdb.New("tok", "   ", ""); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestSearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "The Matrix" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("primary_release_year"); got != "1999" {
			t.Errorf("primary_release_year = %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q", got)
		}
		if got := r.URL.Query().Get("include_adult"); got != "true" {
			t.Errorf("include_adult = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{"id":603,"title":"The Matrix","original_title":"The Matrix","overview":"A hacker.","release_date":"1999-03-30","original_language":"en","genre_ids":[28,878]}],"total_results":1}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).SearchMovie(context.Background(), "The Matrix", 1999)
	if err != nil {
		t.Fatalf("SearchMovie: %v", err)
	}
	if info == nil {
		t.Fatal("expected a record")
	}
	if info.TMDBID != 603 {
		t.Fatalf("TMDBID = %d, want 603", info.TMDBID)
	}
	if info.MediaType != media.TypeMovie {
		t.Fatalf("MediaType = %q", info.MediaType)
	}
	if info.Year != 1999 {
		t.Fatalf("Year = %d, want 1999", info.Year)
	}
	if len(info.Genres) != 2 || info.Genres[0] != "Action" || info.Genres[1] != "Science Fiction" {
		t.Fatalf("Genres = %v", info.Genres)
	}
	if !info.UsedTMDB {
		t.Fatal("UsedTMDB must be set")
	}
	if info.SearchableReference == "" {
		t.Fatal("expected derived searchable reference")
	}
}

func TestSearchMovieNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[],"total_results":0}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).SearchMovie(context.Background(), "nothing like this", 0)
	if err != nil {
		t.Fatalf("SearchMovie: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil on miss, got %+v", info)
	}
}

func TestSearchSeriesSetsSeriesIDOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("first_air_date_year"); got != "2008" {
			t.Errorf("first_air_date_year = %q", got)
		}
		w.Write([]byte(`{"page":1,"results":[{"id":1396,"name":"Breaking Bad","original_name":"Breaking Bad","first_air_date":"2008-01-20","genre_ids":[18]}],"total_results":1}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).SearchSeries(context.Background(), "Breaking Bad", 2008)
	if err != nil {
		t.Fatalf("SearchSeries: %v", err)
	}
	if info.TMDBSeriesID != 1396 {
		t.Fatalf("TMDBSeriesID = %d, want 1396", info.TMDBSeriesID)
	}
	if info.TMDBID != 0 {
		t.Fatalf("TMDBID = %d, series search must not claim the primary id", info.TMDBID)
	}
	if info.MediaType != media.TypeTV || info.Year != 2008 {
		t.Fatalf("record = %+v", info)
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":603,"title":"The Matrix","original_title":"The Matrix","overview":"A hacker.","tagline":"Free your mind.","release_date":"1999-03-30","original_language":"en","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).GetMovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovieDetails: %v", err)
	}
	if info.TMDBID != 603 || info.Tagline != "Free your mind." {
		t.Fatalf("record = %+v", info)
	}
	if len(info.Genres) != 2 {
		t.Fatalf("Genres = %v", info.Genres)
	}
}

func TestGetSeriesDetailsSetsSeriesIDOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":1396,"name":"Breaking Bad","original_name":"Breaking Bad","first_air_date":"2008-01-20","genres":[{"id":18,"name":"Drama"}]}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).GetSeriesDetails(context.Background(), 1396)
	if err != nil {
		t.Fatalf("GetSeriesDetails: %v", err)
	}
	if info.TMDBSeriesID != 1396 || info.TMDBID != 0 {
		t.Fatalf("ids = %d/%d, want series id only", info.TMDBID, info.TMDBSeriesID)
	}
}

func TestGetEpisodeDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396/season/1/episode/1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":62085,"name":"Pilot","overview":"Walter White.","air_date":"2008-01-20","season_number":1,"episode_number":1}`))
	}))
	defer server.Close()

	info, err := newClient(t, server.URL).GetEpisodeDetails(context.Background(), 1396, 1, 1)
	if err != nil {
		t.Fatalf("GetEpisodeDetails: %v", err)
	}
	if info.TMDBID != 62085 {
		t.Fatalf("TMDBID = %d, want the episode id", info.TMDBID)
	}
	if info.TMDBSeriesID != 1396 || info.Season != 1 || info.Episode != 1 {
		t.Fatalf("record = %+v", info)
	}
	if info.EpisodeTitle != "Pilot" || info.Year != 2008 {
		t.Fatalf("record = %+v", info)
	}
}

func TestGetExternalIDsNeverSetsTMDBID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603/external_ids":
			w.Write([]byte(`{"id":603,"imdb_id":"tt0133093","wikidata_id":"Q83495"}`))
		case "/tv/1396/season/1/episode/1/external_ids":
			w.Write([]byte(`{"id":62085,"imdb_id":"tt0959621","tvdb_id":349232}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	movie, err := client.GetExternalIDs(context.Background(), 603, media.TypeMovie, 0, 0)
	if err != nil {
		t.Fatalf("GetExternalIDs movie: %v", err)
	}
	if movie.TMDBID != 0 {
		t.Fatal("external ids must never claim the primary tmdb id")
	}
	if movie.IMDBID != "tt0133093" || movie.WikidataID != "Q83495" {
		t.Fatalf("record = %+v", movie)
	}

	episode, err := client.GetExternalIDs(context.Background(), 1396, media.TypeTV, 1, 1)
	if err != nil {
		t.Fatalf("GetExternalIDs episode: %v", err)
	}
	if episode.IMDBID != "tt0959621" || episode.TVDBID != 349232 {
		t.Fatalf("record = %+v", episode)
	}
}

func TestRateLimitRetriesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":603,"title":"The Matrix","original_title":"The Matrix","release_date":"1999-03-30"}`))
	}))
	defer server.Close()

	var slept time.Duration
	client := newClient(t, server.URL,
		tmdb.WithSleeper(func(d time.Duration) { slept = d }),
		tmdb.WithRandom(func() float64 { return 0.5 }),
	)
	info, err := client.GetMovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovieDetails: %v", err)
	}
	if info == nil || info.TMDBID != 603 {
		t.Fatalf("record = %+v", info)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	// 8s base plus 1 + 2*0.5 seconds of jitter.
	if slept != 10*time.Second {
		t.Fatalf("slept = %v, want 10s", slept)
	}
}

func TestRateLimitGivesUpAfterRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newClient(t, server.URL, tmdb.WithSleeper(func(time.Duration) {}))
	if _, err := client.GetMovieDetails(context.Background(), 603); err == nil {
		t.Fatal("expected error after second 429")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want exactly one retry", calls)
	}
}

func TestServerErrorReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := newClient(t, server.URL).GetMovieDetails(context.Background(), 603); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestMalformedJSONReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": not-json`))
	}))
	defer server.Close()

	if _, err := newClient(t, server.URL).GetMovieDetails(context.Background(), 603); err == nil {
		t.Fatal("expected decode error")
	}
}
