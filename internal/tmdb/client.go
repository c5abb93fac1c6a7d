package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediaid/internal/logging"
	"mediaid/internal/media"
	"mediaid/internal/services"
)

// rateLimitBase is the fixed part of the wait after a 429; a uniform
// 1..3 second jitter is added on top.
const rateLimitBase = 8 * time.Second

// Client provides access to the TMDB API.
type Client struct {
	token      string
	baseURL    string
	language   string
	httpClient *http.Client
	log        *slog.Logger
	sleep      func(time.Duration)
	random     func() float64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With(logging.FieldComponent, "tmdb")
		}
	}
}

// WithSleeper overrides the rate-limit wait. Tests use this to avoid real
// multi-second sleeps.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithRandom overrides the jitter source with a function returning a value
// in [0, 1).
func WithRandom(random func() float64) Option {
	return func(c *Client) {
		if random != nil {
			c.random = random
		}
	}
}

// New creates a TMDB client. The API token is required.
func New(token, baseURL, language string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tmdb", "new", "api token required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tmdb", "new", "base url required", nil)
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logging.NewNop(),
		sleep:      time.Sleep,
		random:     rand.Float64,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// searchResult is one entry of a paginated search response. Movie and TV
// payloads use different field names for the same concepts.
type searchResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int64 `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
}

type searchResponse struct {
	Page         int            `json:"page"`
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

type genreEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// detailsPayload covers both /movie/{id} and /tv/{id} responses.
type detailsPayload struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Name             string       `json:"name"`
	OriginalTitle    string       `json:"original_title"`
	OriginalName     string       `json:"original_name"`
	Overview         string       `json:"overview"`
	Tagline          string       `json:"tagline"`
	ReleaseDate      string       `json:"release_date"`
	FirstAirDate     string       `json:"first_air_date"`
	OriginalLanguage string       `json:"original_language"`
	Genres           []genreEntry `json:"genres"`
}

type episodePayload struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
}

type externalIDsPayload struct {
	IMDBID      string `json:"imdb_id"`
	TVDBID      int64  `json:"tvdb_id"`
	TVRageID    int64  `json:"tvrage_id"`
	WikidataID  string `json:"wikidata_id"`
	FacebookID  string `json:"facebook_id"`
	InstagramID string `json:"instagram_id"`
	TwitterID   string `json:"twitter_id"`
}

// SearchMovie looks a movie up by title and optional year. A miss returns
// (nil, nil).
func (c *Client) SearchMovie(ctx context.Context, title string, year int) (*media.Info, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrInput, "tmdb", "search_movie", "title must not be empty", nil)
	}
	params := searchParams(title)
	if year > 0 {
		params.Set("primary_release_year", strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		c.log.Debug("movie search returned no results", "title", title, "year", year)
		return nil, nil
	}
	hit := payload.Results[0]
	info := &media.Info{
		TMDBID:           hit.ID,
		Title:            hit.Title,
		OriginalTitle:    hit.OriginalTitle,
		Overview:         hit.Overview,
		Year:             yearFrom(hit.ReleaseDate, hit.FirstAirDate, ""),
		Genres:           media.GenreNames(hit.GenreIDs),
		OriginalLanguage: hit.OriginalLanguage,
		MediaType:        media.TypeMovie,
		UsedTMDB:         true,
	}
	info.DeriveSearchableReference()
	return info, nil
}

// SearchSeries looks a TV series up by title and optional year. The result
// carries the series ID only; the primary ID stays free for the episode.
func (c *Client) SearchSeries(ctx context.Context, title string, year int) (*media.Info, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrInput, "tmdb", "search_series", "title must not be empty", nil)
	}
	params := searchParams(title)
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		c.log.Debug("series search returned no results", "title", title, "year", year)
		return nil, nil
	}
	hit := payload.Results[0]
	info := &media.Info{
		TMDBSeriesID:     hit.ID,
		Title:            hit.Name,
		OriginalTitle:    hit.OriginalName,
		Overview:         hit.Overview,
		Year:             yearFrom("", hit.FirstAirDate, ""),
		Genres:           media.GenreNames(hit.GenreIDs),
		OriginalLanguage: hit.OriginalLanguage,
		MediaType:        media.TypeTV,
		UsedTMDB:         true,
	}
	info.DeriveSearchableReference()
	return info, nil
}

// GetMovieDetails fetches full movie metadata by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, tmdbID int64) (*media.Info, error) {
	if tmdbID <= 0 {
		return nil, services.Wrap(services.ErrInput, "tmdb", "movie_details", "id must be positive", nil)
	}
	var payload detailsPayload
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &payload); err != nil {
		return nil, err
	}
	info := &media.Info{
		TMDBID:           payload.ID,
		Title:            payload.Title,
		OriginalTitle:    payload.OriginalTitle,
		Overview:         payload.Overview,
		Tagline:          payload.Tagline,
		Year:             yearFrom(payload.ReleaseDate, payload.FirstAirDate, ""),
		Genres:           genreNames(payload.Genres),
		OriginalLanguage: payload.OriginalLanguage,
		MediaType:        media.TypeMovie,
		UsedTMDB:         true,
	}
	info.DeriveSearchableReference()
	return info, nil
}

// GetSeriesDetails fetches series-level metadata. Like SearchSeries it sets
// the series ID only.
func (c *Client) GetSeriesDetails(ctx context.Context, seriesID int64) (*media.Info, error) {
	if seriesID <= 0 {
		return nil, services.Wrap(services.ErrInput, "tmdb", "series_details", "id must be positive", nil)
	}
	var payload detailsPayload
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", seriesID), nil, &payload); err != nil {
		return nil, err
	}
	info := &media.Info{
		TMDBSeriesID:     payload.ID,
		Title:            payload.Name,
		OriginalTitle:    payload.OriginalName,
		Overview:         payload.Overview,
		Tagline:          payload.Tagline,
		Year:             yearFrom("", payload.FirstAirDate, ""),
		Genres:           genreNames(payload.Genres),
		OriginalLanguage: payload.OriginalLanguage,
		MediaType:        media.TypeTV,
		UsedTMDB:         true,
	}
	info.DeriveSearchableReference()
	return info, nil
}

// GetEpisodeDetails fetches one episode. The record's primary TMDB ID is
// the episode's own ID.
func (c *Client) GetEpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*media.Info, error) {
	if seriesID <= 0 || season < 1 || episode < 1 {
		return nil, services.Wrap(services.ErrInput, "tmdb", "episode_details", "series id, season and episode must be positive", nil)
	}
	var payload episodePayload
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", seriesID, season, episode)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	info := &media.Info{
		TMDBID:       payload.ID,
		TMDBSeriesID: seriesID,
		EpisodeTitle: payload.Name,
		Season:       payload.SeasonNumber,
		Episode:      payload.EpisodeNumber,
		Year:         yearFrom("", "", payload.AirDate),
		MediaType:    media.TypeTV,
		UsedTMDB:     true,
	}
	if info.Season == 0 {
		info.Season = season
	}
	if info.Episode == 0 {
		info.Episode = episode
	}
	return info, nil
}

// GetExternalIDs fetches cross-provider identifiers for a movie, a series,
// or a single episode. It never sets the record's TMDB ID.
func (c *Client) GetExternalIDs(ctx context.Context, id int64, mediaType media.Type, season, episode int) (*media.Info, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrInput, "tmdb", "external_ids", "id must be positive", nil)
	}
	var path string
	switch {
	case media.IsMovie(mediaType):
		path = fmt.Sprintf("/movie/%d/external_ids", id)
	case media.IsTV(mediaType) && season >= 1 && episode >= 1:
		path = fmt.Sprintf("/tv/%d/season/%d/episode/%d/external_ids", id, season, episode)
	case media.IsTV(mediaType):
		path = fmt.Sprintf("/tv/%d/external_ids", id)
	default:
		return nil, services.Wrap(services.ErrInput, "tmdb", "external_ids", "media type must be movie or tv", nil)
	}
	var payload externalIDsPayload
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return &media.Info{
		IMDBID:      payload.IMDBID,
		TVDBID:      payload.TVDBID,
		TVRageID:    payload.TVRageID,
		WikidataID:  payload.WikidataID,
		FacebookID:  payload.FacebookID,
		InstagramID: payload.InstagramID,
		TwitterID:   payload.TwitterID,
		UsedTMDB:    true,
	}, nil
}

// get performs one authenticated GET with a single retry after a 429.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return services.Wrap(services.ErrPipeline, "tmdb", "get", "parse url", err)
	}
	if params == nil {
		params = url.Values{}
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	status, body, err := c.do(ctx, endpoint.String())
	if err != nil {
		return err
	}
	if status == http.StatusTooManyRequests {
		wait := rateLimitBase + time.Duration((1+2*c.random())*float64(time.Second))
		c.log.Warn("rate limited, retrying once", "path", path, "wait", wait)
		c.sleep(wait)
		status, body, err = c.do(ctx, endpoint.String())
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		c.log.Error("unexpected provider status", "path", path, "status", status)
		return services.Wrap(services.ErrPipeline, "tmdb", "get", fmt.Sprintf("provider returned %d", status), nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return services.Wrap(services.ErrPipeline, "tmdb", "get", "decode response", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, services.Wrap(services.ErrPipeline, "tmdb", "do", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, nil, services.Wrap(services.ErrPipeline, "tmdb", "do", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, services.Wrap(services.ErrPipeline, "tmdb", "do", "read response", err)
	}
	return resp.StatusCode, body, nil
}

func searchParams(query string) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "true")
	params.Set("page", "1")
	return params
}

// yearFrom extracts the release year from the first non-empty date,
// preferring release over first-air over episode air dates.
func yearFrom(release, firstAir, air string) int {
	for _, date := range []string{release, firstAir, air} {
		if len(date) < 4 {
			continue
		}
		if year, err := strconv.Atoi(date[:4]); err == nil && year > 0 {
			return year
		}
	}
	return 0
}

// genreNames flattens a details-style genre list into canonical names.
func genreNames(entries []genreEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}
	return media.DedupeGenres(names)
}
