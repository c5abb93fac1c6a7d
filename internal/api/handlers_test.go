package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediaid/internal/api"
	"mediaid/internal/media"
	"mediaid/internal/services"
	"mediaid/internal/store"
)

type stubIdentifier struct {
	byFilename func(ctx context.Context, path string) (*media.Info, error)
	byMetadata func(ctx context.Context, params media.MetadataParams) (*media.Info, error)
}

func (s *stubIdentifier) IdentifyByFilename(ctx context.Context, path string) (*media.Info, error) {
	if s.byFilename == nil {
		return nil, nil
	}
	return s.byFilename(ctx, path)
}

func (s *stubIdentifier) IdentifyByMetadata(ctx context.Context, params media.MetadataParams) (*media.Info, error) {
	if s.byMetadata == nil {
		return nil, nil
	}
	return s.byMetadata(ctx, params)
}

type auditEntry struct {
	id       string
	endpoint string
	filename string
	ip       string
}

type completion struct {
	id      string
	status  string
	mediaID int64
	message string
}

type stubAuditor struct {
	starts      []auditEntry
	completions []completion
	records     []store.RequestRecord
	total       int64
	last24h     int64
	countsErr   error
}

func (a *stubAuditor) LogRequestStart(_ context.Context, id, endpoint, filename, requesterIP string) error {
	a.starts = append(a.starts, auditEntry{id: id, endpoint: endpoint, filename: filename, ip: requesterIP})
	return nil
}

func (a *stubAuditor) CompleteRequest(_ context.Context, id, status string, mediaID int64, errorMessage string, _ time.Duration) error {
	a.completions = append(a.completions, completion{id: id, status: status, mediaID: mediaID, message: errorMessage})
	return nil
}

func (a *stubAuditor) RecentRequests(_ context.Context, limit int) ([]store.RequestRecord, error) {
	if limit < len(a.records) {
		return a.records[:limit], nil
	}
	return a.records, nil
}

func (a *stubAuditor) RequestCounts(_ context.Context) (int64, int64, error) {
	if a.countsErr != nil {
		return 0, 0, a.countsErr
	}
	return a.total, a.last24h, nil
}

func newTestServer(identifier api.IdentifyService, auditor api.Auditor) http.Handler {
	return api.NewServer(identifier, auditor, nil).Router()
}

func TestGuessMissingFilenameReturnsBadRequest(t *testing.T) {
	auditor := &stubAuditor{}
	handler := newTestServer(&stubIdentifier{}, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/guess", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Filename not provided" {
		t.Fatalf("detail = %q", body["detail"])
	}
	if len(auditor.starts) != 0 {
		t.Fatalf("expected no audit row for rejected request, got %d", len(auditor.starts))
	}
}

func TestGuessIdentifiedReturnsRecord(t *testing.T) {
	auditor := &stubAuditor{}
	identifier := &stubIdentifier{
		byFilename: func(ctx context.Context, path string) (*media.Info, error) {
			if path != "Heat.1995.1080p.mkv" {
				t.Fatalf("path = %q", path)
			}
			if _, ok := services.RequestIDFromContext(ctx); !ok {
				t.Fatal("request ID missing from context")
			}
			return &media.Info{
				ID:        "42",
				Title:     "Heat",
				MediaType: media.TypeMovie,
				Year:      1995,
				TMDBID:    949,
				UsedTMDB:  true,
			}, nil
		},
	}
	handler := newTestServer(identifier, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/guess?it=Heat.1995.1080p.mkv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["title"] != "Heat" {
		t.Fatalf("title = %v", body["title"])
	}
	if body["tmdb_id"] != float64(949) {
		t.Fatalf("tmdb_id = %v", body["tmdb_id"])
	}
	if body["season"] != nil {
		t.Fatalf("season = %v, want null", body["season"])
	}
	if body["used_tmdb"] != true {
		t.Fatalf("used_tmdb = %v", body["used_tmdb"])
	}

	if len(auditor.starts) != 1 {
		t.Fatalf("audit starts = %d, want 1", len(auditor.starts))
	}
	start := auditor.starts[0]
	if start.endpoint != "/api/guess" || start.filename != "Heat.1995.1080p.mkv" {
		t.Fatalf("unexpected audit start %+v", start)
	}
	if len(auditor.completions) != 1 {
		t.Fatalf("audit completions = %d, want 1", len(auditor.completions))
	}
	done := auditor.completions[0]
	if done.id != start.id {
		t.Fatalf("completion ID %q does not match start ID %q", done.id, start.id)
	}
	if done.status != "200" || done.mediaID != 42 || done.message != "" {
		t.Fatalf("unexpected completion %+v", done)
	}
}

func TestGuessUnidentifiedReturnsNoContent(t *testing.T) {
	auditor := &stubAuditor{}
	handler := newTestServer(&stubIdentifier{}, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/guess?it=unknowable.bin", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if len(auditor.completions) != 1 || auditor.completions[0].status != "204" {
		t.Fatalf("unexpected completions %+v", auditor.completions)
	}
}

func TestGuessPipelineErrorReturnsServerError(t *testing.T) {
	auditor := &stubAuditor{}
	identifier := &stubIdentifier{
		byFilename: func(context.Context, string) (*media.Info, error) {
			return nil, fmt.Errorf("stage tmdb-identify-movie: %w", services.ErrPipeline)
		},
	}
	handler := newTestServer(identifier, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/guess?it=broken.mkv", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if len(auditor.completions) != 1 {
		t.Fatalf("audit completions = %d, want 1", len(auditor.completions))
	}
	done := auditor.completions[0]
	if done.status != "500" || done.message == "" {
		t.Fatalf("unexpected completion %+v", done)
	}
}

func TestMediaInfoInvalidParamsReturnBadRequest(t *testing.T) {
	auditor := &stubAuditor{}
	identifier := &stubIdentifier{
		byMetadata: func(_ context.Context, params media.MetadataParams) (*media.Info, error) {
			_, err := media.NewMetadataRequest(params)
			return nil, err
		},
	}
	handler := newTestServer(identifier, auditor)

	rec := httptest.NewRecorder()
	target := "/api/media-info?media_type=tv&title=The+Expanse&year=2015&season=1"
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(auditor.completions) != 1 || auditor.completions[0].status != "400" {
		t.Fatalf("unexpected completions %+v", auditor.completions)
	}
}

func TestMediaInfoPassesParamsThrough(t *testing.T) {
	var got media.MetadataParams
	identifier := &stubIdentifier{
		byMetadata: func(_ context.Context, params media.MetadataParams) (*media.Info, error) {
			got = params
			return &media.Info{ID: "7", Title: params.Title, MediaType: media.TypeTV, Year: params.Year, TMDBSeriesID: 63639, Season: 1, Episode: 4}, nil
		},
	}
	handler := newTestServer(identifier, &stubAuditor{})

	rec := httptest.NewRecorder()
	target := "/api/media-info?media_type=tv&title=The+Expanse&year=2015&season=1&episode=4"
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := media.MetadataParams{MediaType: "tv", Title: "The Expanse", Year: 2015, Season: 1, Episode: 4}
	if got != want {
		t.Fatalf("params = %+v, want %+v", got, want)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(&stubIdentifier{}, &stubAuditor{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "healthy" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	received := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	auditor := &stubAuditor{
		total:   12,
		last24h: 3,
		records: []store.RequestRecord{
			{
				ID:            "0b5e7a1e-9e0f-4f6a-9c37-6a2b9b8dd001",
				Endpoint:      "/api/guess",
				Filename:      "Heat.1995.mkv",
				RequesterIP:   "192.0.2.10",
				ResultStatus:  "200",
				ResultMediaID: 42,
				ReceivedAt:    received,
				RespondedAt:   received.Add(850 * time.Millisecond),
				ElapsedTime:   0.85,
			},
			{
				ID:           "0b5e7a1e-9e0f-4f6a-9c37-6a2b9b8dd002",
				Endpoint:     "/api/guess",
				Filename:     "junk.bin",
				ResultStatus: "204",
				ReceivedAt:   received.Add(-time.Hour),
				RespondedAt:  received.Add(-time.Hour),
			},
		},
	}
	handler := newTestServer(&stubIdentifier{}, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics?num_requests=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Total          int64 `json:"total"`
		Total24h       int64 `json:"total_24h"`
		RecentRequests []struct {
			ID            string `json:"id"`
			Filename      string `json:"filename"`
			ResultStatus  string `json:"result_status"`
			ResultMediaID *int64 `json:"result_media_id"`
		} `json:"recent_requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 12 || body.Total24h != 3 {
		t.Fatalf("totals = %d/%d, want 12/3", body.Total, body.Total24h)
	}
	if len(body.RecentRequests) != 2 {
		t.Fatalf("recent = %d, want 2", len(body.RecentRequests))
	}
	first := body.RecentRequests[0]
	if first.Filename != "Heat.1995.mkv" || first.ResultStatus != "200" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.ResultMediaID == nil || *first.ResultMediaID != 42 {
		t.Fatalf("result_media_id = %v", first.ResultMediaID)
	}
	if body.RecentRequests[1].ResultMediaID != nil {
		t.Fatalf("expected null media ID for unidentified row")
	}
}

func TestStatisticsFailureReturnsServerError(t *testing.T) {
	auditor := &stubAuditor{countsErr: fmt.Errorf("connection refused: %w", services.ErrPersistence)}
	handler := newTestServer(&stubIdentifier{}, auditor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
