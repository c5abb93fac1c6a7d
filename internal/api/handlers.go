package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mediaid/internal/media"
	"mediaid/internal/services"
	"mediaid/internal/store"
)

// handleGuess identifies media from a filename passed as the "it" query
// parameter.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("it")
	if filename == "" {
		s.respondError(w, http.StatusBadRequest, "Filename not provided")
		return
	}
	s.identifyAndRespond(w, r, "/api/guess", filename, func(ctx context.Context) (*media.Info, error) {
		return s.identifier.IdentifyByFilename(ctx, filename)
	})
}

// handleMediaInfo identifies media from explicit metadata query
// parameters: media_type, title, year, and for TV also season and episode.
func (s *Server) handleMediaInfo(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := media.MetadataParams{
		MediaType:    query.Get("media_type"),
		Title:        query.Get("title"),
		Year:         intParam(query.Get("year")),
		Season:       intParam(query.Get("season")),
		Episode:      intParam(query.Get("episode")),
		TMDBID:       int64Param(query.Get("tmdb_id")),
		TMDBSeriesID: int64Param(query.Get("tmdb_series_id")),
		IMDBID:       query.Get("imdb_id"),
	}
	s.identifyAndRespond(w, r, "/api/media-info", params.Title, func(ctx context.Context) (*media.Info, error) {
		return s.identifier.IdentifyByMetadata(ctx, params)
	})
}

// identifyAndRespond runs one identification under a fresh request ID and
// maps the outcome onto the HTTP status vocabulary.
func (s *Server) identifyAndRespond(w http.ResponseWriter, r *http.Request, endpoint, subject string, run func(context.Context) (*media.Info, error)) {
	requestID := uuid.NewString()
	started := time.Now()
	ctx := services.WithRequestID(r.Context(), requestID)

	if err := s.auditor.LogRequestStart(ctx, requestID, endpoint, subject, clientIP(r)); err != nil {
		s.log.Error("log request start", "error", err)
	}

	info, err := run(ctx)
	status := http.StatusOK
	var mediaID int64
	errorMessage := ""

	switch {
	case errors.Is(err, services.ErrInput):
		status = http.StatusBadRequest
		errorMessage = err.Error()
	case err != nil:
		status = http.StatusInternalServerError
		errorMessage = err.Error()
	case info == nil:
		status = http.StatusNoContent
	default:
		if id, parseErr := strconv.ParseInt(info.ID, 10, 64); parseErr == nil {
			mediaID = id
		}
	}

	if auditErr := s.auditor.CompleteRequest(ctx, requestID, strconv.Itoa(status), mediaID, errorMessage, time.Since(started)); auditErr != nil {
		s.log.Error("complete request audit", "error", auditErr)
	}

	switch status {
	case http.StatusBadRequest:
		s.respondError(w, status, errorMessage)
	case http.StatusInternalServerError:
		s.log.Error("identification failed", "endpoint", endpoint, "subject", subject, "error", err)
		s.respondError(w, status, "Error processing request: "+errorMessage)
	case http.StatusNoContent:
		w.WriteHeader(status)
	default:
		s.respondJSON(w, status, toMediaPayload(info))
	}
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "healthy"})
}

type requestSummary struct {
	ID            string  `json:"id"`
	Endpoint      string  `json:"endpoint"`
	Filename      string  `json:"filename"`
	RequesterIP   string  `json:"requester_ip"`
	ResultStatus  string  `json:"result_status"`
	ResultMediaID *int64  `json:"result_media_id"`
	ReceivedAt    string  `json:"received_at"`
	RespondedAt   string  `json:"responded_at"`
	ErrorMessage  *string `json:"error_message"`
	ElapsedTime   float64 `json:"elapsed_time"`
}

type statisticsPayload struct {
	Total          int64            `json:"total"`
	Total24h       int64            `json:"total_24h"`
	RecentRequests []requestSummary `json:"recent_requests"`
}

// handleStatistics summarizes the request audit trail.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("num_requests"))
	if limit < 1 {
		limit = 100
	}

	total, last24h, err := s.auditor.RequestCounts(r.Context())
	if err != nil {
		s.log.Error("request counts", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Error retrieving statistics")
		return
	}
	records, err := s.auditor.RecentRequests(r.Context(), limit)
	if err != nil {
		s.log.Error("recent requests", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Error retrieving statistics")
		return
	}

	payload := statisticsPayload{
		Total:          total,
		Total24h:       last24h,
		RecentRequests: make([]requestSummary, 0, len(records)),
	}
	for _, rec := range records {
		payload.RecentRequests = append(payload.RecentRequests, toRequestSummary(rec))
	}
	s.respondJSON(w, http.StatusOK, payload)
}

func toRequestSummary(rec store.RequestRecord) requestSummary {
	summary := requestSummary{
		ID:           rec.ID,
		Endpoint:     rec.Endpoint,
		Filename:     rec.Filename,
		RequesterIP:  rec.RequesterIP,
		ResultStatus: rec.ResultStatus,
		ReceivedAt:   rec.ReceivedAt.UTC().Format(time.RFC3339),
		RespondedAt:  rec.RespondedAt.UTC().Format(time.RFC3339),
		ElapsedTime:  rec.ElapsedTime,
	}
	if rec.ResultMediaID != 0 {
		id := rec.ResultMediaID
		summary.ResultMediaID = &id
	}
	if rec.ErrorMessage != "" {
		msg := rec.ErrorMessage
		summary.ErrorMessage = &msg
	}
	return summary
}

func intParam(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func int64Param(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
