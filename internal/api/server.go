package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mediaid/internal/logging"
	"mediaid/internal/media"
	"mediaid/internal/store"
)

// IdentifyService is the identification façade the handlers call.
type IdentifyService interface {
	IdentifyByFilename(ctx context.Context, path string) (*media.Info, error)
	IdentifyByMetadata(ctx context.Context, params media.MetadataParams) (*media.Info, error)
}

// Auditor records request history and answers statistics queries.
type Auditor interface {
	LogRequestStart(ctx context.Context, id, endpoint, filename, requesterIP string) error
	CompleteRequest(ctx context.Context, id, status string, mediaID int64, errorMessage string, elapsed time.Duration) error
	RecentRequests(ctx context.Context, limit int) ([]store.RequestRecord, error)
	RequestCounts(ctx context.Context) (total, last24h int64, err error)
}

// Server bundles the handlers and their collaborators.
type Server struct {
	identifier IdentifyService
	auditor    Auditor
	log        *slog.Logger
}

// NewServer wires the HTTP surface.
func NewServer(identifier IdentifyService, auditor Auditor, log *slog.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	return &Server{
		identifier: identifier,
		auditor:    auditor,
		log:        log.With(logging.FieldComponent, "api"),
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/guess", s.handleGuess)
		r.Get("/media-info", s.handleMediaInfo)
		r.Get("/health", s.handleHealth)
		r.Get("/statistics", s.handleStatistics)
	})
	return r
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
