package store

import (
	"context"
	"time"

	"mediaid/internal/services"
)

// RequestRecord is one row of the request audit trail.
type RequestRecord struct {
	ID            string
	Endpoint      string
	Filename      string
	RequesterIP   string
	ResultStatus  string
	ResultMediaID int64
	ReceivedAt    time.Time
	RespondedAt   time.Time
	ErrorMessage  string
	ElapsedTime   float64
}

// LogRequestStart records an incoming request before the pipeline runs.
// The caller supplies the request ID so it can thread the same ID through
// the pipeline context.
func (s *Store) LogRequestStart(ctx context.Context, id, endpoint, filename, requesterIP string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO request_history (id, endpoint, filename, requester_ip, received_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		id, endpoint, nullString(filename), nullString(requesterIP))
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "log_request_start", "insert request row", err)
	}
	return nil
}

// CompleteRequest closes the audit row once a response has been produced.
func (s *Store) CompleteRequest(ctx context.Context, id, status string, mediaID int64, errorMessage string, elapsed time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE request_history
		SET result_status = $2, result_media_id = $3, responded_at = NOW(),
			error_message = $4, elapsed_time = $5
		WHERE id = $1`,
		id, status, nullInt64(mediaID), nullString(errorMessage), elapsed.Seconds())
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "complete_request", "update request row", err)
	}
	return nil
}

// RequestCounts returns the all-time and trailing-24-hour request totals.
func (s *Store) RequestCounts(ctx context.Context) (total, last24h int64, err error) {
	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE received_at >= NOW() - INTERVAL '24 hours')
		FROM request_history`).Scan(&total, &last24h)
	if err != nil {
		return 0, 0, services.Wrap(services.ErrPersistence, "store", "request_counts", "count request rows", err)
	}
	return total, last24h, nil
}

// RecentRequests returns the latest audit rows, newest first.
func (s *Store) RecentRequests(ctx context.Context, limit int) ([]RequestRecord, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.endpoint, COALESCE(r.filename, ''), COALESCE(r.requester_ip, ''),
			COALESCE(r.result_status, ''), COALESCE(r.result_media_id, 0),
			r.received_at, COALESCE(r.responded_at, r.received_at),
			COALESCE(r.error_message, ''), COALESCE(r.elapsed_time, 0)
		FROM request_history r
		ORDER BY r.received_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "recent_requests", "query request rows", err)
	}
	defer rows.Close()

	var records []RequestRecord
	for rows.Next() {
		var rec RequestRecord
		if err := rows.Scan(
			&rec.ID, &rec.Endpoint, &rec.Filename, &rec.RequesterIP,
			&rec.ResultStatus, &rec.ResultMediaID,
			&rec.ReceivedAt, &rec.RespondedAt,
			&rec.ErrorMessage, &rec.ElapsedTime,
		); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "store", "recent_requests", "scan request row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "recent_requests", "iterate request rows", err)
	}
	return records, nil
}
