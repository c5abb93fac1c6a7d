package store

import (
	"context"

	"mediaid/internal/services"
	"mediaid/internal/services/openai"
)

// RecordUsage stores the token accounting of one model call. It satisfies
// the classifier's Recorder interface.
func (s *Store) RecordUsage(ctx context.Context, requestID string, usage openai.Usage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO openai_history (
			request_id, input_tokens, cached_tokens, output_tokens, reasoning_tokens, total_tokens
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		nullString(requestID), usage.InputTokens, usage.CachedTokens,
		usage.OutputTokens, usage.ReasoningTokens, usage.TotalTokens)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "record_usage", "insert usage row", err)
	}
	return nil
}

// UsageTotals aggregates token spend across all recorded model calls.
type UsageTotals struct {
	Calls           int64
	InputTokens     int64
	CachedTokens    int64
	OutputTokens    int64
	ReasoningTokens int64
	TotalTokens     int64
}

// UsageSummary returns the aggregate token spend.
func (s *Store) UsageSummary(ctx context.Context) (UsageTotals, error) {
	var totals UsageTotals
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(cached_tokens), 0),
			COALESCE(SUM(output_tokens), 0), COALESCE(SUM(reasoning_tokens), 0),
			COALESCE(SUM(total_tokens), 0)
		FROM openai_history`).Scan(
		&totals.Calls, &totals.InputTokens, &totals.CachedTokens,
		&totals.OutputTokens, &totals.ReasoningTokens, &totals.TotalTokens)
	if err != nil {
		return UsageTotals{}, services.Wrap(services.ErrPersistence, "store", "usage_summary", "aggregate usage", err)
	}
	return totals, nil
}

var _ openai.Recorder = (*Store)(nil)
