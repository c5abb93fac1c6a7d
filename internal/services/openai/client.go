package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mediaid/internal/logging"
	"mediaid/internal/media"
	"mediaid/internal/services"
)

// Usage captures the token accounting of one model call.
type Usage struct {
	InputTokens     int64
	CachedTokens    int64
	OutputTokens    int64
	ReasoningTokens int64
	TotalTokens     int64
}

// Recorder receives per-call usage for auditing. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordUsage(ctx context.Context, requestID string, usage Usage) error
}

// Client talks to the model provider's responses endpoint.
type Client struct {
	apiKey       string
	organization string
	model        string
	baseURL      string
	httpClient   *http.Client
	log          *slog.Logger
	recorder     Recorder
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
			c.log = log.With(logging.FieldComponent, "openai")
		}
	}
}

// WithRecorder attaches a usage recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// New creates a classifier client. The API key is required.
func New(apiKey, organization, model, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "openai", "new", "api key required", nil)
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	client := &Client{
		apiKey:       apiKey,
		organization: strings.TrimSpace(organization),
		model:        model,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		log:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ClassifyType asks the model whether the path names a movie or a TV
// episode. Any failure or off-format answer comes back as unknown.
func (c *Client) ClassifyType(ctx context.Context, path string) media.Type {
	answer, ok := c.ask(ctx, classifyTypeTask, path)
	if !ok {
		return media.TypeUnknown
	}
	switch answer {
	case "movie":
		return media.TypeMovie
	case "tv":
		return media.TypeTV
	case "unknown":
		return media.TypeUnknown
	default:
		c.log.Warn("rejected off-format type answer", "answer", answer)
		return media.TypeUnknown
	}
}

// ExtractMovieTitle asks the model for the movie title in the path. An
// empty string means no usable answer.
func (c *Client) ExtractMovieTitle(ctx context.Context, path string) string {
	answer, ok := c.ask(ctx, movieTitleTask, path)
	if !ok || answer == "unknown" {
		return ""
	}
	return answer
}

// ExtractSeriesTitle asks the model for the show title in the path.
func (c *Client) ExtractSeriesTitle(ctx context.Context, path string) string {
	answer, ok := c.ask(ctx, seriesTitleTask, path)
	if !ok || answer == "unknown" {
		return ""
	}
	return answer
}

// ExtractSeasonEpisode asks the model for season and episode numbers.
// (0, 0) means no usable answer.
func (c *Client) ExtractSeasonEpisode(ctx context.Context, path string) (int, int) {
	answer, ok := c.ask(ctx, seasonEpisodeTask, path)
	if !ok {
		return 0, 0
	}
	season, episode, ok := ParseSeasonEpisode(answer)
	if !ok {
		c.log.Warn("rejected off-format season/episode answer", "answer", answer)
		return 0, 0
	}
	return season, episode
}

type responsesRequest struct {
	Model        string  `json:"model"`
	Instructions string  `json:"instructions"`
	Input        string  `json:"input"`
	Temperature  float64 `json:"temperature"`
}

type responsesPayload struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage struct {
		InputTokens        int64 `json:"input_tokens"`
		InputTokensDetails struct {
			CachedTokens int64 `json:"cached_tokens"`
		} `json:"input_tokens_details"`
		OutputTokens        int64 `json:"output_tokens"`
		OutputTokensDetails struct {
			ReasoningTokens int64 `json:"reasoning_tokens"`
		} `json:"output_tokens_details"`
		TotalTokens int64 `json:"total_tokens"`
	} `json:"usage"`
}

// ask performs one model call and vets the answer shape. The bool result
// is false for transport errors, rate limits, and chatty answers.
func (c *Client) ask(ctx context.Context, task, path string) (string, bool) {
	body, err := json.Marshal(responsesRequest{
		Model:        c.model,
		Instructions: systemInstructions,
		Input:        buildInput(task, path),
		Temperature:  0.1,
	})
	if err != nil {
		c.log.Error("encode request", "error", err)
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		c.log.Error("build request", "error", err)
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("model call failed", "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.log.Error("model provider rate limit exceeded")
		return "", false
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("unexpected provider status", "status", resp.StatusCode)
		return "", false
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("read response", "error", err)
		return "", false
	}
	var payload responsesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.log.Error("decode response", "error", err)
		return "", false
	}

	c.recordUsage(ctx, payload)

	answer := strings.TrimSpace(outputText(payload))
	if answer == "" || strings.Contains(answer, "\n") || strings.Contains(answer, "```") {
		c.log.Warn("rejected chatty model answer", "answer", answer)
		return "", false
	}
	return answer, true
}

func (c *Client) recordUsage(ctx context.Context, payload responsesPayload) {
	if c.recorder == nil {
		return
	}
	usage := Usage{
		InputTokens:     payload.Usage.InputTokens,
		CachedTokens:    payload.Usage.InputTokensDetails.CachedTokens,
		OutputTokens:    payload.Usage.OutputTokens,
		ReasoningTokens: payload.Usage.OutputTokensDetails.ReasoningTokens,
		TotalTokens:     payload.Usage.TotalTokens,
	}
	requestID, _ := services.RequestIDFromContext(ctx)
	if err := c.recorder.RecordUsage(ctx, requestID, usage); err != nil {
		c.log.Error("record usage", "error", err, logging.FieldRequestID, requestID)
	}
}

func outputText(payload responsesPayload) string {
	var builder strings.Builder
	for _, item := range payload.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" || content.Type == "" {
				builder.WriteString(content.Text)
			}
		}
	}
	return builder.String()
}

// ParseSeasonEpisode maps a "season:N, episode:M" answer to two integers.
// Any deviation from the exact shape reports false.
func ParseSeasonEpisode(answer string) (int, int, bool) {
	parts := strings.Split(answer, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	season, ok := labeledNumber(parts[0], "season")
	if !ok {
		return 0, 0, false
	}
	episode, ok := labeledNumber(parts[1], "episode")
	if !ok {
		return 0, 0, false
	}
	return season, episode, true
}

func labeledNumber(part, label string) (int, bool) {
	fields := strings.Split(strings.TrimSpace(part), ":")
	if len(fields) != 2 || strings.TrimSpace(fields[0]) != label {
		return 0, false
	}
	value := strings.TrimSpace(fields[1])
	if value == "" {
		return 0, false
	}
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
