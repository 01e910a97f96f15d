// Package analysis is the HTTP client of the external writing-feedback API.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

const (
	endpointAnalyze = "/api/v1/analyze"
	endpointQuick   = "/api/v1/analyze/quick"
	endpointExtract = "/api/v1/vocabulary/extract"
	endpointCompare = "/api/v1/compare-progress"
)

// Client calls the analysis API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. baseURL must not end with a slash.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "analysis"),
	}
}

// AnalyzeDocument requests full feedback for a document.
func (c *Client) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	body := analyzeRequest{
		DocumentID:         req.DocumentID,
		Content:            req.Content,
		Persona:            toAPIPersona(req.Persona),
		HistoricalPatterns: req.HistoricalPatterns,
	}

	var resp analyzeResponse
	raw, err := c.post(ctx, endpointAnalyze, body, &resp)
	if err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "analysis completed",
		slog.String("document_id", req.DocumentID.String()),
		slog.Int("annotations", len(resp.Annotations)),
		slog.Float64("overall", resp.Scores.Overall),
	)
	return mapAnalyzeResponse(req.Content, resp, raw), nil
}

// QuickCheck runs a lightweight check that is not persisted.
func (c *Client) QuickCheck(ctx context.Context, content string) (*domain.QuickCheckResult, error) {
	var resp domain.QuickCheckResult
	if _, err := c.post(ctx, endpointQuick, contentRequest{Content: content}, &resp); err != nil {
		return nil, err
	}
	if resp.Issues == nil {
		resp.Issues = []domain.QuickCheckIssue{}
	}
	return &resp, nil
}

// ExtractVocabulary asks for vocabulary worth learning from the content.
func (c *Client) ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error) {
	var resp []domain.VocabularySuggestion
	if _, err := c.post(ctx, endpointExtract, contentRequest{Content: content}, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []domain.VocabularySuggestion{}
	}
	return resp, nil
}

// CompareProgress asks for the session's improvement summary.
func (c *Client) CompareProgress(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error) {
	var resp domain.ProgressComparison
	if _, err := c.post(ctx, endpointCompare, compareRequest{SessionID: sessionID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends a JSON body and decodes a 2xx JSON response into dst. It returns
// the raw response body. Failures are reported as *APIError, except for
// context cancellation which is returned as is.
func (c *Client) post(ctx context.Context, endpoint string, body, dst any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("analysis: encode %s: %w", endpoint, err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("analysis: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "analysis request", slog.String("endpoint", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		apiErr := networkError(endpoint, url, err)
		c.log.ErrorContext(ctx, "analysis request failed", slog.String("diagnostic", apiErr.Diagnostic()))
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("analysis: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := httpError(endpoint, resp, raw)
		c.log.ErrorContext(ctx, "analysis request failed", slog.String("diagnostic", apiErr.Diagnostic()))
		return nil, apiErr
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("analysis: decode %s: %w", endpoint, err)
	}
	return raw, nil
}
