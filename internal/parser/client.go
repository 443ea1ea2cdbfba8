// Package parser implements the HTTP client for the external parser
// service. The service is a black box: one POST /parse round trip per
// ingestion attempt plus a GET /health liveness probe.
package parser

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

	"cobalt/internal/domain"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// Client talks to the parser service over HTTP with a fixed timeout.
// Construct once and inject; the HTTP client is owned here, not shared
// module state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a parser client for the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Parse submits the project for analysis. Transport errors, timeouts and
// non-2xx statuses all come back as *domain.ParserUnavailableError; a
// well-formed response is returned as-is, success flag included.
func (c *Client) Parse(ctx context.Context, req *uploadSvc.ParseRequest) (*uploadSvc.ParseResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal parse request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build parse request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.ParserUnavailableError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.ParserUnavailableError{
			Reason: fmt.Sprintf("status %d", resp.StatusCode),
		}
	}

	var parsed uploadSvc.ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.ParserUnavailableError{
			Reason: fmt.Sprintf("invalid response body: %v", err),
		}
	}

	c.logger.Debug("parser responded",
		"success", parsed.Success,
		"version", parsed.Version,
		"files", len(req.Files),
	)

	return &parsed, nil
}

// Health probes GET /health. Liveness only; never called on the ingestion
// path.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &domain.ParserUnavailableError{Reason: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return &domain.ParserUnavailableError{
			Reason: fmt.Sprintf("health status %d", resp.StatusCode),
		}
	}

	return nil
}
