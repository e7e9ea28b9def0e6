// Package scanner wraps the external site-scanning API. The client does a
// single call per audit and returns exactly what upstream reports, mapped
// into the domain shape; it never interprets findings.
package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ouestweb/siteaudit/pkg/adapters"
	"github.com/ouestweb/siteaudit/pkg/apperr"
	"github.com/ouestweb/siteaudit/pkg/models/api"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
)

const (
	auditPath = "/api/v1/audit"

	// Real website crawling is slow; leave the scanner plenty of time.
	defaultTimeout = 45 * time.Second
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient fails fast when the API key is absent: that is an operator
// error and must surface as a 500-class condition, never as a request
// reaching upstream without credentials.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperr.New(apperr.MissingConfiguration, "scanner API key is not configured")
	}
	if cfg.BaseURL == "" {
		return nil, apperr.New(apperr.MissingConfiguration, "scanner base URL is not configured")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}, nil
}

type auditRequest struct {
	URL string `json:"url"`
}

type upstreamError struct {
	Error string `json:"error"`
}

// PerformAudit submits url for scanning and returns the structured result.
// One attempt, no retries; timeouts surface as the generic audit failure.
func (c *Client) PerformAudit(ctx context.Context, url string) (domain.AuditResult, error) {
	body, err := json.Marshal(auditRequest{URL: url})
	if err != nil {
		return domain.AuditResult{}, fmt.Errorf("failed to encode audit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+auditPath, bytes.NewReader(body))
	if err != nil {
		return domain.AuditResult{}, fmt.Errorf("failed to build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.AuditResult{}, apperr.Wrap(apperr.UpstreamAuditFailure, "audit failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AuditResult{}, c.upstreamFailure(resp)
	}

	var result api.AuditResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.AuditResult{}, apperr.Wrap(apperr.UpstreamAuditFailure, "audit failed", err)
	}

	return adapters.MapAuditResultApiToDomain(result), nil
}

// upstreamFailure extracts the upstream error message when the body is the
// expected JSON error shape, and falls back to a generic message otherwise.
func (c *Client) upstreamFailure(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var upstream upstreamError
		if jsonErr := json.Unmarshal(raw, &upstream); jsonErr == nil && upstream.Error != "" {
			return apperr.Newf(apperr.UpstreamAuditFailure, "%s", upstream.Error)
		}
	}
	return apperr.Newf(apperr.UpstreamAuditFailure, "audit failed (status %d)", resp.StatusCode)
}
