// Package api implements the Gateway port over HTTP and the typed resource
// client for the budget backend on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
	"github.com/ericfisherdev/budgetctl/internal/metrics"
)

// APIPrefix is the version prefix every backend path lives under.
const APIPrefix = "/api/v1"

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 8 << 20

// RequestIDHeader carries a per-request correlation id to the backend.
const RequestIDHeader = "X-Request-ID"

// Compile-time interface satisfaction check.
var _ driven.Gateway = (*Gateway)(nil)

// GatewayConfig holds the startup-resolved settings of a Gateway.
type GatewayConfig struct {
	// BaseURL is the backend's root address, without the /api/v1 prefix.
	BaseURL string
	Timeout time.Duration
	// Cache enables the ETag/Cache-Control aware in-memory HTTP cache.
	Cache bool
}

// Gateway is the single choke point for backend calls. It attaches the bearer
// credential when one is present and normalizes every failure into a
// *model.APIError. It never retries and never mutates the session.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	tokens     driven.TokenSource
	logger     *slog.Logger
}

// NewGateway creates a Gateway with the following transport stack:
//  1. httpcache (conditional request caching, when cfg.Cache is set)
//  2. net/http default transport, bounded by cfg.Timeout
func NewGateway(cfg GatewayConfig, tokens driven.TokenSource, logger *slog.Logger) (*Gateway, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Cache {
		transport = httpcache.NewMemoryCacheTransport()
	}

	return NewGatewayWithHTTPClient(&http.Client{Transport: transport, Timeout: timeout}, cfg.BaseURL, tokens, logger)
}

// NewGatewayWithHTTPClient creates a Gateway with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewGatewayWithHTTPClient(httpClient *http.Client, baseURL string, tokens driven.TokenSource, logger *slog.Logger) (*Gateway, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(u.String(), "/") + APIPrefix,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// BaseURL returns the resolved base address including the API prefix.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Send issues one API call. path is relative to the API prefix and must start
// with "/". On a 2xx response the raw body is returned.
func (g *Gateway) Send(ctx context.Context, method, path string, opts driven.RequestOptions) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	body, status, err := g.do(ctx, method, path, opts, requestID)

	outcome := "ok"
	if err != nil {
		outcome = model.KindOf(err).String()
	}
	elapsed := time.Since(start)
	metrics.RecordGatewayRequest(method, path, outcome, elapsed)

	g.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", status,
		"outcome", outcome,
		"request_id", requestID,
		"duration", elapsed.Round(time.Millisecond),
	)

	return body, err
}

// do builds the request, attaches headers, and classifies the response.
func (g *Gateway) do(ctx context.Context, method, path string, opts driven.RequestOptions, requestID string) ([]byte, int, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, 0, &model.APIError{
			Kind:    model.ErrorKindUnknown,
			Method:  method,
			Path:    path,
			Message: "path must start with /",
		}
	}

	target := g.baseURL + path
	if len(opts.Params) > 0 {
		target += "?" + opts.Params.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, 0, &model.APIError{
				Kind:   model.ErrorKindUnknown,
				Method: method,
				Path:   path,
				Err:    fmt.Errorf("marshaling request body: %w", err),
			}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, 0, &model.APIError{
			Kind:   model.ErrorKindUnknown,
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("creating request: %w", err),
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.NoCache {
		req.Header.Set("Cache-Control", "no-cache")
	}
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, &model.APIError{
			Kind:   model.ErrorKindNetwork,
			Method: method,
			Path:   path,
			Err:    err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, resp.StatusCode, &model.APIError{
			Kind:   model.ErrorKindNetwork,
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("reading response body: %w", err),
		}
	}

	if len(respBody) > maxResponseBytes {
		return nil, resp.StatusCode, &model.APIError{
			Kind:    model.ErrorKindUnknown,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response too large (over %d bytes)", maxResponseBytes),
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, resp.StatusCode, nil
	}

	return nil, resp.StatusCode, classifyResponse(method, path, resp.StatusCode, respBody)
}
