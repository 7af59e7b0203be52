// Package api is the gateway to the backend REST API. Each exported method performs
// exactly one HTTP call and returns the server's decoded payload or an *apperror.AppError;
// it never touches client state. Authenticated calls read the session token from the
// token store on every request, so a sign-in or sign-out is visible immediately.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/config"
	"github.com/user/snsclone-go/tokenstore"
)

// Endpoint paths, relative to the configured base URL.
const (
	pathSessionCreate = "authen/jwt/create/"
	pathRegister      = "api/register/"
	pathProfile       = "api/profile/"
	pathMyProfile     = "api/myprofile/"
	pathPost          = "api/post/"
	pathComment       = "api/comment/"
)

// maxErrorBody caps how much of an error response is copied into error messages.
const maxErrorBody = 512

// Client is a typed client for the backend REST API.
type Client struct {
	baseURL    string
	authScheme string
	httpClient *http.Client
	tokens     tokenstore.Store
	limiter    *rate.Limiter
	metrics    *Metrics
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (e.g. an httptest server's client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for per-request debug logs.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records request counts and latencies into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client from cfg. tokens supplies the session token for authenticated calls.
func New(cfg *config.APIConfig, tokens tokenstore.Store, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = "JWT"
	}

	c := &Client{
		baseURL:    baseURL,
		authScheme: scheme,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one API call.
type request struct {
	op          string // operation name for errors, logs and metrics
	method      string
	path        string
	auth        bool
	body        io.Reader
	contentType string
}

// doJSON marshals in (if non-nil) as the request body and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, req request, in, out interface{}) error {
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return apperror.NewInternalError(fmt.Sprintf("%s: marshal request", req.op), err)
		}
		req.body = bytes.NewReader(body)
		req.contentType = "application/json"
	}
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req request, out interface{}) (err error) {
	start := time.Now()
	requestID := uuid.New().String()
	status := 0
	defer func() {
		c.metrics.observe(req.op, outcome(err), time.Since(start))
		c.logger.Debug("api request",
			zap.String("op", req.op),
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.NewTransportError(fmt.Sprintf("%s: rate limiter", req.op), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return apperror.NewInternalError(fmt.Sprintf("%s: create request", req.op), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.auth {
		token, ok, err := c.tokens.Load(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewAuthError(fmt.Sprintf("%s: no session token", req.op), nil)
		}
		httpReq.Header.Set("Authorization", c.authScheme+" "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperror.NewTransportError(fmt.Sprintf("%s: send request", req.op), err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewTransportError(fmt.Sprintf("%s: read response", req.op), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.FromStatus(resp.StatusCode, req.op, errorMessage(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperror.NewDecodeError(fmt.Sprintf("%s: unmarshal response", req.op), err)
	}
	return nil
}

// errorMessage extracts a human readable message from an error body. Both the
// {"error": "..."} and Django REST framework {"detail": "..."} shapes are understood.
func errorMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if msg, ok := payload[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	return truncate(msg, maxErrorBody)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperror.TypeOf(err).String()
}
