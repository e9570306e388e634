package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultMaxBodyBytes = 4 << 20

var (
	ErrTransport    = errors.New("apiclient: transport failure")
	ErrEncode       = errors.New("apiclient: cannot encode request body")
	ErrBodyTooLarge = errors.New("apiclient: response body too large")
)

// Request describes one call against the catalog API. At most one of JSON and Form is set.
type Request struct {
	Method string
	Path   string
	JSON   any
	Form   *Multipart
	Token  string
}

// Result is the uniform outcome of a call. OK reports a 2xx status; Data holds the body when it
// is valid JSON. Err is set for transport and encoding failures, in which case Status is zero.
type Result struct {
	OK     bool
	Status int
	Data   json.RawMessage
	Err    error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	maxBody    int64
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}, logger)
}

func NewClientWithHTTP(baseURL string, hc *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		logger:     logger,
		maxBody:    DefaultMaxBodyBytes,
	}
}

// WithMaxBody caps how many response bytes Fetch reads. Non-positive values keep the default.
func (c *Client) WithMaxBody(n int64) *Client {
	if n > 0 {
		c.maxBody = n
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, r Request) Result {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	l := c.logger.With("method", method, "path", r.Path)

	body, contentType, err := encodeBody(r)
	if err != nil {
		l.Error("api_request_encode_failed", "error", err)
		return Result{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+r.Path, body)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: create request: %v", ErrTransport, err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Warn("api_request_failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return Result{Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		l.Warn("api_response_read_failed", "status", resp.StatusCode, "error", err)
		return Result{Status: resp.StatusCode, Err: fmt.Errorf("%w: read body: %v", ErrTransport, err)}
	}
	if int64(len(raw)) > c.maxBody {
		l.Warn("api_response_too_large", "status", resp.StatusCode, "limit_bytes", c.maxBody)
		return Result{Status: resp.StatusCode, Err: fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody)}
	}

	res := Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		res.Data = json.RawMessage(trimmed)
	}

	l.Debug("api_request_completed", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return res
}

func encodeBody(r Request) (io.Reader, string, error) {
	switch {
	case r.Form != nil:
		buf, ct, err := r.Form.encode()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return buf, ct, nil
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return bytes.NewReader(b), "application/json", nil
	default:
		return nil, "", nil
	}
}

type requestIDKey struct{}

// WithRequestID makes Fetch forward id as X-Request-ID instead of minting a new one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
