// Package fetch retrieves JSON documents from the remote content source.
//
// A fetch has exactly one outcome: the response body, or a *Failure whose
// Kind is timeout, network, http-status or parse. The gateway never retries,
// caches or publishes events; callers decide what to do with a failure.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/guttosm/catalog-service/internal/logger"
)

const defaultMaxBodySize = 8 << 20

// Gateway fetches one JSON document.
type Gateway interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// HTTPGateway is a Gateway backed by net/http.
type HTTPGateway struct {
	client      *http.Client
	envelope    string
	maxBodySize int64
	log         zerolog.Logger
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) {
		g.client = c
	}
}

// WithEnvelope unwraps responses shaped like {"data": ...}. The path uses
// gjson syntax. Documents without the path are returned unchanged.
func WithEnvelope(path string) Option {
	return func(g *HTTPGateway) {
		g.envelope = path
	}
}

// WithMaxBodySize caps the number of bytes read from a response.
func WithMaxBodySize(n int64) Option {
	return func(g *HTTPGateway) {
		if n > 0 {
			g.maxBodySize = n
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *HTTPGateway) {
		g.log = l
	}
}

// NewHTTPGateway creates an HTTPGateway.
func NewHTTPGateway(opts ...Option) *HTTPGateway {
	g := &HTTPGateway{
		client:      &http.Client{},
		maxBodySize: defaultMaxBodySize,
		log:         logger.Component("fetch"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch issues a GET for url and waits at most timeout for the full body.
func (g *HTTPGateway) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := logger.Ctx(ctx, g.log)
	start := time.Now()
	body, err := g.do(ctx, url)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", url).
			Dur("elapsed", time.Since(start)).
			Msg("Fetch failed")
		return nil, err
	}
	log.Debug().
		Str("url", url).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch succeeded")
	return body, nil
}

func (g *HTTPGateway) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Failure{Kind: KindNetwork, URL: url, Message: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if id := logger.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, classify(ctx, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &Failure{Kind: KindHTTPStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBodySize+1))
	if err != nil {
		return nil, classify(ctx, url, err)
	}
	if int64(len(body)) > g.maxBodySize {
		return nil, &Failure{Kind: KindParse, URL: url, Message: fmt.Sprintf("body exceeds %d bytes", g.maxBodySize)}
	}
	if !gjson.ValidBytes(body) {
		return nil, &Failure{Kind: KindParse, URL: url, Message: "body is not valid JSON"}
	}

	if g.envelope != "" {
		if inner := gjson.GetBytes(body, g.envelope); inner.Exists() {
			return []byte(inner.Raw), nil
		}
	}
	return body, nil
}

func classify(ctx context.Context, url string, err error) *Failure {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: KindTimeout, URL: url, Message: "request timed out", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Kind: KindTimeout, URL: url, Message: "request timed out", Err: err}
	}
	return &Failure{Kind: KindNetwork, URL: url, Message: "request failed", Err: err}
}
