// Package tile proxies map-tile requests to the upstream renderer, appending
// the service credential and caching rendered tiles for a day. There is no
// fallback tile: a failed render surfaces to the caller.
package tile

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"landgate/internal/platform/config"
	"landgate/internal/tile/metrics"
	"landgate/pkg/platform/sentinel"
)

// Proxy fetches tiles, consulting the cache first.
type Proxy struct {
	baseURL string
	key     string
	domain  string
	httpc   *http.Client
	cache   Cache
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewProxy builds a tile proxy. cache must not be nil; use NewMemoryCache
// when Redis is not configured.
func NewProxy(cfg config.Server, cache Cache, m *metrics.Metrics, log *slog.Logger) *Proxy {
	return &Proxy{
		baseURL: cfg.VWorldWMSURL,
		key:     cfg.VWorldKey,
		domain:  cfg.VWorldDomain,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		metrics: m,
		log:     log,
	}
}

// Fetch returns the tile bytes and content type for the given pass-through
// parameters. The cache key is derived before the credential is appended so
// stored entries never embed it.
func (p *Proxy) Fetch(ctx context.Context, params url.Values) ([]byte, string, error) {
	if p.key == "" {
		return nil, "", sentinel.ErrMissingCredential
	}

	key := cacheKey(params)
	if body, contentType, ok := p.cache.Get(ctx, key); ok {
		p.metrics.IncrementCacheHit()
		return body, contentType, nil
	}
	p.metrics.IncrementCacheMiss()

	params.Set("KEY", p.key)
	params.Set("DOMAIN", p.domain)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build tile request: %w", err)
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("tile fetch: %w", sentinel.ErrTimeout)
		}
		return nil, "", fmt.Errorf("tile fetch: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tile fetch: status %d: %w", resp.StatusCode, sentinel.ErrUpstreamStatus)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read tile body: %w", sentinel.ErrUnavailable)
	}
	p.metrics.ObserveFetchLatency(time.Since(start))

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	p.cache.Set(ctx, key, contentType, body)
	return body, contentType, nil
}

// cacheKey hashes the normalized query; url.Values.Encode sorts keys, so
// equivalent requests share an entry regardless of parameter order.
func cacheKey(params url.Values) string {
	sum := sha1.Sum([]byte(params.Encode()))
	return hex.EncodeToString(sum[:])
}
