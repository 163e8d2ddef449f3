package tile

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landgate/internal/platform/config"
	"landgate/pkg/platform/sentinel"
)

func newTestProxy(baseURL string) *Proxy {
	cfg := config.Server{
		VWorldWMSURL: baseURL,
		VWorldKey:    "test-key",
		VWorldDomain: "localhost",
	}
	return NewProxy(cfg, NewMemoryCache(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tileParams() url.Values {
	return url.Values{
		"layers": {"lp_pa_cbnd_bubun"},
		"bbox":   {"14143600,4373600,14143900,4373900"},
		"width":  {"256"},
		"height": {"256"},
		"format": {"image/png"},
	}
}

func TestFetch_AppendsCredential(t *testing.T) {
	var gotKey, gotDomain string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("KEY")
		gotDomain = r.URL.Query().Get("DOMAIN")
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	body, contentType, err := newTestProxy(srv.URL).Fetch(context.Background(), tileParams())
	require.NoError(t, err)

	assert.Equal(t, []byte("png-bytes"), body)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "localhost", gotDomain)
}

func TestFetch_SecondRequestServedFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("tile"))
	}))
	defer srv.Close()

	p := newTestProxy(srv.URL)
	ctx := context.Background()

	_, _, err := p.Fetch(ctx, tileParams())
	require.NoError(t, err)
	body, contentType, err := p.Fetch(ctx, tileParams())
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second request must not reach the upstream")
	assert.Equal(t, []byte("tile"), body)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetch_CacheKeyIgnoresParameterOrder(t *testing.T) {
	a := url.Values{"layers": {"x"}, "bbox": {"1,2,3,4"}}
	b := url.Values{"bbox": {"1,2,3,4"}, "layers": {"x"}}
	assert.Equal(t, cacheKey(a), cacheKey(b))
}

func TestFetch_UpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, _, err := newTestProxy(srv.URL).Fetch(context.Background(), tileParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUpstreamStatus)
}

func TestFetch_MissingKey(t *testing.T) {
	p := newTestProxy("http://127.0.0.1:1")
	p.key = ""

	_, _, err := p.Fetch(context.Background(), tileParams())
	assert.ErrorIs(t, err, sentinel.ErrMissingCredential)
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, _, ok := c.Get(ctx, "absent")
	assert.False(t, ok)

	c.Set(ctx, "k", "image/png", []byte{0x89, 0x50, 0x00, 0x4e})

	body, contentType, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte{0x89, 0x50, 0x00, 0x4e}, body, "NUL bytes in the body must survive")
}
