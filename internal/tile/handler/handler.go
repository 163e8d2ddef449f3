package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	dErrors "landgate/pkg/domain-errors"
	"landgate/pkg/platform/httputil"
	"landgate/pkg/platform/sentinel"
	"landgate/pkg/requestcontext"
)

// Fetcher serves one tile for pass-through parameters.
type Fetcher interface {
	Fetch(ctx context.Context, params url.Values) (body []byte, contentType string, err error)
}

// Handler wires the tile endpoint.
type Handler struct {
	proxy  Fetcher
	logger *slog.Logger
}

// New constructs a tile handler.
func New(proxy Fetcher, logger *slog.Logger) *Handler {
	return &Handler{proxy: proxy, logger: logger}
}

// Register mounts the tile endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/tile", h.handleTile)
}

func (h *Handler) handleTile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := r.URL.Query()
	if params.Get("layers") == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "layers parameter is required"))
		return
	}

	body, contentType, err := h.proxy.Fetch(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "tile fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"layers", params.Get("layers"),
			"error", err,
		)
		httputil.WriteError(w, translate(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func translate(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrMissingCredential):
		return dErrors.Wrap(err, dErrors.CodeInternal, "tile credential not configured")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstream, "tile upstream failed")
	}
}
