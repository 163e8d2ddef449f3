package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"landgate/internal/search"
	dErrors "landgate/pkg/domain-errors"
	"landgate/pkg/platform/httputil"
	"landgate/pkg/platform/sentinel"
)

// Searcher runs one merged address search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Handler wires the address-search endpoint.
type Handler struct {
	searcher Searcher
	logger   *slog.Logger
}

// New constructs a search handler.
func New(searcher Searcher, logger *slog.Logger) *Handler {
	return &Handler{searcher: searcher, logger: logger}
}

// Register mounts the search endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/search", h.handleSearch)
}

type searchResponse struct {
	Results []search.Result `json:"results"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "query parameter is required"))
		return
	}

	results, err := h.searcher.Search(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "address search failed", "query", query, "error", err)
		httputil.WriteError(w, translate(err))
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	httputil.WriteJSON(w, http.StatusOK, searchResponse{Results: results})
}

func translate(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrMissingCredential):
		return dErrors.Wrap(err, dErrors.CodeInternal, "search upstream is not configured")
	case errors.Is(err, sentinel.ErrBadUpstream):
		return dErrors.Wrap(err, dErrors.CodeUpstreamFormat, "search upstream returned an unreadable body")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstream, "search upstream failed")
	}
}
