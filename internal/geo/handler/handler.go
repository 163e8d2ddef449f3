// Package handler exposes the raw feature proxy. Unlike the report routes,
// spatial truth has no safe fallback, so every upstream failure surfaces to
// the caller.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landgate/internal/geo"
	dErrors "landgate/pkg/domain-errors"
	"landgate/pkg/platform/httputil"
	"landgate/pkg/platform/sentinel"
	"landgate/pkg/requestcontext"
)

// Handler proxies WFS feature queries to the geometry upstream.
type Handler struct {
	client *geo.Client
	logger *slog.Logger
}

// New constructs the feature proxy handler.
func New(client *geo.Client, logger *slog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// Register mounts the proxy route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/geo/feature", h.handleFeature)
}

func (h *Handler) handleFeature(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	layer := q.Get("typeName")
	if layer == "" {
		layer = geo.LayerCadastral
	}

	pnu := q.Get("pnu")
	bbox := q.Get("bbox")
	cql := q.Get("cql_filter")

	selectors := 0
	for _, s := range []string{pnu, bbox, cql} {
		if s != "" {
			selectors++
		}
	}
	if selectors != 1 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest,
			"exactly one of pnu, bbox or cql_filter is required"))
		return
	}

	query := geo.Query{Layer: layer, PNU: pnu, CQLFilter: cql}
	if bbox != "" {
		// The map client sends web-mercator tiles coordinates for bbox
		// selections; the other selectors stay in WGS84.
		query.BBox = bbox
		query.SRSName = "EPSG:3857"
		query.PropertyName = q.Get("propertyName")
	}

	raw, err := h.client.FetchRaw(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "feature proxy failed",
			"request_id", requestcontext.RequestID(ctx),
			"layer", layer,
			"error", err,
		)
		httputil.WriteError(w, translate(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// translate maps infrastructure sentinels onto coded errors for the envelope.
func translate(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrMissingCredential):
		return dErrors.Wrap(err, dErrors.CodeInternal, "geometry credential not configured")
	case errors.Is(err, sentinel.ErrBadUpstream):
		return dErrors.Wrap(err, dErrors.CodeUpstreamFormat, "geometry upstream returned an unparseable body")
	case errors.Is(err, sentinel.ErrTimeout):
		return dErrors.Wrap(err, dErrors.CodeUpstream, "geometry upstream timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstream, "geometry upstream unavailable")
	}
}
