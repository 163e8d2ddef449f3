package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"landgate/internal/road"
	"landgate/pkg/domain"
	"landgate/pkg/platform/httputil"
	"landgate/pkg/requestcontext"
)

// Service defines the interface for road connectivity analysis.
type Service interface {
	Analyze(ctx context.Context, id domain.ParcelID) (*road.Connectivity, error)
}

// Handler wires the road connectivity endpoint to the analyzer.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a road handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the road endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/road/connectivity", h.handleConnectivity)
}

func (h *Handler) handleConnectivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	id, err := domain.ParseParcelID(r.URL.Query().Get("pnu"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Analyze(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "road analysis failed",
			"request_id", requestID,
			"pnu", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "road analysis served",
		"request_id", requestID,
		"pnu", id.String(),
		"connected", result.Connected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}
