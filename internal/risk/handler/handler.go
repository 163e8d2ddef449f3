package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"landgate/internal/platform/config"
	"landgate/internal/report"
	"landgate/internal/risk"
	"landgate/pkg/domain"
	"landgate/pkg/platform/httputil"
	"landgate/pkg/requestcontext"
)

// ReportBuilder supplies the aggregate report the diagnosis consumes.
type ReportBuilder interface {
	Build(ctx context.Context, id domain.ParcelID) *report.Report
}

// Handler wires the diagnosis endpoint.
type Handler struct {
	reports    ReportBuilder
	indicators config.MarketIndicators
	logger     *slog.Logger
}

// New constructs a risk handler.
func New(reports ReportBuilder, indicators config.MarketIndicators, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, indicators: indicators, logger: logger}
}

// Register mounts the diagnosis endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/business/diagnosis", h.handleDiagnosis)
}

type diagnosisResponse struct {
	PNU       string         `json:"pnu"`
	Diagnosis risk.Diagnosis `json:"diagnosis"`
}

func (h *Handler) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, err := domain.ParseParcelID(r.URL.Query().Get("pnu"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rep := h.reports.Build(ctx, id)
	diag := risk.Diagnose(rep, h.indicators)

	h.logger.InfoContext(ctx, "diagnosis served",
		"request_id", requestcontext.RequestID(ctx),
		"pnu", id.String(),
		"level", diag.Level,
		"score", diag.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, diagnosisResponse{PNU: id.String(), Diagnosis: diag})
}
