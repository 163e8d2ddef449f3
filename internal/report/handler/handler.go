package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landgate/internal/report"
	"landgate/pkg/domain"
	"landgate/pkg/platform/httputil"
)

// Service defines the report views the handler serves.
type Service interface {
	Build(ctx context.Context, id domain.ParcelID) *report.Report
	Regulation(ctx context.Context, id domain.ParcelID) *report.RegulationView
	Special(ctx context.Context, id domain.ParcelID) *report.SpecialView
	BuildingInfo(ctx context.Context, id domain.ParcelID) *report.BuildingView
	BusinessRisk(ctx context.Context, id domain.ParcelID) *report.BusinessRiskView
}

// Handler wires the land/building/business report endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a report handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/land/comprehensive", h.handleComprehensive)
	r.Get("/api/land/regulation", h.handleRegulation)
	r.Get("/api/land/special", h.handleSpecial)
	r.Get("/api/building/info", h.handleBuilding)
	r.Get("/api/business/risk", h.handleBusinessRisk)
}

// parsePNU validates the identifier; a malformed one is the only request
// error these endpoints can produce.
func parsePNU(w http.ResponseWriter, r *http.Request) (domain.ParcelID, bool) {
	id, err := domain.ParseParcelID(r.URL.Query().Get("pnu"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.ParcelID{}, false
	}
	return id, true
}

func (h *Handler) handleComprehensive(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePNU(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.Build(r.Context(), id))
}

func (h *Handler) handleRegulation(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePNU(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.Regulation(r.Context(), id))
}

func (h *Handler) handleSpecial(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePNU(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.Special(r.Context(), id))
}

func (h *Handler) handleBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePNU(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.BuildingInfo(r.Context(), id))
}

func (h *Handler) handleBusinessRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePNU(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.BusinessRisk(r.Context(), id))
}
