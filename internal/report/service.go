// Package report assembles the per-parcel aggregate report. It fans out to
// every registry source concurrently, merges the settled results into one
// report object, and derives the special-zone flags from the merged
// regulation text. Aggregation itself cannot fail: sources degrade to
// fallback records, so a well-formed identifier always yields a complete
// report.
package report

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"landgate/internal/platform/config"
	"landgate/internal/registry"
	"landgate/internal/report/metrics"
	"landgate/pkg/domain"
)

// Sources is the registry surface the aggregator fans out to.
type Sources interface {
	LandUsePlan(ctx context.Context, id domain.ParcelID) (registry.LandUsePlan, registry.Provenance)
	LandCharacteristics(ctx context.Context, id domain.ParcelID) (registry.LandCharacteristics, registry.Provenance)
	UrbanPlan(ctx context.Context, id domain.ParcelID) ([]registry.UrbanPlanItem, registry.Provenance)
	Regulations(ctx context.Context, id domain.ParcelID) ([]registry.Regulation, registry.Provenance)
	Buildings(ctx context.Context, id domain.ParcelID) ([]registry.Building, registry.Provenance)
	PriceHistory(ctx context.Context, id domain.ParcelID) ([]registry.PriceEntry, registry.Provenance)
	MountainZones(ctx context.Context, id domain.ParcelID) ([]registry.MountainZone, registry.Provenance)
	HeritageZones(ctx context.Context, id domain.ParcelID) ([]registry.HeritageZone, registry.Provenance)
	CommercialStores(ctx context.Context, id domain.ParcelID) ([]registry.CommercialStore, registry.Provenance)
	Permits(ctx context.Context, id domain.ParcelID) ([]registry.Permit, registry.Provenance)
	UnsoldHousing(ctx context.Context, id domain.ParcelID) ([]registry.UnsoldHousing, registry.Provenance)
}

// SpecialZones is the derived zone checklist. The mountain and heritage
// lists come straight from their registries; the three booleans are keyword
// matches over the regulation text.
type SpecialZones struct {
	Mountain      []registry.MountainZone `json:"mountain"`
	Heritage      []registry.HeritageZone `json:"heritage"`
	Education     bool                    `json:"education"`
	DistrictPlan  bool                    `json:"districtPlan"`
	CulturalCheck bool                    `json:"culturalCheck"`
}

// Report is the full aggregate view of one parcel. The provenance map tells
// consumers, per domain, whether they are looking at live or fallback data.
type Report struct {
	PNU                 string                         `json:"pnu"`
	LandUse             registry.LandUsePlan           `json:"landUse"`
	LandCharacteristics registry.LandCharacteristics   `json:"landCharacteristics"`
	UrbanPlan           []registry.UrbanPlanItem       `json:"urbanPlan"`
	Regulations         []registry.Regulation          `json:"regulations"`
	Buildings           []registry.Building            `json:"building"`
	PriceHistory        []registry.PriceEntry          `json:"priceHistory"`
	SpecialZones        SpecialZones                   `json:"specialZones"`
	Provenance          map[string]registry.Provenance `json:"provenance"`
}

// RegulationView is the lighter regulation-only variant of the report.
type RegulationView struct {
	PNU         string                         `json:"pnu"`
	UrbanPlan   []registry.UrbanPlanItem       `json:"urbanPlan"`
	Regulations []registry.Regulation          `json:"restrictions"`
	Provenance  map[string]registry.Provenance `json:"provenance"`
}

// SpecialView carries only the special-zone checklist.
type SpecialView struct {
	PNU          string                         `json:"pnu"`
	SpecialZones SpecialZones                   `json:"specialZones"`
	Provenance   map[string]registry.Provenance `json:"provenance"`
}

// BuildingView carries the building ledger and permit outlines.
type BuildingView struct {
	PNU        string                         `json:"pnu"`
	Buildings  []registry.Building            `json:"building"`
	Permits    []registry.Permit              `json:"permits"`
	Provenance map[string]registry.Provenance `json:"provenance"`
}

// BusinessRiskView carries the market-side records consumed by business
// feasibility checks.
type BusinessRiskView struct {
	PNU        string                         `json:"pnu"`
	Stores     []registry.CommercialStore     `json:"stores"`
	Permits    []registry.Permit              `json:"permits"`
	Unsold     []registry.UnsoldHousing       `json:"unsoldHousing"`
	Provenance map[string]registry.Provenance `json:"provenance"`
}

// Service aggregates registry sources into report views.
type Service struct {
	sources Sources
	log     *slog.Logger
	metrics *metrics.Metrics
}

func New(sources Sources, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{sources: sources, log: log, metrics: m}
}

// timed wraps one source fetch with latency and fallback accounting.
func timed[T any](s *Service, ctx context.Context, source string, id domain.ParcelID,
	fn func(context.Context, domain.ParcelID) (T, registry.Provenance)) (T, registry.Provenance) {
	start := time.Now()
	v, prov := fn(ctx, id)
	s.metrics.ObserveSourceLatency(source, time.Since(start))
	if prov == registry.ProvenanceFallback {
		s.metrics.IncrementFallback(source)
	}
	return v, prov
}

// Build assembles the full report. The whole fan-out runs under one
// report-level deadline so a slow registry cannot hold the request past it.
func (s *Service) Build(ctx context.Context, id domain.ParcelID) *Report {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, config.ReportDeadline)
	defer cancel()

	rep := &Report{PNU: id.String()}
	var (
		mountain []registry.MountainZone
		heritage []registry.HeritageZone

		landUseProv, charProv, planProv, regProv   registry.Provenance
		bldgProv, priceProv, mountainProv, herProv registry.Provenance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.LandUse, landUseProv = timed(s, gctx, "land_use", id, s.sources.LandUsePlan)
		return nil
	})
	g.Go(func() error {
		rep.LandCharacteristics, charProv = timed(s, gctx, "land_characteristics", id, s.sources.LandCharacteristics)
		return nil
	})
	g.Go(func() error {
		rep.UrbanPlan, planProv = timed(s, gctx, "urban_plan", id, s.sources.UrbanPlan)
		return nil
	})
	g.Go(func() error {
		rep.Regulations, regProv = timed(s, gctx, "regulations", id, s.sources.Regulations)
		return nil
	})
	g.Go(func() error {
		rep.Buildings, bldgProv = timed(s, gctx, "building", id, s.sources.Buildings)
		return nil
	})
	g.Go(func() error {
		rep.PriceHistory, priceProv = timed(s, gctx, "price_history", id, s.sources.PriceHistory)
		return nil
	})
	g.Go(func() error {
		mountain, mountainProv = timed(s, gctx, "mountain", id, s.sources.MountainZones)
		return nil
	})
	g.Go(func() error {
		heritage, herProv = timed(s, gctx, "heritage", id, s.sources.HeritageZones)
		return nil
	})
	g.Wait()

	education, districtPlan, cultural := classifyZones(rep.Regulations)
	rep.SpecialZones = SpecialZones{
		Mountain:      mountain,
		Heritage:      heritage,
		Education:     education,
		DistrictPlan:  districtPlan,
		CulturalCheck: cultural,
	}
	rep.Provenance = map[string]registry.Provenance{
		"landUse":             landUseProv,
		"landCharacteristics": charProv,
		"urbanPlan":           planProv,
		"regulations":         regProv,
		"building":            bldgProv,
		"priceHistory":        priceProv,
		"mountain":            mountainProv,
		"heritage":            herProv,
	}

	s.metrics.ObserveBuildLatency(time.Since(start))
	s.log.InfoContext(ctx, "report assembled",
		"pnu", id.String(),
		"fallback_sources", countFallbacks(rep.Provenance),
	)
	return rep
}

// Regulation fetches only the regulation-side sources.
func (s *Service) Regulation(ctx context.Context, id domain.ParcelID) *RegulationView {
	ctx, cancel := context.WithTimeout(ctx, config.ReportDeadline)
	defer cancel()

	view := &RegulationView{PNU: id.String()}
	var planProv, regProv registry.Provenance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view.UrbanPlan, planProv = timed(s, gctx, "urban_plan", id, s.sources.UrbanPlan)
		return nil
	})
	g.Go(func() error {
		view.Regulations, regProv = timed(s, gctx, "regulations", id, s.sources.Regulations)
		return nil
	})
	g.Wait()

	view.Provenance = map[string]registry.Provenance{
		"urbanPlan":   planProv,
		"regulations": regProv,
	}
	return view
}

// Special fetches the zone-checklist sources and classifies.
func (s *Service) Special(ctx context.Context, id domain.ParcelID) *SpecialView {
	ctx, cancel := context.WithTimeout(ctx, config.ReportDeadline)
	defer cancel()

	var (
		regs     []registry.Regulation
		mountain []registry.MountainZone
		heritage []registry.HeritageZone

		regProv, mountainProv, herProv registry.Provenance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regs, regProv = timed(s, gctx, "regulations", id, s.sources.Regulations)
		return nil
	})
	g.Go(func() error {
		mountain, mountainProv = timed(s, gctx, "mountain", id, s.sources.MountainZones)
		return nil
	})
	g.Go(func() error {
		heritage, herProv = timed(s, gctx, "heritage", id, s.sources.HeritageZones)
		return nil
	})
	g.Wait()

	education, districtPlan, cultural := classifyZones(regs)
	return &SpecialView{
		PNU: id.String(),
		SpecialZones: SpecialZones{
			Mountain:      mountain,
			Heritage:      heritage,
			Education:     education,
			DistrictPlan:  districtPlan,
			CulturalCheck: cultural,
		},
		Provenance: map[string]registry.Provenance{
			"regulations": regProv,
			"mountain":    mountainProv,
			"heritage":    herProv,
		},
	}
}

// BuildingInfo fetches the ledger and permit sources.
func (s *Service) BuildingInfo(ctx context.Context, id domain.ParcelID) *BuildingView {
	ctx, cancel := context.WithTimeout(ctx, config.ReportDeadline)
	defer cancel()

	view := &BuildingView{PNU: id.String()}
	var bldgProv, permitProv registry.Provenance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view.Buildings, bldgProv = timed(s, gctx, "building", id, s.sources.Buildings)
		return nil
	})
	g.Go(func() error {
		view.Permits, permitProv = timed(s, gctx, "permit", id, s.sources.Permits)
		return nil
	})
	g.Wait()

	view.Provenance = map[string]registry.Provenance{
		"building": bldgProv,
		"permits":  permitProv,
	}
	return view
}

// BusinessRisk fetches the market-side sources.
func (s *Service) BusinessRisk(ctx context.Context, id domain.ParcelID) *BusinessRiskView {
	ctx, cancel := context.WithTimeout(ctx, config.ReportDeadline)
	defer cancel()

	view := &BusinessRiskView{PNU: id.String()}
	var storeProv, permitProv, unsoldProv registry.Provenance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view.Stores, storeProv = timed(s, gctx, "commercial", id, s.sources.CommercialStores)
		return nil
	})
	g.Go(func() error {
		view.Permits, permitProv = timed(s, gctx, "permit", id, s.sources.Permits)
		return nil
	})
	g.Go(func() error {
		view.Unsold, unsoldProv = timed(s, gctx, "unsold", id, s.sources.UnsoldHousing)
		return nil
	})
	g.Wait()

	view.Provenance = map[string]registry.Provenance{
		"stores":        storeProv,
		"permits":       permitProv,
		"unsoldHousing": unsoldProv,
	}
	return view
}

func countFallbacks(provs map[string]registry.Provenance) int {
	n := 0
	for _, p := range provs {
		if p == registry.ProvenanceFallback {
			n++
		}
	}
	return n
}
