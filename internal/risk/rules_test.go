package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landgate/internal/platform/config"
	"landgate/internal/registry"
	"landgate/internal/report"
)

// calmIndicators keeps every market rule quiet so tests can exercise the
// regulation rules in isolation.
func calmIndicators() config.MarketIndicators {
	ind := config.DefaultMarketIndicators()
	ind.PFInterestRate = 5.0
	return ind
}

func stablePrices() []registry.PriceEntry {
	return []registry.PriceEntry{
		{Year: "2024", Price: 48000},
		{Year: "2023", Price: 46000},
	}
}

func TestDiagnose_CleanParcelIsSafe(t *testing.T) {
	rep := &report.Report{
		Regulations:  []registry.Regulation{{LawName: "국토의 계획 및 이용에 관한 법률", Content: "계획관리지역"}},
		PriceHistory: stablePrices(),
	}

	diag := Diagnose(rep, calmIndicators())

	assert.Equal(t, LevelSafe, diag.Level)
	assert.Equal(t, 85, diag.Score)
	assert.Equal(t, summaries[LevelSafe], diag.Summary)
	assert.Empty(t, diag.Details)
	assert.Contains(t, diag.SWOT.Strengths, "중대한 건축 제한 없음")
	assert.Contains(t, diag.SWOT.Strengths, "공시지가 안정세 유지")
}

func TestDiagnose_GreenbeltForcesDanger(t *testing.T) {
	rep := &report.Report{
		Regulations: []registry.Regulation{
			{LawName: "개발제한구역의 지정 및 관리에 관한 특별조치법", Content: "개발제한구역"},
		},
		PriceHistory: stablePrices(),
	}

	diag := Diagnose(rep, calmIndicators())

	assert.Equal(t, LevelDanger, diag.Level)
	assert.LessOrEqual(t, diag.Score, 55)
	assert.Equal(t, summaries[LevelDanger], diag.Summary)
	require.NotEmpty(t, diag.Details)
	assert.Contains(t, diag.Details[0], "개발제한구역")
	assert.NotEmpty(t, diag.SWOT.Threats)
}

func TestDiagnose_DangerNeverDowngraded(t *testing.T) {
	// Greenbelt plus every later caution rule firing: level must stay DANGER.
	rep := &report.Report{
		Regulations: []registry.Regulation{{LawName: "개발제한구역법", Content: ""}},
		PriceHistory: []registry.PriceEntry{
			{Year: "2024", Price: 12500},
			{Year: "2023", Price: 12800},
		},
	}

	diag := Diagnose(rep, config.DefaultMarketIndicators())

	assert.Equal(t, LevelDanger, diag.Level)
	assert.Equal(t, 85-30-10-5, diag.Score)
}

func TestDiagnose_PriceDeclineRaisesCaution(t *testing.T) {
	rep := &report.Report{
		PriceHistory: []registry.PriceEntry{
			{Year: "2024", Price: 12500},
			{Year: "2023", Price: 12800},
		},
	}

	diag := Diagnose(rep, calmIndicators())

	assert.Equal(t, LevelCaution, diag.Level)
	assert.Equal(t, 85-5, diag.Score)
	assert.Contains(t, diag.SWOT.Weaknesses, "공시지가 하락세")
}

func TestDiagnose_HighFinancingRateRaisesCaution(t *testing.T) {
	rep := &report.Report{PriceHistory: stablePrices()}

	diag := Diagnose(rep, config.DefaultMarketIndicators())

	assert.Equal(t, LevelCaution, diag.Level)
	assert.Equal(t, 85-10, diag.Score)
	require.NotEmpty(t, diag.Details)
	assert.Contains(t, diag.Details[0], "8.5%")
}

func TestDiagnose_MountainZoneAddsWeaknessOnly(t *testing.T) {
	rep := &report.Report{
		PriceHistory: stablePrices(),
		SpecialZones: report.SpecialZones{
			Mountain: []registry.MountainZone{{Category: "준보전산지"}},
		},
	}

	diag := Diagnose(rep, calmIndicators())

	assert.Equal(t, LevelSafe, diag.Level, "mountain presence alone does not raise the level")
	assert.Equal(t, 85, diag.Score)
	assert.Contains(t, diag.SWOT.Weaknesses, "산지 포함으로 인허가 절차 부담")
	require.Len(t, diag.Details, 1)
}

func TestDiagnose_SinglePriceEntryIsStable(t *testing.T) {
	rep := &report.Report{
		PriceHistory: []registry.PriceEntry{{Year: "2024", Price: 12500}},
	}

	diag := Diagnose(rep, calmIndicators())

	assert.Equal(t, LevelSafe, diag.Level)
	assert.Contains(t, diag.SWOT.Strengths, "공시지가 안정세 유지")
}

func TestDiagnose_Pure(t *testing.T) {
	rep := &report.Report{
		Regulations: []registry.Regulation{{LawName: "개발제한구역법", Content: ""}},
		PriceHistory: []registry.PriceEntry{
			{Year: "2024", Price: 12500},
			{Year: "2023", Price: 12800},
		},
		SpecialZones: report.SpecialZones{
			Mountain: []registry.MountainZone{{Category: "보전산지"}},
		},
	}
	ind := config.DefaultMarketIndicators()

	first := Diagnose(rep, ind)
	second := Diagnose(rep, ind)

	assert.Equal(t, first, second)
}
