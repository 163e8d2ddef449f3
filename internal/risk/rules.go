package risk

import (
	"fmt"
	"strings"

	"landgate/internal/platform/config"
	"landgate/internal/registry"
	"landgate/internal/report"
)

const baseScore = 85

const greenbeltKeyword = "개발제한구역"

var summaries = map[Level]string{
	LevelSafe:    "특별한 규제 리스크가 발견되지 않았습니다. 토지 활용 계획을 구체화해도 좋습니다.",
	LevelCaution: "일부 리스크 요인이 확인되었습니다. 사업 추진 전 관련 규제와 시장 상황을 신중히 검토하세요.",
	LevelDanger:  "중대한 법적 규제가 존재합니다. 현 상태로는 개발 사업 추진이 사실상 불가능합니다.",
}

// Diagnose scores the report against the market indicators. The rules run in
// a fixed order and only ever subtract from the base score; the level can
// only be raised, never lowered, by a later rule.
func Diagnose(rep *report.Report, ind config.MarketIndicators) Diagnosis {
	score := baseScore
	level := LevelSafe
	details := []string{}
	swot := SWOT{
		Strengths:     []string{"기반시설 양호", "교통 접근성 우수"},
		Weaknesses:    []string{},
		Opportunities: []string{"주변 개발 호재", "지가 상승 여력 보유"},
		Threats:       []string{},
	}

	raise := func(to Level) {
		if to.rank() > level.rank() {
			level = to
		}
	}

	if hasGreenbelt(rep.Regulations) {
		score -= 30
		raise(LevelDanger)
		details = append(details, "개발제한구역(그린벨트)으로 지정되어 있어 개발 행위가 엄격히 제한됩니다.")
		swot.Threats = append(swot.Threats, "개발제한구역 규제로 사업 자체가 불가능할 수 있음")
	} else {
		swot.Strengths = append(swot.Strengths, "중대한 건축 제한 없음")
	}

	if len(rep.SpecialZones.Mountain) > 0 {
		details = append(details, "산지가 포함된 필지로 개발 시 산지전용허가 절차가 필요합니다.")
		swot.Weaknesses = append(swot.Weaknesses, "산지 포함으로 인허가 절차 부담")
	}

	if ind.PFInterestRate > ind.PFRateCaution {
		score -= 10
		raise(LevelCaution)
		details = append(details, fmt.Sprintf("PF 금리가 %.1f%%로 높아 자금 조달 부담이 큽니다.", ind.PFInterestRate))
		swot.Threats = append(swot.Threats, "고금리로 인한 금융 비용 부담")
	}

	if priceDeclining(rep.PriceHistory) {
		score -= 5
		raise(LevelCaution)
		details = append(details, "최근 공시지가가 전년 대비 하락했습니다.")
		swot.Weaknesses = append(swot.Weaknesses, "공시지가 하락세")
	} else {
		swot.Strengths = append(swot.Strengths, "공시지가 안정세 유지")
	}

	return Diagnosis{
		Level:   level,
		Score:   score,
		Summary: summaries[level],
		Details: details,
		SWOT:    swot,
	}
}

func hasGreenbelt(regs []registry.Regulation) bool {
	for _, reg := range regs {
		if strings.Contains(reg.LawName, greenbeltKeyword) {
			return true
		}
	}
	return false
}

// priceDeclining reports whether the most recent price sits below the prior
// year's. The series arrives most recent first.
func priceDeclining(prices []registry.PriceEntry) bool {
	return len(prices) >= 2 && prices[0].Price < prices[1].Price
}
