package registry

import "landgate/pkg/domain"

// Static fallback records. They are deliberately realistic (a rural mountain
// lot with a warehouse on it) so the report stays renderable for demos and
// offline runs; the fallback provenance tag is the only thing separating
// them from live data.

func fallbackLandUsePlan(id domain.ParcelID) LandUsePlan {
	return LandUsePlan{
		PNU:           id.String(),
		LandCategory:  "임야",
		Area:          15420,
		OfficialPrice: 12500,
		UseLawNames:   "국토의 계획 및 이용에 관한 법률: 자연녹지지역, 가축분뇨의 관리 및 이용에 관한 법률: 가축사육제한구역(절대제한구역), 산지관리법: 준보전산지, 수도법: 공장설립승인지역",
	}
}

func fallbackLandCharacteristics(id domain.ParcelID) LandCharacteristics {
	return LandCharacteristics{
		PNU:              id.String(),
		LandCategory:     "임야",
		LandUseClass:     "일반산지",
		TopographyHeight: "완경사",
		TopographyShape:  "부정형",
		RoadSide:         "세로(불)",
	}
}

func fallbackUrbanPlan() []UrbanPlanItem {
	return []UrbanPlanItem{
		{Name: "자연녹지지역", Type: "용도지역"},
		{Name: "가축사육제한구역", Type: "기타"},
		{Name: "준보전산지", Type: "산지"},
		{Name: "공장설립승인지역", Type: "수도"},
		{Name: "대로3류(폭 25m~30m)(접합)", Type: "도시계획시설"},
	}
}

func fallbackRegulations() []Regulation {
	return []Regulation{
		{LawName: "국토의 계획 및 이용에 관한 법률", Content: "자연녹지지역"},
		{LawName: "가축분뇨의 관리 및 이용에 관한 법률", Content: "가축사육제한구역(절대제한구역)"},
		{LawName: "산지관리법", Content: "준보전산지"},
		{LawName: "수도법", Content: "공장설립승인지역(수도법시행령 제14조의3 1호)"},
	}
}

func fallbackBuildings() []Building {
	return []Building{{
		Name:         "양호동 물류창고",
		MainUse:      "창고시설",
		TotalArea:    450.5,
		Structure:    "일반철골구조",
		ApprovalDate: "20180615",
		GroundFloors: 1,
	}}
}

func fallbackPriceHistory() []PriceEntry {
	return []PriceEntry{
		{Year: "2024", Price: 12500},
		{Year: "2023", Price: 12800},
		{Year: "2022", Price: 13500},
		{Year: "2021", Price: 11000},
		{Year: "2020", Price: 10500},
	}
}

// The remaining domains fall back to an empty list: absence of a designation
// is the safe default for overlay registries.

func fallbackMountainZones() []MountainZone  { return []MountainZone{} }
func fallbackHeritageZones() []HeritageZone  { return []HeritageZone{} }
func fallbackStores() []CommercialStore      { return []CommercialStore{} }
func fallbackPermits() []Permit              { return []Permit{} }
func fallbackUnsoldHousing() []UnsoldHousing { return []UnsoldHousing{} }
