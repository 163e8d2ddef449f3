// Package registry wraps the public-data registries (data.go.kr and related
// services) behind per-domain fetchers. Every fetcher resolves to a valid
// record set even under total upstream outage: failures degrade to static
// fallback records tagged with their provenance, never to errors. That
// degraded-mode contract keeps the report aggregator simple and the report
// always renderable; the provenance tag is what lets consumers tell real
// regulatory findings from synthetic placeholders.
package registry

// Provenance records whether a record set came from the live upstream or
// from the static fallback.
type Provenance string

const (
	ProvenanceSourced  Provenance = "sourced"
	ProvenanceFallback Provenance = "fallback"
)

// JSON field names mirror the upstream registry vocabulary so the map client
// renders records without translation.

// LandUsePlan is the land-use plan summary for one parcel.
type LandUsePlan struct {
	PNU           string  `json:"pnu" xml:"pnu"`
	LandCategory  string  `json:"lndcNm" xml:"lndcNm"`
	Area          float64 `json:"ar" xml:"ar"`
	OfficialPrice float64 `json:"indivOalp" xml:"indivOalp"`
	UseLawNames   string  `json:"luseLawNm" xml:"luseLawNm"`
}

// LandCharacteristics describes the physical traits of the parcel.
type LandCharacteristics struct {
	PNU              string `json:"pnu" xml:"pnu"`
	LandCategory     string `json:"lndcNm" xml:"lndcNm"`
	LandUseClass     string `json:"lndSeCdNm" xml:"lndSeCdNm"`
	TopographyHeight string `json:"tpgrphPitcSeCdNm" xml:"tpgrphPitcSeCdNm"`
	TopographyShape  string `json:"tpgrphFrmSeCdNm" xml:"tpgrphFrmSeCdNm"`
	RoadSide         string `json:"roadSideSeCdNm" xml:"roadSideSeCdNm"`
}

// UrbanPlanItem is one urban-planning designation applying to the parcel.
type UrbanPlanItem struct {
	Name string `json:"upisuName" xml:"upisuName"`
	Type string `json:"type" xml:"type"`
}

// Regulation is one law/content pair from the regulation registry. The
// content is free text; zone flags are derived from it by substring matching
// in the report module, deliberately not by structural parsing.
type Regulation struct {
	LawName string `json:"luseLawNm" xml:"luseLawNm"`
	Content string `json:"content" xml:"content"`
}

// Building is one building-ledger title record.
type Building struct {
	Name           string  `json:"bldNm" xml:"bldNm"`
	MainUse        string  `json:"mainPurpsCdNm" xml:"mainPurpsCdNm"`
	TotalArea      float64 `json:"totArea" xml:"totArea"`
	Structure      string  `json:"strctCdNm" xml:"strctCdNm"`
	ApprovalDate   string  `json:"useAprDay" xml:"useAprDay"`
	GroundFloors   int     `json:"grndFlrCnt" xml:"grndFlrCnt"`
	BasementFloors int     `json:"ugrndFlrCnt" xml:"ugrndFlrCnt"`
}

// PriceEntry is one year of the official land price series, most recent
// first as delivered by the upstream.
type PriceEntry struct {
	Year  string  `json:"stdrYear" xml:"stdrYear"`
	Price float64 `json:"indivOalp" xml:"indivOalp"`
}

// MountainZone is one mountain/forest designation overlapping the parcel.
type MountainZone struct {
	Category string  `json:"sanjiGbNm" xml:"sanjiGbNm"`
	Area     float64 `json:"sanjiAr" xml:"sanjiAr"`
}

// HeritageZone is one cultural-heritage designation in the parcel's region.
type HeritageZone struct {
	Kind  string `json:"ccbaKdcd" xml:"ccbaKdcd"`
	Name  string `json:"ccbaMnm1" xml:"ccbaMnm1"`
	Admin string `json:"ccbaAdmin" xml:"ccbaAdmin"`
}

// CommercialStore is one store record from the commercial-density registry.
type CommercialStore struct {
	Name        string `json:"bizesNm"`
	Category    string `json:"indsLclsNm"`
	SubCategory string `json:"indsMclsNm"`
}

// Permit is one building-permit outline record.
type Permit struct {
	Name       string  `json:"bldNm" xml:"bldNm"`
	MainUse    string  `json:"mainPurpsCdNm" xml:"mainPurpsCdNm"`
	Area       float64 `json:"archArea" xml:"archArea"`
	PermitDate string  `json:"archPmsDay" xml:"archPmsDay"`
}

// UnsoldHousing is one month of unsold-housing counts for the region.
type UnsoldHousing struct {
	Month string `json:"stdrMt" xml:"stdrMt"`
	Count int    `json:"unsoldHsCnt" xml:"unsoldHsCnt"`
}
