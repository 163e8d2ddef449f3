package registry

import (
	"context"
	"net/url"

	"landgate/pkg/domain"
)

// Each fetcher below covers one registry domain. They share a contract: one
// upstream call, request parameters derived from the parcel identifier, and
// no error return ever. Any failure resolves to the domain's fallback record
// set tagged ProvenanceFallback.

// LandUsePlan fetches the land-use plan summary.
func (c *Client) LandUsePlan(ctx context.Context, id domain.ParcelID) (LandUsePlan, Provenance) {
	params := url.Values{"pnu": {id.String()}}
	items, err := fetchXMLItems[LandUsePlan](ctx, c, c.endpoints.LandUse+"/getLandUsePlan", c.tojiKey, params)
	if err != nil || len(items) == 0 {
		c.fallbackWarn(ctx, "land_use", err)
		return fallbackLandUsePlan(id), ProvenanceFallback
	}
	plan := items[0]
	plan.PNU = id.String()
	return plan, ProvenanceSourced
}

// LandCharacteristics fetches the parcel's physical characteristics.
func (c *Client) LandCharacteristics(ctx context.Context, id domain.ParcelID) (LandCharacteristics, Provenance) {
	params := url.Values{"pnu": {id.String()}}
	items, err := fetchXMLItems[LandCharacteristics](ctx, c, c.endpoints.LandUse+"/getLandCharacteristics", c.tojiKey, params)
	if err != nil || len(items) == 0 {
		c.fallbackWarn(ctx, "land_characteristics", err)
		return fallbackLandCharacteristics(id), ProvenanceFallback
	}
	char := items[0]
	char.PNU = id.String()
	return char, ProvenanceSourced
}

// UrbanPlan fetches the urban-planning designations.
func (c *Client) UrbanPlan(ctx context.Context, id domain.ParcelID) ([]UrbanPlanItem, Provenance) {
	params := url.Values{"pnu": {id.String()}}
	items, err := fetchXMLItems[UrbanPlanItem](ctx, c, c.endpoints.LandUse+"/getUrbPlanInfo", c.tojiKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "urban_plan", err)
		return fallbackUrbanPlan(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// Regulations fetches the law/content regulation list.
func (c *Client) Regulations(ctx context.Context, id domain.ParcelID) ([]Regulation, Provenance) {
	params := url.Values{"pnu": {id.String()}}
	items, err := fetchXMLItems[Regulation](ctx, c, c.endpoints.LandUse+"/getRegulationInfo", c.tojiKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "regulations", err)
		return fallbackRegulations(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// Buildings fetches the building-ledger title records. The ledger is keyed
// by the decomposed identifier rather than the raw PNU.
func (c *Client) Buildings(ctx context.Context, id domain.ParcelID) ([]Building, Provenance) {
	params := url.Values{
		"sigunguCd": {id.SigunguCode()},
		"bjdongCd":  {id.BjdongCode()},
		"platGbCd":  {id.PlatGbCode()},
		"bun":       {id.Bun()},
		"ji":        {id.Ji()},
		"numOfRows": {"10"},
	}
	items, err := fetchXMLItems[Building](ctx, c, c.endpoints.Building+"/getBrTitleInfo", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "building", err)
		return fallbackBuildings(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// PriceHistory fetches the official land price series, most recent first.
func (c *Client) PriceHistory(ctx context.Context, id domain.ParcelID) ([]PriceEntry, Provenance) {
	params := url.Values{"pnu": {id.String()}, "numOfRows": {"10"}}
	items, err := fetchXMLItems[PriceEntry](ctx, c, c.endpoints.LandUse+"/getIndivOalp", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "price_history", err)
		return fallbackPriceHistory(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// MountainZones fetches mountain/forest designations for the parcel.
func (c *Client) MountainZones(ctx context.Context, id domain.ParcelID) ([]MountainZone, Provenance) {
	params := url.Values{
		"sigunguCd":  {id.SigunguCode()},
		"bjdongCd":   {id.BjdongCode()},
		"bun":        {id.Bun()},
		"ji":         {id.Ji()},
		"mountainGb": {id.PlatGbCode()},
		"numOfRows":  {"10"},
	}
	items, err := fetchXMLItems[MountainZone](ctx, c, c.endpoints.Mountain+"/getSanjiInfo", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "mountain", err)
		return fallbackMountainZones(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// HeritageZones fetches cultural-heritage designations. The heritage
// registry is keyed by province/county codes, the coarsest PNU fragments.
func (c *Client) HeritageZones(ctx context.Context, id domain.ParcelID) ([]HeritageZone, Provenance) {
	sigungu := id.SigunguCode()
	params := url.Values{
		"ccbaKdcd":  {"11"},
		"ctprvnCd":  {sigungu[0:2]},
		"gugunCd":   {sigungu[2:5]},
		"numOfRows": {"10"},
	}
	items, err := fetchXMLItems[HeritageZone](ctx, c, c.endpoints.Culture+"/getCcbaCtgryList", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "heritage", err)
		return fallbackHeritageZones(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// CommercialStores fetches store density for the parcel's sub-district.
// This registry only speaks JSON.
func (c *Client) CommercialStores(ctx context.Context, id domain.ParcelID) ([]CommercialStore, Provenance) {
	params := url.Values{
		"divId": {"ctprvnCd"},
		"key":   {id.BjdongCode()},
	}
	items, err := fetchJSONItems[CommercialStore](ctx, c, c.endpoints.Commercial+"/storeListInDong", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "commercial", err)
		return fallbackStores(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// Permits fetches building-permit outlines for the lot.
func (c *Client) Permits(ctx context.Context, id domain.ParcelID) ([]Permit, Provenance) {
	params := url.Values{
		"sigunguCd": {id.SigunguCode()},
		"bjdongCd":  {id.BjdongCode()},
		"bun":       {id.Bun()},
		"ji":        {id.Ji()},
		"numOfRows": {"10"},
	}
	items, err := fetchXMLItems[Permit](ctx, c, c.endpoints.Permit+"/getApBasisOulnInfo", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "permit", err)
		return fallbackPermits(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}

// UnsoldHousing fetches the region's unsold-housing counts.
func (c *Client) UnsoldHousing(ctx context.Context, id domain.ParcelID) ([]UnsoldHousing, Provenance) {
	params := url.Values{
		"sigunguCd": {id.SigunguCode()},
		"numOfRows": {"10"},
	}
	items, err := fetchXMLItems[UnsoldHousing](ctx, c, c.endpoints.Unsold+"/getUnsoldHouseInfo", c.dataKey, params)
	if err != nil {
		c.fallbackWarn(ctx, "unsold", err)
		return fallbackUnsoldHousing(), ProvenanceFallback
	}
	return items, ProvenanceSourced
}
