package registry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landgate/internal/platform/config"
	"landgate/pkg/domain"
)

const testPNU = "4719012600200480004"

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	eps := Endpoints{
		LandUse:    baseURL,
		Building:   baseURL,
		Mountain:   baseURL,
		Culture:    baseURL,
		Commercial: baseURL,
		Permit:     baseURL,
		Unsold:     baseURL,
	}
	cfg := config.Server{DataGoKRKey: "test-key", TojiEumKey: "test-key"}
	return NewClient(cfg, eps, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testParcelID(t *testing.T) domain.ParcelID {
	t.Helper()
	id, err := domain.ParseParcelID(testPNU)
	require.NoError(t, err)
	return id
}

func xmlBody(items string) string {
	return `<response><header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>` +
		`<body><items>` + items + `</items></body></response>`
}

func TestLandUsePlan_Sourced(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"pnu":        r.URL.Query().Get("pnu"),
			"serviceKey": r.URL.Query().Get("serviceKey"),
		}
		io.WriteString(w, xmlBody(
			`<item><pnu>`+testPNU+`</pnu><lndcNm>전</lndcNm><ar>660</ar>`+
				`<indivOalp>45000</indivOalp><luseLawNm>국토의 계획 및 이용에 관한 법률: 계획관리지역</luseLawNm></item>`))
	}))
	defer srv.Close()

	plan, prov := testClient(t, srv.URL).LandUsePlan(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceSourced, prov)
	assert.Equal(t, testPNU, plan.PNU)
	assert.Equal(t, "전", plan.LandCategory)
	assert.Equal(t, float64(45000), plan.OfficialPrice)
	assert.Equal(t, testPNU, gotQuery["pnu"])
	assert.Equal(t, "test-key", gotQuery["serviceKey"])
}

func TestLandUsePlan_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	plan, prov := testClient(t, srv.URL).LandUsePlan(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceFallback, prov)
	assert.Equal(t, testPNU, plan.PNU, "fallback still carries the requested identifier")
	assert.Equal(t, "임야", plan.LandCategory)
}

func TestRegulations_FallbackOnEmbeddedErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<response><header><resultCode>30</resultCode>`+
			`<resultMsg>SERVICE_KEY_IS_NOT_REGISTERED_ERROR</resultMsg></header><body/></response>`)
	}))
	defer srv.Close()

	regs, prov := testClient(t, srv.URL).Regulations(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceFallback, prov)
	require.NotEmpty(t, regs)
	assert.Equal(t, "국토의 계획 및 이용에 관한 법률", regs[0].LawName)
}

func TestRegulations_FallbackOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>OpenAPI gateway error</body>`)
	}))
	defer srv.Close()

	_, prov := testClient(t, srv.URL).Regulations(context.Background(), testParcelID(t))
	assert.Equal(t, ProvenanceFallback, prov)
}

func TestMissingKeySkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a credential")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	c.dataKey = ""
	c.tojiKey = "abc********xyz"

	_, planProv := c.LandUsePlan(context.Background(), testParcelID(t))
	_, bldgProv := c.Buildings(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceFallback, planProv)
	assert.Equal(t, ProvenanceFallback, bldgProv)
}

func TestBuildings_DecomposedParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"sigunguCd": q.Get("sigunguCd"),
			"bjdongCd":  q.Get("bjdongCd"),
			"platGbCd":  q.Get("platGbCd"),
			"bun":       q.Get("bun"),
			"ji":        q.Get("ji"),
		}
		io.WriteString(w, xmlBody(
			`<item><bldNm>테스트창고</bldNm><mainPurpsCdNm>창고시설</mainPurpsCdNm>`+
				`<totArea>450.5</totArea><grndFlrCnt>1</grndFlrCnt></item>`))
	}))
	defer srv.Close()

	bldgs, prov := testClient(t, srv.URL).Buildings(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceSourced, prov)
	require.Len(t, bldgs, 1)
	assert.Equal(t, "테스트창고", bldgs[0].Name)
	assert.Equal(t, map[string]string{
		"sigunguCd": "47190",
		"bjdongCd":  "12600",
		"platGbCd":  "1",
		"bun":       "0048",
		"ji":        "0004",
	}, got)
}

func TestPriceHistory_SourcedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, xmlBody(
			`<item><stdrYear>2024</stdrYear><indivOalp>48000</indivOalp></item>`+
				`<item><stdrYear>2023</stdrYear><indivOalp>46000</indivOalp></item>`))
	}))
	defer srv.Close()

	prices, prov := testClient(t, srv.URL).PriceHistory(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceSourced, prov)
	require.Len(t, prices, 2)
	assert.Equal(t, "2024", prices[0].Year)
	assert.Equal(t, float64(48000), prices[0].Price)
}

func TestCommercialStores_JSONEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("type"))
		io.WriteString(w, `{"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."},`+
			`"body":{"items":[{"bizesNm":"양호슈퍼","indsLclsNm":"소매","indsMclsNm":"종합소매점"}]}}`)
	}))
	defer srv.Close()

	stores, prov := testClient(t, srv.URL).CommercialStores(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceSourced, prov)
	require.Len(t, stores, 1)
	assert.Equal(t, "양호슈퍼", stores[0].Name)
}

func TestHeritageZones_RegionParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{"ctprvnCd": q.Get("ctprvnCd"), "gugunCd": q.Get("gugunCd")}
		io.WriteString(w, xmlBody(`<item><ccbaKdcd>11</ccbaKdcd><ccbaMnm1>구미 도리사</ccbaMnm1></item>`))
	}))
	defer srv.Close()

	zones, prov := testClient(t, srv.URL).HeritageZones(context.Background(), testParcelID(t))

	assert.Equal(t, ProvenanceSourced, prov)
	require.Len(t, zones, 1)
	assert.Equal(t, map[string]string{"ctprvnCd": "47", "gugunCd": "190"}, got)
}

// Every fetcher must satisfy the degraded-mode contract with the upstream
// completely unreachable.
func TestAllFetchersDegradeWithoutUpstream(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")
	id := testParcelID(t)
	ctx := context.Background()

	_, p1 := c.LandUsePlan(ctx, id)
	_, p2 := c.LandCharacteristics(ctx, id)
	_, p3 := c.UrbanPlan(ctx, id)
	_, p4 := c.Regulations(ctx, id)
	_, p5 := c.Buildings(ctx, id)
	_, p6 := c.PriceHistory(ctx, id)
	_, p7 := c.MountainZones(ctx, id)
	_, p8 := c.HeritageZones(ctx, id)
	_, p9 := c.CommercialStores(ctx, id)
	_, p10 := c.Permits(ctx, id)
	_, p11 := c.UnsoldHousing(ctx, id)

	for i, p := range []Provenance{p1, p2, p3, p4, p5, p6, p7, p8, p9, p10, p11} {
		assert.Equal(t, ProvenanceFallback, p, "fetcher %d", i+1)
	}
}
