// Package config builds runtime configuration from the environment so main
// stays lean. Market indicators live in an operator-editable JSON file and
// are loaded separately; they are data, not wiring.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// VWorld geo platform (WFS features, WMS tiles, address search).
	VWorldKey       string
	VWorldDomain    string
	VWorldWFSURL    string
	VWorldWMSURL    string
	VWorldSearchURL string

	// data.go.kr public-data registries. The toji-eum key covers the
	// land-use information service and falls back to the general key.
	DataGoKRKey string
	TojiEumKey  string

	// Optional Redis for the tile cache; empty URL disables it.
	RedisURL string

	// Path to the market indicators JSON file.
	MarketDataPath string
}

// RegistryCallTimeout bounds every single registry upstream call.
const RegistryCallTimeout = 5 * time.Second

// ReportDeadline bounds one whole report fan-out; it cancels all outstanding
// registry calls together rather than relying on per-call timeouts alone.
const ReportDeadline = 15 * time.Second

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("LANDGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataKey := os.Getenv("DATA_GO_KR_API_KEY")
	tojiKey := os.Getenv("TOJI_EUM_API_KEY")
	if tojiKey == "" {
		tojiKey = dataKey
	}

	domain := os.Getenv("VWORLD_DOMAIN")
	if domain == "" {
		domain = "localhost"
	}

	marketPath := os.Getenv("MARKET_DATA_PATH")
	if marketPath == "" {
		marketPath = "data/market_indicators.json"
	}

	return Server{
		Addr:            addr,
		VWorldKey:       os.Getenv("VWORLD_API_KEY"),
		VWorldDomain:    domain,
		VWorldWFSURL:    envOr("VWORLD_WFS_URL", "https://api.vworld.kr/req/wfs"),
		VWorldWMSURL:    envOr("VWORLD_WMS_URL", "https://api.vworld.kr/req/wms"),
		VWorldSearchURL: envOr("VWORLD_SEARCH_URL", "https://api.vworld.kr/req/search"),
		DataGoKRKey:     dataKey,
		TojiEumKey:      tojiKey,
		RedisURL:        os.Getenv("REDIS_URL"),
		MarketDataPath:  marketPath,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// MarketIndicators are the static market constants consumed by the risk
// diagnoser. They are operator-edited out of band; the process treats them
// as read-only after load.
type MarketIndicators struct {
	PFInterestRate        float64 `json:"pf_interest_rate"`
	MortgageRate          float64 `json:"mortgage_rate"`
	UnsoldRiskLevel       string  `json:"unsold_risk_level"`
	ConstructionCostPerPy int64   `json:"construction_cost_per_py"`
	MarketSentiment       string  `json:"market_sentiment"`

	// PFRateCaution is the threshold above which project-financing cost
	// counts against the diagnosis score.
	PFRateCaution float64 `json:"pf_rate_caution"`
}

// DefaultMarketIndicators reflect the last manually curated snapshot and are
// used when no indicator file is present.
func DefaultMarketIndicators() MarketIndicators {
	return MarketIndicators{
		PFInterestRate:        8.5,
		MortgageRate:          4.5,
		UnsoldRiskLevel:       "HIGH",
		ConstructionCostPerPy: 8_500_000,
		MarketSentiment:       "BEARISH",
		PFRateCaution:         8.0,
	}
}

// LoadMarketIndicators reads the indicator file, falling back to defaults
// when the file is absent. A present-but-malformed file is an error: silently
// diagnosing with stale defaults would be worse than failing startup.
func LoadMarketIndicators(path string) (MarketIndicators, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultMarketIndicators(), nil
		}
		return MarketIndicators{}, fmt.Errorf("read market indicators: %w", err)
	}

	ind := DefaultMarketIndicators()
	if err := json.Unmarshal(data, &ind); err != nil {
		return MarketIndicators{}, fmt.Errorf("parse market indicators %s: %w", path, err)
	}
	return ind, nil
}
