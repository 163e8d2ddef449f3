package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMarketIndicators_MissingFileUsesDefaults(t *testing.T) {
	ind, err := LoadMarketIndicators(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMarketIndicators(), ind)
}

func TestLoadMarketIndicators_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indicators.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pf_interest_rate": 6.2}`), 0o600))

	ind, err := LoadMarketIndicators(path)
	require.NoError(t, err)

	assert.Equal(t, 6.2, ind.PFInterestRate)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultMarketIndicators().PFRateCaution, ind.PFRateCaution)
}

func TestLoadMarketIndicators_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indicators.json")
	require.NoError(t, os.WriteFile(path, []byte(`{pf_interest_rate`), 0o600))

	_, err := LoadMarketIndicators(path)
	assert.Error(t, err)
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LANDGATE_ADDR", "")
	t.Setenv("DATA_GO_KR_API_KEY", "shared-key")
	t.Setenv("TOJI_EUM_API_KEY", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "shared-key", cfg.DataGoKRKey)
	assert.Equal(t, "shared-key", cfg.TojiEumKey, "toji key falls back to the general key")
	assert.Equal(t, "https://api.vworld.kr/req/wfs", cfg.VWorldWFSURL)
}
