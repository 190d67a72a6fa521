package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	configs := Load(NewViper())

	assert.Equal(t, "dispatch", configs.App.Name)
	assert.Equal(t, uint(6), configs.Geo.Precision)
	assert.Equal(t, 5.0, configs.Match.SearchRadiusKm)
	assert.Equal(t, 0.8, configs.Match.DefaultAcceptanceRate)
	assert.Equal(t, 3, configs.Dispatch.TopN)
	assert.Equal(t, 15*time.Second, configs.Dispatch.Timeout)
	assert.NoError(t, configs.Match.Scoring.Validate())
	assert.NoError(t, Validate(configs))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DISPATCH_TOP_N", "5")
	t.Setenv("DISPATCH_TIMEOUT_SECONDS", "3")
	t.Setenv("GEO_PRECISION", "7")
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	configs := Load(NewViper())

	assert.Equal(t, 5, configs.Dispatch.TopN)
	assert.Equal(t, 3*time.Second, configs.Dispatch.Timeout)
	assert.Equal(t, uint(7), configs.Geo.Precision)
	assert.Equal(t, "memory", configs.Storage.Driver)
}

func TestValidate_RejectsBadWeights(t *testing.T) {
	t.Setenv("MATCH_ETA_WEIGHT", "0.9")

	err := Validate(Load(NewViper()))

	assert.Error(t, err)
}

func TestInitConfig_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.env")
	require.NoError(t, os.WriteFile(path, []byte("MATCH_SEARCH_RADIUS_KM=2.5\n"), 0o600))
	t.Setenv("APP_ENV", "local")
	t.Cleanup(func() { os.Unsetenv("MATCH_SEARCH_RADIUS_KM") })

	configs := InitConfig(path)

	assert.Equal(t, 2.5, configs.Match.SearchRadiusKm)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOME_DISPATCH_KEY", "value")

	assert.Equal(t, "value", GetEnv("SOME_DISPATCH_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MISSING_DISPATCH_KEY", "fallback"))
}
