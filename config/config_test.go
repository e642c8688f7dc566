package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demand-forecaster/models"
)

func TestLoad_RequiresDocStoreURL(t *testing.T) {
	t.Setenv("DOCSTORE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStoreConnection))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOCSTORE_URL", "postgres://localhost/forecast")
	t.Setenv("WIND_POLICY", "")
	t.Setenv("PAGE_WAIT", "")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/forecast", cfg.DocStoreURL)
	assert.Equal(t, WindDefaultZero, cfg.WindPolicy)
	assert.Equal(t, 10*time.Second, cfg.PageWait)
	assert.Equal(t, "data/Forecast_Data.csv", cfg.ForecastCSVPath)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DOCSTORE_URL", "postgres://localhost/forecast")
	t.Setenv("WIND_POLICY", "REJECT")
	t.Setenv("PAGE_WAIT", "3s")
	t.Setenv("CURRENT_DAY_OFFSET", "1")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, WindReject, cfg.WindPolicy)
	assert.Equal(t, 3*time.Second, cfg.PageWait)
	assert.Equal(t, 1, cfg.CurrentDayOffset)
}

func TestLoad_RejectsUnknownWindPolicy(t *testing.T) {
	t.Setenv("DOCSTORE_URL", "postgres://localhost/forecast")
	t.Setenv("WIND_POLICY", "guess")

	_, err := Load()
	assert.Error(t, err)
}
