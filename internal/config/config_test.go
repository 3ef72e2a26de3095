package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridpulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
  output: console
report:
  output_dir: out
  from: "2024-01-01"
  to: "2024-03-31"
  variance_mode: population
metrics:
  - name: generation
    path: data/generation.csv
    format: csv
    value_column: "Generation (MU)"
    mode: sum
    rolling_windows: [7, 30]
  - name: dam_price
    path: data/dam.xlsx
    format: xlsx
    mode: average
    lag_days: 2
    trading_day_windows: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "population", cfg.Report.VarianceMode)
	require.Len(t, cfg.Metrics, 2)
	assert.Equal(t, "generation", cfg.Metrics[0].Name)
	assert.Equal(t, []int{7, 30}, cfg.Metrics[0].RollingWindows)
	assert.Equal(t, 2, cfg.Metrics[1].LagDays)
	assert.True(t, cfg.Metrics[1].TradingDayWindows)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	path := writeConfig(t, `
metrics:
  - name: generation
    path: data/generation.csv
    format: csv
    mode: median
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingMetrics(t *testing.T) {
	path := writeConfig(t, `
report:
  output_dir: out
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadDateBounds(t *testing.T) {
	path := writeConfig(t, `
report:
  from: "01/03/2024"
metrics:
  - name: generation
    path: data/generation.csv
    format: csv
    mode: sum
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
