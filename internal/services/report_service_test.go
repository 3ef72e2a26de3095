package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcli/internal/config"
)

func writeFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dataDir := t.TempDir()
	outDir := t.TempDir()

	generation := writeFixture(t, dataDir, "generation.csv",
		"Date,Generation (MU)\n"+
			"01/03/2024,4000\n"+
			"02/03/2024,4100\n"+
			"03/03/2024,4200\n"+
			"04/03/2024,4300\n"+
			"05/03/2024,4400\n")

	damPrice := writeFixture(t, dataDir, "dam.csv",
		"Date,DAM Price\n"+
			"01/03/2024,4.0\n"+
			"02/03/2024,4.2\n"+
			"03/03/2024,4.4\n"+
			"05/03/2024,4.8\n")

	return &config.Config{
		Report: config.ReportConfig{
			OutputDir:    outDir,
			VarianceMode: "sample",
		},
		Metrics: []config.MetricConfig{
			{
				Name:           "generation",
				Path:           generation,
				Format:         "csv",
				ValueColumn:    "Generation (MU)",
				Mode:           "sum",
				RollingWindows: []int{7},
			},
			{
				Name:              "dam_price",
				Path:              damPrice,
				Format:            "csv",
				ValueColumn:       "DAM Price",
				Mode:              "average",
				RollingWindows:    []int{3},
				TradingDayWindows: true,
			},
		},
	}, outDir
}

func TestReportServiceRun(t *testing.T) {
	cfg, outDir := testConfig(t)
	svc := NewReportService(cfg, nil)

	require.NoError(t, svc.Run(context.Background()))

	for _, name := range []string{
		filepath.Join("generation", "monthly.csv"),
		filepath.Join("generation", "weekly.csv"),
		filepath.Join("generation", "fiscal.csv"),
		filepath.Join("generation", "rolling_7d.csv"),
		filepath.Join("generation", "band.csv"),
		filepath.Join("generation", "report.json"),
		filepath.Join("dam_price", "rolling_3d.csv"),
		"alignment.csv",
		"correlations.csv",
		"summary.json",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "summary.json"))
	require.NoError(t, err)

	var summary RunSummary
	require.NoError(t, json.Unmarshal(content, &summary))
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, []string{"generation", "dam_price"}, summary.Metrics)
	assert.Equal(t, "2024-03-01", string(summary.WindowFrom))
	assert.Equal(t, "2024-03-05", string(summary.WindowTo))

	// Both series rise together over the window.
	require.Len(t, summary.Correlations, 1)
	corr := summary.Correlations[0]
	assert.Equal(t, "generation", corr.SeriesX)
	assert.Equal(t, "dam_price", corr.SeriesY)
	assert.InDelta(t, 1.0, corr.Coefficient, 1e-9)
	assert.Equal(t, 4, corr.Pairs)
}

func TestReportServiceMetricJSON(t *testing.T) {
	cfg, outDir := testConfig(t)
	svc := NewReportService(cfg, nil)
	require.NoError(t, svc.Run(context.Background()))

	content, err := os.ReadFile(filepath.Join(outDir, "generation", "report.json"))
	require.NoError(t, err)

	var report MetricReport
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Equal(t, "generation", report.Name)
	assert.Equal(t, "2024-03-05", string(report.LatestDate))
	require.Len(t, report.Monthly, 1)
	assert.Equal(t, "2024-03", report.Monthly[0].PeriodKey)
	assert.InDelta(t, 21000, report.Monthly[0].Value, 1e-9)
	require.Len(t, report.Rolling, 1)
	assert.Equal(t, 7, report.Rolling[0].WindowDays)
	require.NotNil(t, report.DailyBand)
}

func TestReportServiceConfiguredWindow(t *testing.T) {
	cfg, outDir := testConfig(t)
	cfg.Report.From = "2024-03-02"
	cfg.Report.To = "2024-03-04"
	svc := NewReportService(cfg, nil)
	require.NoError(t, svc.Run(context.Background()))

	content, err := os.ReadFile(filepath.Join(outDir, "summary.json"))
	require.NoError(t, err)

	var summary RunSummary
	require.NoError(t, json.Unmarshal(content, &summary))
	assert.Equal(t, "2024-03-02", string(summary.WindowFrom))
	assert.Equal(t, "2024-03-04", string(summary.WindowTo))
}

func TestReportServiceMissingFile(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Metrics[0].Path = filepath.Join(t.TempDir(), "missing.csv")
	svc := NewReportService(cfg, nil)

	err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation")
}
