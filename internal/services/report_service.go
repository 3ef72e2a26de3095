package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gridcli/internal/aggregate"
	"gridcli/internal/align"
	"gridcli/internal/calendar"
	"gridcli/internal/config"
	"gridcli/internal/exporter"
	"gridcli/internal/infrastructure"
	"gridcli/internal/ingest"
	"gridcli/internal/stats"
	"gridcli/pkg/contracts/domain"
)

// RollingWindow pairs one configured window size with its evaluated points.
type RollingWindow struct {
	WindowDays int                   `json:"window_days"`
	Points     []domain.RollingPoint `json:"points"`
}

// MetricReport is everything computed for one metric in a run.
type MetricReport struct {
	Name       string                   `json:"name"`
	Mode       string                   `json:"mode"`
	LatestDate calendar.DayKey          `json:"latest_date,omitempty"`
	Monthly    []domain.PeriodAggregate `json:"monthly"`
	Weekly     []domain.PeriodAggregate `json:"weekly"`
	Fiscal     []domain.PeriodAggregate `json:"fiscal"`
	Rolling    []RollingWindow          `json:"rolling,omitempty"`
	DailyBand  *domain.ControlBand      `json:"daily_band,omitempty"`
	RowErrors  []string                 `json:"row_errors,omitempty"`

	series  domain.Series
	lagDays int
}

// Correlation is one pairwise Pearson coefficient over the alignment window.
type Correlation struct {
	SeriesX     string  `json:"series_x"`
	SeriesY     string  `json:"series_y"`
	Coefficient float64 `json:"coefficient"`
	Pairs       int     `json:"pairs"`
}

// RunSummary is the run-level artifact tying the per-metric outputs together.
type RunSummary struct {
	RunID        string          `json:"run_id"`
	GeneratedAt  string          `json:"generated_at"`
	WindowFrom   calendar.DayKey `json:"window_from,omitempty"`
	WindowTo     calendar.DayKey `json:"window_to,omitempty"`
	Metrics      []string        `json:"metrics"`
	Correlations []Correlation   `json:"correlations,omitempty"`
}

// ReportService runs the full report pipeline for a configuration.
type ReportService struct {
	cfg    *config.Config
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewReportService creates a report service writing under the configured
// output directory.
func NewReportService(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		cfg:    cfg,
		writer: exporter.NewCSVWriter(cfg.Report.OutputDir),
		logger: logger,
	}
}

// Run processes every configured metric concurrently, then the cross-metric
// views, and writes all artifacts. It fails on the first metric error.
func (s *ReportService) Run(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)
	logger := s.logger.With(slog.String("run_id", runID))

	logger.InfoContext(ctx, "report run starting",
		slog.Int("metric_count", len(s.cfg.Metrics)),
		slog.String("output_dir", s.cfg.Report.OutputDir))

	reports := make([]*MetricReport, len(s.cfg.Metrics))
	g, gctx := errgroup.WithContext(ctx)
	for i, mc := range s.cfg.Metrics {
		i, mc := i, mc
		g.Go(func() error {
			report, err := s.processMetric(gctx, logger, mc)
			if err != nil {
				return fmt.Errorf("metric %s: %w", mc.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summary := RunSummary{
		RunID:       runID,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for _, r := range reports {
		summary.Metrics = append(summary.Metrics, r.Name)
	}

	if err := s.writeCrossMetric(ctx, logger, reports, &summary); err != nil {
		return err
	}
	if err := s.writer.WriteJSON("summary.json", summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	logger.InfoContext(ctx, "report run complete")
	return nil
}

func (s *ReportService) processMetric(ctx context.Context, logger *slog.Logger, mc config.MetricConfig) (*MetricReport, error) {
	logger = logger.With(slog.String("metric", mc.Name))

	series, rowErrors, err := s.loadSeries(mc)
	if err != nil {
		return nil, err
	}
	if len(rowErrors) > 0 {
		logger.WarnContext(ctx, "rows skipped during ingestion",
			slog.Int("skipped", len(rowErrors)),
			slog.String("first", rowErrors[0]))
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", mc.Path)
	}

	mode := aggregate.CombinationMode(mc.Mode)
	report := &MetricReport{
		Name:      mc.Name,
		Mode:      mc.Mode,
		Monthly:   aggregate.MonthlySeries(series, mode),
		Weekly:    aggregate.WeeklySeries(series, mode),
		Fiscal:    aggregate.FiscalYearSeries(series, mode),
		RowErrors: rowErrors,
		series:    series,
		lagDays:   mc.LagDays,
	}
	if latest, ok := series.LatestDay(); ok {
		report.LatestDate = latest
	}

	for _, windowDays := range mc.RollingWindows {
		var points []domain.RollingPoint
		if mc.TradingDayWindows {
			points = aggregate.RollingTradingSeries(series, windowDays, mode)
		} else {
			points = aggregate.RollingSeries(series, windowDays, mode)
		}
		report.Rolling = append(report.Rolling, RollingWindow{WindowDays: windowDays, Points: points})
	}

	observations := make([]float64, 0, len(series))
	for _, p := range series.Points() {
		observations = append(observations, p.Value)
	}
	if band, ok := stats.ControlBand(observations, stats.VarianceMode(s.cfg.Report.VarianceMode)); ok {
		report.DailyBand = &band
	}

	if err := s.writeMetricArtifacts(report); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "metric processed",
		slog.Int("days", len(series)),
		slog.String("latest_date", string(report.LatestDate)))
	return report, nil
}

// loadSeries reads one metric file and parses it into a daily series.
func (s *ReportService) loadSeries(mc config.MetricConfig) (domain.Series, []string, error) {
	data, err := os.ReadFile(mc.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", mc.Path, err)
	}

	switch strings.ToLower(mc.Format) {
	case "xlsx":
		wb, rowErrors, err := ingest.ParseWorkbook(data)
		if err != nil {
			return nil, nil, err
		}
		return workbookColumn(wb.Primary, mc.ValueColumn), rowErrors, nil
	default:
		return ingest.ParseDelimitedSeries(string(data), mc.ValueColumn)
	}
}

// workbookColumn picks the configured column of the primary sheet, falling
// back to the sheet's first value column.
func workbookColumn(sheet *ingest.SheetSeries, valueColumn string) domain.Series {
	if sheet == nil || len(sheet.Columns) == 0 {
		return domain.Series{}
	}
	if valueColumn != "" {
		for _, name := range sheet.Columns {
			if strings.EqualFold(name, valueColumn) {
				return sheet.Column(name)
			}
		}
	}
	return sheet.Column(sheet.Columns[0])
}

func (s *ReportService) writeMetricArtifacts(report *MetricReport) error {
	dir := report.Name

	tables := []struct {
		name string
		aggs []domain.PeriodAggregate
	}{
		{"monthly.csv", report.Monthly},
		{"weekly.csv", report.Weekly},
		{"fiscal.csv", report.Fiscal},
	}
	for _, table := range tables {
		err := s.writer.WriteSimpleCSV(filepath.Join(dir, table.name),
			exporter.PeriodHeaders, exporter.PeriodRecords(table.aggs))
		if err != nil {
			return fmt.Errorf("write %s: %w", table.name, err)
		}
	}

	for _, rw := range report.Rolling {
		name := fmt.Sprintf("rolling_%dd.csv", rw.WindowDays)
		err := s.writer.WriteSimpleCSV(filepath.Join(dir, name),
			exporter.RollingHeaders, exporter.RollingRecords(rw.Points))
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if report.DailyBand != nil {
		err := s.writer.WriteSimpleCSV(filepath.Join(dir, "band.csv"),
			exporter.BandHeaders, [][]string{exporter.BandRecord(*report.DailyBand)})
		if err != nil {
			return fmt.Errorf("write band.csv: %w", err)
		}
	}

	if err := s.writer.WriteJSON(filepath.Join(dir, "report.json"), report); err != nil {
		return fmt.Errorf("write report.json: %w", err)
	}
	return nil
}

// writeCrossMetric writes the alignment table and pairwise correlations over
// the shared window.
func (s *ReportService) writeCrossMetric(ctx context.Context, logger *slog.Logger, reports []*MetricReport, summary *RunSummary) error {
	named := make([]align.NamedSeries, 0, len(reports))
	names := make([]string, 0, len(reports))
	for _, r := range reports {
		named = append(named, align.NamedSeries{Name: r.Name, Data: r.series, LagDays: r.lagDays})
		names = append(names, r.Name)
	}

	from, to, ok := s.alignmentBounds(reports)
	if !ok {
		return nil
	}
	summary.WindowFrom = from
	summary.WindowTo = to

	rows, err := align.Window(named, from, to)
	if err != nil {
		return fmt.Errorf("align window: %w", err)
	}
	err = s.writer.WriteSimpleCSV("alignment.csv",
		exporter.AlignmentHeaders(names), exporter.AlignmentRecords(rows))
	if err != nil {
		return fmt.Errorf("write alignment.csv: %w", err)
	}

	var records [][]string
	for i := 0; i < len(named); i++ {
		for j := i + 1; j < len(named); j++ {
			xs, ys, err := align.Pairs(named[i], named[j], from, to)
			if err != nil {
				return fmt.Errorf("pair %s/%s: %w", named[i].Name, named[j].Name, err)
			}
			r, defined := stats.PearsonCorrelation(xs, ys)
			if !defined {
				logger.DebugContext(ctx, "correlation undefined",
					slog.String("series_x", named[i].Name),
					slog.String("series_y", named[j].Name),
					slog.Int("pairs", len(xs)))
				continue
			}
			summary.Correlations = append(summary.Correlations, Correlation{
				SeriesX:     named[i].Name,
				SeriesY:     named[j].Name,
				Coefficient: r,
				Pairs:       len(xs),
			})
			records = append(records, []string{
				named[i].Name, named[j].Name,
				fmt.Sprintf("%.4f", r), fmt.Sprintf("%d", len(xs)),
			})
		}
	}
	if len(records) > 0 {
		err := s.writer.WriteSimpleCSV("correlations.csv",
			[]string{"SeriesX", "SeriesY", "Pearson", "Pairs"}, records)
		if err != nil {
			return fmt.Errorf("write correlations.csv: %w", err)
		}
	}
	return nil
}

// alignmentBounds resolves the window: configured bounds win, otherwise the
// union span of all loaded series.
func (s *ReportService) alignmentBounds(reports []*MetricReport) (calendar.DayKey, calendar.DayKey, bool) {
	from := calendar.DayKey(s.cfg.Report.From)
	to := calendar.DayKey(s.cfg.Report.To)

	var min, max calendar.DayKey
	for _, r := range reports {
		days := r.series.SortedDays()
		if len(days) == 0 {
			continue
		}
		if min == "" || days[0] < min {
			min = days[0]
		}
		if last := days[len(days)-1]; last > max {
			max = last
		}
	}
	if from == "" {
		from = min
	}
	if to == "" {
		to = max
	}
	if from == "" || to == "" || from > to {
		return "", "", false
	}
	return from, to, true
}
