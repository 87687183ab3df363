package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-travelops/internal/common/apperr"
	"go-travelops/internal/features/builder"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

type PipelineService interface {
	// Generate turns a widget list plus configuration into a preview or an
	// export artifact. One generation at a time per pipeline instance.
	Generate(ctx context.Context, widgets []builder.Widget, cfg builder.ReportConfiguration) (*GenerateResult, error)
	State() State
}

type PipelineServiceImpl struct {
	Provider DataProvider
	Renderer PDFRenderer
	Events   EventSink
	Logger   *zap.Logger

	mu    sync.Mutex
	busy  bool
	state State

	now func() time.Time
}

func NewPipelineService(provider DataProvider, renderer PDFRenderer, events EventSink, logger *zap.Logger) PipelineService {
	return &PipelineServiceImpl{
		Provider: provider,
		Renderer: renderer,
		Events:   events,
		Logger:   logger,
		state:    StateIdle,
		now:      time.Now,
	}
}

func (s *PipelineServiceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *PipelineServiceImpl) Generate(ctx context.Context, widgets []builder.Widget, cfg builder.ReportConfiguration) (*GenerateResult, error) {
	if cfg.Type == "" {
		return nil, apperr.Validation("select a report type before generating")
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, apperr.Validation("a report is already being generated")
	}
	s.busy = true
	s.state = StateGenerating
	s.mu.Unlock()

	s.publish(Event{State: StateGenerating, Type: cfg.Type, Format: cfg.Format, At: s.now()})

	result, err := s.generate(ctx, widgets, cfg)

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
	} else {
		s.state = StateSucceeded
	}
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("report generation failed",
			zap.String("type", string(cfg.Type)),
			zap.String("format", string(cfg.Format)),
			zap.Error(err))
		s.publish(Event{State: StateFailed, Type: cfg.Type, Format: cfg.Format, Error: "failed to generate report", At: s.now()})
		s.reset()
		return nil, apperr.Generation(err)
	}

	event := Event{State: StateSucceeded, Type: cfg.Type, Format: cfg.Format, At: s.now()}
	if result.Artifact != nil {
		event.Filename = result.Artifact.Filename
	}
	s.publish(event)
	s.reset()
	return result, nil
}

func (s *PipelineServiceImpl) reset() {
	s.mu.Lock()
	s.busy = false
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *PipelineServiceImpl) publish(event Event) {
	if s.Events != nil {
		s.Events.Publish(event)
	}
}

// generate does the actual assembly. Panics from malformed widget configs
// are converted to errors so a bad widget can never take the service down.
func (s *PipelineServiceImpl) generate(ctx context.Context, widgets []builder.Widget, cfg builder.ReportConfiguration) (result *GenerateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during generation: %v", r)
		}
	}()

	// Dashboard preview carries the widget list through unchanged; there is
	// no artifact and no export cost.
	if cfg.Format == builder.FormatDashboard {
		return &GenerateResult{Preview: widgets}, nil
	}

	payload, err := s.buildPayload(ctx, widgets, cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Format {
	case builder.FormatCSV:
		data, err := ExportCSV(payload.Table)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{Payload: payload, Artifact: &ExportArtifact{
			Data:        data,
			Filename:    s.filename(cfg.Type, "csv"),
			ContentType: "text/csv",
			Format:      builder.FormatCSV,
		}}, nil

	case builder.FormatExcel:
		data, err := ExportExcel(payload.Table)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{Payload: payload, Artifact: &ExportArtifact{
			Data:        data,
			Filename:    s.filename(cfg.Type, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Format:      builder.FormatExcel,
		}}, nil

	case builder.FormatPDF:
		data, err := s.Renderer.Render(ctx, TemplateBusinessProposal, payload)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{Payload: payload, Artifact: &ExportArtifact{
			Data:        data,
			Filename:    s.filename(cfg.Type, "pdf"),
			ContentType: "application/pdf",
			Format:      builder.FormatPDF,
		}}, nil

	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}
}

func (s *PipelineServiceImpl) filename(t builder.ReportType, ext string) string {
	return fmt.Sprintf("%s_report_%s.%s", t, s.now().Format("2006-01-02"), ext)
}

// ReportTitle renders a report type as a document heading, e.g.
// "financial" -> "FINANCIAL Report".
func ReportTitle(t builder.ReportType) string {
	name := strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
	return name + " Report"
}

// defaultSource maps a report type onto the dataset its widgets fall back
// to when they name no source of their own.
func defaultSource(t builder.ReportType) string {
	switch t {
	case builder.ReportTypeFinancial:
		return "financial_metrics"
	case builder.ReportTypeSales:
		return "sales_data"
	case builder.ReportTypeOperational:
		return "operational_data"
	case builder.ReportTypeCustom:
		return "customer_data"
	default:
		return "staff_performance"
	}
}

func (s *PipelineServiceImpl) buildPayload(ctx context.Context, widgets []builder.Widget, cfg builder.ReportConfiguration) (*ReportPayload, error) {
	fallback := defaultSource(cfg.Type)

	payload := &ReportPayload{
		Title:       ReportTitle(cfg.Type),
		DateRange:   cfg.DateRange,
		GeneratedAt: s.now(),
	}

	var chartDone, tableDone bool
	for _, w := range widgets {
		switch w.Kind {
		case builder.WidgetKindMetric:
			metric, err := s.resolveMetric(ctx, w, cfg)
			if err != nil {
				return nil, err
			}
			payload.Metrics = append(payload.Metrics, metric)

		case builder.WidgetKindChart:
			if chartDone || w.Config.Chart == nil {
				continue
			}
			chart, err := s.resolveChart(ctx, w, cfg)
			if err != nil {
				return nil, err
			}
			payload.Chart = chart
			chartDone = true

		case builder.WidgetKindTable:
			if tableDone || w.Config.Table == nil {
				continue
			}
			table, err := s.resolveTable(ctx, w, cfg)
			if err != nil {
				return nil, err
			}
			payload.Table = table
			tableDone = true
		}
	}

	// A report with no chart or table widgets still carries the default
	// dataset for its type, so every format has something to export.
	if !tableDone {
		rows, err := s.Provider.Fetch(ctx, fallback, cfg.DateRange, cfg.Filters)
		if err != nil {
			return nil, err
		}
		payload.Table = tableFromRows(rows, nil)
	}
	if !chartDone {
		rows, err := s.Provider.Fetch(ctx, fallback, cfg.DateRange, cfg.Filters)
		if err != nil {
			return nil, err
		}
		payload.Chart = ChartDataset{
			Title:     payload.Title,
			ChartType: builder.ChartTypeBar,
			Points:    seriesFromRows(rows, "date", "value"),
		}
	}
	if len(payload.Metrics) == 0 {
		rows, err := s.Provider.Fetch(ctx, fallback, cfg.DateRange, cfg.Filters)
		if err != nil {
			return nil, err
		}
		payload.Metrics = []MetricValue{
			{Label: "Total", Value: sumColumn(rows, "value")},
			{Label: "Records", Value: float64(len(rows))},
		}
	}

	return payload, nil
}

func (s *PipelineServiceImpl) resolveMetric(ctx context.Context, w builder.Widget, cfg builder.ReportConfiguration) (MetricValue, error) {
	mc := w.Config.Metric
	if mc == nil {
		return MetricValue{}, fmt.Errorf("metric widget %s has no metric config", w.ID)
	}

	source := mc.DataSource
	if source == "" {
		source = defaultSource(cfg.Type)
	}

	rows, err := s.Provider.Fetch(ctx, source, cfg.DateRange, cfg.Filters)
	if err != nil {
		return MetricValue{}, err
	}

	value := sumColumn(rows, "value")
	if mc.Expression != "" {
		value, err = evalMetricExpression(ctx, mc.Expression, value, len(rows))
		if err != nil {
			return MetricValue{}, fmt.Errorf("metric expression for widget %s: %w", w.ID, err)
		}
	}

	label := mc.Label
	if label == "" {
		label = w.Title
	}
	return MetricValue{Label: label, Value: value}, nil
}

// evalMetricExpression runs a tengo expression with "value" bound to the
// summed source value and "count" to the row count.
func evalMetricExpression(ctx context.Context, expression string, value float64, count int) (float64, error) {
	script := tengo.NewScript([]byte("result := " + expression))
	if err := script.Add("value", value); err != nil {
		return 0, err
	}
	if err := script.Add("count", count); err != nil {
		return 0, err
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return 0, err
	}
	return compiled.Get("result").Float(), nil
}

func (s *PipelineServiceImpl) resolveChart(ctx context.Context, w builder.Widget, cfg builder.ReportConfiguration) (ChartDataset, error) {
	cc := w.Config.Chart

	source := cc.DataSource
	if source == "" {
		source = defaultSource(cfg.Type)
	}

	rows, err := s.Provider.Fetch(ctx, source, cfg.DateRange, cfg.Filters)
	if err != nil {
		return ChartDataset{}, err
	}

	xAxis := cc.XAxis
	if xAxis == "" {
		xAxis = "date"
	}
	yAxis := cc.YAxis
	if yAxis == "" {
		yAxis = "value"
	}

	points := seriesFromRows(rows, xAxis, yAxis)
	if cc.GroupBy != "" {
		points = groupSeries(rows, cc.GroupBy, yAxis)
	}

	return ChartDataset{Title: w.Title, ChartType: cc.ChartType, Points: points}, nil
}

func (s *PipelineServiceImpl) resolveTable(ctx context.Context, w builder.Widget, cfg builder.ReportConfiguration) (TableData, error) {
	tc := w.Config.Table

	source := tc.DataSource
	if source == "" {
		source = defaultSource(cfg.Type)
	}

	rows, err := s.Provider.Fetch(ctx, source, cfg.DateRange, cfg.Filters)
	if err != nil {
		return TableData{}, err
	}
	return tableFromRows(rows, tc.Columns), nil
}

// tableFromRows shapes raw rows into the exporter contract. When no column
// list is configured the union of row keys is used, sorted for a stable
// artifact.
func tableFromRows(rows []map[string]any, columns []string) TableData {
	if len(columns) == 0 {
		seen := map[string]bool{}
		for _, row := range rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	table := TableData{Columns: columns}
	for _, row := range rows {
		out := make([]any, len(columns))
		for i, col := range columns {
			out[i] = row[col]
		}
		table.Rows = append(table.Rows, out)
	}
	return table
}

func seriesFromRows(rows []map[string]any, labelField, valueField string) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, SeriesPoint{
			Label: fmt.Sprintf("%v", row[labelField]),
			Value: numeric(row[valueField]),
		})
	}
	return points
}

// groupSeries folds rows into one point per group key, summing values.
func groupSeries(rows []map[string]any, groupField, valueField string) []SeriesPoint {
	totals := map[string]float64{}
	var order []string
	for _, row := range rows {
		key := fmt.Sprintf("%v", row[groupField])
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += numeric(row[valueField])
	}

	points := make([]SeriesPoint, 0, len(order))
	for _, key := range order {
		points = append(points, SeriesPoint{Label: key, Value: totals[key]})
	}
	return points
}

func sumColumn(rows []map[string]any, field string) float64 {
	var total float64
	for _, row := range rows {
		total += numeric(row[field])
	}
	return total
}

func numeric(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
