package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go-travelops/internal/common/apperr"
	"go-travelops/internal/features/builder"

	"go.uber.org/zap"
)

type stubProvider struct {
	rows  []map[string]any
	err   error
	block chan struct{}
}

func (p *stubProvider) Fetch(ctx context.Context, source string, rng builder.DateRange, filters map[string]any) ([]map[string]any, error) {
	if p.block != nil {
		<-p.block
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.rows, nil
}

type sinkSpy struct {
	mu     sync.Mutex
	events []Event
}

func (s *sinkSpy) Publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *sinkSpy) states() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, len(s.events))
	for i, e := range s.events {
		out[i] = e.State
	}
	return out
}

func newTestService(provider DataProvider, sink EventSink) *PipelineServiceImpl {
	svc := NewPipelineService(provider, NewBasicPDFRenderer(), sink, zap.NewNop()).(*PipelineServiceImpl)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func defaultRows() []map[string]any {
	return []map[string]any{
		{"date": "Mon", "value": 100.0},
		{"date": "Tue", "value": 250.0},
	}
}

func testConfig(t builder.ReportType, f builder.OutputFormat) builder.ReportConfiguration {
	return builder.ReportConfiguration{
		Type:   t,
		Format: f,
		DateRange: builder.DateRange{
			Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestGenerateRequiresType(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	_, err := svc.Generate(context.Background(), nil, builder.ReportConfiguration{Format: builder.FormatPDF})
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if svc.State() != StateIdle {
		t.Errorf("state = %q, want idle", svc.State())
	}
}

func TestGenerateDashboardPreview(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	widgets := []builder.Widget{builder.NewWidget(builder.WidgetKindChart)}
	result, err := svc.Generate(context.Background(), widgets, testConfig(builder.ReportTypeSales, builder.FormatDashboard))
	if err != nil {
		t.Fatal(err)
	}

	if result.Artifact != nil {
		t.Error("dashboard preview produced an artifact")
	}
	if len(result.Preview) != 1 || result.Preview[0].ID != widgets[0].ID {
		t.Errorf("preview = %+v, want the widget list unchanged", result.Preview)
	}
}

func TestGeneratePDFFilename(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	result, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeFinancial, builder.FormatPDF))
	if err != nil {
		t.Fatal(err)
	}

	want := "financial_report_2026-03-15.pdf"
	if result.Artifact.Filename != want {
		t.Errorf("filename = %q, want %q", result.Artifact.Filename, want)
	}
	if result.Artifact.ContentType != "application/pdf" {
		t.Errorf("content type = %q", result.Artifact.ContentType)
	}
	if !strings.HasPrefix(string(result.Artifact.Data), "%PDF-") {
		t.Error("artifact is not a pdf document")
	}
}

func TestGenerateExcelFilename(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	result, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeSales, builder.FormatExcel))
	if err != nil {
		t.Fatal(err)
	}

	want := "sales_report_2026-03-15.xlsx"
	if result.Artifact.Filename != want {
		t.Errorf("filename = %q, want %q", result.Artifact.Filename, want)
	}
}

func TestGenerateCSVTable(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	result, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeOperational, builder.FormatCSV))
	if err != nil {
		t.Fatal(err)
	}

	body := string(result.Artifact.Data)
	if !strings.Contains(body, "date,value") {
		t.Errorf("csv header missing, got:\n%s", body)
	}
	if !strings.Contains(body, "Mon,100") {
		t.Errorf("csv row missing, got:\n%s", body)
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	sink := &sinkSpy{}
	svc := newTestService(&stubProvider{err: errors.New("connection refused")}, sink)

	_, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeFinancial, builder.FormatPDF))
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "failed to generate report" {
		t.Errorf("error message = %q, want the generic one", err.Error())
	}
	if !apperr.IsGeneration(err) {
		t.Errorf("err = %v, want generation error", err)
	}

	states := sink.states()
	if len(states) != 2 || states[0] != StateGenerating || states[1] != StateFailed {
		t.Errorf("published states = %v, want [generating failed]", states)
	}
	if svc.State() != StateIdle {
		t.Errorf("state = %q, want idle after failure", svc.State())
	}
}

func TestGenerateRejectsConcurrent(t *testing.T) {
	block := make(chan struct{})
	provider := &stubProvider{rows: defaultRows(), block: block}
	svc := newTestService(provider, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeSales, builder.FormatCSV))
		done <- err
	}()

	// Wait for the first generation to claim the pipeline.
	for svc.State() != StateGenerating {
		time.Sleep(time.Millisecond)
	}

	_, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeSales, builder.FormatCSV))
	if !apperr.IsValidation(err) {
		t.Fatalf("concurrent generate err = %v, want validation rejection", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if svc.State() != StateIdle {
		t.Errorf("state = %q, want idle", svc.State())
	}
}

func TestGenerateSuccessEvents(t *testing.T) {
	sink := &sinkSpy{}
	svc := newTestService(&stubProvider{rows: defaultRows()}, sink)

	_, err := svc.Generate(context.Background(), nil, testConfig(builder.ReportTypeSales, builder.FormatCSV))
	if err != nil {
		t.Fatal(err)
	}

	states := sink.states()
	if len(states) != 2 || states[0] != StateGenerating || states[1] != StateSucceeded {
		t.Errorf("published states = %v, want [generating succeeded]", states)
	}
}

func TestGenerateMetricExpression(t *testing.T) {
	svc := newTestService(&stubProvider{rows: defaultRows()}, nil)

	w := builder.NewWidget(builder.WidgetKindMetric)
	w.Config.Metric.Label = "Average"
	w.Config.Metric.Expression = "value / count"

	result, err := svc.Generate(context.Background(), []builder.Widget{w}, testConfig(builder.ReportTypeSales, builder.FormatCSV))
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Payload.Metrics) != 1 {
		t.Fatalf("metrics = %+v, want one", result.Payload.Metrics)
	}
	m := result.Payload.Metrics[0]
	if m.Label != "Average" {
		t.Errorf("label = %q", m.Label)
	}
	if m.Value != 175 {
		t.Errorf("value = %v, want 175 (350/2)", m.Value)
	}
}

func TestReportTitle(t *testing.T) {
	tests := []struct {
		in   builder.ReportType
		want string
	}{
		{builder.ReportTypeFinancial, "FINANCIAL Report"},
		{builder.ReportTypeStaffPerformance, "STAFF PERFORMANCE Report"},
	}
	for _, tt := range tests {
		if got := ReportTitle(tt.in); got != tt.want {
			t.Errorf("ReportTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupSeries(t *testing.T) {
	rows := []map[string]any{
		{"branch": "Jeddah", "value": 10.0},
		{"branch": "Riyadh", "value": 5.0},
		{"branch": "Jeddah", "value": 7.0},
	}

	points := groupSeries(rows, "branch", "value")
	if len(points) != 2 {
		t.Fatalf("points = %+v, want 2 groups", points)
	}
	if points[0].Label != "Jeddah" || points[0].Value != 17 {
		t.Errorf("first group = %+v, want Jeddah 17", points[0])
	}
	if points[1].Label != "Riyadh" || points[1].Value != 5 {
		t.Errorf("second group = %+v, want Riyadh 5", points[1])
	}
}
