package builder

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSessionAddWidget(t *testing.T) {
	s := NewSession()

	first := s.AddWidget(WidgetKindChart)
	second := s.AddWidget(WidgetKindTable)

	if len(s.Widgets) != 2 {
		t.Fatalf("widget count = %d, want 2", len(s.Widgets))
	}
	if first.ID == second.ID {
		t.Errorf("widgets share id %s", first.ID)
	}
	if s.Widgets[0].ID != first.ID || s.Widgets[1].ID != second.ID {
		t.Error("widgets not appended in order")
	}
}

func TestSessionUpdateWidgetTitleOnly(t *testing.T) {
	s := NewSession()
	w := s.AddWidget(WidgetKindChart)

	s.UpdateWidget(w.ID, WidgetPatch{Title: strPtr("Q3 Bookings")})

	got := s.Widget(w.ID)
	if got.Title != "Q3 Bookings" {
		t.Errorf("title = %q, want %q", got.Title, "Q3 Bookings")
	}
	if got.Position != w.Position {
		t.Error("patching title changed position")
	}
	if got.Config.Chart == nil || got.Config.Chart.ChartType != ChartTypeBar {
		t.Error("patching title changed chart config")
	}
}

func TestSessionUpdateWidgetNestedConfig(t *testing.T) {
	s := NewSession()
	w := s.AddWidget(WidgetKindChart)

	pie := ChartTypePie
	s.UpdateWidget(w.ID, WidgetPatch{Config: &ConfigPatch{
		Chart: &ChartConfigPatch{ChartType: &pie},
	}})

	got := s.Widget(w.ID)
	if got.Config.Chart.ChartType != ChartTypePie {
		t.Errorf("chart type = %q, want %q", got.Config.Chart.ChartType, ChartTypePie)
	}
	if got.Config.Chart.DataSource != DefaultDataSource {
		t.Errorf("data source = %q, want untouched default", got.Config.Chart.DataSource)
	}
	if got.Config.Chart.XAxis != "date" || got.Config.Chart.YAxis != "value" {
		t.Error("axis fields did not survive a chart type patch")
	}
}

func TestSessionUpdateWidgetUnknownID(t *testing.T) {
	s := NewSession()
	w := s.AddWidget(WidgetKindMetric)

	s.UpdateWidget("widget_0", WidgetPatch{Title: strPtr("ghost")})

	if got := s.Widget(w.ID); got.Title != "New metric" {
		t.Errorf("title = %q, unknown-id update must not touch other widgets", got.Title)
	}
	if len(s.Widgets) != 1 {
		t.Errorf("widget count = %d, want 1", len(s.Widgets))
	}
}

func TestSessionDeleteWidget(t *testing.T) {
	s := NewSession()
	a := s.AddWidget(WidgetKindChart)
	b := s.AddWidget(WidgetKindTable)

	s.Select(a.ID)
	s.DeleteWidget(a.ID)

	if len(s.Widgets) != 1 || s.Widgets[0].ID != b.ID {
		t.Fatalf("unexpected widgets after delete: %+v", s.Widgets)
	}
	if s.Selected() != "" {
		t.Errorf("selection = %q, want cleared", s.Selected())
	}

	// Deleting again is a no-op.
	s.DeleteWidget(a.ID)
	if len(s.Widgets) != 1 {
		t.Errorf("second delete removed a widget, count = %d", len(s.Widgets))
	}
}

func TestSessionDeleteKeepsOtherSelection(t *testing.T) {
	s := NewSession()
	a := s.AddWidget(WidgetKindChart)
	b := s.AddWidget(WidgetKindTable)

	s.Select(b.ID)
	s.DeleteWidget(a.ID)

	if s.Selected() != b.ID {
		t.Errorf("selection = %q, want %q", s.Selected(), b.ID)
	}
}

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name string
		in   WidgetPosition
		want WidgetPosition
	}{
		{
			name: "negative origin",
			in:   WidgetPosition{X: -3, Y: -1, Width: 4, Height: 2},
			want: WidgetPosition{X: 0, Y: 0, Width: 4, Height: 2},
		},
		{
			name: "width beyond grid",
			in:   WidgetPosition{X: 0, Y: 0, Width: 40, Height: 2},
			want: WidgetPosition{X: 0, Y: 0, Width: GridColumns, Height: 2},
		},
		{
			name: "zero size",
			in:   WidgetPosition{X: 2, Y: 2, Width: 0, Height: 0},
			want: WidgetPosition{X: 2, Y: 2, Width: 1, Height: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampPosition(tt.in); got != tt.want {
				t.Errorf("clampPosition(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSessionConfigurationSetters(t *testing.T) {
	s := NewSession()

	s.SetType(ReportTypeFinancial)
	s.SetFormat(FormatPDF)
	s.SetFilters(map[string]any{"branch": "Jeddah"})
	s.SetSchedule(&ScheduleSpec{Frequency: FrequencyWeekly, Recipients: []string{"ops@example.com"}})

	if s.Config.Type != ReportTypeFinancial {
		t.Errorf("type = %q", s.Config.Type)
	}
	if s.Config.Format != FormatPDF {
		t.Errorf("format = %q", s.Config.Format)
	}
	if s.Config.Filters["branch"] != "Jeddah" {
		t.Errorf("filters = %v", s.Config.Filters)
	}
	if s.Config.Schedule == nil || s.Config.Schedule.Frequency != FrequencyWeekly {
		t.Errorf("schedule = %+v", s.Config.Schedule)
	}
}

func TestSessionUpdateWidgetIgnoresMismatchedVariant(t *testing.T) {
	s := NewSession()
	w := s.AddWidget(WidgetKindTable)

	pie := ChartTypePie
	s.UpdateWidget(w.ID, WidgetPatch{Config: &ConfigPatch{
		Chart: &ChartConfigPatch{ChartType: &pie},
	}})

	got := s.Widget(w.ID)
	if got.Config.Chart != nil {
		t.Errorf("chart config = %+v, want nil on a table widget", got.Config.Chart)
	}
	if got.Config.Table == nil || got.Config.Table.DataSource != DefaultDataSource {
		t.Errorf("table config = %+v, want untouched default", got.Config.Table)
	}
}

func TestSessionMetricOptionsMerge(t *testing.T) {
	s := NewSession()
	w := s.AddWidget(WidgetKindMetric)

	s.UpdateWidget(w.ID, WidgetPatch{Config: &ConfigPatch{
		Metric: &MetricConfigPatch{Options: map[string]any{"precision": 2, "currency": "SAR"}},
	}})
	s.UpdateWidget(w.ID, WidgetPatch{Config: &ConfigPatch{
		Metric: &MetricConfigPatch{Options: map[string]any{"precision": 0}},
	}})

	opts := s.Widget(w.ID).Config.Metric.Options
	if opts["precision"] != 0 {
		t.Errorf("precision = %v, want overwritten to 0", opts["precision"])
	}
	if opts["currency"] != "SAR" {
		t.Errorf("currency = %v, want preserved", opts["currency"])
	}
}
