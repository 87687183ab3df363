package builder

import (
	"strings"
	"testing"
	"time"
)

func TestNewWidgetID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewWidgetID()
		if !strings.HasPrefix(id, "widget_") {
			t.Fatalf("unexpected id format: %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewWidgetDefaults(t *testing.T) {
	tests := []struct {
		kind      WidgetKind
		wantTitle string
	}{
		{WidgetKindChart, "New chart"},
		{WidgetKindTable, "New table"},
		{WidgetKindMetric, "New metric"},
		{WidgetKindText, "New text"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w := NewWidget(tt.kind)

			if w.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", w.Title, tt.wantTitle)
			}
			if w.Position.Width != 6 || w.Position.Height != 4 {
				t.Errorf("position = %dx%d, want 6x4", w.Position.Width, w.Position.Height)
			}
			if w.ID == "" {
				t.Error("widget has no id")
			}
		})
	}
}

func TestNewChartWidgetConfig(t *testing.T) {
	w := NewWidget(WidgetKindChart)

	cc := w.Config.Chart
	if cc == nil {
		t.Fatal("chart widget has no chart config")
	}
	if cc.ChartType != ChartTypeBar {
		t.Errorf("chart type = %q, want %q", cc.ChartType, ChartTypeBar)
	}
	if cc.DataSource != DefaultDataSource {
		t.Errorf("data source = %q, want %q", cc.DataSource, DefaultDataSource)
	}
	if w.Config.Table != nil || w.Config.Metric != nil || w.Config.Text != nil {
		t.Error("chart widget carries config for other kinds")
	}
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()

	if cfg.Format != FormatDashboard {
		t.Errorf("format = %q, want %q", cfg.Format, FormatDashboard)
	}
	if cfg.Schedule != nil {
		t.Error("fresh configuration should have no schedule")
	}

	if cfg.DateRange.Start.IsZero() || !cfg.DateRange.Start.Equal(cfg.DateRange.End) {
		t.Errorf("date range = %v..%v, want single-day default", cfg.DateRange.Start, cfg.DateRange.End)
	}
	if time.Since(cfg.DateRange.Start) > 24*time.Hour {
		t.Errorf("date range start %v is not today", cfg.DateRange.Start)
	}
}

func TestValidKind(t *testing.T) {
	for _, kind := range []WidgetKind{WidgetKindChart, WidgetKindTable, WidgetKindMetric, WidgetKindText} {
		if !ValidKind(kind) {
			t.Errorf("ValidKind(%q) = false", kind)
		}
	}
	if ValidKind("gauge") {
		t.Error("ValidKind accepted unknown kind")
	}
}
