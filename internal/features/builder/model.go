package builder

import (
	"strconv"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WidgetKind string

const (
	WidgetKindChart  WidgetKind = "chart"
	WidgetKindTable  WidgetKind = "table"
	WidgetKindMetric WidgetKind = "metric"
	WidgetKindText   WidgetKind = "text"
)

type ChartType string

const (
	ChartTypeBar  ChartType = "bar"
	ChartTypeLine ChartType = "line"
	ChartTypePie  ChartType = "pie"
	ChartTypeArea ChartType = "area"
)

type ReportType string

const (
	ReportTypeStaffPerformance ReportType = "staff_performance"
	ReportTypeFinancial        ReportType = "financial"
	ReportTypeOperational      ReportType = "operational"
	ReportTypeSales            ReportType = "sales"
	ReportTypeCustom           ReportType = "custom"
)

type OutputFormat string

const (
	FormatPDF       OutputFormat = "pdf"
	FormatExcel     OutputFormat = "excel"
	FormatCSV       OutputFormat = "csv"
	FormatDashboard OutputFormat = "dashboard"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// GridColumns is the width of the builder layout grid.
const GridColumns = 12

type WidgetPosition struct {
	X      int `json:"x" bson:"x"`
	Y      int `json:"y" bson:"y"`
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// ChartConfig configures a chart widget
type ChartConfig struct {
	ChartType  ChartType `json:"chart_type" bson:"chart_type"`
	DataSource string    `json:"data_source" bson:"data_source"`
	XAxis      string    `json:"x_axis" bson:"x_axis"`
	YAxis      string    `json:"y_axis" bson:"y_axis"`
	GroupBy    string    `json:"group_by,omitempty" bson:"group_by,omitempty"`
}

// TableConfig configures a table widget
type TableConfig struct {
	DataSource string         `json:"data_source" bson:"data_source"`
	Columns    []string       `json:"columns,omitempty" bson:"columns,omitempty"`
	Options    map[string]any `json:"options,omitempty" bson:"options,omitempty"`
}

// MetricConfig configures a metric widget. Expression, when set, is a
// tengo expression evaluated against the resolved source value.
type MetricConfig struct {
	DataSource string         `json:"data_source" bson:"data_source"`
	Label      string         `json:"label" bson:"label"`
	Expression string         `json:"expression,omitempty" bson:"expression,omitempty"`
	Options    map[string]any `json:"options,omitempty" bson:"options,omitempty"`
}

// TextConfig configures a free-text widget
type TextConfig struct {
	Content string         `json:"content" bson:"content"`
	Options map[string]any `json:"options,omitempty" bson:"options,omitempty"`
}

// WidgetConfig is a tagged union: exactly one variant is set, matching the
// widget kind.
type WidgetConfig struct {
	Chart  *ChartConfig  `json:"chart,omitempty" bson:"chart,omitempty"`
	Table  *TableConfig  `json:"table,omitempty" bson:"table,omitempty"`
	Metric *MetricConfig `json:"metric,omitempty" bson:"metric,omitempty"`
	Text   *TextConfig   `json:"text,omitempty" bson:"text,omitempty"`
}

type Widget struct {
	ID       string         `json:"id" bson:"id"`
	Kind     WidgetKind     `json:"kind" bson:"kind"`
	Title    string         `json:"title" bson:"title"`
	Config   WidgetConfig   `json:"config" bson:"config"`
	Position WidgetPosition `json:"position" bson:"position"`
}

type DateRange struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

type ScheduleSpec struct {
	Frequency  Frequency `json:"frequency" bson:"frequency"`
	Recipients []string  `json:"recipients" bson:"recipients"`
}

// ReportConfiguration holds the global parameters that parameterize every
// widget's data query.
type ReportConfiguration struct {
	Type      ReportType     `json:"type" bson:"type"`
	DateRange DateRange      `json:"date_range" bson:"date_range"`
	Filters   map[string]any `json:"filters,omitempty" bson:"filters,omitempty"`
	Format    OutputFormat   `json:"format" bson:"format"`
	Schedule  *ScheduleSpec  `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

// ReportDesign is a persisted builder document: the widget list plus the
// active configuration.
type ReportDesign struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Widgets   []Widget            `json:"widgets" bson:"widgets"`
	Config    ReportConfiguration `json:"config" bson:"config"`
	CreatedBy string              `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// DefaultDataSource is what chart/table/metric widgets point at until the
// user picks a source.
const DefaultDataSource = "staff_performance"

var widgetIDClock int64

// NewWidgetID returns "widget_" plus a millisecond timestamp. The clock is
// bumped past its previous value on collision so ids stay unique even when
// widgets are added within the same millisecond.
func NewWidgetID() string {
	now := time.Now().UnixMilli()
	for {
		last := atomic.LoadInt64(&widgetIDClock)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&widgetIDClock, last, now) {
			return "widget_" + strconv.FormatInt(now, 10)
		}
	}
}

// NewWidget builds a widget of the given kind with its defaults: a fresh
// id, title "New <kind>", a 6x4 cell at the grid origin, and a
// kind-appropriate config.
func NewWidget(kind WidgetKind) Widget {
	w := Widget{
		ID:       NewWidgetID(),
		Kind:     kind,
		Title:    "New " + string(kind),
		Position: WidgetPosition{X: 0, Y: 0, Width: 6, Height: 4},
	}

	switch kind {
	case WidgetKindChart:
		w.Config.Chart = &ChartConfig{
			ChartType:  ChartTypeBar,
			DataSource: DefaultDataSource,
			XAxis:      "date",
			YAxis:      "value",
		}
	case WidgetKindTable:
		w.Config.Table = &TableConfig{DataSource: DefaultDataSource}
	case WidgetKindMetric:
		w.Config.Metric = &MetricConfig{DataSource: DefaultDataSource, Label: "Total"}
	case WidgetKindText:
		w.Config.Text = &TextConfig{}
	}

	return w
}

// DefaultConfiguration returns the configuration a fresh builder session
// starts with: today's date range, dashboard preview output, no type chosen.
func DefaultConfiguration() ReportConfiguration {
	today := time.Now().Truncate(24 * time.Hour)
	return ReportConfiguration{
		DateRange: DateRange{Start: today, End: today},
		Filters:   map[string]any{},
		Format:    FormatDashboard,
	}
}

// ValidKind reports whether k names a known widget kind.
func ValidKind(k WidgetKind) bool {
	switch k {
	case WidgetKindChart, WidgetKindTable, WidgetKindMetric, WidgetKindText:
		return true
	}
	return false
}
