package pipeline

import (
	"context"
	"time"

	"go-travelops/internal/features/builder"
)

// State is the pipeline's position in its generation cycle. One request at
// a time: Idle -> Generating -> Succeeded|Failed -> Idle.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Event is a state transition published to the builder UI feed.
type Event struct {
	State    State                `json:"state"`
	Type     builder.ReportType   `json:"type,omitempty"`
	Format   builder.OutputFormat `json:"format,omitempty"`
	Filename string               `json:"filename,omitempty"`
	Error    string               `json:"error,omitempty"`
	At       time.Time            `json:"at"`
}

// EventSink receives pipeline state transitions.
type EventSink interface {
	Publish(event Event)
}

// MetricValue is one label/value pair in the report's metric summary.
type MetricValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SeriesPoint is one point of a chart dataset.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartDataset is the time-series block of the document payload.
type ChartDataset struct {
	Title     string            `json:"title"`
	ChartType builder.ChartType `json:"chart_type"`
	Points    []SeriesPoint     `json:"points"`
}

// TableData is the tabular contract every exporter maps from: an ordered
// column list plus rows in the same column order.
type TableData struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ReportPayload is the unified render payload the exporters and the PDF
// renderer consume.
type ReportPayload struct {
	Title       string            `json:"title"`
	DateRange   builder.DateRange `json:"date_range"`
	Metrics     []MetricValue     `json:"metrics"`
	Chart       ChartDataset      `json:"chart"`
	Table       TableData         `json:"table"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ExportArtifact is the transient export result: produced, handed to a
// download or delivery, then discarded.
type ExportArtifact struct {
	Data        []byte               `json:"-"`
	Filename    string               `json:"filename"`
	ContentType string               `json:"content_type"`
	Format      builder.OutputFormat `json:"format"`
}

// GenerateResult carries either a preview (dashboard format) or an export
// artifact; never both.
type GenerateResult struct {
	Preview  []builder.Widget `json:"preview,omitempty"`
	Payload  *ReportPayload   `json:"payload,omitempty"`
	Artifact *ExportArtifact  `json:"artifact,omitempty"`
}

// DataProvider resolves a widget's data source against the active date
// range and filter map. The datasource feature implements it; tests use a
// deterministic stand-in.
type DataProvider interface {
	Fetch(ctx context.Context, source string, rng builder.DateRange, filters map[string]any) ([]map[string]any, error)
}
