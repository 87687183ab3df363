package builder

import "time"

// WidgetPatch is a partial update for a widget. Nil fields are left alone;
// config variants merge shallowly so untouched keys survive.
type WidgetPatch struct {
	Title    *string         `json:"title,omitempty"`
	Position *WidgetPosition `json:"position,omitempty"`
	Config   *ConfigPatch    `json:"config,omitempty"`
}

type ConfigPatch struct {
	Chart  *ChartConfigPatch  `json:"chart,omitempty"`
	Table  *TableConfigPatch  `json:"table,omitempty"`
	Metric *MetricConfigPatch `json:"metric,omitempty"`
	Text   *TextConfigPatch   `json:"text,omitempty"`
}

type ChartConfigPatch struct {
	ChartType  *ChartType `json:"chart_type,omitempty"`
	DataSource *string    `json:"data_source,omitempty"`
	XAxis      *string    `json:"x_axis,omitempty"`
	YAxis      *string    `json:"y_axis,omitempty"`
	GroupBy    *string    `json:"group_by,omitempty"`
}

type TableConfigPatch struct {
	DataSource *string        `json:"data_source,omitempty"`
	Columns    []string       `json:"columns,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type MetricConfigPatch struct {
	DataSource *string        `json:"data_source,omitempty"`
	Label      *string        `json:"label,omitempty"`
	Expression *string        `json:"expression,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type TextConfigPatch struct {
	Content *string        `json:"content,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// Session is the single editing session over a widget list and its
// configuration. It is owned by one caller at a time; operations are
// synchronous and never fail, matching the builder UI contract.
type Session struct {
	Widgets  []Widget
	Config   ReportConfiguration
	selected string
}

func NewSession() *Session {
	return &Session{Config: DefaultConfiguration()}
}

// SessionFromDesign wraps a loaded design so its widgets and configuration
// can be edited with session semantics.
func SessionFromDesign(d *ReportDesign) *Session {
	return &Session{Widgets: d.Widgets, Config: d.Config}
}

// AddWidget appends a widget of the given kind with defaults and returns it.
func (s *Session) AddWidget(kind WidgetKind) Widget {
	w := NewWidget(kind)
	s.Widgets = append(s.Widgets, w)
	return w
}

// UpdateWidget merges patch into the widget with the given id. An unknown
// id is a silent no-op.
func (s *Session) UpdateWidget(id string, patch WidgetPatch) {
	for i := range s.Widgets {
		if s.Widgets[i].ID == id {
			applyPatch(&s.Widgets[i], patch)
			return
		}
	}
}

// DeleteWidget removes the widget with the given id, clearing the selection
// if it pointed at the removed widget. Absent ids are a no-op, so a second
// delete of the same id changes nothing.
func (s *Session) DeleteWidget(id string) {
	for i := range s.Widgets {
		if s.Widgets[i].ID == id {
			s.Widgets = append(s.Widgets[:i], s.Widgets[i+1:]...)
			if s.selected == id {
				s.selected = ""
			}
			return
		}
	}
}

// Select marks a widget as the active one in the builder.
func (s *Session) Select(id string) {
	s.selected = id
}

// Selected returns the id of the active widget, or "" if none.
func (s *Session) Selected() string {
	return s.selected
}

// Widget returns the widget with the given id, or nil.
func (s *Session) Widget(id string) *Widget {
	for i := range s.Widgets {
		if s.Widgets[i].ID == id {
			return &s.Widgets[i]
		}
	}
	return nil
}

// Configuration setters replace the corresponding field wholesale. No
// cross-field validation happens here; the pipeline validates at
// generation time.

func (s *Session) SetType(t ReportType) { s.Config.Type = t }

func (s *Session) SetDateRange(start, end time.Time) {
	s.Config.DateRange = DateRange{Start: start, End: end}
}

func (s *Session) SetFilters(f map[string]any)    { s.Config.Filters = f }
func (s *Session) SetFormat(f OutputFormat)       { s.Config.Format = f }
func (s *Session) SetSchedule(spec *ScheduleSpec) { s.Config.Schedule = spec }

func applyPatch(w *Widget, patch WidgetPatch) {
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Position != nil {
		w.Position = clampPosition(*patch.Position)
	}
	if patch.Config != nil {
		applyConfigPatch(w.Kind, &w.Config, *patch.Config)
	}
}

// Positions are never negative and widgets never exceed the grid width.
func clampPosition(p WidgetPosition) WidgetPosition {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Width < 1 {
		p.Width = 1
	}
	if p.Width > GridColumns {
		p.Width = GridColumns
	}
	if p.Height < 1 {
		p.Height = 1
	}
	return p
}

// applyConfigPatch merges the patch variant matching the widget's kind.
// Variants for other kinds are ignored, so exactly one config variant stays
// set per widget.
func applyConfigPatch(kind WidgetKind, cfg *WidgetConfig, patch ConfigPatch) {
	if patch.Chart != nil && kind == WidgetKindChart {
		if cfg.Chart == nil {
			cfg.Chart = &ChartConfig{}
		}
		p := patch.Chart
		if p.ChartType != nil {
			cfg.Chart.ChartType = *p.ChartType
		}
		if p.DataSource != nil {
			cfg.Chart.DataSource = *p.DataSource
		}
		if p.XAxis != nil {
			cfg.Chart.XAxis = *p.XAxis
		}
		if p.YAxis != nil {
			cfg.Chart.YAxis = *p.YAxis
		}
		if p.GroupBy != nil {
			cfg.Chart.GroupBy = *p.GroupBy
		}
	}
	if patch.Table != nil && kind == WidgetKindTable {
		if cfg.Table == nil {
			cfg.Table = &TableConfig{}
		}
		p := patch.Table
		if p.DataSource != nil {
			cfg.Table.DataSource = *p.DataSource
		}
		if p.Columns != nil {
			cfg.Table.Columns = p.Columns
		}
		cfg.Table.Options = mergeOptions(cfg.Table.Options, p.Options)
	}
	if patch.Metric != nil && kind == WidgetKindMetric {
		if cfg.Metric == nil {
			cfg.Metric = &MetricConfig{}
		}
		p := patch.Metric
		if p.DataSource != nil {
			cfg.Metric.DataSource = *p.DataSource
		}
		if p.Label != nil {
			cfg.Metric.Label = *p.Label
		}
		if p.Expression != nil {
			cfg.Metric.Expression = *p.Expression
		}
		cfg.Metric.Options = mergeOptions(cfg.Metric.Options, p.Options)
	}
	if patch.Text != nil && kind == WidgetKindText {
		if cfg.Text == nil {
			cfg.Text = &TextConfig{}
		}
		p := patch.Text
		if p.Content != nil {
			cfg.Text.Content = *p.Content
		}
		cfg.Text.Options = mergeOptions(cfg.Text.Options, p.Options)
	}
}

// mergeOptions overlays patch keys onto the existing map; keys not named
// in the patch survive.
func mergeOptions(existing, patch map[string]any) map[string]any {
	if len(patch) == 0 {
		return existing
	}
	if existing == nil {
		existing = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		existing[k] = v
	}
	return existing
}
