package builder

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type BuilderService interface {
	CreateDesign(ctx context.Context, design *ReportDesign) error
	GetDesign(ctx context.Context, id string) (*ReportDesign, error)
	ListDesigns(ctx context.Context) ([]ReportDesign, error)
	UpdateDesign(ctx context.Context, id string, design *ReportDesign) error
	DeleteDesign(ctx context.Context, id string) error

	AddWidget(ctx context.Context, designID string, kind WidgetKind) (*Widget, error)
	PatchWidget(ctx context.Context, designID, widgetID string, patch WidgetPatch) (*ReportDesign, error)
	RemoveWidget(ctx context.Context, designID, widgetID string) error
	SetConfiguration(ctx context.Context, designID string, cfg ReportConfiguration) error
}

type BuilderServiceImpl struct {
	DesignRepo DesignRepository
	Logger     *zap.Logger
}

func NewBuilderService(designRepo DesignRepository, logger *zap.Logger) BuilderService {
	return &BuilderServiceImpl{DesignRepo: designRepo, Logger: logger}
}

func (s *BuilderServiceImpl) CreateDesign(ctx context.Context, design *ReportDesign) error {
	if design.ID.IsZero() {
		design.ID = primitive.NewObjectID()
	}
	if design.Widgets == nil {
		design.Widgets = []Widget{}
	}

	// Fill in only the configuration fields the caller left empty; a posted
	// config that sets Type or Filters but no format keeps those values.
	defaults := DefaultConfiguration()
	if design.Config.Format == "" {
		design.Config.Format = defaults.Format
	}
	if design.Config.DateRange.Start.IsZero() && design.Config.DateRange.End.IsZero() {
		design.Config.DateRange = defaults.DateRange
	}
	if design.Config.Filters == nil {
		design.Config.Filters = defaults.Filters
	}
	return s.DesignRepo.Create(ctx, design)
}

func (s *BuilderServiceImpl) GetDesign(ctx context.Context, id string) (*ReportDesign, error) {
	return s.DesignRepo.Get(ctx, id)
}

func (s *BuilderServiceImpl) ListDesigns(ctx context.Context) ([]ReportDesign, error) {
	return s.DesignRepo.List(ctx)
}

func (s *BuilderServiceImpl) UpdateDesign(ctx context.Context, id string, design *ReportDesign) error {
	return s.DesignRepo.Update(ctx, id, design)
}

func (s *BuilderServiceImpl) DeleteDesign(ctx context.Context, id string) error {
	return s.DesignRepo.Delete(ctx, id)
}

// AddWidget appends a default widget of the given kind to the design and
// persists the new widget list.
func (s *BuilderServiceImpl) AddWidget(ctx context.Context, designID string, kind WidgetKind) (*Widget, error) {
	if !ValidKind(kind) {
		return nil, fmt.Errorf("unknown widget kind %q", kind)
	}

	design, err := s.DesignRepo.Get(ctx, designID)
	if err != nil {
		return nil, err
	}

	session := SessionFromDesign(design)
	w := session.AddWidget(kind)
	design.Widgets = session.Widgets

	if err := s.DesignRepo.Update(ctx, designID, design); err != nil {
		return nil, err
	}

	s.Logger.Info("widget added",
		zap.String("design_id", designID),
		zap.String("widget_id", w.ID),
		zap.String("kind", string(kind)))
	return &w, nil
}

// PatchWidget merges a partial update into one widget. An unknown widget id
// leaves the design untouched, mirroring the builder UI where stale updates
// against a removed widget must not error.
func (s *BuilderServiceImpl) PatchWidget(ctx context.Context, designID, widgetID string, patch WidgetPatch) (*ReportDesign, error) {
	design, err := s.DesignRepo.Get(ctx, designID)
	if err != nil {
		return nil, err
	}

	session := SessionFromDesign(design)
	session.UpdateWidget(widgetID, patch)
	design.Widgets = session.Widgets

	if err := s.DesignRepo.Update(ctx, designID, design); err != nil {
		return nil, err
	}
	return design, nil
}

func (s *BuilderServiceImpl) RemoveWidget(ctx context.Context, designID, widgetID string) error {
	design, err := s.DesignRepo.Get(ctx, designID)
	if err != nil {
		return err
	}

	session := SessionFromDesign(design)
	session.DeleteWidget(widgetID)
	design.Widgets = session.Widgets

	return s.DesignRepo.Update(ctx, designID, design)
}

// SetConfiguration replaces the design's report configuration wholesale.
// No cross-field validation happens here; the pipeline validates when the
// report is generated.
func (s *BuilderServiceImpl) SetConfiguration(ctx context.Context, designID string, cfg ReportConfiguration) error {
	design, err := s.DesignRepo.Get(ctx, designID)
	if err != nil {
		return err
	}

	design.Config = cfg
	return s.DesignRepo.Update(ctx, designID, design)
}
