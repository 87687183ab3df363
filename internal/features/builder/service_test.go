package builder

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type memoryDesignRepo struct {
	designs map[string]*ReportDesign
}

func newMemoryDesignRepo() *memoryDesignRepo {
	return &memoryDesignRepo{designs: make(map[string]*ReportDesign)}
}

func (r *memoryDesignRepo) Create(ctx context.Context, design *ReportDesign) error {
	r.designs[design.ID.Hex()] = design
	return nil
}

func (r *memoryDesignRepo) Get(ctx context.Context, id string) (*ReportDesign, error) {
	design, ok := r.designs[id]
	if !ok {
		return nil, errors.New("design not found")
	}
	return design, nil
}

func (r *memoryDesignRepo) List(ctx context.Context) ([]ReportDesign, error) {
	var out []ReportDesign
	for _, d := range r.designs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memoryDesignRepo) Update(ctx context.Context, id string, design *ReportDesign) error {
	r.designs[id] = design
	return nil
}

func (r *memoryDesignRepo) Delete(ctx context.Context, id string) error {
	delete(r.designs, id)
	return nil
}

func TestCreateDesignKeepsPartialConfig(t *testing.T) {
	svc := NewBuilderService(newMemoryDesignRepo(), zap.NewNop())

	design := &ReportDesign{
		Name: "Branch financials",
		Config: ReportConfiguration{
			Type:    ReportTypeFinancial,
			Filters: map[string]any{"branch": "Jeddah"},
		},
	}
	if err := svc.CreateDesign(context.Background(), design); err != nil {
		t.Fatal(err)
	}

	if design.Config.Type != ReportTypeFinancial {
		t.Errorf("type = %q, partial config was discarded", design.Config.Type)
	}
	if design.Config.Filters["branch"] != "Jeddah" {
		t.Errorf("filters = %v, partial config was discarded", design.Config.Filters)
	}
	if design.Config.Format != FormatDashboard {
		t.Errorf("format = %q, want defaulted to %q", design.Config.Format, FormatDashboard)
	}
	if design.Config.DateRange.Start.IsZero() {
		t.Error("date range was not defaulted")
	}
}

func TestCreateDesignEmptyConfigGetsDefaults(t *testing.T) {
	svc := NewBuilderService(newMemoryDesignRepo(), zap.NewNop())

	design := &ReportDesign{Name: "Blank"}
	if err := svc.CreateDesign(context.Background(), design); err != nil {
		t.Fatal(err)
	}

	want := DefaultConfiguration()
	if design.Config.Format != want.Format {
		t.Errorf("format = %q, want %q", design.Config.Format, want.Format)
	}
	if design.Config.Filters == nil {
		t.Error("filters map not initialized")
	}
	if design.Widgets == nil {
		t.Error("widget list not initialized")
	}
}

func TestAddWidgetRejectsUnknownKind(t *testing.T) {
	repo := newMemoryDesignRepo()
	svc := NewBuilderService(repo, zap.NewNop())

	design := &ReportDesign{Name: "d"}
	if err := svc.CreateDesign(context.Background(), design); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddWidget(context.Background(), design.ID.Hex(), "gauge"); err == nil {
		t.Fatal("unknown widget kind accepted")
	}
	stored, _ := repo.Get(context.Background(), design.ID.Hex())
	if len(stored.Widgets) != 0 {
		t.Errorf("widgets = %d, want none", len(stored.Widgets))
	}
}
