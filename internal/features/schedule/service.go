package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-travelops/internal/common/apperr"
	"go-travelops/internal/features/builder"
	"go-travelops/internal/features/pipeline"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Deliverer sends a generated artifact to a recipient list. The email
// feature implements it.
type Deliverer interface {
	Deliver(ctx context.Context, recipients []string, artifact *pipeline.ExportArtifact) error
}

type ScheduleService interface {
	// ScheduleDesign activates recurring delivery for a design. The design's
	// configuration must carry schedule settings and at least one recipient.
	ScheduleDesign(ctx context.Context, designID string) (*Confirmation, error)

	GetSchedule(ctx context.Context, id string) (*ReportSchedule, error)
	ListSchedules(ctx context.Context) ([]ReportSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	RunSchedule(ctx context.Context, id string) error

	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type ScheduleServiceImpl struct {
	Repo            ScheduleRepository
	BuilderService  builder.BuilderService
	PipelineService pipeline.PipelineService
	Deliverer       Deliverer
	Logger          *zap.Logger

	scheduler  *cron.Cron
	jobEntries map[string]cron.EntryID
	mu         sync.Mutex
}

func NewScheduleService(
	repo ScheduleRepository,
	builderService builder.BuilderService,
	pipelineService pipeline.PipelineService,
	deliverer Deliverer,
	logger *zap.Logger,
) ScheduleService {
	return &ScheduleServiceImpl{
		Repo:            repo,
		BuilderService:  builderService,
		PipelineService: pipelineService,
		Deliverer:       deliverer,
		Logger:          logger,
		jobEntries:      make(map[string]cron.EntryID),
	}
}

func (s *ScheduleServiceImpl) ScheduleDesign(ctx context.Context, designID string) (*Confirmation, error) {
	design, err := s.BuilderService.GetDesign(ctx, designID)
	if err != nil {
		return nil, err
	}

	settings := design.Config.Schedule
	if settings == nil || settings.Frequency == "" || len(settings.Recipients) == 0 {
		return nil, apperr.Validation("configure schedule settings and add recipients")
	}

	sched := &ReportSchedule{
		DesignID:   designID,
		Frequency:  settings.Frequency,
		Recipients: settings.Recipients,
		Format:     design.Config.Format,
		Active:     true,
	}
	expr, err := cron.ParseStandard(CronExpression(settings.Frequency))
	if err != nil {
		return nil, err
	}
	nextRun := expr.Next(time.Now())
	sched.NextRun = &nextRun

	if err := s.Repo.Create(ctx, sched); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		if err := s.registerJob(sched); err != nil {
			s.Logger.Error("failed to register schedule",
				zap.String("schedule_id", sched.ID.Hex()), zap.Error(err))
		}
	}

	s.Logger.Info("report schedule created",
		zap.String("schedule_id", sched.ID.Hex()),
		zap.String("design_id", designID),
		zap.String("frequency", string(settings.Frequency)),
		zap.Int("recipients", len(settings.Recipients)))

	return &Confirmation{
		Frequency:      settings.Frequency,
		RecipientCount: len(settings.Recipients),
	}, nil
}

func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (*ReportSchedule, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context) ([]ReportSchedule, error) {
	return s.Repo.List(ctx)
}

func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	s.unregisterJob(id)
	return s.Repo.Delete(ctx, id)
}

func (s *ScheduleServiceImpl) RunSchedule(ctx context.Context, id string) error {
	sched, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sched == nil {
		return fmt.Errorf("schedule not found")
	}
	return s.run(ctx, sched)
}

// run generates the scheduled design and hands the artifact to the
// deliverer. The deliverer is only reached when generation succeeds.
func (s *ScheduleServiceImpl) run(ctx context.Context, sched *ReportSchedule) error {
	design, err := s.BuilderService.GetDesign(ctx, sched.DesignID)
	if err != nil {
		return fmt.Errorf("failed to load design %s: %w", sched.DesignID, err)
	}

	cfg := design.Config
	if cfg.Format == builder.FormatDashboard {
		// A dashboard cannot be attached to an email; fall back to pdf.
		cfg.Format = builder.FormatPDF
	}

	result, err := s.PipelineService.Generate(ctx, design.Widgets, cfg)
	if err != nil {
		return err
	}

	if err := s.Deliverer.Deliver(ctx, sched.Recipients, result.Artifact); err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}

	expr, _ := cron.ParseStandard(CronExpression(sched.Frequency))
	nextRun := expr.Next(time.Now())
	if err := s.Repo.UpdateLastRun(ctx, sched.ID.Hex(), time.Now(), &nextRun); err != nil {
		s.Logger.Error("failed to update schedule run time",
			zap.String("schedule_id", sched.ID.Hex()), zap.Error(err))
	}

	s.Logger.Info("scheduled report delivered",
		zap.String("schedule_id", sched.ID.Hex()),
		zap.Int("recipients", len(sched.Recipients)))
	return nil
}

func (s *ScheduleServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.Logger.Info("initializing report scheduler")
	s.scheduler = cron.New()

	schedules, err := s.Repo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	for i := range schedules {
		if err := s.registerJob(&schedules[i]); err != nil {
			s.Logger.Error("failed to register schedule",
				zap.String("schedule_id", schedules[i].ID.Hex()), zap.Error(err))
		}
	}

	s.scheduler.Start()
	return nil
}

func (s *ScheduleServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *ScheduleServiceImpl) registerJob(sched *ReportSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return fmt.Errorf("scheduler not initialized")
	}

	id := sched.ID.Hex()
	entryID, err := s.scheduler.AddFunc(CronExpression(sched.Frequency), func() {
		if err := s.RunSchedule(context.Background(), id); err != nil {
			s.Logger.Error("scheduled report run failed",
				zap.String("schedule_id", id), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.jobEntries[id] = entryID
	return nil
}

func (s *ScheduleServiceImpl) unregisterJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.jobEntries[id]; ok && s.scheduler != nil {
		s.scheduler.Remove(entryID)
		delete(s.jobEntries, id)
	}
}
