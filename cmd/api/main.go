package main

import (
	"context"
	"fmt"
	common_api "go-travelops/internal/common/api"
	"go-travelops/internal/config"
	"go-travelops/internal/database"
	emails "go-travelops/internal/email"
	"go-travelops/internal/features/builder"
	"go-travelops/internal/features/datasource"
	"go-travelops/internal/features/pipeline"
	"go-travelops/internal/features/schedule"
	"go-travelops/internal/features/system"
	"go-travelops/internal/logger"
	"go-travelops/internal/middleware"
	"go-travelops/pkg/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func newSMTPConfig(cfg *config.Config) emails.SMTPConfig {
	return emails.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}
}

func newEmailService(repo *emails.Repository, smtp emails.SMTPConfig, cfg *config.Config, logger *zap.Logger) *emails.Service {
	return emails.NewService(repo, smtp, cfg.EmailFrom, logger)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,
			NewFiberServer,

			// Builder
			builder.NewDesignRepository,
			builder.NewBuilderService,
			builder.NewBuilderController,

			// Data sources
			datasource.NewDataSourceRepository,
			datasource.NewDataSourceService,
			datasource.NewDataSourceController,

			// Render pipeline
			pipeline.NewBasicPDFRenderer,
			pipeline.NewPipelineService,
			pipeline.NewPipelineController,

			// Scheduling + delivery
			schedule.NewScheduleRepository,
			schedule.NewScheduleService,
			schedule.NewScheduleController,
			emails.NewRepository,
			newSMTPConfig,
			newEmailService,

			// Event feed
			system.NewHub,
			system.NewWebSocketController,

			// Interface bindings
			func(s datasource.DataSourceService) pipeline.DataProvider { return s },
			func(h *system.Hub) pipeline.EventSink { return h },
			func(s *emails.Service) schedule.Deliverer { return s },

			// API routes
			AsRoute(builder.NewBuilderApi),
			AsRoute(datasource.NewDataSourceApi),
			AsRoute(pipeline.NewPipelineApi),
			AsRoute(schedule.NewScheduleApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduleService schedule.ScheduleService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduleService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduleService.StopScheduler()
					},
				})
			},
		),
	)

	app.Run()
}
