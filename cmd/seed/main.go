package main

import (
	"context"
	"log"
	"time"

	"go-travelops/internal/config"
	"go-travelops/internal/database"
	"go-travelops/internal/features/builder"
	"go-travelops/internal/features/datasource"
	"go-travelops/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed loads a demo design and the built-in data sources so a fresh
// install has something to render.
func Seed(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	designRepo builder.DesignRepository,
	dataSourceRepo datasource.DataSourceRepository,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := seedDataSources(ctx, dataSourceRepo); err != nil {
					log.Error("seeding data sources failed", zap.Error(err))
				}
				if err := seedDemoDesign(ctx, designRepo); err != nil {
					log.Error("seeding demo design failed", zap.Error(err))
				}

				log.Info("seeding complete")
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
	})
}

func seedDataSources(ctx context.Context, repo datasource.DataSourceRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range []string{"staff_performance", "sales_data", "financial_metrics", "operational_data", "customer_data"} {
		ds := &datasource.DataSource{
			Name:     name,
			Type:     datasource.DataSourceTypeFixture,
			IsActive: true,
		}
		if err := repo.Create(ctx, ds); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoDesign(ctx context.Context, repo builder.DesignRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	design := &builder.ReportDesign{
		Name: "Weekly sales overview",
		Widgets: []builder.Widget{
			builder.NewWidget(builder.WidgetKindMetric),
			builder.NewWidget(builder.WidgetKindChart),
			builder.NewWidget(builder.WidgetKindTable),
		},
		Config: builder.ReportConfiguration{
			Type:   builder.ReportTypeSales,
			Format: builder.FormatDashboard,
			DateRange: builder.DateRange{
				Start: time.Now().AddDate(0, 0, -7),
				End:   time.Now(),
			},
		},
	}
	return repo.Create(ctx, design)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,
			builder.NewDesignRepository,
			datasource.NewDataSourceRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Err(); err != nil {
		log.Fatal(err)
	}
	app.Run()
}
