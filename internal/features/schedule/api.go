package schedule

import (
	"go-travelops/internal/common/api"
	"go-travelops/internal/config"
	"go-travelops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ScheduleApi struct {
	ScheduleController *ScheduleController
	Config             *config.Config
}

func NewScheduleApi(scheduleController *ScheduleController, cfg *config.Config) api.Route {
	return &ScheduleApi{
		ScheduleController: scheduleController,
		Config:             cfg,
	}
}

func (api *ScheduleApi) Setup(app *fiber.App) {
	group := app.Group("/api/schedules", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.ScheduleController.Create)
	group.Get("/", api.ScheduleController.List)
	group.Get("/:id", api.ScheduleController.Get)
	group.Delete("/:id", api.ScheduleController.Delete)
	group.Post("/:id/run", api.ScheduleController.Run)
}
