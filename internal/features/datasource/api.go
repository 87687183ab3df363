package datasource

import (
	"go-travelops/internal/common/api"
	"go-travelops/internal/config"
	"go-travelops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DataSourceApi struct {
	Controller *DataSourceController
	Config     *config.Config
}

func NewDataSourceApi(controller *DataSourceController, cfg *config.Config) api.Route {
	return &DataSourceApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (api *DataSourceApi) Setup(app *fiber.App) {
	group := app.Group("/api/data-sources", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.Create)
	group.Get("/", api.Controller.List)
	group.Get("/:id", api.Controller.Get)
	group.Put("/:id", api.Controller.Update)
	group.Delete("/:id", api.Controller.Delete)
	group.Post("/:id/test", api.Controller.Test)
}
