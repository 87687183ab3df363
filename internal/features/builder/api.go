package builder

import (
	"go-travelops/internal/common/api"
	"go-travelops/internal/config"
	"go-travelops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BuilderApi struct {
	BuilderController *BuilderController
	Config            *config.Config
}

func NewBuilderApi(builderController *BuilderController, cfg *config.Config) api.Route {
	return &BuilderApi{
		BuilderController: builderController,
		Config:            cfg,
	}
}

func (api *BuilderApi) Setup(app *fiber.App) {
	group := app.Group("/api/designs", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.BuilderController.CreateDesign)
	group.Get("/", api.BuilderController.ListDesigns)
	group.Get("/:id", api.BuilderController.GetDesign)
	group.Put("/:id", api.BuilderController.UpdateDesign)
	group.Delete("/:id", api.BuilderController.DeleteDesign)

	group.Post("/:id/widgets", api.BuilderController.AddWidget)
	group.Patch("/:id/widgets/:widgetId", api.BuilderController.PatchWidget)
	group.Delete("/:id/widgets/:widgetId", api.BuilderController.RemoveWidget)
	group.Put("/:id/configuration", api.BuilderController.SetConfiguration)
}
