package pipeline

import (
	"go-travelops/internal/common/api"
	"go-travelops/internal/config"
	"go-travelops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PipelineApi struct {
	PipelineController *PipelineController
	Config             *config.Config
}

func NewPipelineApi(pipelineController *PipelineController, cfg *config.Config) api.Route {
	return &PipelineApi{
		PipelineController: pipelineController,
		Config:             cfg,
	}
}

func (api *PipelineApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/generate", api.PipelineController.Generate)
	group.Post("/designs/:id/generate", api.PipelineController.GenerateDesign)
	group.Get("/state", api.PipelineController.State)
}
