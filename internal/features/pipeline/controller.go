package pipeline

import (
	"fmt"

	"go-travelops/internal/common/apperr"
	"go-travelops/internal/features/builder"

	"github.com/gofiber/fiber/v2"
)

type PipelineController struct {
	PipelineService PipelineService
	BuilderService  builder.BuilderService
}

func NewPipelineController(pipelineService PipelineService, builderService builder.BuilderService) *PipelineController {
	return &PipelineController{
		PipelineService: pipelineService,
		BuilderService:  builderService,
	}
}

// GenerateRequest carries an ad-hoc widget list and configuration, for
// generating without saving a design first.
type GenerateRequest struct {
	Widgets       []builder.Widget            `json:"widgets"`
	Configuration builder.ReportConfiguration `json:"configuration"`
}

// Generate godoc
func (c *PipelineController) Generate(ctx *fiber.Ctx) error {
	var req GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return c.respond(ctx, req.Widgets, req.Configuration)
}

// GenerateDesign godoc
func (c *PipelineController) GenerateDesign(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	design, err := c.BuilderService.GetDesign(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Design not found"})
	}
	return c.respond(ctx, design.Widgets, design.Config)
}

// State godoc
func (c *PipelineController) State(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"state": c.PipelineService.State()})
}

func (c *PipelineController) respond(ctx *fiber.Ctx, widgets []builder.Widget, cfg builder.ReportConfiguration) error {
	result, err := c.PipelineService.Generate(ctx.Context(), widgets, cfg)
	if err != nil {
		if apperr.IsValidation(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if result.Artifact == nil {
		return ctx.JSON(result)
	}

	ctx.Set("Content-Type", result.Artifact.ContentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Artifact.Filename))
	return ctx.Send(result.Artifact.Data)
}
