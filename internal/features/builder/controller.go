package builder

import (
	"github.com/gofiber/fiber/v2"
)

type BuilderController struct {
	BuilderService BuilderService
}

func NewBuilderController(builderService BuilderService) *BuilderController {
	return &BuilderController{BuilderService: builderService}
}

// CreateDesign godoc
func (c *BuilderController) CreateDesign(ctx *fiber.Ctx) error {
	var design ReportDesign
	if err := ctx.BodyParser(&design); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.BuilderService.CreateDesign(ctx.Context(), &design); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(design)
}

// ListDesigns godoc
func (c *BuilderController) ListDesigns(ctx *fiber.Ctx) error {
	designs, err := c.BuilderService.ListDesigns(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(designs)
}

// GetDesign godoc
func (c *BuilderController) GetDesign(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	design, err := c.BuilderService.GetDesign(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Design not found"})
	}
	return ctx.JSON(design)
}

// UpdateDesign godoc
func (c *BuilderController) UpdateDesign(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var design ReportDesign
	if err := ctx.BodyParser(&design); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.BuilderService.UpdateDesign(ctx.Context(), id, &design); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(design)
}

// DeleteDesign godoc
func (c *BuilderController) DeleteDesign(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.BuilderService.DeleteDesign(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// AddWidget godoc
func (c *BuilderController) AddWidget(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var body struct {
		Kind WidgetKind `json:"kind"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	widget, err := c.BuilderService.AddWidget(ctx.Context(), id, body.Kind)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(widget)
}

// PatchWidget godoc
func (c *BuilderController) PatchWidget(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	widgetID := ctx.Params("widgetId")

	var patch WidgetPatch
	if err := ctx.BodyParser(&patch); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	design, err := c.BuilderService.PatchWidget(ctx.Context(), id, widgetID, patch)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(design)
}

// RemoveWidget godoc
func (c *BuilderController) RemoveWidget(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	widgetID := ctx.Params("widgetId")

	if err := c.BuilderService.RemoveWidget(ctx.Context(), id, widgetID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SetConfiguration godoc
func (c *BuilderController) SetConfiguration(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var cfg ReportConfiguration
	if err := ctx.BodyParser(&cfg); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.BuilderService.SetConfiguration(ctx.Context(), id, cfg); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(cfg)
}
