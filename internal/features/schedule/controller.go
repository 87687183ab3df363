package schedule

import (
	"go-travelops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type ScheduleController struct {
	ScheduleService ScheduleService
}

func NewScheduleController(scheduleService ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// Create godoc
func (c *ScheduleController) Create(ctx *fiber.Ctx) error {
	var req struct {
		DesignID string `json:"design_id"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DesignID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "design_id is required"})
	}

	confirmation, err := c.ScheduleService.ScheduleDesign(ctx.Context(), req.DesignID)
	if err != nil {
		if apperr.IsValidation(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(confirmation)
}

// Get godoc
func (c *ScheduleController) Get(ctx *fiber.Ctx) error {
	sched, err := c.ScheduleService.GetSchedule(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if sched == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	return ctx.JSON(sched)
}

// List godoc
func (c *ScheduleController) List(ctx *fiber.Ctx) error {
	schedules, err := c.ScheduleService.ListSchedules(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(schedules)
}

// Delete godoc
func (c *ScheduleController) Delete(ctx *fiber.Ctx) error {
	if err := c.ScheduleService.DeleteSchedule(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Run godoc
func (c *ScheduleController) Run(ctx *fiber.Ctx) error {
	if err := c.ScheduleService.RunSchedule(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "delivered"})
}
