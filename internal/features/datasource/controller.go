package datasource

import (
	"github.com/gofiber/fiber/v2"
)

type DataSourceController struct {
	Service DataSourceService
}

func NewDataSourceController(service DataSourceService) *DataSourceController {
	return &DataSourceController{Service: service}
}

// Create godoc
func (c *DataSourceController) Create(ctx *fiber.Ctx) error {
	var ds DataSource
	if err := ctx.BodyParser(&ds); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.CreateDataSource(ctx.Context(), &ds); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(ds)
}

// List godoc
func (c *DataSourceController) List(ctx *fiber.Ctx) error {
	sources, err := c.Service.ListDataSources(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(sources)
}

// Get godoc
func (c *DataSourceController) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	ds, err := c.Service.GetDataSource(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data source not found"})
	}
	return ctx.JSON(ds)
}

// Update godoc
func (c *DataSourceController) Update(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var updates map[string]interface{}
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.UpdateDataSource(ctx.Context(), id, updates); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"updated": true})
}

// Delete godoc
func (c *DataSourceController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.Service.DeleteDataSource(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Test godoc
func (c *DataSourceController) Test(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.Service.TestDataSource(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}
