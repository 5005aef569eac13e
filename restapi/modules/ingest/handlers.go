// Package ingest implements the REST API handlers controlling the
// ingestion pipeline.
package ingest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	pipeline "github.com/cvehub/cvehub-backend/internal/ingest"
)

// PostStart handles POST requests to begin an ingestion run. The body may
// carry run options; omitted fields fall back to the service defaults. The
// run happens in the background and the request returns immediately.
func PostStart(svc *pipeline.Service, defaults pipeline.Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var opts pipeline.Options

		if len(c.Body()) > 0 {
			if err := c.BodyParser(&opts); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"message": "Invalid request body: " + err.Error(),
				})
			}
		}

		if err := svc.Start(defaults.Merge(opts)); err != nil {
			if errors.Is(err, pipeline.ErrAlreadyRunning) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"success": false,
					"message": "An ingestion run is already in progress",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"message": "Ingestion started",
		})
	}
}

// GetProgress handles GET requests for the current progress snapshot
func GetProgress(svc *pipeline.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Progress())
	}
}

// PostStop handles POST requests for cooperative cancellation. The response
// is sent only once the in-flight run has actually drained.
func PostStop(svc *pipeline.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Stop(); err != nil {
			if errors.Is(err, pipeline.ErrNotRunning) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"success": false,
					"message": "No ingestion run in progress",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Ingestion stopped",
		})
	}
}
