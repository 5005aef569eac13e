// Package cves implements the REST API handlers for reading CVE and
// exploit records.
package cves

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cvehub/cvehub-backend/internal/store"
)

const defaultListLimit = 50

// ListCVEs handles GET requests for CVEs, optionally filtered by severity
func ListCVEs(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		severity := strings.ToUpper(c.Query("severity"))
		limit := c.QueryInt("limit", defaultListLimit)

		cves, err := st.ListCVEs(context.Background(), severity, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to query CVEs: " + err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"cves":    cves,
		})
	}
}

// GetCVE handles GET requests for one CVE by id
func GetCVE(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cveID := c.Params("id")

		cve, err := st.GetCVE(context.Background(), cveID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to query CVE: " + err.Error(),
			})
		}
		if cve == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "CVE not found: " + cveID,
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"cve":     cve,
		})
	}
}

// GetExploits handles GET requests for the exploit rows tied to one CVE
func GetExploits(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cveID := c.Params("id")

		exploits, err := st.ListExploitsForCVE(context.Background(), cveID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to query exploits: " + err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"exploits": exploits,
		})
	}
}
