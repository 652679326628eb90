package api

import (
	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/reports"
	"github.com/gofiber/fiber/v2"
)

// DashboardStats returns the aggregated personnel counters for the
// dashboard landing page.
func DashboardStats(svc *dashboard.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, stats)
	}
}

// ExportRoster generates a roster report and returns a presigned download
// URL. Query parameters mirror the employee list filters plus "format".
func ExportRoster(svc *reports.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := employees.Filter{
			UnitID:         c.Query("unit_id"),
			Status:         c.Query("status"),
			Rank:           c.Query("rank"),
			EmploymentType: c.Query("employment_type"),
			Search:         c.Query("search"),
		}
		format := c.Query("format", reports.FormatCSV)

		exp, err := svc.ExportRoster(c.Context(), f, format)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, exp)
	}
}

// ExportUnitSummary generates the per-unit headcount report and returns a
// presigned download URL.
func ExportUnitSummary(svc *reports.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exp, err := svc.ExportUnitSummary(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, exp)
	}
}
