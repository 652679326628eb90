package api

import (
	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/identity"
	"github.com/asnhub/asndash/internal/reports"
	"github.com/asnhub/asndash/internal/units"
	"github.com/gofiber/fiber/v2"
)

// Services bundles everything the router needs.
type Services struct {
	Identity  *identity.Service
	Employees *employees.Service
	Units     *units.Service
	Dashboard *dashboard.Service
	Reports   *reports.Service
}

// SetupRoutes wires all REST endpoints under /api/v1.
func SetupRoutes(app *fiber.App, s *Services) {
	api := app.Group("/api/v1")

	adminOnly := RequireRole(identity.RoleAdmin, identity.RoleSuperadmin)

	// Public routes
	api.Post("/signup", Signup(s.Identity))

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", Login(s.Identity))
	auth.Post("/logout", Logout(s.Identity))
	auth.Get("/me", RequireAuth(s.Identity), Me(s.Identity))
	auth.Post("/change-password", RequireAuth(s.Identity), ChangePassword(s.Identity))
	auth.Post("/change-username", RequireAuth(s.Identity), ChangeUsername(s.Identity))

	// User management (admin)
	userGroup := api.Group("/users", RequireAuth(s.Identity), adminOnly)
	userGroup.Get("/", ListUsers(s.Identity))
	userGroup.Post("/", CreateUser(s.Identity))
	userGroup.Get("/:username", GetUser(s.Identity))
	userGroup.Put("/:id", UpdateUser(s.Identity))
	userGroup.Delete("/:username", DeleteUser(s.Identity))
	userGroup.Post("/cleanup", CleanupCredentials(s.Identity))

	// Factory reset is restricted to superadmin.
	api.Post("/reset", RequireAuth(s.Identity), RequireRole(identity.RoleSuperadmin), ResetIdentityData(s.Identity))

	// Employees
	emp := api.Group("/employees", RequireAuth(s.Identity))
	emp.Get("/", ListEmployees(s.Employees))
	emp.Get("/:id", GetEmployee(s.Employees))
	emp.Post("/", adminOnly, CreateEmployee(s.Employees))
	emp.Put("/:id", adminOnly, UpdateEmployee(s.Employees))
	emp.Delete("/:id", adminOnly, DeleteEmployee(s.Employees))

	// Units
	unitGroup := api.Group("/units", RequireAuth(s.Identity))
	unitGroup.Get("/", ListUnits(s.Units))
	unitGroup.Get("/:id", GetUnit(s.Units))
	unitGroup.Post("/", adminOnly, CreateUnit(s.Units))
	unitGroup.Put("/:id", adminOnly, UpdateUnit(s.Units))
	unitGroup.Delete("/:id", adminOnly, DeleteUnit(s.Units))

	// Dashboard & reports
	api.Get("/dashboard/stats", RequireAuth(s.Identity), DashboardStats(s.Dashboard))
	rep := api.Group("/reports", RequireAuth(s.Identity))
	rep.Get("/roster", ExportRoster(s.Reports))
	rep.Get("/unit-summary", ExportUnitSummary(s.Reports))
}
