package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Departments  *handlers.DepartmentHandler
	Designations *handlers.DesignationHandler
	Employees    *handlers.EmployeeHandler
	Metrics      *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	department := api.Group("/department")
	department.Get("/", cfg.Departments.List)
	department.Post("/", cfg.Departments.Create)
	department.Put("/:id", cfg.Departments.Update)
	department.Delete("/:id", cfg.Departments.Delete)

	designation := api.Group("/designation")
	designation.Get("/", cfg.Designations.List)
	designation.Post("/", cfg.Designations.Create)
	designation.Get("/:id", cfg.Designations.Get)
	designation.Put("/:id", cfg.Designations.Update)
	designation.Delete("/:id", cfg.Designations.Delete)

	// search and login precede /:id
	employee := api.Group("/employee")
	employee.Get("/search", cfg.Employees.Search)
	employee.Post("/login", cfg.Employees.Login)
	employee.Get("/", cfg.Employees.List)
	employee.Post("/", cfg.Employees.Create)
	employee.Get("/:id", cfg.Employees.Get)
	employee.Put("/:id", cfg.Employees.Update)
	employee.Delete("/:id", cfg.Employees.Delete)
}
