package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/repository"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Auth               *handlers.AuthHandler
	Users              *handlers.UsersHandler
	Employees          *handlers.EmployeesHandler
	Departments        *handlers.DepartmentsHandler
	AuthMiddleware     *auth.AuthMiddleware
	Store              repository.Store
	Metrics            *observability.Metrics
	LoginRatePerMinute int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	db := sessionMiddleware(cfg.Store)
	authn := cfg.AuthMiddleware.Handle
	require := func(action auth.Action) fiber.Handler {
		return auth.RequireAction(action, cfg.Metrics)
	}

	app.Post("/token", loginRateLimit(cfg.LoginRatePerMinute), db, cfg.Auth.Token)

	users := app.Group("/users", authn, db)
	users.Get("/me", cfg.Users.Me)
	users.Post("", require(auth.ActionCreate), cfg.Users.Create)

	employees := app.Group("/employees", authn, db)
	employees.Get("", require(auth.ActionList), cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Post("", require(auth.ActionCreate), cfg.Employees.Create)
	employees.Put("/:id", require(auth.ActionUpdate), cfg.Employees.Update)
	employees.Delete("/:id", require(auth.ActionDelete), cfg.Employees.Delete)

	departments := app.Group("/departments", authn, db)
	departments.Get("", require(auth.ActionList), cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Get("/:id/employees", require(auth.ActionList), cfg.Departments.Employees)
	departments.Post("", require(auth.ActionCreate), cfg.Departments.Create)
	departments.Put("/:id", require(auth.ActionUpdate), cfg.Departments.Update)
	departments.Delete("/:id", require(auth.ActionDelete), cfg.Departments.Delete)
}
