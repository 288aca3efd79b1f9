package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/http/handlers"
	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	Employees      *handlers.EmployeesHandler
	Attendance     *handlers.AttendanceHandler
	Leaves         *handlers.LeavesHandler
	Payroll        *handlers.PayrollHandler
	Recruitment    *handlers.RecruitmentHandler
	Tasks          *handlers.TasksHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Actors         handlers.ActorResolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	careers := app.Group("/careers")
	careers.Get("/jobs", cfg.Recruitment.ListOpenJobs)
	careers.Get("/jobs/:id", cfg.Recruitment.GetOpenJob)
	careers.Post("/jobs/:id/apply", cfg.Recruitment.Apply)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), handlers.LoadActor(cfg.Actors))
	admin := auth.RequireRole(domain.RoleAdmin)
	manager := auth.RequireManager()

	protected.Get("/metrics", admin, cfg.Health.Metrics)

	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)
	protected.Post("/auth/register", admin, cfg.Auth.Register)

	users := protected.Group("/users", admin)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)

	departments := protected.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Post("/", manager, cfg.Departments.Create)
	departments.Put("/:id", manager, cfg.Departments.Update)

	employees := protected.Group("/employees")
	employees.Get("/me", cfg.Employees.Me)
	employees.Get("/", manager, cfg.Employees.List)
	employees.Post("/", manager, cfg.Employees.Create)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", manager, cfg.Employees.Update)
	employees.Delete("/:id", admin, cfg.Employees.Delete)

	attendance := protected.Group("/attendance")
	attendance.Post("/check-in", cfg.Attendance.CheckIn)
	attendance.Post("/check-out", cfg.Attendance.CheckOut)
	attendance.Get("/today", cfg.Attendance.Today)
	attendance.Get("/", cfg.Attendance.List)
	attendance.Post("/", manager, cfg.Attendance.Create)
	attendance.Put("/:id", manager, cfg.Attendance.Update)
	attendance.Delete("/:id", manager, cfg.Attendance.Delete)

	leaves := protected.Group("/leaves")
	leaves.Post("/", cfg.Leaves.Apply)
	leaves.Get("/", cfg.Leaves.List)
	leaves.Get("/:id", cfg.Leaves.Get)
	leaves.Patch("/:id/review", manager, cfg.Leaves.Review)
	leaves.Delete("/:id", cfg.Leaves.Delete)

	payroll := protected.Group("/payroll")
	payroll.Get("/", cfg.Payroll.List)
	payroll.Post("/", manager, cfg.Payroll.Create)
	payroll.Post("/generate", manager, cfg.Payroll.Generate)
	payroll.Get("/:id", cfg.Payroll.Get)
	payroll.Get("/:id/payslip", cfg.Payroll.Payslip)
	payroll.Put("/:id", manager, cfg.Payroll.Update)
	payroll.Patch("/:id/status", manager, cfg.Payroll.UpdateStatus)
	payroll.Delete("/:id", manager, cfg.Payroll.Delete)

	recruitment := protected.Group("/recruitment")
	recruitment.Get("/jobs", cfg.Recruitment.ListJobs)
	recruitment.Get("/jobs/:id", cfg.Recruitment.GetJob)
	recruitment.Post("/jobs", manager, cfg.Recruitment.CreateJob)
	recruitment.Put("/jobs/:id", manager, cfg.Recruitment.UpdateJob)
	recruitment.Delete("/jobs/:id", manager, cfg.Recruitment.DeleteJob)
	recruitment.Get("/jobs/:id/candidates", manager, cfg.Recruitment.ListCandidates)
	recruitment.Post("/jobs/:id/candidates", manager, cfg.Recruitment.AddCandidate)
	recruitment.Get("/candidates/:id", manager, cfg.Recruitment.GetCandidate)
	recruitment.Patch("/candidates/:id/status", manager, cfg.Recruitment.UpdateCandidateStatus)
	recruitment.Delete("/candidates/:id", manager, cfg.Recruitment.DeleteCandidate)

	tasks := protected.Group("/tasks")
	tasks.Get("/", cfg.Tasks.List)
	tasks.Post("/", manager, cfg.Tasks.Create)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", manager, cfg.Tasks.Update)
	tasks.Delete("/:id", manager, cfg.Tasks.Delete)
	tasks.Patch("/:id/status", cfg.Tasks.UpdateStatus)

	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)
}
