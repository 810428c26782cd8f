package http

import (
	"log/slog"
	"os"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the settings the router reads from config.App
type RouterConfig struct {
	AppName        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth        AuthHandler
	Employee    EmployeeHandler
	Attendance  AttendanceHandler
	Leave       LeaveHandler
	Payroll     PayrollHandler
	Performance PerformanceHandler
	Report      ReportHandler
	Audit       AuditHandler
	File        FileHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Post("/users", h.Auth.CreateUser)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Employee.ListDepartments)
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.CreateDepartment)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Post("/", h.Attendance.Create)
					r.Put("/{id}", h.Attendance.Update)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Leave.ListTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
					r.Post("/", h.Leave.CreateType)
					r.Put("/{id}", h.Leave.UpdateType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Leave.Get)
					r.Put("/", h.Leave.Update)
					r.Delete("/", h.Leave.Delete)
					r.Post("/submit", h.Leave.Submit)
					r.Post("/cancel", h.Leave.Cancel)
					r.Post("/reset", h.Leave.Reset)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
						r.Post("/approve", h.Leave.Approve)
						r.Post("/refuse", h.Leave.Refuse)
					})
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", h.Payroll.List)
				r.Get("/{id}", h.Payroll.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", h.Payroll.Create)
					r.Put("/{id}", h.Payroll.Update)
					r.Post("/{id}/recompute", h.Payroll.Recompute)
					r.Post("/{id}/mark-pending", h.Payroll.MarkPending)
					r.Post("/{id}/mark-paid", h.Payroll.MarkPaid)
					r.Post("/{id}/cancel", h.Payroll.Cancel)
				})
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", h.Performance.List)
				r.With(middleware.RequireManager).Post("/", h.Performance.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Performance.Get)
					r.Put("/", h.Performance.Update)
					r.Post("/acknowledge", h.Performance.Acknowledge)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Delete("/", h.Performance.Delete)
						r.Post("/submit", h.Performance.Submit)
						r.Post("/review", h.Performance.Review)
						r.Post("/cancel", h.Performance.Cancel)
						r.Post("/reset", h.Performance.Reset)
						r.Post("/goals", h.Performance.AddGoal)
					})
				})
			})

			r.Route("/goals/{id}", func(r chi.Router) {
				r.Put("/", h.Performance.UpdateGoal)
				r.Post("/complete", h.Performance.CompleteGoal)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/leave", h.Report.Leave)
				r.Get("/payroll", h.Report.Payroll)
				r.Get("/performance", h.Report.Performance)
				r.Get("/dashboard", h.Report.Dashboard)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/", h.Report.List)
					r.Post("/", h.Report.Create)
					r.Get("/{id}", h.Report.Get)
					r.Put("/{id}", h.Report.Update)
					r.Post("/{id}/refresh", h.Report.Refresh)
				})
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/leave-attachments", h.File.UploadLeaveAttachment)
				r.Get("/*", h.File.Download)
				r.Delete("/*", h.File.Delete)
			})

			r.With(middleware.RequirePermission(user.PermissionAuditView)).
				Get("/audit/{record_type}/{record_id}", h.Audit.ListByRecord)
		})
	})
	return r
}
