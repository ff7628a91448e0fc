package http

import (
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the non-handler settings of the HTTP surface.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	UploadDir      string
	UploadBaseURL  string
}

// Handlers groups every handler mounted under /api.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Approval   ApprovalHandler
	Employee   EmployeeHandler
	Dashboard  DashboardHandler
	Events     EventsHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, authService auth.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if opts.UploadDir != "" {
		prefix := opts.UploadBaseURL
		if prefix == "" {
			prefix = "/uploads"
		}
		fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Handle(prefix+"/*", fs)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/signup", h.Auth.Signup)

		// Authenticated by a short-lived token in the query string.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(authService))

			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
			r.Post("/events/token", h.Events.GetSSEToken)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheckIn)).Post("/check-in", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheckIn)).Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.List)
				r.Get("/today", h.Attendance.Today)
				r.Get("/stats", h.Attendance.Stats)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Submit)
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.Get)
				r.Patch("/{id}", h.Leave.UpdateDates)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/projection", h.Payroll.Projection)
				r.Get("/projection/recent", h.Payroll.RecentProjections)
				r.Get("/", h.Payroll.List)
				r.Get("/{id}", h.Payroll.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", h.Payroll.Generate)
					r.Get("/summary", h.Payroll.Summary)
					r.Get("/export", h.Payroll.Export)
					r.Post("/{id}/advance", h.Payroll.Advance)
				})
			})

			r.Route("/approvals/accounts", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAccountApprove))
				r.Get("/", h.Approval.ListPendingAccounts)
				r.Post("/{id}/approve", h.Approval.ApproveAccount)
				r.Post("/{id}/reject", h.Approval.RejectAccount)
			})

			r.Route("/salary-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalaryRequestCreate)).Post("/", h.Approval.SubmitSalaryRequest)
				r.Get("/", h.Approval.ListSalaryRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryRequestApprove))
					r.Post("/{id}/approve", h.Approval.ApproveSalaryRequest)
					r.Post("/{id}/reject", h.Approval.RejectSalaryRequest)
				})
			})

			r.With(middleware.AdminOnly).Get("/dashboard", h.Dashboard.Get)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTeamView)).Get("/team", h.Employee.Team)
				r.Put("/me", h.Employee.UpdateProfile)
				r.Post("/me/avatar", h.Employee.UploadAvatar)
				r.Get("/{id}", h.Employee.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Put("/{id}/salary", h.Employee.UpdateSalary)
				})
			})
		})
	})
	return r
}
