package http

import (
	"log/slog"
	"os"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterHandlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Master     MasterHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h RouterHandlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendly"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/companies", func(r chi.Router) {

				// Platform admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/", h.Company.List)
					r.Post("/", h.Company.Create)
					r.Delete("/{companyID}", h.Company.Delete)
				})

				r.Get("/my", h.Company.GetMy)
				r.Get("/{companyID}", h.Company.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCompanyManage))
					r.Put("/{companyID}", h.Company.Update)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", h.Master.ListBranches)
				r.Get("/{branchID}", h.Master.GetBranch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionBranchManage))
					r.Post("/", h.Master.CreateBranch)
					r.Put("/{branchID}", h.Master.UpdateBranch)
					r.Delete("/{branchID}", h.Master.DeleteBranch)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Master.ListDepartments)
				r.Get("/{departmentID}", h.Master.GetDepartment)
				r.Get("/{departmentID}/members", h.Master.ListDepartmentMembers)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{departmentID}", h.Master.UpdateDepartment)
					r.Delete("/{departmentID}", h.Master.DeleteDepartment)
					r.Post("/{departmentID}/members", h.Master.AddDepartmentMember)
					r.Delete("/{departmentID}/members/{userID}", h.Master.RemoveDepartmentMember)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.List)
				})

				r.Get("/{userID}", h.Employee.Get)
				r.Put("/{userID}", h.Employee.Update)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Delete("/{userID}", h.Employee.Deactivate)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/history", h.Attendance.History)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
				})

				r.Route("/groups", func(r chi.Router) {
					r.Get("/", h.Attendance.ListGroups)
					r.Get("/my", h.Attendance.ListMyGroups)
					r.Get("/{groupID}", h.Attendance.GetGroup)
					r.Get("/{groupID}/periods", h.Attendance.ListPeriods)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
						r.Post("/", h.Attendance.CreateGroup)
						r.Put("/{groupID}", h.Attendance.UpdateGroup)
						r.Delete("/{groupID}", h.Attendance.DeleteGroup)
						r.Get("/{groupID}/members", h.Attendance.ListMembers)
						r.Post("/{groupID}/members", h.Attendance.AssignMember)
						r.Delete("/{groupID}/members/{userID}", h.Attendance.RemoveMember)
						r.Post("/{groupID}/periods", h.Attendance.CreatePeriod)
					})
				})

				r.Route("/periods", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Put("/{periodID}", h.Attendance.UpdatePeriod)
					r.Delete("/{periodID}", h.Attendance.DeletePeriod)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/attendance/export", h.Report.AttendanceCSV)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", h.Dashboard.EmployeeOverview)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Dashboard.Overview)
				})
			})
		})
	})
	return r
}
