package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/attendly/attendance-backend-go/internal/service/auth"
	serviceCompany "github.com/attendly/attendance-backend-go/internal/service/company"
	dashboardService "github.com/attendly/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/attendly/attendance-backend-go/internal/service/employee"
	"github.com/attendly/attendance-backend-go/internal/service/master"
	reportService "github.com/attendly/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	checkInRepo := postgresql.NewCheckInRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(db, userRepo, companyRepo, branchRepo, refreshTokenRepo, JWTService)
	companySvc := serviceCompany.NewCompanyService(companyRepo)
	masterSvc := master.NewMasterService(branchRepo, departmentRepo, userRepo)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, companyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		groupRepo,
		periodRepo,
		checkInRepo,
		summaryRepo,
		userRepo,
	)
	reportSvc := reportService.NewReportService(reportRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.RouterHandlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
