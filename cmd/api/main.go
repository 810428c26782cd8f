package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	appHTTP "github.com/dayflow-hr/hrms-backend-go/internal/handler/http"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/migration"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dayflow-hr/hrms-backend-go/internal/service/attendance"
	auditService "github.com/dayflow-hr/hrms-backend-go/internal/service/audit"
	serviceAuth "github.com/dayflow-hr/hrms-backend-go/internal/service/auth"
	employeeService "github.com/dayflow-hr/hrms-backend-go/internal/service/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/hrms-backend-go/internal/service/payroll"
	performanceService "github.com/dayflow-hr/hrms-backend-go/internal/service/performance"
	reportService "github.com/dayflow-hr/hrms-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With(slog.String("app", cfg.App.Name))
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := migrateUp(dsn, logger); err != nil {
			logger.Error("Error applying migrations", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Pool.Close()

	loc := cfg.Work.Location
	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	goalRepo := postgresql.NewGoalRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	reportSource := postgresql.NewReportSource(db)
	auditRepo := postgresql.NewAuditRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	// The payroll service doubles as the salary-change listener and the attendance recomputer.
	payrollSvc := payrollService.NewPayrollService(tx, payslipRepo, employeeRepo, attendanceRepo, auditRepo, loc)
	authSvc := serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, departmentRepo, payrollSvc)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, payrollSvc, loc)
	leaveSvc := leave.NewLeaveService(tx, leaveTypeRepo, leaveRequestRepo, employeeRepo, auditRepo, loc)
	performanceSvc := performanceService.NewPerformanceService(tx, reviewRepo, goalRepo, employeeRepo, auditRepo, loc)
	reportSvc := reportService.NewReportService(tx, reportSource, reportRepo, loc)
	auditSvc := auditService.NewAuditService(auditRepo)
	fileSvc := file.NewFileService(fileStorage, cfg.Storage.MaxUploadSize)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := authSvc.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Error("Error creating admin account", "error", err)
			os.Exit(1)
		}
	}

	scheduler := cron.NewScheduler(logger)
	cron.NewReportJobs(reportSvc, logger).RegisterJobs(scheduler, cfg.Jobs.ReportRefreshInterval)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:        cfg.App.Name,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authSvc),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:       appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		Performance: appHTTP.NewPerformanceHandler(performanceSvc),
		Report:      appHTTP.NewReportHandler(reportSvc),
		Audit:       appHTTP.NewAuditHandler(auditSvc),
		File:        appHTTP.NewFileHandler(fileSvc, cfg.Storage.MaxUploadSize),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

func migrateUp(dsn string, logger *slog.Logger) error {
	m, err := migration.New(dsn, logger)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
