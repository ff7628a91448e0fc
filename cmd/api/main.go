package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	appHTTP "github.com/dayflow-hr/hrms-backend-go/internal/handler/http"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/recordstore"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/snapshot"
	approvalService "github.com/dayflow-hr/hrms-backend-go/internal/service/approval"
	attendanceService "github.com/dayflow-hr/hrms-backend-go/internal/service/attendance"
	dashboardService "github.com/dayflow-hr/hrms-backend-go/internal/service/dashboard"
	serviceAuth "github.com/dayflow-hr/hrms-backend-go/internal/service/auth"
	employeeService "github.com/dayflow-hr/hrms-backend-go/internal/service/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
	leaveService "github.com/dayflow-hr/hrms-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/hrms-backend-go/internal/service/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/seed"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logFormat := httplog.SchemaECS.Concise(cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dayflow-hrms"),
		slog.String("env", cfg.App.Env),
	)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	lateAfter, err := config.ParseClock(cfg.Attendance.LateAfter)
	if err != nil {
		return err
	}
	policy := attendance.Policy{LateAfter: lateAfter, Location: loc}

	backend, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	userRepo := recordstore.NewUserRepository(backend.Store)
	attendanceRepo := recordstore.NewAttendanceRepository(backend.Store)
	leaveRepo := recordstore.NewLeaveRequestRepository(backend.Store)
	salaryRequestRepo := recordstore.NewSalaryRequestRepository(backend.Store)
	payrollRepo := recordstore.NewPayrollRepository(backend.Store)

	if err := loadInitialData(ctx, cfg, backend, userRepo, attendanceRepo, policy); err != nil {
		return err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileSvc := file.NewFileService(fileStorage, cfg.Storage.BaseURL)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	var adjustments payroll.AdjustmentSource
	switch cfg.Payroll.Mode {
	case config.PayrollModeDemo:
		adjustments = payrollService.NewDemoAdjustments(cfg.Payroll.DemoSeed)
	default:
		adjustments = payrollService.NewPolicyAdjustments(
			attendanceRepo,
			cfg.Payroll.StandardDailyHours,
			cfg.Payroll.WorkingDaysPerMonth,
			cfg.Payroll.OvertimeMultiplier,
		)
	}

	authSvc := serviceAuth.NewAuthService(userRepo, backend.Sessions, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, leaveRepo, policy)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo, hub)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, userRepo, adjustments, hub)
	approvalSvc := approvalService.NewApprovalService(salaryRequestRepo, userRepo, hub)
	employeeSvc := employeeService.NewEmployeeService(userRepo, fileSvc)
	dashboardSvc := dashboardService.NewDashboardService(userRepo, attendanceRepo, leaveRepo, hub, policy)

	scheduler := cron.NewScheduler(loc)
	if err := cron.NewAttendanceJobs(attendanceSvc, loc).RegisterJobs(scheduler, cfg.Attendance.AbsentSweep); err != nil {
		return fmt.Errorf("failed to register cron jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSOrigins,
		UploadDir:      cfg.Storage.UploadDir,
		UploadBaseURL:  cfg.Storage.BaseURL,
	}, JWTService, authSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Approval:   appHTTP.NewApprovalHandler(approvalSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Events:     appHTTP.NewEventsHandler(hub, JWTService, authSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end when the signal context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "store", cfg.Store.Driver, "payroll_mode", cfg.Payroll.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadInitialData imports the configured snapshot, then seeds fixtures into
// a store that is still empty.
func loadInitialData(ctx context.Context, cfg *config.Config, backend *repository.Backend, users user.UserRepository, attendanceRepo attendance.AttendanceRepository, policy attendance.Policy) error {
	if path := cfg.Seed.SnapshotPath; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()

		report, err := snapshot.Import(ctx, backend.Store, f, snapshot.Options{
			HashPassword: func(password string) (string, error) {
				hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				return string(hash), err
			},
			Location: policy.Location,
		})
		if err != nil {
			return err
		}
		for c, err := range report {
			if err != nil {
				slog.Warn("snapshot collection not loaded", "collection", c, "error", err)
			}
		}
	}

	if path := cfg.Seed.FixturesPath; path != "" {
		fixtures, err := config.LoadFixtures(path)
		if err != nil {
			return err
		}
		if _, err := seed.NewSeeder(users, attendanceRepo, policy).Run(ctx, fixtures); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}
	return nil
}
