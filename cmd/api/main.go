package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/emsworks/employment-service/internal/api/http"
	"github.com/emsworks/employment-service/internal/api/http/handlers"
	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/observability"
	"github.com/emsworks/employment-service/internal/payslip"
	"github.com/emsworks/employment-service/internal/persistence"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
	"github.com/emsworks/employment-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	notifier := worker.NewNotificationWorker(events.NewInMemoryDispatcher(), cfg.Notification.QueueSize, logger)
	notificationService := service.NewNotificationService(
		events.NewStreamSink(redis.Client, cfg.Notification.Stream, cfg.Notification.StreamMaxLen),
		logger,
		cfg.Notification,
	)
	worker.StartNotificationWorker(ctx, notifier, notificationService)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	revocations := auth.NewRedisRevocationStore(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		EmployeeRepo:      employeeRepo,
		PasswordResetRepo: resetRepo,
		Revocations:       revocations,
		TokenManager:      tokens,
	})
	userService := service.NewUserService(userRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		DepartmentRepo: departmentRepo,
		TxRunner:       txRunner,
		BcryptCost:     cfg.Auth.BcryptCost,
		Location:       cfg.Company.Location,
	})
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, cfg.Company.Location)
	leaveService := service.NewLeaveService(leaveRepo, notifier, logger)
	payrollService := service.NewPayrollService(service.PayrollDependencies{
		PayrollRepo:    payrollRepo,
		EmployeeRepo:   employeeRepo,
		DepartmentRepo: departmentRepo,
		TxRunner:       txRunner,
		Renderer:       payslip.NewRenderer(cfg.Company),
		Dispatcher:     notifier,
		Logger:         logger,
	})
	recruitmentService := service.NewRecruitmentService(service.RecruitmentDependencies{
		JobRepo:        jobRepo,
		CandidateRepo:  candidateRepo,
		DepartmentRepo: departmentRepo,
		Dispatcher:     notifier,
		Logger:         logger,
	})
	taskService := service.NewTaskService(taskRepo, employeeRepo, notifier, logger)
	dashboardService := service.NewDashboardService(statsRepo, cfg.Company.Location)

	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo, revocations, logger)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Leaves:         handlers.NewLeavesHandler(leaveService),
		Payroll:        handlers.NewPayrollHandler(payrollService),
		Recruitment:    handlers.NewRecruitmentHandler(recruitmentService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
		Actors:         authService,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	notifier.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
