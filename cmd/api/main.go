package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/clock"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/memory"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "employee-service",
		Short:         "Employee management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	// no subcommand means serve
	root.RunE = serveCmd.RunE
	root.AddCommand(serveCmd)
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context())
		},
	})
	return root
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func migrate(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required for migrate")
	}
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	return persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger)
}

func serve(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		departmentRepo  repository.DepartmentRepository
		designationRepo repository.DesignationRepository
		employeeRepo    repository.EmployeeRepository
	)
	if pg.Enabled() {
		pool := pg.PoolHandle()
		departmentRepo = repository.NewDepartmentRepository(pool)
		designationRepo = repository.NewDesignationRepository(pool)
		employeeRepo = repository.NewEmployeeRepository(pool)
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		departmentRepo = store.Departments()
		designationRepo = store.Designations()
		employeeRepo = store.Employees()
	}

	clk := clock.System()
	dispatcher := events.NewInMemoryDispatcher()
	changeFeed := service.NewChangeFeedService(dispatcher, redis, cfg.Redis.EventsChannel, cfg.Redis.EventsBuffer, logger)
	feedDone := worker.StartChangeFeedWorker(ctx, worker.NewChangeFeedWorker(changeFeed, cfg.Redis.PublishTimeout(), logger))

	departmentService := service.NewDepartmentService(departmentRepo, dispatcher, clk)
	designationService := service.NewDesignationService(designationRepo, dispatcher, clk)
	employeeService := service.NewEmployeeService(*cfg, service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		Dispatcher:   dispatcher,
		Clock:        clk,
	})

	metrics := observability.NewMetrics("ems")
	app := httptransport.NewServer(cfg.App.Name, logger, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Departments:  handlers.NewDepartmentHandler(departmentService),
		Designations: handlers.NewDesignationHandler(designationService),
		Employees:    handlers.NewEmployeeHandler(employeeService, cfg.Search.DefaultPageSize),
		Metrics:      metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	err = app.Shutdown()
	cancel()
	<-feedDone
	return err
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
