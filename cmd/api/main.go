package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-service/internal/api/http"
	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/repository"
	"github.com/spec-kit/hr-service/internal/repository/memory"
	"github.com/spec-kit/hr-service/internal/service"
	"github.com/spec-kit/hr-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var store repository.Store
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresStore(pool)
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		store = memory.New()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var attempts repository.LoginAttemptRepository
	if redis.Enabled() {
		attempts = repository.NewLoginAttemptRepository(redis.Client)
	} else {
		attempts = memory.NewLoginAttempts(nil)
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("invalid password hasher", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), auth.SystemClock{})

	authService, err := service.NewAuthService(service.AuthDependencies{
		Tokens:      tokens,
		Hasher:      hasher,
		Attempts:    attempts,
		Events:      dispatcher,
		Metrics:     metrics,
		Logger:      logger,
		MaxFailures: cfg.Auth.LoginMaxFailures,
		Lockout:     cfg.Auth.LoginLockout(),
	})
	if err != nil {
		logger.Fatal("failed to build auth service", zap.Error(err))
	}
	recordDeps := service.RecordDependencies{Events: dispatcher, Metrics: metrics, Logger: logger}
	employeeService := service.NewEmployeeService(recordDeps)
	departmentService := service.NewDepartmentService(recordDeps)

	if cfg.Auth.BootstrapAdminUsername != "" {
		if err := bootstrapAdmin(ctx, store, authService, cfg.Auth, logger); err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:               handlers.NewAuthHandler(authService),
		Users:              handlers.NewUsersHandler(authService),
		Employees:          handlers.NewEmployeesHandler(employeeService),
		Departments:        handlers.NewDepartmentsHandler(departmentService),
		AuthMiddleware:     auth.NewAuthMiddleware(tokens, logger, metrics),
		Store:              store,
		Metrics:            metrics,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func bootstrapAdmin(ctx context.Context, store repository.Store, authService *service.AuthService, cfg config.AuthConfig, logger *zap.Logger) error {
	sess, err := store.Acquire(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()

	created, err := authService.EnsureAdmin(ctx, sess.Users(), cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("username", cfg.BootstrapAdminUsername))
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
