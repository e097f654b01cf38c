package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pabloab/zapatillas-api/internal/api"
	"github.com/pabloab/zapatillas-api/internal/api/handler"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
	"github.com/pabloab/zapatillas-api/internal/core/service"
	mongodb "github.com/pabloab/zapatillas-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pabloab/zapatillas-api/internal/infrastructure/db/redis"
	"github.com/pabloab/zapatillas-api/internal/infrastructure/queue"
	"github.com/pabloab/zapatillas-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, client, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	accounts := mongodb.NewAccountRepository(db)
	customers := mongodb.NewCustomerRepository(db)
	catalog := mongodb.NewZapatillaRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := customers.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := catalog.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{
		"mongodb": mongodb.Pinger(client),
	}

	// --- Audit trail ---
	var publisher ports.AccountEventPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
		checks["rabbitmq"] = p.Ping
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	auditLog := logger.Component("audit")
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(mongodb.NewAccountEventRepository(db), publisher, auditLog), auditLog)
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Auth ---
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}
	authOpts := []service.AuthOption{service.WithEventRecorder(dispatcher)}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		authOpts = append(authOpts, service.WithLoginThrottle(redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)))
		checks["redis"] = redisdb.Pinger(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR is empty, login throttling disabled")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(accounts, service.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger.Component("auth"), authOpts...),
		Accounts:   service.NewAccountService(accounts, dispatcher, logger.Component("accounts")),
		Customers:  service.NewCustomerService(customers, accounts, logger.Component("customers")),
		Zapatillas: service.NewZapatillaService(catalog, logger.Component("catalog")),
		Tokens:     tokens,
		Checks:     checks,
		Log:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
