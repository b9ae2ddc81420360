package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "jamii/internal/app"
	"jamii/internal/handlers/rest/bid_accept_post"
	"jamii/internal/handlers/rest/bid_post"
	"jamii/internal/handlers/rest/bids_get"
	"jamii/internal/handlers/rest/delivery_code_get"
	"jamii/internal/handlers/rest/delivery_post"
	"jamii/internal/handlers/rest/healthcheck_head"
	"jamii/internal/handlers/rest/order_get"
	"jamii/internal/handlers/rest/order_post"
	"jamii/internal/handlers/rest/order_status_post"
	"jamii/internal/handlers/rest/orders_get"
	"jamii/internal/handlers/rest/pickup_code_get"
	"jamii/internal/handlers/rest/pickup_post"
	"jamii/internal/handlers/rest/ping_get"
	"jamii/internal/pkg/config"
	"jamii/internal/pkg/dotenv"
	"jamii/internal/pkg/grpcclient"
	"jamii/internal/pkg/kafka"
	metrics_system "jamii/internal/pkg/metrics"
	"jamii/internal/pkg/middlewares/graceful_shutdown"
	"jamii/internal/pkg/middlewares/identity"
	"jamii/internal/pkg/middlewares/metrics"
	"jamii/internal/pkg/middlewares/rate_limiter"
	"jamii/internal/pkg/middlewares/timeout"
	"jamii/internal/pkg/postgres"
	"jamii/pkg/logger"
	"jamii/pkg/logger/zap_adapter"
	"jamii/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting jamii order service")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.Ledger)
	if err != nil {
		return fmt.Errorf("ledger gRPC client: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			runLog.Error("failed to close gRPC connection",
				logger.NewField("error", err),
			)
		}
	}()

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka, kafka.Brokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close Kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	// ongoingCtx используется для BaseContext и фоновых задач и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	businessApp, err := application.InitializeApplication(ongoingCtx, log, pool, pgxv5.DefaultCtxGetter, conn, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, businessApp),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil-канал при выключенном pprof, кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// фоновые задачи дожидаются отмены ongoingCtx, чтобы не оборвать relay посреди транзакции
	stopOngoingGracefully()
	businessApp.BackgroundWorkers.Wait()

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

const userBucketSweep = time.Minute

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Querier)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(identity.Middleware(log))
	if cfg.UserRateLimitQPS > 0 {
		orders.Use(rate_limiter.PerIdentity(log, cfg.UserRateLimitQPS, token_bucket.NewKeyed(cfg.UserRateLimitQPS, float64(cfg.UserRateLimitQPS), userBucketSweep)))
	}

	orders.Handle("", order_post.New(log, app.ServiceOrder, app.Validator)).Methods("POST")
	orders.Handle("", orders_get.New(log, app.ServiceOrder)).Methods("GET")
	orders.Handle("/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	orders.Handle("/{id}/status", order_status_post.New(log, app.ServiceOrder, app.Validator)).Methods("POST")

	orders.Handle("/{id}/bids", bid_post.New(log, app.ServiceBid, app.Validator)).Methods("POST")
	orders.Handle("/{id}/bids", bids_get.New(log, app.ServiceBid)).Methods("GET")
	orders.Handle("/{id}/bids/{bidId}/accept", bid_accept_post.New(log, app.ServiceBid)).Methods("POST")

	orders.Handle("/{id}/pickup-code", pickup_code_get.New(log, app.ServiceVerification)).Methods("GET")
	orders.Handle("/{id}/pickup", pickup_post.New(log, app.ServiceVerification, app.Validator)).Methods("POST")
	orders.Handle("/{id}/delivery-code", delivery_code_get.New(log, app.ServiceVerification)).Methods("GET")
	orders.Handle("/{id}/delivery", delivery_post.New(log, app.ServiceVerification, app.Validator)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, app *application.Application) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Querier)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
