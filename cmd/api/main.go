package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hplandscaping/booking-platform/cmd/mainconfig"
	"github.com/hplandscaping/booking-platform/internal/api/router"
	"github.com/hplandscaping/booking-platform/internal/apidoc"
	"github.com/hplandscaping/booking-platform/internal/archive"
	"github.com/hplandscaping/booking-platform/internal/app/bootstrap"
	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/bookings"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	appconfig "github.com/hplandscaping/booking-platform/internal/config"
	"github.com/hplandscaping/booking-platform/internal/http/handlers"
	httpmiddleware "github.com/hplandscaping/booking-platform/internal/http/middleware"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/internal/observability/metrics"
	"github.com/hplandscaping/booking-platform/internal/promo"
	"github.com/hplandscaping/booking-platform/internal/quotes"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer app.close()

	go app.limiter.Run(ctx, time.Minute)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

type app struct {
	handler http.Handler
	limiter *httpmiddleware.RateLimiter
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires the optional backends and every handler behind the router.
func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*app, error) {
	a := &app{}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cat := catalog.Default()
	provider := availability.NewProvider(loc)

	metricsHandler, bookingMetrics := setupMetrics(cfg.MetricsEnabled)

	var awsCfg *aws.Config
	if mainconfig.NeedsAWS(cfg) {
		loaded, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		awsCfg = &loaded
	}

	pool, err := bootstrap.BuildPostgresPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	var archiveDB archive.DB
	if pool != nil {
		archiveDB = pool
		a.closers = append(a.closers, pool.Close)
	}
	archiver, err := bootstrap.BuildArchiver(cfg, archiveDB, awsCfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	sender, err := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	notifier := notify.NewNotifier(sender, cfg.BusinessEmail, logger)

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
	}
	exitIntent := promo.NewExitIntent(bootstrap.BuildFlagStore(redisClient, cfg), cfg.ExitIntentDelay, bookingMetrics, logger.Component("promo"))

	doc, err := apidoc.Load(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	docHandler, err := apidoc.Handler(doc)
	if err != nil {
		a.close()
		return nil, err
	}
	logger.Debug("api document loaded", "routes", apidoc.Routes(doc))

	bookingSvc := bookings.NewService(cat, logger.Component("bookings"),
		bookings.WithArchiver(archiver),
		bookings.WithNotifier(notifier),
		bookings.WithMetrics(bookingMetrics),
	)
	quoteSvc := quotes.NewService(cat, quotes.Deps{
		Archive:  archiver,
		Notifier: notifier,
		Metrics:  bookingMetrics,
	}, logger.Component("quotes"))

	a.limiter = httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	a.handler = router.New(&router.Config{
		Logger:             logger,
		Site:               handlers.NewSiteHandler(cat, provider, logger),
		Bookings:           bookings.NewHandler(bookingSvc, bookingMetrics, logger),
		Quotes:             quotes.NewHandler(quoteSvc, logger),
		Promo:              promo.NewHandler(exitIntent, logger),
		OpenAPI:            docHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        a.limiter,
	})
	return a, nil
}

// setupMetrics registers the booking metrics on a dedicated registry. When
// disabled the metrics are still collected but /metrics is not served.
func setupMetrics(enabled bool) (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(reg)
	if !enabled {
		return nil, bookingMetrics
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), bookingMetrics
}
