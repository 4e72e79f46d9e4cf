package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/md-rashed-zaman/clinicdesk/libs/config"
	"github.com/md-rashed-zaman/clinicdesk/libs/db"
	"github.com/md-rashed-zaman/clinicdesk/libs/httpx"
	"github.com/md-rashed-zaman/clinicdesk/libs/kafkax"
	otelx "github.com/md-rashed-zaman/clinicdesk/libs/otel"
	"github.com/md-rashed-zaman/clinicdesk/libs/runtime"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/appointments"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/booking"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/handlers"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/metrics"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/outbox"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/roster"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/sessions"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/storage"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/migrations"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := loadSettings()
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(cfg.Service, cfg.LogLevel)

	ctx, stop := runtime.SignalContext(context.Background())
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(cfg.Service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewDashboard(reg)

	var readyChecks []runtime.ReadyCheck

	// Submissions go to Postgres when configured, otherwise they are simulated.
	var submitter booking.Submitter = booking.SimulatedSubmitter{Delay: cfg.SubmitDelay}
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL, db.Options{})
		if err != nil {
			logger.Error("db connection failed", "err", err)
			panic(err)
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := migrations.Apply(ctx, pool); err != nil {
				logger.Error("db migration failed", "err", err)
				panic(err)
			}
		}

		outboxRepo := outbox.NewRepository()
		submitter = storage.NewBookingRepository(pool, outboxRepo)
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)})

		publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			PollEvery: 2 * time.Second,
			BatchSize: 50,
			Metrics:   m,
		})
		go publisher.Run(ctx)
		if cfg.KafkaBrokers != "" {
			readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(cfg.KafkaBrokers)})
		}
		logger.Info("booking submissions stored in postgres")
	} else {
		logger.Info("booking submissions simulated", "delay", cfg.SubmitDelay.String())
	}

	var (
		store       sessions.Store = sessions.NewMemoryStore(cfg.SessionTTL)
		rateLimiter httpx.Middleware
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		redisStore := sessions.NewRedisStore(rdb, cfg.SessionTTL, "clinicdesk:booking:session")
		store = redisStore
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: redisStore.Ping})
		rateLimiter = httpx.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "clinicdesk:rl").Middleware(logger, true)
	} else {
		rateLimiter = httpx.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute).Middleware()
	}

	svc := booking.NewService(store, submitter, booking.Options{
		Location:    cfg.Location,
		SuccessPath: cfg.SuccessPath,
		Metrics:     m,
		Logger:      logger,
	})

	mux := runtime.NewBaseMuxWithReady(readyChecks...)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	handlers.Register(mux,
		handlers.NewRosterHandler(roster.SamplePatients(), m, logger),
		handlers.NewAppointmentsHandler(appointments.SampleAppointments(), logger),
		handlers.NewBookingHandler(svc, logger),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHTTPHandler(mux, cfg, rateLimiter, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "timezone", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// newHTTPHandler wraps mux with the middleware stack. The request timeout
// leaves room for the booking submission delay.
func newHTTPHandler(mux *http.ServeMux, cfg settings, rateLimiter httpx.Middleware, logger *slog.Logger) http.Handler {
	timeout := cfg.RequestTimeout
	if floor := cfg.SubmitDelay + 5*time.Second; timeout < floor {
		timeout = floor
	}
	h := httpx.Chain(mux,
		httpx.WithRecover(logger),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id", "Location", "Retry-After"},
			MaxAge:         10 * time.Minute,
		}),
		rateLimiter,
		httpx.WithBodyLimit(cfg.BodyLimitBytes),
		httpx.WithTimeout(timeout),
	)
	return otelhttp.NewHandler(h, "dashboard")
}
