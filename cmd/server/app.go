package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/auth"
	"github.com/kisankhidmat/khidmat/internal/config"
	"github.com/kisankhidmat/khidmat/internal/events/kafka"
	"github.com/kisankhidmat/khidmat/internal/images"
	"github.com/kisankhidmat/khidmat/internal/ledger"
	"github.com/kisankhidmat/khidmat/internal/messages"
	"github.com/kisankhidmat/khidmat/internal/metrics"
	"github.com/kisankhidmat/khidmat/internal/middleware"
	"github.com/kisankhidmat/khidmat/internal/service"
	"github.com/kisankhidmat/khidmat/internal/storage/sqlite"
	"github.com/kisankhidmat/khidmat/internal/weather"
	"github.com/kisankhidmat/khidmat/pkg/api/apiconnect"
)

// app holds the stores and services built from a Config.
type app struct {
	cfg       *config.Config
	ledgers   *ledger.Store
	records   *sqlite.SQLiteStore
	messages  *messages.Log
	images    *images.Intake
	bills     *service.BillGenerator
	publisher *kafka.Publisher
	metrics   *metrics.Metrics
}

// newApp opens every store. The caller must Close the app.
func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New()}

	var err error
	if a.ledgers, err = ledger.New(cfg.Path(cfg.Data.LedgerDir)); err != nil {
		return nil, err
	}
	if a.images, err = images.NewIntake(cfg.Path(cfg.Data.ImageDir)); err != nil {
		return nil, err
	}
	if a.records, err = sqlite.New(cfg.Path(cfg.Data.Database)); err != nil {
		return nil, err
	}
	slog.Info("Storage initialized", "database", cfg.Path(cfg.Data.Database))

	var opts []messages.Option
	if len(cfg.Kafka.Brokers) > 0 {
		a.publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		opts = append(opts, messages.WithPublisher(a.publisher))
		slog.Info("Publishing message events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	if a.messages, err = messages.New(cfg.Path(cfg.Data.MessageLog), opts...); err != nil {
		a.Close()
		return nil, err
	}

	a.bills = service.NewBillGenerator(a.ledgers, a.records, cfg.Shop.Name, cfg.Path(cfg.Data.BillDir))
	return a, nil
}

// Close releases the record index and flushes the event publisher.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.records != nil {
		errs = append(errs, a.records.Close())
	}
	return errors.Join(errs...)
}

func (a *app) weatherFetcher() weather.Fetcher {
	if a.cfg.Weather.APIKey == "" {
		slog.Warn("No weather API key configured; advisories will be unavailable")
		return nil
	}
	return weather.NewClient(weather.Config{
		BaseURL:  a.cfg.Weather.BaseURL,
		APIKey:   a.cfg.Weather.APIKey,
		Location: a.cfg.Weather.Location,
		Timeout:  a.cfg.Weather.Timeout,
	})
}

// handler mounts the Connect services, the bill download and the operational
// endpoints on one mux.
func (a *app) handler() (http.Handler, error) {
	authenticator, err := auth.NewPasswordAuthenticator(a.cfg.Admin.PasswordHash)
	if err != nil {
		return nil, err
	}
	jwtManager := auth.NewJWTManager(a.cfg.Admin.JWTSecret, a.cfg.Admin.SessionTTL)

	public := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(a.metrics),
	)
	// RequireAdmin is outermost; LoggingInterceptor reads the subject it sets.
	admin := connect.WithInterceptors(
		middleware.RequireAdmin(jwtManager),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(a.metrics),
	)

	mux := http.NewServeMux()

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, public))

	customerSvc := service.NewCustomerService(a.ledgers, a.bills, a.metrics)
	mux.Handle(apiconnect.NewCustomerServiceHandler(customerSvc, public))

	adminSvc := service.NewAdminService(service.AdminDeps{
		Ledgers:  a.ledgers,
		Messages: a.messages,
		Images:   a.images,
		Records:  a.records,
		Weather:  a.weatherFetcher(),
		Metrics:  a.metrics,
	})
	mux.Handle(apiconnect.NewAdminServiceHandler(adminSvc, admin))

	mux.Handle("GET "+service.BillDownloadPrefix+"{phone}", service.NewBillDownloadHandler(a.bills))
	mux.Handle("GET /metrics", a.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	return loggingMiddleware(corsMiddleware(mux)), nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
