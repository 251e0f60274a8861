package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/auth"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/eligibility"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/leave"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/report"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/platform/config"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/platform/db"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/platform/metrics"
	authhandler "github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/handlers/auth"
	eligibilityhandler "github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/handlers/eligibility"
	leavehandler "github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/handlers/leave"
	pilothandler "github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/handlers/pilot"
	reporthandler "github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/handlers/report"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New wires the application: pool, migrations, seed and routes. Callers own
// serving and shutdown; tests mount App.Router on httptest servers.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	anchor, err := time.Parse("2006-01-02", cfg.RosterAnchor)
	if err != nil {
		pool.Close()
		return nil, err
	}
	calendar := roster.NewCalendar(anchor)

	engine := eligibility.NewEngine(
		eligibility.NewStore(pool),
		eligibility.ReviewPolicy{DenyDeficitFraction: cfg.ReviewDenyFraction},
	)
	pilotStore := pilot.NewStore(pool)
	leaveService := leave.NewService(leave.NewStore(pool), pilotStore, engine, calendar)
	reportService := report.NewService(engine, cfg.ReportDir)
	authStore := auth.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			pilothandler.NewHandler(pilotStore).RegisterRoutes(r)
			leavehandler.NewHandler(leaveService).RegisterRoutes(r)
			eligibilityhandler.NewHandler(engine, eligibility.NewStore(pool), calendar).RegisterRoutes(r)
			reporthandler.NewHandler(reportService, calendar).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

// Run boots the app and serves until the listener fails.
func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("crew PMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
