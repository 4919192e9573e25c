package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/socialvibe/feedcore/internal/composer"
	"github.com/socialvibe/feedcore/internal/composer/composerimpl"
	"github.com/socialvibe/feedcore/internal/engagement/engagementimpl"
	"github.com/socialvibe/feedcore/internal/interest/interestimpl"
	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/metrics"
	"github.com/socialvibe/feedcore/internal/pgx"
	"github.com/socialvibe/feedcore/internal/ratelimit"
	repositories "github.com/socialvibe/feedcore/internal/repositories/fx"
	"github.com/socialvibe/feedcore/internal/respcache"
	"github.com/socialvibe/feedcore/internal/trending"
	"github.com/socialvibe/feedcore/internal/trending/trendingimpl"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"

	_ "github.com/socialvibe/feedcore/internal/migrations"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		func() ratelimit.Limiter {
			// The similarity scan is the one expensive read path; keep
			// callers from hammering it.
			return ratelimit.NewInMemoryLimiter(1, 10*time.Second, 3)
		},
	),
	kv.Module,
	metrics.Module,
	respcache.Module,
	repositories.Module,
	engagementimpl.Module,
	interestimpl.Module,
	trendingimpl.Module,
	composerimpl.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, reg *prometheus.Registry,
	trendingClient trending.Client, _ composer.Client) {
	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg, reg)

			if err := trendingClient.ScheduleRefresh(appCtx); err != nil {
				log.Error("Failed to start trending refresh", "error", err)
				return err
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), mux); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
