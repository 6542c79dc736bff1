package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/presencedash/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API is everything the dashboard asks of the presence backend.
type API interface {
	views.Fetcher
	views.AvatarFetcher
}

// Dashboard serves the statistics pages and their chart fragments.
type Dashboard struct {
	api           API
	renderer      *views.ChartRenderer
	avatarBaseURL string
	logger        *slog.Logger
	metrics       *views.Metrics
	registry      *prometheus.Registry
	pages         *pageRegistry
}

type Options struct {
	AvatarBaseURL string
	MaxPages      int
	Theme         string
	Logger        *slog.Logger
}

func NewDashboard(api API, o Options) (*Dashboard, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	metrics := views.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return nil, err
	}

	return &Dashboard{
		api:           api,
		renderer:      views.NewChartRenderer(o.Theme),
		avatarBaseURL: o.AvatarBaseURL,
		logger:        logger,
		metrics:       metrics,
		registry:      registry,
		pages:         newPageRegistry(o.MaxPages),
	}, nil
}

func (d *Dashboard) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(httplog.RequestLogger(d.logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Get("/", d.indexHandler)
	r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	r.Route("/statistics/{view}", func(r chi.Router) {
		r.Get("/", d.statisticsHandler)
		r.Group(func(r chi.Router) {
			r.Use(noStore)
			r.Get("/chart", d.chartHandler)
			r.Get("/avatar", d.avatarHandler)
		})
	})
	return r
}

// Serve runs the dashboard on addr until ctx is canceled.
func (d *Dashboard) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           d.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("server starting", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		d.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
