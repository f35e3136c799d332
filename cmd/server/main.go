package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"dealgraph.app/insight/common/id"
	"dealgraph.app/insight/common/logger"
	"dealgraph.app/insight/common/otel"
	"dealgraph.app/insight/core/config"
	"dealgraph.app/insight/core/db"
	"dealgraph.app/insight/internal/backend"
	"dealgraph.app/insight/internal/graph"
	httprouter "dealgraph.app/insight/internal/http/router"
	"dealgraph.app/insight/internal/service"
	"dealgraph.app/insight/internal/store"
	"dealgraph.app/insight/internal/timeline"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "insight starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var graphClient *graph.Client
	if cfg.ArangoDB.Enabled() {
		graphClient, err = graph.New(ctx, graph.Config{
			URL:      cfg.ArangoDB.URL,
			Username: cfg.ArangoDB.Username,
			Password: cfg.ArangoDB.Password,
			Database: cfg.ArangoDB.Database,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to knowledge graph", "error", err)
			os.Exit(1)
		}
		defer graphClient.Close()
		slog.InfoContext(ctx, "knowledge graph connected", "database", cfg.ArangoDB.Database)
	}

	source, err := timelineSource(cfg, graphClient)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up timeline source", "error", err)
		os.Exit(1)
	}

	catalog, cleanup, err := catalogStore(ctx, cfg, graphClient)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up catalog store", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.InfoContext(ctx, "catalog store ready", "source", string(cfg.Catalog.Source))

	services := service.NewServices(service.ServicesConfig{
		Catalog: catalog,
		Source:  source,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	router.Use(gin.Recovery())
	httprouter.SetupRoutes(router, services)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "otel shutdown error", "error", err)
		}
	}
}

// timelineSource prefers the knowledge graph when configured, otherwise the
// backend HTTP API.
func timelineSource(cfg config.Config, graphClient *graph.Client) (timeline.Source, error) {
	if graphClient != nil {
		return graphClient, nil
	}
	return backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
}

func catalogStore(ctx context.Context, cfg config.Config, graphClient *graph.Client) (store.CatalogStore, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		return store.NewPostgresCatalog(database.Pool()), database.Close, nil
	case config.CatalogSourceGraph:
		// config.Load guarantees ArangoDB is configured in this case
		return graphClient, noop, nil
	default:
		return store.NewFileCatalog(cfg.Catalog.Path), noop, nil
	}
}
