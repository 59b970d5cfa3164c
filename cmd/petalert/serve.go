package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/petalert/petalert/client"
	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/config"
	"github.com/petalert/petalert/internal/infra/cache"
	"github.com/petalert/petalert/internal/infra/gateway"
	"github.com/petalert/petalert/internal/infra/metrics"
	"github.com/petalert/petalert/internal/infra/telemetry"
	"github.com/petalert/petalert/internal/interface/rest"
	"github.com/petalert/petalert/internal/service"
	"github.com/petalert/petalert/internal/usecase"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), conf)
	},
}

func listCache(conf config.Config) client.ListCache {
	if conf.Upstream.MemcachedAddr == "" {
		return cache.NewLocal(conf.Upstream.ListCacheTTL)
	}
	mc := cache.NewMemcached(conf.Upstream.MemcachedAddr)
	if err := mc.Ping(); err != nil {
		slog.Warn(
			"memcached unreachable, falling back to local cache",
			slog.String("addr", conf.Upstream.MemcachedAddr),
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
		return cache.NewLocal(conf.Upstream.ListCacheTTL)
	}
	return mc
}

func serve(ctx context.Context, conf config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()})))

	loc, err := conf.Location()
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.SetupTracing(
		ctx,
		conf.Telemetry.EnableTrace,
		conf.Telemetry.TraceEndpoint,
		conf.Telemetry.ServiceName,
		version,
	)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Error("failed to shutdown tracing", slog.String("error", err.Error()), slog.String("module", "main"))
		}
	}()

	m := metrics.New()
	cl := client.New(
		conf.Upstream.BaseURL,
		client.WithCache(listCache(conf), conf.Upstream.ListCacheTTL),
		client.WithTimeout(conf.Upstream.Timeout),
		client.WithUserAgent(conf.Upstream.UserAgent),
	)

	sessions := service.NewSessionService(func(token string) *usecase.Session {
		return usecase.NewSession(gateway.NewGateways(cl, m, token), collection.WithLocation(loc))
	}, conf.Session.IdleTTL)

	handler := rest.NewHandler(sessions, m, time.Now)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if conf.Telemetry.EnableTrace {
		e.Use(otelecho.Middleware(conf.Telemetry.ServiceName, otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/healthz"
		})))
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(conf.Server.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.AllowOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info(
			"server starting",
			slog.String("listen", conf.Server.Listen),
			slog.String("upstream", conf.Upstream.BaseURL),
			slog.String("timezone", loc.String()),
			slog.String("version", version),
			slog.String("module", "main"),
		)
		if err := e.Start(conf.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", slog.String("module", "main"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
