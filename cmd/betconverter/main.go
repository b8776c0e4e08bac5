package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	_ "net/http/pprof"

	"github.com/sacsbrainz/betconverter/internal/app/server"
	"github.com/sacsbrainz/betconverter/internal/app/service"
	"github.com/sacsbrainz/betconverter/internal/cache"
	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/config"
	"github.com/sacsbrainz/betconverter/internal/engine"
	"github.com/sacsbrainz/betconverter/internal/logger"
	"github.com/sacsbrainz/betconverter/internal/metrics"
)

var buildVersion = "N/A"
var buildDate = "N/A"
var buildCommit = "N/A"

func main() {
	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if err := log.Init(options.LogLevel, zap.String("service", "betconverter")); err != nil {
		panic(err)
	}
	defer log.Sync()

	zapLogger := log.Log
	zapLogger.Info("build",
		zap.String("version", buildVersion),
		zap.String("date", buildDate),
		zap.String("commit", buildCommit),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	bookies := catalog.Default()
	if options.CatalogFile != "" {
		bookies, err = catalog.LoadFile(options.CatalogFile)
		if err != nil {
			zapLogger.Fatal("load catalog", zap.String("path", options.CatalogFile), zap.Error(err))
		}
		zapLogger.Info("using catalog file", zap.String("path", options.CatalogFile), zap.Int("bookmakers", bookies.Len()))
	}

	m := metrics.New()
	svcOpts := []service.Option{service.WithMetrics(m)}

	switch {
	case options.CacheTTL == 0:
		zapLogger.Info("result cache disabled")
	case options.RedisAddr != "":
		rdb, err := cache.ConnectRedis(ctx, options.RedisAddr)
		if err != nil {
			zapLogger.Fatal("connect redis", zap.String("addr", options.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()

		rc := cache.NewRedis(rdb, options.CacheTTL)
		svcOpts = append(svcOpts, service.WithCache(rc), service.WithHealth(rc.Ping))
		zapLogger.Info("using redis result cache", zap.String("addr", options.RedisAddr))
	default:
		mc := cache.NewMemory(options.CacheTTL)
		defer mc.Close()

		svcOpts = append(svcOpts, service.WithCache(mc))
		zapLogger.Info("using in memory result cache")
	}

	var eng service.Engine
	if options.EngineURL != "" {
		eng = engine.New(options.EngineURL, options.EngineTimeout)
		zapLogger.Info("using conversion engine", zap.String("url", options.EngineURL))
	} else {
		zapLogger.Warn("no conversion engine configured, POST / answers 503")
	}

	svc := service.NewConversion(bookies, eng, zapLogger.Named("service"), svcOpts...)

	if options.MetricsAddress != "" {
		metricsSrv := m.StartServer(options.MetricsAddress, svc.PingContext, zapLogger)
		defer shutdown(metricsSrv, zapLogger)
	}

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	r := server.Init(svc, zapLogger, server.Options{
		CORSOrigin: options.CORSOrigin,
		RateLimit:  options.RateLimit,
		RateWindow: time.Minute,
	})

	srv := &http.Server{
		Addr:              options.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if options.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:  autocert.DirCache("cache-dir"),
				Prompt: autocert.AcceptTOS,
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()
			zapLogger.Info("Server is running with TLS", zap.String("addr", srv.Addr))
			err = srv.ListenAndServeTLS("", "")
		} else {
			zapLogger.Info("Server is running", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")
	shutdown(srv, zapLogger)
}

func shutdown(srv *http.Server, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.String("addr", srv.Addr), zap.Error(err))
	}
}
