package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shelterops/shelter-console/internal/config"
	"github.com/shelterops/shelter-console/internal/nav"
	"github.com/shelterops/shelter-console/internal/orchestrator"
	"github.com/shelterops/shelter-console/internal/pkg/log"
	"github.com/shelterops/shelter-console/internal/session"
	"github.com/shelterops/shelter-console/internal/storage/file"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting shelter-console", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = log.Into(rootCtx, lg)

	tokensPath := cfg.Session.TokensPath
	if tokensPath == "" {
		p, err := file.DefaultPath()
		if err != nil {
			lg.Error("tokens_path_resolve_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		tokensPath = p
	}

	tokens, err := file.New(tokensPath)
	if err != nil {
		lg.Error("tokens_storage_init_failed",
			slog.String("path", tokensPath),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}
	lg.Info("tokens_storage_ready", slog.String("path", tokensPath))

	store := session.NewStore(tokens)
	client := orchestrator.New(cfg.Orchestrator.URL, cfg.Orchestrator.Timeout, store)
	router := nav.NewRouter()

	control := session.NewController(rootCtx, store, client, router, cfg.Session.RefreshInterval)
	defer control.Close()

	var ready int32 // 0 — bootstrap не завершён; 1 — готов

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		lg.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	control.Bootstrap(rootCtx)

	atomic.StoreInt32(&ready, 1)
	lg.Info("console_ready",
		slog.Bool("authenticated", store.Current().Authenticated()),
		slog.String("route", router.Current()),
	)

	select {
	case <-rootCtx.Done():
		lg.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http_shutdown_failed", slog.String("err", err.Error()))
	}
	shutdownCancel()

	control.Close()

	lg.Info("console_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return lg
}
