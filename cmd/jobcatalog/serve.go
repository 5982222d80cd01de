package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/config"
	"jobcatalog-engine/internal/events"
	"jobcatalog-engine/internal/export"
	"jobcatalog-engine/internal/httpapi"
	"jobcatalog-engine/internal/scheduler"
	"jobcatalog-engine/internal/secrets"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	file := fs.String("f", "", "JSON file to load on startup (overrides catalog.file)")
	port := fs.Int("port", 0, "listen port (overrides app.port)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBCATALOG_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(dataDir, "jobcatalog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	if *file != "" {
		cfg.Catalog.File = *file
	}
	if *port != 0 {
		cfg.App.Port = *port
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	cfgVal.Store(cfg)

	logger := newLogger(os.Stderr, cfg.SlogLevel())
	slog.SetDefault(logger)
	for _, w := range vr.Warnings {
		logger.Warn("config.warning", "detail", w)
	}

	hub := events.NewHub()
	cat := catalog.NewController(logger, catalog.WithOnChange(events.CatalogPublisher(hub, logger)))

	mux := httpapi.NewMux(httpapi.Deps{
		Catalog:     cat,
		Hub:         hub,
		Export:      export.NewService(cfg.Export.Sheet, logger),
		Logger:      logger,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	middlewares := []httpapi.Middleware{
		httpapi.RequestID,
		httpapi.Recover(logger),
		httpapi.AccessLog(logger),
		httpapi.Cors,
	}
	if cfg.HTTP.RatePerSec > 0 {
		middlewares = append(middlewares, httpapi.RateLimit(httpapi.NewClientLimiter(cfg.HTTP.RatePerSec, cfg.HTTP.Burst)))
	}
	if cfg.HTTP.AuthUser != "" {
		pw, err := secrets.GetWebPassword(secrets.WebKeyringAccount(cfg))
		switch {
		case errors.Is(err, secrets.ErrNoPassword):
			logger.Warn("auth.disabled", "reason", "no password in keychain; run `jobcatalog password`")
		case err != nil:
			return err
		default:
			middlewares = append(middlewares, httpapi.BasicAuth(cfg.HTTP.AuthUser, pw))
		}
	}

	addr := net.JoinHostPort(cfg.App.Host, strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.Chain(mux, middlewares...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := shutdownToken(dataDir)
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", shutdownHandler(token, srv))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("engine.listening", "url", "http://"+addr, "data_dir", dataDir)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		// /shutdown closes the server without a signal; stop the other goroutines too.
		stop()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if cfg.Catalog.File != "" {
		g.Go(func() error {
			return loadCatalogFile(ctx, cat, cfg, logger)
		})
	}

	return g.Wait()
}

// loadCatalogFile loads catalog.file once, or keeps reloading it when
// watch_seconds is set. A bad file is logged and leaves the catalog as is.
func loadCatalogFile(ctx context.Context, cat *catalog.Controller, cfg config.Config, logger *slog.Logger) error {
	reload := func(b []byte) error {
		if err := cat.Load(b); err != nil {
			return fmt.Errorf("%s: %w", cfg.Catalog.File, err)
		}
		logger.Info("watch.reload", "file", cfg.Catalog.File, "jobs", cat.Len())
		return nil
	}

	if cfg.Catalog.WatchSeconds <= 0 {
		b, err := os.ReadFile(cfg.Catalog.File)
		if err == nil {
			err = reload(b)
		}
		if err != nil {
			logger.Warn("catalog.file.failed", "error", err)
		}
		return nil
	}

	w := &scheduler.FileWatcher{Path: cfg.Catalog.File}
	scheduler.WatchFile(ctx, w, time.Duration(cfg.Catalog.WatchSeconds)*time.Second, logger, reload)
	return nil
}
