package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dtroode/escolas-server/internal/api/http/handler"
	"github.com/dtroode/escolas-server/internal/api/http/router"
	"github.com/dtroode/escolas-server/internal/config"
	"github.com/dtroode/escolas-server/internal/logger"
	"github.com/dtroode/escolas-server/internal/model"
	"github.com/dtroode/escolas-server/internal/repository/postgres"
	"github.com/dtroode/escolas-server/internal/repository/supabase"
	"github.com/dtroode/escolas-server/internal/server"
	storage "github.com/dtroode/escolas-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	users   model.UserStore
	escolas model.EscolaStore
	close   func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	defer logger.Sync() //nolint:errcheck

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	st, err := newStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize store", "backend", cfg.Store, "error", err)
	}
	defer st.close()

	controllers := []handler.Controller{
		handler.NewUsers(st.users, logger),
		handler.NewEscolas(st.escolas, logger),
	}

	if cfg.UploadsEnabled() {
		storageClient, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		controllers = append(controllers, handler.NewUploads(storageClient, logger))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.New(
		controllers,
		handler.NewSystem(cfg.Env, buildVersion, cfg.SupabaseConfigured()),
		logger,
		router.Options{
			Development: cfg.IsDevelopment(),
			CORSOrigins: cfg.CORSOrigins(),
			BodyLimit:   cfg.HTTP.BodyLimit,
			Registry:    registry,
		},
	)
	engine, err := r.Register()
	if err != nil {
		logger.Fatal("failed to register routes", "error", err)
	}

	httpServer := server.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "environment", cfg.Env, "store", cfg.Store)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx := context.Background()
	if cfg.HTTP.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.HTTP.ShutdownTimeout)
		defer cancel()
	}

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Migrate)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:   postgres.NewUserRepository(db),
			escolas: postgres.NewEscolaRepository(db),
			close:   func() { _ = db.Close() },
		}, nil
	default:
		client, err := supabase.NewClient(cfg.Supabase.URL, cfg.StoreKey())
		if err != nil {
			return nil, err
		}
		return &stores{
			users:   supabase.NewUserRepository(client),
			escolas: supabase.NewEscolaRepository(client),
			close:   func() {},
		}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
