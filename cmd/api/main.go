package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	server "travelguide/internal/adapters/http_server"
	"travelguide/internal/adapters/observability"
	redisad "travelguide/internal/adapters/redis"
	"travelguide/internal/adapters/uploads"
	"travelguide/internal/adapters/views"
	"travelguide/internal/app"
	"travelguide/internal/domain"
	"travelguide/internal/shared"
	"travelguide/internal/storage/memory"
	mysqlrepo "travelguide/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, k := range cfg.Ignored {
		log.Warn().Str("key", k).Msg("ignoring non-numeric setting")
	}
	if cfg.UsesDefaultToken() {
		log.Warn().Msg("ACCESS_TOKEN is the built-in default")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store
	repo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	// cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		ns := cacheNamespace(cfg.StoreBackend)
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, redisad.WithNamespace(ns))
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Str("namespace", ns).Msg("redis cache enabled")
	}

	sink := openSink(ctx, cfg)
	rd, err := views.New()
	if err != nil {
		log.Fatal().Err(err).Msg("load templates failed")
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:        app.NewCatalogService(repo, cache, cfg.CacheTTL),
		Uploads:        sink,
		Views:          rd,
		AccessToken:    cfg.AccessToken,
		PublicDir:      cfg.PublicDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	httpSrv := srv.HTTPServer(cfg.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreBackend).Msg("API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}
}

// cacheNamespace keys the cache to the lifetime of the data behind it. The
// memory store starts over on every boot, so its entries get a fresh
// namespace each time; MySQL data outlives the process and shares one.
func cacheNamespace(store string) string {
	if store == shared.StoreMemory {
		return "boot-" + uuid.NewString()
	}
	return ""
}

func openRepository(ctx context.Context, cfg shared.Config) (domain.Repository, func()) {
	switch cfg.StoreBackend {
	case shared.StoreMemory:
		s := memory.New()
		if cfg.SeedData {
			s.Seed(domain.DefaultSeed())
		}
		return s, func() {}

	case shared.StoreMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")

		if err := mysqlrepo.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		repo := mysqlrepo.New(db)
		if cfg.SeedData {
			if err := repo.Seed(ctx, domain.DefaultSeed()); err != nil {
				log.Fatal().Err(err).Msg("seed failed")
			}
		}
		return repo, func() { _ = db.Close() }
	}
	log.Fatal().Str("store", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
	return nil, nil
}

func openSink(ctx context.Context, cfg shared.Config) uploads.Sink {
	switch cfg.UploadBackend {
	case shared.UploadDisk:
		return uploads.NewDiskSink(cfg.UploadDir)
	case shared.UploadMinIO:
		s, err := uploads.NewMinIOSink(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("minio init failed")
		}
		return s
	}
	log.Fatal().Str("backend", cfg.UploadBackend).Msg("unknown UPLOAD_BACKEND")
	return nil
}
