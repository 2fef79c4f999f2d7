// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Vidtube HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire storage, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/vidtube/internal/api"
	"github.com/taibuivan/vidtube/internal/content/comment"
	"github.com/taibuivan/vidtube/internal/content/playlist"
	"github.com/taibuivan/vidtube/internal/content/post"
	"github.com/taibuivan/vidtube/internal/content/video"
	"github.com/taibuivan/vidtube/internal/dashboard"
	"github.com/taibuivan/vidtube/internal/engagement/like"
	"github.com/taibuivan/vidtube/internal/platform/config"
	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	"github.com/taibuivan/vidtube/internal/platform/migration"
	"github.com/taibuivan/vidtube/internal/platform/objectstore"
	pgstore "github.com/taibuivan/vidtube/internal/platform/postgres"
	redisstore "github.com/taibuivan/vidtube/internal/platform/redis"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/social/subscription"
	"github.com/taibuivan/vidtube/internal/users/account"
	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/internal/view"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
	)

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the server; stops background workers on shutdown.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Object storage ─────────────────────────────────────────────────
	var uploader objectstore.Uploader = objectstore.Disabled{}
	var checkStorage api.Check
	if cfg.StorageEnabled() {
		bucket, err := objectstore.NewS3Uploader(startupCtx, objectstore.Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		must(log, err, "configure object storage")
		uploader, checkStorage = bucket, bucket.Ping
	} else {
		log.Warn("object_storage_disabled")
	}

	// ── 7. View composition ───────────────────────────────────────────────
	profiles := view.NewCachedProfileSource(view.NewPostgresProfileSource(pool), rdb, cfg.ProfileCacheTTL, log)
	composer := view.NewComposer(profiles)

	// ── 8. Identity ───────────────────────────────────────────────────────
	accessSigner, err := sec.NewSigner(cfg.AccessTokenSecret, constants.AuthIssuer, sec.TokenTypeAccess)
	must(log, err, "initialize access token signer")
	refreshSigner, err := sec.NewSigner(cfg.RefreshTokenSecret, constants.AuthIssuer, sec.TokenTypeRefresh)
	must(log, err, "initialize refresh token signer")

	users := auth.NewUserRepository(pool)
	tokens := auth.NewTokenService(users, auth.TokenConfig{
		Access:     accessSigner,
		Refresh:    refreshSigner,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, log)
	authService := auth.NewService(users, tokens, uploader, log)
	guard := middleware.NewGuard(authService)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	// The registry is filled once the content services exist; the ledger only
	// reads it while serving requests.
	registry := like.Registry{}
	likeService := like.NewService(like.NewPostgresRepository(pool), registry, composer, log)

	history := account.NewPostgresHistoryRepository(pool)
	videoService := video.NewService(video.NewPostgresRepository(pool), composer, uploader, likeService, history, log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), videoService, composer, log)
	postService := post.NewService(post.NewPostgresRepository(pool), composer, log)
	playlistService := playlist.NewService(playlist.NewPostgresRepository(pool), videoService, composer, log)
	subscriptionService := subscription.NewService(subscription.NewPostgresRepository(pool), composer, log)

	registry[like.KindVideo] = like.Resolver(videoService.FindVisible, video.IDOf)
	registry[like.KindComment] = like.Resolver(like.Public(commentService.FindByIDs), comment.IDOf)
	registry[like.KindTweet] = like.Resolver(like.Public(postService.Finder(post.KindTweet)), post.IDOf)
	registry[like.KindPost] = like.Resolver(like.Public(postService.Finder(post.KindPost)), post.IDOf)

	accountService := account.NewService(account.Dependencies{
		Accounts:  account.NewPostgresRepository(pool),
		History:   history,
		Videos:    videoService,
		Passwords: authService,
		Uploader:  uploader,
		Profiles:  profiles,
		Composer:  composer,
		Logger:    log,
	})
	dashboardService := dashboard.NewService(videoService, subscriptionService, likeService, log)

	// ── 10. Health handlers ───────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		CheckStorage:  checkStorage,
	}, log)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Auth:          auth.NewHandler(authService),
		Account:       account.NewHandler(accountService),
		Videos:        video.NewHandler(videoService),
		Comments:      comment.NewHandler(commentService),
		Tweets:        post.NewHandler(postService, post.KindTweet),
		Posts:         post.NewHandler(postService, post.KindPost),
		Likes:         like.NewHandler(likeService),
		Subscriptions: subscription.NewHandler(subscriptionService),
		Playlists:     playlist.NewHandler(playlistService),
		Dashboard:     dashboard.NewHandler(dashboardService),
	}

	server := api.NewServer(serverCtx, cfg, log, guard, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	serverCancel()

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and exits when err is non-nil.
// Only used during startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
