package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/api/handler"
	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/config"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/postgres"
	"github.com/hszk-dev/vidtube/internal/infrastructure/queue"
	"github.com/hszk-dev/vidtube/internal/infrastructure/storage"
	"github.com/hszk-dev/vidtube/internal/mediaprobe"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload temp dir: %w", err)
	}

	if err := postgres.Migrate(cfg.Database.DSN()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()

	db, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	prober := mediaprobe.New(mediaprobe.DefaultConfig())

	blobs, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		PublicURL: cfg.MinIO.PublicURL,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	}, prober)
	if err != nil {
		return fmt.Errorf("failed to connect to minio: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	events, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warn("failed to close rabbitmq client", slog.Any("error", err))
		}
	}()

	pool := postgres.InstrumentDB(db.Pool())
	videoRepo := postgres.NewVideoRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	tweetRepo := postgres.NewTweetRepository(pool)
	likeRepo := postgres.NewLikeRepository(pool)
	playlistRepo := postgres.NewPlaylistRepository(pool)

	videoCache := cache.NewRedisVideoCache(redisClient, cfg.Redis.VideoTTL)

	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo, blobs, events),
		videoCache,
	)
	commentSvc := usecase.NewCommentService(commentRepo, videoRepo)
	tweetSvc := usecase.NewTweetService(tweetRepo)
	likeSvc := usecase.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	playlistSvc := usecase.NewPlaylistService(playlistRepo, videoRepo)

	verifier := auth.NewVerifier(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	r := setupRouter(routerDeps{
		logger:      logger,
		verifier:    verifier,
		videos:      handler.NewVideoHandler(videoSvc, cfg.Upload.TempDir),
		comments:    handler.NewCommentHandler(commentSvc),
		tweets:      handler.NewTweetHandler(tweetSvc),
		likes:       handler.NewLikeHandler(likeSvc),
		playlists:   handler.NewPlaylistHandler(playlistSvc),
		maxBodySize: cfg.Upload.MaxBodySize,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type routerDeps struct {
	logger      *slog.Logger
	verifier    *auth.Verifier
	videos      *handler.VideoHandler
	comments    *handler.CommentHandler
	tweets      *handler.TweetHandler
	likes       *handler.LikeHandler
	playlists   *handler.PlaylistHandler
	maxBodySize int64
}

func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Metrics)
	r.Use(maxBody(deps.maxBodySize))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := middleware.RequireAuth(deps.verifier)
	optionalAuth := middleware.OptionalAuth(deps.verifier)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Get("/", deps.videos.List)
			r.With(requireAuth).Post("/", deps.videos.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.With(optionalAuth).Get("/", deps.videos.Get)
				r.With(requireAuth).Patch("/", deps.videos.Update)
				r.With(requireAuth).Delete("/", deps.videos.Delete)
				r.With(requireAuth).Post("/toggle-publish", deps.videos.TogglePublish)

				r.With(requireAuth).Get("/comments", deps.comments.List)
				r.With(requireAuth).Post("/comments", deps.comments.Create)

				r.With(requireAuth).Get("/likes", deps.likes.CountVideoLikes)
			})
		})

		r.Route("/comments/{id}", func(r chi.Router) {
			r.With(requireAuth).Patch("/", deps.comments.Update)
			r.With(requireAuth).Delete("/", deps.comments.Delete)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", deps.tweets.List)
			r.Post("/", deps.tweets.Create)
			r.Patch("/{id}", deps.tweets.Update)
			r.Delete("/{id}", deps.tweets.Delete)
		})
		r.With(requireAuth).Get("/users/{id}/tweets", deps.tweets.ListByUser)

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/videos", deps.likes.ListLikedVideos)
			r.Post("/videos/{id}", deps.likes.ToggleVideo)
			r.Post("/comments/{id}", deps.likes.ToggleComment)
			r.Post("/tweets/{id}", deps.likes.ToggleTweet)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", deps.playlists.Create)
			r.Get("/", deps.playlists.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.playlists.Get)
				r.Patch("/", deps.playlists.Update)
				r.Delete("/", deps.playlists.Delete)
				r.Post("/videos/{videoID}", deps.playlists.AddVideo)
				r.Delete("/videos/{videoID}", deps.playlists.RemoveVideo)
			})
		})
	})

	return r
}

// maxBody caps request body size; oversized multipart uploads fail at
// parse time instead of filling the temp dir.
func maxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
