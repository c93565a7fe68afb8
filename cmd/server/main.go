package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/devconnect/internal/api"
	"github.com/d60-Lab/devconnect/internal/api/handler"
	"github.com/d60-Lab/devconnect/internal/cache"
	"github.com/d60-Lab/devconnect/internal/config"
	"github.com/d60-Lab/devconnect/internal/model"
	"github.com/d60-Lab/devconnect/internal/repository"
	"github.com/d60-Lab/devconnect/internal/service"
	"github.com/d60-Lab/devconnect/pkg/logger"
	"github.com/d60-Lab/devconnect/pkg/tracing"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DB.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DB.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.JWT.Secret == "" {
		logger.L().Fatal("jwt secret is not configured")
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.L().Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Trace.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, cfg.Trace.Endpoint, "devconnect")
		if err != nil {
			logger.L().Fatal("init tracing", zap.Error(err))
		}
		defer func() {
			c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(c)
		}()
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Like{}, &model.Comment{}); err != nil {
		logger.L().Fatal("migrate schema", zap.Error(err))
	}

	var feed *cache.FeedCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, feed cache disabled", zap.Error(err))
		} else {
			feed = cache.NewFeedCache(rdb, cfg.Redis.FeedTTL)
		}
		cancel()
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	postService := service.NewPostService(postRepo, userRepo, feed)

	h := handler.New(authService, postService)
	router := api.NewRouter(cfg, h, authService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
