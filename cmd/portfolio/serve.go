package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/config"
	"github.com/d60-Lab/portfolio/internal/api/handler"
	"github.com/d60-Lab/portfolio/internal/api/router"
	"github.com/d60-Lab/portfolio/internal/cache"
	"github.com/d60-Lab/portfolio/internal/repository"
	"github.com/d60-Lab/portfolio/internal/service"
	"github.com/d60-Lab/portfolio/pkg/database"
	"github.com/d60-Lab/portfolio/pkg/logger"
	"github.com/d60-Lab/portfolio/pkg/mailer"
	"github.com/d60-Lab/portfolio/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	sentryOn := false
	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		})
		if err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			sentryOn = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	listCache, closeCache := newListCache(ctx, cfg.Redis)
	defer closeCache()

	h := handler.New(
		service.NewRoutineService(repository.NewPostRepository(db), repository.NewReplyRepository(db), listCache),
		service.NewBlogService(repository.NewBlogRepository(db), listCache),
		service.NewContactService(mailer.New(mailer.Config{
			Host:      cfg.Mail.Host,
			Port:      cfg.Mail.Port,
			User:      cfg.Mail.User,
			Password:  cfg.Mail.Password,
			Recipient: cfg.Mail.Recipient,
			Timeout:   cfg.Mail.Timeout,
		})),
		db,
	)
	engine, err := router.New(h, router.Options{
		Mode:        cfg.Server.Mode,
		StaticDir:   cfg.Server.StaticDir,
		Swagger:     cfg.Server.Swagger,
		Sentry:      sentryOn,
		Tracing:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Warn("server did not shut down gracefully", zap.Error(err))
	}
	return nil
}

// openStore 打开数据库并确保表结构存在
func openStore(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := repository.InitSchema(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// newListCache 未配置 redis 时返回 nil，读请求直接落库
func newListCache(ctx context.Context, cfg config.RedisConfig) (*cache.ListCache, func()) {
	if cfg.Addr == "" {
		return nil, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		// 缓存不可用不影响启动，Fetch 会回落到数据库
		logger.Warn("redis unreachable", zap.String("addr", cfg.Addr), zap.Error(err))
	}
	return cache.NewListCache(client, cfg.TTL), func() { _ = client.Close() }
}
