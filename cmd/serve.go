package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
	"github.com/phananhtu1998/AI-Agent/internal/config"
	"github.com/phananhtu1998/AI-Agent/internal/database"
	"github.com/phananhtu1998/AI-Agent/internal/server"
	"github.com/phananhtu1998/AI-Agent/internal/service"
)

// serveCmd Khởi động HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Khởi động HTTP server của trợ lý",
	Long:  `Khởi động HTTP server: API hội thoại, log hội thoại và trang chat nhúng sẵn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		executor := agent.Initialize(ctx, cfg)

		// Cache Redis là tùy chọn, không kết nối được thì chạy DB-only
		var cache *service.RedisCache
		if cfg.Cache.Enabled {
			addr := fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)
			cache, err = service.NewRedisCache(addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
			if err != nil {
				logx.Warn("Redis unavailable, conversation cache disabled: %v", err)
				cache = nil
			}
		}

		conversations := service.NewConversationService(cache)
		httpServer := server.NewHTTPGinServer(cfg, executor, conversations)

		errCh := make(chan error, 1)
		go func() {
			if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Chờ tín hiệu dừng
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("http server failed: %w", err)
		case sig := <-quit:
			logx.Info("Received signal %s, shutting down", sig)
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Stop(shutdownCtx); err != nil {
			logx.Error("HTTP server shutdown failed: %v", err)
		}
		if cache != nil {
			if err := cache.Close(); err != nil {
				logx.Warn("Failed to close redis connection: %v", err)
			}
		}
		if err := database.Close(); err != nil {
			logx.Warn("Failed to close database: %v", err)
		}

		logx.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
