// Package main запускает HTTP-сервер витрины Crème & Cookies.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cremecookies/storefront-system/internal/config"
	"github.com/cremecookies/storefront-system/internal/handler"
	"github.com/cremecookies/storefront-system/internal/mailer"
	"github.com/cremecookies/storefront-system/internal/middleware"
	"github.com/cremecookies/storefront-system/internal/service"
	"github.com/cremecookies/storefront-system/internal/store"
	"github.com/cremecookies/storefront-system/internal/verification"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	st := store.New()
	st.Seed()

	// Наблюдатель состояния: слой отображения подписывается так же.
	unsubscribe := st.Subscribe(func() {
		logger.Debug("store state changed")
	})
	defer unsubscribe()

	var sender service.Sender
	if cfg.EmailServiceAddress != "" {
		sender = mailer.NewClient(cfg.EmailServiceAddress)
	} else {
		sugar.Infow("email service not configured, emails disabled")
	}

	verifier := verification.New()
	svc := service.NewService(st, sender, verifier, cfg.BaseURL, logger)

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting storefront server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
