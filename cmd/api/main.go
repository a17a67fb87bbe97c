// Package main (in api-subfolder) launches the HTTP host for the image handle registry
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/ImageHandles/internal/mwlogger"
	"github.com/UnendingLoop/ImageHandles/internal/registry"
	"github.com/UnendingLoop/ImageHandles/internal/service"
	"github.com/UnendingLoop/ImageHandles/internal/transport"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	appConfig := config.New()
	appConfig.EnableEnv("")
	if err := appConfig.LoadEnvFiles("./.env"); err != nil {
		log.Printf("No .env file loaded (%v), using process environment", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(stringOr(appConfig, "LOG_LEVEL", "info")); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// готовим заранее слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// собираем реестр хэндлов
	opts, err := registryOptions(appConfig)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Invalid registry configuration")
	}
	reg := registry.New(opts)
	zlog.Logger.Info().
		Str("resampler", opts.Resampler.Name()).
		Int("max_dimension", opts.MaxDimension).
		Msg("Handle registry ready")

	// создаем экземпляр сервиса
	var svc ImageAPIService = service.NewHandleService(reg, appConfig.GetString("IMAGES_ROOT"))
	// cоздаем экземпляр хендлера HTTP
	handlers := transport.NewImageHandler(svc)
	// сетапим сервер
	engine := ginext.New(appConfig.GetString("GIN_MODE"))
	handlers.Register(engine)

	srv := &http.Server{
		Addr:              ":" + stringOr(appConfig, "APP_PORT", "8080"),
		Handler:           mwlogger.NewMWLogger(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server launch
	go func() {
		zlog.Logger.Info().Str("addr", srv.Addr).Msg("Server running")
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				zlog.Logger.Info().Msg("Server gracefully stopping...")
			default:
				zlog.Logger.Error().Err(err).Msg("Server stopped")
				stop()
			}
		}
	}()

	// ждем отмены контекста для грейсфул закрытия
	<-ctx.Done()

	shutdown(srv, reg)
	zlog.Logger.Info().Msg("Exiting api...")
}

func shutdown(srv *http.Server, reg *registry.Registry) {
	zlog.Logger.Info().Msg("Interrupt received!!! Starting shutdown sequence...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("Failed to shutdown HTTP-server correctly")
	}

	// освобождаем все буферы, которые клиенты не закрыли
	released := reg.CloseAll()
	zlog.Logger.Info().Int("released", released).Msg("Handle registry cleared")
}
