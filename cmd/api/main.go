package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"taskFileTracker/internal/app"
	"taskFileTracker/internal/config"
	"taskFileTracker/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "путь к config.yml")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "загрузка конфига:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "инициализация приложения:", err)
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		logger.Error("Server: Сервер завершился с ошибкой", runErr)
	}

	if err := application.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "завершение приложения:", err)
	}

	if runErr != nil {
		os.Exit(1)
	}
}
