package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskFileTracker/internal/config"
	"taskFileTracker/internal/handlers"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/repository/task/inmemory"
	"taskFileTracker/internal/service"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    http.Handler
	taskRepo  service.TaskRepository
	fileRepo  service.TaskWithFileRepository
	shutdowns []func() error // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func() error, 0),
	}
}

// Init собирает хранилища, сервисы, обработчики и http сервер
func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() error {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
		return nil
	})

	a.taskRepo = inmemory.NewTaskStorage()
	a.fileRepo = inmemory.NewTaskWithFileStorage()

	taskService := service.NewTaskService(a.taskRepo)
	fileService := service.NewTaskWithFileService(a.fileRepo)

	a.router = NewRouter(a.config,
		handlers.NewTaskHandler(taskService),
		handlers.NewTaskWithFileHandler(fileService, a.config.Server.MaxFieldBytes),
		handlers.NewHealthHandler(taskService, fileService),
	)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("App: Инициализация завершена", zap.String("addr", a.server.Addr))
	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Run блокируется до отмены ctx или ошибки сервера
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("запуск сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server: Остановка сервера")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close выполняет shutdown-функции в обратном порядке и собирает все ошибки
func (a *App) Close() error {
	var err error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.shutdowns[i]())
	}
	a.shutdowns = nil
	return err
}
