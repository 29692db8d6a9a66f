package service

import (
	"context"
	"fmt"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/models/task"
	"time"

	"go.uber.org/zap"
)

type TaskWithFileService struct {
	repo TaskWithFileRepository
	now  func() time.Time
}

func NewTaskWithFileService(repo TaskWithFileRepository) *TaskWithFileService {
	return &TaskWithFileService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TaskWithFileService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// file может быть nil, тогда file_url остаётся пустым
func (s *TaskWithFileService) CreateTask(ctx context.Context, newTask *task.Task, file *task.FileRef) (*task.TaskWithFile, error) {
	fillDefaults(newTask, s.now)
	withFile := task.WithFile(*newTask, file)

	if err := s.repo.Create(ctx, withFile); err != nil {
		return nil, fmt.Errorf("создание задачи с файлом: %w", err)
	}

	logger.Info("Service: Задача с файлом создана",
		zap.String("task_id", withFile.ID),
		zap.Bool("has_file", withFile.FileURL != nil))
	return withFile, nil
}

func (s *TaskWithFileService) ListTasks(ctx context.Context, filter task.Filter) ([]*task.TaskWithFile, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач с файлами: %w", err)
	}

	if filter.IsEmpty() {
		return tasks, nil
	}
	return task.FilterTasks(tasks, filter), nil
}

func (s *TaskWithFileService) GetTaskByID(ctx context.Context, id string) (*task.TaskWithFile, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTaskWithFile, id, "получение задачи с файлом")
	}
	return t, nil
}

// UpdateTask применяет патч по его типу, файл перезаписывает file_url при любом типе
func (s *TaskWithFileService) UpdateTask(ctx context.Context, id string, patch task.Patch, file *task.FileRef) (*task.TaskWithFile, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTaskWithFile, id, "получение задачи с файлом")
	}

	options := append(patch.Options(), task.WithFileRef(file))
	task.ApplyWithFile(t, options...)

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, notFoundOr(err, ResourceTaskWithFile, id, "обновление задачи с файлом")
	}

	logger.Info("Service: Задача с файлом обновлена",
		zap.String("task_id", id),
		zap.Stringer("patch", patch.Kind))
	return t, nil
}

func (s *TaskWithFileService) DeleteTask(ctx context.Context, id string) (*task.TaskWithFile, error) {
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTaskWithFile, id, "удаление задачи с файлом")
	}
	return t, nil
}
