package service

import (
	"context"
	"errors"
	"fmt"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/models/task"
	rep "taskFileTracker/internal/repository"
	"time"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// CreateTask выдаёт id и дату создания каждой задаче отдельно, если их не передали
func (s *TaskService) CreateTask(ctx context.Context, newTask *task.Task) (*task.Task, error) {
	fillDefaults(newTask, s.now)

	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", newTask.ID))
	return newTask, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTask, id, "получение задачи")
	}
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, update task.TaskUpdate) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTask, id, "получение задачи")
	}

	task.Apply(t, task.FromUpdate(update)...)

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, notFoundOr(err, ResourceTask, id, "обновление задачи")
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ResourceTask, id, "удаление задачи")
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id))
	return t, nil
}

func fillDefaults(t *task.Task, now func() time.Time) {
	if t.ID == "" {
		t.ID = task.NewID()
	}
	if t.CreationDate.IsZero() {
		t.CreationDate = now()
	}
}

func notFoundOr(err error, resource Resource, id, operation string) error {
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Задача не найдена",
			zap.String("resource", string(resource)),
			zap.String("target_id", id))
		return NewNotFound(resource, id)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
