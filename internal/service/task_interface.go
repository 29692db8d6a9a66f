package service

import (
	"context"
	"taskFileTracker/internal/models/task"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	List(context.Context) ([]*task.Task, error)
	GetByID(context.Context, string) (*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, string) (*task.Task, error)
}

type TaskWithFileRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.TaskWithFile) error
	List(context.Context) ([]*task.TaskWithFile, error)
	GetByID(context.Context, string) (*task.TaskWithFile, error)
	Update(context.Context, *task.TaskWithFile) error
	Delete(context.Context, string) (*task.TaskWithFile, error)
}
