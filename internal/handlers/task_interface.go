package handlers

import (
	"context"
	"taskFileTracker/internal/models/task"
)

type HealthChecker interface {
	HealthCheck(context.Context) error
}

type Service interface {
	HealthChecker
	CreateTask(context.Context, *task.Task) (*task.Task, error)
	ListTasks(context.Context) ([]*task.Task, error)
	GetTaskByID(context.Context, string) (*task.Task, error)
	UpdateTask(context.Context, string, task.TaskUpdate) (*task.Task, error)
	DeleteTask(context.Context, string) (*task.Task, error)
}

type FileService interface {
	HealthChecker
	CreateTask(context.Context, *task.Task, *task.FileRef) (*task.TaskWithFile, error)
	ListTasks(context.Context, task.Filter) ([]*task.TaskWithFile, error)
	GetTaskByID(context.Context, string) (*task.TaskWithFile, error)
	UpdateTask(context.Context, string, task.Patch, *task.FileRef) (*task.TaskWithFile, error)
	DeleteTask(context.Context, string) (*task.TaskWithFile, error)
}
