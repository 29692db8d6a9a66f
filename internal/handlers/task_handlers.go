package handlers

import (
	"errors"
	"net/http"
	"taskFileTracker/internal/handlers/dto"
	"taskFileTracker/internal/logger"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !checkContentType(r, contentTypeJSON) {
		unsupportedMediaType(w, r, contentTypeJSON)
		return
	}

	var request dto.CreateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		respondRequestError(w, r, err)
		return
	}

	if field := request.MissingField(); field != "" {
		validationFailed(w, r, field, "field required")
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), request.ToTask())
	if err != nil {
		handleServiceError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTask(created))
}

func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.TaskService.ListTasks(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "list_tasks")
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_task")
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromTask(found))
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	if !checkContentType(r, contentTypeJSON) {
		unsupportedMediaType(w, r, contentTypeJSON)
		return
	}

	var request dto.UpdateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		respondRequestError(w, r, err)
		return
	}

	updated, err := s.TaskService.UpdateTask(r.Context(), id, request.ToUpdate())
	if err != nil {
		handleServiceError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.TaskService.DeleteTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTask(deleted))
}

func respondRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		validationFailed(w, r, reqErr.field, reqErr.reason)
		return
	}
	validationFailed(w, r, "body", err.Error())
}
