package handlers

import (
	"encoding/json"
	"net/http"
	"taskFileTracker/internal/handlers/dto"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/models/task"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const DefaultMaxFieldBytes int64 = 1 << 20

// TaskWithFileHandler принимает JSON или multipart/form-data,
// из файла берётся только имя
type TaskWithFileHandler struct {
	TaskService   FileService
	MaxFieldBytes int64
}

func NewTaskWithFileHandler(taskService FileService, maxFieldBytes int64) *TaskWithFileHandler {
	if maxFieldBytes <= 0 {
		maxFieldBytes = DefaultMaxFieldBytes
	}
	return &TaskWithFileHandler{
		TaskService:   taskService,
		MaxFieldBytes: maxFieldBytes,
	}
}

func (s *TaskWithFileHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		request dto.CreateTaskRequest
		file    *task.FileRef
	)

	switch {
	case checkContentType(r, contentTypeJSON):
		if err := decodeJSON(r, &request); err != nil {
			respondRequestError(w, r, err)
			return
		}
	case checkContentType(r, contentTypeMultipart):
		form, err := readMultipart(r, s.MaxFieldBytes)
		if err != nil {
			respondRequestError(w, r, err)
			return
		}
		if request, err = createRequestFromForm(form); err != nil {
			respondRequestError(w, r, err)
			return
		}
		file = form.file
	default:
		unsupportedMediaType(w, r, contentTypeJSON, contentTypeMultipart)
		return
	}

	if field := request.MissingField(); field != "" {
		validationFailed(w, r, field, "field required")
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), request.ToTask(), file)
	if err != nil {
		handleServiceError(w, r, err, "create_task_with_file")
		return
	}

	logger.Info("HTTP_OUT: Задача с файлом создана",
		zap.String("task_id", created.ID),
		zap.Bool("has_file", file != nil),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskWithFile(created))
}

func (s *TaskWithFileHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		respondRequestError(w, r, err)
		return
	}

	tasks, err := s.TaskService.ListTasks(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err, "list_tasks_with_file")
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromTaskWithFileList(tasks))
}

func (s *TaskWithFileHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_task_with_file")
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromTaskWithFile(found))
}

func (s *TaskWithFileHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	var (
		patch task.Patch
		file  *task.FileRef
	)

	switch {
	case checkContentType(r, contentTypeJSON):
		var raw map[string]json.RawMessage
		if err := decodeJSON(r, &raw); err != nil {
			respondRequestError(w, r, err)
			return
		}
		var err error
		if patch, err = patchFromJSON(raw); err != nil {
			respondRequestError(w, r, err)
			return
		}
	case checkContentType(r, contentTypeMultipart):
		form, err := readMultipart(r, s.MaxFieldBytes)
		if err != nil {
			respondRequestError(w, r, err)
			return
		}
		if patch, err = patchFromForm(form); err != nil {
			respondRequestError(w, r, err)
			return
		}
		file = form.file
	default:
		unsupportedMediaType(w, r, contentTypeJSON, contentTypeMultipart)
		return
	}

	updated, err := s.TaskService.UpdateTask(r.Context(), id, patch, file)
	if err != nil {
		handleServiceError(w, r, err, "update_task_with_file")
		return
	}

	logger.Info("HTTP_OUT: Задача с файлом обновлена",
		zap.String("task_id", id),
		zap.Stringer("patch", patch.Kind),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskWithFile(updated))
}

func (s *TaskWithFileHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.TaskService.DeleteTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "delete_task_with_file")
		return
	}

	logger.Info("HTTP_OUT: Задача с файлом удалена",
		zap.String("task_id", id),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskWithFile(deleted))
}
