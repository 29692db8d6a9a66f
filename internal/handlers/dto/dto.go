package dto

import (
	"encoding/json"
	"reflect"
	"strconv"
	"taskFileTracker/internal/models/task"
	"time"

	"github.com/spf13/cast"
)

// Timestamp принимает те же форматы даты, что форма и query:
// RFC 3339, дату-время без зоны (UTC), только дату
type Timestamp struct {
	time.Time
}

var TimestampType = reflect.TypeOf(Timestamp{})

func ParseTimestamp(value string) (time.Time, error) {
	return cast.ToTimeE(value)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: TimestampType}
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(value), Type: TimestampType}
	}
	ts.Time = parsed
	return nil
}

type CreateTaskRequest struct {
	ID           *string    `json:"id,omitempty"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	CreationDate *Timestamp `json:"creation_date,omitempty"`
}

// MissingField возвращает имя первого незаполненного обязательного поля
func (r CreateTaskRequest) MissingField() string {
	if r.Title == nil {
		return "title"
	}
	if r.Description == nil {
		return "description"
	}
	return ""
}

func (r CreateTaskRequest) ToTask() *task.Task {
	t := &task.Task{}
	if r.ID != nil {
		t.ID = *r.ID
	}
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.CreationDate != nil {
		t.CreationDate = r.CreationDate.Time
	}
	return t
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r UpdateTaskRequest) ToUpdate() task.TaskUpdate {
	return task.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
	}
}

type TaskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreationDate time.Time `json:"creation_date"`
}

type TaskWithFileResponse struct {
	TaskResponse
	FileURL  *string `json:"file_url"`
	Category *string `json:"category"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CreationDate: t.CreationDate,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

func FromTaskWithFile(t *task.TaskWithFile) TaskWithFileResponse {
	return TaskWithFileResponse{
		TaskResponse: FromTask(&t.Task),
		FileURL:      t.FileURL,
		Category:     t.Category,
	}
}

func FromTaskWithFileList(tasks []*task.TaskWithFile) []TaskWithFileResponse {
	result := make([]TaskWithFileResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTaskWithFile(t)
	}
	return result
}
