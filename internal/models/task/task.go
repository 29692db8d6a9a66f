package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreationDate time.Time `json:"creation_date"`
}

// задача с приложенным файлом и категорией
type TaskWithFile struct {
	Task
	FileURL  *string `json:"file_url"`
	Category *string `json:"category"`
}

type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type TaskCategory struct {
	Category *string `json:"category"`
}

// от загруженного файла храним только имя
type FileRef struct {
	Filename string
}

// NewID генерирует идентификатор для каждой новой задачи
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func FileURL(id, filename string) string {
	return fmt.Sprintf("/files/%s/%s", id, filename)
}

// WithFile собирает расширенную задачу, file может быть nil
func WithFile(t Task, file *FileRef) *TaskWithFile {
	res := &TaskWithFile{Task: t}
	if file != nil && file.Filename != "" {
		url := FileURL(t.ID, file.Filename)
		res.FileURL = &url
	}
	return res
}

func (t *TaskWithFile) Clone() *TaskWithFile {
	res := &TaskWithFile{Task: t.Task}
	if t.FileURL != nil {
		url := *t.FileURL
		res.FileURL = &url
	}
	if t.Category != nil {
		category := *t.Category
		res.Category = &category
	}
	return res
}
