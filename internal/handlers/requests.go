package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"taskFileTracker/internal/handlers/dto"
	"taskFileTracker/internal/models/task"
	"time"
)

const fileField = "file"

// requestError - тело или параметры запроса не прошли приведение типов
type requestError struct {
	field  string
	reason string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.reason)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	if err == nil {
		// после объекта допускаются только пробелы
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return &requestError{field: "body", reason: "unexpected data after JSON value"}
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		if typeErr.Type == dto.TimestampType {
			return &requestError{field: field, reason: "expected date-time"}
		}
		return &requestError{field: field, reason: "expected " + typeErr.Type.String()}
	case errors.Is(err, io.EOF):
		return &requestError{field: "body", reason: "request body is required"}
	default:
		return &requestError{field: "body", reason: err.Error()}
	}
}

// multipartForm - текстовые поля формы и имя загруженного файла,
// содержимое файла не читается
type multipartForm struct {
	values map[string]string
	file   *task.FileRef
}

func (f *multipartForm) lookup(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

func readMultipart(r *http.Request, maxFieldBytes int64) (*multipartForm, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, &requestError{field: "body", reason: err.Error()}
	}

	form := &multipartForm{values: make(map[string]string)}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &requestError{field: "body", reason: err.Error()}
		}

		name := part.FormName()
		filename := uploadFilename(part)

		if filename != "" || name == fileField {
			if name == fileField && filename != "" {
				form.file = &task.FileRef{Filename: filename}
			}
			part.Close()
			continue
		}

		data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
		part.Close()
		if err != nil {
			return nil, &requestError{field: name, reason: err.Error()}
		}
		if int64(len(data)) > maxFieldBytes {
			return nil, &requestError{field: name, reason: fmt.Sprintf("value is longer than %d bytes", maxFieldBytes)}
		}
		form.values[name] = string(data)
	}

	return form, nil
}

// uploadFilename возвращает имя файла как его прислал клиент,
// FileName() из mime/multipart обрезает путь до базового имени
func uploadFilename(part *multipart.Part) string {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return part.FileName()
	}
	return params["filename"]
}

func createRequestFromForm(form *multipartForm) (dto.CreateTaskRequest, error) {
	var request dto.CreateTaskRequest

	if id, ok := form.lookup("id"); ok && id != "" {
		request.ID = &id
	}
	if title, ok := form.lookup("title"); ok {
		request.Title = &title
	}
	if description, ok := form.lookup("description"); ok {
		request.Description = &description
	}
	if value, ok := form.lookup("creation_date"); ok {
		date, err := parseDate("creation_date", value)
		if err != nil {
			return dto.CreateTaskRequest{}, err
		}
		if date != nil {
			request.CreationDate = &dto.Timestamp{Time: *date}
		}
	}

	return request, nil
}

// patchFromJSON выбирает вид патча по набору ключей: category или title/description
func patchFromJSON(raw map[string]json.RawMessage) (task.Patch, error) {
	categoryRaw, hasCategory := raw["category"]
	titleRaw, hasTitle := raw["title"]
	descriptionRaw, hasDescription := raw["description"]

	if hasCategory && (hasTitle || hasDescription) {
		return task.Patch{}, errMixedPatch
	}

	if hasCategory {
		var category *string
		if err := json.Unmarshal(categoryRaw, &category); err != nil {
			return task.Patch{}, &requestError{field: "category", reason: "expected string"}
		}
		return task.CategoryPatch(task.TaskCategory{Category: category}), nil
	}

	var update task.TaskUpdate
	if hasTitle {
		if err := json.Unmarshal(titleRaw, &update.Title); err != nil {
			return task.Patch{}, &requestError{field: "title", reason: "expected string"}
		}
	}
	if hasDescription {
		if err := json.Unmarshal(descriptionRaw, &update.Description); err != nil {
			return task.Patch{}, &requestError{field: "description", reason: "expected string"}
		}
	}
	return task.FieldsPatch(update), nil
}

func patchFromForm(form *multipartForm) (task.Patch, error) {
	category, hasCategory := form.lookup("category")
	title, hasTitle := form.lookup("title")
	description, hasDescription := form.lookup("description")

	if hasCategory && (hasTitle || hasDescription) {
		return task.Patch{}, errMixedPatch
	}

	if hasCategory {
		return task.CategoryPatch(task.TaskCategory{Category: &category}), nil
	}

	var update task.TaskUpdate
	if hasTitle {
		update.Title = &title
	}
	if hasDescription {
		update.Description = &description
	}
	return task.FieldsPatch(update), nil
}

var errMixedPatch = &requestError{field: "category", reason: "send either title/description or category, not both"}

func filterFromQuery(query url.Values) (task.Filter, error) {
	filter := task.Filter{
		Title:       query.Get("title"),
		Description: query.Get("description"),
	}

	var err error
	if filter.MinCreationDate, err = parseDate("min_creation_date", query.Get("min_creation_date")); err != nil {
		return task.Filter{}, err
	}
	if filter.MaxCreationDate, err = parseDate("max_creation_date", query.Get("max_creation_date")); err != nil {
		return task.Filter{}, err
	}

	return filter, nil
}

// пустое значение - параметр не задан
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := dto.ParseTimestamp(value)
	if err != nil {
		return nil, &requestError{field: field, reason: "expected date-time"}
	}
	return &parsed, nil
}
