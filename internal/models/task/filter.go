package task

import (
	"strings"
	"time"
)

// Filter - все заданные условия должны выполняться, пустые не учитываются
type Filter struct {
	Title           string     `json:"title,omitempty"`
	Description     string     `json:"description,omitempty"`
	MinCreationDate *time.Time `json:"min_creation_date,omitempty"`
	MaxCreationDate *time.Time `json:"max_creation_date,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return f.Title == "" && f.Description == "" && f.MinCreationDate == nil && f.MaxCreationDate == nil
}

// FilterTasks последовательно сужает выборку: title, description, min, max
func FilterTasks(tasks []*TaskWithFile, f Filter) []*TaskWithFile {
	res := tasks

	if f.Title != "" {
		res = narrow(res, func(t *TaskWithFile) bool {
			return strings.Contains(t.Title, f.Title)
		})
	}
	if f.Description != "" {
		res = narrow(res, func(t *TaskWithFile) bool {
			return strings.Contains(t.Description, f.Description)
		})
	}
	if f.MinCreationDate != nil {
		res = narrow(res, func(t *TaskWithFile) bool {
			return !t.CreationDate.Before(*f.MinCreationDate)
		})
	}
	if f.MaxCreationDate != nil {
		res = narrow(res, func(t *TaskWithFile) bool {
			return !t.CreationDate.After(*f.MaxCreationDate)
		})
	}

	return res
}

func narrow(tasks []*TaskWithFile, keep func(*TaskWithFile) bool) []*TaskWithFile {
	res := make([]*TaskWithFile, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			res = append(res, t)
		}
	}
	return res
}
