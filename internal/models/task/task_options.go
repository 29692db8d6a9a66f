package task

type TaskOption func(*Task)

type TaskWithFileOption func(*TaskWithFile)

func Apply(t *Task, options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}

func ApplyWithFile(t *TaskWithFile, options ...TaskWithFileOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

// FromUpdate: nil поле - без изменений, пустая строка считается значением
func FromUpdate(update TaskUpdate) []TaskOption {
	options := []TaskOption{}
	if update.Title != nil {
		options = append(options, WithTitle(*update.Title))
	}
	if update.Description != nil {
		options = append(options, WithDescription(*update.Description))
	}
	return options
}

// FromUpdateNonEmpty пропускает и nil, и пустые строки
func FromUpdateNonEmpty(update TaskUpdate) []TaskOption {
	options := []TaskOption{}
	if update.Title != nil && *update.Title != "" {
		options = append(options, WithTitle(*update.Title))
	}
	if update.Description != nil && *update.Description != "" {
		options = append(options, WithDescription(*update.Description))
	}
	return options
}

func WithTaskOptions(options ...TaskOption) TaskWithFileOption {
	if len(options) == 0 {
		return nil
	}
	return func(t *TaskWithFile) {
		Apply(&t.Task, options...)
	}
}

// категория перезаписывается всегда, в том числе пустым значением
func WithCategory(category *string) TaskWithFileOption {
	return func(t *TaskWithFile) {
		if category == nil {
			t.Category = nil
			return
		}
		value := *category
		t.Category = &value
	}
}

func WithFileRef(file *FileRef) TaskWithFileOption {
	if file == nil || file.Filename == "" {
		return nil
	}
	return func(t *TaskWithFile) {
		url := FileURL(t.ID, file.Filename)
		t.FileURL = &url
	}
}
