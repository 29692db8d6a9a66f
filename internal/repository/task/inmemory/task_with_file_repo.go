package inmemory

import (
	"context"
	"sync"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/models/task"
	repo "taskFileTracker/internal/repository"
)

// TaskWithFileStorage - отдельное хранилище задач с файлами и категориями,
// с TaskStorage никак не связано
type TaskWithFileStorage struct {
	storage map[string]*task.TaskWithFile
	mtx     *sync.RWMutex
	ids     []string
}

func NewTaskWithFileStorage() *TaskWithFileStorage {
	return &TaskWithFileStorage{
		storage: make(map[string]*task.TaskWithFile),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *TaskWithFileStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Хранилище задач с файлами доступно")
	return nil
}

func (s *TaskWithFileStorage) Create(ctx context.Context, taskToCreate *task.TaskWithFile) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToCreate.ID]; !ok {
		s.ids = append(s.ids, taskToCreate.ID)
	}
	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	return nil
}

func (s *TaskWithFileStorage) List(ctx context.Context) ([]*task.TaskWithFile, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.TaskWithFile, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id].Clone())
	}
	return res, nil
}

func (s *TaskWithFileStorage) GetByID(ctx context.Context, id string) (*task.TaskWithFile, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskWithFileStorage) Update(ctx context.Context, taskToUpdate *task.TaskWithFile) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()
	return nil
}

func (s *TaskWithFileStorage) Delete(ctx context.Context, id string) (*task.TaskWithFile, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToDelete, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	delete(s.storage, id)
	s.ids = removeID(s.ids, id)
	return taskToDelete, nil
}
