package inmemory

import (
	"context"
	"sync"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/models/task"
	repo "taskFileTracker/internal/repository"
)

// TaskStorage хранит задачи в памяти процесса, ids держит порядок вставки
type TaskStorage struct {
	storage map[string]task.Task
	mtx     *sync.RWMutex
	ids     []string
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[string]task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Хранилище задач доступно")
	return nil
}

// при совпадении id запись молча перезаписывается и остаётся на своём месте
func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToCreate.ID]; !ok {
		s.ids = append(s.ids, taskToCreate.ID)
	}
	s.storage[taskToCreate.ID] = *taskToCreate
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		t := s.storage[id]
		res = append(res, &t)
	}
	return res, nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &taskToGet, nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[taskToUpdate.ID] = *taskToUpdate
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToDelete, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	delete(s.storage, id)
	s.ids = removeID(s.ids, id)
	return &taskToDelete, nil
}

func removeID(ids []string, id string) []string {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}
