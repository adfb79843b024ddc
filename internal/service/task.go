package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo repo.TaskRepository
	// сериализует создание по ключу идемпотентности
	idempMu sync.Mutex
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(title, description, idempKey string) (model.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateTitle(title); err != nil { // Пустое название не допускается
		return model.Task{}, err
	}

	if idempKey == "" {
		return s.repo.Create(title, description), nil
	}

	s.idempMu.Lock()
	defer s.idempMu.Unlock()

	// Если задача по этому ключу уже создана, возвращаем ее
	if existingID, ok := s.repo.GetIdempotencyKey(idempKey); ok {
		if t, ok := s.repo.Get(existingID); ok {
			return t, nil
		}
	}

	t := s.repo.Create(title, description)
	s.repo.SaveIdempotencyKey(idempKey, t.ID)
	return t, nil
}

func (s *TaskService) Get(id int64) (model.Task, error) {
	t, ok := s.repo.Get(id)
	if !ok {
		return t, fmt.Errorf("%w: task %d", repo.ErrorNotFound, id)
	}
	return t, nil
}

func (s *TaskService) List() []model.Task {
	return s.repo.List()
}

func (s *TaskService) Update(id int64, patch model.TaskPatch) (model.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return model.Task{}, err
		}
	}

	t, ok := s.repo.Update(id, patch)
	if !ok {
		return t, fmt.Errorf("%w: task %d", repo.ErrorNotFound, id)
	}
	return t, nil
}

func (s *TaskService) Delete(id int64) error {
	if !s.repo.Delete(id) {
		return fmt.Errorf("%w: task %d", repo.ErrorNotFound, id)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	return nil
}
