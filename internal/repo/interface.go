package repo

import (
	"errors"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

var ErrorNotFound = errors.New("not found")

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(title, description string) model.Task
	Get(id int64) (model.Task, bool)
	Update(id int64, patch model.TaskPatch) (model.Task, bool)
	Delete(id int64) bool
	List() []model.Task
	SaveIdempotencyKey(key string, taskID int64)
	GetIdempotencyKey(key string) (int64, bool)
}
