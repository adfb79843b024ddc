package repo

import (
	"sync"
	"time"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

// MemoryRepo is the single owner of the task collection.
// One mutex guards both the id counter and the slice.
type MemoryRepo struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64
	idemp  map[string]int64
	now    func() time.Time
}

type Option func(*MemoryRepo)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(r *MemoryRepo) {
		r.now = now
	}
}

func NewMemoryRepo(opts ...Option) *MemoryRepo {
	r := &MemoryRepo{
		nextID: 1,
		idemp:  make(map[string]int64),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MemoryRepo) Create(title, description string) model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t := model.Task{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.tasks = append(r.tasks, t)
	return t
}

func (r *MemoryRepo) Get(id int64) (model.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		return r.tasks[i], true
	}
	return model.Task{}, false
}

func (r *MemoryRepo) Update(id int64, patch model.TaskPatch) (model.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}

	t := &r.tasks[i]
	patch.Apply(t)
	if now := r.now(); now.After(t.CreatedAt) {
		t.UpdatedAt = now
	} else {
		t.UpdatedAt = t.CreatedAt
	}
	return *t, true
}

func (r *MemoryRepo) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return true
}

// List возвращает копию коллекции в порядке добавления.
func (r *MemoryRepo) List() []model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *MemoryRepo) SaveIdempotencyKey(key string, taskID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idemp[key]; !ok {
		r.idemp[key] = taskID
	}
}

func (r *MemoryRepo) GetIdempotencyKey(key string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.idemp[key]
	return id, ok
}

// linear scan, caller holds mu
func (r *MemoryRepo) indexOf(id int64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
