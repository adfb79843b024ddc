package view

import (
	"slices"
	"sync"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

// Source is the task store as seen by the view model.
type Source interface {
	Create(title, description, idempKey string) (model.Task, error)
	Update(id int64, patch model.TaskPatch) (model.Task, error)
	Delete(id int64) error
	List() []model.Task
}

// Model keeps the current filter and sort and a cached snapshot that is
// rebuilt from the full list after every intent.
type Model struct {
	src Source

	mu     sync.Mutex
	filter Filter
	sort   Sort
	snap   Snapshot
}

func NewModel(src Source, filter Filter) *Model {
	m := &Model{src: src, filter: filter}
	m.refresh()
	return m
}

func (m *Model) Add(title, description, idempKey string) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.src.Create(title, description, idempKey)
	if err != nil {
		return t, err
	}
	m.refresh()
	return t, nil
}

func (m *Model) Edit(id int64, patch model.TaskPatch) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.src.Update(id, patch)
	if err != nil {
		return t, err
	}
	m.refresh()
	return t, nil
}

func (m *Model) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.src.Delete(id); err != nil {
		return err
	}
	m.refresh()
	return nil
}

func (m *Model) SetFilter(f Filter) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filter = f
	m.refresh()
	return m.snapshot()
}

func (m *Model) SetSort(s Sort) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sort = s
	m.refresh()
	return m.snapshot()
}

// SetView replaces filter and sort in one step.
func (m *Model) SetView(f Filter, s Sort) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filter, m.sort = f, s
	m.refresh()
	return m.snapshot()
}

// Snapshot returns the cached view; the caller owns the returned slice.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Model) Counters() Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Counters
}

// Refresh re-reads the store, picking up changes made around the model.
func (m *Model) Refresh() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refresh()
	return m.snapshot()
}

// caller holds mu
func (m *Model) refresh() {
	m.snap = Build(m.src.List(), m.filter, m.sort)
}

func (m *Model) snapshot() Snapshot {
	s := m.snap
	s.Tasks = slices.Clone(m.snap.Tasks)
	return s
}
