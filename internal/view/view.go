package view

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

var ErrInvalidOption = errors.New("invalid view option")

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("%w: filter %q", ErrInvalidOption, s)
	}
}

func (f Filter) Match(t model.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

type Column string

const (
	ColumnNone        Column = ""
	ColumnID          Column = "id"
	ColumnTitle       Column = "title"
	ColumnDescription Column = "description"
	ColumnStatus      Column = "completed"
	ColumnCreatedAt   Column = "created_at"
	ColumnUpdatedAt   Column = "updated_at"
)

type Sort struct {
	Column Column `json:"column"`
	Desc   bool   `json:"desc"`
}

// ParseSort accepts an empty column (insertion order) and order "", "asc" or "desc".
func ParseSort(column, order string) (Sort, error) {
	var s Sort

	switch c := Column(strings.ToLower(strings.TrimSpace(column))); c {
	case ColumnNone, ColumnID, ColumnTitle, ColumnDescription, ColumnStatus, ColumnCreatedAt, ColumnUpdatedAt:
		s.Column = c
	default:
		return Sort{}, fmt.Errorf("%w: sort column %q", ErrInvalidOption, column)
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return Sort{}, fmt.Errorf("%w: sort order %q", ErrInvalidOption, order)
	}
	return s, nil
}

func (s Sort) compare(a, b model.Task) int {
	var c int
	switch s.Column {
	case ColumnID:
		c = cmp.Compare(a.ID, b.ID)
	case ColumnTitle:
		c = strings.Compare(a.Title, b.Title)
	case ColumnDescription:
		c = strings.Compare(a.Description, b.Description)
	case ColumnStatus:
		// активные идут раньше выполненных
		c = cmp.Compare(boolRank(a.Completed), boolRank(b.Completed))
	case ColumnCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case ColumnUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	}
	if s.Desc {
		return -c
	}
	return c
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

type Counters struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Visible   int `json:"visible"`
}

// ApplyFilter returns the visible subset of all, keeping relative order.
func ApplyFilter(all []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a stably sorted copy of tasks.
func SortTasks(tasks []model.Task, s Sort) []model.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}
	if s.Column == ColumnNone {
		return out
	}
	slices.SortStableFunc(out, s.compare)
	return out
}

func Count(all, visible []model.Task) Counters {
	c := Counters{Total: len(all), Visible: len(visible)}
	for _, t := range all {
		if t.Completed {
			c.Completed++
		}
	}
	return c
}

type Snapshot struct {
	Filter   Filter       `json:"filter"`
	Sort     Sort         `json:"sort"`
	Counters Counters     `json:"counters"`
	Tasks    []model.Task `json:"tasks"`
}

// Build derives the filtered, sorted view and its counters from a full list.
func Build(all []model.Task, f Filter, s Sort) Snapshot {
	visible := ApplyFilter(all, f)
	return Snapshot{
		Filter:   f,
		Sort:     s,
		Counters: Count(all, visible),
		Tasks:    SortTasks(visible, s),
	}
}

const TimeLayout = "02.01.2006 15:04"

const (
	StatusActive    = "Активно"
	StatusCompleted = "Выполнено"
)

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func StatusLabel(completed bool) string {
	if completed {
		return StatusCompleted
	}
	return StatusActive
}

// Row is a task prepared for display.
type Row struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func Rows(tasks []model.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, Row{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      StatusLabel(t.Completed),
			CreatedAt:   FormatTime(t.CreatedAt),
			UpdatedAt:   FormatTime(t.UpdatedAt),
		})
	}
	return rows
}
