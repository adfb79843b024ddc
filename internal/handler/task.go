package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/repo"
	"github.com/BuzzLyutic/todo-list/internal/service"
	"github.com/BuzzLyutic/todo-list/internal/view"
	"github.com/BuzzLyutic/todo-list/pkg/respond"
)

var errBadID = errors.New("invalid task id")

type TaskHandler struct {
	service *service.TaskService
	view    *view.Model
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, vm *view.Model, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		view:    vm,
		logger:  logger,
	}
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type viewRequest struct {
	Filter *string `json:"filter"`
	Sort   *string `json:"sort"`
	Order  *string `json:"order"`
}

type viewResponse struct {
	Filter   view.Filter   `json:"filter"`
	Sort     view.Sort     `json:"sort"`
	Counters view.Counters `json:"counters"`
	Rows     []view.Row    `json:"rows"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	idempKey := r.Header.Get("Idempotency-Key")
	task, err := h.view.Add(req.Title, req.Description, idempKey)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("task created", zap.Int64("task_id", task.ID))

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Get(id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// List отдает отфильтрованный и отсортированный список без изменения состояния представления
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := view.ParseFilter(q.Get("filter"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	sort, err := view.ParseSort(q.Get("sort"), q.Get("order"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, view.Build(h.service.List(), filter, sort))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var patch model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.view.Edit(id, patch)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("task updated", zap.Int64("task_id", task.ID))

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if err := h.view.Delete(id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("task deleted", zap.Int64("task_id", id))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.view.Counters())
}

func (h *TaskHandler) View(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, toViewResponse(h.view.Snapshot()))
}

func (h *TaskHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	current := h.view.Snapshot()

	// Сначала проверяем все значения, затем применяем
	filter := current.Filter
	if req.Filter != nil {
		f, err := view.ParseFilter(*req.Filter)
		if err != nil {
			h.handleErrors(w, r, err)
			return
		}
		filter = f
	}

	sort := current.Sort
	if req.Sort != nil || req.Order != nil {
		column, order := string(current.Sort.Column), "asc"
		if current.Sort.Desc {
			order = "desc"
		}
		if req.Sort != nil {
			column = *req.Sort
		}
		if req.Order != nil {
			order = *req.Order
		}
		s, err := view.ParseSort(column, order)
		if err != nil {
			h.handleErrors(w, r, err)
			return
		}
		sort = s
	}

	respond.JSON(w, r, http.StatusOK, toViewResponse(h.view.SetView(filter, sort)))
}

func toViewResponse(s view.Snapshot) viewResponse {
	return viewResponse{
		Filter:   s.Filter,
		Sort:     s.Sort,
		Counters: s.Counters,
		Rows:     view.Rows(s.Tasks),
	}
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, raw)
	}
	return id, nil
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "title must not be empty")
	case errors.Is(err, view.ErrInvalidOption), errors.Is(err, errBadID):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
