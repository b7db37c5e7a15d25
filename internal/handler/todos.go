package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/taskhaven/taskhaven-go/internal/middleware"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/service"
)

// TodoHandler exposes the todos.* procedures. All of them run behind
// the session resolver.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// updateTodoCall is the envelope for todos.updateTodo: the target id
// plus the partial fields to apply.
type updateTodoCall struct {
	ID   string                  `json:"id"`
	Data model.UpdateTodoRequest `json:"data"`
}

// deleteTodoCall is the envelope for todos.deleteTodo.
type deleteTodoCall struct {
	ID string `json:"id"`
}

// HandleCreateTodo handles POST /api/rpc/todos.createTodo requests.
func (h *TodoHandler) HandleCreateTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	var req model.CreateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "title")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGetTodoByID handles GET /api/rpc/todos.getTodoById requests.
// The target id is passed as the "id" query parameter.
func (h *TodoHandler) HandleGetTodoByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeFieldError(w, "VALIDATION_ERROR", "id is required", "id")
		return
	}

	resp, err := h.service.GetByID(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateTodo handles POST /api/rpc/todos.updateTodo requests.
func (h *TodoHandler) HandleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	var req updateTodoCall
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeFieldError(w, "VALIDATION_ERROR", "id is required", "id")
		return
	}

	resp, err := h.service.Update(r.Context(), user.ID, req.ID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "data")
		case errors.Is(err, service.ErrTitleRequired):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "title")
		case errors.Is(err, service.ErrTodoNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteTodo handles POST /api/rpc/todos.deleteTodo requests.
func (h *TodoHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	var req deleteTodoCall
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeFieldError(w, "VALIDATION_ERROR", "id is required", "id")
		return
	}

	resp, err := h.service.Delete(r.Context(), user.ID, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetAllTodos handles GET /api/rpc/todos.getAllTodos requests.
// Query parameters: search, completed, take, cursor.
func (h *TodoHandler) HandleGetAllTodos(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	q := r.URL.Query()
	filter := model.TodoFilter{Search: q.Get("search")}

	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			writeFieldError(w, "VALIDATION_ERROR", "completed must be a boolean", "completed")
			return
		}
		filter.Completed = &completed
	}

	take := 0
	if v := q.Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeFieldError(w, "VALIDATION_ERROR", "take must be an integer", "take")
			return
		}
		take = n
	}

	resp, err := h.service.List(r.Context(), user.ID, filter, take, q.Get("cursor"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTake):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "take")
		case errors.Is(err, service.ErrInvalidCursor):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "cursor")
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
