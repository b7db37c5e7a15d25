package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store"
)

const (
	maxTitleLength = 100

	defaultListTake = 10
	maxListTake     = 100
)

var (
	ErrTitleRequired = errors.New("title must be between 1 and 100 characters")
	ErrEmptyUpdate   = errors.New("update must change at least one field")
	ErrInvalidTake   = errors.New("take must be between 1 and 100")
	ErrInvalidCursor = errors.New("cursor does not identify a known todo")
	ErrTodoNotFound  = errors.New("todo not found")
)

// TodoService handles todo business logic. Every operation is scoped
// to the calling user's id.
type TodoService struct {
	todos store.TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos store.TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// Create persists a new, uncompleted todo for the user.
func (s *TodoService) Create(ctx context.Context, userID string, req model.CreateTodoRequest) (model.TodoResponse, error) {
	if !validTitle(req.Title) {
		return model.TodoResponse{}, ErrTitleRequired
	}

	todo := &model.Todo{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		return model.TodoResponse{}, err
	}

	return todo.ToResponse(), nil
}

// GetByID returns the user's todo with the given id.
func (s *TodoService) GetByID(ctx context.Context, userID, id string) (model.TodoResponse, error) {
	todo, err := s.todos.GetTodoByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}

	return todo.ToResponse(), nil
}

// Update applies a non-empty subset of {title, description, completed}
// to the user's todo and returns the result.
func (s *TodoService) Update(ctx context.Context, userID, id string, req model.UpdateTodoRequest) (model.TodoResponse, error) {
	if req.Title == nil && req.Description == nil && req.Completed == nil {
		return model.TodoResponse{}, ErrEmptyUpdate
	}
	if req.Title != nil && !validTitle(*req.Title) {
		return model.TodoResponse{}, ErrTitleRequired
	}

	todo, err := s.todos.UpdateTodo(ctx, userID, id, store.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}

	return todo.ToResponse(), nil
}

// Delete removes the user's todo with the given id.
func (s *TodoService) Delete(ctx context.Context, userID, id string) (model.DeleteTodoResponse, error) {
	if err := s.todos.DeleteTodo(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.DeleteTodoResponse{}, ErrTodoNotFound
		}
		return model.DeleteTodoResponse{}, err
	}

	return model.DeleteTodoResponse{
		Success: true,
		Message: "Todo deleted successfully",
	}, nil
}

// List returns one page of the user's todos, newest first. A zero
// take falls back to the default page size.
func (s *TodoService) List(ctx context.Context, userID string, filter model.TodoFilter, take int, cursor string) (model.TodoListResponse, error) {
	if take == 0 {
		take = defaultListTake
	}
	if take < 1 || take > maxListTake {
		return model.TodoListResponse{}, ErrInvalidTake
	}

	page, err := s.todos.ListTodos(ctx, userID, filter, take, cursor)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCursor) {
			return model.TodoListResponse{}, ErrInvalidCursor
		}
		return model.TodoListResponse{}, err
	}

	items := make([]model.TodoResponse, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i].ToResponse()
	}

	return model.TodoListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
	}, nil
}

func validTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= 1 && n <= maxTitleLength
}
