// Package store defines the persistence contracts for users and todos.
// Implementations live in the mysql and memory subpackages.
package store

import (
	"context"
	"errors"

	"github.com/taskhaven/taskhaven-go/internal/model"
)

var (
	// ErrNotFound covers both a row that does not exist and a row
	// owned by another user; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail signals a registration against a taken email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCursor signals a pagination cursor that does not
	// identify a todo visible to the requesting user.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// TodoPatch carries the fields of a partial todo update. Nil fields
// are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodoPage is one page of a todo listing. NextCursor, when non-empty,
// identifies the first todo of the following page.
type TodoPage struct {
	Items      []model.Todo
	NextCursor string
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// TodoStore persists todos. Every lookup is scoped to the owning
// user: a todo belonging to someone else behaves exactly like a
// missing one.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodoByID(ctx context.Context, userID, id string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, userID, id string, patch TodoPatch) (*model.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) error

	// ListTodos returns up to take todos matching the filter, newest
	// first (created_at, then id, both descending). A cursor resumes
	// the listing at the todo it identifies, inclusive.
	ListTodos(ctx context.Context, userID string, filter model.TodoFilter, take int, cursor string) (TodoPage, error)
}
