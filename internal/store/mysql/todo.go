package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store"
)

const todoColumns = `id, user_id, title, description, completed, created_at, updated_at`

// CreateTodo inserts a new todo, generating its id and setting the
// timestamps on the passed struct.
func (s *Store) CreateTodo(ctx context.Context, todo *model.Todo) error {
	todo.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	todo.CreatedAt = now
	todo.UpdatedAt = now

	query := `INSERT INTO todos (id, user_id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Completed,
		todo.CreatedAt, todo.UpdatedAt)
	return err
}

// GetTodoByID retrieves a todo by id, scoped to the owning user. A
// todo owned by someone else yields store.ErrNotFound.
func (s *Store) GetTodoByID(ctx context.Context, userID, id string) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`

	return scanTodo(s.db.QueryRowContext(ctx, query, id, userID))
}

// UpdateTodo applies a partial update to a todo after an ownership-
// scoped lookup and returns the updated row.
func (s *Store) UpdateTodo(ctx context.Context, userID, id string, patch store.TodoPatch) (*model.Todo, error) {
	todo, err := s.GetTodoByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	todo.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query := `UPDATE todos SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.UpdatedAt,
		id, userID); err != nil {
		return nil, err
	}

	return todo, nil
}

// DeleteTodo removes a todo after an ownership-scoped match.
func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// ListTodos returns one page of todos for a user, newest first with
// id as tie-break. The cursor, when given, must identify a todo
// visible to the user; the listing resumes at that todo inclusive.
func (s *Store) ListTodos(ctx context.Context, userID string, filter model.TodoFilter, take int, cursor string) (store.TodoPage, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`)
	args := []any{userID}

	if filter.Search != "" {
		sb.WriteString(` AND LOWER(title) LIKE ?`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	if filter.Completed != nil {
		sb.WriteString(` AND completed = ?`)
		args = append(args, *filter.Completed)
	}

	if cursor != "" {
		var cursorCreatedAt time.Time
		err := s.db.QueryRowContext(ctx,
			`SELECT created_at FROM todos WHERE id = ? AND user_id = ?`,
			cursor, userID).Scan(&cursorCreatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.TodoPage{}, store.ErrInvalidCursor
			}
			return store.TodoPage{}, err
		}
		sb.WriteString(` AND (created_at < ? OR (created_at = ? AND id <= ?))`)
		args = append(args, cursorCreatedAt, cursorCreatedAt, cursor)
	}

	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, take+1)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return store.TodoPage{}, err
	}
	defer rows.Close()

	var items []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return store.TodoPage{}, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return store.TodoPage{}, err
	}

	page := store.TodoPage{Items: items}
	if len(items) > take {
		next := items[take]
		page.Items = items[:take]
		page.NextCursor = next.ID
	}

	return page, nil
}

func scanTodo(row *sql.Row) (*model.Todo, error) {
	todo := &model.Todo{}
	err := row.Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed,
		&todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

// escapeLike escapes LIKE metacharacters so a search term matches
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
