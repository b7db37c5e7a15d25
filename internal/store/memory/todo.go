package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store"
)

func (s *Store) CreateTodo(_ context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	todo.ID = uuid.NewString()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	s.todos[todo.ID] = *todo
	return nil
}

func (s *Store) GetTodoByID(_ context.Context, userID, id string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpdateTodo(_ context.Context, userID, id string, patch store.TodoPatch) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, store.ErrNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	s.todos[id] = t
	return &t, nil
}

func (s *Store) DeleteTodo(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

func (s *Store) ListTodos(_ context.Context, userID string, filter model.TodoFilter, take int, cursor string) (store.TodoPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cursorTodo model.Todo
	if cursor != "" {
		t, ok := s.todos[cursor]
		if !ok || t.UserID != userID {
			return store.TodoPage{}, store.ErrInvalidCursor
		}
		cursorTodo = t
	}

	search := strings.ToLower(filter.Search)

	var items []model.Todo
	for _, t := range s.todos {
		if t.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if cursor != "" && !atOrBefore(t, cursorTodo) {
			continue
		}
		items = append(items, t)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	page := store.TodoPage{Items: items}
	if len(items) > take {
		page.Items = items[:take]
		page.NextCursor = items[take].ID
	}

	return page, nil
}

// atOrBefore reports whether t sorts at or after the cursor position
// in the newest-first order, i.e. whether the page resuming at the
// cursor still includes it.
func atOrBefore(t, cursor model.Todo) bool {
	if t.CreatedAt.Before(cursor.CreatedAt) {
		return true
	}
	return t.CreatedAt.Equal(cursor.CreatedAt) && t.ID <= cursor.ID
}
