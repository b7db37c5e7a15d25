package model

import "time"

// Todo represents a todo item in the database. UserID is set at
// creation and never changes afterwards.
type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateTodoRequest represents a partial todo update. Pointer fields
// distinguish "not provided" from zero values.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// TodoFilter narrows a todo listing. Search matches the title by
// case-insensitive substring; Completed, when set, is an exact match.
type TodoFilter struct {
	Search    string `json:"search,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}

// TodoResponse represents a todo in API responses.
type TodoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoListResponse represents one page of a todo listing. NextCursor
// is absent when the listing is exhausted.
type TodoListResponse struct {
	Items      []TodoResponse `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// DeleteTodoResponse represents the result of a todo deletion.
type DeleteTodoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ToResponse converts a Todo to its API representation.
func (t *Todo) ToResponse() TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
