// Package memory implements the store contracts with in-process maps.
// It mirrors the mysql package's semantics (ordering, cursor
// handling, ownership scoping) and backs the service and handler
// tests.
package memory

import (
	"sync"

	"github.com/taskhaven/taskhaven-go/internal/model"
)

type Store struct {
	mu sync.Mutex

	users map[string]model.User
	todos map[string]model.Todo
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]model.User),
		todos: make(map[string]model.Todo),
	}
}
