// Package todosmemstore implements an in-memory Storer. It backs tests and
// the ephemeral store driver; nothing survives a restart.
package todosmemstore

import (
	"context"
	"sync"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
)

// Store keeps todos in a slice so listing preserves insertion order, the
// same ordering a snapshot file would produce.
type Store struct {
	mu    sync.Mutex
	todos []todosrepo.Todo
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) List(ctx context.Context, filter todosrepo.TodoFilter) ([]todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filter.Apply(s.todos), nil
}

func (s *Store) GetByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, todo := range s.todos {
		if todo.TodoID == todoID {
			return todo, nil
		}
	}

	return todosrepo.Todo{}, todosrepo.ErrTodoNotFound
}

func (s *Store) Create(ctx context.Context, todo todosrepo.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = append(s.todos, todo)
	return nil
}

func (s *Store) Update(ctx context.Context, todo todosrepo.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].TodoID == todo.TodoID {
			s.todos[i] = todo
			return nil
		}
	}

	return todosrepo.ErrTodoNotFound
}

func (s *Store) Delete(ctx context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].TodoID == todoID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}

	return todosrepo.ErrTodoNotFound
}
