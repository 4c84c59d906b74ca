// Package todosfsstore implements a Storer that keeps the whole collection
// in a single JSON snapshot file. Every read loads the full file and every
// mutation rewrites it. The store takes no file lock: concurrent writers
// race read-modify-write cycles and the last write wins.
package todosfsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/environment"
	"github.com/taskboard/taskboard/sdk/logger"
)

// Options configures the snapshot store from the environment.
type Options struct {
	Path string `env:"STORE_FILE_PATH" default:"todos.json"`
}

type Store struct {
	log  *logger.Logger
	path string
}

func NewStore(log *logger.Logger, path string) *Store {
	return &Store{
		log:  log,
		path: path,
	}
}

// NewStoreFromEnv builds a Store from prefixed environment variables.
func NewStoreFromEnv(log *logger.Logger, prefix string) (*Store, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return nil, fmt.Errorf("parsing fsstore environment: %w", err)
	}
	return NewStore(log, opts.Path), nil
}

func (s *Store) List(ctx context.Context, filter todosrepo.TodoFilter) ([]todosrepo.Todo, error) {
	todos := s.readSnapshot(ctx)
	return filter.Apply(todos), nil
}

func (s *Store) GetByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	todos := s.readSnapshot(ctx)
	for _, todo := range todos {
		if todo.TodoID == todoID {
			return todo, nil
		}
	}
	return todosrepo.Todo{}, todosrepo.ErrTodoNotFound
}

func (s *Store) Create(ctx context.Context, todo todosrepo.Todo) error {
	todos := s.readSnapshot(ctx)
	todos = append(todos, todo)
	return s.writeSnapshot(todos)
}

func (s *Store) Update(ctx context.Context, todo todosrepo.Todo) error {
	todos := s.readSnapshot(ctx)
	for i := range todos {
		if todos[i].TodoID == todo.TodoID {
			todos[i] = todo
			return s.writeSnapshot(todos)
		}
	}
	return todosrepo.ErrTodoNotFound
}

func (s *Store) Delete(ctx context.Context, todoID string) error {
	todos := s.readSnapshot(ctx)
	for i := range todos {
		if todos[i].TodoID == todoID {
			todos = append(todos[:i], todos[i+1:]...)
			return s.writeSnapshot(todos)
		}
	}
	return todosrepo.ErrTodoNotFound
}

// readSnapshot loads the full collection from disk. A missing, unreadable or
// malformed file yields an empty collection so the caller can keep going;
// the next successful write replaces the bad snapshot.
func (s *Store) readSnapshot(ctx context.Context) []todosrepo.Todo {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WarnContext(ctx, "reading todos snapshot", "path", s.path, "err", err)
		}
		return []todosrepo.Todo{}
	}

	var todos []todosrepo.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		s.log.WarnContext(ctx, "parsing todos snapshot, starting empty", "path", s.path, "err", err)
		return []todosrepo.Todo{}
	}

	// Snapshots written before a field existed carry zero values; fill the
	// defaults so every record read back is fully populated.
	for i := range todos {
		if todos[i].Status == "" {
			todos[i].Status = todosrepo.DefaultStatus
		}
		if todos[i].Priority == "" {
			todos[i].Priority = todosrepo.DefaultPriority
		}
		if todos[i].Theme == "" {
			todos[i].Theme = todosrepo.DefaultTheme
		}
	}

	return todos
}

// writeSnapshot replaces the snapshot with the full collection, pretty
// printed so the file stays hand-editable.
func (s *Store) writeSnapshot(todos []todosrepo.Todo) error {
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding todos snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing todos snapshot %s: %w", s.path, err)
	}

	return nil
}
