package todosrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/sdk/logger"
	"github.com/taskboard/taskboard/sdk/validation"
)

// Storer defines the complete data storage interface for Todo. Stores
// receive fully formed records; identity, defaults, and timestamps are the
// repository's job so every backend behaves identically.
type Storer interface {
	List(ctx context.Context, filter TodoFilter) ([]Todo, error)
	GetByID(ctx context.Context, todoID string) (Todo, error)
	Create(ctx context.Context, todo Todo) error
	Update(ctx context.Context, todo Todo) error
	Delete(ctx context.Context, todoID string) error
}

// Repository provides access to todo storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Todo repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns the todos satisfying the filter, in store order. An empty
// collection yields an empty result, never an error.
func (r *Repository) List(ctx context.Context, filter TodoFilter) ([]Todo, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	todos, err := r.storer.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// GetByID returns a single todo. Absence surfaces as ErrTodoNotFound.
func (r *Repository) GetByID(ctx context.Context, todoID string) (Todo, error) {
	todo, err := r.storer.GetByID(ctx, todoID)
	if err != nil {
		return Todo{}, fmt.Errorf("get todo %s: %w", todoID, err)
	}

	return todo, nil
}

// Create validates the input, fills enum defaults, assigns identity and
// timestamps, and persists the new todo.
func (r *Repository) Create(ctx context.Context, input CreateTodo) (Todo, error) {
	if err := input.Validate(); err != nil {
		return Todo{}, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	todo := Todo{
		TodoID:      uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      validation.GetStringOrDefault(input.Status, DefaultStatus),
		Priority:    validation.GetStringOrDefault(input.Priority, DefaultPriority),
		Theme:       validation.GetStringOrDefault(input.Theme, DefaultTheme),
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.storer.Create(ctx, todo); err != nil {
		return Todo{}, fmt.Errorf("create todo: %w", err)
	}

	r.log.InfoContext(ctx, "created todo", "todo_id", todo.TodoID)
	return todo, nil
}

// Update merges the patch onto the existing record. Only fields present in
// the patch are overwritten; createdAt is never touched and updatedAt is
// refreshed on every successful merge.
func (r *Repository) Update(ctx context.Context, todoID string, input UpdateTodo) (Todo, error) {
	if err := input.Validate(); err != nil {
		return Todo{}, err
	}

	todo, err := r.storer.GetByID(ctx, todoID)
	if err != nil {
		return Todo{}, fmt.Errorf("get todo %s: %w", todoID, err)
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = input.Description
	}
	if input.Status != nil {
		todo.Status = *input.Status
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.Theme != nil {
		todo.Theme = *input.Theme
	}
	switch {
	case input.ClearDueDate:
		todo.DueDate = nil
	case input.DueDate != nil:
		todo.DueDate = input.DueDate
	}
	todo.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := r.storer.Update(ctx, todo); err != nil {
		return Todo{}, fmt.Errorf("update todo %s: %w", todoID, err)
	}

	r.log.InfoContext(ctx, "updated todo", "todo_id", todo.TodoID)
	return todo, nil
}

// Delete removes a todo. Deleting an id that does not exist reports
// ErrTodoNotFound, including on a repeated delete of the same id.
func (r *Repository) Delete(ctx context.Context, todoID string) error {
	if err := r.storer.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("delete todo %s: %w", todoID, err)
	}

	r.log.InfoContext(ctx, "deleted todo", "todo_id", todoID)
	return nil
}
