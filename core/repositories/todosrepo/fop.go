package todosrepo

import (
	"strings"
	"time"
)

// TodoFilter holds the available fields a query can be filtered on. Every
// field is optional; a nil field means no constraint on that dimension.
type TodoFilter struct {
	ID            *string
	Status        *string
	Priority      *string
	Theme         *string
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
	DueFrom       *time.Time
	DueTo         *time.Time
}

// Validate rejects unknown enum values. Date bounds arrive already parsed,
// so there is nothing further to check on them.
func (f TodoFilter) Validate() error {
	var fe FieldErrors
	fe = fe.validateEnums(f.Status, f.Priority, f.Theme)
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// Matches reports whether the todo satisfies every active predicate.
func (f TodoFilter) Matches(todo Todo) bool {
	if f.ID != nil && todo.TodoID != *f.ID {
		return false
	}
	if f.Status != nil && todo.Status != *f.Status {
		return false
	}
	if f.Priority != nil && todo.Priority != *f.Priority {
		return false
	}
	if f.Theme != nil && todo.Theme != *f.Theme {
		return false
	}

	// An empty search term matches everything, not nothing.
	if f.Search != nil && *f.Search != "" {
		search := strings.ToLower(*f.Search)
		title := strings.ToLower(todo.Title)
		var description string
		if todo.Description != nil {
			description = strings.ToLower(*todo.Description)
		}
		if !strings.Contains(title, search) && !strings.Contains(description, search) {
			return false
		}
	}

	// All date bounds are inclusive.
	if f.CreatedAfter != nil && todo.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && todo.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	if f.UpdatedAfter != nil && todo.UpdatedAt.Before(*f.UpdatedAfter) {
		return false
	}
	if f.UpdatedBefore != nil && todo.UpdatedAt.After(*f.UpdatedBefore) {
		return false
	}
	if f.DueFrom != nil && (todo.DueDate == nil || todo.DueDate.Before(*f.DueFrom)) {
		return false
	}
	if f.DueTo != nil && (todo.DueDate == nil || todo.DueDate.After(*f.DueTo)) {
		return false
	}

	return true
}

// Apply returns the subset of todos satisfying every active predicate,
// preserving the input order. An empty filter is the identity function.
func (f TodoFilter) Apply(todos []Todo) []Todo {
	filtered := make([]Todo, 0, len(todos))
	for _, todo := range todos {
		if f.Matches(todo) {
			filtered = append(filtered, todo)
		}
	}
	return filtered
}
