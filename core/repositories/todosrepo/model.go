// Package todosrepo provides the todo domain model, its validation rules,
// the filter engine, and repository access to todo storage.
package todosrepo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrTodoNotFound is the sentinel every store returns when an id does not
// exist. Callers map it outward; it is never a failure of the store itself.
var ErrTodoNotFound = errors.New("todo not found")

// Status values a todo moves through, in board-column order.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Theme values for grouping todos.
const (
	ThemeWork     = "work"
	ThemePersonal = "personal"
	ThemeShopping = "shopping"
	ThemeHealth   = "health"
	ThemeStudy    = "study"
	ThemeOther    = "other"
)

var (
	Statuses   = []string{StatusTodo, StatusInProgress, StatusReview, StatusDone}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	Themes     = []string{ThemeWork, ThemePersonal, ThemeShopping, ThemeHealth, ThemeStudy, ThemeOther}
)

// Defaults applied on create when the field is absent.
const (
	DefaultStatus   = StatusTodo
	DefaultPriority = PriorityMedium
	DefaultTheme    = ThemeOther
)

// Field constraints.
const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

func ValidStatus(s string) bool   { return slices.Contains(Statuses, s) }
func ValidPriority(s string) bool { return slices.Contains(Priorities, s) }
func ValidTheme(s string) bool    { return slices.Contains(Themes, s) }

// Todo is the main entity type. The json tags define the persisted snapshot
// shape; the db tags drive pgx row scanning.
type Todo struct {
	TodoID      string     `db:"todo_id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      string     `db:"status" json:"status"`
	Priority    string     `db:"priority" json:"priority"`
	Theme       string     `db:"theme" json:"theme"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// CreateTodo contains fields for creating a new todo. The repository assigns
// identity and timestamps and fills enum defaults for nil fields.
type CreateTodo struct {
	Title       string
	Description *string
	Status      *string
	Priority    *string
	Theme       *string
	DueDate     *time.Time
}

// Validate reports every constraint violation as field-level errors.
func (c CreateTodo) Validate() error {
	var fe FieldErrors

	switch n := utf8.RuneCountInString(c.Title); {
	case n == 0:
		fe = fe.Add("title", "Title is required")
	case n > TitleMaxLen:
		fe = fe.Add("title", fmt.Sprintf("Title must be less than %d characters", TitleMaxLen))
	}

	if c.Description != nil && utf8.RuneCountInString(*c.Description) > DescriptionMaxLen {
		fe = fe.Add("description", fmt.Sprintf("Description must be less than %d characters", DescriptionMaxLen))
	}

	fe = fe.validateEnums(c.Status, c.Priority, c.Theme)

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// UpdateTodo contains fields for updating an existing todo. All fields are
// pointers to support partial updates; nil fields are left untouched by the
// merge. ClearDueDate removes the stored due date, which a nil DueDate
// alone cannot express.
type UpdateTodo struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	Theme        *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Validate applies the same per-field constraints as CreateTodo to every
// field that is present.
func (u UpdateTodo) Validate() error {
	var fe FieldErrors

	if u.Title != nil {
		switch n := utf8.RuneCountInString(*u.Title); {
		case n == 0:
			fe = fe.Add("title", "Title is required")
		case n > TitleMaxLen:
			fe = fe.Add("title", fmt.Sprintf("Title must be less than %d characters", TitleMaxLen))
		}
	}

	if u.Description != nil && utf8.RuneCountInString(*u.Description) > DescriptionMaxLen {
		fe = fe.Add("description", fmt.Sprintf("Description must be less than %d characters", DescriptionMaxLen))
	}

	fe = fe.validateEnums(u.Status, u.Priority, u.Theme)

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors collects validation failures. It implements error so callers
// can treat validation failure as a first-class result.
type FieldErrors []FieldError

func (fe FieldErrors) Add(field, err string) FieldErrors {
	return append(fe, FieldError{Field: field, Err: err})
}

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Err)
	}
	return strings.Join(msgs, ", ")
}

func (fe FieldErrors) validateEnums(status, priority, theme *string) FieldErrors {
	if status != nil && !ValidStatus(*status) {
		fe = fe.Add("status", fmt.Sprintf("invalid status %q, must be one of: %s", *status, strings.Join(Statuses, ", ")))
	}
	if priority != nil && !ValidPriority(*priority) {
		fe = fe.Add("priority", fmt.Sprintf("invalid priority %q, must be one of: %s", *priority, strings.Join(Priorities, ", ")))
	}
	if theme != nil && !ValidTheme(*theme) {
		fe = fe.Add("theme", fmt.Sprintf("invalid theme %q, must be one of: %s", *theme, strings.Join(Themes, ", ")))
	}
	return fe
}
