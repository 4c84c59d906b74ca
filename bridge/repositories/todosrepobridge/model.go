package todosrepobridge

import "encoding/json"

// Todo is the wire shape of a todo. Timestamps travel as RFC3339 strings.
type Todo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Theme       string  `json:"theme"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateTodoInput is the request body for creating a todo. Everything but
// the title is optional; the repository fills the enum defaults.
type CreateTodoInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Theme       *string `json:"theme"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTodoInput is the request body for a partial update. Absent fields
// leave the stored value untouched. DueDate stays raw so an explicit null,
// which clears the stored due date, is distinguishable from an absent field.
type UpdateTodoInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Priority    *string         `json:"priority"`
	Theme       *string         `json:"theme"`
	DueDate     json.RawMessage `json:"dueDate"`
}

// SuccessResponse acknowledges a delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// BoardColumn is one kanban column: every todo in a status, with a display
// title and count.
type BoardColumn struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Todos  []Todo `json:"todos"`
	Count  int    `json:"count"`
}

// Board is the complete kanban board, one column per status.
type Board struct {
	Columns    []BoardColumn `json:"columns"`
	TotalTodos int           `json:"totalTodos"`
}
