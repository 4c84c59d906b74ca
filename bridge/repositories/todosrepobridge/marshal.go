package todosrepobridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/validation"
)

// MarshalToBridge converts a core todo to its wire shape.
func MarshalToBridge(todo todosrepo.Todo) Todo {
	return Todo{
		ID:          todo.TodoID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      todo.Status,
		Priority:    todo.Priority,
		Theme:       todo.Theme,
		DueDate:     validation.StringPtrIfNotEmpty(validation.FormatTimePtrToString(todo.DueDate)),
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}

// MarshalListToBridge converts a list of core todos to wire shapes.
func MarshalListToBridge(todos []todosrepo.Todo) []Todo {
	bridgeTodos := make([]Todo, len(todos))
	for i, todo := range todos {
		bridgeTodos[i] = MarshalToBridge(todo)
	}
	return bridgeTodos
}

var statusTitles = map[string]string{
	todosrepo.StatusTodo:       "To Do",
	todosrepo.StatusInProgress: "In Progress",
	todosrepo.StatusReview:     "Review",
	todosrepo.StatusDone:       "Done",
}

// MarshalBoardToBridge groups todos into board columns, one per status in
// board order, keeping the incoming order within each column.
func MarshalBoardToBridge(todos []todosrepo.Todo) Board {
	byStatus := make(map[string][]Todo, len(todosrepo.Statuses))
	for _, todo := range todos {
		byStatus[todo.Status] = append(byStatus[todo.Status], MarshalToBridge(todo))
	}

	board := Board{
		Columns:    make([]BoardColumn, 0, len(todosrepo.Statuses)),
		TotalTodos: len(todos),
	}
	for _, status := range todosrepo.Statuses {
		column := byStatus[status]
		if column == nil {
			column = []Todo{}
		}
		board.Columns = append(board.Columns, BoardColumn{
			Status: status,
			Title:  statusTitles[status],
			Todos:  column,
			Count:  len(column),
		})
	}

	return board
}

// MarshalCreateToRepository converts a create body to repository input. An
// unparseable due date is rejected here so the repository only ever sees
// real times.
func MarshalCreateToRepository(input CreateTodoInput) (todosrepo.CreateTodo, error) {
	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return todosrepo.CreateTodo{}, err
	}

	return todosrepo.CreateTodo{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Theme:       input.Theme,
		DueDate:     dueDate,
	}, nil
}

// MarshalUpdateToRepository converts an update body to repository input.
// A dueDate of JSON null clears the stored due date; an absent dueDate
// leaves it alone.
func MarshalUpdateToRepository(input UpdateTodoInput) (todosrepo.UpdateTodo, error) {
	update := todosrepo.UpdateTodo{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Theme:       input.Theme,
	}

	switch {
	case len(input.DueDate) == 0:
	case string(input.DueDate) == "null":
		update.ClearDueDate = true
	default:
		var raw string
		if err := json.Unmarshal(input.DueDate, &raw); err != nil {
			return todosrepo.UpdateTodo{}, fmt.Errorf("invalid dueDate format: %s", input.DueDate)
		}
		dueDate, err := parseDueDate(&raw)
		if err != nil {
			return todosrepo.UpdateTodo{}, err
		}
		update.DueDate = dueDate
	}

	return update, nil
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	t, err := validation.ParseFlexibleDate(*raw)
	if err != nil {
		return nil, fmt.Errorf("invalid dueDate format: %s", *raw)
	}

	return &t, nil
}
