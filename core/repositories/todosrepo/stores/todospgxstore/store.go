// Package todospgxstore implements a Storer backed by PostgreSQL through
// pgx. The filter translates to a WHERE clause so the database does the
// narrowing; listing orders by created_at with todo_id as tiebreaker, which
// matches insertion order for rows created through the repository.
package todospgxstore

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/infrastructure/databases/postgresdb"
	"github.com/taskboard/taskboard/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context, filter todosrepo.TodoFilter) ([]todosrepo.Todo, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT todo_id, title, description, status, priority, theme, due_date, created_at, updated_at
		FROM todos`)

	args := pgx.NamedArgs{}
	applyFilter(filter, args, &buf)
	buf.WriteString(" ORDER BY created_at, todo_id")

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[todosrepo.Todo])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return todos, nil
}

func (s *Store) GetByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	query := `SELECT todo_id, title, description, status, priority, theme, due_date, created_at, updated_at
		FROM todos
		WHERE todo_id = @todo_id`

	args := pgx.NamedArgs{
		"todo_id": todoID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return todosrepo.Todo{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	todo, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[todosrepo.Todo])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todosrepo.Todo{}, todosrepo.ErrTodoNotFound
		}
		return todosrepo.Todo{}, postgresdb.HandlePgError(err)
	}

	return todo, nil
}

func (s *Store) Create(ctx context.Context, todo todosrepo.Todo) error {
	query := `INSERT INTO todos
		(todo_id, title, description, status, priority, theme, due_date, created_at, updated_at)
		VALUES (@todo_id, @title, @description, @status, @priority, @theme, @due_date, @created_at, @updated_at)`

	if _, err := s.pool.Exec(ctx, query, todoArgs(todo)); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, todo todosrepo.Todo) error {
	query := `UPDATE todos SET
		title = @title,
		description = @description,
		status = @status,
		priority = @priority,
		theme = @theme,
		due_date = @due_date,
		created_at = @created_at,
		updated_at = @updated_at
		WHERE todo_id = @todo_id`

	tag, err := s.pool.Exec(ctx, query, todoArgs(todo))
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return todosrepo.ErrTodoNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, todoID string) error {
	query := `DELETE FROM todos WHERE todo_id = @todo_id`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"todo_id": todoID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return todosrepo.ErrTodoNotFound
	}

	return nil
}

func todoArgs(todo todosrepo.Todo) pgx.NamedArgs {
	return pgx.NamedArgs{
		"todo_id":     todo.TodoID,
		"title":       todo.Title,
		"description": todo.Description,
		"status":      todo.Status,
		"priority":    todo.Priority,
		"theme":       todo.Theme,
		"due_date":    todo.DueDate,
		"created_at":  todo.CreatedAt,
		"updated_at":  todo.UpdatedAt,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyFilter appends a WHERE clause for every set filter field. The search
// term matches title or description case-insensitively; date bounds are
// inclusive, and due-date bounds only match rows that have a due date.
func applyFilter(filter todosrepo.TodoFilter, args pgx.NamedArgs, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		wc = append(wc, "todo_id = @todo_id")
		args["todo_id"] = *filter.ID
	}
	if filter.Status != nil {
		wc = append(wc, "status = @status")
		args["status"] = *filter.Status
	}
	if filter.Priority != nil {
		wc = append(wc, "priority = @priority")
		args["priority"] = *filter.Priority
	}
	if filter.Theme != nil {
		wc = append(wc, "theme = @theme")
		args["theme"] = *filter.Theme
	}
	if filter.Search != nil && *filter.Search != "" {
		// Wildcards in the term are escaped so it matches literally; the
		// default LIKE escape character is backslash.
		wc = append(wc, "(title ILIKE @search OR description ILIKE @search)")
		args["search"] = "%" + likeEscaper.Replace(*filter.Search) + "%"
	}
	if filter.CreatedAfter != nil {
		wc = append(wc, "created_at >= @created_after")
		args["created_after"] = *filter.CreatedAfter
	}
	if filter.CreatedBefore != nil {
		wc = append(wc, "created_at <= @created_before")
		args["created_before"] = *filter.CreatedBefore
	}
	if filter.UpdatedAfter != nil {
		wc = append(wc, "updated_at >= @updated_after")
		args["updated_after"] = *filter.UpdatedAfter
	}
	if filter.UpdatedBefore != nil {
		wc = append(wc, "updated_at <= @updated_before")
		args["updated_before"] = *filter.UpdatedBefore
	}
	if filter.DueFrom != nil {
		wc = append(wc, "due_date >= @due_from")
		args["due_from"] = *filter.DueFrom
	}
	if filter.DueTo != nil {
		wc = append(wc, "due_date <= @due_to")
		args["due_to"] = *filter.DueTo
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
