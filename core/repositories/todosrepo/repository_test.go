package todosrepo_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/taskboard/taskboard/sdk/logger"
	"github.com/taskboard/taskboard/sdk/validation"
)

func testRepository(t *testing.T) *todosrepo.Repository {
	t.Helper()
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return todosrepo.NewRepository(log, todosmemstore.NewStore())
}

func TestCreateFillsDefaultsAndIdentity(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	todo, err := repo.Create(ctx, todosrepo.CreateTodo{Title: "write the report"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if todo.TodoID == "" {
		t.Fatal("no id assigned")
	}
	if todo.Status != todosrepo.DefaultStatus {
		t.Errorf("status: got %q, want %q", todo.Status, todosrepo.DefaultStatus)
	}
	if todo.Priority != todosrepo.DefaultPriority {
		t.Errorf("priority: got %q, want %q", todo.Priority, todosrepo.DefaultPriority)
	}
	if todo.Theme != todosrepo.DefaultTheme {
		t.Errorf("theme: got %q, want %q", todo.Theme, todosrepo.DefaultTheme)
	}
	if todo.CreatedAt.IsZero() || !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("timestamps: created %v, updated %v", todo.CreatedAt, todo.UpdatedAt)
	}
	if todo.Description != nil || todo.DueDate != nil {
		t.Errorf("optional fields should stay unset: %+v", todo)
	}

	got, err := repo.GetByID(ctx, todo.TodoID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "write the report" {
		t.Fatalf("persisted title: %q", got.Title)
	}
}

func TestCreateHonorsExplicitFields(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	todo, err := repo.Create(ctx, todosrepo.CreateTodo{
		Title:       "prep talk",
		Description: validation.StringPtr("slides and demo"),
		Status:      validation.StringPtr(todosrepo.StatusInProgress),
		Priority:    validation.StringPtr(todosrepo.PriorityUrgent),
		Theme:       validation.StringPtr(todosrepo.ThemeStudy),
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if todo.Status != todosrepo.StatusInProgress || todo.Priority != todosrepo.PriorityUrgent || todo.Theme != todosrepo.ThemeStudy {
		t.Fatalf("explicit enums not honored: %+v", todo)
	}
	if todo.DueDate == nil || !todo.DueDate.Equal(due) {
		t.Fatalf("due date not honored: %v", todo.DueDate)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	_, err := repo.Create(ctx, todosrepo.CreateTodo{
		Title:  "",
		Status: validation.StringPtr("someday"),
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var fe todosrepo.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}

	// Nothing may be persisted on a failed create.
	todos, err := repo.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("failed create persisted %d todos", len(todos))
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	created, err := repo.Create(ctx, todosrepo.CreateTodo{
		Title:       "original",
		Description: validation.StringPtr("keep me"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
		Status: validation.StringPtr(todosrepo.StatusDone),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Status != todosrepo.StatusDone {
		t.Errorf("status not updated: %q", updated.Status)
	}
	if updated.Title != "original" {
		t.Errorf("title changed by unrelated patch: %q", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "keep me" {
		t.Errorf("description changed by unrelated patch: %v", updated.Description)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateMissingTodo(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	_, err := repo.Update(ctx, "no-such-id", todosrepo.UpdateTodo{
		Title: validation.StringPtr("x"),
	})
	if !errors.Is(err, todosrepo.ErrTodoNotFound) {
		t.Fatalf("got %v, want ErrTodoNotFound", err)
	}
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	created, err := repo.Create(ctx, todosrepo.CreateTodo{Title: "stable"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = repo.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
		Priority: validation.StringPtr("asap"),
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	got, err := repo.GetByID(ctx, created.TodoID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Priority != todosrepo.DefaultPriority {
		t.Fatalf("failed update mutated the record: %+v", got)
	}
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	created, err := repo.Create(ctx, todosrepo.CreateTodo{Title: "short-lived"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, created.TodoID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, created.TodoID); !errors.Is(err, todosrepo.ErrTodoNotFound) {
		t.Fatalf("second delete: got %v, want ErrTodoNotFound", err)
	}
}

func TestUpdateClearsDueDate(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, todosrepo.CreateTodo{
		Title:   "dated",
		DueDate: validation.TimePtr(due),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.TodoID, todosrepo.UpdateTodo{ClearDueDate: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("due date not cleared: %v", *updated.DueDate)
	}

	stored, err := repo.GetByID(ctx, created.TodoID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.DueDate != nil {
		t.Fatalf("cleared due date persisted: %v", *stored.DueDate)
	}
}

func TestFilterAndDeleteScenario(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	seed := []todosrepo.CreateTodo{
		{Title: "U1", Priority: validation.StringPtr(todosrepo.PriorityHigh)},
		{Title: "U2", Status: validation.StringPtr(todosrepo.StatusInProgress)},
		{Title: "U3", Status: validation.StringPtr(todosrepo.StatusDone), Priority: validation.StringPtr(todosrepo.PriorityLow)},
	}
	created := make([]todosrepo.Todo, len(seed))
	for i, input := range seed {
		todo, err := repo.Create(ctx, input)
		if err != nil {
			t.Fatalf("create %s: %v", input.Title, err)
		}
		created[i] = todo
	}

	titles := func(todos []todosrepo.Todo) []string {
		out := make([]string, len(todos))
		for i, todo := range todos {
			out[i] = todo.Title
		}
		return out
	}

	byStatus, err := repo.List(ctx, todosrepo.TodoFilter{Status: validation.StringPtr(todosrepo.StatusTodo)})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].Title != "U1" {
		t.Fatalf("status=todo: got %v, want [U1]", titles(byStatus))
	}

	byPriority, err := repo.List(ctx, todosrepo.TodoFilter{Priority: validation.StringPtr(todosrepo.PriorityHigh)})
	if err != nil {
		t.Fatalf("list by priority: %v", err)
	}
	if len(byPriority) != 1 || byPriority[0].Title != "U1" {
		t.Fatalf("priority=high: got %v, want [U1]", titles(byPriority))
	}

	none, err := repo.List(ctx, todosrepo.TodoFilter{
		Status:   validation.StringPtr(todosrepo.StatusTodo),
		Priority: validation.StringPtr(todosrepo.PriorityLow),
	})
	if err != nil {
		t.Fatalf("list by status+priority: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("status=todo priority=low: got %v, want []", titles(none))
	}

	if err := repo.Delete(ctx, created[1].TodoID); err != nil {
		t.Fatalf("delete U2: %v", err)
	}

	remaining, err := repo.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(remaining) != 2 || remaining[0].Title != "U1" || remaining[1].Title != "U3" {
		t.Fatalf("after delete: got %v, want [U1 U3]", titles(remaining))
	}
}

func TestListFiltersThroughStore(t *testing.T) {
	ctx := context.Background()
	repo := testRepository(t)

	for _, title := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, todosrepo.CreateTodo{Title: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	done, err := repo.Create(ctx, todosrepo.CreateTodo{
		Title:  "finished one",
		Status: validation.StringPtr(todosrepo.StatusDone),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	todos, err := repo.List(ctx, todosrepo.TodoFilter{Status: validation.StringPtr(todosrepo.StatusDone)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].TodoID != done.TodoID {
		t.Fatalf("status filter: got %+v", todos)
	}

	_, err = repo.List(ctx, todosrepo.TodoFilter{Status: validation.StringPtr("someday")})
	if err == nil {
		t.Fatal("unknown status in filter should fail validation")
	}
}
