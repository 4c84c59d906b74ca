package todosfsstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/logger"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return NewStore(log, path), path
}

func testTodo(id, title string) todosrepo.Todo {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return todosrepo.Todo{
		TodoID:    id,
		Title:     title,
		Status:    todosrepo.DefaultStatus,
		Priority:  todosrepo.DefaultPriority,
		Theme:     todosrepo.DefaultTheme,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	if err := store.Create(ctx, testTodo("a", "first")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, testTodo("b", "second")); err != nil {
		t.Fatalf("create: %v", err)
	}

	todos, err := store.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2", len(todos))
	}
	if todos[0].TodoID != "a" || todos[1].TodoID != "b" {
		t.Fatalf("insertion order not preserved: %q, %q", todos[0].TodoID, todos[1].TodoID)
	}

	got, err := store.GetByID(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "second" {
		t.Fatalf("got title %q, want %q", got.Title, "second")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	if err := store.Create(ctx, testTodo("a", "first")); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := testTodo("a", "renamed")
	updated.Status = todosrepo.StatusDone
	if err := store.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "renamed" || got.Status != todosrepo.StatusDone {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "a"); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("second delete: got %v, want ErrTodoNotFound", err)
	}
}

func TestMissingID(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	if _, err := store.GetByID(ctx, "nope"); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("get: got %v, want ErrTodoNotFound", err)
	}
	if err := store.Update(ctx, testTodo("nope", "x")); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("update: got %v, want ErrTodoNotFound", err)
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store, path := testStore(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	todos, err := store.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("got %d todos from corrupt snapshot, want 0", len(todos))
	}

	if err := store.Create(ctx, testTodo("a", "fresh")); err != nil {
		t.Fatalf("create over corrupt snapshot: %v", err)
	}
	todos, err = store.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("got %d todos after rewrite, want 1", len(todos))
	}
}

func TestSnapshotFillsLegacyDefaults(t *testing.T) {
	ctx := context.Background()
	store, path := testStore(t)

	legacy := []byte(`[{"id":"a","title":"old record","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}]`)
	if err := os.WriteFile(path, legacy, 0o644); err != nil {
		t.Fatalf("seeding legacy file: %v", err)
	}

	got, err := store.GetByID(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != todosrepo.DefaultStatus || got.Priority != todosrepo.DefaultPriority || got.Theme != todosrepo.DefaultTheme {
		t.Fatalf("defaults not filled: %+v", got)
	}
}

func TestSnapshotIsPrettyPrinted(t *testing.T) {
	ctx := context.Background()
	store, path := testStore(t)

	if err := store.Create(ctx, testTodo("a", "first")); err != nil {
		t.Fatalf("create: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  ")) {
		t.Fatalf("snapshot is not indented:\n%s", data)
	}
}

func TestCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data", "todos.json")
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	store := NewStore(log, path)

	if err := store.Create(ctx, testTodo("a", "first")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
}
