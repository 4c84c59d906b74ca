package todosmemstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
)

func testTodo(id string) todosrepo.Todo {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return todosrepo.Todo{
		TodoID:    id,
		Title:     "todo " + id,
		Status:    todosrepo.DefaultStatus,
		Priority:  todosrepo.DefaultPriority,
		Theme:     todosrepo.DefaultTheme,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, id := range []string{"c", "a", "b"} {
		if err := store.Create(ctx, testTodo(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	todos, err := store.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 3 || todos[0].TodoID != "c" || todos[1].TodoID != "a" || todos[2].TodoID != "b" {
		t.Fatalf("insertion order not preserved: %+v", todos)
	}
}

func TestNotFoundSentinels(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.GetByID(ctx, "x"); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("get: got %v", err)
	}
	if err := store.Update(ctx, testTodo("x")); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("update: got %v", err)
	}
	if err := store.Delete(ctx, "x"); err != todosrepo.ErrTodoNotFound {
		t.Fatalf("delete: got %v", err)
	}
}

func TestConcurrentMutation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			store.Create(ctx, testTodo(id))
			store.List(ctx, todosrepo.TodoFilter{})
		}(i)
	}
	wg.Wait()

	todos, err := store.List(ctx, todosrepo.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 50 {
		t.Fatalf("got %d todos, want 50", len(todos))
	}
}
