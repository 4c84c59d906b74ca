package todosrepo

import (
	"testing"
	"time"

	"github.com/taskboard/taskboard/sdk/validation"
)

func filterFixture() []Todo {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []Todo{
		{
			TodoID:      "a",
			Title:       "Buy groceries",
			Description: validation.StringPtr("milk, eggs, BREAD"),
			Status:      StatusTodo,
			Priority:    PriorityLow,
			Theme:       ThemeShopping,
			CreatedAt:   base,
			UpdatedAt:   base,
		},
		{
			TodoID:    "b",
			Title:     "Review merge request",
			Status:    StatusReview,
			Priority:  PriorityHigh,
			Theme:     ThemeWork,
			DueDate:   validation.TimePtr(base.Add(24 * time.Hour)),
			CreatedAt: base.Add(time.Hour),
			UpdatedAt: base.Add(2 * time.Hour),
		},
		{
			TodoID:    "c",
			Title:     "Book dentist appointment",
			Status:    StatusTodo,
			Priority:  PriorityHigh,
			Theme:     ThemeHealth,
			DueDate:   validation.TimePtr(base.Add(72 * time.Hour)),
			CreatedAt: base.Add(2 * time.Hour),
			UpdatedAt: base.Add(2 * time.Hour),
		},
	}
}

func ids(todos []Todo) []string {
	out := make([]string, len(todos))
	for i, todo := range todos {
		out[i] = todo.TodoID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	todos := filterFixture()

	got := TodoFilter{}.Apply(todos)
	if !equalIDs(ids(got), []string{"a", "b", "c"}) {
		t.Fatalf("empty filter changed the result: %v", ids(got))
	}
}

func TestApplyPredicatesIntersect(t *testing.T) {
	todos := filterFixture()

	// status=todo alone matches a and c; adding priority=high narrows to c.
	f := TodoFilter{
		Status:   validation.StringPtr(StatusTodo),
		Priority: validation.StringPtr(PriorityHigh),
	}
	got := f.Apply(todos)
	if !equalIDs(ids(got), []string{"c"}) {
		t.Fatalf("intersection filter: got %v, want [c]", ids(got))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	todos := filterFixture()

	f := TodoFilter{Priority: validation.StringPtr(PriorityHigh)}
	got := f.Apply(todos)
	if !equalIDs(ids(got), []string{"b", "c"}) {
		t.Fatalf("order not preserved: %v", ids(got))
	}
}

func TestSearchFilter(t *testing.T) {
	todos := filterFixture()

	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match", "merge", []string{"b"}},
		{"description match", "milk", []string{"a"}},
		{"case insensitive", "bread", []string{"a"}},
		{"uppercase term", "DENTIST", []string{"c"}},
		{"empty term matches all", "", []string{"a", "b", "c"}},
		{"no match", "xyzzy", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := TodoFilter{Search: &tc.search}
			got := f.Apply(todos)
			if !equalIDs(ids(got), tc.want) {
				t.Fatalf("search %q: got %v, want %v", tc.search, ids(got), tc.want)
			}
		})
	}
}

func TestDateBoundsInclusive(t *testing.T) {
	todos := filterFixture()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Bounds exactly on b's created_at must include b.
	f := TodoFilter{
		CreatedAfter:  validation.TimePtr(base.Add(time.Hour)),
		CreatedBefore: validation.TimePtr(base.Add(time.Hour)),
	}
	got := f.Apply(todos)
	if !equalIDs(ids(got), []string{"b"}) {
		t.Fatalf("inclusive created bounds: got %v, want [b]", ids(got))
	}

	f = TodoFilter{UpdatedAfter: validation.TimePtr(base.Add(2 * time.Hour))}
	got = f.Apply(todos)
	if !equalIDs(ids(got), []string{"b", "c"}) {
		t.Fatalf("updated_after: got %v, want [b c]", ids(got))
	}
}

func TestDueBoundsSkipUndated(t *testing.T) {
	todos := filterFixture()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// a has no due date, so any due bound excludes it.
	f := TodoFilter{DueFrom: validation.TimePtr(base)}
	got := f.Apply(todos)
	if !equalIDs(ids(got), []string{"b", "c"}) {
		t.Fatalf("due_from: got %v, want [b c]", ids(got))
	}

	f = TodoFilter{DueTo: validation.TimePtr(base.Add(48 * time.Hour))}
	got = f.Apply(todos)
	if !equalIDs(ids(got), []string{"b"}) {
		t.Fatalf("due_to: got %v, want [b]", ids(got))
	}
}

func TestFilterValidate(t *testing.T) {
	if err := (TodoFilter{}).Validate(); err != nil {
		t.Fatalf("empty filter should validate: %v", err)
	}

	good := TodoFilter{Status: validation.StringPtr(StatusDone)}
	if err := good.Validate(); err != nil {
		t.Fatalf("known status should validate: %v", err)
	}

	bad := TodoFilter{Theme: validation.StringPtr("garden")}
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown theme should fail")
	}
}
