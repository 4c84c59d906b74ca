// Package commands holds the tooling subcommands that need more than a
// single call into the infrastructure.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todospgxstore"
	"github.com/taskboard/taskboard/sdk/logger"
	"github.com/taskboard/taskboard/sdk/validation"
)

// Seed inserts a handful of sample todos through the repository so the
// records get real ids, defaults, and timestamps. Safe to run repeatedly;
// every run adds a fresh batch.
func Seed(ctx context.Context, log *logger.Logger, pg *pgxpool.Pool) error {
	repository := todosrepo.NewRepository(log, todospgxstore.NewStore(log, pg))

	nextWeek := time.Now().UTC().AddDate(0, 0, 7)
	samples := []todosrepo.CreateTodo{
		{
			Title:       "Review open merge requests",
			Description: validation.StringPtr("Anything older than two days first"),
			Status:      validation.StringPtr(todosrepo.StatusInProgress),
			Priority:    validation.StringPtr(todosrepo.PriorityHigh),
			Theme:       validation.StringPtr(todosrepo.ThemeWork),
		},
		{
			Title:    "Buy groceries",
			Theme:    validation.StringPtr(todosrepo.ThemeShopping),
			Priority: validation.StringPtr(todosrepo.PriorityLow),
		},
		{
			Title:   "Book dentist appointment",
			Theme:   validation.StringPtr(todosrepo.ThemeHealth),
			DueDate: &nextWeek,
		},
		{
			Title:    "Finish reading chapter 4",
			Theme:    validation.StringPtr(todosrepo.ThemeStudy),
			Priority: validation.StringPtr(todosrepo.PriorityMedium),
		},
	}

	for _, sample := range samples {
		todo, err := repository.Create(ctx, sample)
		if err != nil {
			return fmt.Errorf("creating %q: %w", sample.Title, err)
		}
		log.InfoContext(ctx, "seeded todo", "todo_id", todo.TodoID, "title", todo.Title)
	}

	return nil
}
