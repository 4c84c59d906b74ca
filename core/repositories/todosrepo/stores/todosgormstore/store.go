// Package todosgormstore implements a Storer backed by SQLite through GORM.
// It gives single-binary deployments a durable store without a database
// server; the pure-Go sqlite driver keeps the build cgo-free.
package todosgormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/environment"
	"github.com/taskboard/taskboard/sdk/logger"
)

// Options configures the sqlite store from the environment.
type Options struct {
	Path string `env:"STORE_SQLITE_PATH" default:"taskboard.db"`
}

// todoRecord is the persistence shape. Timestamps are managed by the
// repository, so GORM's auto-tracking stays off.
type todoRecord struct {
	TodoID      string     `gorm:"primaryKey;column:todo_id"`
	Title       string     `gorm:"not null"`
	Description *string    `gorm:"size:1000"`
	Status      string     `gorm:"not null;index"`
	Priority    string     `gorm:"not null"`
	Theme       string     `gorm:"not null"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`
}

func (todoRecord) TableName() string {
	return "todos"
}

type Store struct {
	log *logger.Logger
	db  *gorm.DB
}

// NewStore opens a sqlite database at path, creating the parent directory
// and migrating the todos table as needed.
func NewStore(log *logger.Logger, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&todoRecord{}); err != nil {
		return nil, fmt.Errorf("migrating todos table: %w", err)
	}

	return &Store{log: log, db: db}, nil
}

// NewStoreFromEnv builds a Store from prefixed environment variables.
func NewStoreFromEnv(log *logger.Logger, prefix string) (*Store, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return nil, fmt.Errorf("parsing sqlite store environment: %w", err)
	}
	return NewStore(log, opts.Path)
}

// Close releases the underlying sql.DB.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) List(ctx context.Context, filter todosrepo.TodoFilter) ([]todosrepo.Todo, error) {
	var records []todoRecord

	tx := applyFilter(s.db.WithContext(ctx), filter).
		Order("created_at").Order("todo_id").
		Find(&records)
	if tx.Error != nil {
		return nil, fmt.Errorf("listing todos: %w", tx.Error)
	}

	todos := make([]todosrepo.Todo, len(records))
	for i, rec := range records {
		todos[i] = toCoreTodo(rec)
	}

	return todos, nil
}

func (s *Store) GetByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	var rec todoRecord

	tx := s.db.WithContext(ctx).First(&rec, "todo_id = ?", todoID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return todosrepo.Todo{}, todosrepo.ErrTodoNotFound
		}
		return todosrepo.Todo{}, fmt.Errorf("getting todo %s: %w", todoID, tx.Error)
	}

	return toCoreTodo(rec), nil
}

func (s *Store) Create(ctx context.Context, todo todosrepo.Todo) error {
	rec := toRecord(todo)

	if tx := s.db.WithContext(ctx).Create(&rec); tx.Error != nil {
		return fmt.Errorf("creating todo %s: %w", todo.TodoID, tx.Error)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, todo todosrepo.Todo) error {
	rec := toRecord(todo)

	// Save with Select("*") writes every column including nils, so clearing
	// a description or due date sticks.
	tx := s.db.WithContext(ctx).
		Model(&todoRecord{}).
		Where("todo_id = ?", todo.TodoID).
		Select("*").
		Updates(&rec)
	if tx.Error != nil {
		return fmt.Errorf("updating todo %s: %w", todo.TodoID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return todosrepo.ErrTodoNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, todoID string) error {
	tx := s.db.WithContext(ctx).Delete(&todoRecord{}, "todo_id = ?", todoID)
	if tx.Error != nil {
		return fmt.Errorf("deleting todo %s: %w", todoID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return todosrepo.ErrTodoNotFound
	}

	return nil
}

// applyFilter chains a Where clause per set filter field.
func applyFilter(tx *gorm.DB, filter todosrepo.TodoFilter) *gorm.DB {
	if filter.ID != nil {
		tx = tx.Where("todo_id = ?", *filter.ID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		tx = tx.Where("priority = ?", *filter.Priority)
	}
	if filter.Theme != nil {
		tx = tx.Where("theme = ?", *filter.Theme)
	}
	if filter.Search != nil && *filter.Search != "" {
		term := "%" + escapeLike(*filter.Search) + "%"
		tx = tx.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\'`, term, term)
	}
	if filter.CreatedAfter != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.UpdatedAfter != nil {
		tx = tx.Where("updated_at >= ?", *filter.UpdatedAfter)
	}
	if filter.UpdatedBefore != nil {
		tx = tx.Where("updated_at <= ?", *filter.UpdatedBefore)
	}
	if filter.DueFrom != nil {
		tx = tx.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		tx = tx.Where("due_date <= ?", *filter.DueTo)
	}

	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so the search term matches
// literally, the same way the in-process filter does.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func toRecord(todo todosrepo.Todo) todoRecord {
	return todoRecord{
		TodoID:      todo.TodoID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      todo.Status,
		Priority:    todo.Priority,
		Theme:       todo.Theme,
		DueDate:     todo.DueDate,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

func toCoreTodo(rec todoRecord) todosrepo.Todo {
	return todosrepo.Todo{
		TodoID:      rec.TodoID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Priority:    rec.Priority,
		Theme:       rec.Theme,
		DueDate:     rec.DueDate,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
