package todosrepobridge

import (
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/infrastructure/web"
	"github.com/taskboard/taskboard/sdk/logger"
)

// Config holds configuration for the Todo bridge.
type Config struct {
	Log        *logger.Logger
	Repository *todosrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Todo.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	// Static segments before the wildcard so "status" and "board" never
	// parse as a todo id.
	group.GET("/todos/status", b.httpStatusList, cfg.Middleware...)
	group.GET("/todos/board", b.httpBoard, cfg.Middleware...)

	group.GET("/todos", b.httpList, cfg.Middleware...)
	group.GET("/todos/{todo_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/todos", b.httpCreate, cfg.Middleware...)
	group.PUT("/todos/{todo_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/todos/{todo_id}", b.httpDelete, cfg.Middleware...)

	// The status listing also answers at the collection root for clients
	// that predate the /todos/status path.
	group.GET("/status", b.httpStatusList, cfg.Middleware...)
}
