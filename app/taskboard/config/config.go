// Package config carries the wiring handed from startup to route
// registration.
package config

import (
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/logger"
	"github.com/taskboard/taskboard/sdk/telemetry"
)

// Repositories groups the repositories the routes depend on.
type Repositories struct {
	Todos *todosrepo.Repository
}

// TaskBoard is the application configuration assembled in main.
type TaskBoard struct {
	Build        string
	Log          *logger.Logger
	Telemetry    telemetry.Telemetry
	Repositories Repositories
}
