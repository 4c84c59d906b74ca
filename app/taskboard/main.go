package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/taskboard/taskboard/app/taskboard/config"
	"github.com/taskboard/taskboard/bridge/repositories/todosrepobridge"
	"github.com/taskboard/taskboard/bridge/scaffolding/mid"
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todosfsstore"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todosgormstore"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/taskboard/taskboard/core/repositories/todosrepo/stores/todospgxstore"
	"github.com/taskboard/taskboard/infrastructure/databases/postgresdb"
	"github.com/taskboard/taskboard/infrastructure/web"
	"github.com/taskboard/taskboard/sdk/environment"
	"github.com/taskboard/taskboard/sdk/logger"
	"github.com/taskboard/taskboard/sdk/telemetry"
)

var build = "develop"

const appName = "TASKBOARD"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuring logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	storer, cleanup, err := newStorer(ctx, log)
	if err != nil {
		return fmt.Errorf("configuring store: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	cfg := config.TaskBoard{
		Build:     build,
		Log:       log,
		Telemetry: telemetry.NewTelemetry(),
		Repositories: config.Repositories{
			Todos: todosrepo.NewRepository(log, storer),
		},
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("configuring webserver: %w", err)
	}
	handler, err := webHandler(cfg, server.Config.ApiRoute)
	if err != nil {
		return fmt.Errorf("configuring handlers: %w", err)
	}
	server.Handler = handler

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig.String())
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig.String())

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// newStorer picks the storage backend from TASKBOARD_STORE_DRIVER. The file
// driver is the default; memory suits demos, sqlite single-binary installs,
// postgres shared deployments.
func newStorer(ctx context.Context, log *logger.Logger) (todosrepo.Storer, func(), error) {
	driver := strings.ToLower(environment.GetPrefixEnvOrDefault(appName, "STORE_DRIVER", "file"))

	switch driver {
	case "file":
		store, err := todosfsstore.NewStoreFromEnv(log, appName)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case "memory":
		return todosmemstore.NewStore(), nil, nil

	case "sqlite":
		store, err := todosgormstore.NewStoreFromEnv(log, appName)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "postgres":
		pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, nil, err
		}
		if err := postgresdb.StatusCheck(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("status check database: %w", err)
		}
		return todospgxstore.NewStore(log, pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func webHandler(cfg config.TaskBoard, apiRoute string) (http.Handler, error) {
	handler, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Log.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Log, cfg.Telemetry),
			mid.Errors(cfg.Log),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	handler.GET("/liveness", liveness(cfg.Build))

	bridgeCfg := todosrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Repositories.Todos,
	}

	todosrepobridge.AddHttpRoutes(handler.Group(apiRoute), bridgeCfg)

	// Unversioned alias for clients that call /api directly.
	if apiRoute != "/api" {
		todosrepobridge.AddHttpRoutes(handler.Group("/api"), bridgeCfg)
	}

	return handler, nil
}

func liveness(build string) web.HandlerFunc {
	type info struct {
		Status string `json:"status"`
		Build  string `json:"build"`
		Host   string `json:"host"`
	}

	return func(ctx context.Context, r *http.Request) web.Encoder {
		host, _ := os.Hostname()
		return web.NewJSONResponse(info{
			Status: "ok",
			Build:  build,
			Host:   host,
		})
	}
}
