package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpggio/todolist/internal/config"
	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/listing"
	"github.com/rpggio/todolist/internal/mcp"
	"github.com/rpggio/todolist/internal/memstore"
	"github.com/rpggio/todolist/internal/metrics"
	"github.com/rpggio/todolist/internal/search"
	"github.com/rpggio/todolist/internal/sqlite"
	"github.com/rpggio/todolist/internal/transport"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "todolist",
		Usage:   "to-do list REST and MCP server",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"TODO_CONFIG_PATH"},
				Usage:   "YAML configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return run(c.Context, cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logWriter := io.Writer(os.Stdout)
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	repo, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	todoSvc := todo.NewService(repo, logger)
	listSvc := listing.NewService(todoSvc, search.Options{}, logger)

	if cfg.Store.SeedPath != "" {
		if err := seedStore(ctx, todoSvc, cfg.Store.SeedPath, logger); err != nil {
			return err
		}
	}

	opts := transport.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        cfg.Metrics.Enabled,
	}
	if cfg.Metrics.Enabled {
		prometheus.MustRegister(metrics.NewTodoCollector(todoSvc.Stats))
	}
	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(mcp.Config{
			Todos:   todoSvc,
			Listing: listSvc,
			Version: version,
			Logger:  logger,
		})
		opts.MCP = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				SessionTimeout: 30 * time.Minute,
			},
		)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           transport.NewServer(todoSvc, listSvc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "store", cfg.Store.Driver, "mcp", cfg.MCP.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(ctx, logger, httpServer, errCh)
}

// openStore returns the configured repository and a function releasing it.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (todo.Repository, func(), error) {
	if cfg.Driver != config.DriverSQLite {
		return memstore.New(), func() {}, nil
	}

	if err := ensureDBDir(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	migrated, err := db.MigrateLegacyPriorities(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if migrated > 0 {
		logger.Info("migrated legacy todos", "count", migrated)
	}

	return sqlite.NewTodoRepository(db), func() { _ = db.Close() }, nil
}

// seedStore loads the seed file into an empty store. A store that already
// holds todos is left alone so restarts against SQLite do not duplicate them.
func seedStore(ctx context.Context, svc *todo.Service, path string, logger *slog.Logger) error {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Total > 0 {
		logger.Info("store not empty, skipping seed", "path", path, "total", stats.Total)
		return nil
	}

	items, err := loadSeedFile(path)
	if err != nil {
		return err
	}
	if _, err := svc.Seed(ctx, items); err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	return nil
}

func ensureDBDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
