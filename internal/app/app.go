package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"example.com/userdir/internal/config"
	httphandlers "example.com/userdir/internal/handler/http"
	"example.com/userdir/internal/repository"
	"example.com/userdir/internal/storage/jsonfile"
	"example.com/userdir/internal/storage/memory"
	"example.com/userdir/internal/usecase"
	"example.com/userdir/internal/watch"
)

type App struct {
	Config  config.Config
	Router  http.Handler
	Store   repository.UserRepository
	Logger  *slog.Logger
	watcher *watch.FileWatcher
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	switch cfg.Storage {
	case config.StorageMemory:
		a.Store = memory.New()
	default:
		store, err := jsonfile.Open(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("open directory: %w", err)
		}
		a.Store = store
		if cfg.Watch {
			w, err := watch.New(store.Path(), func() { a.reload(store) }, logger)
			if err != nil {
				return nil, err
			}
			a.watcher = w
		}
	}
	a.Router = httphandlers.New(usecase.NewUserService(a.Store), logger, cfg.MaxBodyBytes)
	return a, nil
}

// Run starts background work and returns immediately.
func (a *App) Run(ctx context.Context) {
	if a.watcher != nil {
		go a.watcher.Run(ctx)
	}
}

func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

func (a *App) reload(store *jsonfile.Store) {
	if err := store.Reload(); err != nil {
		a.Logger.Error("reload directory failed, keeping current contents", "path", store.Path(), "err", err)
		return
	}
	a.Logger.Debug("directory reloaded", "path", store.Path())
}
