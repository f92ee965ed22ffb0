package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/session"
	"github.com/MKhiriev/bullbear-client/internal/store"
	"github.com/MKhiriev/bullbear-client/internal/tui"
	"github.com/MKhiriev/bullbear-client/internal/workers"
	"github.com/MKhiriev/bullbear-client/models"
)

type App struct {
	store   *session.Store
	slots   store.SlotStorage
	ui      UI
	workers *workers.Workers

	logger *logger.Logger
}

// NewApp builds the whole client from cfg: slot storage, auth backend,
// session store (hydrated from storage), the expiry worker and the TUI.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	slots, err := store.NewSlotStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create slot storage: %w", err)
	}

	backend, err := newBackend(cfg, log)
	if err != nil {
		_ = slots.Close()
		return nil, err
	}

	persister := session.NewSlotPersister(slots, cfg.Storage.SlotKey, log)
	sessionStore := session.NewStore(ctx, backend, persister, log)

	expiry := session.NewExpiryJob(sessionStore, cfg.Workers.ExpiryCheckInterval, log)

	return newApp(
		sessionStore,
		slots,
		tui.New(sessionStore, buildInfo, log),
		workers.NewWorkers(expiry),
		log,
	), nil
}

func newApp(s *session.Store, slots store.SlotStorage, ui UI, w *workers.Workers, log *logger.Logger) *App {
	return &App{
		store:   s,
		slots:   slots,
		ui:      ui,
		workers: w,
		logger:  log,
	}
}

func newBackend(cfg *config.ClientConfig, log *logger.Logger) (adapter.AuthBackend, error) {
	if cfg.App.Mock {
		log.Info().Msg("using in-process mock auth backend")
		return adapter.NewMockAuthBackend(cfg.App, log), nil
	}

	backend, err := adapter.NewHTTPAuthBackend(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create auth backend: %w", err)
	}
	return backend, nil
}

// Store exposes the session store, e.g. for a headless caller.
func (a *App) Store() *session.Store {
	return a.store
}

// Run starts the background workers, blocks in the UI and then stops the
// workers and closes storage. Leaving the UI on purpose is not an error.
func (a *App) Run(ctx context.Context) error {
	workersCtx, stopWorkers := context.WithCancel(ctx)
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		a.workers.Run(workersCtx)
	}()

	uiErr := a.ui.Run(ctx)

	stopWorkers()
	<-workersDone

	if err := a.slots.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing slot storage")
	}

	if errors.Is(uiErr, tui.ErrUserQuit) || errors.Is(uiErr, context.Canceled) {
		a.logger.Info().Msg("client stopped")
		return nil
	}
	return uiErr
}
