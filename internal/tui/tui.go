package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/session"
	"github.com/MKhiriev/bullbear-client/models"
)

// ErrUserQuit is returned by Run when the user closes the program.
var ErrUserQuit = errors.New("user quit")

// TUI runs the terminal client against a session store.
type TUI struct {
	store     *session.Store
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New creates a TUI bound to store.
func New(store *session.Store, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{store: store, buildInfo: buildInfo, logger: log}
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.store),
		pageRegister: NewRegisterModel(ctx, t.store),
		pageProfile:  NewProfileModel(ctx, t.store),
	}
}

// Run shows the UI until the user quits or ctx is cancelled. Store changes
// made anywhere, including by background workers, are forwarded to the
// program as [StateChanged].
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(t.store, t.pages(ctx), t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.store.Subscribe(func() {
		program.Send(StateChanged{})
	})
	defer unsubscribe()

	finalModel, runErr := program.Run()
	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Debug().Msg("user quit")
		return ErrUserQuit
	}
	return nil
}
