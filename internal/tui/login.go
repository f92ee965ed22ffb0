// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bullbear-client/internal/session"
	"github.com/MKhiriev/bullbear-client/internal/validators"
	"github.com/MKhiriev/bullbear-client/models"
)

// LoginModel is the Bubble Tea model for the sign-in screen. It renders email
// and password inputs and runs [session.Store.Login] as a command on submit.
// The root model switches to the profile page once the store reports an
// authenticated session.
type LoginModel struct {
	ctx       context.Context
	store     *session.Store
	validator validators.Validator

	focusable
	errMsg string
}

// NewLoginModel creates a [LoginModel] with the email field focused.
func NewLoginModel(ctx context.Context, store *session.Store) *LoginModel {
	email := newInput("you@example.com", 254)
	email.Focus()

	return &LoginModel{
		ctx:       ctx,
		store:     store,
		validator: validators.NewAuthValidator(),
		focusable: focusable{inputs: []textinput.Model{email, newPasswordInput()}},
	}
}

// Init implements [tea.Model].
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - authResult: shows the failure reason, if any.
//   - esc: back to the menu.
//   - tab / shift+tab: next / previous input.
//   - enter: runs the form checks and dispatches the login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResult); ok && result.op == session.OpLogin {
		if result.err != nil && !persistenceWarning(result.err) {
			m.errMsg = humanizeError(result.err)
		} else {
			m.errMsg = ""
			m.reset()
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.store.State().IsLoading {
				return m, nil
			}

			creds := models.Credentials{
				Email:    strings.TrimSpace(m.inputs[0].Value()),
				Password: m.inputs[1].Value(),
			}
			if err := m.validator.Validate(m.ctx, creds, validators.FieldEmail, validators.FieldPassword, validators.FieldPasswordLength); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}

			m.errMsg = ""
			return m, m.cmdLogin(creds)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(renderForm([]string{"Email", "Password"}, m.inputs))

	if m.store.State().IsLoading {
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("[Signing in...]"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	store := m.store

	return func() tea.Msg {
		_, err := store.Login(ctx, creds.Email, creds.Password)
		return authResult{op: session.OpLogin, err: err}
	}
}
