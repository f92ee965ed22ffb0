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

const (
	regName = iota
	regEmail
	regPassword
	regRisk
	regGoal
	regSectors
)

var registerLabels = []string{"Name", "Email", "Password", "Risk tolerance", "Investment goal", "Sectors"}

// RegisterModel is the Bubble Tea model for the sign-up screen. Besides the
// account fields it collects the optional investment preferences that seed
// the new user's profile.
type RegisterModel struct {
	ctx       context.Context
	store     *session.Store
	validator validators.Validator

	focusable
	errMsg string
}

// NewRegisterModel creates a [RegisterModel] with the name field focused.
func NewRegisterModel(ctx context.Context, store *session.Store) *RegisterModel {
	fields := []textinput.Model{
		newInput("name", 80),
		newInput("you@example.com", 254),
		newPasswordInput(),
		newInput("low / medium / high", 16),
		newInput("e.g. retirement", 120),
		newInput("comma separated, e.g. Banking, Energy", 256),
	}
	fields[regName].Focus()

	return &RegisterModel{
		ctx:       ctx,
		store:     store,
		validator: validators.NewAuthValidator(),
		focusable: focusable{inputs: fields},
	}
}

// Init implements [tea.Model].
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Key handling mirrors [LoginModel].
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResult); ok && result.op == session.OpRegister {
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

			req, err := m.request()
			if err == nil {
				err = m.validator.Validate(m.ctx, req, validators.FormFields...)
			}
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}

			m.errMsg = ""
			return m, m.cmdRegister(req)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) request() (models.RegisterRequest, error) {
	risk, ok := models.ParseRiskTolerance(m.inputs[regRisk].Value())
	if !ok {
		return models.RegisterRequest{}, validators.ErrInvalidRiskTolerance
	}

	return models.RegisterRequest{
		Name:             strings.TrimSpace(m.inputs[regName].Value()),
		Email:            strings.TrimSpace(m.inputs[regEmail].Value()),
		Password:         m.inputs[regPassword].Value(),
		RiskTolerance:    risk,
		InvestmentGoal:   strings.TrimSpace(m.inputs[regGoal].Value()),
		PreferredSectors: splitSectors(m.inputs[regSectors].Value()),
	}, nil
}

// View implements [tea.Model].
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(renderForm(registerLabels, m.inputs))

	if m.store.State().IsLoading {
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("[Creating account...]"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	store := m.store

	return func() tea.Msg {
		_, err := store.Register(ctx, req)
		return authResult{op: session.OpRegister, err: err}
	}
}

func splitSectors(raw string) []string {
	sectors := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sectors = append(sectors, s)
		}
	}
	return sectors
}
