package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bullbear-client/internal/session"
	"github.com/MKhiriev/bullbear-client/models"
)

// riskCycle is the order in which "r" steps through tolerance levels.
var riskCycle = []models.RiskTolerance{models.RiskLow, models.RiskMedium, models.RiskHigh}

// ProfileModel shows the signed-in user and lets them rename themselves,
// change their risk tolerance, copy their id and sign out.
type ProfileModel struct {
	ctx   context.Context
	store *session.Store

	// writeClipboard is swapped in tests.
	writeClipboard func(string) error

	editing   bool
	nameInput textinput.Model
	status    string
	errMsg    string
}

func NewProfileModel(ctx context.Context, store *session.Store) *ProfileModel {
	return &ProfileModel{
		ctx:            ctx,
		store:          store,
		writeClipboard: clipboard.WriteAll,
		nameInput:      newInput("display name", 80),
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileResult:
		switch {
		case msg.err == nil:
			m.errMsg = ""
			if msg.op == session.OpUpdateUser {
				m.status = "Profile saved"
			}
		case persistenceWarning(msg.err):
			m.errMsg = ""
			m.status = "Saved for this session only"
		default:
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "User id copied"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}

		state := m.store.State()
		if !state.IsAuthenticated {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.edit):
			m.editing = true
			m.status = ""
			m.nameInput.SetValue(state.User.Name)
			m.nameInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.risk):
			return m, m.cmdUpdate(models.UserPatch{InvestmentProfile: nextRisk(state.User.InvestmentProfile)})
		case key.Matches(msg, keys.copyUser):
			return m, m.cmdCopy(state.User.ID)
		case key.Matches(msg, keys.logout):
			return m, m.cmdLogout()
		}
	}

	return m, nil
}

func (m *ProfileModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.editing = false
		m.nameInput.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		m.editing = false
		m.nameInput.Blur()
		name := m.nameInput.Value()
		return m, m.cmdUpdate(models.UserPatch{Name: &name})
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *ProfileModel) View() string {
	state := m.store.State()
	if !state.IsAuthenticated {
		return renderPage("PROFILE", "Signed out", "")
	}
	u := state.User

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString("│ ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	if m.editing {
		row("Name", m.nameInput.View())
	} else {
		row("Name", valueOrDash(u.Name))
	}
	row("Email", u.Email)
	row("User id", u.ID)
	row("Member since", u.CreatedAt.Local().Format(time.DateOnly))

	if p := u.InvestmentProfile; p != nil {
		row("Risk tolerance", valueOrDash(string(p.RiskTolerance)))
		row("Goal", valueOrDash(p.InvestmentGoal))
		row("Sectors", valueOrDash(strings.Join(p.PreferredSectors, ", ")))
		row("Invested (PKR)", p.TotalInvested.StringFixed(2))
		row("Returns (PKR)", p.TotalReturns.StringFixed(2))
	} else {
		row("Risk tolerance", "-")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	help := "e: edit name │ r: risk tolerance │ u: copy id │ l: sign out"
	if m.editing {
		help = "enter: save │ esc: cancel"
	}
	return renderPage("PROFILE", strings.TrimRight(b.String(), "\n"), help)
}

func (m *ProfileModel) cmdUpdate(patch models.UserPatch) tea.Cmd {
	ctx := m.ctx
	store := m.store

	return func() tea.Msg {
		return profileResult{op: session.OpUpdateUser, err: store.UpdateUser(ctx, patch)}
	}
}

func (m *ProfileModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	store := m.store

	return func() tea.Msg {
		return profileResult{op: session.OpLogout, err: store.Logout(ctx)}
	}
}

func (m *ProfileModel) cmdCopy(text string) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

// nextRisk returns a copy of p with the tolerance advanced one step. The
// whole profile is sent because updates replace it wholesale.
func nextRisk(p *models.InvestmentProfile) *models.InvestmentProfile {
	next := p.Clone()
	if next == nil {
		next = &models.InvestmentProfile{PreferredSectors: []string{}}
	}

	idx := -1
	for i, r := range riskCycle {
		if r == next.RiskTolerance {
			idx = i
		}
	}
	next.RiskTolerance = riskCycle[(idx+1)%len(riskCycle)]
	return next
}
