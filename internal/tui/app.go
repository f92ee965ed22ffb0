package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bullbear-client/internal/session"
	"github.com/MKhiriev/bullbear-client/models"
)

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) follows the session: profile while signed in, menu otherwise
// 5) delegates all other messages to the active page
type RootModel struct {
	store *session.Store

	pages       map[string]tea.Model
	current     tea.Model
	currentName string

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens the page matching the current
// session.
func NewRootModel(store *session.Store, pages map[string]tea.Model, buildInfo models.AppBuildInfo) RootModel {
	r := RootModel{
		store:     store,
		pages:     pages,
		buildInfo: buildInfo,
	}
	r.open(r.pageForSession())
	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.currentName == pageMenu {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		if !r.open(nav.Page) {
			return r, nil
		}
		r.showBuildInfo = false

		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	if _, ok := msg.(StateChanged); ok {
		want := r.pageForSession()
		onAuthPage := r.currentName == pageProfile
		if (want == pageProfile) != onAuthPage {
			var notice tea.Msg
			if want == pageMenu {
				notice = menuNotice("Signed out")
			}
			return r, func() tea.Msg { return NavigateTo{Page: want, Payload: notice} }
		}
		// the active page re-reads the store in View
		return r, nil
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.currentName] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("BULLBEAR PK", "", "")
	}
	return r.current.View()
}

func (r *RootModel) open(name string) bool {
	next, ok := r.pages[name]
	if !ok {
		return false
	}
	r.current = next
	r.currentName = name
	return true
}

func (r RootModel) pageForSession() string {
	if r.store.State().IsAuthenticated {
		return pageProfile
	}
	return pageMenu
}
