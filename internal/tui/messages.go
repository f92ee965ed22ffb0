package tui

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload any
}

// StateChanged is sent whenever the session store reports a change.
type StateChanged struct{}

// authResult carries the outcome of a login or register command.
type authResult struct {
	op  string
	err error
}

// profileResult carries the outcome of an update or logout command.
type profileResult struct {
	op  string
	err error
}

type copiedMsg struct {
	err error
}
