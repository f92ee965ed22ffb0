// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/session"
)

// humanizeError turns a store error into a line fit for the form footer.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, adapter.ErrServerUnavailable) {
		return "No network or the server is unavailable"
	}
	if errors.Is(err, session.ErrNotAuthenticated) {
		return "You are signed out"
	}

	var verr *session.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	var aerr *session.AuthError
	if errors.As(err, &aerr) {
		return aerr.Reason
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") {
		return "No network or the server is unavailable"
	}
	return err.Error()
}

// persistenceWarning reports whether err only means the session could not
// be saved locally.
func persistenceWarning(err error) bool {
	var perr *session.PersistenceError
	return errors.As(err, &perr)
}
