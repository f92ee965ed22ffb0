// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the authentication backend the session store
// talks to.
//
// The abstraction is [AuthBackend], which decouples the store from the
// transport. Two implementations ship: an HTTP/REST client for the advisory
// API ([NewHTTPAuthBackend]) and a deterministic in-process mock
// ([NewMockAuthBackend]) used for offline development and tests.
//
// Failures are reported with the sentinel values in errors.go wrapped
// together with the backend's human-readable reason, so callers can use
// [errors.Is] regardless of transport and [Reason] to show the message.
package adapter

import (
	"context"

	"github.com/MKhiriev/bullbear-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_backend_mock.go -package=mock

// AuthBackend performs the authentication exchange. A call resolves either
// to a principal plus session token or to an error.
type AuthBackend interface {
	// Login exchanges credentials for a session. Returns an error wrapping
	// [ErrUnauthorized] when the credentials are rejected.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error)

	// Register creates an account and opens a session for it. Returns an
	// error wrapping [ErrConflict] when the email is taken and
	// [ErrBadRequest] when the backend rejects the fields.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
}
