// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// BullBear development auth server.
//
// All Msg* constants are human-readable message strings that are written into
// the "error" field of HTTP response bodies or into log entries. The client
// shows these strings to the user verbatim, so they are phrased for people.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when required fields are missing
	// or malformed and the backend gave no more specific reason.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied email/password
	// combination does not match an account.
	MsgInvalidLoginPassword = "Invalid email or password"

	// MsgEmailAlreadyRegistered is returned when a registration attempt is
	// rejected because the email is already in use.
	MsgEmailAlreadyRegistered = "Email already registered"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	// MsgRequestCancelled is returned when the caller went away before the
	// backend finished.
	MsgRequestCancelled = "Request cancelled"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "Token is expired or invalid"

	// MsgEmptyAuthorizationHeader is returned when a protected route is
	// called without an "Authorization" header.
	MsgEmptyAuthorizationHeader = "Empty Authorization header"
)
