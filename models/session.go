// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Persisted is the half of the session state that survives a restart.
//
// Invariant: IsAuthenticated is true exactly when User is non-nil and Token
// is non-empty.
type Persisted struct {
	User            *User
	IsAuthenticated bool
	Token           string
}

// Consistent reports whether p satisfies the authentication invariant.
func (p Persisted) Consistent() bool {
	if p.IsAuthenticated {
		return p.User != nil && p.Token != ""
	}
	return p.User == nil && p.Token == ""
}

// Clone returns a deep copy of p.
func (p Persisted) Clone() Persisted {
	if p.User != nil {
		u := p.User.Clone()
		p.User = &u
	}
	return p
}

// Equal compares two persisted halves by value.
func (p Persisted) Equal(other Persisted) bool {
	if p.IsAuthenticated != other.IsAuthenticated || p.Token != other.Token {
		return false
	}
	if p.User == nil || other.User == nil {
		return p.User == nil && other.User == nil
	}
	return p.User.Equal(*other.User)
}

// Transient is the in-memory-only half of the session state.
type Transient struct {
	// IsLoading is true while a login or register exchange is in flight.
	IsLoading bool
	// LastError is the human-readable reason of the most recent failed
	// operation, cleared by the next successful one.
	LastError string
}

// SessionState is the full session as observed by views.
type SessionState struct {
	Persisted
	Transient
}

// Anonymous returns the empty persisted state.
func Anonymous() Persisted {
	return Persisted{}
}
