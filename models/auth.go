// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the sign-up form fields. RiskTolerance,
// InvestmentGoal and PreferredSectors are optional and end up in the new
// user's [InvestmentProfile].
type RegisterRequest struct {
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Password         string        `json:"password"`
	RiskTolerance    RiskTolerance `json:"risk_tolerance,omitempty"`
	InvestmentGoal   string        `json:"investment_goal,omitempty"`
	PreferredSectors []string      `json:"preferred_sectors"`
}

// AuthResult is a successful authentication exchange: the principal and the
// opaque session credential issued for it.
type AuthResult struct {
	User  User
	Token string
}
