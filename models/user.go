// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RiskTolerance is the investor's declared appetite for risk.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// ParseRiskTolerance converts a user- or backend-provided value into a
// [RiskTolerance]. Matching is case-insensitive and the backend spelling
// "moderate" is accepted as [RiskMedium]. An empty string yields an empty
// RiskTolerance and ok=true, meaning "not specified".
func ParseRiskTolerance(raw string) (RiskTolerance, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", true
	case "low", "conservative":
		return RiskLow, true
	case "medium", "moderate":
		return RiskMedium, true
	case "high", "aggressive":
		return RiskHigh, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known tolerance levels.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// InvestmentProfile holds the portfolio preferences and totals of a user.
// Amounts are in PKR.
type InvestmentProfile struct {
	TotalInvested    decimal.Decimal `json:"totalInvested"`
	TotalReturns     decimal.Decimal `json:"totalReturns"`
	RiskTolerance    RiskTolerance   `json:"riskTolerance,omitempty"`
	PreferredSectors []string        `json:"preferredSectors"`
	InvestmentGoal   string          `json:"investmentGoal,omitempty"`
}

// Clone returns a deep copy of p. A nil profile clones to nil.
func (p *InvestmentProfile) Clone() *InvestmentProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.PreferredSectors = slices.Clone(p.PreferredSectors)
	return &out
}

// Equal compares two profiles by value. Decimal amounts are compared
// numerically, so "10.50" equals "10.5".
func (p *InvestmentProfile) Equal(other *InvestmentProfile) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	return p.TotalInvested.Equal(other.TotalInvested) &&
		p.TotalReturns.Equal(other.TotalReturns) &&
		p.RiskTolerance == other.RiskTolerance &&
		p.InvestmentGoal == other.InvestmentGoal &&
		slices.Equal(p.PreferredSectors, other.PreferredSectors)
}

// User is one authenticated principal as seen by the client.
//
// ID and CreatedAt are assigned once by whoever authenticated the user and
// never change afterwards. Name and InvestmentProfile are editable through
// [UserPatch].
type User struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	Name              string             `json:"name"`
	CreatedAt         time.Time          `json:"createdAt"`
	InvestmentProfile *InvestmentProfile `json:"investmentProfile,omitempty"`
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	u.InvestmentProfile = u.InvestmentProfile.Clone()
	return u
}

// Equal compares two users by value, using [time.Time.Equal] for CreatedAt.
func (u User) Equal(other User) bool {
	return u.ID == other.ID &&
		u.Email == other.Email &&
		u.Name == other.Name &&
		u.CreatedAt.Equal(other.CreatedAt) &&
		u.InvestmentProfile.Equal(other.InvestmentProfile)
}

// UserPatch lists the user fields that may be changed after creation.
// Nil fields are left untouched. InvestmentProfile replaces the whole
// profile; it is never merged field by field.
type UserPatch struct {
	Name              *string
	InvestmentProfile *InvestmentProfile
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.InvestmentProfile == nil
}

// Apply returns a copy of u with the patch merged in.
func (p UserPatch) Apply(u User) User {
	out := u.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.InvestmentProfile != nil {
		out.InvestmentProfile = p.InvestmentProfile.Clone()
	}
	return out
}
