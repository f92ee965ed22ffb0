// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"slices"
	"strings"

	"github.com/MKhiriev/bullbear-client/models"
)

const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldPasswordLength   = "password_length"
	FieldName             = "name"
	FieldRiskTolerance    = "risk_tolerance"
	FieldPreferredSectors = "preferred_sectors"
	FieldInvestment       = "investment_profile"
)

// MinPasswordLength is the shortest password the sign-in forms accept.
const MinPasswordLength = 6

// StoreFields are the checks the session store runs before talking to the
// backend. Password strength is a form concern and is left out.
var StoreFields = []string{
	FieldEmail, FieldPassword, FieldName, FieldRiskTolerance, FieldPreferredSectors, FieldInvestment,
}

// FormFields are the checks the sign-in and sign-up forms run.
var FormFields = append(slices.Clone(StoreFields), FieldPasswordLength)

var knownFields = FormFields

// AuthValidator validates credentials, sign-up requests and profile patches.
type AuthValidator struct{}

// NewAuthValidator returns a [Validator] for the auth request types.
func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate checks obj against the named fields, or against [StoreFields]
// when none are given. Fields that do not apply to obj's type are skipped.
// The first failing rule is returned.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) == 0 {
		fields = StoreFields
	}
	for _, f := range fields {
		if !slices.Contains(knownFields, f) {
			return ErrUnknownField
		}
	}

	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields)
	case *models.Credentials:
		return v.validateCredentials(*value, fields)
	case models.RegisterRequest:
		return v.validateRegister(value, fields)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields)
	case models.UserPatch:
		return v.validatePatch(value, fields)
	case *models.UserPatch:
		return v.validatePatch(*value, fields)
	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateCredentials(c models.Credentials, fields []string) error {
	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(c.Email)
		case FieldPassword:
			err = validatePassword(c.Password)
		case FieldPasswordLength:
			err = validatePasswordLength(c.Password)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *AuthValidator) validateRegister(r models.RegisterRequest, fields []string) error {
	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = validateName(r.Name)
		case FieldEmail:
			err = validateEmail(r.Email)
		case FieldPassword:
			err = validatePassword(r.Password)
		case FieldPasswordLength:
			err = validatePasswordLength(r.Password)
		case FieldRiskTolerance:
			if r.RiskTolerance != "" && !r.RiskTolerance.Valid() {
				err = ErrInvalidRiskTolerance
			}
		case FieldPreferredSectors:
			err = validateSectors(r.PreferredSectors)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *AuthValidator) validatePatch(p models.UserPatch, fields []string) error {
	if p.Empty() {
		return ErrNoFieldsToUpdate
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			if p.Name != nil {
				err = validateName(*p.Name)
			}
		case FieldInvestment:
			err = validateProfile(p.InvestmentProfile)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func validatePasswordLength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

func validateSectors(sectors []string) error {
	for _, s := range sectors {
		if strings.TrimSpace(s) == "" {
			return ErrEmptySector
		}
	}
	return nil
}

func validateProfile(p *models.InvestmentProfile) error {
	if p == nil {
		return nil
	}
	if p.RiskTolerance != "" && !p.RiskTolerance.Valid() {
		return ErrInvalidRiskTolerance
	}
	if p.TotalInvested.IsNegative() {
		return ErrNegativeAmount
	}
	if err := validateSectors(p.PreferredSectors); err != nil {
		return err
	}
	return nil
}
