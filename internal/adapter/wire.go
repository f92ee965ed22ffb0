package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/bullbear-client/models"
	"github.com/shopspring/decimal"
)

// wireID accepts both string and numeric user ids.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id must be a string or a number: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

type wireProfile struct {
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalReturns     decimal.Decimal `json:"total_returns"`
	RiskTolerance    string          `json:"risk_tolerance"`
	PreferredSectors []string        `json:"preferred_sectors"`
	InvestmentGoal   string          `json:"investment_goal"`
}

type wireUser struct {
	ID                wireID       `json:"id"`
	Email             string       `json:"email"`
	Name              string       `json:"name"`
	CreatedAt         time.Time    `json:"created_at"`
	InvestmentProfile *wireProfile `json:"investment_profile"`
}

type authResponse struct {
	User        *wireUser `json:"user"`
	Token       string    `json:"token"`
	AccessToken string    `json:"access_token"`
}

func (w wireUser) toModel() models.User {
	u := models.User{
		ID:        string(w.ID),
		Email:     w.Email,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}

	if w.InvestmentProfile != nil {
		// unknown tolerance values from the backend are dropped rather than
		// failing the whole login
		risk, _ := models.ParseRiskTolerance(w.InvestmentProfile.RiskTolerance)
		sectors := w.InvestmentProfile.PreferredSectors
		if sectors == nil {
			sectors = []string{}
		}
		u.InvestmentProfile = &models.InvestmentProfile{
			TotalInvested:    w.InvestmentProfile.TotalInvested,
			TotalReturns:     w.InvestmentProfile.TotalReturns,
			RiskTolerance:    risk,
			PreferredSectors: sectors,
			InvestmentGoal:   w.InvestmentProfile.InvestmentGoal,
		}
	}

	return u
}

func fromModel(u models.User) wireUser {
	w := wireUser{
		ID:        wireID(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
	if p := u.InvestmentProfile; p != nil {
		w.InvestmentProfile = &wireProfile{
			TotalInvested:    p.TotalInvested,
			TotalReturns:     p.TotalReturns,
			RiskTolerance:    string(p.RiskTolerance),
			PreferredSectors: p.PreferredSectors,
			InvestmentGoal:   p.InvestmentGoal,
		}
	}
	return w
}

// EncodeAuthResponse renders a successful exchange in the backend wire
// format. The development server uses it so both ends share one encoding.
func EncodeAuthResponse(res models.AuthResult) any {
	w := fromModel(res.User)
	return authResponse{User: &w, Token: res.Token}
}
