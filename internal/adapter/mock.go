package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/utils"
	"github.com/MKhiriev/bullbear-client/models"
	"golang.org/x/crypto/bcrypt"
)

// MockIssuer is the "iss" claim of tokens minted by the mock backend.
const MockIssuer = "bullbear-mock"

type mockAccount struct {
	user models.User
	// nil for accounts created implicitly by a login
	passwordHash []byte
}

type mockAuthBackend struct {
	mu       sync.Mutex
	accounts map[string]mockAccount

	ids        *utils.UUIDGenerator
	signKey    string
	tokenTTL   time.Duration
	latency    time.Duration
	bcryptCost int
	now        func() time.Time

	logger *logger.Logger
}

// MockOption tunes the mock backend.
type MockOption func(*mockAuthBackend)

// WithClock overrides the time source used for creation dates and token
// expiry.
func WithClock(now func() time.Time) MockOption {
	return func(m *mockAuthBackend) { m.now = now }
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) MockOption {
	return func(m *mockAuthBackend) { m.bcryptCost = cost }
}

// NewMockAuthBackend constructs an in-process [AuthBackend].
//
// Login with an unknown email always succeeds and yields a principal named
// after the local part of the address. Accounts are keyed case-insensitively,
// but the returned user carries the email exactly as it was passed in. Accounts created through Register are
// remembered with a bcrypt password hash, so later logins check the password
// and a second registration of the same email is rejected with
// [ErrConflict]. Tokens are HS256 JWTs signed with appCfg.TokenSignKey.
func NewMockAuthBackend(appCfg config.App, log *logger.Logger, opts ...MockOption) AuthBackend {
	m := &mockAuthBackend{
		accounts:   make(map[string]mockAccount),
		ids:        utils.NewUUIDGenerator(),
		signKey:    appCfg.TokenSignKey,
		tokenTTL:   appCfg.MockTokenTTL,
		latency:    appCfg.MockLatency,
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     log,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tokenTTL <= 0 {
		m.tokenTTL = 24 * time.Hour
	}
	return m
}

// Login implements [AuthBackend].
func (m *mockAuthBackend) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	if err := m.wait(ctx); err != nil {
		return models.AuthResult{}, err
	}

	email := strings.TrimSpace(creds.Email)
	if email == "" {
		return models.AuthResult{}, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	key := accountKey(email)

	m.mu.Lock()
	acc, found := m.accounts[key]
	if !found {
		acc = mockAccount{user: models.User{
			ID:        m.ids.Generate(),
			Email:     email,
			Name:      localPart(email),
			CreatedAt: m.now(),
		}}
		m.accounts[key] = acc
	}
	m.mu.Unlock()

	if acc.passwordHash != nil {
		if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)); err != nil {
			m.logger.Debug().Str("email", email).Msg("mock login rejected")
			return models.AuthResult{}, fmt.Errorf("%w: Invalid email or password", ErrUnauthorized)
		}
	}

	// the account is keyed case-insensitively, the user echoes the address as typed
	user := acc.user
	user.Email = email
	if acc.passwordHash == nil {
		user.Name = localPart(email)
	}
	return m.issue(user)
}

// Register implements [AuthBackend].
func (m *mockAuthBackend) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	if err := m.wait(ctx); err != nil {
		return models.AuthResult{}, err
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Name) == "" || req.Password == "" {
		return models.AuthResult{}, fmt.Errorf("%w: name, email and password are required", ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.bcryptCost)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	sectors := req.PreferredSectors
	if sectors == nil {
		sectors = []string{}
	}
	user := models.User{
		ID:        m.ids.Generate(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: m.now(),
		InvestmentProfile: &models.InvestmentProfile{
			RiskTolerance:    req.RiskTolerance,
			PreferredSectors: append([]string(nil), sectors...),
			InvestmentGoal:   req.InvestmentGoal,
		},
	}

	m.mu.Lock()
	if _, taken := m.accounts[accountKey(email)]; taken {
		m.mu.Unlock()
		return models.AuthResult{}, fmt.Errorf("%w: Email already registered", ErrConflict)
	}
	m.accounts[accountKey(email)] = mockAccount{user: user, passwordHash: hash}
	m.mu.Unlock()

	m.logger.Info().Str("user_id", user.ID).Msg("mock account registered")
	return m.issue(user)
}

func (m *mockAuthBackend) issue(user models.User) (models.AuthResult, error) {
	token, err := utils.GenerateJWTToken(MockIssuer, user.ID, m.now(), m.tokenTTL, m.signKey)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	return models.AuthResult{User: user.Clone(), Token: token}, nil
}

func (m *mockAuthBackend) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func accountKey(email string) string {
	return strings.ToLower(email)
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
