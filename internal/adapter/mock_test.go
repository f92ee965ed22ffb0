package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/utils"
	"github.com/MKhiriev/bullbear-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSignKey = "test-sign-key"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestMock(t *testing.T, appCfg config.App) AuthBackend {
	t.Helper()
	if appCfg.TokenSignKey == "" {
		appCfg.TokenSignKey = testSignKey
	}
	return NewMockAuthBackend(appCfg, logger.Nop(),
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestMockLogin_UnknownEmailSucceeds(t *testing.T) {
	m := newTestMock(t, config.App{MockTokenTTL: time.Hour})

	got, err := m.Login(context.Background(), models.Credentials{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "a", got.User.Name)
	assert.Equal(t, "a@x.com", got.User.Email)
	assert.NotEmpty(t, got.User.ID)
	assert.Equal(t, fixedNow, got.User.CreatedAt)

	exp, ok := utils.TokenExpiry(got.Token)
	require.True(t, ok)
	assert.Equal(t, fixedNow.Add(time.Hour).Unix(), exp.Unix())
}

func TestMockLogin_StableIdentity(t *testing.T) {
	m := newTestMock(t, config.App{})

	first, err := m.Login(context.Background(), models.Credentials{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	second, err := m.Login(context.Background(), models.Credentials{Email: "A@X.com ", Password: "other"})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "A@X.com", second.User.Email)
	assert.Equal(t, "A", second.User.Name)
}

func TestMockLogin_EmptyEmail(t *testing.T) {
	m := newTestMock(t, config.App{})

	_, err := m.Login(context.Background(), models.Credentials{Password: "pw"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestMockRegister_ThenLogin(t *testing.T) {
	m := newTestMock(t, config.App{})

	reg, err := m.Register(context.Background(), models.RegisterRequest{
		Name:             "Bob",
		Email:            "b@x.com",
		Password:         "secret1",
		RiskTolerance:    models.RiskMedium,
		PreferredSectors: []string{"Energy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", reg.User.Name)
	require.NotNil(t, reg.User.InvestmentProfile)
	assert.Equal(t, models.RiskMedium, reg.User.InvestmentProfile.RiskTolerance)
	assert.Equal(t, []string{"Energy"}, reg.User.InvestmentProfile.PreferredSectors)

	subject, err := utils.ValidateJWTToken(reg.Token, testSignKey, MockIssuer, utils.WithTimeFunc(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, subject)

	login, err := m.Login(context.Background(), models.Credentials{Email: "b@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, reg.User.Equal(login.User))

	_, err = m.Login(context.Background(), models.Credentials{Email: "b@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", Reason(err))
}

func TestMockRegister_Duplicate(t *testing.T) {
	m := newTestMock(t, config.App{})
	req := models.RegisterRequest{Name: "Bob", Email: "b@x.com", Password: "secret1"}

	_, err := m.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = m.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMockRegister_MissingFields(t *testing.T) {
	m := newTestMock(t, config.App{})

	_, err := m.Register(context.Background(), models.RegisterRequest{Email: "b@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestMockRegister_ReturnsCopy(t *testing.T) {
	m := newTestMock(t, config.App{})

	reg, err := m.Register(context.Background(), models.RegisterRequest{
		Name: "Bob", Email: "b@x.com", Password: "secret1", PreferredSectors: []string{"Energy"},
	})
	require.NoError(t, err)
	reg.User.InvestmentProfile.PreferredSectors[0] = "Tampered"

	login, err := m.Login(context.Background(), models.Credentials{Email: "b@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy"}, login.User.InvestmentProfile.PreferredSectors)
}

func TestMock_LatencyHonoursContext(t *testing.T) {
	m := newTestMock(t, config.App{MockLatency: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Login(ctx, models.Credentials{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
