package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/mock"
	"github.com/MKhiriev/bullbear-client/internal/store"
	"github.com/MKhiriev/bullbear-client/internal/validators"
	"github.com/MKhiriev/bullbear-client/models"
)

const slotKey = "auth-storage"

func testUser(id string) models.User {
	return models.User{
		ID:        id,
		Email:     id + "@x.com",
		Name:      id,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func authenticated(u models.User, token string) models.Persisted {
	return models.Persisted{User: &u, IsAuthenticated: true, Token: token}
}

// newMockBackedStore wires a Store to the in-process mock backend and an
// in-memory slot storage.
func newMockBackedStore(t *testing.T) (*Store, store.SlotStorage) {
	t.Helper()
	backend := adapter.NewMockAuthBackend(
		config.App{TokenSignKey: "test-sign-key", MockTokenTTL: time.Hour},
		logger.Nop(),
		adapter.WithBcryptCost(bcrypt.MinCost),
	)
	slots := store.NewMemorySlotStorage()
	s := NewStore(context.Background(), backend, NewSlotPersister(slots, slotKey, logger.Nop()), logger.Nop())
	return s, slots
}

// newGomockStore wires a Store to gomock collaborators, hydrated from
// initial.
func newGomockStore(t *testing.T, initial models.Persisted) (*Store, *mock.MockAuthBackend, *mock.MockSlotStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mock.NewMockAuthBackend(ctrl)
	slots := mock.NewMockSlotStorage(ctrl)

	if initial.IsAuthenticated {
		raw, err := json.Marshal(models.NewSnapshot(initial))
		require.NoError(t, err)
		slots.EXPECT().Load(gomock.Any(), slotKey).Return(raw, nil)
	} else {
		slots.EXPECT().Load(gomock.Any(), slotKey).Return(nil, store.ErrSlotNotFound)
	}

	s := NewStore(context.Background(), backend, NewSlotPersister(slots, slotKey, logger.Nop()), logger.Nop())
	return s, backend, slots
}

func storedSnapshot(t *testing.T, slots store.SlotStorage) models.Snapshot {
	t.Helper()
	raw, err := slots.Load(context.Background(), slotKey)
	require.NoError(t, err)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	return snap
}

func TestLogin_MockBackend(t *testing.T) {
	s, slots := newMockBackedStore(t)

	user, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	state := s.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "a@x.com", state.User.Email)
	assert.Equal(t, "a", state.User.Name)
	assert.NotEmpty(t, state.Token)
	assert.False(t, state.IsLoading)
	assert.True(t, user.Equal(*state.User))

	snap := storedSnapshot(t, slots)
	assert.True(t, snap.Persisted().Equal(state.Persisted))
}

func TestLogin_MockBackendKeepsEmailCase(t *testing.T) {
	s, slots := newMockBackedStore(t)
	ctx := context.Background()

	first, err := s.Login(ctx, "Alice@X.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice@X.com", first.Email)
	assert.Equal(t, "Alice", first.Name)
	assert.Equal(t, "Alice@X.com", s.State().User.Email)
	assert.Equal(t, "Alice@X.com", storedSnapshot(t, slots).State.User.Email)

	// тот же аккаунт, другой регистр
	second, err := s.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "alice@x.com", second.Email)
	assert.Equal(t, "alice@x.com", s.State().User.Email)
}

func TestLogout_AfterLogin(t *testing.T) {
	s, slots := newMockBackedStore(t)

	_, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))

	state := s.State()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, state.IsLoading)

	raw, err := slots.Load(context.Background(), slotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"user":null,"isAuthenticated":false,"token":null},"version":0}`, string(raw))
}

func TestRegister_MockBackend(t *testing.T) {
	s, _ := newMockBackedStore(t)

	first, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := s.Register(context.Background(), models.RegisterRequest{
		Name:             "Sam",
		Email:            "s@x.com",
		Password:         "secret1",
		RiskTolerance:    models.RiskHigh,
		InvestmentGoal:   "growth",
		PreferredSectors: []string{},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, user.ID)
	assert.Equal(t, "Sam", user.Name)
	assert.Equal(t, "s@x.com", user.Email)
	assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Minute)

	// profile fields live inside InvestmentProfile, never on User itself
	require.NotNil(t, user.InvestmentProfile)
	assert.Equal(t, models.RiskHigh, user.InvestmentProfile.RiskTolerance)
	assert.Equal(t, "growth", user.InvestmentProfile.InvestmentGoal)
	assert.Empty(t, user.InvestmentProfile.PreferredSectors)
	assert.True(t, user.InvestmentProfile.TotalInvested.IsZero())

	state := s.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, user.ID, state.User.ID)
}

func TestLogin_RejectedKeepsPreviousSession(t *testing.T) {
	prev := authenticated(testUser("old"), "old-token")
	s, backend, _ := newGomockStore(t, prev)

	backend.EXPECT().
		Login(gomock.Any(), models.Credentials{Email: "a@x.com", Password: "wrong!"}).
		Return(models.AuthResult{}, fmt.Errorf("%w: Invalid email or password", adapter.ErrUnauthorized))
	// no Save expected: a failed exchange writes nothing

	_, err := s.Login(context.Background(), "a@x.com", "wrong!")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid email or password", authErr.Reason)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	state := s.State()
	assert.True(t, state.Persisted.Equal(prev))
	assert.False(t, state.IsLoading)
	assert.Equal(t, "Invalid email or password", state.LastError)
}

func TestLogin_NetworkFailureIsAuthError(t *testing.T) {
	s, backend, _ := newGomockStore(t, models.Anonymous())

	backend.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.AuthResult{}, fmt.Errorf("%w: dial tcp: connection refused", adapter.ErrServerUnavailable))

	_, err := s.Login(context.Background(), "a@x.com", "secret1")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, adapter.ErrServerUnavailable)
	assert.False(t, s.State().IsAuthenticated)
}

func TestLogin_DeadlineIsAuthError(t *testing.T) {
	s, backend, _ := newGomockStore(t, models.Anonymous())

	backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResult{}, context.DeadlineExceeded)

	_, err := s.Login(context.Background(), "a@x.com", "secret1")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "the server took too long to respond", authErr.Reason)
}

func TestLogin_ValidationBeforeBackend(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "", "secret1", validators.ErrEmptyEmail},
		{"blank email", "   ", "secret1", validators.ErrEmptyEmail},
		{"malformed email", "not-an-email", "secret1", validators.ErrInvalidEmail},
		{"empty password", "a@x.com", "", validators.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// backend has no expectations: any call fails the test
			s, _, _ := newGomockStore(t, models.Anonymous())

			_, err := s.Login(context.Background(), tt.email, tt.password)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, s.State().IsLoading)
			assert.False(t, s.State().IsAuthenticated)
		})
	}
}

func TestRegister_BackendErrors(t *testing.T) {
	req := models.RegisterRequest{Name: "Sam", Email: "s@x.com", Password: "secret1"}

	t.Run("bad request is a validation error", func(t *testing.T) {
		s, backend, _ := newGomockStore(t, models.Anonymous())
		backend.EXPECT().Register(gomock.Any(), req).
			Return(models.AuthResult{}, fmt.Errorf("%w: password too weak", adapter.ErrBadRequest))

		_, err := s.Register(context.Background(), req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password too weak", verr.Reason)
	})

	t.Run("conflict is an auth error", func(t *testing.T) {
		s, backend, _ := newGomockStore(t, models.Anonymous())
		backend.EXPECT().Register(gomock.Any(), req).
			Return(models.AuthResult{}, fmt.Errorf("%w: Email already registered", adapter.ErrConflict))

		_, err := s.Register(context.Background(), req)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.ErrorIs(t, err, adapter.ErrConflict)
		assert.False(t, s.State().IsLoading)
	})

	t.Run("local validation", func(t *testing.T) {
		s, _, _ := newGomockStore(t, models.Anonymous())

		_, err := s.Register(context.Background(), models.RegisterRequest{Email: "s@x.com", Password: "secret1"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, validators.ErrEmptyName)
	})
}

func TestLogin_PersistenceFailureKeepsSession(t *testing.T) {
	s, backend, slots := newGomockStore(t, models.Anonymous())
	u := testUser("u1")

	backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResult{User: u, Token: "tok"}, nil)
	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(store.ErrSlotWriteFailed)

	got, err := s.Login(context.Background(), "u1@x.com", "secret1")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpLogin, perr.Op)
	assert.ErrorIs(t, err, store.ErrSlotWriteFailed)
	assert.True(t, got.Equal(u))

	state := s.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "tok", state.Token)
	assert.False(t, state.IsLoading)
}

func TestLogout_Always(t *testing.T) {
	starts := map[string]models.Persisted{
		"anonymous":     models.Anonymous(),
		"authenticated": authenticated(testUser("u1"), "tok"),
	}

	for name, initial := range starts {
		t.Run(name, func(t *testing.T) {
			s, _, slots := newGomockStore(t, initial)
			slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(nil).Times(2)

			require.NoError(t, s.Logout(context.Background()))
			once := s.State()
			require.NoError(t, s.Logout(context.Background()))
			twice := s.State()

			assert.False(t, once.IsAuthenticated)
			assert.Nil(t, once.User)
			assert.Empty(t, once.Token)
			assert.Equal(t, once, twice)
		})
	}
}

func TestLogout_PersistenceFailure(t *testing.T) {
	s, _, slots := newGomockStore(t, authenticated(testUser("u1"), "tok"))
	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(errors.New("quota exceeded"))

	err := s.Logout(context.Background())

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpLogout, perr.Op)
	assert.False(t, s.State().IsAuthenticated, "the in-memory logout is not rolled back")
}

func TestUpdateUser_Anonymous(t *testing.T) {
	s, _, _ := newGomockStore(t, models.Anonymous())
	before := s.State()

	name := "Alice"
	err := s.UpdateUser(context.Background(), models.UserPatch{Name: &name})

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, before, s.State())
}

func TestUpdateUser_MergesAndPersists(t *testing.T) {
	u := testUser("u1")
	u.InvestmentProfile = &models.InvestmentProfile{RiskTolerance: models.RiskLow, PreferredSectors: []string{"Banking"}}
	s, slots := newMockBackedStore(t)
	s.persisted = authenticated(u, "tok")

	name := "Alice"
	require.NoError(t, s.UpdateUser(context.Background(), models.UserPatch{Name: &name}))

	state := s.State()
	assert.Equal(t, "Alice", state.User.Name)
	assert.Equal(t, u.ID, state.User.ID)
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, models.RiskLow, state.User.InvestmentProfile.RiskTolerance)

	require.NoError(t, s.UpdateUser(context.Background(), models.UserPatch{
		InvestmentProfile: &models.InvestmentProfile{RiskTolerance: models.RiskHigh},
	}))

	state = s.State()
	assert.Equal(t, "Alice", state.User.Name)
	assert.Equal(t, models.RiskHigh, state.User.InvestmentProfile.RiskTolerance)
	assert.Nil(t, state.User.InvestmentProfile.PreferredSectors, "profile is replaced, not merged")

	assert.True(t, storedSnapshot(t, slots).Persisted().Equal(state.Persisted))
}

func TestUpdateUser_InvalidPatch(t *testing.T) {
	s, _, _ := newGomockStore(t, authenticated(testUser("u1"), "tok"))

	blank := "  "
	err := s.UpdateUser(context.Background(), models.UserPatch{Name: &blank})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, validators.ErrEmptyName)
	assert.Equal(t, "u1", s.State().User.Name)
}

func TestRoundTrip_ThroughStorage(t *testing.T) {
	s, slots := newMockBackedStore(t)

	_, err := s.Register(context.Background(), models.RegisterRequest{
		Name: "Sam", Email: "s@x.com", Password: "secret1", RiskTolerance: models.RiskMedium,
	})
	require.NoError(t, err)

	restored := NewStore(context.Background(), adapter.NewMockAuthBackend(config.App{TokenSignKey: "k"}, logger.Nop()),
		NewSlotPersister(slots, slotKey, logger.Nop()), logger.Nop())

	assert.True(t, restored.State().Persisted.Equal(s.State().Persisted))
	assert.False(t, restored.State().IsLoading)
}

func TestLoading_DuringExchange(t *testing.T) {
	s, backend, slots := newGomockStore(t, models.Anonymous())
	u := testUser("u1")

	var sawLoading atomic.Bool
	backend.EXPECT().Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Credentials) (models.AuthResult, error) {
			sawLoading.Store(s.State().IsLoading)
			return models.AuthResult{User: u, Token: "tok"}, nil
		})
	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(nil)

	_, err := s.Login(context.Background(), "u1@x.com", "secret1")
	require.NoError(t, err)

	assert.True(t, sawLoading.Load())
	assert.False(t, s.State().IsLoading)
}

func TestLogin_SupersededByLogout(t *testing.T) {
	s, backend, slots := newGomockStore(t, models.Anonymous())

	started := make(chan struct{})
	release := make(chan struct{})
	backend.EXPECT().Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Credentials) (models.AuthResult, error) {
			close(started)
			<-release
			return models.AuthResult{User: testUser("late"), Token: "late-token"}, nil
		})
	// only the logout writes
	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(nil).Times(1)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Login(context.Background(), "late@x.com", "secret1")
		errCh <- err
	}()

	<-started
	assert.True(t, s.State().IsLoading)

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.State().IsLoading, "logout ends the visible loading state")

	close(release)
	err := <-errCh

	assert.ErrorIs(t, err, ErrSuperseded)
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)

	state := s.State()
	assert.False(t, state.IsAuthenticated, "the later logout wins")
	assert.False(t, state.IsLoading)
}

func TestLogin_OverlappingLastInvocationWins(t *testing.T) {
	s, backend, slots := newGomockStore(t, models.Anonymous())

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	gomock.InOrder(
		backend.EXPECT().Login(gomock.Any(), models.Credentials{Email: "first@x.com", Password: "secret1"}).
			DoAndReturn(func(context.Context, models.Credentials) (models.AuthResult, error) {
				close(firstStarted)
				<-releaseFirst
				return models.AuthResult{User: testUser("first"), Token: "first-token"}, nil
			}),
		backend.EXPECT().Login(gomock.Any(), models.Credentials{Email: "second@x.com", Password: "secret1"}).
			Return(models.AuthResult{User: testUser("second"), Token: "second-token"}, nil),
	)
	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(nil).Times(1)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Login(context.Background(), "first@x.com", "secret1")
		errCh <- err
	}()
	<-firstStarted

	_, err := s.Login(context.Background(), "second@x.com", "secret1")
	require.NoError(t, err)

	close(releaseFirst)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	state := s.State()
	assert.Equal(t, "second", state.User.ID)
	assert.Equal(t, "second-token", state.Token)
	assert.False(t, state.IsLoading)
}

func TestSubscribe(t *testing.T) {
	s, _ := newMockBackedStore(t)

	var calls atomic.Int32
	var sawAuthenticated atomic.Bool
	unsubscribe := s.Subscribe(func() {
		calls.Add(1)
		if s.State().IsAuthenticated {
			sawAuthenticated.Store(true)
		}
	})

	_, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	// loading on, then session applied
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, sawAuthenticated.Load())

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestStores_AreIndependent(t *testing.T) {
	a, _ := newMockBackedStore(t)
	b, _ := newMockBackedStore(t)

	_, err := a.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	assert.True(t, a.State().IsAuthenticated)
	assert.False(t, b.State().IsAuthenticated)
}

func TestState_ReturnsCopy(t *testing.T) {
	u := testUser("u1")
	u.InvestmentProfile = &models.InvestmentProfile{PreferredSectors: []string{"Banking"}}
	s, _, _ := newGomockStore(t, authenticated(u, "tok"))

	state := s.State()
	state.User.Name = "mutated"
	state.User.InvestmentProfile.PreferredSectors[0] = "mutated"

	again := s.State()
	assert.Equal(t, "u1", again.User.Name)
	assert.Equal(t, "Banking", again.User.InvestmentProfile.PreferredSectors[0])
}
