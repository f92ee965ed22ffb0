// Package session holds the client's single source of truth for who is
// logged in.
//
// A [Store] is created explicitly and handed to whatever owns the view
// layer; there is no package-level instance. It exposes four operations
// (Login, Register, Logout, UpdateUser), a synchronous [Store.State] read,
// and change notification through [Store.Subscribe]. After every applied
// transition the persisted half of the state is written through a
// [Persister], so a restart resumes the session without a network round
// trip.
//
// Overlapping operations are ordered by invocation, not by resolution: each
// Login, Register and Logout call takes a sequence number, and a Login or
// Register that resolves after a later call was made is discarded with
// [ErrSuperseded].
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/validators"
	"github.com/MKhiriev/bullbear-client/models"
)

// Operation names used in logs and in [PersistenceError.Op].
const (
	OpLogin      = "login"
	OpRegister   = "register"
	OpLogout     = "logout"
	OpUpdateUser = "update_user"
	OpExpire     = "expire"
)

// Store is the session state container. It is safe for concurrent use.
type Store struct {
	backend   adapter.AuthBackend
	persister Persister
	validator validators.Validator

	// mu guards the fields below it.
	mu        sync.RWMutex
	persisted models.Persisted
	lastError string
	// seq advances on every Login, Register and Logout invocation.
	seq uint64
	// pendingSeq is the seq of the newest in-flight exchange, 0 if none.
	pendingSeq uint64

	// persistMu orders apply-then-write pairs so snapshots reach storage in
	// transition order. Always taken before mu.
	persistMu sync.Mutex

	listenersMu  sync.Mutex
	listeners    map[uint64]func()
	nextListener uint64

	logger *logger.Logger
}

// Option configures a [Store].
type Option func(*Store)

// WithValidator replaces the input validator.
func WithValidator(v validators.Validator) Option {
	return func(s *Store) { s.validator = v }
}

// NewStore builds a Store over backend and hydrates it from persister.
func NewStore(ctx context.Context, backend adapter.AuthBackend, persister Persister, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		persister: persister,
		validator: validators.NewAuthValidator(),
		listeners: make(map[uint64]func()),
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.persisted = persister.Hydrate(ctx)
	if s.persisted.IsAuthenticated {
		log.Info().Str("user_id", s.persisted.User.ID).Msg("session restored")
	}
	return s
}

// State returns a copy of the current session.
func (s *Store) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.SessionState{
		Persisted: s.persisted.Clone(),
		Transient: models.Transient{
			IsLoading: s.loading(),
			LastError: s.lastError,
		},
	}
}

// Subscribe registers fn to be called after every state change. fn runs on
// the goroutine that made the change, with no lock held, and should re-read
// [Store.State]. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// Login authenticates with email and password and, on success, replaces the
// session. A failed exchange leaves the previous session in place and
// returns an [AuthError]. If the new session cannot be written to storage
// the user is returned together with a [PersistenceError].
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validator.Validate(ctx, creds, validators.FieldEmail, validators.FieldPassword); err != nil {
		return models.User{}, s.reject(err)
	}

	return s.exchange(ctx, OpLogin, func(ctx context.Context) (models.AuthResult, error) {
		return s.backend.Login(ctx, creds)
	})
}

// Register creates an account and opens a session for it, with the same
// failure semantics as [Store.Login]. Backend-side field rejections are
// reported as [ValidationError].
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, s.reject(err)
	}

	return s.exchange(ctx, OpRegister, func(ctx context.Context) (models.AuthResult, error) {
		return s.backend.Register(ctx, req)
	})
}

// Logout clears the session. The in-memory transition always happens; the
// only possible error is a [PersistenceError].
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx, OpLogout, func(models.Persisted) bool { return true })
}

// ExpireToken logs out only if the current token is still token. It
// reports whether the session was cleared.
func (s *Store) ExpireToken(ctx context.Context, token string) (bool, error) {
	cleared := false
	err := s.clear(ctx, OpExpire, func(p models.Persisted) bool {
		cleared = p.IsAuthenticated && p.Token == token
		return cleared
	})
	return cleared, err
}

// UpdateUser merges patch into the current user and persists the result.
// While anonymous it changes nothing and returns [ErrNotAuthenticated].
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	log := s.logger.WithOp(OpUpdateUser)

	s.persistMu.Lock()

	s.mu.Lock()
	if !s.persisted.IsAuthenticated {
		s.mu.Unlock()
		s.persistMu.Unlock()
		log.Debug().Msg("update requested without a session")
		return ErrNotAuthenticated
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		s.mu.Unlock()
		s.persistMu.Unlock()
		return s.reject(err)
	}

	updated := patch.Apply(*s.persisted.User)
	s.persisted.User = &updated
	s.lastError = ""
	snapshot := s.persisted.Clone()
	s.mu.Unlock()

	err := s.persist(ctx, OpUpdateUser, snapshot)
	s.persistMu.Unlock()

	s.notify()
	log.Debug().Str("user_id", updated.ID).Msg("user updated")
	return err
}

func (s *Store) exchange(ctx context.Context, op string, call func(context.Context) (models.AuthResult, error)) (models.User, error) {
	log := s.logger.WithOp(op)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.pendingSeq = seq
	s.mu.Unlock()
	s.notify()

	res, callErr := call(ctx)

	s.persistMu.Lock()
	s.mu.Lock()
	if s.pendingSeq == seq {
		s.pendingSeq = 0
	}

	if s.seq != seq {
		s.mu.Unlock()
		s.persistMu.Unlock()
		s.notify()
		log.Info().Msg("discarding superseded result")
		return models.User{}, &AuthError{Reason: "cancelled by a newer request", Err: ErrSuperseded}
	}

	if callErr != nil {
		err := backendError(callErr)
		s.lastError = reasonOf(err)
		s.mu.Unlock()
		s.persistMu.Unlock()
		s.notify()
		log.Info().Err(callErr).Msg("exchange failed")
		return models.User{}, err
	}

	user := res.User.Clone()
	s.persisted = models.Persisted{User: &user, IsAuthenticated: true, Token: res.Token}
	s.lastError = ""
	snapshot := s.persisted.Clone()
	s.mu.Unlock()

	err := s.persist(ctx, op, snapshot)
	s.persistMu.Unlock()

	s.notify()
	log.Info().Str("user_id", user.ID).Msg("session established")
	return user.Clone(), err
}

func (s *Store) clear(ctx context.Context, op string, should func(models.Persisted) bool) error {
	s.persistMu.Lock()

	s.mu.Lock()
	if !should(s.persisted) {
		s.mu.Unlock()
		s.persistMu.Unlock()
		return nil
	}
	s.seq++
	s.pendingSeq = 0
	s.persisted = models.Anonymous()
	s.lastError = ""
	s.mu.Unlock()

	err := s.persist(ctx, op, models.Anonymous())
	s.persistMu.Unlock()

	s.notify()
	s.logger.WithOp(op).Info().Msg("session cleared")
	return err
}

func (s *Store) persist(ctx context.Context, op string, snapshot models.Persisted) error {
	// a transition already applied must reach storage even if the caller
	// has given up waiting
	ctx = context.WithoutCancel(ctx)

	if err := s.persister.Persist(ctx, snapshot); err != nil {
		s.logger.WithOp(op).Err(err).Msg("session snapshot not written")
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// reject records a local validation failure.
func (s *Store) reject(err error) error {
	verr := &ValidationError{Reason: err.Error(), Err: err}

	s.mu.Lock()
	s.lastError = verr.Reason
	s.mu.Unlock()
	s.notify()

	return verr
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// loading must be called with mu held.
func (s *Store) loading() bool {
	return s.pendingSeq != 0 && s.pendingSeq == s.seq
}

func backendError(err error) error {
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return &ValidationError{Reason: adapter.Reason(err), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &AuthError{Reason: "the server took too long to respond", Err: err}
	case errors.Is(err, context.Canceled):
		return &AuthError{Reason: "request cancelled", Err: err}
	default:
		return &AuthError{Reason: adapter.Reason(err), Err: err}
	}
}

func reasonOf(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	var aerr *AuthError
	if errors.As(err, &aerr) {
		return aerr.Reason
	}
	return err.Error()
}
