package session

import (
	"context"
	"time"

	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/utils"
)

// ExpiryJob logs the session out once its JWT "exp" claim has passed.
// Opaque tokens are never expired client-side. It implements
// workers.Worker.
type ExpiryJob struct {
	store    *Store
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewExpiryJob creates a job that checks the token held by store every interval.
func NewExpiryJob(store *Store, interval time.Duration, log *logger.Logger) *ExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryJob{
		store:    store,
		interval: interval,
		now:      time.Now,
		logger:   log,
	}
}

// Run checks immediately and then every interval until ctx is cancelled.
func (j *ExpiryJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Check(ctx)
		}
	}
}

// Check expires the current session if its token has lapsed and reports
// whether it did.
func (j *ExpiryJob) Check(ctx context.Context) bool {
	state := j.store.State()
	if !state.IsAuthenticated || !utils.TokenExpired(state.Token, j.now()) {
		return false
	}

	cleared, err := j.store.ExpireToken(ctx, state.Token)
	if err != nil {
		j.logger.Warn().Err(err).Msg("expired session cleared but not persisted")
	}
	if cleared {
		j.logger.Info().Str("user_id", state.User.ID).Msg("session token expired")
	}
	return cleared
}
