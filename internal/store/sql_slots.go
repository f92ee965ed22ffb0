package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/bullbear-client/internal/logger"
)

const (
	slotsTable      = "kv_slots"
	slotKeyColumn   = "slot_key"
	payloadColumn   = "payload"
	updatedAtColumn = "updated_at"

	upsertSlotSuffix = "ON CONFLICT (slot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at"

	defaultSaveAttempts = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

type sqlSlotStorage struct {
	db *DB

	attempts int
	backoff  time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewSQLSlotStorage returns a [SlotStorage] over the kv_slots table of db.
// The schema must already be migrated.
func NewSQLSlotStorage(db *DB, log *logger.Logger) SlotStorage {
	return &sqlSlotStorage{
		db:       db,
		attempts: defaultSaveAttempts,
		backoff:  defaultRetryBackoff,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   log,
	}
}

func (s *sqlSlotStorage) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.db.builder().
		Select(payloadColumn).
		From(slotsTable).
		Where(sq.Eq{slotKeyColumn: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var payload string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrSlotNotFound
	case err != nil:
		s.logger.Err(err).Str("func", "sqlSlotStorage.Load").Msg("error loading slot")
		return nil, fmt.Errorf("%w: %w: %v", ErrSlotUnavailable, ErrExecutingQuery, err)
	}

	return []byte(payload), nil
}

func (s *sqlSlotStorage) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := s.db.builder().
		Insert(slotsTable).
		Columns(slotKeyColumn, payloadColumn, updatedAtColumn).
		Values(key, string(value), s.now()).
		Suffix(upsertSlotSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	for attempt := 1; ; attempt++ {
		_, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			return nil
		}

		retryable := s.db.errorClassificator != nil && s.db.errorClassificator.Classify(err) == Retryable
		s.logger.Warn().Err(err).
			Str("func", "sqlSlotStorage.Save").
			Int("attempt", attempt).
			Bool("retryable", retryable).
			Msg("error saving slot")

		if !retryable {
			return fmt.Errorf("%w: %w: %v", ErrSlotWriteFailed, ErrExecutingStatement, err)
		}
		if attempt >= s.attempts {
			return fmt.Errorf("%w: %w: %v", ErrSlotUnavailable, ErrExecutingStatement, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
}

func (s *sqlSlotStorage) Close() error {
	return s.db.Close()
}
