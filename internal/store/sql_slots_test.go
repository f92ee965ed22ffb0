package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bullbear-client/internal/logger"
)

var slotNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestSlotStorage(t *testing.T, placeholder sq.PlaceholderFormat, classifier ErrorClassificator) (*sqlSlotStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	s := NewSQLSlotStorage(&DB{
		DB:                 db,
		placeholder:        placeholder,
		errorClassificator: classifier,
		logger:             l,
	}, l).(*sqlSlotStorage)
	s.backoff = time.Millisecond
	s.now = func() time.Time { return slotNow }
	return s, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

const (
	selectSQLite = "SELECT payload FROM kv_slots WHERE slot_key = ?"
	upsertSQLite = "INSERT INTO kv_slots (slot_key,payload,updated_at) VALUES (?,?,?) " + upsertSlotSuffix
	upsertPg     = "INSERT INTO kv_slots (slot_key,payload,updated_at) VALUES ($1,$2,$3) " + upsertSlotSuffix
)

func TestSQLLoad_Success(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta(selectSQLite)).
		WithArgs("auth-storage").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"version":0}`))

	got, err := s.Load(context.Background(), "auth-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"version":0}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLLoad_NotFound(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta(selectSQLite)).
		WithArgs("auth-storage").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Load(context.Background(), "auth-storage")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSQLLoad_QueryError(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta(selectSQLite)).
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Load(context.Background(), "auth-storage")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLSave_Success(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta(upsertSQLite)).
		WithArgs("auth-storage", `{"version":0}`, slotNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), "auth-storage", []byte(`{"version":0}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSave_RetriesBusySQLite(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta(upsertSQLite)).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectExec(regexp.QuoteMeta(upsertSQLite)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), "k", []byte("v")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSave_RetriesExhausted(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Dollar, NewPostgresErrorClassifier())

	for i := 0; i < defaultSaveAttempts; i++ {
		mock.ExpectExec(regexp.QuoteMeta(upsertPg)).
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	err := s.Save(context.Background(), "k", []byte("v"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSave_NonRetryable(t *testing.T) {
	s, mock := newTestSlotStorage(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta(upsertPg)).
		WithArgs("k", "v", slotNow).
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	err := s.Save(context.Background(), "k", []byte("v"))
	assert.ErrorIs(t, err, ErrSlotWriteFailed)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClassification
	}{
		{pgerrcode.ConnectionException, Retryable},
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.SerializationFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.TooManyConnections, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.AdminShutdown, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
		{pgerrcode.DataException, NonRetryable},
		{pgerrcode.QueryCanceled, NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPgError(&pgconn.PgError{Code: tt.code}))
		})
	}
}

func TestPostgresErrorClassifier_NonPgError(t *testing.T) {
	c := NewPostgresErrorClassifier()
	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrReadonly}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}
