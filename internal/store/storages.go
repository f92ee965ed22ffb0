package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
)

// NewSlotStorage opens the [SlotStorage] selected by cfg.DSN:
//   - ":memory:" or "memory" keeps slots in process memory;
//   - a path ending in ".json" uses a single JSON file;
//   - a "postgres://" or "postgresql://" URL uses PostgreSQL via pgx;
//   - anything else is treated as an SQLite database file.
//
// SQL backends are migrated before the storage is returned.
func NewSlotStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (SlotStorage, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case dsn == ":memory:" || dsn == "memory":
		log.Debug().Msg("using in-memory slot storage")
		return NewMemorySlotStorage(), nil

	case strings.HasSuffix(strings.ToLower(dsn), ".json"):
		log.Debug().Str("path", dsn).Msg("using json file slot storage")
		return NewFileSlotStorage(dsn, log), nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return migratedSQLStorage(db, log)

	case dsn == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrSlotUnavailable)

	default:
		db, err := NewConnectSQLite(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return migratedSQLStorage(db, log)
	}
}

func migratedSQLStorage(db *DB, log *logger.Logger) (SlotStorage, error) {
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return NewSQLSlotStorage(db, log), nil
}
