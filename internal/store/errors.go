package store

import "errors"

// Sentinel errors returned by [SlotStorage] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrSlotNotFound is returned by Load when nothing was ever saved under
	// the requested key.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotUnavailable is returned when the substrate could not be reached
	// or kept failing with transient errors.
	ErrSlotUnavailable = errors.New("slot storage unavailable")

	// ErrSlotWriteFailed is returned when a write was rejected for a reason
	// that retrying will not fix (disk full, read-only file, constraint
	// violation).
	ErrSlotWriteFailed = errors.New("slot write failed")

	// ErrStorageClosed is returned by operations on a closed storage.
	ErrStorageClosed = errors.New("slot storage closed")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an upsert fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a slot row fails.
	ErrScanningRow = errors.New("failed to scan slot row")
)
