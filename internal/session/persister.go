package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/store"
	"github.com/MKhiriev/bullbear-client/internal/utils"
	"github.com/MKhiriev/bullbear-client/models"
)

// Persister moves the persisted half of the session to and from durable
// storage.
type Persister interface {
	// Hydrate returns the stored session, or the anonymous one when nothing
	// usable is stored. It never fails.
	Hydrate(ctx context.Context) models.Persisted
	// Persist replaces the stored session with p.
	Persist(ctx context.Context, p models.Persisted) error
}

// SlotPersister stores the session as a JSON [models.Snapshot] in a single
// slot of a [store.SlotStorage].
type SlotPersister struct {
	slots store.SlotStorage
	key   string
	now   func() time.Time

	logger *logger.Logger
}

// NewSlotPersister returns a [SlotPersister] writing under key.
func NewSlotPersister(slots store.SlotStorage, key string, log *logger.Logger) *SlotPersister {
	return &SlotPersister{
		slots:  slots,
		key:    key,
		now:    time.Now,
		logger: log,
	}
}

// Hydrate implements [Persister]. A missing key, unreadable storage,
// malformed JSON, an unknown version, an inconsistent snapshot and an
// expired JWT all yield the anonymous session.
func (p *SlotPersister) Hydrate(ctx context.Context) models.Persisted {
	log := p.logger.WithOp("hydrate")

	raw, err := p.slots.Load(ctx, p.key)
	if err != nil {
		if errors.Is(err, store.ErrSlotNotFound) {
			log.Debug().Str("key", p.key).Msg("no stored session")
		} else {
			log.Warn().Err(err).Str("key", p.key).Msg("stored session unreadable, starting anonymous")
		}
		return models.Anonymous()
	}

	var snap models.Snapshot
	if err = json.Unmarshal(raw, &snap); err != nil {
		log.Warn().Err(err).Str("key", p.key).Msg("stored session malformed, starting anonymous")
		return models.Anonymous()
	}
	if snap.Version != models.SnapshotVersion {
		log.Warn().Int("version", snap.Version).Str("key", p.key).Msg("stored session has unknown version, starting anonymous")
		return models.Anonymous()
	}

	state := snap.Persisted()
	if !state.Consistent() || (state.User != nil && state.User.ID == "") {
		log.Warn().Str("key", p.key).Msg("stored session inconsistent, starting anonymous")
		return models.Anonymous()
	}
	if state.IsAuthenticated && utils.TokenExpired(state.Token, p.now()) {
		log.Info().Str("user_id", state.User.ID).Msg("stored session token expired, starting anonymous")
		return models.Anonymous()
	}

	return state
}

// Persist implements [Persister].
func (p *SlotPersister) Persist(ctx context.Context, state models.Persisted) error {
	payload, err := json.Marshal(models.NewSnapshot(state))
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}

	if err = p.slots.Save(ctx, p.key, payload); err != nil {
		return fmt.Errorf("save session snapshot under %q: %w", p.key, err)
	}
	return nil
}
