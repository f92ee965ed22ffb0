package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/models"
)

func TestExpiryJob_Check(t *testing.T) {
	issued := time.Now().UTC()
	token := mustJWT(t, issued, time.Hour)

	s, _, slots := newGomockStore(t, authenticated(testUser("u1"), token))
	job := NewExpiryJob(s, time.Minute, logger.Nop())

	job.now = func() time.Time { return issued.Add(30 * time.Minute) }
	assert.False(t, job.Check(context.Background()))
	assert.True(t, s.State().IsAuthenticated)

	slots.EXPECT().Save(gomock.Any(), slotKey, gomock.Any()).Return(nil)
	job.now = func() time.Time { return issued.Add(2 * time.Hour) }
	assert.True(t, job.Check(context.Background()))
	assert.False(t, s.State().IsAuthenticated)
}

func TestExpiryJob_OpaqueTokenNeverExpires(t *testing.T) {
	s, _, _ := newGomockStore(t, authenticated(testUser("u1"), "opaque"))
	job := NewExpiryJob(s, time.Minute, logger.Nop())
	job.now = func() time.Time { return time.Now().Add(100 * 365 * 24 * time.Hour) }

	assert.False(t, job.Check(context.Background()))
	assert.True(t, s.State().IsAuthenticated)
}

func TestExpireToken_OnlyMatchingToken(t *testing.T) {
	s, _, _ := newGomockStore(t, authenticated(testUser("u1"), "current"))

	cleared, err := s.ExpireToken(context.Background(), "stale")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, s.State().IsAuthenticated)
}

func TestExpiryJob_RunStopsOnCancel(t *testing.T) {
	s, _, _ := newGomockStore(t, models.Anonymous())
	job := NewExpiryJob(s, time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expiry job did not stop")
	}
}
