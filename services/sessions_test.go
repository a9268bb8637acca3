package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talemaro/wheel-backend/models"
)

const testAdminToken = "test-admin-token"

func newSessionService(t *testing.T, ttl time.Duration) *SessionService {
	t.Helper()
	return NewSessionService(newTestDB(t), testAdminToken, ttl)
}

func TestIssueRejectsInvalidToken(t *testing.T) {
	svc := newSessionService(t, time.Hour)

	_, err := svc.Issue("wrong-token")
	assert.ErrorIs(t, err, ErrAdminAuthRequired)

	_, err = svc.Issue("")
	assert.ErrorIs(t, err, ErrAdminAuthRequired)
}

func TestIssueCreatesSession(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	svc := newSessionService(t, ttl)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	session, err := svc.Issue(testAdminToken)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, t0, session.CreatedAt)
	assert.Equal(t, t0, session.LastUsedAt)
	assert.Equal(t, t0.Add(ttl), session.ExpiresAt)
}

func TestTouchSlidingExpiry(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	svc := newSessionService(t, ttl)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	session, err := svc.Issue(testAdminToken)
	require.NoError(t, err)

	// Touch a week later: expiry must be a full TTL from the touch, not from
	// issuance.
	t1 := t0.Add(7 * 24 * time.Hour)
	svc.now = func() time.Time { return t1 }

	touched, err := svc.Touch(session.ID)
	require.NoError(t, err)
	assert.Equal(t, t1, touched.LastUsedAt)
	assert.Equal(t, t1.Add(ttl), touched.ExpiresAt)
	assert.Equal(t, session.ID, touched.ID)
}

func TestTouchExpiredSessionDeletesIt(t *testing.T) {
	ttl := time.Hour
	svc := newSessionService(t, ttl)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	session, err := svc.Issue(testAdminToken)
	require.NoError(t, err)

	svc.now = func() time.Time { return t0.Add(ttl) }

	_, err = svc.Touch(session.ID)
	assert.ErrorIs(t, err, ErrAdminAuthRequired)

	// Expired means deleted, not merely marked: the row must be gone.
	var stored models.AdminSession
	err = svc.db.First(&stored, "id = ?", session.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// And a second touch of the same id keeps failing.
	_, err = svc.Touch(session.ID)
	assert.ErrorIs(t, err, ErrAdminAuthRequired)
}

func TestTouchUnknownSession(t *testing.T) {
	svc := newSessionService(t, time.Hour)

	_, err := svc.Touch("no-such-session")
	assert.ErrorIs(t, err, ErrAdminAuthRequired)

	_, err = svc.Touch("")
	assert.ErrorIs(t, err, ErrAdminAuthRequired)
}

func TestRevokeIsIdempotent(t *testing.T) {
	svc := newSessionService(t, time.Hour)

	session, err := svc.Issue(testAdminToken)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(session.ID))
	require.NoError(t, svc.Revoke(session.ID))
	require.NoError(t, svc.Revoke("never-existed"))

	// A revoked session fails closed on touch.
	_, err = svc.Touch(session.ID)
	assert.ErrorIs(t, err, ErrAdminAuthRequired)
}

func TestIssuePrunesExpiredSessions(t *testing.T) {
	ttl := time.Hour
	svc := newSessionService(t, ttl)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stale := models.AdminSession{
		ID:         "stale-session",
		CreatedAt:  t0.Add(-2 * ttl),
		LastUsedAt: t0.Add(-2 * ttl),
		ExpiresAt:  t0.Add(-ttl),
	}
	require.NoError(t, svc.db.Create(&stale).Error)

	svc.now = func() time.Time { return t0 }
	_, err := svc.Issue(testAdminToken)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&models.AdminSession{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = svc.db.First(&models.AdminSession{}, "id = ?", stale.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestValidateStaticToken(t *testing.T) {
	svc := newSessionService(t, time.Hour)

	assert.True(t, svc.ValidateStaticToken(testAdminToken))
	assert.False(t, svc.ValidateStaticToken("wrong"))
	assert.False(t, svc.ValidateStaticToken(""))
}
