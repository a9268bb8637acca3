package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talemaro/wheel-backend/models"
	"github.com/talemaro/wheel-backend/utils/logger"
)

// SessionService issues, renews and revokes admin sessions. Expiry is a
// sliding window: every successful touch moves expires_at to now + TTL.
// Expired rows are removed lazily on lookup and in bulk when a new session
// is issued; no background sweeper runs.
type SessionService struct {
	db         *gorm.DB
	adminToken string
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionService(db *gorm.DB, adminToken string, ttl time.Duration) *SessionService {
	return &SessionService{
		db:         db,
		adminToken: adminToken,
		ttl:        ttl,
		now:        time.Now,
	}
}

// ValidateStaticToken checks the shared admin secret. Used for callers that
// bypass sessions entirely; does not read or write the session table.
func (s *SessionService) ValidateStaticToken(token string) bool {
	return token != "" && token == s.adminToken
}

// Issue exchanges the admin token for a fresh session. Expired sessions are
// pruned opportunistically first; a prune failure is logged but does not fail
// the login.
func (s *SessionService) Issue(suppliedToken string) (*models.AdminSession, error) {
	if !s.ValidateStaticToken(suppliedToken) {
		logger.Warnf("Admin login rejected: invalid token")
		return nil, ErrAdminAuthRequired
	}

	if err := s.Prune(); err != nil {
		logger.Errorf("Failed to prune expired admin sessions: %v", err)
	}

	now := s.now()
	session := models.AdminSession{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	logger.Infof("Admin session %s issued, expires %s", session.ID, session.ExpiresAt)
	return &session, nil
}

// Touch validates a session and extends it by a full TTL from now. An absent
// or expired session fails with ErrAdminAuthRequired; the expired row is
// deleted on the way out. Every admin-gated request funnels through here, so
// authenticated activity keeps the session alive.
func (s *SessionService) Touch(sessionID string) (*models.AdminSession, error) {
	if sessionID == "" {
		logger.Debugf("Session touch rejected: missing session id")
		return nil, ErrAdminAuthRequired
	}

	var session models.AdminSession
	err := s.db.First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debugf("Session touch rejected: unknown session %s", sessionID)
		return nil, ErrAdminAuthRequired
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !session.ExpiresAt.After(now) {
		if err := s.db.Delete(&models.AdminSession{}, "id = ?", sessionID).Error; err != nil {
			return nil, err
		}
		logger.Infof("Session %s expired, removed", sessionID)
		return nil, ErrAdminAuthRequired
	}

	session.LastUsedAt = now
	session.ExpiresAt = now.Add(s.ttl)
	res := s.db.Model(&models.AdminSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"last_used_at": session.LastUsedAt,
			"expires_at":   session.ExpiresAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	// A concurrent revoke or prune may have deleted the row between the read
	// and the update; the delete is authoritative, so fail closed.
	if res.RowsAffected == 0 {
		logger.Debugf("Session %s vanished during touch", sessionID)
		return nil, ErrAdminAuthRequired
	}

	return &session, nil
}

// Revoke deletes a session. Unknown ids are a no-op.
func (s *SessionService) Revoke(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.db.Delete(&models.AdminSession{}, "id = ?", sessionID).Error
}

// Prune removes every session past its expiry.
func (s *SessionService) Prune() error {
	return s.db.Delete(&models.AdminSession{}, "expires_at <= ?", s.now()).Error
}
