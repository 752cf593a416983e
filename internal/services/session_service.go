package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/logger"
	"taskdeck/internal/models"
)

// sessionTokenBytes is the entropy of session and CSRF tokens before hex
// encoding.
const sessionTokenBytes = 32

// sessionService manages opaque server-side sessions.
type sessionService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionService creates a new SessionServicer with the given server-side
// session lifetime.
func NewSessionService(db *gorm.DB, ttl time.Duration) SessionServicer {
	return &sessionService{db: db, ttl: ttl}
}

// Issue creates a fresh session row for the user. The CSRF token is optional
// protection: if generating it fails, the session is issued without one
// rather than failing the login.
func (s *sessionService) Issue(userID uint) (*models.Session, error) {
	token, err := randomHex(sessionTokenBytes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	csrf, err := randomHex(sessionTokenBytes)
	if err != nil {
		logger.Get().Warnw("csrf token generation failed, session issued without one", "error", err)
		csrf = ""
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CSRFToken: csrf,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session, nil
}

// Resolve loads the session for a cookie token along with its user. Expired
// sessions are removed on sight. Any failure mode collapses into the same
// unauthorized error.
func (s *sessionService) Resolve(token string) (*models.Session, *models.User, error) {
	if token == "" {
		return nil, nil, apperrors.ErrUnauthorized
	}

	var session models.Session
	if err := s.db.First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if session.Expired(time.Now()) {
		_ = s.Destroy(session.Token)
		return nil, nil, apperrors.ErrUnauthorized
	}

	var user models.User
	if err := s.db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account deleted while the session was live.
			_ = s.Destroy(session.Token)
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &session, &user, nil
}

// Destroy removes the session row. Destroying an unknown token is a no-op,
// which keeps logout idempotent.
func (s *sessionService) Destroy(token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
