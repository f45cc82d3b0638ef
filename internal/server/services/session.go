// Package services contains the server-side business logic. This file
// implements SessionService: the passcode gate and session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/server/auth"
	"github.com/avolkova/inkwell/internal/server/config"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
)

const (
	passcodeMinLen = 4
	passcodeMaxLen = 128
)

// Status reports the two orthogonal session facts: whether a passcode has
// ever been configured, and whether the presented token is a live session.
type Status struct {
	HasPasscode   bool
	Authenticated bool
}

// SessionService guards all owner operations behind the single shared
// passcode and mints long-lived session tokens.
type SessionService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionValidity time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// SetPasscode installs the passcode on first use and returns a session token.
// A passcode can be set exactly once; any later attempt is a conflict no
// matter how valid the new candidate is.
func (s *SessionService) SetPasscode(ctx context.Context, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if n := utf8.RuneCountInString(candidate); n < passcodeMinLen || n > passcodeMaxLen {
		return "", fmt.Errorf("%w: passcode must be between %d and %d characters",
			common.ErrValidation, passcodeMinLen, passcodeMaxLen)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetSingle(ctx)
	if errors.Is(err, common.ErrNotFound) {
		user, err = repo.Create(ctx)
	}
	if err != nil {
		return "", common.ErrInternal
	}

	if user.HasPasscode() {
		return "", fmt.Errorf("%w: passcode already configured", common.ErrConflict)
	}

	salt := common.GenerateRandByteArray(32)
	hash := auth.HashPasscode(candidate, salt)

	if err := repo.SetPasscode(ctx, user.ID, salt, hash); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return "", fmt.Errorf("%w: passcode already configured", common.ErrConflict)
		}
		return "", common.ErrInternal
	}

	return s.IssueToken(user.ID)
}

// VerifyPasscode checks the candidate against the stored hash and returns a
// session token on match.
func (s *SessionService) VerifyPasscode(ctx context.Context, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", fmt.Errorf("%w: passcode is required", common.ErrValidation)
	}

	user, err := s.repomanager.Users(s.db).GetSingle(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("%w: no passcode configured yet", common.ErrNotConfigured)
	}
	if err != nil {
		return "", common.ErrInternal
	}
	if !user.HasPasscode() {
		return "", fmt.Errorf("%w: no passcode configured yet", common.ErrNotConfigured)
	}

	if !auth.VerifyPasscode(candidate, user.PasscodeSalt, user.PasscodeHash) {
		return "", fmt.Errorf("%w: passcode mismatch", common.ErrUnauthorized)
	}

	return s.IssueToken(user.ID)
}

// Status never fails: a missing or invalid token simply reads as
// unauthenticated.
func (s *SessionService) Status(ctx context.Context, token string) Status {
	st := Status{}

	user, err := s.repomanager.Users(s.db).GetSingle(ctx)
	if err == nil && user.HasPasscode() {
		st.HasPasscode = true
	}

	if token != "" {
		if _, err := auth.GetUserIDFromToken(token, s.jwtSecret); err == nil {
			st.Authenticated = true
		}
	}

	return st
}

// IssueToken mints a session token for userID with the configured validity.
func (s *SessionService) IssueToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// UserIDFromToken verifies the token and returns the embedded user id.
func (s *SessionService) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// SessionValidity exposes the configured session lifetime for cookie max-age.
func (s *SessionService) SessionValidity() time.Duration {
	return s.sessionValidity
}
