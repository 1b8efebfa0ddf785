// Package auth keeps track of who is signed in. Sessions are stored under an
// opaque key (a browser cookie value or the CLI's profile name) in a
// storage.SessionStore and every account operation goes through the backend.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"emailfinder/internal/validation"
	"emailfinder/pkg/backend"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"
	"emailfinder/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MsgResetLinkSent is shown after a forgot-password request whether or not the
// account exists.
const MsgResetLinkSent = "If an account exists for that email, a password reset link has been sent."

// MinPasswordLength applies to new passwords only; existing ones are checked by the backend.
const MinPasswordLength = 8

type Options struct {
	// SessionTTL is how long a stored session lives. Zero keeps it until logout.
	SessionTTL time.Duration
}

type Service struct {
	backend backend.Client
	store   storage.SessionStore
	options Options
	now     func() time.Time
}

// TokenExpired reports whether token is a JWT whose exp claim has passed at
// now. Opaque or unparsable tokens are never considered expired; the backend
// has the final word on them.
func TokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}

	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}

// Current returns the stored session without contacting the backend.
func (s *Service) Current(ctx context.Context, key string) (domain.Session, error) {
	sess, err := s.store.Get(ctx, key)
	if errors.Is(err, serrors.ErrNotFound) {
		return domain.Session{}, ErrNotSignedIn
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not load session: %w", err)
	}

	return sess, nil
}

// Restore validates the stored session against the backend and refreshes the
// stored user. Expired or rejected tokens are removed.
func (s *Service) Restore(ctx context.Context, key string) (domain.Session, error) {
	sess, err := s.Current(ctx, key)
	if err != nil {
		return domain.Session{}, err
	}

	if TokenExpired(sess.Token, s.now()) {
		s.forget(ctx, key)

		return domain.Session{}, ErrSessionExpired
	}

	user, err := s.backend.Me(ctx, sess.Token)
	if errors.Is(err, serrors.ErrUnauthorized) {
		s.forget(ctx, key)

		return domain.Session{}, ErrSessionExpired
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not validate session: %w", err)
	}

	sess.User = user
	if err := s.store.Put(ctx, key, sess, s.options.SessionTTL); err != nil {
		return domain.Session{}, fmt.Errorf("could not store session: %w", err)
	}

	return sess, nil
}

func (s *Service) Login(ctx context.Context, key string, creds domain.Credentials) (domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := checkEmail(creds.Email); err != nil {
		return domain.Session{}, err
	}
	if creds.Password == "" {
		return domain.Session{}, ErrPasswordRequired
	}

	sess, err := s.backend.Login(ctx, creds)
	if errors.Is(err, serrors.ErrUnauthorized) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not log in: %w", err)
	}

	if err := s.store.Put(ctx, key, sess, s.options.SessionTTL); err != nil {
		return domain.Session{}, fmt.Errorf("could not store session: %w", err)
	}
	logger.Info(ctx, "user signed in", zap.String("userID", string(sess.User.ID)))

	return sess, nil
}

// Register creates an account. The backend signs the new user in right away,
// so the returned session is stored like a login.
func (s *Service) Register(ctx context.Context, key string, reg domain.Registration) (domain.Session, error) {
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.TrimSpace(reg.Email)

	switch {
	case reg.FirstName == "":
		return domain.Session{}, ErrFirstNameRequired
	case reg.LastName == "":
		return domain.Session{}, ErrLastNameRequired
	case !reg.AgreeToTerms:
		return domain.Session{}, ErrTermsNotAccepted
	}
	if err := checkEmail(reg.Email); err != nil {
		return domain.Session{}, err
	}
	if err := checkNewPassword(reg.Password, reg.ConfirmPassword); err != nil {
		return domain.Session{}, err
	}

	sess, err := s.backend.Register(ctx, reg)
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not register: %w", err)
	}

	if err := s.store.Put(ctx, key, sess, s.options.SessionTTL); err != nil {
		return domain.Session{}, fmt.Errorf("could not store session: %w", err)
	}

	return sess, nil
}

// Logout invalidates the token on the backend when possible and always drops
// the local session.
func (s *Service) Logout(ctx context.Context, key string) error {
	sess, err := s.store.Get(ctx, key)
	if err == nil && sess.Token != "" {
		if err := s.backend.Logout(ctx, sess.Token); err != nil {
			logger.Warn(ctx, "backend logout failed", zap.Error(err))
		}
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	return nil
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := checkEmail(email); err != nil {
		return err
	}

	if err := s.backend.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("could not request password reset: %w", err)
	}

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	if reset.Token == "" {
		return ErrResetTokenMissing
	}
	if err := checkNewPassword(reset.Password, reset.ConfirmPassword); err != nil {
		return err
	}

	if err := s.backend.ResetPassword(ctx, reset); err != nil {
		return fmt.Errorf("could not reset password: %w", err)
	}

	return nil
}

// UpdateProfile applies update on the backend and merges the result into the
// stored user.
func (s *Service) UpdateProfile(ctx context.Context, key string, update domain.ProfileUpdate) (domain.User, error) {
	sess, err := s.Current(ctx, key)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.backend.UpdateProfile(ctx, sess.Token, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("could not update profile: %w", err)
	}

	sess.User = mergeUser(sess.User, user, update)
	if err := s.store.Put(ctx, key, sess, s.options.SessionTTL); err != nil {
		return domain.User{}, fmt.Errorf("could not store session: %w", err)
	}

	return sess.User, nil
}

func (s *Service) ChangePassword(ctx context.Context, key string, change domain.PasswordChange) error {
	sess, err := s.Current(ctx, key)
	if err != nil {
		return err
	}
	if change.CurrentPassword == "" {
		return ErrPasswordRequired
	}
	if err := checkNewPassword(change.NewPassword, change.ConfirmPassword); err != nil {
		return err
	}

	if err := s.backend.ChangePassword(ctx, sess.Token, change); err != nil {
		return fmt.Errorf("could not change password: %w", err)
	}

	return nil
}

func (s *Service) forget(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn(ctx, "could not delete session", zap.Error(err))
	}
}

// mergeUser prefers the backend's copy and falls back to applying update to
// the stored one when the backend answered without a user.
func mergeUser(stored, returned domain.User, update domain.ProfileUpdate) domain.User {
	if returned.ID != "" {
		return returned
	}

	if update.FirstName != nil {
		stored.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		stored.LastName = *update.LastName
	}
	if update.Phone != nil {
		stored.Phone = *update.Phone
	}
	if update.Preferences != nil {
		stored.Preferences = *update.Preferences
	}

	return stored
}

func checkEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !validation.ValidateEmail(email) {
		return ErrInvalidEmail
	}

	return nil
}

func checkNewPassword(password, confirm string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case password != confirm:
		return ErrPasswordMismatch
	}

	return nil
}

func New(client backend.Client, store storage.SessionStore, options Options) *Service {
	return &Service{
		backend: client,
		store:   store,
		options: options,
		now:     time.Now,
	}
}
