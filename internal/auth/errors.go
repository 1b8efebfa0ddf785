package auth

import "emailfinder/pkg/serrors"

var (
	ErrInvalidCredentials = serrors.With(serrors.ErrUnauthorized, "Invalid email or password. Please try again.")
	ErrNotSignedIn        = serrors.With(serrors.ErrUnauthorized, "Please sign in to continue.")
	ErrSessionExpired     = serrors.With(serrors.ErrUnauthorized, "Your session has expired. Please sign in again.")

	ErrEmailRequired     = serrors.With(serrors.ErrBadRequest, "Email is required")
	ErrInvalidEmail      = serrors.With(serrors.ErrBadRequest, "Please enter a valid email address")
	ErrPasswordRequired  = serrors.With(serrors.ErrBadRequest, "Password is required")
	ErrPasswordTooShort  = serrors.With(serrors.ErrBadRequest, "Password must be at least 8 characters")
	ErrPasswordMismatch  = serrors.With(serrors.ErrBadRequest, "Passwords do not match")
	ErrFirstNameRequired = serrors.With(serrors.ErrBadRequest, "First name is required")
	ErrLastNameRequired  = serrors.With(serrors.ErrBadRequest, "Last name is required")
	ErrTermsNotAccepted  = serrors.With(serrors.ErrBadRequest, "You must agree to the terms and conditions")
	ErrResetTokenMissing = serrors.With(serrors.ErrBadRequest, "Reset token is missing or invalid")
)
