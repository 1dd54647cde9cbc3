package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidResetCode   = errors.New("verification code is invalid or expired")
	ErrDeliveryFailed     = errors.New("could not deliver verification email")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// Account is a credential record, uniquely identified by email.
// ResetCode and ResetCodeExpiry are set together while a password reset is
// pending and cleared together when one completes; neither is ever set alone.
type Account struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResetCode       *string
	ResetCodeExpiry *time.Time
}

// SetResetCode marks a pending password reset.
func (a *Account) SetResetCode(code string, expiry time.Time) {
	a.ResetCode = &code
	a.ResetCodeExpiry = &expiry
}

// ClearResetCode removes any pending reset, expired or not.
func (a *Account) ClearResetCode() {
	a.ResetCode = nil
	a.ResetCodeExpiry = nil
}

// ResetCodeValid reports whether submitted matches the stored pending code
// and the code has not expired at now. Expiry is evaluated lazily here;
// expired codes stay in storage until a reset completes and overwrites them.
func (a *Account) ResetCodeValid(submitted string, now time.Time) bool {
	if a.ResetCode == nil || a.ResetCodeExpiry == nil {
		return false
	}
	if *a.ResetCode != submitted {
		return false
	}
	return now.UTC().Before(a.ResetCodeExpiry.UTC())
}
