package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/raqa-app/auth-service/internal/auth"
	"github.com/raqa-app/auth-service/internal/domain"
	"github.com/raqa-app/auth-service/internal/email"
	"github.com/raqa-app/auth-service/internal/metrics"
	"github.com/raqa-app/auth-service/internal/repository"
)

const resetCodeTTL = 10 * time.Minute

type AuthUsecase struct {
	accounts repository.AccountRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	email    email.Sender
	now      func() time.Time
}

func NewAuthUsecase(
	accounts repository.AccountRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	emailSender email.Sender,
	now func() time.Time,
) *AuthUsecase {
	return &AuthUsecase{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		email:    emailSender,
		now:      now,
	}
}

// Signup creates a new account. The caller logs in separately; no token is
// issued here.
func (u *AuthUsecase) Signup(ctx context.Context, name, emailAddr, password string) error {
	_, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err == nil {
		return domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("find account: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := u.now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Insert is the backstop for two signups racing past FindByEmail; the
	// unique constraint surfaces as ErrDuplicateEmail either way.
	if err := u.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	metrics.SignupsTotal.Inc()
	return nil
}

// Login verifies credentials and returns a signed bearer token. A missing
// account and a wrong password both yield ErrInvalidCredentials so callers
// cannot probe which emails are registered.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	account, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	if !u.hasher.Verify(password, account.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(account.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("granted").Inc()
	return token, nil
}

// RequestPasswordReset generates a 6-digit code, stores it with a 10-minute
// expiry, then emails it. The code is persisted before delivery is attempted
// and stays valid even when delivery fails, so a retried send does not need
// a new code.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	account, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	now := u.now().UTC()
	account.SetResetCode(code, now.Add(resetCodeTTL))
	account.UpdatedAt = now
	if err := u.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	metrics.ResetCodesSentTotal.Inc()

	subject := "Password Reset: Verification Code"
	body := fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code)
	if err := u.email.Send(ctx, account.Email, subject, body); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// VerifyResetCode checks a submitted code against the pending one. It is
// read-only: a valid code stays valid until the reset completes or the
// expiry passes, so the client may verify more than once.
func (u *AuthUsecase) VerifyResetCode(ctx context.Context, emailAddr, code string) error {
	account, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.ResetCodeChecksTotal.WithLabelValues("invalid").Inc()
			return domain.ErrInvalidResetCode
		}
		return fmt.Errorf("find account: %w", err)
	}

	if !account.ResetCodeValid(code, u.now()) {
		metrics.ResetCodeChecksTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidResetCode
	}

	metrics.ResetCodeChecksTotal.WithLabelValues("valid").Inc()
	return nil
}

// CompletePasswordReset replaces the password hash and clears any pending
// reset code. It trusts that the client verified the code first and does not
// re-check it.
func (u *AuthUsecase) CompletePasswordReset(ctx context.Context, emailAddr, newPassword string) error {
	account, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.PasswordHash = hash
	account.ClearResetCode()
	account.UpdatedAt = u.now().UTC()
	if err := u.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	metrics.PasswordResetsTotal.Inc()
	return nil
}

// Profile returns the account behind an authenticated request.
func (u *AuthUsecase) Profile(ctx context.Context, emailAddr string) (*domain.Account, error) {
	account, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// generateResetCode draws a uniform 6-digit code from [100000, 999999];
// the range makes a leading zero impossible.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
