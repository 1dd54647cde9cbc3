package repository

import (
	"context"

	"github.com/raqa-app/auth-service/internal/domain"
)

// AccountRepository is the directory of accounts, keyed by unique email.
// Every call is individually atomic; there is no cross-call locking, so
// concurrent writers to the same account race and the last update wins.
type AccountRepository interface {
	// FindByEmail returns domain.ErrAccountNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Insert fails with domain.ErrDuplicateEmail when the email is taken.
	Insert(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
}
