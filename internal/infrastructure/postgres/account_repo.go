package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raqa-app/auth-service/internal/domain"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at, reset_code, reset_code_expiry
	          FROM accounts WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	return scanAccount(row)
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (id, email, name, password_hash, created_at, updated_at, reset_code, reset_code_expiry)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Email, account.Name, account.PasswordHash,
		account.CreatedAt, account.UpdatedAt, account.ResetCode, account.ResetCodeExpiry,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `UPDATE accounts
	          SET name = $2, password_hash = $3, updated_at = $4, reset_code = $5, reset_code_expiry = $6
	          WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query,
		account.Email, account.Name, account.PasswordHash,
		account.UpdatedAt, account.ResetCode, account.ResetCodeExpiry,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash,
		&a.CreatedAt, &a.UpdatedAt, &a.ResetCode, &a.ResetCodeExpiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
