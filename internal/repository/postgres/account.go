package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/autocompany-server/internal/model"
)

const accountColumns = `user_id, username, email, hashed_password, fio, birthday,
	status, email_verified, email_code, email_expires`

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FIO, &a.Birthday,
		&a.Status, &a.EmailVerified, &a.EmailCode, &a.EmailExpires,
	)
	return a, err
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE username = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err = classify(err, "users"); errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err = classify(err, "users"); errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// Create inserts a pending, unverified account. Duplicate usernames or emails
// fail with a *model.ConstraintError naming the column.
func (r *AccountRepository) Create(ctx context.Context, account model.NewAccount) (model.Account, error) {
	query := `INSERT INTO users (username, email, hashed_password, fio, birthday, status, email_verified)
			  VALUES ($1, $2, $3, $4, $5, $6, FALSE)
			  RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRowContext(ctx, query,
		account.Username, account.Email, account.PasswordHash, account.FIO, account.Birthday,
		string(model.AccountStatusPending),
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", classify(err, "users"))
	}

	return created, nil
}

func (r *AccountRepository) DeleteUnverifiedByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM users WHERE email = $1 AND email_verified = FALSE`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("failed to delete unverified account by email: %w", err)
	}

	return nil
}

func (r *AccountRepository) DeleteUnverified(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE user_id = $1 AND email_verified = FALSE`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete unverified account: %w", err)
	}

	return nil
}

func (r *AccountRepository) SetEmailCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	query := `UPDATE users SET email_code = $1, email_expires = $2
			  WHERE user_id = $3 AND email_verified = FALSE`

	err := execAffecting(ctx, r.db, query, code, expiresAt, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to set email code: %w", err)
	}

	return nil
}

func (r *AccountRepository) ConfirmEmail(ctx context.Context, id int64) error {
	query := `UPDATE users
			  SET status = $1, email_verified = TRUE, email_code = NULL, email_expires = NULL
			  WHERE user_id = $2 AND email_verified = FALSE`

	err := execAffecting(ctx, r.db, query, string(model.AccountStatusActive), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to confirm email: %w", err)
	}

	return nil
}

func (r *AccountRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM users WHERE email_verified = FALSE AND email_expires < $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired accounts: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return n, nil
}
