package model

import (
	"context"
	"time"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusPending AccountStatus = "pending"
	AccountStatusActive  AccountStatus = "active"
)

// Account is a registered administrator.
type Account struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	FIO           string
	Birthday      time.Time
	Status        AccountStatus
	EmailVerified bool
	EmailCode     *string
	EmailExpires  *time.Time
}

// NewAccount holds the fields required to insert an account.
type NewAccount struct {
	Username     string
	Email        string
	PasswordHash string
	FIO          string
	Birthday     time.Time
}

// Registration is a validated sign-up request.
type Registration struct {
	Email    string
	Username string
	Password string
	FIO      string
	Birthday time.Time
}

// AccountStore persists accounts and their email confirmation state.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, account NewAccount) (Account, error)
	// DeleteUnverifiedByEmail removes the account with the email unless it is verified.
	DeleteUnverifiedByEmail(ctx context.Context, email string) error
	// DeleteUnverified removes the account with the id unless it is verified.
	DeleteUnverified(ctx context.Context, id int64) error
	SetEmailCode(ctx context.Context, id int64, code string, expiresAt time.Time) error
	// ConfirmEmail activates an unverified account and clears its code.
	// It returns ErrNotFound if there is no unverified account with the id.
	ConfirmEmail(ctx context.Context, id int64) error
	// DeleteExpiredUnverified removes unverified accounts whose code expired before now.
	DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
