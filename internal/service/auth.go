package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// dummyHash is compared against when the username is unknown so that both
// login failure paths spend a bcrypt round.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3.l0CqGMY0ICBQ5ht3qWVyu"

var codeSpace = big.NewInt(1_000_000)

type AuthConfig struct {
	// CodeTTL is how long a verification code stays valid.
	CodeTTL time.Duration
	// StrictDelivery fails registration and removes the new account when
	// the verification code cannot be delivered.
	StrictDelivery bool
}

type Auth struct {
	accounts       model.AccountStore
	sessions       model.SessionStore
	hasher         model.PasswordHasher
	tokens         model.TokenManager
	notifier       model.VerificationNotifier
	logger         *logger.Logger
	codeTTL        time.Duration
	strictDelivery bool

	now          func() time.Time
	generateCode func() (string, error)
}

func NewAuth(
	accounts model.AccountStore,
	sessions model.SessionStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	notifier model.VerificationNotifier,
	logger *logger.Logger,
	cfg AuthConfig,
) *Auth {
	return &Auth{
		accounts:       accounts,
		sessions:       sessions,
		hasher:         hasher,
		tokens:         tokens,
		notifier:       notifier,
		logger:         logger,
		codeTTL:        cfg.CodeTTL,
		strictDelivery: cfg.StrictDelivery,
		now:            time.Now,
		generateCode:   GenerateCode,
	}
}

// GenerateCode returns a uniformly random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to read random code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register creates an unverified account, sends it a verification code and
// attaches the new account to the session.
func (a *Auth) Register(ctx context.Context, sessionID string, reg model.Registration) (model.Account, error) {
	a.logger.Debug("Auth service: starting registration",
		"username", reg.Username,
		"email", reg.Email)

	_, err := a.accounts.GetByUsername(ctx, reg.Username)
	if err == nil {
		a.logger.Info("Auth service: username already taken",
			"username", reg.Username)
		return model.Account{}, apierrors.NewErrUsernameTaken(reg.Username)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get account by username",
			"username", reg.Username,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	existing, err := a.accounts.GetByEmail(ctx, reg.Email)
	switch {
	case err == nil && existing.EmailVerified:
		a.logger.Info("Auth service: email already registered",
			"email", reg.Email)
		return model.Account{}, apierrors.NewErrEmailIsTaken(reg.Email)
	case err == nil:
		if err := a.accounts.DeleteUnverifiedByEmail(ctx, reg.Email); err != nil {
			return model.Account{}, fmt.Errorf("failed to replace unverified account: %w", err)
		}
		a.logger.Info("Auth service: replaced unverified account",
			"email", reg.Email,
			"user_id", existing.ID)
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get account by email",
			"email", reg.Email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	hash, err := a.hasher.Hash(reg.Password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := a.accounts.Create(ctx, model.NewAccount{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FIO:          reg.FIO,
		Birthday:     reg.Birthday,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return model.Account{}, a.duplicateAccount(err, reg)
		}
		a.logger.Error("Auth service: failed to create account",
			"username", reg.Username,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	code, err := a.issueCode(ctx, account.ID)
	if err != nil {
		a.rollback(ctx, account)
		return model.Account{}, err
	}

	if err := a.notifier.SendVerificationCode(ctx, account.Email, code); err != nil {
		if a.strictDelivery {
			a.logger.Error("Auth service: verification code not delivered, rolling back",
				"email", account.Email,
				"error", err.Error())
			a.rollback(ctx, account)
			return model.Account{}, apierrors.NewErrNotificationFailed(err)
		}
		a.logger.Warn("Auth service: verification code not delivered",
			"email", account.Email,
			"error", err.Error())
	}

	a.updateSession(ctx, sessionID, func(s *model.Session) {
		s.User = snapshot(account)
	})

	a.logger.Info("Auth service: account registered",
		"user_id", account.ID,
		"username", account.Username)

	return account, nil
}

func (a *Auth) duplicateAccount(err error, reg model.Registration) error {
	var cerr *model.ConstraintError
	if errors.As(err, &cerr) {
		switch cerr.Column {
		case "username":
			return apierrors.NewErrUsernameTaken(reg.Username)
		case "email":
			return apierrors.NewErrEmailIsTaken(reg.Email)
		}
	}
	return apierrors.NewErrConflict("account already exists")
}

func (a *Auth) issueCode(ctx context.Context, accountID int64) (string, error) {
	code, err := a.generateCode()
	if err != nil {
		return "", err
	}

	now := a.now()
	a.sweep(ctx, now)

	if err := a.accounts.SetEmailCode(ctx, accountID, code, now.Add(a.codeTTL)); err != nil {
		a.logger.Error("Auth service: failed to store verification code",
			"user_id", accountID,
			"error", err.Error())
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	return code, nil
}

func (a *Auth) rollback(ctx context.Context, account model.Account) {
	if err := a.accounts.DeleteUnverified(context.WithoutCancel(ctx), account.ID); err != nil {
		a.logger.Error("Auth service: failed to remove account after failed registration",
			"user_id", account.ID,
			"error", err.Error())
	}
}

// sweep removes unverified accounts with expired codes. Failures are only logged.
func (a *Auth) sweep(ctx context.Context, now time.Time) {
	n, err := a.accounts.DeleteExpiredUnverified(ctx, now)
	if err != nil {
		a.logger.Warn("Auth service: cleanup of unverified accounts failed",
			"error", err.Error())
		return
	}
	if n > 0 {
		a.logger.Info("Auth service: removed expired unverified accounts",
			"count", n)
	}
}

// Authenticate checks credentials. Unknown usernames and wrong passwords
// produce the same error.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (model.Account, error) {
	account, err := a.accounts.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return model.Account{}, fmt.Errorf("failed to get account by username: %w", err)
		}
		// result ignored: timing only
		a.hasher.Verify(dummyHash, password)
		a.logger.Info("Auth service: login failed",
			"username", username)
		return model.Account{}, apierrors.NewErrInvalidCredentials()
	}

	if !a.hasher.Verify(account.PasswordHash, password) {
		a.logger.Info("Auth service: login failed",
			"username", username)
		return model.Account{}, apierrors.NewErrInvalidCredentials()
	}

	return account, nil
}

func (a *Auth) IssueToken(username string) (string, error) {
	token, err := a.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ParseToken returns the username a valid bearer token was issued to.
func (a *Auth) ParseToken(token string) (string, error) {
	username, err := a.tokens.Parse(token)
	if err != nil {
		a.logger.Debug("Auth service: rejected bearer token",
			"error", err.Error())
		return "", apierrors.NewErrNotAuthenticated()
	}
	return username, nil
}

// Login authenticates the user, issues a bearer token and stores both in the session.
func (a *Auth) Login(ctx context.Context, sessionID, username, password string) (string, error) {
	account, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := a.IssueToken(account.Username)
	if err != nil {
		return "", err
	}

	err = a.sessions.Set(ctx, sessionID, model.Session{
		User:  snapshot(account),
		Token: token,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to store session",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", account.ID,
		"username", account.Username)

	return token, nil
}

// VerifyEmailCode activates the account with email when code matches and has not expired.
func (a *Auth) VerifyEmailCode(ctx context.Context, email, code string) error {
	account, err := a.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrAccountNotFound(email)
		}
		return fmt.Errorf("failed to get account by email: %w", err)
	}

	if account.EmailVerified {
		return apierrors.NewErrEmailAlreadyVerified(email)
	}

	if account.EmailCode == nil || subtle.ConstantTimeCompare([]byte(*account.EmailCode), []byte(code)) != 1 {
		a.logger.Info("Auth service: invalid verification code",
			"email", email)
		return apierrors.NewErrInvalidCode()
	}

	now := a.now()
	if account.EmailExpires == nil || now.After(*account.EmailExpires) {
		a.sweep(ctx, now)
		a.logger.Info("Auth service: verification code expired",
			"email", email)
		return apierrors.NewErrCodeExpired()
	}

	if err := a.accounts.ConfirmEmail(ctx, account.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrEmailAlreadyVerified(email)
		}
		return fmt.Errorf("failed to confirm email: %w", err)
	}

	a.logger.Info("Auth service: email confirmed",
		"user_id", account.ID,
		"email", email)

	return nil
}

// ConfirmEmail verifies the code and marks the session user as verified
// when the session belongs to the same email.
func (a *Auth) ConfirmEmail(ctx context.Context, sessionID, email, code string) error {
	if err := a.VerifyEmailCode(ctx, email, code); err != nil {
		return err
	}

	a.updateSession(ctx, sessionID, func(s *model.Session) {
		if s.User != nil && s.User.Email == email {
			s.User.EmailVerified = true
		}
	})

	return nil
}

// Logout forgets the session. Unknown sessions are not an error.
func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	a.logger.Debug("Auth service: session closed")

	return nil
}

// Me returns the user attached to the session.
func (a *Auth) Me(ctx context.Context, sessionID string) (model.SessionUser, error) {
	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.SessionUser{}, apierrors.NewErrNotAuthenticated()
		}
		return model.SessionUser{}, fmt.Errorf("failed to get session: %w", err)
	}
	if !session.Authenticated() {
		return model.SessionUser{}, apierrors.NewErrNotAuthenticated()
	}
	return *session.User, nil
}

// updateSession applies fn to the stored session. Failures are logged since
// the account change they follow has already been committed. A session that
// was deleted meanwhile stays deleted.
func (a *Auth) updateSession(ctx context.Context, sessionID string, fn func(*model.Session)) {
	if sessionID == "" {
		return
	}

	err := a.sessions.Update(ctx, sessionID, fn)
	switch {
	case errors.Is(err, model.ErrNotFound):
		a.logger.Debug("Auth service: session gone before update")
	case err != nil:
		a.logger.Warn("Auth service: failed to update session",
			"error", err.Error())
	}
}

func snapshot(account model.Account) *model.SessionUser {
	return &model.SessionUser{
		ID:            account.ID,
		Username:      account.Username,
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
	}
}
