package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/autocompany-server/internal/model"
)

var _ model.AccountStore = (*AccountStore)(nil)

// AccountStore is an in-memory model.AccountStore for handler and service tests.
type AccountStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]model.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[int64]model.Account)}
}

func (s *AccountStore) find(match func(model.Account) bool) (model.Account, bool) {
	for _, a := range s.accounts {
		if match(a) {
			return a, true
		}
	}
	return model.Account{}, false
}

func (s *AccountStore) GetByUsername(_ context.Context, username string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.find(func(a model.Account) bool { return a.Username == username }); ok {
		return a, nil
	}
	return model.Account{}, model.ErrNotFound
}

func (s *AccountStore) GetByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.find(func(a model.Account) bool { return a.Email == email }); ok {
		return a, nil
	}
	return model.Account{}, model.ErrNotFound
}

func (s *AccountStore) Create(_ context.Context, account model.NewAccount) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(func(a model.Account) bool { return a.Username == account.Username }); ok {
		return model.Account{}, &model.ConstraintError{Err: model.ErrAlreadyExists, Constraint: "users_username_key", Column: "username"}
	}
	if _, ok := s.find(func(a model.Account) bool { return a.Email == account.Email }); ok {
		return model.Account{}, &model.ConstraintError{Err: model.ErrAlreadyExists, Constraint: "users_email_key", Column: "email"}
	}

	s.nextID++
	a := model.Account{
		ID:           s.nextID,
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		FIO:          account.FIO,
		Birthday:     account.Birthday,
		Status:       model.AccountStatusPending,
	}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *AccountStore) DeleteUnverifiedByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.accounts {
		if a.Email == email && !a.EmailVerified {
			delete(s.accounts, id)
		}
	}
	return nil
}

func (s *AccountStore) DeleteUnverified(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[id]; ok && !a.EmailVerified {
		delete(s.accounts, id)
	}
	return nil
}

func (s *AccountStore) SetEmailCode(_ context.Context, id int64, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return model.ErrNotFound
	}
	a.EmailCode = &code
	a.EmailExpires = &expiresAt
	s.accounts[id] = a
	return nil
}

func (s *AccountStore) ConfirmEmail(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok || a.EmailVerified {
		return model.ErrNotFound
	}
	a.Status = model.AccountStatusActive
	a.EmailVerified = true
	a.EmailCode = nil
	a.EmailExpires = nil
	s.accounts[id] = a
	return nil
}

func (s *AccountStore) DeleteExpiredUnverified(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, a := range s.accounts {
		if !a.EmailVerified && a.EmailExpires != nil && a.EmailExpires.Before(now) {
			delete(s.accounts, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}
