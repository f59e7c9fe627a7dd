package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/unifly-app/unifly/domain/account"
	"github.com/unifly-app/unifly/domain/repository"
	"github.com/unifly-app/unifly/infrastructure/persistence"
)

// ErrInvalidAccount indicates an account payload failed validation.
var ErrInvalidAccount = errors.New("invalid account")

// Accounts manages user accounts in the relational store.
type Accounts struct {
	store  *persistence.AccountStore
	logger *slog.Logger
}

// NewAccounts creates an Accounts service.
func NewAccounts(store *persistence.AccountStore, logger *slog.Logger) *Accounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accounts{store: store, logger: logger}
}

func validRole(role account.Role) bool {
	switch role {
	case account.RoleStudent, account.RoleAdvisor, account.RoleParent, account.RoleAdmin:
		return true
	}
	return false
}

// Save validates and upserts an account. New accounts default to the
// student role and active status.
func (a *Accounts) Save(ctx context.Context, user account.User) (account.User, error) {
	if user.UserID() <= 0 {
		return account.User{}, fmt.Errorf("%w: user id must be positive", ErrInvalidAccount)
	}
	if user.Email() == "" {
		return account.User{}, fmt.Errorf("%w: email is required", ErrInvalidAccount)
	}

	role := user.Role()
	if role == "" {
		role = account.RoleStudent
	}
	if !validRole(role) {
		return account.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidAccount, role)
	}

	status := user.Status()
	if status == "" {
		status = account.StatusActive
	}

	user = account.NewUser(user.UserID(), user.Email(), user.Name(), role, status)
	if err := a.store.Save(ctx, user); err != nil {
		return account.User{}, err
	}

	a.logger.Debug("saved account", "user_id", user.UserID())
	return a.store.Get(ctx, user.UserID())
}

// Get returns the account with the given user ID.
func (a *Accounts) Get(ctx context.Context, userID int64) (account.User, error) {
	return a.store.Get(ctx, userID)
}

// List returns accounts, optionally filtered by role and status.
func (a *Accounts) List(ctx context.Context, role, status string, limit, offset int) ([]account.User, error) {
	var options []repository.Option
	if role != "" {
		options = append(options, repository.WithRole(role))
	}
	if status != "" {
		options = append(options, repository.WithStatus(status))
	}
	if limit > 0 {
		options = append(options, repository.WithPagination(limit, offset)...)
	}
	return a.store.List(ctx, options...)
}

// Delete removes the account with the given user ID.
func (a *Accounts) Delete(ctx context.Context, userID int64) error {
	return a.store.Delete(ctx, userID)
}
