package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/partsgarage/inventory-api/internal/auth"
	"github.com/partsgarage/inventory-api/internal/model"
)

// userStore is the slice of the user repository the service needs.
type userStore interface {
	Create(ctx context.Context, username, passwordHash string, role model.RoleID) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserService implements registration, credential validation and role
// resolution. The admin allowlist is injected configuration, not
// compiled-in identity checks: usernames on the list register as
// admins, everyone else registers as a guest, and the role is fixed
// at creation.
type UserService struct {
	users      userStore
	bcryptCost int
	minEntropy float64
	admins     map[string]bool
}

// NewUserService builds a UserService. adminUsers is the bootstrap
// allowlist from configuration.
func NewUserService(users userStore, bcryptCost int, minEntropy float64, adminUsers []string) *UserService {
	admins := make(map[string]bool, len(adminUsers))
	for _, u := range adminUsers {
		admins[u] = true
	}
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		minEntropy: minEntropy,
		admins:     admins,
	}
}

// Register creates a new user. All validation happens before any
// persistence side effect; a rejected registration leaves no row
// behind.
func (s *UserService) Register(ctx context.Context, username, password, confirm string) (model.User, error) {
	username = strings.TrimSpace(username)
	if password != confirm {
		return model.User{}, fmt.Errorf("%w: passwords do not match", model.ErrValidation)
	}
	if !auth.IsValidUsername(username) {
		return model.User{}, fmt.Errorf("%w: username must be %d to %d characters",
			model.ErrValidation, auth.MinUsernameLength, auth.MaxUsernameLength)
	}
	if !auth.IsValidPassword(password, s.minEntropy) {
		return model.User{}, fmt.Errorf("%w: password too weak", model.ErrValidation)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.User{}, wrapStore(err)
	}

	role := model.RoleGuest
	if s.admins[username] {
		role = model.RoleAdmin
	}

	id, err := s.users.Create(ctx, username, hash, role)
	if err != nil {
		return model.User{}, wrapStore(err)
	}
	return model.User{ID: id, Username: username, PasswordHash: hash, RoleID: role}, nil
}

// ValidateLogin checks a credential pair. An unknown username yields
// false, not an error, so login failures are uniform for the caller.
func (s *UserService) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapStore(err)
	}
	return auth.VerifyPassword(u.PasswordHash, password), nil
}

// GetRole returns the stored role of a username. Unknown usernames
// are model.ErrNotFound; the authentication gate maps that to guest.
func (s *UserService) GetRole(ctx context.Context, username string) (model.RoleID, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: user %q", model.ErrNotFound, username)
		}
		return 0, wrapStore(err)
	}
	return u.RoleID, nil
}

// GetByUsername returns the full user record for a known username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("%w: user %q", model.ErrNotFound, username)
		}
		return model.User{}, wrapStore(err)
	}
	return u, nil
}

// UserExists reports whether a username is registered.
func (s *UserService) UserExists(ctx context.Context, username string) (bool, error) {
	ok, err := s.users.ExistsByUsername(ctx, username)
	return ok, wrapStore(err)
}

// UserExistsByID reports whether a user id is registered.
func (s *UserService) UserExistsByID(ctx context.Context, id uint64) (bool, error) {
	ok, err := s.users.ExistsByID(ctx, id)
	return ok, wrapStore(err)
}
