// Package repository contains data access logic separated from HTTP
// handlers and services. Repositories speak raw database/sql and
// surface storage errors unchanged (sql.ErrNoRows included); the
// service layer translates them into the domain error taxonomy. The
// one exception is duplicate-key detection, which is storage specific
// and therefore handled here.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/partsgarage/inventory-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. The password must already
// be hashed by the caller. A MySQL 1062 duplicate-key error on the
// username unique index maps to model.ErrDuplicateUser.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string, role model.RoleID) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role_id) VALUES (?,?,?)",
		username, passwordHash, uint8(role))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, model.ErrDuplicateUser
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		u      model.User
		roleID uint8
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role_id FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &roleID)
	u.RoleID = model.RoleID(roleID)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var (
		u      model.User
		roleID uint8
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role_id FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &roleID)
	u.RoleID = model.RoleID(roleID)
	return u, err
}

// ExistsByID reports whether a user row with the given id exists.
func (r *UserRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsByUsername reports whether a user row with the given username
// exists.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username=? LIMIT 1", username).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
