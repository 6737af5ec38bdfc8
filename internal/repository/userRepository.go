package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/storage"
)

type UserRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	AddUser(ctx context.Context, u *domain.User) error
	UpdatePasswordHash(ctx context.Context, username, hash string) error
	UpdateUsername(ctx context.Context, oldName, newName string) error
	CountUsers(ctx context.Context) (int, error)
}

type UserRepository struct {
	store *storage.Store
}

func NewUserRepository(s *storage.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.store.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) AddUser(ctx context.Context, u *domain.User) error {
	res, err := r.store.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		u.Username, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	res, err := r.store.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`, hash, username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, oldName, newName string) error {
	res, err := r.store.ExecContext(ctx,
		`UPDATE users SET username = ? WHERE username = ?`, newName, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
