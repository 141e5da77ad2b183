package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
)

// CHUserStore implements UserStore backed by ClickHouse. Accounts are
// append-only: created on registration, read on login, never updated.
type CHUserStore struct {
	db    *sql.DB
	table string
}

func NewCHUserStore(db *sql.DB, table string) *CHUserStore {
	return &CHUserStore{db: db, table: table}
}

func (s *CHUserStore) FindByUsername(ctx context.Context, username string) (models.UserAccount, error) {
	q := fmt.Sprintf(
		"SELECT username, password_hash, created_at FROM %s WHERE username = ? LIMIT 1",
		s.table,
	)

	var u models.UserAccount
	err := s.db.QueryRowContext(ctx, q, username).Scan(&u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserAccount{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.UserAccount{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *CHUserStore) Insert(ctx context.Context, user models.UserAccount) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (username, password_hash, created_at) VALUES (?, ?, ?)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, q, user.Username, user.PasswordHash, user.CreatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

var _ domrepo.UserStore = (*CHUserStore)(nil)
