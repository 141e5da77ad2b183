package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	"LiquiDash/pkg/cryptox"
	applogger "LiquiDash/pkg/logger"
)

// Auth is the credential gate: it validates registration and login
// against the user store. Session issuance lives with the HTTP layer;
// this type only decides whether a transition is allowed.
type Auth struct {
	users   domrepo.UserStore
	audit   domrepo.AuditPublisher
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewAuth(users domrepo.UserStore, audit domrepo.AuditPublisher, m domrepo.Metrics, l *applogger.Logger) *Auth {
	return &Auth{users: users, audit: audit, metrics: m, l: l}
}

// Register stores a new account with an Argon2id password hash. Fails
// with ErrDuplicateUser when the username is taken, leaving the existing
// credential untouched. No auto-login.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	if _, err := a.users.FindByUsername(ctx, username); err == nil {
		a.metrics.RecordRegistration(false)
		return models.ErrDuplicateUser
	} else if !errors.Is(err, models.ErrUserNotFound) {
		a.metrics.RecordError("user_store")
		return fmt.Errorf("register lookup: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		a.metrics.RecordError("password_hash")
		return fmt.Errorf("hash password: %w", err)
	}

	if err := a.users.Insert(ctx, models.UserAccount{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}); err != nil {
		a.metrics.RecordError("user_store")
		return fmt.Errorf("register insert: %w", err)
	}

	a.metrics.RecordRegistration(true)
	a.publishAudit(ctx, domrepo.AuditEvent{Kind: "user_registered", Username: username, OK: true})
	a.l.Info("user registered", applogger.String("username", username))
	return nil
}

// Login verifies the password against the stored hash. A missing user
// and a wrong password both return ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			a.metrics.RecordLogin(false)
			a.publishAudit(ctx, domrepo.AuditEvent{Kind: "user_login", Username: username, OK: false})
			return models.ErrInvalidCredentials
		}
		a.metrics.RecordError("user_store")
		return fmt.Errorf("login lookup: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		a.metrics.RecordLogin(false)
		a.publishAudit(ctx, domrepo.AuditEvent{Kind: "user_login", Username: username, OK: false})
		return models.ErrInvalidCredentials
	}

	a.metrics.RecordLogin(true)
	a.publishAudit(ctx, domrepo.AuditEvent{Kind: "user_login", Username: username, OK: true})
	return nil
}

func (a *Auth) publishAudit(ctx context.Context, ev domrepo.AuditEvent) {
	if err := a.audit.Publish(ctx, ev); err != nil {
		a.l.Warn("audit publish failed",
			applogger.String("kind", ev.Kind),
			applogger.Error(err),
		)
	}
}
