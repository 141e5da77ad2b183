package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
)

type fakeUserStore struct {
	users map[string]models.UserAccount
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.UserAccount{}}
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.UserAccount, error) {
	u, ok := f.users[username]
	if !ok {
		return models.UserAccount{}, models.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user models.UserAccount) error {
	f.users[user.Username] = user
	return nil
}

type fakeAudit struct {
	events []domrepo.AuditEvent
}

func (f *fakeAudit) Publish(_ context.Context, ev domrepo.AuditEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeAudit) Close() error { return nil }

func newAuth(t *testing.T, users *fakeUserStore, audit *fakeAudit) *Auth {
	t.Helper()
	return NewAuth(users, audit, &fakeMetrics{}, testLogger(t))
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	audit := &fakeAudit{}
	a := newAuth(t, users, audit)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, "alice", "s3cret-passphrase"))

	stored, ok := users.users["alice"]
	require.True(t, ok)
	require.NotEqual(t, "s3cret-passphrase", stored.PasswordHash)
	require.False(t, stored.CreatedAt.IsZero())

	require.NoError(t, a.Login(ctx, "alice", "s3cret-passphrase"))

	require.Len(t, audit.events, 2)
	require.Equal(t, "user_registered", audit.events[0].Kind)
	require.Equal(t, "user_login", audit.events[1].Kind)
	require.True(t, audit.events[1].OK)
}

func TestRegisterDuplicatePreservesCredential(t *testing.T) {
	users := newFakeUserStore()
	a := newAuth(t, users, &fakeAudit{})
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, "alice", "original-password"))
	original := users.users["alice"].PasswordHash

	err := a.Register(ctx, "alice", "attacker-password")
	require.ErrorIs(t, err, models.ErrDuplicateUser)
	require.Equal(t, original, users.users["alice"].PasswordHash)

	// Original credential still works, the attempted one does not.
	require.NoError(t, a.Login(ctx, "alice", "original-password"))
	require.ErrorIs(t, a.Login(ctx, "alice", "attacker-password"), models.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	audit := &fakeAudit{}
	a := newAuth(t, users, audit)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, "bob", "right-password"))

	err := a.Login(ctx, "bob", "wrong-password")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	last := audit.events[len(audit.events)-1]
	require.Equal(t, "user_login", last.Kind)
	require.False(t, last.OK)
}

func TestLoginUnknownUser(t *testing.T) {
	a := newAuth(t, newFakeUserStore(), &fakeAudit{})

	err := a.Login(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}
