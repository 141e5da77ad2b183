package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager("test_session", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	cookie, err := m.Issue("alice")
	require.NoError(t, err)
	require.Equal(t, "test_session", cookie.Name)
	require.True(t, cookie.HttpOnly)

	username, err := m.Verify(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m, err := NewManager("s", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	cookie, err := m.Issue("alice")
	require.NoError(t, err)

	_, err = m.Verify(cookie.Value + "x")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	a, err := NewManager("s", "secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewManager("s", "secret-b", time.Hour)
	require.NoError(t, err)

	cookie, err := a.Issue("alice")
	require.NoError(t, err)

	_, err = b.Verify(cookie.Value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, err := NewManager("s", "unit-test-secret", -time.Minute)
	require.NoError(t, err)

	cookie, err := m.Issue("alice")
	require.NoError(t, err)

	_, err = m.Verify(cookie.Value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	m, err := NewManager("s", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	_, err = m.Verify("")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestRandomSecretWhenUnset(t *testing.T) {
	a, err := NewManager("s", "", time.Hour)
	require.NoError(t, err)
	b, err := NewManager("s", "", time.Hour)
	require.NoError(t, err)

	cookie, err := a.Issue("alice")
	require.NoError(t, err)

	// The same manager verifies its own token, a fresh one does not.
	_, err = a.Verify(cookie.Value)
	require.NoError(t, err)
	_, err = b.Verify(cookie.Value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestClearExpiresCookie(t *testing.T) {
	m, err := NewManager("test_session", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	cookie := m.Clear()
	require.Equal(t, "test_session", cookie.Name)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
