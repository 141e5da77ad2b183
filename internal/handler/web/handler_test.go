package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	"LiquiDash/internal/usecase"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/session"
)

type memUserStore struct {
	users map[string]models.UserAccount
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (models.UserAccount, error) {
	u, ok := m.users[username]
	if !ok {
		return models.UserAccount{}, models.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserStore) Insert(_ context.Context, user models.UserAccount) error {
	m.users[user.Username] = user
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(int, bool)    {}
func (nopMetrics) RecordRender(string)      {}
func (nopMetrics) RecordLogin(bool)         {}
func (nopMetrics) RecordRegistration(bool)  {}
func (nopMetrics) RecordError(string)       {}

type nopAudit struct{}

func (nopAudit) Publish(context.Context, domrepo.AuditEvent) error { return nil }
func (nopAudit) Close() error                                      { return nil }

func newTestApp(t *testing.T) (*echo.Echo, *session.Manager) {
	t.Helper()

	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	sm, err := session.NewManager("test_session", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	auth := usecase.NewAuth(&memUserStore{users: map[string]models.UserAccount{}}, nopAudit{}, nopMetrics{}, l)

	snap := models.NewSnapshot([]models.LiquidityRecord{
		{EndOfDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), OpeningBalance: 100},
		{EndOfDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), OpeningBalance: 200},
	})
	dash := usecase.NewDashboard(snap, nil, 0, nopMetrics{}, l)

	e := echo.New()
	NewHandler(l, auth, dash, sm).RegisterRoutes(e)
	return e, sm
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterThenLoginFlow(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/register", url.Values{"username": {"alice"}, "password": {"pw12345"}})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"pw12345"}})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard/", rec.Header().Get("Location"))
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestLoginInvalidCredentials(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/login", url.Values{"username": {"ghost"}, "password": {"pw"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginRequiresFields(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/login", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/register", url.Values{"username": {"alice"}, "password": {"pw"}})
	require.Equal(t, http.StatusFound, rec.Code)

	rec = postForm(e, "/register", url.Values{"username": {"alice"}, "password": {"other"}})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Username already exists")
}

func TestDashboardRequiresSession(t *testing.T) {
	e, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestDashboardPageWithSession(t *testing.T) {
	e, sm := newTestApp(t)

	cookie, err := sm.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "opening_balance")
	require.Contains(t, body, "2024-01-01")
	require.Contains(t, body, "2024-01-02")
	require.Contains(t, body, "alice")
}

func TestRenderCallback(t *testing.T) {
	e, sm := newTestApp(t)

	cookie, err := sm.Issue("alice")
	require.NoError(t, err)

	body := `{"start_date":"2024-01-01","end_date":"2024-01-02","metric":"opening_balance"}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/render", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	require.Contains(t, out, "Total Liquidity: 300.00 HKD")
	require.Contains(t, out, "Opening Balance Over Time")
}

func TestRenderRejectsBadDate(t *testing.T) {
	e, sm := newTestApp(t)

	cookie, err := sm.Issue("alice")
	require.NoError(t, err)

	body := `{"start_date":"01/01/2024","end_date":"2024-01-02","metric":"opening_balance"}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/render", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderRejectsUnknownMetric(t *testing.T) {
	e, sm := newTestApp(t)

	cookie, err := sm.Issue("alice")
	require.NoError(t, err)

	body := `{"start_date":"2024-01-01","end_date":"2024-01-02","metric":"net_position"}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/render", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	e, sm := newTestApp(t)

	cookie, err := sm.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.CookieName() && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}
