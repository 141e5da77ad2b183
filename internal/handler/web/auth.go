package web

import (
	"errors"
	"net/http"

	"LiquiDash/internal/domain/models"
	applogger "LiquiDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

type formPage struct {
	Error string
}

// Index routes to the dashboard when authenticated, login otherwise.
func (h *Handler) Index(c echo.Context) error {
	if _, ok := h.currentUser(c); ok {
		return c.Redirect(http.StatusFound, "/dashboard/")
	}
	return c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", formPage{})
}

func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "login.html", formPage{Error: "Username and password are required"})
	}

	if err := h.auth.Login(c.Request().Context(), username, password); err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", formPage{Error: "Invalid credentials"})
		}
		h.logger.Error("login failed", applogger.Error(err))
		return c.Render(http.StatusInternalServerError, "login.html", formPage{Error: "Something went wrong"})
	}

	cookie, err := h.sessions.Issue(username)
	if err != nil {
		h.logger.Error("session issue failed", applogger.Error(err))
		return c.Render(http.StatusInternalServerError, "login.html", formPage{Error: "Something went wrong"})
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/dashboard/")
}

func (h *Handler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", formPage{})
}

func (h *Handler) Register(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "register.html", formPage{Error: "Username and password are required"})
	}

	if err := h.auth.Register(c.Request().Context(), username, password); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			return c.Render(http.StatusConflict, "register.html", formPage{Error: "Username already exists"})
		}
		h.logger.Error("register failed", applogger.Error(err))
		return c.Render(http.StatusInternalServerError, "register.html", formPage{Error: "Something went wrong"})
	}

	// No auto-login after registration.
	return c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session cookie unconditionally; a no-op when
// already anonymous.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.Redirect(http.StatusFound, "/login")
}
