// Package web is the presentation shell: login/register/logout pages,
// the gated dashboard page and its render callbacks (JSON and
// websocket).
package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"LiquiDash/internal/usecase"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/session"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler wires the web routes to the credential gate and the dashboard
// engine.
type Handler struct {
	logger   *applogger.Logger
	auth     *usecase.Auth
	dash     *usecase.Dashboard
	sessions *session.Manager
}

func NewHandler(l *applogger.Logger, auth *usecase.Auth, dash *usecase.Dashboard, sm *session.Manager) *Handler {
	return &Handler{logger: l, auth: auth, dash: dash, sessions: sm}
}

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = &renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.GET("/", h.Index)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register)
	e.GET("/logout", h.Logout)

	g := e.Group("/dashboard", h.RequireAuthenticated)
	g.GET("/", h.DashboardPage)
	g.POST("/api/render", h.Render)
	g.GET("/ws", h.RenderStream)
}

// RequireAuthenticated guards the dashboard group: anonymous requests
// are redirected to the login form.
func (h *Handler) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, ok := h.currentUser(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		c.Set("username", username)
		return next(c)
	}
}

func (h *Handler) currentUser(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(h.sessions.CookieName())
	if err != nil {
		return "", false
	}
	username, err := h.sessions.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return username, true
}
