package web

import (
	"errors"
	"net/http"

	"LiquiDash/internal/domain/models"
	applogger "LiquiDash/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Session middleware already gated the upgrade request.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsError struct {
	Error string `json:"error"`
}

// RenderStream is the interactive callback channel: the page pushes a
// RenderRequest whenever a control changes and receives the recomputed
// DashboardResult. Not a data stream; the dataset never changes after
// startup.
func (h *Handler) RenderStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for {
		var req RenderRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("dashboard ws read error", applogger.Error(err))
			}
			return nil
		}

		query, appErr := h.parseQuery(&req)
		if appErr != nil {
			if err := conn.WriteJSON(wsError{Error: appErr.Message}); err != nil {
				return nil
			}
			continue
		}

		res, err := h.dash.Render(c.Request().Context(), query)
		if err != nil {
			msg := "render failed"
			if errors.Is(err, models.ErrUnknownMetric) {
				msg = "unknown metric"
			} else {
				h.logger.Error("dashboard ws render error", applogger.Error(err))
			}
			if err := conn.WriteJSON(wsError{Error: msg}); err != nil {
				return nil
			}
			continue
		}

		if err := conn.WriteJSON(res); err != nil {
			return nil
		}
	}
}
