package web

import (
	"errors"
	"net/http"

	"LiquiDash/internal/domain/models"
	xhttp "LiquiDash/pkg/http"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/util"

	"github.com/labstack/echo/v4"
)

type metricOption struct {
	Value string
	Label string
}

type dashboardPage struct {
	Username string
	MinDate  string
	MaxDate  string
	Metrics  []metricOption
	Default  string
	HasData  bool
	RowCount int
}

// DashboardPage renders the static shell: date-range control bounded by
// the loaded dataset, the seven-metric dropdown, chart and summary
// placeholders and the logout affordance.
func (h *Handler) DashboardPage(c echo.Context) error {
	username, _ := c.Get("username").(string)

	page := dashboardPage{
		Username: username,
		Default:  string(models.MetricOpeningBalance),
		RowCount: h.dash.Snapshot().Len(),
	}
	for _, m := range models.Metrics {
		page.Metrics = append(page.Metrics, metricOption{Value: string(m), Label: m.Label()})
	}
	if min, max, ok := h.dash.Snapshot().Bounds(); ok {
		page.HasData = true
		page.MinDate = util.FormatDate(min)
		page.MaxDate = util.FormatDate(max)
	}

	return c.Render(http.StatusOK, "dashboard.html", page)
}

// RenderRequest is the JSON body of a render callback.
type RenderRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Metric    string `json:"metric" validate:"required"`
}

// Render recomputes charts and summaries for one query; invoked on every
// change of the three inputs.
func (h *Handler) Render(c echo.Context) error {
	req := &RenderRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	query, appErr := h.parseQuery(req)
	if appErr != nil {
		return xhttp.BadRequestResponse(c, []*xhttp.AppError{appErr})
	}

	res, err := h.dash.Render(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrUnknownMetric) {
			return xhttp.BadRequestResponse(c, []*xhttp.AppError{
				xhttp.BadRequestErrorf("unknown metric %q", req.Metric),
			})
		}
		h.logger.Error("render usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) parseQuery(req *RenderRequest) (models.DashboardQuery, *xhttp.AppError) {
	start, ok := util.ParseDate(req.StartDate)
	if !ok {
		return models.DashboardQuery{}, xhttp.BadRequestErrorf("start_date %q is not a YYYY-MM-DD date", req.StartDate)
	}
	end, ok := util.ParseDate(req.EndDate)
	if !ok {
		return models.DashboardQuery{}, xhttp.BadRequestErrorf("end_date %q is not a YYYY-MM-DD date", req.EndDate)
	}
	return models.DashboardQuery{
		StartDate: start,
		EndDate:   end,
		Metric:    models.Metric(req.Metric),
	}, nil
}
