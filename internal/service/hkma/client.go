// Package hkma retrieves the daily interbank liquidity series from the
// HKMA open data API.
package hkma

import (
	"context"
	"time"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	xhttp "LiquiDash/pkg/http"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/util"
)

// DefaultURL is the published daily-figures endpoint.
const DefaultURL = "https://api.hkma.gov.hk/public/market-data-and-statistics/daily-monetary-statistics/daily-figures-interbank-liquidity"

// Client implements the Fetcher contract with a single HTTP GET.
type Client struct {
	http *xhttp.Client
	url  string
	l    *applogger.Logger
}

// New creates an HKMA fetcher.
func New(url string, timeout time.Duration, l *applogger.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		http: xhttp.NewClient(xhttp.WithTimeout(timeout)),
		url:  url,
		l:    l,
	}
}

type apiRecord struct {
	EndOfDate              string  `json:"end_of_date"`
	OpeningBalance         float64 `json:"opening_balance"`
	ClosingBalance         float64 `json:"closing_balance"`
	ForecastAggregateBalT1 float64 `json:"forecast_aggregate_bal_t1"`
	ForecastAggregateBalT2 float64 `json:"forecast_aggregate_bal_t2"`
	ForecastAggregateBalT3 float64 `json:"forecast_aggregate_bal_t3"`
	ForecastAggregateBalT4 float64 `json:"forecast_aggregate_bal_t4"`
	ForecastAggregateBalU  float64 `json:"forecast_aggregate_bal_u"`
}

type apiResponse struct {
	Result struct {
		Records []apiRecord `json:"records"`
	} `json:"result"`
}

// Fetch performs one GET against the endpoint and parses the records.
// Every failure mode (network, status, malformed body, bad date) is
// logged and collapses to an empty slice; callers cannot distinguish
// "no data" from "fetch failed" and must not try.
func (c *Client) Fetch(ctx context.Context) []models.LiquidityRecord {
	start := time.Now()

	var resp apiResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.url,
	}, &resp)
	if err != nil {
		c.l.Error("hkma fetch failed",
			applogger.String("url", c.url),
			applogger.Error(err),
		)
		return []models.LiquidityRecord{}
	}

	records := make([]models.LiquidityRecord, 0, len(resp.Result.Records))
	for _, r := range resp.Result.Records {
		date, ok := util.ParseDate(r.EndOfDate)
		if !ok {
			c.l.Warn("hkma record skipped: bad date",
				applogger.String("end_of_date", r.EndOfDate),
			)
			continue
		}
		records = append(records, models.LiquidityRecord{
			EndOfDate:              date,
			OpeningBalance:         r.OpeningBalance,
			ClosingBalance:         r.ClosingBalance,
			ForecastAggregateBalT1: r.ForecastAggregateBalT1,
			ForecastAggregateBalT2: r.ForecastAggregateBalT2,
			ForecastAggregateBalT3: r.ForecastAggregateBalT3,
			ForecastAggregateBalT4: r.ForecastAggregateBalT4,
			ForecastAggregateBalU:  r.ForecastAggregateBalU,
		})
	}

	c.l.Info("hkma fetch ok",
		applogger.Int("rows", len(records)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return records
}

var _ domrepo.Fetcher = (*Client)(nil)
