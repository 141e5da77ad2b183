package hkma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	applogger "LiquiDash/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

const samplePayload = `{
  "header": {"success": true},
  "result": {
    "records": [
      {
        "end_of_date": "2024-01-02",
        "opening_balance": 44918.0,
        "closing_balance": 44906.0,
        "forecast_aggregate_bal_t1": 44906.0,
        "forecast_aggregate_bal_t2": 44906.0,
        "forecast_aggregate_bal_t3": 44906.0,
        "forecast_aggregate_bal_t4": 44906.0,
        "forecast_aggregate_bal_u": 44906.0
      },
      {
        "end_of_date": "2024-01-03",
        "opening_balance": 44906.0,
        "closing_balance": 44900.0,
        "forecast_aggregate_bal_t1": 44900.0,
        "forecast_aggregate_bal_t2": 44900.0,
        "forecast_aggregate_bal_t3": 44900.0,
        "forecast_aggregate_bal_t4": 44900.0,
        "forecast_aggregate_bal_u": 44900.0
      }
    ]
  }
}`

func TestFetchParsesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger(t))
	records := c.Fetch(context.Background())

	require.Len(t, records, 2)
	require.Equal(t, "2024-01-02", records[0].EndOfDate.Format("2006-01-02"))
	require.Equal(t, 44918.0, records[0].OpeningBalance)
	require.Equal(t, 44906.0, records[0].ClosingBalance)
	require.Equal(t, 44900.0, records[1].ForecastAggregateBalU)
}

func TestFetchServerErrorReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger(t))
	records := c.Fetch(context.Background())

	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestFetchMalformedBodyReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": not-json`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger(t))
	require.Empty(t, c.Fetch(context.Background()))
}

func TestFetchSkipsBadDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"records":[
			{"end_of_date": "02/01/2024", "opening_balance": 1},
			{"end_of_date": "2024-01-03", "opening_balance": 2}
		]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger(t))
	records := c.Fetch(context.Background())

	require.Len(t, records, 1)
	require.Equal(t, 2.0, records[0].OpeningBalance)
}

func TestFetchUnreachableReturnsEmpty(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, testLogger(t))
	require.Empty(t, c.Fetch(context.Background()))
}
