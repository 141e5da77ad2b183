package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"LiquiDash/internal/domain/models"
	applogger "LiquiDash/pkg/logger"
)

type fakeMetrics struct {
	renders       []string
	errors        []string
	logins        []bool
	registrations []bool
}

func (f *fakeMetrics) RecordFetch(rows int, ok bool) {}
func (f *fakeMetrics) RecordRender(metric string)    { f.renders = append(f.renders, metric) }
func (f *fakeMetrics) RecordLogin(ok bool)           { f.logins = append(f.logins, ok) }
func (f *fakeMetrics) RecordRegistration(ok bool)    { f.registrations = append(f.registrations, ok) }
func (f *fakeMetrics) RecordError(kind string)       { f.errors = append(f.errors, kind) }

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(date string, opening float64) models.LiquidityRecord {
	return models.LiquidityRecord{EndOfDate: day(date), OpeningBalance: opening}
}

func newDashboard(t *testing.T, records ...models.LiquidityRecord) *Dashboard {
	t.Helper()
	return NewDashboard(models.NewSnapshot(records), nil, 0, &fakeMetrics{}, testLogger(t))
}

func TestRenderFiltersInclusive(t *testing.T) {
	d := newDashboard(t,
		rec("2024-01-01", 100),
		rec("2024-01-02", 200),
		rec("2024-01-03", 300),
	)

	res, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-02"),
		Metric:    models.MetricOpeningBalance,
	})
	require.NoError(t, err)

	require.Len(t, res.Trend.Points, 2)
	require.Equal(t, day("2024-01-01"), res.Trend.Points[0].Date)
	require.Equal(t, day("2024-01-02"), res.Trend.Points[1].Date)
	require.Equal(t, 100.0, res.Trend.Points[0].Value)
	require.Equal(t, 200.0, res.Trend.Points[1].Value)
}

func TestRenderSummaries(t *testing.T) {
	d := newDashboard(t,
		rec("2024-01-01", 100),
		rec("2024-01-02", 200),
		rec("2024-01-03", 300),
	)

	res, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-02"),
		Metric:    models.MetricOpeningBalance,
	})
	require.NoError(t, err)

	require.Equal(t, 2, res.Summary.Count)
	require.Equal(t, 300.0, res.Summary.Sum)
	require.NotNil(t, res.Summary.Mean)
	require.Equal(t, 150.0, *res.Summary.Mean)
	require.NotNil(t, res.Summary.StdDev)
	require.InDelta(t, 70.7107, *res.Summary.StdDev, 0.0001)

	require.Equal(t, "Total Liquidity: 300.00 HKD", res.TotalLiquidity)
	require.Equal(t, "Average Balance: 150.00 HKD", res.AverageBalance)
	require.Equal(t, "Volatility (Std Dev): 70.71 HKD", res.Volatility)
}

func TestRenderReversedRangeIsEmpty(t *testing.T) {
	d := newDashboard(t, rec("2024-01-01", 100), rec("2024-01-02", 200))

	res, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-02"),
		EndDate:   day("2024-01-01"),
		Metric:    models.MetricOpeningBalance,
	})
	require.NoError(t, err)

	require.Empty(t, res.Trend.Points)
	require.Empty(t, res.Distribution.Bins)
	require.Equal(t, 0, res.Summary.Count)
	require.Equal(t, 0.0, res.Summary.Sum)
	require.Nil(t, res.Summary.Mean)
	require.Nil(t, res.Summary.StdDev)
	require.Equal(t, "Total Liquidity: 0.00 HKD", res.TotalLiquidity)
	require.Equal(t, "Average Balance: N/A", res.AverageBalance)
	require.Equal(t, "Volatility (Std Dev): N/A", res.Volatility)
}

func TestRenderSingleRecordHasNoStdDev(t *testing.T) {
	d := newDashboard(t, rec("2024-01-01", 42))

	res, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-01"),
		Metric:    models.MetricOpeningBalance,
	})
	require.NoError(t, err)

	require.Equal(t, 1, res.Summary.Count)
	require.NotNil(t, res.Summary.Mean)
	require.Equal(t, 42.0, *res.Summary.Mean)
	require.Nil(t, res.Summary.StdDev)
	require.Equal(t, "Volatility (Std Dev): N/A", res.Volatility)
}

func TestRenderUnknownMetric(t *testing.T) {
	m := &fakeMetrics{}
	d := NewDashboard(models.NewSnapshot(nil), nil, 0, m, testLogger(t))

	_, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-02"),
		Metric:    "typo_balance",
	})
	require.ErrorIs(t, err, models.ErrUnknownMetric)
	require.Equal(t, []string{"unknown_metric"}, m.errors)
}

func TestRenderChartTitles(t *testing.T) {
	d := newDashboard(t, rec("2024-01-01", 100))

	res, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-01"),
		Metric:    models.MetricClosingBalance,
	})
	require.NoError(t, err)

	require.Equal(t, "Closing Balance Over Time", res.Trend.Title)
	require.Equal(t, "Date", res.Trend.XLabel)
	require.Equal(t, "Amount (HKD)", res.Trend.YLabel)
	require.Equal(t, "Distribution of Closing Balance", res.Distribution.Title)
	require.Equal(t, "Amount (HKD)", res.Distribution.XLabel)
}

func TestHistogramIdenticalValues(t *testing.T) {
	bins := histogram([]float64{5, 5, 5, 5})
	require.Len(t, bins, 1)
	require.Equal(t, 5.0, bins[0].Lower)
	require.Equal(t, 5.0, bins[0].Upper)
	require.Equal(t, 4, bins[0].Count)
}

func TestHistogramCountsEveryValue(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := histogram(values)

	// Sturges: ceil(log2(10)) + 1 = 5 bins.
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	require.Equal(t, len(values), total)

	// Maximum lands in the last bin, not past the end.
	require.Equal(t, 10.0, bins[len(bins)-1].Upper)
	require.NotZero(t, bins[len(bins)-1].Count)
}

func TestHistogramEmpty(t *testing.T) {
	require.Empty(t, histogram(nil))
}

func TestRenderRecordsMetric(t *testing.T) {
	m := &fakeMetrics{}
	d := NewDashboard(models.NewSnapshot([]models.LiquidityRecord{rec("2024-01-01", 1)}), nil, 0, m, testLogger(t))

	_, err := d.Render(context.Background(), models.DashboardQuery{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-01"),
		Metric:    models.MetricForecastAggregateBalU,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"forecast_aggregate_bal_u"}, m.renders)
}
