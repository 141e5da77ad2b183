package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		got, err := ParseMetric(string(m))
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := ParseMetric("net_position")
	require.ErrorIs(t, err, ErrUnknownMetric)
	_, err = ParseMetric("")
	require.ErrorIs(t, err, ErrUnknownMetric)
	_, err = ParseMetric("Opening_Balance")
	require.ErrorIs(t, err, ErrUnknownMetric)
}

func TestMetricLabel(t *testing.T) {
	require.Equal(t, "Opening Balance", MetricOpeningBalance.Label())
	require.Equal(t, "Forecast Aggregate Bal T1", MetricForecastAggregateBalT1.Label())
	require.Equal(t, "Forecast Aggregate Bal U", MetricForecastAggregateBalU.Label())
}

func TestMetricValue(t *testing.T) {
	r := LiquidityRecord{
		OpeningBalance:         1,
		ClosingBalance:         2,
		ForecastAggregateBalT1: 3,
		ForecastAggregateBalT2: 4,
		ForecastAggregateBalT3: 5,
		ForecastAggregateBalT4: 6,
		ForecastAggregateBalU:  7,
	}
	want := []float64{1, 2, 3, 4, 5, 6, 7}
	for i, m := range Metrics {
		require.Equal(t, want[i], m.Value(r), "metric %s", m)
	}
}

func TestSnapshotBetween(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	// Out of order on purpose; the snapshot sorts.
	s := NewSnapshot([]LiquidityRecord{
		{EndOfDate: day(3)},
		{EndOfDate: day(1)},
		{EndOfDate: day(2)},
	})

	min, max, ok := s.Bounds()
	require.True(t, ok)
	require.Equal(t, day(1), min)
	require.Equal(t, day(3), max)

	require.Len(t, s.Between(day(1), day(3)), 3)
	require.Len(t, s.Between(day(2), day(2)), 1)
	require.Empty(t, s.Between(day(3), day(1)))
	require.Empty(t, s.Between(day(4), day(9)))
}

func TestSnapshotEmptyBounds(t *testing.T) {
	_, _, ok := NewSnapshot(nil).Bounds()
	require.False(t, ok)
}
