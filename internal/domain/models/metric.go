package models

import "strings"

// Metric identifies one of the seven selectable balance/forecast columns.
type Metric string

const (
	MetricOpeningBalance         Metric = "opening_balance"
	MetricClosingBalance         Metric = "closing_balance"
	MetricForecastAggregateBalT1 Metric = "forecast_aggregate_bal_t1"
	MetricForecastAggregateBalT2 Metric = "forecast_aggregate_bal_t2"
	MetricForecastAggregateBalT3 Metric = "forecast_aggregate_bal_t3"
	MetricForecastAggregateBalT4 Metric = "forecast_aggregate_bal_t4"
	MetricForecastAggregateBalU  Metric = "forecast_aggregate_bal_u"
)

// Metrics lists the selectable metrics in dropdown order.
var Metrics = []Metric{
	MetricOpeningBalance,
	MetricClosingBalance,
	MetricForecastAggregateBalT1,
	MetricForecastAggregateBalT2,
	MetricForecastAggregateBalT3,
	MetricForecastAggregateBalT4,
	MetricForecastAggregateBalU,
}

// ParseMetric maps a wire key to a Metric or returns ErrUnknownMetric.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", ErrUnknownMetric
}

// Label renders the human-readable form: underscores to spaces, title case.
func (m Metric) Label() string {
	parts := strings.Split(string(m), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Value extracts the metric's column from a record.
func (m Metric) Value(r LiquidityRecord) float64 {
	switch m {
	case MetricOpeningBalance:
		return r.OpeningBalance
	case MetricClosingBalance:
		return r.ClosingBalance
	case MetricForecastAggregateBalT1:
		return r.ForecastAggregateBalT1
	case MetricForecastAggregateBalT2:
		return r.ForecastAggregateBalT2
	case MetricForecastAggregateBalT3:
		return r.ForecastAggregateBalT3
	case MetricForecastAggregateBalT4:
		return r.ForecastAggregateBalT4
	case MetricForecastAggregateBalU:
		return r.ForecastAggregateBalU
	}
	return 0
}
