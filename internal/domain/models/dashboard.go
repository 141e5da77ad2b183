package models

import "time"

// DashboardQuery is the transient UI state driving one render: inclusive
// date bounds plus the selected metric. Not persisted.
type DashboardQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Metric    Metric
}

// TrendPoint is one x/y pair of the trend chart.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TrendChart is a line-chart specification of a metric over time.
type TrendChart struct {
	Title  string       `json:"title"`
	XLabel string       `json:"x_label"`
	YLabel string       `json:"y_label"`
	Points []TrendPoint `json:"points"`
}

// HistogramBin is one equal-width bucket of the distribution chart.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// DistributionChart is a histogram specification of a metric's values.
type DistributionChart struct {
	Title  string         `json:"title"`
	XLabel string         `json:"x_label"`
	Bins   []HistogramBin `json:"bins"`
}

// Summary holds the three scalar statistics over the filtered subset.
// Mean and StdDev are nil when undefined (fewer than 1 resp. 2 records);
// nil keeps NaN off the wire.
type Summary struct {
	Count  int      `json:"count"`
	Sum    float64  `json:"sum"`
	Mean   *float64 `json:"mean,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

// DashboardResult is the full output of one render: the two chart
// specifications, the statistics and their display strings.
type DashboardResult struct {
	Metric         Metric            `json:"metric"`
	Trend          TrendChart        `json:"trend"`
	Distribution   DistributionChart `json:"distribution"`
	Summary        Summary           `json:"summary"`
	TotalLiquidity string            `json:"total_liquidity"`
	AverageBalance string            `json:"average_balance"`
	Volatility     string            `json:"volatility"`
}
