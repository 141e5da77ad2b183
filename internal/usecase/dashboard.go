package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	"LiquiDash/pkg/cache"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/util"
)

const currencySuffix = "HKD"

// Dashboard computes chart specifications and summary statistics over
// the startup snapshot. Render is pure over the snapshot, so concurrent
// calls need no locking.
type Dashboard struct {
	snap     *models.Snapshot
	cache    cache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

// NewDashboard creates the dashboard engine. cache may be nil to disable
// result caching.
func NewDashboard(snap *models.Snapshot, c cache.Service, ttl time.Duration, m domrepo.Metrics, l *applogger.Logger) *Dashboard {
	return &Dashboard{snap: snap, cache: c, cacheTTL: ttl, metrics: m, l: l}
}

// Snapshot exposes the underlying dataset for the presentation shell
// (date-picker bounds).
func (d *Dashboard) Snapshot() *models.Snapshot { return d.snap }

// Render filters the snapshot to the inclusive date range, builds the
// trend and distribution charts for the selected metric and computes the
// three summaries. An unknown metric returns ErrUnknownMetric; an empty
// intersection (including reversed bounds) renders empty charts.
func (d *Dashboard) Render(ctx context.Context, q models.DashboardQuery) (*models.DashboardResult, error) {
	if _, err := models.ParseMetric(string(q.Metric)); err != nil {
		d.metrics.RecordError("unknown_metric")
		d.l.Error("render rejected: metric outside dropdown contract",
			applogger.String("metric", string(q.Metric)),
		)
		return nil, fmt.Errorf("render %q: %w", q.Metric, models.ErrUnknownMetric)
	}

	key := cache.Key("render",
		util.FormatDate(q.StartDate), util.FormatDate(q.EndDate), string(q.Metric))
	if d.cache != nil {
		var cached models.DashboardResult
		if err := d.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			d.l.Warn("render cache get error", applogger.Error(err))
		}
	}

	subset := d.snap.Between(q.StartDate, q.EndDate)
	values := make([]float64, len(subset))
	for i, r := range subset {
		values[i] = q.Metric.Value(r)
	}

	res := &models.DashboardResult{
		Metric:       q.Metric,
		Trend:        buildTrend(q.Metric, subset, values),
		Distribution: buildDistribution(q.Metric, values),
		Summary:      summarize(values),
	}
	res.TotalLiquidity = fmt.Sprintf("Total Liquidity: %s %s", util.FormatAmount(res.Summary.Sum), currencySuffix)
	res.AverageBalance = fmt.Sprintf("Average Balance: %s", displayAmount(res.Summary.Mean))
	res.Volatility = fmt.Sprintf("Volatility (Std Dev): %s", displayAmount(res.Summary.StdDev))

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, res, d.cacheTTL); err != nil {
			d.l.Warn("render cache set error", applogger.Error(err))
		}
	}
	d.metrics.RecordRender(string(q.Metric))
	return res, nil
}

func buildTrend(m models.Metric, subset []models.LiquidityRecord, values []float64) models.TrendChart {
	points := make([]models.TrendPoint, len(subset))
	for i, r := range subset {
		points[i] = models.TrendPoint{Date: r.EndOfDate, Value: values[i]}
	}
	return models.TrendChart{
		Title:  fmt.Sprintf("%s Over Time", m.Label()),
		XLabel: "Date",
		YLabel: fmt.Sprintf("Amount (%s)", currencySuffix),
		Points: points,
	}
}

func buildDistribution(m models.Metric, values []float64) models.DistributionChart {
	return models.DistributionChart{
		Title:  fmt.Sprintf("Distribution of %s", m.Label()),
		XLabel: fmt.Sprintf("Amount (%s)", currencySuffix),
		Bins:   histogram(values),
	}
}

// histogram buckets values into equal-width bins, bin count by Sturges'
// rule. All identical values collapse to a single bin.
func histogram(values []float64) []models.HistogramBin {
	n := len(values)
	if n == 0 {
		return []models.HistogramBin{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []models.HistogramBin{{Lower: min, Upper: max, Count: n}}
	}

	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	width := (max - min) / float64(bins)

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i] = models.HistogramBin{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
		}
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// summarize computes sum, mean and sample standard deviation (n-1).
// Mean is nil for an empty subset, std dev nil below two records; nil
// means undefined and is never reported as zero.
func summarize(values []float64) models.Summary {
	s := models.Summary{Count: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	if len(values) == 0 {
		return s
	}

	mean := s.Sum / float64(len(values))
	s.Mean = &mean

	if len(values) < 2 {
		return s
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(len(values)-1))
	s.StdDev = &sd
	return s
}

func displayAmount(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%s %s", util.FormatAmount(*v), currencySuffix)
}
