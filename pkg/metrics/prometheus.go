package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchRows     prometheus.Gauge
	fetchTotal    *prometheus.CounterVec
	rendersTotal  *prometheus.CounterVec
	loginsTotal   *prometheus.CounterVec
	registrations *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "liquidash_dataset_rows",
				Help: "Number of liquidity records loaded at startup",
			},
		),
		fetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidash_fetch_total",
				Help: "Dataset fetch attempts by outcome",
			},
			[]string{"ok"},
		),
		rendersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidash_renders_total",
				Help: "Dashboard renders by selected metric",
			},
			[]string{"metric"},
		),
		loginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidash_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"ok"},
		),
		registrations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidash_registrations_total",
				Help: "Registration attempts by outcome",
			},
			[]string{"ok"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

func (r *Recorder) RecordFetch(rows int, ok bool) {
	r.fetchTotal.WithLabelValues(strconv.FormatBool(ok)).Inc()
	if ok {
		r.fetchRows.Set(float64(rows))
	}
}

func (r *Recorder) RecordRender(metric string) {
	r.rendersTotal.WithLabelValues(metric).Inc()
}

func (r *Recorder) RecordLogin(ok bool) {
	r.loginsTotal.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (r *Recorder) RecordRegistration(ok bool) {
	r.registrations.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
