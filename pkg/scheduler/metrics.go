package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/umputun/devtips/pkg/domain"
)

// Metrics holds pipeline counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	posts       *prometheus.CounterVec
	rateLimited prometheus.Counter
	mediaFailed prometheus.Counter
	duration    prometheus.Histogram
	lastPost    prometheus.Gauge
}

// NewMetrics creates pipeline metrics registered with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devtips",
			Name:      "runs_total",
			Help:      "Posting runs by final state",
		}, []string{"state"}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devtips",
			Name:      "posts_total",
			Help:      "Published posts by content type and topic",
		}, []string{"content_type", "topic"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devtips",
			Name:      "rate_limited_total",
			Help:      "Publish calls rejected with a rate limit",
		}),
		mediaFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devtips",
			Name:      "media_failures_total",
			Help:      "Code images that could not be rendered or uploaded",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "devtips",
			Name:      "run_duration_seconds",
			Help:      "Duration of posting runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		}),
		lastPost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "devtips",
			Name:      "last_post_timestamp_seconds",
			Help:      "Unix time of the last published post",
		}),
	}
	reg.MustRegister(m.runs, m.posts, m.rateLimited, m.mediaFailed, m.duration, m.lastPost)
	return m
}

// ObserveRun accounts a finished run
func (m *Metrics) ObserveRun(out domain.Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(out.State)).Inc()
	if !out.FinishedAt.IsZero() && !out.StartedAt.IsZero() {
		m.duration.Observe(out.FinishedAt.Sub(out.StartedAt).Seconds())
	}
	if out.State == domain.StatePublished && out.Post != nil {
		m.posts.WithLabelValues(string(out.Post.ContentType), out.Post.Topic).Inc()
		m.lastPost.Set(float64(out.Post.CreatedAt.Unix()))
	}
}

// IncRateLimited counts a rate limited publish
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// IncMediaFailed counts a failed code image
func (m *Metrics) IncMediaFailed() {
	if m == nil {
		return
	}
	m.mediaFailed.Inc()
}
