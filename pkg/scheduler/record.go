package scheduler

import (
	"context"
	"math"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/selector"
)

// baseEngagement is the expected engagement rate per content type
var baseEngagement = map[domain.ContentType]float64{
	domain.ContentTips:        0.08,
	domain.ContentInteractive: 0.12,
	domain.ContentCommunity:   0.10,
}

// topicEngagement scales engagement by topic popularity
var topicEngagement = map[string]float64{
	"Python":     1.2,
	"JavaScript": 1.1,
	"React":      1.0,
	"Node.js":    0.9,
	"Docker":     0.8,
	"Git":        0.7,
}

// EngagementEstimator simulates an engagement rate for a published post.
// The platform tier in use gives no access to real metrics.
type EngagementEstimator struct {
	rnd selector.Rand
}

// NewEngagementEstimator makes an estimator drawing jitter from rnd
func NewEngagementEstimator(rnd selector.Rand) *EngagementEstimator {
	return &EngagementEstimator{rnd: rnd}
}

// Estimate returns base rate x topic multiplier x hashtag multiplier x jitter in [0.8, 1.2)
func (e *EngagementEstimator) Estimate(post domain.Post) float64 {
	base, ok := baseEngagement[post.ContentType]
	if !ok {
		base = 0.08
	}
	topic, ok := topicEngagement[post.Topic]
	if !ok {
		topic = 1.0
	}
	tags := math.Min(float64(len(post.Hashtags))*0.1+0.8, 1.2)
	jitter := 0.8 + e.rnd.Float64()*0.4
	return base * topic * tags * jitter
}

// record stores the published post in history, analytics and experiment results.
// Store failures are logged, the post is already out.
func (p *Pipeline) record(ctx context.Context, runID string, post domain.Post) {
	if err := p.History.Append(ctx, post); err != nil {
		lgr.Printf("[ERROR] run %s: can't record history: %v", runID, err)
	}

	metric := p.estimator.Estimate(post)
	if err := p.Analytics.RecordPost(ctx, post, metric); err != nil {
		lgr.Printf("[ERROR] run %s: can't record analytics: %v", runID, err)
	}

	for _, name := range domain.Experiments {
		variant, ok := p.Optimizer.Bucket(name, post.Params)
		if !ok {
			continue
		}
		if err := p.Experiments.RecordSample(ctx, name, variant, metric, post.CreatedAt); err != nil {
			lgr.Printf("[ERROR] run %s: can't record %s sample: %v", runID, name, err)
			continue
		}
		lgr.Printf("[DEBUG] run %s: %s variant %s got %.4f", runID, name, variant, metric)
	}
}
