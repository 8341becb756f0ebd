package scheduler

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/time/rate"

	"github.com/umputun/devtips/pkg/dedup"
	"github.com/umputun/devtips/pkg/domain"
)

// runThread publishes thread parts in order, each replying to the previous one and paced by
// the part delay. Only the first part is checked for duplicates. A thread broken after its first
// part is recorded with the parts that went out and the run fails.
func (p *Pipeline) runThread(ctx context.Context, run *domain.Outcome, topic domain.Topic, th domain.Thread) (domain.Outcome, error) {
	run.Thread = true
	if len(th.Parts) == 0 {
		return p.skip(run, "empty thread")
	}
	lgr.Printf("[INFO] run %s: posting %s thread %q, %d parts", run.RunID, th.Kind, th.Title, len(th.Parts))

	run.State = domain.StateValidateDuplicate
	if history := p.History.Load(ctx).Texts(); dedup.IsDuplicate(th.Parts[0], history, p.Config.SimilarityThreshold) {
		return p.skip(run, fmt.Sprintf("duplicate thread, similarity %.2f", dedup.MaxSimilarity(th.Parts[0], history)))
	}

	run.State = domain.StatePublish
	limiter := rate.NewLimiter(rate.Every(p.Config.Thread.PartDelay), 1) // zero delay is no limit

	var ids []string
	var partErr error
	for i, part := range th.Parts {
		if err := limiter.Wait(ctx); err != nil {
			partErr = fmt.Errorf("wait before part %d: %w", i+1, err)
			break
		}
		req := domain.PublishRequest{Text: part}
		if i == 0 {
			req.Text = domain.JoinHashtags(part, th.Hashtags)
		} else {
			req.ReplyTo = ids[i-1]
		}
		res, err := p.publish(ctx, req)
		if err != nil {
			partErr = fmt.Errorf("part %d/%d: %w", i+1, len(th.Parts), err)
			break
		}
		lgr.Printf("[DEBUG] run %s: thread part %d/%d published as %s", run.RunID, i+1, len(th.Parts), res.ID)
		ids = append(ids, res.ID)
	}

	if len(ids) == 0 {
		return p.fail(run, partErr)
	}

	run.State = domain.StateRecord
	now := p.now().In(p.Config.Location)
	post := domain.Post{
		ID:          ids[0],
		Text:        th.Parts[0],
		Topic:       topic.Name,
		ContentType: domain.ContentThread,
		Subtype:     th.Kind,
		Hashtags:    th.Hashtags,
		Parts:       len(ids),
		Params:      domain.PostParams{Hour: now.Hour()},
		CreatedAt:   now,
	}
	p.record(context.WithoutCancel(ctx), run.RunID, post)

	if partErr != nil {
		run.Post = &post
		return p.fail(run, fmt.Errorf("thread incomplete, %d/%d parts published: %w", len(ids), len(th.Parts), partErr))
	}
	return p.published(run, post, true)
}
