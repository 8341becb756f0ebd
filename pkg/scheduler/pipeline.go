// Package scheduler runs posting cycles: the single-post pipeline, threads and the periodic scheduler around them.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/devtips/pkg/dedup"
	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/selector"
	"github.com/umputun/devtips/pkg/trending"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/uploader.go -pkg mocks -skip-ensure -fmt goimports . MediaUploader
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer
//go:generate moq -out mocks/trending.go -pkg mocks -skip-ensure -fmt goimports . Trending

// Generator produces post bodies and threads
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (domain.Content, error)
	Thread(topic domain.Topic, subjects []string, trending bool, maxParts int) (domain.Thread, bool)
}

// Publisher sends posts to the social platform
type Publisher interface {
	Publish(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error)
}

// MediaUploader uploads images and returns media ids
type MediaUploader interface {
	UploadMedia(ctx context.Context, image []byte) (string, error)
}

// Renderer draws code as an image
type Renderer interface {
	Render(code, title string) ([]byte, error)
}

// Optimizer resolves experiment variants and attributes applied params back to them
type Optimizer interface {
	Resolve(ctx context.Context, name string) domain.Resolution
	Bucket(name string, p domain.PostParams) (string, bool)
}

// Trending provides cached trending topics
type Trending interface {
	RefreshIfStale(ctx context.Context, now time.Time) bool
	Topics() []string
}

// HistoryStore keeps recent posts
type HistoryStore interface {
	Load(ctx context.Context) domain.History
	Append(ctx context.Context, post domain.Post) error
}

// AnalyticsStore keeps posting statistics
type AnalyticsStore interface {
	Load(ctx context.Context) domain.Analytics
	RecordPost(ctx context.Context, post domain.Post, metric float64) error
}

// ExperimentStore keeps experiment samples
type ExperimentStore interface {
	RecordSample(ctx context.Context, experiment, variant string, value float64, at time.Time) error
}

// ThreadConfig controls the thread branch
type ThreadConfig struct {
	Enabled        bool
	Chance         float64
	TrendingChance float64
	PartDelay      time.Duration
	MaxParts       int
}

// PipelineConfig holds posting rules
type PipelineConfig struct {
	Topics              []domain.Topic
	Distribution        selector.Distribution
	CelebrationDay      *time.Weekday
	MaxDailyPosts       int
	SimilarityThreshold float64
	RateLimitBuffer     time.Duration
	MaxLength           int // tip length when no content length variant applies
	MaxHashtags         int // hashtag count when no hashtag variant applies
	Images              bool
	Thread              ThreadConfig
	Seasonal            map[string][]string
	SeasonalChance      float64
	Location            *time.Location
}

// PipelineParams holds pipeline collaborators. Uploader, Renderer, Trending and Metrics are optional.
type PipelineParams struct {
	Generator   Generator
	Publisher   Publisher
	Uploader    MediaUploader
	Renderer    Renderer
	Optimizer   Optimizer
	Trending    Trending
	History     HistoryStore
	Analytics   AnalyticsStore
	Experiments ExperimentStore
	Metrics     *Metrics
	Rand        selector.Rand
	Config      PipelineConfig
}

// Pipeline performs one posting cycle from topic selection to recording
type Pipeline struct {
	PipelineParams
	types     *selector.ContentTypeSelector
	estimator *EngagementEstimator

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// NewPipeline creates a posting pipeline
func NewPipeline(params PipelineParams) *Pipeline {
	if params.Config.MaxDailyPosts == 0 {
		params.Config.MaxDailyPosts = 8
	}
	if params.Config.SimilarityThreshold == 0 {
		params.Config.SimilarityThreshold = 0.85
	}
	if params.Config.RateLimitBuffer == 0 {
		params.Config.RateLimitBuffer = time.Second
	}
	if params.Config.MaxLength == 0 {
		params.Config.MaxLength = 150
	}
	if params.Config.MaxHashtags == 0 {
		params.Config.MaxHashtags = 4
	}
	if params.Config.Thread.MaxParts == 0 {
		params.Config.Thread.MaxParts = 6
	}
	if params.Config.Location == nil {
		params.Config.Location = time.Local
	}
	if params.Rand == nil {
		params.Rand = selector.NewRand()
	}

	return &Pipeline{
		PipelineParams: params,
		types:          selector.NewContentTypeSelector(params.Config.Distribution, params.Config.CelebrationDay, params.Trending != nil),
		estimator:      NewEngagementEstimator(params.Rand),
		now:            time.Now,
		sleep:          sleepCtx,
		newID:          uuid.NewString,
	}
}

// Run performs one posting cycle. The returned error is non-nil only for FAILED outcomes,
// skipped runs return a SKIPPED outcome with the reason.
func (p *Pipeline) Run(ctx context.Context) (domain.Outcome, error) {
	started := p.now().In(p.Config.Location)
	run := &domain.Outcome{RunID: p.newID(), StartedAt: started}
	lgr.Printf("[INFO] run %s started", run.RunID)

	day := p.Analytics.Load(ctx).Day(started)
	if day.PostCount >= p.Config.MaxDailyPosts {
		return p.skip(run, fmt.Sprintf("daily cap reached, %d/%d posts", day.PostCount, p.Config.MaxDailyPosts))
	}

	if res := p.Optimizer.Resolve(ctx, domain.ExperimentPostingTime); res.Enforce && len(res.Params.Hours) > 0 &&
		!slices.Contains(res.Params.Hours, started.Hour()) {
		return p.skip(run, fmt.Sprintf("hour %d is outside posting time variant %s %v", started.Hour(), res.VariantID, res.Params.Hours))
	}

	run.State = domain.StateSelectTopic
	topic := selector.SelectTopic(p.Config.Topics, p.Rand.Float64())
	fresh, subjects, seasonal := p.trends(ctx, started)
	lgr.Printf("[DEBUG] run %s: topic %s, trending %v, seasonal %v", run.RunID, topic.Name, subjects, seasonal)

	if p.Config.Thread.Enabled && p.Rand.Float64() < p.Config.Thread.Chance {
		useTrending := p.Rand.Float64() < p.Config.Thread.TrendingChance
		if th, ok := p.Generator.Thread(topic, slices.Concat(seasonal, subjects), useTrending, p.Config.Thread.MaxParts); ok {
			return p.runThread(ctx, run, topic, th)
		}
		lgr.Printf("[DEBUG] run %s: no thread for %s, posting a single post", run.RunID, topic.Name)
	}

	run.State = domain.StateSelectContentType
	signals := selector.Signals{CelebratedToday: day.PerSubtype[domain.SubtypeCelebration] > 0, TrendingFresh: fresh}
	choice := p.types.Select(started, p.Rand.Float64(), signals, p.Rand)

	params := p.postParams(ctx, started)
	run.State = domain.StateGenerate
	c, err := p.Generator.Generate(ctx, domain.GenerateRequest{
		Topic:       topic,
		Choice:      choice,
		MaxLength:   params.MaxLength,
		MaxHashtags: params.MaxHashtags,
		Trending:    subjects,
		Seasonal:    seasonal,
	})
	if err != nil {
		return p.fail(run, fmt.Errorf("generate %s: %w", choice, err))
	}
	if c.IsEmpty() {
		return p.skip(run, "empty content")
	}
	if c.Fallback {
		lgr.Printf("[WARN] run %s: using fallback tip after %d attempts", run.RunID, c.Attempts)
	}

	run.State = domain.StateValidateDuplicate
	if history := p.History.Load(ctx).Texts(); dedup.IsDuplicate(c.Text, history, p.Config.SimilarityThreshold) {
		return p.skip(run, fmt.Sprintf("duplicate content, similarity %.2f", dedup.MaxSimilarity(c.Text, history)))
	}

	run.State = domain.StateRenderMedia
	mediaID := p.media(ctx, run.RunID, topic.Name, c.RawCode)

	run.State = domain.StatePublish
	post := domain.Post{
		Text:        c.Text,
		Topic:       topic.Name,
		ContentType: c.Choice.Type,
		Subtype:     c.Choice.Subtype,
		Hashtags:    c.Hashtags,
		MediaID:     mediaID,
		Params:      params,
	}
	res, err := p.publish(ctx, domain.PublishRequest{Text: post.FullText(), MediaID: mediaID})
	if err != nil {
		return p.fail(run, err)
	}

	run.State = domain.StateRecord
	post.ID, post.CreatedAt = res.ID, p.now().In(p.Config.Location)
	p.record(context.WithoutCancel(ctx), run.RunID, post) // the post is live, record it even if the run is canceled
	return p.published(run, post, false)
}

// postParams resolves content length and hashtag count experiments into applied params
func (p *Pipeline) postParams(ctx context.Context, now time.Time) domain.PostParams {
	params := domain.PostParams{MaxLength: p.Config.MaxLength, MaxHashtags: p.Config.MaxHashtags, Hour: now.Hour()}
	if res := p.Optimizer.Resolve(ctx, domain.ExperimentContentLength); res.Params.MaxLength > 0 {
		params.MaxLength = res.Params.MaxLength
	}
	if res := p.Optimizer.Resolve(ctx, domain.ExperimentHashtagCount); res.Params.MaxHashtags > 0 {
		params.MaxHashtags = res.Params.MaxHashtags
	}
	return params
}

// trends refreshes the trending cache if stale and returns whether it was refreshed this run,
// the cached trending subjects and, by chance, the seasonal events of the month
func (p *Pipeline) trends(ctx context.Context, now time.Time) (fresh bool, subjects, seasonal []string) {
	if p.Trending == nil {
		return false, nil, nil
	}
	fresh = p.Trending.RefreshIfStale(ctx, now)
	subjects = p.Trending.Topics()
	if events := trending.Seasonal(p.Config.Seasonal, now.Month()); len(events) > 0 && p.Rand.Float64() < p.Config.SeasonalChance {
		seasonal = events
	}
	return fresh, subjects, seasonal
}

func (p *Pipeline) skip(run *domain.Outcome, reason string) (domain.Outcome, error) {
	lgr.Printf("[INFO] run %s skipped at %s: %s", run.RunID, stateOrStart(run.State), reason)
	run.State, run.Reason, run.FinishedAt = domain.StateSkipped, reason, p.now()
	p.Metrics.ObserveRun(*run)
	return *run, nil
}

func (p *Pipeline) fail(run *domain.Outcome, err error) (domain.Outcome, error) {
	lgr.Printf("[WARN] run %s failed at %s: %v", run.RunID, stateOrStart(run.State), err)
	run.State, run.Reason, run.FinishedAt = domain.StateFailed, err.Error(), p.now()
	p.Metrics.ObserveRun(*run)
	return *run, err
}

func (p *Pipeline) published(run *domain.Outcome, post domain.Post, thread bool) (domain.Outcome, error) {
	run.State, run.Post, run.Thread, run.FinishedAt = domain.StatePublished, &post, thread, p.now()
	lgr.Printf("[INFO] run %s published %s post %s about %s", run.RunID, post.ContentType, post.ID, post.Topic)
	p.Metrics.ObserveRun(*run)
	return *run, nil
}

func stateOrStart(s domain.RunState) string {
	if s == "" {
		return "start"
	}
	return string(s)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
