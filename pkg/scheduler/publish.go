package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/domain"
)

// publish sends the post. On a rate limit it waits until the reported reset plus the buffer
// and retries exactly once.
func (p *Pipeline) publish(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error) {
	res, err := p.Publisher.Publish(ctx, req)
	if err == nil {
		return res, nil
	}

	var rle *domain.RateLimitError
	if !errors.As(err, &rle) {
		return domain.PublishResult{}, fmt.Errorf("publish: %w", err)
	}

	p.Metrics.IncRateLimited()
	wait := max(rle.Reset.Sub(p.now()), 0) + p.Config.RateLimitBuffer
	lgr.Printf("[WARN] rate limited, waiting %v until %s", wait, rle.Reset.Format("15:04:05"))
	if err := p.sleep(ctx, wait); err != nil {
		return domain.PublishResult{}, fmt.Errorf("wait for rate limit reset: %w", err)
	}

	res, err = p.Publisher.Publish(ctx, req)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("publish after rate limit wait: %w", err)
	}
	return res, nil
}

// media renders code as an image and uploads it. Any failure leaves the post text-only.
func (p *Pipeline) media(ctx context.Context, runID, title, code string) string {
	if !p.Config.Images || code == "" || p.Renderer == nil || p.Uploader == nil {
		return ""
	}
	img, err := p.Renderer.Render(code, title)
	if err != nil {
		lgr.Printf("[WARN] run %s: can't render code image, posting text only: %v", runID, err)
		p.Metrics.IncMediaFailed()
		return ""
	}
	id, err := p.Uploader.UploadMedia(ctx, img)
	if err != nil {
		lgr.Printf("[WARN] run %s: can't upload code image, posting text only: %v", runID, err)
		p.Metrics.IncMediaFailed()
		return ""
	}
	lgr.Printf("[DEBUG] run %s: uploaded code image %s, %d bytes", runID, id, len(img))
	return id
}
