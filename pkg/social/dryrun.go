package social

import (
	"context"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/devtips/pkg/domain"
)

// DryRun logs posts instead of publishing them
type DryRun struct{}

// Publish logs the post and returns a generated id
func (DryRun) Publish(_ context.Context, req domain.PublishRequest) (domain.PublishResult, error) {
	id := "dry-" + uuid.NewString()
	switch {
	case req.ReplyTo != "":
		lgr.Printf("[INFO] dry run, reply %s to %s: %q", id, req.ReplyTo, req.Text)
	case req.MediaID != "":
		lgr.Printf("[INFO] dry run, post %s with media %s: %q", id, req.MediaID, req.Text)
	default:
		lgr.Printf("[INFO] dry run, post %s: %q", id, req.Text)
	}
	return domain.PublishResult{ID: id}, nil
}

// UploadMedia logs the image size and returns a generated media id
func (DryRun) UploadMedia(_ context.Context, image []byte) (string, error) {
	id := "dry-media-" + uuid.NewString()
	lgr.Printf("[INFO] dry run, media %s, %d bytes", id, len(image))
	return id, nil
}
