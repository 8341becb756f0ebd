// Package social publishes posts and uploads media to an X API v2 compatible platform.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/devtips/pkg/config"
	"github.com/umputun/devtips/pkg/domain"
)

// defaultResetWait is used when a rate limited response carries no reset header
const defaultResetWait = time.Minute

// Client talks to the platform API with a bearer token
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	now      func() time.Time
}

// NewClient makes an API client
func NewClient(cfg config.PublisherConfig) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		token:    cfg.Token,
		client:   &http.Client{Timeout: cfg.Timeout},
		now:      time.Now,
	}
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type dataResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	MediaIDString string `json:"media_id_string"`
}

// Publish creates a post, optionally with media or as a reply.
// A 429 response is returned as *domain.RateLimitError.
func (c *Client) Publish(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error) {
	body := tweetRequest{Text: req.Text}
	if req.MediaID != "" {
		body.Media = &tweetMedia{MediaIDs: []string{req.MediaID}}
	}
	if req.ReplyTo != "" {
		body.Reply = &tweetReply{InReplyToTweetID: req.ReplyTo}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("marshal post: %w", err)
	}

	var resp dataResponse
	if err := c.do(ctx, "/2/tweets", "application/json", bytes.NewReader(data), &resp); err != nil {
		return domain.PublishResult{}, fmt.Errorf("publish post: %w", err)
	}
	if resp.Data.ID == "" {
		return domain.PublishResult{}, errors.New("publish post: no id in response")
	}
	return domain.PublishResult{ID: resp.Data.ID}, nil
}

// UploadMedia uploads a PNG image and returns its media id
func (c *Client) UploadMedia(ctx context.Context, image []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("media_category", "tweet_image"); err != nil {
		return "", fmt.Errorf("write media category: %w", err)
	}
	part, err := mw.CreateFormFile("media", "code.png")
	if err != nil {
		return "", fmt.Errorf("create media part: %w", err)
	}
	if _, err = part.Write(image); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	if err = mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	var resp dataResponse
	if err := c.do(ctx, "/2/media/upload", mw.FormDataContentType(), &buf, &resp); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	id := resp.Data.ID
	if id == "" {
		id = resp.MediaIDString
	}
	if id == "" {
		return "", errors.New("upload media: no id in response")
	}
	return id, nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.RateLimitError{
			Reset: c.resetTime(resp.Header.Get("x-rate-limit-reset")),
			Err:   fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resetTime parses the unix seconds reset header
func (c *Client) resetTime(header string) time.Time {
	if sec, err := strconv.ParseInt(strings.TrimSpace(header), 10, 64); err == nil && sec > 0 {
		return time.Unix(sec, 0)
	}
	return c.now().Add(defaultResetWait)
}
