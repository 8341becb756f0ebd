package domain

import (
	"strings"
	"time"
)

// PostParams are the experiment parameters actually applied to a post
type PostParams struct {
	MaxLength   int `json:"max_length"`
	MaxHashtags int `json:"max_hashtags"`
	Hour        int `json:"hour"`
}

// Post is a published post as kept in history
type Post struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Topic       string      `json:"topic"`
	ContentType ContentType `json:"content_type"`
	Subtype     string      `json:"subtype,omitempty"`
	Hashtags    []string    `json:"hashtags,omitempty"`
	MediaID     string      `json:"media_id,omitempty"`
	Parts       int         `json:"parts,omitempty"`
	Params      PostParams  `json:"params"`
	CreatedAt   time.Time   `json:"created_at"`
}

// FullText returns the text as published, body followed by hashtags
func (p Post) FullText() string {
	return JoinHashtags(p.Text, p.Hashtags)
}

// JoinHashtags appends hashtags to text separated by a blank line
func JoinHashtags(text string, hashtags []string) string {
	if len(hashtags) == 0 {
		return text
	}
	return text + "\n\n" + strings.Join(hashtags, " ")
}

// History is the bounded window of recent posts, oldest first
type History struct {
	Posts []Post `json:"posts"`
}

// Texts returns post bodies in history order
func (h History) Texts() []string {
	res := make([]string, 0, len(h.Posts))
	for _, p := range h.Posts {
		res = append(res, p.Text)
	}
	return res
}

// Append adds post to the end of history and drops the oldest entries above capacity
func (h *History) Append(p Post, capacity int) {
	h.Posts = append(h.Posts, p)
	if capacity > 0 && len(h.Posts) > capacity {
		h.Posts = append([]Post(nil), h.Posts[len(h.Posts)-capacity:]...)
	}
}

// PublishRequest is a single post sent to the social platform
type PublishRequest struct {
	Text    string
	MediaID string
	ReplyTo string
}

// PublishResult is the platform response for a published post
type PublishResult struct {
	ID string
}
