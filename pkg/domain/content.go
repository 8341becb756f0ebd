package domain

import "fmt"

// Topic is a subject area the bot posts about
type Topic struct {
	Name     string
	Weight   float64
	Prompts  []string
	Hashtags []string
}

// ContentType enumerates the kinds of posts the bot produces
type ContentType string

const (
	ContentTips        ContentType = "tips"
	ContentInteractive ContentType = "interactive"
	ContentCommunity   ContentType = "community"
	ContentTrending    ContentType = "trending"
	ContentThread      ContentType = "thread"
)

// ContentTypes lists the single-post content types in their selection order
var ContentTypes = []ContentType{ContentTips, ContentInteractive, ContentCommunity, ContentTrending}

// subtypes of interactive and community content
const (
	SubtypePoll      = "poll"
	SubtypeChallenge = "challenge"
	SubtypeQuestion  = "question"
	SubtypeQuiz      = "quiz"

	SubtypeEncouragement = "encouragement"
	SubtypeTipRequest    = "tip_request"
	SubtypeDiscussion    = "discussion"
	SubtypeCelebration   = "celebration"
)

// InteractiveSubtypes and CommunitySubtypes are drawn uniformly once the type is chosen
var (
	InteractiveSubtypes = []string{SubtypePoll, SubtypeChallenge, SubtypeQuestion, SubtypeQuiz}
	CommunitySubtypes   = []string{SubtypeEncouragement, SubtypeTipRequest, SubtypeDiscussion, SubtypeCelebration}
)

// ParseContentType converts a string to ContentType
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTips, ContentInteractive, ContentCommunity, ContentTrending, ContentThread:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// ContentChoice is the content type picked for a run, with optional subtype
type ContentChoice struct {
	Type    ContentType
	Subtype string
}

// String returns type or type/subtype
func (c ContentChoice) String() string {
	if c.Subtype == "" {
		return string(c.Type)
	}
	return string(c.Type) + "/" + c.Subtype
}

// GenerateRequest holds everything a content generator needs for one post
type GenerateRequest struct {
	Topic       Topic
	Choice      ContentChoice
	MaxLength   int
	MaxHashtags int
	Trending    []string
	Seasonal    []string
}

// Content is a generated post body ready for duplicate check and publishing
type Content struct {
	Text     string
	RawCode  string
	Hashtags []string
	Choice   ContentChoice
	Fallback bool
	Attempts int
}

// IsEmpty reports whether content has no usable text
func (c Content) IsEmpty() bool {
	return c.Text == ""
}

// Thread is a sequence of posts, each replying to the previous one.
// Parts are numbered bodies, Hashtags go with the first part.
type Thread struct {
	Kind     string
	Title    string
	Subject  string
	Parts    []string
	Hashtags []string
}
