package domain

import (
	"fmt"
	"time"
)

// RunState is a state of the posting pipeline
type RunState string

const (
	StateSelectTopic       RunState = "SELECT_TOPIC"
	StateSelectContentType RunState = "SELECT_CONTENT_TYPE"
	StateGenerate          RunState = "GENERATE"
	StateValidateDuplicate RunState = "VALIDATE_DUPLICATE"
	StateRenderMedia       RunState = "RENDER_MEDIA"
	StatePublish           RunState = "PUBLISH"
	StateRecord            RunState = "RECORD"

	StateSkipped   RunState = "SKIPPED"
	StatePublished RunState = "PUBLISHED"
	StateFailed    RunState = "FAILED"
)

// Terminal reports whether the state ends a run
func (s RunState) Terminal() bool {
	return s == StateSkipped || s == StatePublished || s == StateFailed
}

// Outcome is the result of one posting run
type Outcome struct {
	RunID      string    `json:"run_id"`
	State      RunState  `json:"state"`
	Reason     string    `json:"reason,omitempty"`
	Post       *Post     `json:"post,omitempty"`
	Thread     bool      `json:"thread,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RateLimitError is returned by a publisher when the platform rejects a call with a rate limit.
// Reset is the moment the limit window resets.
type RateLimitError struct {
	Reset time.Time
	Err   error
}

func (e *RateLimitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rate limited until %s: %v", e.Reset.Format(time.RFC3339), e.Err)
	}
	return fmt.Sprintf("rate limited until %s", e.Reset.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
