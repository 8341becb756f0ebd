package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/devtips/pkg/config"
)

// errors reported by the completion client, both retryable by callers
var (
	ErrContentFiltered = errors.New("completion blocked by content filter")
	ErrTimeout         = errors.New("completion timed out")
)

// Request is a single text completion request
type Request struct {
	Prompt          string
	MaxOutputLength int // characters, used as a hint in the system message
	Temperature     float64
}

// Response is the completion text
type Response struct {
	Text string
}

// Completer calls an OpenAI-compatible chat completion API
type Completer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewCompleter creates a new completion client
func NewCompleter(cfg config.LLMConfig) *Completer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Completer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for tip generation
const defaultSystemPrompt = `You write short programming tips for developers on social media.
Rules:
- output only the post text, no quotes, no preamble, no hashtags
- prefer a compact code example in backticks when it helps
- be precise and practical, witty if possible
- stay under the requested character limit`

// Complete sends the prompt and returns the first choice text
func (c *Completer) Complete(ctx context.Context, req Request) (Response, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}
	system := c.systemMsg
	if req.MaxOutputLength > 0 {
		system += fmt.Sprintf("\n- the post must be at most %d characters", req.MaxOutputLength)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}

	started := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Response{}, fmt.Errorf("llm request after %v: %w", time.Since(started).Round(time.Millisecond), ErrTimeout)
		}
		return Response{}, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no response from llm")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return Response{}, ErrContentFiltered
	}
	return Response{Text: strings.TrimSpace(choice.Message.Content)}, nil
}
