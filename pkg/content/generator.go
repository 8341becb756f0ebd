// Package content produces post bodies for every content type: LLM generated tips with validation
// and a static fallback, and template based interactive, community, trending and thread content.
package content

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/llm"
	"github.com/umputun/devtips/pkg/selector"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// Completer produces text for a prompt
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (llm.Response, error)
}

// Handler produces content of one type
type Handler func(ctx context.Context, req domain.GenerateRequest) (domain.Content, error)

// Handlers has one handler per single-post content type
type Handlers struct {
	Tips        Handler
	Interactive Handler
	Community   Handler
	Trending    Handler
}

// Config holds generator settings
type Config struct {
	MaxRetries       int      // tip generation attempts before fallback
	MaxPostLength    int      // platform limit, hashtags included
	LengthTolerance  float64  // responses longer than tolerance x max length are discarded unchecked
	TrendingHashtags []string // general tags, two of them are mixed into tips
}

// validationSlack is how far a tip may run over the requested length
const validationSlack = 20

// Generator produces content for a request, dispatching by content type
type Generator struct {
	completer Completer
	cfg       Config
	rnd       selector.Rand
	sanitizer *bluemonday.Policy
	handlers  Handlers
}

// NewGenerator makes a generator with the default handler set
func NewGenerator(completer Completer, cfg Config, rnd selector.Rand) *Generator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.MaxPostLength <= 0 {
		cfg.MaxPostLength = 280
	}
	if cfg.LengthTolerance < 1 {
		cfg.LengthTolerance = 1.2
	}
	g := &Generator{completer: completer, cfg: cfg, rnd: rnd, sanitizer: bluemonday.StrictPolicy()}
	g.handlers = Handlers{
		Tips:        g.tips,
		Interactive: g.interactive,
		Community:   g.community,
		Trending:    g.trending,
	}
	return g
}

// Generate returns content for the requested type. Tips that can't be generated fall back to a
// static tip, so the only error is context cancellation.
func (g *Generator) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Content, error) {
	if err := ctx.Err(); err != nil {
		return domain.Content{}, fmt.Errorf("generate %s: %w", req.Choice, err)
	}
	if req.MaxLength <= 0 {
		req.MaxLength = 150
	}

	var h Handler
	switch req.Choice.Type {
	case domain.ContentTips:
		h = g.handlers.Tips
	case domain.ContentInteractive:
		h = g.handlers.Interactive
	case domain.ContentCommunity:
		h = g.handlers.Community
	case domain.ContentTrending:
		h = g.handlers.Trending
	default:
		lgr.Printf("[WARN] no handler for content type %q, generating a tip", req.Choice.Type)
		req.Choice = domain.ContentChoice{Type: domain.ContentTips}
		h = g.handlers.Tips
	}

	c, err := h(ctx, req)
	if err != nil {
		return domain.Content{}, fmt.Errorf("generate %s: %w", req.Choice, err)
	}
	if c.Choice.Type == "" {
		c.Choice = req.Choice
	}
	return c, nil
}

// tips asks the completer for a tip until one passes validation or attempts run out
func (g *Generator) tips(ctx context.Context, req domain.GenerateRequest) (domain.Content, error) {
	discardAbove := int(math.Floor(g.cfg.LengthTolerance * float64(req.MaxLength)))

	for attempt := 1; attempt <= g.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.Content{}, err
		}

		resp, err := g.completer.Complete(ctx, llm.Request{Prompt: g.tipPrompt(req, attempt), MaxOutputLength: req.MaxLength})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.Content{}, ctxErr
			}
			switch {
			case errors.Is(err, llm.ErrContentFiltered):
				lgr.Printf("[WARN] %s tip attempt %d filtered", req.Topic.Name, attempt)
			case errors.Is(err, llm.ErrTimeout):
				lgr.Printf("[WARN] %s tip attempt %d timed out", req.Topic.Name, attempt)
			default:
				lgr.Printf("[WARN] %s tip attempt %d failed: %v", req.Topic.Name, attempt, err)
			}
			continue
		}

		if n := utf8.RuneCountInString(resp.Text); n > discardAbove {
			lgr.Printf("[DEBUG] %s tip attempt %d: %d chars, over %d, discarded", req.Topic.Name, attempt, n, discardAbove)
			continue
		}

		text := g.sanitize(resp.Text)
		tags := g.hashtags(req.Topic.Hashtags, text, req.MaxHashtags)
		if err := g.validate(text, tags, req.MaxLength); err != nil {
			lgr.Printf("[DEBUG] %s tip attempt %d rejected: %v", req.Topic.Name, attempt, err)
			continue
		}

		lgr.Printf("[DEBUG] %s tip attempt %d: %d chars", req.Topic.Name, attempt, utf8.RuneCountInString(text))
		return domain.Content{Text: text, RawCode: extractCode(text), Hashtags: tags, Attempts: attempt}, nil
	}

	lgr.Printf("[WARN] all %d attempts for %s tip failed, using fallback tip", g.cfg.MaxRetries, req.Topic.Name)
	fb := fallbackTips[g.rnd.IntN(len(fallbackTips))]
	return domain.Content{
		Text:     fb.text,
		RawCode:  extractCode(fb.text),
		Hashtags: capTags(fb.hashtags, req.MaxHashtags),
		Fallback: true,
		Attempts: g.cfg.MaxRetries,
	}, nil
}

func (g *Generator) tipPrompt(req domain.GenerateRequest, attempt int) string {
	base := selector.Pick(g.rnd, req.Topic.Prompts)
	if base == "" {
		base = fmt.Sprintf("Share a practical %s programming tip", req.Topic.Name)
	}
	prompt := fmt.Sprintf("%s. Topic: %s. Keep it under %d characters, include a short code example when it helps.",
		strings.TrimSuffix(base, "."), req.Topic.Name, req.MaxLength)
	if attempt > 1 {
		prompt += fmt.Sprintf(" Previous answer was rejected. Be stricter: at most %d characters in total, "+
			"one sentence and a one-line code example, no hashtags.", req.MaxLength)
	}
	return prompt
}

var trailingTagsRe = regexp.MustCompile(`(\s+#[\p{L}\p{N}_]+)+\s*$`)

// sanitize strips markup, trailing hashtags and wrapping quotes from completion text
func (g *Generator) sanitize(s string) string {
	s = html.UnescapeString(g.sanitizer.Sanitize(s))
	s = strings.TrimSpace(s)
	s = trailingTagsRe.ReplaceAllString(s, "")
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// validate checks a tip body against the requested and platform limits
func (g *Generator) validate(text string, tags []string, maxLength int) error {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return errors.New("empty content")
	}
	if limit := maxLength + validationSlack; n > limit {
		return fmt.Errorf("content too long, %d/%d", n, limit)
	}
	if total := utf8.RuneCountInString(domain.JoinHashtags(text, tags)); total > g.cfg.MaxPostLength {
		return fmt.Errorf("post too long with hashtags, %d/%d", total, g.cfg.MaxPostLength)
	}
	return nil
}

var codeRe = regexp.MustCompile("```[\\s\\S]*?```|`[^`]+`")
var fenceLangRe = regexp.MustCompile("^```[\\w+#.-]*\\n")

// extractCode returns the first fenced or inline code fragment without backticks
func extractCode(text string) string {
	m := codeRe.FindString(text)
	if m == "" {
		return ""
	}
	m = fenceLangRe.ReplaceAllString(m, "")
	return strings.TrimSpace(strings.ReplaceAll(m, "`", ""))
}
