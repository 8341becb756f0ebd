package trending

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

// Pattern is a trending subject recognized by its keywords
type Pattern struct {
	Name     string
	Keywords []string
}

// DefaultPatterns are the subjects recognized in feed titles
var DefaultPatterns = []Pattern{
	{Name: "AI/ML", Keywords: []string{"AI", "machine learning", "ML", "GPT", "ChatGPT", "OpenAI", "LLM", "AGI"}},
	{Name: "Web3", Keywords: []string{"Web3", "blockchain", "crypto", "NFT", "DeFi", "Ethereum"}},
	{Name: "Cloud Computing", Keywords: []string{"AWS", "Azure", "GCP", "cloud", "serverless", "Kubernetes"}},
	{Name: "Cybersecurity", Keywords: []string{"security", "cybersecurity", "vulnerability", "CVE", "zero-day", "breach"}},
	{Name: "Mobile Development", Keywords: []string{"iOS", "Android", "Flutter", "React Native", "mobile app"}},
	{Name: "Data Science", Keywords: []string{"data science", "analytics", "big data", "pandas", "numpy"}},
	{Name: "Remote Work", Keywords: []string{"remote work", "WFH", "work from home", "distributed teams"}},
	{Name: "DevOps", Keywords: []string{"DevOps", "CI/CD", "Docker", "Terraform", "GitOps"}},
}

type matcher struct {
	name string
	re   *regexp.Regexp
}

// FeedSource finds trending subjects by matching RSS/Atom item titles against keyword patterns.
// When no feed can be read or nothing matches, the fallback source is used.
type FeedSource struct {
	client    *http.Client
	userAgent string
	feeds     []string
	matchers  []matcher
	maxTopics int
	fallback  Source
}

// FeedSourceParams configures FeedSource
type FeedSourceParams struct {
	Feeds     []string
	Patterns  []Pattern
	MaxTopics int
	Timeout   time.Duration
	UserAgent string
	Fallback  Source
}

// NewFeedSource makes a feed based trending source
func NewFeedSource(params FeedSourceParams) *FeedSource {
	if params.Patterns == nil {
		params.Patterns = DefaultPatterns
	}
	if params.UserAgent == "" {
		params.UserAgent = "Mozilla/5.0 (compatible; devtips/1.0)"
	}
	matchers := make([]matcher, 0, len(params.Patterns))
	for _, p := range params.Patterns {
		quoted := make([]string, 0, len(p.Keywords))
		for _, k := range p.Keywords {
			quoted = append(quoted, regexp.QuoteMeta(k))
		}
		if len(quoted) == 0 {
			continue
		}
		matchers = append(matchers, matcher{name: p.Name, re: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)})
	}
	return &FeedSource{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: params.UserAgent,
		feeds:     params.Feeds,
		matchers:  matchers,
		maxTopics: params.MaxTopics,
		fallback:  params.Fallback,
	}
}

// Fetch reads all feeds and returns the subjects mentioned most, most frequent first
func (s *FeedSource) Fetch(ctx context.Context) ([]string, error) {
	titles := s.titles(ctx)

	counts := map[string]int{}
	for _, title := range titles {
		for _, m := range s.matchers {
			if m.re.MatchString(title) {
				counts[m.name]++
			}
		}
	}

	if len(counts) == 0 {
		if s.fallback == nil {
			return nil, fmt.Errorf("no trending subjects in %d titles", len(titles))
		}
		lgr.Printf("[DEBUG] no trending subjects in %d feed titles, using fallback", len(titles))
		return s.fallback.Fetch(ctx)
	}

	// order follows patterns for equal counts
	res := make([]string, 0, len(counts))
	for _, m := range s.matchers {
		if counts[m.name] > 0 {
			res = append(res, m.name)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return counts[res[i]] > counts[res[j]] })
	if s.maxTopics > 0 && len(res) > s.maxTopics {
		res = res[:s.maxTopics]
	}
	return res, nil
}

// titles fetches every feed concurrently, unreadable feeds are logged and skipped
func (s *FeedSource) titles(ctx context.Context) []string {
	var mu sync.Mutex
	var res []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, url := range s.feeds {
		g.Go(func() error {
			titles, err := s.parse(ctx, url)
			if err != nil {
				lgr.Printf("[WARN] failed to read trending feed %s: %v", url, err)
				return nil
			}
			mu.Lock()
			res = append(res, titles...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// parse fetches a feed and returns its item titles
func (s *FeedSource) parse(ctx context.Context, url string) ([]string, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if t := strings.TrimSpace(item.Title); t != "" {
			res = append(res, t)
		}
	}
	return res, nil
}

func (s *FeedSource) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
