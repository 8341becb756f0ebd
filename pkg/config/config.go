package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable HTTP status server"`
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Store StoreConfig `yaml:"store" json:"store" jsonschema:"description=Persistence of history, analytics and experiments"`

	Schedule struct {
		Interval   time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Interval between posting runs"`
		RunOnStart bool          `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Run a posting cycle right after start"`
		Timezone   string        `yaml:"timezone" json:"timezone" jsonschema:"default=Local,description=Time zone for daily counters and weekday checks"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for tip generation"`

	Publisher PublisherConfig `yaml:"publisher" json:"publisher" jsonschema:"description=Social platform configuration"`

	Content ContentConfig `yaml:"content" json:"content" jsonschema:"description=Topics and content mix"`

	Limits LimitsConfig `yaml:"limits" json:"limits" jsonschema:"description=Posting limits and duplicate guard"`

	Experiments ExperimentsConfig `yaml:"experiments" json:"experiments" jsonschema:"description=A/B experiments"`

	Thread ThreadConfig `yaml:"thread" json:"thread" jsonschema:"description=Thread posting"`

	Trending TrendingConfig `yaml:"trending" json:"trending" jsonschema:"description=Trending topics"`
}

// StoreConfig defines where state documents are kept
type StoreConfig struct {
	Type            string        `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=file,description=Store backend"`
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:devtips.db?cache=shared&mode=rwc,description=SQLite connection string"`
	Dir             string        `yaml:"dir" json:"dir" jsonschema:"default=data,description=Directory for file store"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=1h,description=Connection maximum lifetime"`
}

// LLMConfig holds LLM configuration for tip generation
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.8,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=120,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxRetries   int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=5,minimum=1,description=Generation attempts before falling back to static tips"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// PublisherConfig holds social platform settings
type PublisherConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.twitter.com,description=Platform API base URL"`
	Token    string        `yaml:"token" json:"token" jsonschema:"description=Bearer token (can use environment variable)"`
	DryRun   bool          `yaml:"dry_run" json:"dry_run" jsonschema:"default=false,description=Log posts instead of publishing"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// TopicConfig is a topic with its selection weight, prompts and hashtags
type TopicConfig struct {
	Name     string   `yaml:"name" json:"name" jsonschema:"required,description=Topic name"`
	Weight   float64  `yaml:"weight" json:"weight" jsonschema:"minimum=0,description=Selection weight, weights should sum to 1"`
	Prompts  []string `yaml:"prompts" json:"prompts" jsonschema:"description=Prompt templates for tip generation"`
	Hashtags []string `yaml:"hashtags" json:"hashtags" jsonschema:"description=Base hashtags of the topic"`
}

// DistributionConfig is the share of each content type
type DistributionConfig struct {
	Tips        float64 `yaml:"tips" json:"tips" jsonschema:"default=0.55,minimum=0,maximum=1"`
	Interactive float64 `yaml:"interactive" json:"interactive" jsonschema:"default=0.2,minimum=0,maximum=1"`
	Community   float64 `yaml:"community" json:"community" jsonschema:"default=0.15,minimum=0,maximum=1"`
	Trending    float64 `yaml:"trending" json:"trending" jsonschema:"default=0.1,minimum=0,maximum=1"`
}

// ImagesConfig controls code card rendering
type ImagesConfig struct {
	Enabled       bool `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Render code snippets as images"`
	Width         int  `yaml:"width" json:"width" jsonschema:"default=800"`
	Height        int  `yaml:"height" json:"height" jsonschema:"default=400"`
	MaxCodeLines  int  `yaml:"max_code_lines" json:"max_code_lines" jsonschema:"default=15"`
	MaxLineLength int  `yaml:"max_line_length" json:"max_line_length" jsonschema:"default=80"`
}

// ContentConfig defines topics and content mix
type ContentConfig struct {
	Topics           []TopicConfig      `yaml:"topics" json:"topics" jsonschema:"description=Topics in selection order"`
	Distribution     DistributionConfig `yaml:"distribution" json:"distribution" jsonschema:"description=Content type shares"`
	CelebrationDay   string             `yaml:"celebration_day" json:"celebration_day" jsonschema:"default=friday,description=Weekday forcing a celebration post, none to disable"`
	MaxPostLength    int                `yaml:"max_post_length" json:"max_post_length" jsonschema:"default=280,description=Platform post length limit"`
	MaxContentLength int                `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=150,description=Tip length when no experiment applies"`
	MaxHashtags      int                `yaml:"max_hashtags" json:"max_hashtags" jsonschema:"default=4,description=Hashtag count when no experiment applies"`
	LengthTolerance  float64            `yaml:"length_tolerance" json:"length_tolerance" jsonschema:"default=1.2,description=Responses longer than tolerance x max length are discarded"`
	TrendingHashtags []string           `yaml:"trending_hashtags" json:"trending_hashtags" jsonschema:"description=General hashtags mixed into posts"`
	Images           ImagesConfig       `yaml:"images" json:"images" jsonschema:"description=Code image rendering"`
}

// LimitsConfig holds posting limits
type LimitsConfig struct {
	MaxDailyPosts       int           `yaml:"max_daily_posts" json:"max_daily_posts" jsonschema:"default=8,description=Posts per calendar day"`
	HistorySize         int           `yaml:"history_size" json:"history_size" jsonschema:"default=300,description=Posts kept for duplicate checks"`
	SimilarityThreshold float64       `yaml:"similarity_threshold" json:"similarity_threshold" jsonschema:"default=0.85,minimum=0,maximum=1,description=Similarity above which a post is a duplicate"`
	RateLimitBuffer     time.Duration `yaml:"rate_limit_buffer" json:"rate_limit_buffer" jsonschema:"default=1s,description=Extra wait after rate limit reset"`
	DailyRetention      int           `yaml:"daily_retention" json:"daily_retention" jsonschema:"default=90,description=Days of daily counters to keep"`
}

// VariantConfig is one experiment variant
type VariantConfig struct {
	ID          string  `yaml:"id" json:"id" jsonschema:"required"`
	Weight      float64 `yaml:"weight" json:"weight" jsonschema:"description=Exploration weight"`
	MaxLength   int     `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	MaxHashtags int     `yaml:"max_hashtags,omitempty" json:"max_hashtags,omitempty"`
	Hours       []int   `yaml:"hours,omitempty" json:"hours,omitempty"`
}

// ExperimentConfig defines one experiment
type ExperimentConfig struct {
	Enabled  bool            `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
	Default  string          `yaml:"default" json:"default" jsonschema:"default=B,description=Variant used without data"`
	Enforce  bool            `yaml:"enforce" json:"enforce" jsonschema:"default=false,description=Skip runs outside the variant hours (posting time only)"`
	Variants []VariantConfig `yaml:"variants" json:"variants"`
}

// ExperimentsConfig holds A/B experiments
type ExperimentsConfig struct {
	MinSamples      int              `yaml:"min_samples" json:"min_samples" jsonschema:"default=10,minimum=0,description=Samples a variant needs before it can win"`
	ExplorationRate float64          `yaml:"exploration_rate" json:"exploration_rate" jsonschema:"default=0,minimum=0,maximum=1,description=Chance of trying a weighted random variant"`
	ContentLength   ExperimentConfig `yaml:"content_length" json:"content_length"`
	HashtagCount    ExperimentConfig `yaml:"hashtag_count" json:"hashtag_count"`
	PostingTime     ExperimentConfig `yaml:"posting_time" json:"posting_time"`
}

// ThreadConfig controls threads
type ThreadConfig struct {
	Enabled        bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
	Chance         float64       `yaml:"chance" json:"chance" jsonschema:"default=0.1,minimum=0,maximum=1,description=Chance a run posts a thread"`
	TrendingChance float64       `yaml:"trending_chance" json:"trending_chance" jsonschema:"default=0.3,minimum=0,maximum=1,description=Chance a thread is about trending topics"`
	PartDelay      time.Duration `yaml:"part_delay" json:"part_delay" jsonschema:"default=2s,description=Delay between thread parts"`
	MaxParts       int           `yaml:"max_parts" json:"max_parts" jsonschema:"default=6"`
}

// TrendingConfig controls trending topics
type TrendingConfig struct {
	Enabled         bool                `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
	RefreshInterval time.Duration       `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"default=6h"`
	MinTopics       int                 `yaml:"min_topics" json:"min_topics" jsonschema:"default=3"`
	MaxTopics       int                 `yaml:"max_topics" json:"max_topics" jsonschema:"default=5"`
	Topics          []string            `yaml:"topics" json:"topics" jsonschema:"description=Trend candidates"`
	Feeds           []string            `yaml:"feeds" json:"feeds" jsonschema:"description=RSS feeds scanned for trends"`
	FeedTimeout     time.Duration       `yaml:"feed_timeout" json:"feed_timeout" jsonschema:"default=15s"`
	SeasonalChance  float64             `yaml:"seasonal_chance" json:"seasonal_chance" jsonschema:"default=0.4,minimum=0,maximum=1"`
	Seasonal        map[string][]string `yaml:"seasonal" json:"seasonal" jsonschema:"description=Seasonal events by lowercase month name"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Config{}
	cfg.Server.Enabled = true
	cfg.Content.Images.Enabled = true
	cfg.Thread.Enabled = true
	cfg.Trending.Enabled = true
	cfg.Experiments.MinSamples = -1
	cfg.Experiments.ContentLength.Enabled = true
	cfg.Experiments.HashtagCount.Enabled = true
	cfg.Experiments.PostingTime.Enabled = true
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Store.Type == "" {
		cfg.Store.Type = "sqlite"
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "file:devtips.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = "data"
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = 4
	}
	if cfg.Store.ConnMaxLifetime == 0 {
		cfg.Store.ConnMaxLifetime = time.Hour
	}

	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = time.Hour
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Local"
	}

	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.8
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 120
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = 5
	}

	if cfg.Publisher.Endpoint == "" {
		cfg.Publisher.Endpoint = "https://api.twitter.com"
	}
	if cfg.Publisher.Timeout == 0 {
		cfg.Publisher.Timeout = 30 * time.Second
	}

	contentDefaults(&cfg.Content)

	if cfg.Limits.MaxDailyPosts == 0 {
		cfg.Limits.MaxDailyPosts = 8
	}
	if cfg.Limits.HistorySize == 0 {
		cfg.Limits.HistorySize = 300
	}
	if cfg.Limits.SimilarityThreshold == 0 {
		cfg.Limits.SimilarityThreshold = 0.85
	}
	if cfg.Limits.RateLimitBuffer == 0 {
		cfg.Limits.RateLimitBuffer = time.Second
	}
	if cfg.Limits.DailyRetention == 0 {
		cfg.Limits.DailyRetention = 90
	}

	experimentDefaults(&cfg.Experiments)

	if cfg.Thread.Chance == 0 {
		cfg.Thread.Chance = 0.1
	}
	if cfg.Thread.TrendingChance == 0 {
		cfg.Thread.TrendingChance = 0.3
	}
	if cfg.Thread.PartDelay == 0 {
		cfg.Thread.PartDelay = 2 * time.Second
	}
	if cfg.Thread.MaxParts == 0 {
		cfg.Thread.MaxParts = 6
	}

	if cfg.Trending.RefreshInterval == 0 {
		cfg.Trending.RefreshInterval = 6 * time.Hour
	}
	if cfg.Trending.MinTopics == 0 {
		cfg.Trending.MinTopics = 3
	}
	if cfg.Trending.MaxTopics == 0 {
		cfg.Trending.MaxTopics = 5
	}
	if len(cfg.Trending.Topics) == 0 {
		cfg.Trending.Topics = defaultTrends()
	}
	if cfg.Trending.FeedTimeout == 0 {
		cfg.Trending.FeedTimeout = 15 * time.Second
	}
	if cfg.Trending.SeasonalChance == 0 {
		cfg.Trending.SeasonalChance = 0.4
	}
	if len(cfg.Trending.Seasonal) == 0 {
		cfg.Trending.Seasonal = defaultSeasonal()
	}
}

func contentDefaults(c *ContentConfig) {
	if len(c.Topics) == 0 {
		c.Topics = defaultTopics()
	}
	d := &c.Distribution
	if d.Tips == 0 && d.Interactive == 0 && d.Community == 0 && d.Trending == 0 {
		*d = DistributionConfig{Tips: 0.55, Interactive: 0.20, Community: 0.15, Trending: 0.10}
	}
	if c.CelebrationDay == "" {
		c.CelebrationDay = "friday"
	}
	if c.MaxPostLength == 0 {
		c.MaxPostLength = 280
	}
	if c.MaxContentLength == 0 {
		c.MaxContentLength = 150
	}
	if c.MaxHashtags == 0 {
		c.MaxHashtags = 4
	}
	if c.LengthTolerance == 0 {
		c.LengthTolerance = 1.2
	}
	if len(c.TrendingHashtags) == 0 {
		c.TrendingHashtags = []string{"#TechTwitter", "#Developer", "#Coding", "#Programming", "#SoftwareEngineering",
			"#WebDevelopment", "#FullStack", "#OpenSource", "#TechCommunity", "#CodeNewbie"}
	}
	if c.Images.Width == 0 {
		c.Images.Width = 800
	}
	if c.Images.Height == 0 {
		c.Images.Height = 400
	}
	if c.Images.MaxCodeLines == 0 {
		c.Images.MaxCodeLines = 15
	}
	if c.Images.MaxLineLength == 0 {
		c.Images.MaxLineLength = 80
	}
}

func experimentDefaults(e *ExperimentsConfig) {
	if e.MinSamples < 0 {
		e.MinSamples = 10
	}
	if len(e.ContentLength.Variants) == 0 {
		e.ContentLength.Variants = []VariantConfig{
			{ID: "A", Weight: 0.33, MaxLength: 150},
			{ID: "B", Weight: 0.34, MaxLength: 180},
			{ID: "C", Weight: 0.33, MaxLength: 200},
		}
		if e.ContentLength.Default == "" {
			e.ContentLength.Default = "B"
		}
	}
	if len(e.HashtagCount.Variants) == 0 {
		e.HashtagCount.Variants = []VariantConfig{
			{ID: "A", Weight: 0.33, MaxHashtags: 3},
			{ID: "B", Weight: 0.34, MaxHashtags: 4},
			{ID: "C", Weight: 0.33, MaxHashtags: 5},
		}
		if e.HashtagCount.Default == "" {
			e.HashtagCount.Default = "B"
		}
	}
	if len(e.PostingTime.Variants) == 0 {
		e.PostingTime.Variants = []VariantConfig{
			{ID: "A", Weight: 0.33, Hours: []int{9, 15, 21}},
			{ID: "B", Weight: 0.34, Hours: []int{12, 18}},
			{ID: "C", Weight: 0.33, Hours: []int{6, 10, 14, 18, 22}},
		}
		if e.PostingTime.Default == "" {
			e.PostingTime.Default = "B"
		}
	}
	for _, exp := range []*ExperimentConfig{&e.ContentLength, &e.HashtagCount, &e.PostingTime} {
		if exp.Default == "" && len(exp.Variants) > 0 {
			exp.Default = exp.Variants[0].ID
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Store.Type != "sqlite" && cfg.Store.Type != "file" {
		return fmt.Errorf("store.type must be sqlite or file, got %q", cfg.Store.Type)
	}
	if cfg.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule.interval must be at least 1 minute")
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxRetries < 1 {
		return fmt.Errorf("llm.max_retries must be at least 1")
	}
	if !cfg.Publisher.DryRun && cfg.Publisher.Token == "" {
		return fmt.Errorf("publisher.token is required unless dry_run is set")
	}

	if err := validateContent(&cfg.Content); err != nil {
		return err
	}

	if cfg.Limits.MaxDailyPosts < 1 {
		return fmt.Errorf("limits.max_daily_posts must be at least 1")
	}
	if cfg.Limits.SimilarityThreshold <= 0 || cfg.Limits.SimilarityThreshold > 1 {
		return fmt.Errorf("limits.similarity_threshold must be in (0, 1]")
	}

	if cfg.Experiments.ExplorationRate < 0 || cfg.Experiments.ExplorationRate > 1 {
		return fmt.Errorf("experiments.exploration_rate must be between 0 and 1")
	}
	for name, exp := range cfg.ExperimentsByName() {
		if err := validateExperiment(name, exp); err != nil {
			return err
		}
	}

	if cfg.Thread.Chance < 0 || cfg.Thread.Chance > 1 {
		return fmt.Errorf("thread.chance must be between 0 and 1")
	}
	if cfg.Trending.MinTopics > cfg.Trending.MaxTopics {
		return fmt.Errorf("trending.min_topics must not exceed trending.max_topics")
	}

	// server timeout is only relevant when server runs
	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	return nil
}

func validateContent(c *ContentConfig) error {
	seen := map[string]bool{}
	for i, t := range c.Topics {
		if t.Name == "" {
			return fmt.Errorf("content.topics[%d].name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("content.topics: duplicate topic %q", t.Name)
		}
		seen[t.Name] = true
		if t.Weight < 0 {
			return fmt.Errorf("content.topics[%d].weight must be non-negative", i)
		}
	}
	d := c.Distribution
	for _, v := range []float64{d.Tips, d.Interactive, d.Community, d.Trending} {
		if v < 0 {
			return fmt.Errorf("content.distribution values must be non-negative")
		}
	}
	if sum := d.Tips + d.Interactive + d.Community + d.Trending; math.Abs(sum-1) > 0.01 {
		return fmt.Errorf("content.distribution must sum to 1, got %.2f", sum)
	}
	if _, err := c.Weekday(); err != nil {
		return fmt.Errorf("content.celebration_day: %w", err)
	}
	if c.LengthTolerance < 1 {
		return fmt.Errorf("content.length_tolerance must be at least 1")
	}
	return nil
}

func validateExperiment(name string, exp ExperimentConfig) error {
	if !exp.Enabled {
		return nil
	}
	ids := map[string]bool{}
	for _, v := range exp.Variants {
		if v.ID == "" {
			return fmt.Errorf("experiments.%s: variant id is required", name)
		}
		ids[v.ID] = true
	}
	if !ids[exp.Default] {
		return fmt.Errorf("experiments.%s: default variant %q is not defined", name, exp.Default)
	}
	return nil
}

// ExperimentsByName returns experiments keyed by their stored name
func (c *Config) ExperimentsByName() map[string]ExperimentConfig {
	return map[string]ExperimentConfig{
		"content_length": c.Experiments.ContentLength,
		"hashtag_count":  c.Experiments.HashtagCount,
		"posting_time":   c.Experiments.PostingTime,
	}
}

// Location returns the scheduler time zone
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" || strings.EqualFold(c.Schedule.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

// Weekday parses the celebration day, nil when disabled
func (c *ContentConfig) Weekday() (*time.Weekday, error) {
	day := strings.ToLower(strings.TrimSpace(c.CelebrationDay))
	if day == "" || day == "none" {
		return nil, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == day {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unknown weekday %q", c.CelebrationDay)
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetReportConfig returns what stats reports need: the experiment sample gate and the daily counters zone.
// An invalid time zone falls back to local time.
func (c *Config) GetReportConfig() (minSamples int, location *time.Location) {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return c.Experiments.MinSamples, loc
}
