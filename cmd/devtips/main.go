package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/devtips/pkg/config"
	"github.com/umputun/devtips/pkg/content"
	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/experiment"
	"github.com/umputun/devtips/pkg/llm"
	"github.com/umputun/devtips/pkg/render"
	"github.com/umputun/devtips/pkg/repository"
	"github.com/umputun/devtips/pkg/scheduler"
	"github.com/umputun/devtips/pkg/selector"
	"github.com/umputun/devtips/pkg/social"
	"github.com/umputun/devtips/pkg/trending"
	"github.com/umputun/devtips/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once   bool   `long:"once" env:"ONCE" description:"perform a single posting run and exit"`
	DryRun bool   `long:"dry-run" env:"DRY_RUN" description:"log posts instead of publishing"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// metrics are registered once per process with the default registry served on /metrics
var pipelineMetrics = sync.OnceValue(func() *scheduler.Metrics {
	return scheduler.NewMetrics(prometheus.DefaultRegisterer)
})

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting devtips version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components from the configuration and either performs one posting run
// or keeps the scheduler and the status server running until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DryRun {
		cfg.Publisher.DryRun = true
	}
	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.Publisher.Token)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		Type:            cfg.Store.Type,
		DSN:             cfg.Store.DSN,
		Dir:             cfg.Store.Dir,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
		HistorySize:     cfg.Limits.HistorySize,
		DailyRetention:  cfg.Limits.DailyRetention,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	pipeline, err := makePipeline(cfg, repos)
	if err != nil {
		return err
	}

	if opts.Once {
		out, err := pipeline.Run(ctx)
		if err != nil {
			return fmt.Errorf("posting run %s failed: %w", out.RunID, err)
		}
		lgr.Printf("[INFO] posting run %s finished %s %s", out.RunID, out.State, out.Reason)
		return nil
	}

	sched := scheduler.NewScheduler(pipeline, scheduler.Config{
		Interval:   cfg.Schedule.Interval,
		RunOnStart: cfg.Schedule.RunOnStart,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(ctx)
		<-ctx.Done()
		sched.Stop()
		return nil
	})

	if cfg.Server.Enabled {
		srv := server.New(cfg, sched, server.NewRepositoryAdapter(repos), revision, opts.Debug)
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// makePipeline builds the posting pipeline with all its collaborators
func makePipeline(cfg *config.Config, repos *repository.Repositories) (*scheduler.Pipeline, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}
	celebration, err := cfg.Content.Weekday()
	if err != nil {
		return nil, fmt.Errorf("failed to parse celebration day: %w", err)
	}

	rnd := selector.NewRand()

	generator := content.NewGenerator(llm.NewCompleter(cfg.LLM), content.Config{
		MaxRetries:       cfg.LLM.MaxRetries,
		MaxPostLength:    cfg.Content.MaxPostLength,
		LengthTolerance:  cfg.Content.LengthTolerance,
		TrendingHashtags: cfg.Content.TrendingHashtags,
	}, rnd)

	optimizer := experiment.NewOptimizer(repos.Experiments, experiment.Config{
		Definitions:     experimentDefinitions(cfg),
		MinSamples:      cfg.Experiments.MinSamples,
		ExplorationRate: cfg.Experiments.ExplorationRate,
		Rand:            rnd,
	})

	params := scheduler.PipelineParams{
		Generator:   generator,
		Optimizer:   optimizer,
		History:     repos.History,
		Analytics:   repos.Analytics,
		Experiments: repos.Experiments,
		Metrics:     pipelineMetrics(),
		Rand:        rnd,
		Config: scheduler.PipelineConfig{
			Topics: topics(cfg.Content.Topics),
			Distribution: selector.Distribution{
				Tips:        cfg.Content.Distribution.Tips,
				Interactive: cfg.Content.Distribution.Interactive,
				Community:   cfg.Content.Distribution.Community,
				Trending:    cfg.Content.Distribution.Trending,
			},
			CelebrationDay:      celebration,
			MaxDailyPosts:       cfg.Limits.MaxDailyPosts,
			SimilarityThreshold: cfg.Limits.SimilarityThreshold,
			RateLimitBuffer:     cfg.Limits.RateLimitBuffer,
			MaxLength:           cfg.Content.MaxContentLength,
			MaxHashtags:         cfg.Content.MaxHashtags,
			Images:              cfg.Content.Images.Enabled,
			Thread: scheduler.ThreadConfig{
				Enabled:        cfg.Thread.Enabled,
				Chance:         cfg.Thread.Chance,
				TrendingChance: cfg.Thread.TrendingChance,
				PartDelay:      cfg.Thread.PartDelay,
				MaxParts:       cfg.Thread.MaxParts,
			},
			Seasonal:       cfg.Trending.Seasonal,
			SeasonalChance: cfg.Trending.SeasonalChance,
			Location:       loc,
		},
	}

	// interface fields stay nil for disabled parts, a typed nil would look enabled
	if cfg.Publisher.DryRun {
		lgr.Printf("[INFO] dry run mode, posts are logged only")
		params.Publisher, params.Uploader = social.DryRun{}, social.DryRun{}
	} else {
		client := social.NewClient(cfg.Publisher)
		params.Publisher, params.Uploader = client, client
	}
	if cfg.Content.Images.Enabled {
		params.Renderer = render.New(cfg.Content.Images)
	}
	if cfg.Trending.Enabled {
		params.Trending = makeTrending(cfg.Trending, rnd)
	}

	return scheduler.NewPipeline(params), nil
}

// makeTrending makes a refreshing trending cache over feeds, with the static list as a fallback
func makeTrending(cfg config.TrendingConfig, rnd selector.Rand) *trending.Cache {
	var src trending.Source = trending.NewStaticSource(cfg.Topics, cfg.MinTopics, cfg.MaxTopics, rnd)
	if len(cfg.Feeds) > 0 {
		lgr.Printf("[INFO] trending topics from %d feeds", len(cfg.Feeds))
		src = trending.NewFeedSource(trending.FeedSourceParams{
			Feeds:     cfg.Feeds,
			MaxTopics: cfg.MaxTopics,
			Timeout:   cfg.FeedTimeout,
			Fallback:  src,
		})
	}
	return trending.NewCache(src, cfg.RefreshInterval)
}

func topics(list []config.TopicConfig) []domain.Topic {
	res := make([]domain.Topic, 0, len(list))
	for _, t := range list {
		res = append(res, domain.Topic{Name: t.Name, Weight: t.Weight, Prompts: t.Prompts, Hashtags: t.Hashtags})
	}
	return res
}

func experimentDefinitions(cfg *config.Config) []experiment.Definition {
	res := make([]experiment.Definition, 0, len(domain.Experiments))
	byName := cfg.ExperimentsByName()
	for _, name := range domain.Experiments {
		exp := byName[name]
		def := experiment.Definition{Name: name, Enabled: exp.Enabled, Default: exp.Default, Enforce: exp.Enforce}
		for _, v := range exp.Variants {
			def.Variants = append(def.Variants, experiment.Variant{
				ID:     v.ID,
				Weight: v.Weight,
				Params: domain.VariantParams{MaxLength: v.MaxLength, MaxHashtags: v.MaxHashtags, Hours: v.Hours},
			})
		}
		res = append(res, def)
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
