package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/domain"
)

// ErrBusy is returned by RunNow when a posting run is already in flight
var ErrBusy = errors.New("posting run already in progress")

// Runner performs one posting run
type Runner interface {
	Run(ctx context.Context) (domain.Outcome, error)
}

// Config holds scheduler configuration
type Config struct {
	Interval   time.Duration
	RunOnStart bool
}

// Scheduler triggers posting runs on interval boundaries and on demand, one run at a time
type Scheduler struct {
	runner   Runner
	interval time.Duration
	onStart  bool

	busy atomic.Bool
	mu   sync.RWMutex
	last *domain.Outcome

	wg     sync.WaitGroup
	cancel context.CancelFunc
	now    func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(runner Runner, cfg Config) *Scheduler {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	return &Scheduler{runner: runner, interval: cfg.Interval, onStart: cfg.RunOnStart, now: time.Now}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker(ctx)
	lgr.Printf("[INFO] scheduler started with interval %v, run on start %v", s.interval, s.onStart)
}

// Stop gracefully stops the scheduler, waiting for a run in flight
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow performs a posting run unless one is already in flight, in which case ErrBusy is returned
func (s *Scheduler) RunNow(ctx context.Context) (domain.Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return domain.Outcome{}, ErrBusy
	}
	defer s.busy.Store(false)

	out, err := s.runner.Run(ctx)
	s.mu.Lock()
	s.last = &out
	s.mu.Unlock()
	return out, err
}

// LastOutcome returns the outcome of the latest finished run
func (s *Scheduler) LastOutcome() (domain.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return domain.Outcome{}, false
	}
	return *s.last, true
}

// Busy reports whether a run is in flight
func (s *Scheduler) Busy() bool {
	return s.busy.Load()
}

// worker runs on every interval boundary, the first tick waits for the next boundary
func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	if s.onStart {
		s.tick(ctx)
	}

	timer := time.NewTimer(s.untilNext())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.untilNext())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	out, err := s.RunNow(ctx)
	switch {
	case errors.Is(err, ErrBusy):
		lgr.Printf("[INFO] scheduled run skipped, another run is in progress")
	case err != nil:
		lgr.Printf("[WARN] scheduled run %s failed: %v", out.RunID, err)
	default:
		lgr.Printf("[DEBUG] scheduled run %s finished %s", out.RunID, out.State)
	}
}

// untilNext returns the wait until the next interval boundary
func (s *Scheduler) untilNext() time.Duration {
	now := s.now()
	next := now.Truncate(s.interval).Add(s.interval)
	return next.Sub(now)
}
