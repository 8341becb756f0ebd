package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/domain"
)

// HistoryRepository keeps the bounded window of recent posts
type HistoryRepository struct {
	backend  Backend
	capacity int
}

// NewHistoryRepository creates a history repository keeping up to capacity posts
func NewHistoryRepository(backend Backend, capacity int) *HistoryRepository {
	if capacity <= 0 {
		capacity = 300
	}
	return &HistoryRepository{backend: backend, capacity: capacity}
}

// Load returns stored history, empty on absence or corruption
func (r *HistoryRepository) Load(ctx context.Context) domain.History {
	var h domain.History
	loadDocument(ctx, r.backend, keyHistory, &h)
	return h
}

// Append adds post to history and rewrites the document
func (r *HistoryRepository) Append(ctx context.Context, post domain.Post) error {
	h := r.Load(ctx)
	h.Append(post, r.capacity)
	if err := saveDocument(ctx, r.backend, keyHistory, h); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// AnalyticsRepository keeps aggregated posting statistics
type AnalyticsRepository struct {
	backend   Backend
	retention int
}

// NewAnalyticsRepository creates an analytics repository keeping retention days of daily counters
func NewAnalyticsRepository(backend Backend, retention int) *AnalyticsRepository {
	return &AnalyticsRepository{backend: backend, retention: retention}
}

// Load returns stored analytics, empty on absence or corruption
func (r *AnalyticsRepository) Load(ctx context.Context) domain.Analytics {
	var a domain.Analytics
	loadDocument(ctx, r.backend, keyAnalytics, &a)
	return a
}

// RecordPost accounts a published post with its engagement metric
func (r *AnalyticsRepository) RecordPost(ctx context.Context, post domain.Post, metric float64) error {
	a := r.Load(ctx)
	a.Record(post, metric)
	a.PruneDaily(post.CreatedAt, r.retention)
	if err := saveDocument(ctx, r.backend, keyAnalytics, a); err != nil {
		return fmt.Errorf("save analytics: %w", err)
	}
	return nil
}

// ExperimentRepository keeps per-variant experiment results
type ExperimentRepository struct {
	backend Backend
}

// NewExperimentRepository creates an experiment repository
func NewExperimentRepository(backend Backend) *ExperimentRepository {
	return &ExperimentRepository{backend: backend}
}

// Load returns stored experiment state, empty on absence or corruption
func (r *ExperimentRepository) Load(ctx context.Context) domain.ExperimentState {
	var st domain.ExperimentState
	loadDocument(ctx, r.backend, keyExperiments, &st)
	return st
}

// RecordSample adds one metric sample to the experiment variant
func (r *ExperimentRepository) RecordSample(ctx context.Context, experiment, variant string, value float64, at time.Time) error {
	st := r.Load(ctx)
	st.Record(experiment, variant, value, at)
	if err := saveDocument(ctx, r.backend, keyExperiments, st); err != nil {
		return fmt.Errorf("save experiments: %w", err)
	}
	return nil
}

// loadDocument decodes the document into dst. Missing, unreadable or corrupt
// documents leave dst at its zero value.
func loadDocument[T any](ctx context.Context, backend Backend, key string, dst *T) {
	data, err := backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		lgr.Printf("[DEBUG] no %s stored yet, starting empty", key)
		return
	}
	if err != nil {
		lgr.Printf("[WARN] can't read %s, starting empty: %v", key, err)
		return
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		lgr.Printf("[WARN] %s is corrupt, starting empty: %v", key, err)
		return
	}
	*dst = v
}

func saveDocument(ctx context.Context, backend Backend, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return backend.Put(ctx, key, data)
}
