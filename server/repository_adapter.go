package server

import (
	"context"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Stats interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// History returns stored post history
func (r *RepositoryAdapter) History(ctx context.Context) domain.History {
	return r.repos.History.Load(ctx)
}

// Analytics returns stored analytics
func (r *RepositoryAdapter) Analytics(ctx context.Context) domain.Analytics {
	return r.repos.Analytics.Load(ctx)
}

// Experiments returns stored experiment results
func (r *RepositoryAdapter) Experiments(ctx context.Context) domain.ExperimentState {
	return r.repos.Experiments.Load(ctx)
}

// Ping checks the store backend
func (r *RepositoryAdapter) Ping(ctx context.Context) error {
	return r.repos.Ping(ctx)
}
