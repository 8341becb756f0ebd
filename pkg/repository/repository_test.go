package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/domain"
)

func newTestRepos(t *testing.T, storeType string) *Repositories {
	t.Helper()
	cfg := Config{
		Type:            storeType,
		DSN:             ":memory:",
		Dir:             t.TempDir(),
		MaxOpenConns:    1,
		ConnMaxLifetime: 30 * time.Second,
		HistorySize:     5,
		DailyRetention:  30,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	for _, storeType := range []string{"sqlite", "file"} {
		t.Run(storeType, func(t *testing.T) {
			repos := newTestRepos(t, storeType)
			ctx := context.Background()
			require.NoError(t, repos.Ping(ctx))

			t.Run("empty state", func(t *testing.T) {
				assert.Empty(t, repos.History.Load(ctx).Posts)
				assert.Equal(t, 0, repos.Analytics.Load(ctx).TotalPosts)
				assert.Empty(t, repos.Experiments.Load(ctx).Experiments)
			})

			t.Run("history keeps window", func(t *testing.T) {
				for i := 0; i < 7; i++ {
					require.NoError(t, repos.History.Append(ctx, domain.Post{ID: fmt.Sprintf("id%d", i), Text: fmt.Sprintf("tip %d", i)}))
				}
				h := repos.History.Load(ctx)
				require.Len(t, h.Posts, 5)
				assert.Equal(t, []string{"tip 2", "tip 3", "tip 4", "tip 5", "tip 6"}, h.Texts())
			})

			t.Run("analytics", func(t *testing.T) {
				ts := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
				require.NoError(t, repos.Analytics.RecordPost(ctx, domain.Post{Topic: "Git", ContentType: domain.ContentTips, CreatedAt: ts}, 0.1))
				require.NoError(t, repos.Analytics.RecordPost(ctx, domain.Post{Topic: "Git", ContentType: domain.ContentTips, CreatedAt: ts}, 0.3))
				a := repos.Analytics.Load(ctx)
				assert.Equal(t, 2, a.TotalPosts)
				assert.InDelta(t, 0.2, a.Topics["Git"].Average, 1e-9)
				assert.Equal(t, 2, a.Day(ts).PostCount)
			})

			t.Run("experiments", func(t *testing.T) {
				ts := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
				require.NoError(t, repos.Experiments.RecordSample(ctx, domain.ExperimentContentLength, "C", 0.2, ts))
				require.NoError(t, repos.Experiments.RecordSample(ctx, domain.ExperimentContentLength, "A", 0.1, ts))
				require.NoError(t, repos.Experiments.RecordSample(ctx, domain.ExperimentContentLength, "C", 0.4, ts))
				st := repos.Experiments.Load(ctx)
				exp := st.Experiments[domain.ExperimentContentLength]
				require.NotNil(t, exp)
				assert.Equal(t, []string{"C", "A"}, exp.Order)
				assert.Equal(t, 2, exp.Variants["C"].Count)
				assert.InDelta(t, 0.3, exp.Variants["C"].Average, 1e-9)
				assert.Equal(t, 3, exp.TotalSamples)
			})
		})
	}
}

func TestRepositories_CorruptDocuments(t *testing.T) {
	for _, storeType := range []string{"sqlite", "file"} {
		t.Run(storeType, func(t *testing.T) {
			repos := newTestRepos(t, storeType)
			ctx := context.Background()
			for _, key := range []string{keyHistory, keyAnalytics, keyExperiments} {
				require.NoError(t, repos.Backend.Put(ctx, key, []byte("{not json")))
			}

			assert.Empty(t, repos.History.Load(ctx).Posts)
			assert.Equal(t, 0, repos.Analytics.Load(ctx).TotalPosts)
			assert.Empty(t, repos.Experiments.Load(ctx).Experiments)

			// writes replace the corrupt document
			require.NoError(t, repos.History.Append(ctx, domain.Post{Text: "fresh"}))
			assert.Equal(t, []string{"fresh"}, repos.History.Load(ctx).Texts())
		})
	}
}

func TestNewRepositories_UnknownType(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{Type: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store type")
}

func TestFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b := NewFileBackend(dir)
	ctx := context.Background()

	_, err := b.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put(ctx, "doc", []byte(`{"a":1}`)))
	require.NoError(t, b.Put(ctx, "doc", []byte(`{"a":2}`)))
	data, err := b.Get(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestDocumentRepository(t *testing.T) {
	repos := newTestRepos(t, "sqlite")
	ctx := context.Background()

	_, err := repos.Backend.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repos.Backend.Put(ctx, "doc", []byte("v1")))
	require.NoError(t, repos.Backend.Put(ctx, "doc", []byte("v2")))
	data, err := repos.Backend.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(fmt.Errorf("exec: database is locked")))
	assert.True(t, isLockError(fmt.Errorf("SQLITE_BUSY")))
	assert.False(t, isLockError(fmt.Errorf("no such table")))
}

func TestRetryOnLock(t *testing.T) {
	ctx := context.Background()

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		err := retryOnLock(ctx, 5, time.Millisecond, func() error {
			calls++
			return errors.New("no such table: documents")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, errCritical)
		assert.EqualError(t, err, "no such table: documents")
	})

	t.Run("lock errors are retried", func(t *testing.T) {
		calls := 0
		err := retryOnLock(ctx, 5, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("lock errors give up after attempts", func(t *testing.T) {
		calls := 0
		err := retryOnLock(ctx, 3, time.Millisecond, func() error {
			calls++
			return errors.New("SQLITE_BUSY")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.NotErrorIs(t, err, errCritical)
	})
}

func TestDocumentRepository_ClosedDBFailsFast(t *testing.T) {
	repos, err := NewRepositories(context.Background(), Config{Type: "sqlite", DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	st := time.Now()
	err = repos.Backend.Put(context.Background(), "doc", []byte("v1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errCritical)
	assert.Less(t, time.Since(st), 50*time.Millisecond, "no backoff between attempts")
}
