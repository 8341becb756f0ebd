package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/repository"
	"github.com/umputun/devtips/pkg/scheduler"
	"github.com/umputun/devtips/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return reportConfig(1, time.Local)
}

func reportConfig(minSamples int, loc *time.Location) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
		GetReportConfigFunc: func() (int, *time.Location) { return minSamples, loc },
	}
}

func testStats() *mocks.StatsMock {
	return &mocks.StatsMock{
		HistoryFunc:     func(context.Context) domain.History { return domain.History{} },
		AnalyticsFunc:   func(context.Context) domain.Analytics { return domain.Analytics{} },
		ExperimentsFunc: func(context.Context) domain.ExperimentState { return domain.ExperimentState{} },
		PingFunc:        func(context.Context) error { return nil },
	}
}

func idleScheduler() *mocks.SchedulerMock {
	return &mocks.SchedulerMock{
		BusyFunc:        func() bool { return false },
		LastOutcomeFunc: func() (domain.Outcome, bool) { return domain.Outcome{}, false },
	}
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec // test url
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(), idleScheduler(), testStats(), "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.Equal(t, 1, srv.minSamples)
	assert.Equal(t, time.Local, srv.location)
}

func TestServer_Status(t *testing.T) {
	last := domain.Outcome{RunID: "r1", State: domain.StateSkipped, Reason: "daily cap reached, 8/8 posts"}
	sched := &mocks.SchedulerMock{
		BusyFunc:        func() bool { return true },
		LastOutcomeFunc: func() (domain.Outcome, bool) { return last, true },
	}
	ts := httptest.NewServer(New(testConfig(), sched, testStats(), "1.0.0", false).router)
	defer ts.Close()

	var status map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/status", &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.0.0", status["version"])
	assert.Equal(t, true, status["busy"])
	lastRun, ok := status["last_run"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "r1", lastRun["run_id"])
	assert.Equal(t, "SKIPPED", lastRun["state"])
}

func TestServer_StatusDegraded(t *testing.T) {
	stats := testStats()
	stats.PingFunc = func(context.Context) error { return errors.New("database is locked") }
	ts := httptest.NewServer(New(testConfig(), idleScheduler(), stats, "1.0.0", false).router)
	defer ts.Close()

	var status map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/status", &status))
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "database is locked", status["store_error"])
	assert.NotContains(t, status, "last_run")
}

func TestServer_History(t *testing.T) {
	stats := testStats()
	stats.HistoryFunc = func(context.Context) domain.History {
		var h domain.History
		for i := range 30 {
			h.Posts = append(h.Posts, domain.Post{ID: fmt.Sprintf("p%d", i), Text: "tip"})
		}
		return h
	}
	ts := httptest.NewServer(New(testConfig(), idleScheduler(), stats, "1.0.0", false).router)
	defer ts.Close()

	var res struct {
		Posts []domain.Post `json:"posts"`
		Count int           `json:"count"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/history", &res))
	assert.Equal(t, 20, res.Count)
	assert.Equal(t, "p29", res.Posts[0].ID, "newest first")

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/history?limit=3", &res))
	require.Len(t, res.Posts, 3)
	assert.Equal(t, []string{"p29", "p28", "p27"}, []string{res.Posts[0].ID, res.Posts[1].ID, res.Posts[2].ID})

	var errResp map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/v1/history?limit=abc", &errResp))
	assert.Equal(t, "invalid limit", errResp["error"])
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/v1/history?limit=0", nil))
}

func TestServer_Analytics(t *testing.T) {
	var a domain.Analytics
	a.Record(domain.Post{Topic: "Python", ContentType: domain.ContentTips, CreatedAt: time.Now()}, 0.1)
	a.Record(domain.Post{Topic: "Git", ContentType: domain.ContentInteractive, Subtype: "poll", CreatedAt: time.Now()}, 0.2)
	stats := testStats()
	stats.AnalyticsFunc = func(context.Context) domain.Analytics { return a }
	ts := httptest.NewServer(New(testConfig(), idleScheduler(), stats, "1.0.0", false).router)
	defer ts.Close()

	var res struct {
		TotalPosts   int                           `json:"total_posts"`
		Topics       map[string]domain.RunningStat `json:"topics"`
		ContentTypes map[string]domain.RunningStat `json:"content_types"`
		Today        domain.DailyCounter           `json:"today"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/analytics", &res))
	assert.Equal(t, 2, res.TotalPosts)
	assert.Equal(t, 1, res.Topics["Python"].Count)
	assert.InDelta(t, 0.2, res.ContentTypes["interactive"].Average, 1e-9)
	assert.Equal(t, 2, res.Today.PostCount)
	assert.Equal(t, 1, res.Today.PerSubtype["poll"])
}

func TestServer_AnalyticsTodayInConfiguredZone(t *testing.T) {
	east, west := time.FixedZone("east", 14*3600), time.FixedZone("west", -12*3600)
	var a domain.Analytics
	a.Record(domain.Post{Topic: "Go", ContentType: domain.ContentTips, CreatedAt: time.Now().In(east)}, 0.1)
	stats := testStats()
	stats.AnalyticsFunc = func(context.Context) domain.Analytics { return a }

	tests := []struct {
		name string
		loc  *time.Location
		want int
	}{
		{name: "same zone", loc: east, want: 1},
		{name: "zone a day behind", loc: west, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(New(reportConfig(1, tt.loc), idleScheduler(), stats, "1.0.0", false).router)
			defer ts.Close()

			var res struct {
				Today domain.DailyCounter `json:"today"`
			}
			require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/analytics", &res))
			assert.Equal(t, tt.want, res.Today.PostCount)
		})
	}
}

func TestServer_Experiments(t *testing.T) {
	var st domain.ExperimentState
	now := time.Now()
	st.Record(domain.ExperimentContentLength, "B", 0.10, now)
	st.Record(domain.ExperimentContentLength, "A", 0.30, now)
	st.Record(domain.ExperimentContentLength, "B", 0.20, now)
	st.Record(domain.ExperimentPostingTime, "C", 0.05, now)
	stats := testStats()
	stats.ExperimentsFunc = func(context.Context) domain.ExperimentState { return st }
	ts := httptest.NewServer(New(testConfig(), idleScheduler(), stats, "1.0.0", false).router)
	defer ts.Close()

	var res struct {
		Experiments []experimentStats `json:"experiments"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/experiments", &res))
	require.Len(t, res.Experiments, 2)

	cl := res.Experiments[0]
	assert.Equal(t, domain.ExperimentContentLength, cl.Name)
	assert.Equal(t, 3, cl.TotalSamples)
	assert.Equal(t, "A", cl.Leader)
	require.Len(t, cl.Variants, 2)
	assert.Equal(t, "B", cl.Variants[0].ID, "first seen order")
	assert.Equal(t, 2, cl.Variants[0].Count)
	assert.InDelta(t, 0.15, cl.Variants[0].Average, 1e-9)

	assert.Equal(t, domain.ExperimentPostingTime, res.Experiments[1].Name)
	assert.Equal(t, "C", res.Experiments[1].Leader)
}

func TestServer_ExperimentsLeaderNeedsMinSamples(t *testing.T) {
	var st domain.ExperimentState
	now := time.Now()
	st.Record(domain.ExperimentContentLength, "B", 0.10, now)
	st.Record(domain.ExperimentContentLength, "A", 0.30, now)
	st.Record(domain.ExperimentContentLength, "B", 0.20, now)
	st.Record(domain.ExperimentPostingTime, "C", 0.05, now)
	stats := testStats()
	stats.ExperimentsFunc = func(context.Context) domain.ExperimentState { return st }
	ts := httptest.NewServer(New(reportConfig(2, time.UTC), idleScheduler(), stats, "1.0.0", false).router)
	defer ts.Close()

	var res struct {
		Experiments []experimentStats `json:"experiments"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/experiments", &res))
	require.Len(t, res.Experiments, 2)
	assert.Equal(t, "B", res.Experiments[0].Leader, "A has a better average from a single sample")
	assert.Empty(t, res.Experiments[1].Leader, "no variant has enough samples")
	assert.Len(t, res.Experiments[1].Variants, 1)
}

func TestServer_Run(t *testing.T) {
	tests := []struct {
		name     string
		out      domain.Outcome
		err      error
		wantCode int
		wantBody string
	}{
		{name: "published", out: domain.Outcome{RunID: "r1", State: domain.StatePublished,
			Post: &domain.Post{ID: "p1", Text: "tip"}}, wantCode: http.StatusOK, wantBody: `"state":"PUBLISHED"`},
		{name: "skipped", out: domain.Outcome{RunID: "r2", State: domain.StateSkipped, Reason: "duplicate content"},
			wantCode: http.StatusOK, wantBody: `"reason":"duplicate content"`},
		{name: "failed", out: domain.Outcome{RunID: "r3", State: domain.StateFailed, Reason: "publish: boom"},
			err: errors.New("publish: boom"), wantCode: http.StatusInternalServerError, wantBody: `"state":"FAILED"`},
		{name: "busy", err: scheduler.ErrBusy, wantCode: http.StatusConflict, wantBody: `"error":"posting run already in progress"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := idleScheduler()
			sched.RunNowFunc = func(context.Context) (domain.Outcome, error) { return tt.out, tt.err }
			ts := httptest.NewServer(New(testConfig(), sched, testStats(), "1.0.0", false).router)
			defer ts.Close()

			resp, err := http.Post(ts.URL+"/api/v1/run", "application/json", http.NoBody) //nolint:gosec // test url
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantBody)
			assert.Len(t, sched.RunNowCalls(), 1)
		})
	}
}

func TestServer_RunRequiresPost(t *testing.T) {
	sched := idleScheduler()
	ts := httptest.NewServer(New(testConfig(), sched, testStats(), "1.0.0", false).router)
	defer ts.Close()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req, err := http.NewRequest(method, ts.URL+"/api/v1/run", http.NoBody)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, "POST", resp.Header.Get("Allow"), method)
		assert.Contains(t, string(body), "method "+method+" not allowed")
	}
	assert.Empty(t, sched.RunNowCalls())

	resp, err := http.Get(ts.URL + "/api/v1/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PingAndMetrics(t *testing.T) {
	ts := httptest.NewServer(New(testConfig(), idleScheduler(), testStats(), "1.0.0", true).router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "devtips", resp.Header.Get("App-Name"))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServer_RunAndShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 5 * time.Second
		},
		GetReportConfigFunc: func() (int, *time.Location) { return 10, time.UTC },
	}
	srv := New(cfg, idleScheduler(), testStats(), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:gosec // test url
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRepositoryAdapter(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{Type: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	post := domain.Post{ID: "p1", Text: "Use git bisect", Topic: "Git", ContentType: domain.ContentTips, CreatedAt: time.Now()}
	require.NoError(t, repos.History.Append(ctx, post))
	require.NoError(t, repos.Analytics.RecordPost(ctx, post, 0.07))
	require.NoError(t, repos.Experiments.RecordSample(ctx, domain.ExperimentHashtagCount, "A", 0.07, time.Now()))

	a := NewRepositoryAdapter(repos)
	assert.Len(t, a.History(ctx).Posts, 1)
	assert.Equal(t, 1, a.Analytics(ctx).TotalPosts)
	assert.Contains(t, a.Experiments(ctx).Experiments, domain.ExperimentHashtagCount)
	assert.NoError(t, a.Ping(ctx))
	assert.True(t, strings.HasPrefix(a.History(ctx).Posts[0].Text, "Use git"))
}
