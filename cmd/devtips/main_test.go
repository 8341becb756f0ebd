package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/config"
	"github.com/umputun/devtips/pkg/domain"
)

// llmServer answers chat completions with a fixed tip
func llmServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"test-model",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Use enumerate() to get index and value in one loop"},"finish_reason":"stop"}]}`)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfigPath(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "testdata", "test_config.yml")
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(testConfigPath(t))
	require.NoError(t, err)
	return cfg
}

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_Once(t *testing.T) {
	storeDir := t.TempDir()
	t.Setenv("DEVTIPS_STORE_DIR", storeDir)
	t.Setenv("DEVTIPS_LLM_URL", llmServer(t).URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: testConfigPath(t), Once: true, DryRun: true})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(storeDir, "history.json"))
	require.NoError(t, err)
	var h domain.History
	require.NoError(t, json.Unmarshal(data, &h))
	require.Len(t, h.Posts, 1)
	assert.Equal(t, domain.ContentTips, h.Posts[0].ContentType)
	assert.NotEmpty(t, h.Posts[0].Text)

	_, err = os.Stat(filepath.Join(storeDir, "analytics.json"))
	require.NoError(t, err, "analytics recorded")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DEVTIPS_STORE_DIR", t.TempDir())
	t.Setenv("DEVTIPS_LLM_URL", llmServer(t).URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, Opts{Config: testConfigPath(t)})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond, "server did not start")

	resp, err := http.Get("http://127.0.0.1:18765/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, false, status["busy"])

	cancel()

	select {
	case err := <-serverErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(true) })
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(false) })
	})

	t.Run("with secrets", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(true, "secret1", "", "secret2") })
	})
}

func TestExperimentDefinitions(t *testing.T) {
	t.Setenv("DEVTIPS_STORE_DIR", t.TempDir())
	t.Setenv("DEVTIPS_LLM_URL", "http://127.0.0.1:1")
	cfg := loadTestConfig(t)

	defs := experimentDefinitions(cfg)
	require.Len(t, defs, 3)
	assert.Equal(t, domain.ExperimentContentLength, defs[0].Name)
	assert.Equal(t, "B", defs[0].Default)
	require.Len(t, defs[0].Variants, 3)
	assert.Equal(t, 180, defs[0].Variants[1].Params.MaxLength)
	assert.Equal(t, domain.ExperimentPostingTime, defs[2].Name)
	assert.Equal(t, []int{12, 18}, defs[2].Variants[1].Params.Hours)
}

func TestTopics(t *testing.T) {
	t.Setenv("DEVTIPS_STORE_DIR", t.TempDir())
	t.Setenv("DEVTIPS_LLM_URL", "http://127.0.0.1:1")
	cfg := loadTestConfig(t)

	res := topics(cfg.Content.Topics)
	require.Len(t, res, len(cfg.Content.Topics))
	assert.Equal(t, cfg.Content.Topics[0].Name, res[0].Name)
	assert.InDelta(t, cfg.Content.Topics[0].Weight, res[0].Weight, 1e-9)
}
