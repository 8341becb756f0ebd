package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/config"
)

func completionServer(t *testing.T, handler func(req openai.ChatCompletionRequest) openai.ChatCompletionResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(handler(req)))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleter_Complete(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := completionServer(t, func(req openai.ChatCompletionRequest) openai.ChatCompletionResponse {
		got = req
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Content: "  Use `git switch -` to jump back  \n"},
			FinishReason: openai.FinishReasonStop,
		}}}
	})

	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4",
		Temperature: 0.8, MaxTokens: 120, Timeout: 5 * time.Second})
	resp, err := c.Complete(context.Background(), Request{Prompt: "git tip", MaxOutputLength: 150})
	require.NoError(t, err)
	assert.Equal(t, "Use `git switch -` to jump back", resp.Text)

	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, 120, got.MaxTokens)
	assert.InDelta(t, 0.8, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "at most 150 characters")
	assert.Equal(t, "git tip", got.Messages[1].Content)
}

func TestCompleter_RequestTemperature(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := completionServer(t, func(req openai.ChatCompletionRequest) openai.ChatCompletionResponse {
		got = req
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}}}
	})
	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", Temperature: 0.8,
		SystemPrompt: "custom system"})
	_, err := c.Complete(context.Background(), Request{Prompt: "p", Temperature: 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got.Temperature, 1e-6)
	assert.Equal(t, "custom system", got.Messages[0].Content)
}

func TestCompleter_ContentFiltered(t *testing.T) {
	server := completionServer(t, func(openai.ChatCompletionRequest) openai.ChatCompletionResponse {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{FinishReason: openai.FinishReasonContentFilter}}}
	})
	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.ErrorIs(t, err, ErrContentFiltered)
}

func TestCompleter_NoChoices(t *testing.T) {
	server := completionServer(t, func(openai.ChatCompletionRequest) openai.ChatCompletionResponse {
		return openai.ChatCompletionResponse{}
	})
	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from llm")
}

func TestCompleter_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", Timeout: 50 * time.Millisecond})
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestCompleter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	c := NewCompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
	assert.NotErrorIs(t, err, ErrTimeout)
}
