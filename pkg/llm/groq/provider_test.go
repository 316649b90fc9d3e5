package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talk-rag-be/pkg/llm"

	"github.com/stretchr/testify/require"
)

func TestChatSendsOpenAICompatiblePayload(t *testing.T) {
	var captured groqChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "olá!"}},
			},
		})
	}))
	defer srv.Close()

	p := NewGroqProvider("test-key", "test-model")
	p.BaseURL = srv.URL

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "Oi"},
	})
	require.NoError(t, err)
	require.Equal(t, "olá!", out)

	require.Equal(t, "test-model", captured.Model)
	require.False(t, captured.Stream)
	require.Equal(t, "hidden", captured.ReasoningFormat)
	require.InDelta(t, 0.6, captured.Temperature, 0.001)
	require.Equal(t, 1024, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	require.Equal(t, "user", captured.Messages[0].Role)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req groqChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		require.Equal(t, "assistant", req.Messages[0].Role)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	p := NewGroqProvider("k", "m")
	p.BaseURL = srv.URL

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "prev"}})
	require.NoError(t, err)
}

func TestChatSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("k", "m")
	p.BaseURL = srv.URL

	_, err := p.Generate(context.Background(), "Oi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestGenerateWrapsSingleUserMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req groqChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		require.Len(t, req.Messages, 1)
		require.Equal(t, "user", req.Messages[0].Role)
		require.Equal(t, "prompt final", req.Messages[0].Content)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "resposta"}},
			},
		})
	}))
	defer srv.Close()

	p := NewGroqProvider("k", "m")
	p.BaseURL = srv.URL

	out, err := p.Generate(context.Background(), "prompt final")
	require.NoError(t, err)
	require.Equal(t, "resposta", out)
}
