package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + marshalString(content) + `}}]}`
}

func marshalString(s string) string {
	bytes, _ := json.Marshal(s)
	return string(bytes)
}

func TestCreateTextGeneration(t *testing.T) {
	var captured capturedRequest
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("Hi there")))
	})

	client := NewOpenAIClient("test-key", server.URL, "test-model")
	reply, err := client.CreateTextGeneration(context.Background(), &CreateTextGenerationRequest{
		Messages: []*Message{
			NewMessage(RoleUser, "Hello"),
			NewMessage(RoleAssistant, "Hi"),
			NewMessage(RoleUser, "How are you?"),
		},
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)

	// The full ordered history goes out, with roles mapped to the provider's
	// labels and the fixed generation limits applied.
	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "assistant", captured.Messages[1].Role)
	assert.Equal(t, "user", captured.Messages[2].Role)
	assert.Equal(t, "How are you?", captured.Messages[2].Content)
	assert.Equal(t, float32(0.5), captured.Temperature)
	assert.Equal(t, maxOutputTokens, captured.MaxTokens)
}

func TestCreateTextGenerationServiceError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	})

	client := NewOpenAIClient("test-key", server.URL, "test-model")
	_, err := client.CreateTextGeneration(context.Background(), &CreateTextGenerationRequest{
		Messages: []*Message{NewMessage(RoleUser, "Hello")},
	})
	require.Error(t, err)
}

func TestCreateTextGenerationMalformedReply(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	})

	client := NewOpenAIClient("test-key", server.URL, "test-model")
	_, err := client.CreateTextGeneration(context.Background(), &CreateTextGenerationRequest{
		Messages: []*Message{NewMessage(RoleUser, "Hello")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choice")
}

func TestCreateTextGenerationNetworkFailure(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	client := NewOpenAIClient("test-key", server.URL, "test-model")
	_, err := client.CreateTextGeneration(context.Background(), &CreateTextGenerationRequest{
		Messages: []*Message{NewMessage(RoleUser, "Hello")},
	})
	require.Error(t, err)
}

func TestNewMessage(t *testing.T) {
	message := NewMessage(RoleUser, "Hello")
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, RoleUser, message.Role)
	assert.Equal(t, "Hello", message.Content)
	assert.NotEmpty(t, message.Timestamp)

	other := NewMessage(RoleUser, "Hello")
	assert.NotEqual(t, message.ID, other.ID)
}
