package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegram_WhenSendSucceeds_ThenPostsChatIDAndText(t *testing.T) {
	// Arrange
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	notifier := NewTelegram("bot-token", "chat-123")
	notifier.baseURL = server.URL

	// Act
	err := notifier.Send(context.Background(), "PPE Missing: helmet, gloves")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "chat-123", gotBody["chat_id"])
	assert.Equal(t, "PPE Missing: helmet, gloves", gotBody["text"])
}

func TestTelegram_WhenAPIReturnsError_ThenSendFails(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	notifier := NewTelegram("bad-token", "chat-123")
	notifier.baseURL = server.URL

	// Act
	err := notifier.Send(context.Background(), "hello")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTelegram_WhenServerUnreachable_ThenSendFails(t *testing.T) {
	// Arrange
	notifier := NewTelegram("bot-token", "chat-123")
	notifier.baseURL = "http://127.0.0.1:1"

	// Act
	err := notifier.Send(context.Background(), "hello")

	// Assert
	assert.Error(t, err)
}
