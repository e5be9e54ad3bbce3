package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, h http.HandlerFunc) *GatewayClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGatewayClient(GatewayConfig{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: 2 * time.Second})
}

func TestGateway_Complete(t *testing.T) {
	var got chatRequest
	c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	})

	out, err := c.Complete(context.Background(), "sys", []Message{{Role: RoleUser, Content: "idea"}})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, DefaultGatewayModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, Message{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "idea"}, got.Messages[1])
}

func TestGateway_StatusError(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusPaymentRequired, http.StatusBadGateway} {
		c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", code)
		})
		_, err := c.Complete(context.Background(), "sys", nil)
		require.Error(t, err)
		assert.Equal(t, code, StatusCode(err))

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "nope", se.Body)
	}
}

func TestGateway_EmptyCompletion(t *testing.T) {
	c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
	})
	_, err := c.Complete(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	c = newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err = c.Complete(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGateway_NotConfigured(t *testing.T) {
	c := NewGatewayClient(GatewayConfig{})
	_, err := c.Complete(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "gateway", c.Provider())
}

func TestGateway_Deadline(t *testing.T) {
	release := make(chan struct{})
	c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Complete(ctx, "sys", nil)
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGemini_NotConfigured(t *testing.T) {
	g := NewGeminiClient("", "")
	_, err := g.Complete(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "gemini", g.Provider())
}
