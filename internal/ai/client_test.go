package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-ledger/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskForwardsMessageAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"you have 3 widgets","data":{"count":3}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	answer, err := client.Ask(context.Background(), "how many widgets?", "token-123")
	require.NoError(t, err)
	assert.Equal(t, "you have 3 widgets", answer.Answer)
	assert.JSONEq(t, `{"count":3}`, string(answer.Metadata))
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second)
	_, err := client.Ask(context.Background(), "", "token")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestAskMapsConnectionRefusedToUnavailable(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.Ask(context.Background(), "hello", "token")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestAskMapsTimeoutToUnavailable(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	client := NewClient(server.URL, 50*time.Millisecond)
	_, err := client.Ask(context.Background(), "hello", "token")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestAskSurfacesUpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Ask(context.Background(), "hello", "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrUnavailable)
}
