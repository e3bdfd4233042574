package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagerNotify(t *testing.T) {
	var got Message
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m := NewMessager(server.URL, "one.example", true)

	require.NoError(t, m.Notify(context.Background(), "7 accounts appear to be suspended"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "[one.example] 7 accounts appear to be suspended", got.Content)

	require.NoError(t, m.NotifyError(context.Background(), errors.New("boom")))
	assert.Equal(t, "[one.example] error: boom", got.Content)
}

func TestMessagerDisabled(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	m := NewMessager(server.URL, "one.example", false)

	require.NoError(t, m.Notify(context.Background(), "quiet"))
	require.NoError(t, m.NotifyError(context.Background(), errors.New("quiet")))
	assert.Equal(t, 0, calls)
}

func TestMessagerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	m := NewMessager(server.URL, "one.example", true)
	assert.Error(t, m.Notify(context.Background(), "nope"))
}
