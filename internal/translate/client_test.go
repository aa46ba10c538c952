package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-match/internal/match/model"
)

func TestClientTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "fish oil", r.URL.Query().Get("q"))
		assert.Equal(t, "en|ar", r.URL.Query().Get("langpair"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"زيت سمك"},"responseStatus":200}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got, err := c.Translate(context.Background(), "fish oil")
	require.NoError(t, err)
	assert.Equal(t, "زيت سمك", got)
}

func TestClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Translate(context.Background(), "fish oil")
	assert.ErrorIs(t, err, model.ErrTranslateUnavailable)
}

func TestClientServiceLevelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":""},"responseStatus":403}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Translate(context.Background(), "fish oil")
	assert.ErrorIs(t, err, model.ErrTranslateUnavailable)
}

func TestClientUnreachable(t *testing.T) {
	// a closed server is indistinguishable from a network outage
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, 200*time.Millisecond)
	_, err := c.Translate(context.Background(), "fish oil")
	assert.ErrorIs(t, err, model.ErrTranslateUnavailable)
}

func TestClientGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Translate(context.Background(), "fish oil")
	assert.ErrorIs(t, err, model.ErrTranslateUnavailable)
}
