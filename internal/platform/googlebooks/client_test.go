package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("shelfapi-test", 100, 1)
	c.baseURL = serverURL
	return c
}

func TestClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/v1/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9780261103573", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "The Hobbit",
					"authors": ["J.R.R. Tolkien"],
					"categories": ["Fantasy"],
					"imageLinks": {"thumbnail": "http://covers.example/hobbit.jpg"}
				}
			}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	vol, err := c.Lookup(context.Background(), "9780261103573")
	require.NoError(t, err)

	assert.Equal(t, "The Hobbit", vol.Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, vol.Authors)
	assert.Equal(t, []string{"Fantasy"}, vol.Categories)
	assert.Equal(t, "http://covers.example/hobbit.jpg", vol.Thumbnail)
}

func TestClient_Lookup_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Lookup(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestClient_Lookup_ServerErrorIsNotNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.maxRetries = 0
	_, err := c.Lookup(context.Background(), "9780261103573")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestClient_Lookup_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"volumeInfo":{"title":"Dune"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	vol, err := c.Lookup(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "Dune", vol.Title)
	assert.Equal(t, 2, calls)
}
