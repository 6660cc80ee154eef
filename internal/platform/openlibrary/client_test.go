package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("shelfapi-test", 100, 0)
	c.baseURL = serverURL
	return c
}

func TestClient_Subjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/isbn/9780261103573.json":
			_, _ = w.Write([]byte(`{"works": [{"key": "/works/OL262758W"}]}`))
		case "/works/OL262758W.json":
			_, _ = w.Write([]byte(`{"subjects": ["Dragons", "Wizards", "Fantasy fiction"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	subjects, err := c.Subjects(context.Background(), "9780261103573")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dragons", "Wizards", "Fantasy fiction"}, subjects)
}

func TestClient_Subjects_NoLinkedWork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	subjects, err := c.Subjects(context.Background(), "9780261103573")
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestClient_Subjects_EditionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Subjects(context.Background(), "0000000000000")
	assert.Error(t, err)
}
