package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminacoach/lumina/internal/kvstore"
)

func TestRequestAttachesTokenAndDecodes(t *testing.T) {
	var gotAuth, gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace")
		_ = json.NewEncoder(w).Encode([]ClientRecord{{ID: "c1", Name: "Ada"}})
	}))
	defer srv.Close()

	store := kvstore.NewMemory()
	require.NoError(t, store.Set(kvstore.TokenKey, "tok"))
	c := New(srv.URL, store)

	out, err := Request[[]ClientRecord](context.Background(), c, http.MethodGet, "/api/clients", nil,
		http.Header{"X-Trace": {"abc"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ada", out[0].Name)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "abc", gotTrace)
}

func TestRequestWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL, kvstore.NewMemory()).DeleteNote(context.Background(), "s1", "n1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestNonOKBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_code":"session_not_found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Session(context.Background(), "missing")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "Not Found", se.StatusText)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Sessions(context.Background(), SessionQuery{Search: "chen", Statuses: []string{"upcoming"}, Locations: []string{"zoom", "office"}})
	require.NoError(t, err)
	assert.Equal(t, "location=zoom&location=office&search=chen&status=upcoming", gotQuery)
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("LUMINA_API_BASE_URL", "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv("LUMINA_API_BASE_URL", "https://api.example.com/")
	assert.Equal(t, "https://api.example.com", New(BaseURLFromEnv(), nil).BaseURL())
}
