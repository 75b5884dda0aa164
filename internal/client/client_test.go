package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	introspection "github.com/hanpama/clientschema/internal/introspection"
	schema "github.com/hanpama/clientschema/internal/schema"
)

const serverSDL = `
type Query {
  post(id: ID!): Post
}

type Post {
  id: ID!
  title: String!
}
`

func introspectionHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	src, err := schema.BuildFromSDL(serverSDL)
	require.NoError(t, err)
	doc := introspection.FromSchema(src)

	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, introspection.Query, req.Query)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": doc}))
	}
}

func TestIntrospect(t *testing.T) {
	srv := httptest.NewServer(introspectionHandler(t))
	defer srv.Close()

	doc, err := New(srv.URL).Introspect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Schema)
	require.Equal(t, "Query", doc.Schema.QueryType.Name)
}

func TestFetchSchemaRoundTrip(t *testing.T) {
	srv := httptest.NewServer(introspectionHandler(t))
	defer srv.Close()

	fetched, err := New(srv.URL).FetchSchema(context.Background())
	require.NoError(t, err)

	src, err := schema.BuildFromSDL(serverSDL)
	require.NoError(t, err)
	want := introspection.FromSchema(src)
	got := introspection.FromSchema(fetched)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fetched schema mismatch (-want +got):\n%s", diff)
	}
}

func TestIntrospectForwardsHeaders(t *testing.T) {
	var auth string
	inner := introspectionHandler(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		inner(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHeader("Authorization", "Bearer token-1"))
	_, err := c.Introspect(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer token-1", auth)
}

func TestIntrospectGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [{"message": "introspection is disabled"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Introspect(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "introspection is disabled")
}

func TestIntrospectHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Introspect(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
