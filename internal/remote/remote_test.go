package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojo/antojo/pkg/types"
)

func TestBreakerTransitions(t *testing.T) {
	b := NewBreaker()
	assert.True(t, b.Available())

	b.MarkFailure()
	assert.False(t, b.Available())

	// Only a later success restores availability.
	b.MarkFailure()
	assert.False(t, b.Available())
	b.MarkSuccess()
	assert.True(t, b.Available())
}

func TestClientParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/parse", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sushi barato", req.Text)

		res := types.ParseResult{
			Query: types.NewQuery(req.Text),
			Plan:  []string{"Categorias: [sushi]"},
		}
		res.Query.Filters.CategoryAny = []string{"sushi"}
		require.NoError(t, json.NewEncoder(w).Encode(res))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	out, err := c.Parse(context.Background(), "sushi barato")
	require.NoError(t, err)
	assert.Equal(t, []string{"sushi"}, out.Query.Filters.CategoryAny)
	assert.Equal(t, []string{"Categorias: [sushi]"}, out.Plan)
}

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		var req struct {
			Query types.Query `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pizza", req.Query.Text)

		resp := types.SearchResponse{
			Results: []types.SearchResult{{Score: 0.9, Reasons: []string{"lex:1.00"}}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	out, err := c.Search(context.Background(), types.NewQuery("pizza"))
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 0.9, out.Results[0].Score)
}

func TestClientServerErrorTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Parse(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerError)
	assert.True(t, Trips(err))
}

func TestClientBadRequestDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Parse(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.False(t, Trips(err))
}

func TestClientTimeoutTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.Parse(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, Trips(err))
}
