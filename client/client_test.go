package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{items: map[string][]byte{}} }

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

func (m *mapCache) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

type item struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

func TestClientListSendsHeadersAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/memorials", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, "petalert-test", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode([]item{{ID: "1", Name: "Rex"}})
	}))
	defer srv.Close()

	c := New(srv.URL, WithCache(newMapCache(), time.Minute), WithUserAgent("petalert-test"))

	for i := 0; i < 3; i++ {
		var items []item
		require.NoError(t, c.List(context.Background(), "tok", "/memorials", &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Rex", items[0].Name)
	}
	assert.Equal(t, int32(1), hits.Load())

	// other tokens never see a cached list
	var items []item
	require.NoError(t, c.List(context.Background(), "other", "/memorials", &items))
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientMutationsInvalidateList(t *testing.T) {
	var lists atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			lists.Add(1)
			_ = json.NewEncoder(w).Encode([]item{})
		case r.Method == http.MethodPost && r.URL.Path == "/memorials":
			var in item
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			in.ID = "new"
			_ = json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodPut && r.URL.Path == "/memorials/new":
			var in item
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.ID = "new"
			_ = json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodDelete && r.URL.Path == "/memorials/new":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL, WithCache(newMapCache(), time.Minute))
	var list []item

	require.NoError(t, c.List(ctx, "tok", "/memorials", &list))
	require.NoError(t, c.List(ctx, "tok", "/memorials", &list))
	assert.Equal(t, int32(1), lists.Load())

	var created item
	require.NoError(t, c.Create(ctx, "tok", "/memorials", item{Name: "Rex"}, &created))
	assert.Equal(t, "new", created.ID)
	require.NoError(t, c.List(ctx, "tok", "/memorials", &list))
	assert.Equal(t, int32(2), lists.Load())

	var updated item
	require.NoError(t, c.Update(ctx, "tok", "/memorials", "new", item{Name: "Max"}, &updated))
	assert.Equal(t, "Max", updated.Name)
	require.NoError(t, c.List(ctx, "tok", "/memorials", &list))
	assert.Equal(t, int32(3), lists.Load())

	require.NoError(t, c.Delete(ctx, "tok", "/memorials", "new"))
	require.NoError(t, c.List(ctx, "tok", "/memorials", &list))
	assert.Equal(t, int32(4), lists.Load())
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"gone"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Delete(context.Background(), "tok", "/vetappointments", "abc")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "/vetappointments/abc", se.Path)
	assert.Contains(t, se.Body, "gone")
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, WithTimeout(time.Second))
	var list []item
	err := c.List(context.Background(), "", "/memorials", &list)
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestClientFailedListIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode([]item{{ID: "1"}})
	}))
	defer srv.Close()

	c := New(srv.URL, WithCache(newMapCache(), time.Minute))
	var list []item
	require.Error(t, c.List(context.Background(), "tok", "/lostandfound", &list))

	fail.Store(false)
	require.NoError(t, c.List(context.Background(), "tok", "/lostandfound", &list))
	assert.Len(t, list, 1)
}
