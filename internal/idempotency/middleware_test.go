package idempotency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string]Response
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]Response)}
}

func (s *memStore) Load(_ context.Context, key string) (Response, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.entries[key]
	return resp, ok, nil
}

func (s *memStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.entries[key] = Response{}
	return true, nil
}

func (s *memStore) Save(_ context.Context, key string, resp Response, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = resp
	return nil
}

func (s *memStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func newRequest(key string, id auth.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	if key != "" {
		req.Header.Set(HeaderKey, key)
	}
	return req.WithContext(auth.WithIdentity(req.Context(), id))
}

func TestMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := newMemStore()
	calls := 0
	handler := Middleware(store, time.Hour, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	user := auth.Identity{UserID: 1, Role: auth.RoleUser}

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newRequest("abc", user))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newRequest("abc", user))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, `{"id":1}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get(HeaderReplayed))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestMiddleware_KeysAreScopedPerUser(t *testing.T) {
	store := newMemStore()
	calls := 0
	handler := Middleware(store, time.Hour, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), newRequest("abc", auth.Identity{UserID: 1, Role: auth.RoleUser}))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("abc", auth.Identity{UserID: 2, Role: auth.RoleUser}))

	assert.Equal(t, 2, calls)
}

func TestMiddleware_ServerErrorReleasesKey(t *testing.T) {
	store := newMemStore()
	status := http.StatusInternalServerError
	calls := 0
	handler := Middleware(store, time.Hour, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
	}))
	user := auth.Identity{UserID: 1, Role: auth.RoleUser}

	handler.ServeHTTP(httptest.NewRecorder(), newRequest("abc", user))
	assert.Empty(t, store.entries)

	status = http.StatusCreated
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest("abc", user))

	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, store.entries, 1)
}

func TestMiddleware_InProgress(t *testing.T) {
	store := newMemStore()
	user := auth.Identity{UserID: 1, Role: auth.RoleUser}
	_, err := store.Reserve(context.Background(), "1:POST /api/orders:abc", time.Minute)
	require.NoError(t, err)

	handler := Middleware(store, time.Hour, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest("abc", user))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestMiddleware_PassThrough(t *testing.T) {
	store := newMemStore()
	calls := 0
	handler := Middleware(store, time.Hour, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), newRequest("", auth.Identity{UserID: 1, Role: auth.RoleUser}))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("", auth.Identity{UserID: 1, Role: auth.RoleUser}))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("abc", auth.Anonymous()))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("abc", auth.Anonymous()))

	assert.Equal(t, 4, calls)
	assert.Empty(t, store.entries)
}
