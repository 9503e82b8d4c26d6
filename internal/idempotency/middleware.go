package idempotency

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"

	lockTTL = 30 * time.Second
)

type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware replays the stored response for a repeated Idempotency-Key.
// Keys are scoped to the authenticated user; anonymous requests and requests
// without the header pass through. Server errors are not stored so the
// client can retry them.
func Middleware(store Store, ttl time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			id := auth.FromContext(r.Context())
			if key == "" || !id.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			scoped := fmt.Sprintf("%d:%s %s:%s", id.UserID, r.Method, r.URL.Path, key)

			stored, ok, err := store.Load(ctx, scoped)
			if err != nil {
				log.Warn("idempotency store unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if ok {
				replay(w, stored)
				return
			}

			acquired, err := store.Reserve(ctx, scoped, lockTTL)
			if err != nil {
				log.Warn("idempotency store unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				inProgress(w)
				return
			}

			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status == 0 || rec.status >= http.StatusInternalServerError {
				if err := store.Release(ctx, scoped); err != nil {
					log.Warn("failed to release idempotency key", "error", err)
				}
				return
			}

			resp := Response{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if err := store.Save(ctx, scoped, resp, ttl); err != nil {
				log.Warn("failed to save idempotent response", "error", err)
			}
		})
	}
}

func replay(w http.ResponseWriter, stored Response) {
	if stored.InProgress() {
		inProgress(w)
		return
	}
	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

func inProgress(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	w.Write([]byte(`{"error":"a request with this idempotency key is still in progress","kind":"idempotency_in_progress"}`))
}
