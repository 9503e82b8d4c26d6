package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// TokenParser turns a bearer token into an identity
type TokenParser interface {
	Parse(token string) (Identity, error)
}

// Authenticate resolves the caller from the Authorization header. Requests
// without the header continue as anonymous. A bad token is rejected with 401.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), Anonymous())))
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				unauthorized(w, "malformed authorization header")
				return
			}

			id, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"kind":  "authentication_required",
	})
}
