package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
)

// HeaderAPIKey is the fixed request header carrying the shared secret.
const HeaderAPIKey = "X-API-Key"

// APIKey returns middleware that validates the static shared-secret header.
// A missing or mismatched key is rejected with 401 before any handler runs.
func APIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAPIKey)
			if key == "" {
				unauthorized(w, "authorization required")
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				unauthorized(w, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
