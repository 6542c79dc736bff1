package server

import (
	"net/http"
)

// noStore keeps browsers from caching chart fragments; every selection must
// reach the backend again.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
