// Package requesttime pins a single "now" for the whole request, so a mint
// and the events it emits carry the same timestamp.
package requesttime

import (
	"net/http"
	"time"

	"credipet/pkg/requestcontext"
)

// Resolution is the precision of a request stamp. It matches timestamptz,
// so a badge read back from Postgres equals the one the mint returned.
const Resolution = time.Microsecond

// Middleware stamps each request with the wall clock.
// Read the stamp back with requestcontext.Now.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock stamps each request from clock, in UTC at Resolution.
func WithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stamp := clock().UTC().Truncate(Resolution)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), stamp)))
		})
	}
}
