package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credipet/pkg/requestcontext"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, inner http.HandlerFunc) {
	t.Helper()
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/badges/mint", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWithClock(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	clock := func() time.Time { return time.Date(2025, 6, 1, 14, 0, 0, 123456789, berlin) }

	var got time.Time
	serve(t, WithClock(clock), func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.Now(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 123456000, time.UTC), got)
}

func TestMiddleware_OneStampPerRequest(t *testing.T) {
	var stamps []time.Time
	before := time.Now().Truncate(Resolution)
	serve(t, Middleware, func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, requestcontext.Now(r.Context()))
		time.Sleep(5 * time.Millisecond)
		stamps = append(stamps, requestcontext.Now(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	require.Len(t, stamps, 2)
	assert.Equal(t, stamps[0], stamps[1])
	assert.False(t, stamps[0].Before(before))
	assert.Zero(t, stamps[0].Nanosecond()%int(Resolution))
}
