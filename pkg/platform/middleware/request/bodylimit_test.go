package request

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	const limit int64 = 48
	evolve := `{"owner":"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed","stage":4}`

	tests := []struct {
		name       string
		body       io.Reader
		length     int64
		wantStatus int
		wantRead   bool
	}{
		{name: "small body reaches the handler", body: strings.NewReader(`{"stage":1}`), length: -1, wantStatus: http.StatusOK, wantRead: true},
		{name: "body at the limit reaches the handler", body: strings.NewReader(strings.Repeat("x", int(limit))), length: limit, wantStatus: http.StatusOK, wantRead: true},
		{name: "declared oversize body is refused up front", body: strings.NewReader(evolve), length: int64(len(evolve)), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "bodiless mint passes", body: nil, length: 0, wantStatus: http.StatusOK, wantRead: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			handler := BodyLimit(limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				_, err := io.ReadAll(r.Body)
				require.NoError(t, err)
			}))

			req := httptest.NewRequest(http.MethodPost, "/badges/evolve", tc.body)
			if tc.length >= 0 {
				req.ContentLength = tc.length
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantRead, reached)
			if tc.wantStatus == http.StatusRequestEntityTooLarge {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "payload_too_large", resp["error"])
			}
		})
	}

	t.Run("understated length is cut off on read", func(t *testing.T) {
		var readErr error
		handler := BodyLimit(limit)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))

		req := httptest.NewRequest(http.MethodPost, "/badges/evolve", strings.NewReader(strings.Repeat("x", 2*int(limit))))
		req.ContentLength = -1
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var tooLarge *http.MaxBytesError
		assert.ErrorAs(t, readErr, &tooLarge)
	})
}
