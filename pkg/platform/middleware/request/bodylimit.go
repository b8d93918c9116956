package request

import (
	"net/http"
	"strconv"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused with 413 before any handler runs. Bodies that arrive
// chunked or understate their length are cut off by http.MaxBytesReader,
// which the JSON decoder reports as 413 as well.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	tooLarge := "request body exceeds " + strconv.FormatInt(maxBytes, 10) + " bytes"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", tooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
