// Package auth turns a bearer token into the calling principal.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "credipet/pkg/domain"
	"credipet/pkg/platform/httputil"
	"credipet/pkg/requestcontext"
)

// CallerVerifier resolves a bearer token to the principal it was issued to.
type CallerVerifier interface {
	VerifyCaller(token string) (Identity, error)
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	Caller  id.Principal
	TokenID string
}

type rejection struct {
	reason      string
	description string
}

var (
	noCredentials  = rejection{"missing_token", "Missing or invalid Authorization header"}
	badCredentials = rejection{"invalid_token", "Invalid or expired token"}
)

// bearerToken returns the credentials of a Bearer Authorization header.
// The scheme name is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(w http.ResponseWriter, rj rejection) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+rj.reason+`"`)
	httputil.WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": rj.description,
	})
}

// RequireAuth rejects requests without a verifiable bearer token and puts
// the verified caller in the request context.
func RequireAuth(verifier CallerVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(ctx, "caller rejected",
					"reason", noCredentials.reason,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				reject(w, noCredentials)
				return
			}

			identity, err := verifier.VerifyCaller(token)
			if err != nil {
				logger.WarnContext(ctx, "caller rejected",
					"reason", badCredentials.reason,
					"error", err,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				reject(w, badCredentials)
				return
			}

			logger.DebugContext(ctx, "caller verified",
				"caller", identity.Caller.Hex(),
				"token_id", identity.TokenID,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(ctx, identity.Caller)))
		})
	}
}
