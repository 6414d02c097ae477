package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

// Verifier resolves a raw bearer token to its principal.
type Verifier func(raw string) (Principal, error)

// AuthnMiddleware rejects requests without a valid bearer token with 401 and
// stores the resolved Principal in the request context.
func AuthnMiddleware(verify Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			p, err := verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("bearer verify failed", "err", err)
				return
			}
			p.Token = raw

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
		})
	}
}

// RFC 6750-compliant error response for bearer auth, with the JSON error
// envelope the API uses.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
