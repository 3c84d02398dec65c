package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

var ErrMissingBearer = errors.New("httpx: missing bearer token")

// AuthnHook observes authentication failures, e.g. to count them.
type AuthnHook func(r *http.Request, err error)

// AuthnMiddleware verifies the bearer token and stores the caller identity
// in the request context. Every failure gets the same 401, the cause only
// goes to the log.
func AuthnMiddleware(v jwtx.Verifier, hooks ...AuthnHook) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			claims, err := Authenticate(v, r)
			if err != nil {
				log.Warn("authentication failed", "err", err)
				for _, hook := range hooks {
					hook(r, err)
				}
				WriteAuthError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "sub", claims.Subject, "jti", claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate extracts and verifies the bearer token of r.
func Authenticate(v jwtx.Verifier, r *http.Request) (jwtx.Claims, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return jwtx.Claims{}, err
	}
	return v.Verify(raw)
}

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}
