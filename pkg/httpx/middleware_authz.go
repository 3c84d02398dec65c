package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/campus/pkg/authz"
)

// DenyHook observes authorization denials.
type DenyHook func(r *http.Request, action authz.Action, err error)

// RequireAction evaluates the policy for actions that don't depend on a
// target resource. Ownership-based actions are decided inside the service
// transaction instead, so this panics for them at wiring time.
func RequireAction(action authz.Action, hooks ...DenyHook) Middleware {
	if action.NeedsTarget() {
		panic("httpx: RequireAction used with target-dependent action " + action.String())
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if err := authz.Authorize(id, action, nil); err != nil {
				for _, hook := range hooks {
					hook(r, action, err)
				}
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
