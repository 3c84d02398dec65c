package http

import (
	"net/http"

	"github.com/aussiebroadwan/campus/internal/identity/service"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

type MeHandler struct {
	TokenService  *service.TokenService
	OnAuthFailure httpx.AuthnHook // optional
}

// ServeHTTP godoc
//
//	@Summary		Current identity
//	@Description	Returns the identity carried by the presented token. The store is not consulted, so the role is the one at issuance.
//	@Tags			Identity
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	sdk.MeResponse		"user_id, username, role, expires_at"
//	@Failure		401	{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Router			/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := httpx.BearerToken(r)
	if err != nil {
		slogx.FromContext(ctx).Warn("authentication failed", "err", err)
		h.fail(w, r, err)
		return
	}

	id, claims, err := h.TokenService.WhoAmI(ctx, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sdk.MeResponse{
		UserID:    id.Subject,
		Username:  id.Username,
		Role:      id.Role.String(),
		ExpiresAt: claims.Expiry(),
	})
}

func (h *MeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if h.OnAuthFailure != nil {
		h.OnAuthFailure(r, err)
	}
	httpx.WriteAuthError(w)
}
