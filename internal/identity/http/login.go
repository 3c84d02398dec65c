package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/campus/internal/identity/service"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
)

type LoginHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges username and password for a signed bearer token. Every credential failure gets the same 401.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	sdk.LoginResponse	"token, token_type, expires_in, expires_at"
//	@Failure		400		{object}	sdk.ErrorResponse	"Malformed JSON body"
//	@Failure		401		{object}	sdk.ErrorResponse	"Authentication failed"
//	@Failure		429		{object}	sdk.ErrorResponse	"Rate limit exceeded"
//	@Header			200		{string}	Cache-Control		"no-store"
//	@Header			200		{string}	Pragma				"no-cache"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	tok, err := h.TokenService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sdk.LoginResponse{
		Token:     tok.Raw,
		TokenType: "Bearer",
		ExpiresIn: int(time.Until(tok.ExpiresAt).Round(time.Second).Seconds()),
		ExpiresAt: tok.ExpiresAt,
	})
}
