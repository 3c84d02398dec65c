package http

import (
	"net/http"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/identity/service"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
)

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Register an account
//	@Description	Creates a student account. Username and email must be unused.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	sdk.UserResponse
//	@Failure		400		{object}	sdk.ErrorResponse	"Malformed JSON body"
//	@Failure		409		{object}	sdk.ErrorResponse	"Username or email already taken"
//	@Failure		422		{object}	sdk.ErrorResponse	"Field validation failed"
//	@Failure		429		{object}	sdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse(user))
}

func userResponse(u domain.User) sdk.UserResponse {
	return sdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
