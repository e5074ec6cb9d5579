package adaptor

import (
	"net/http"

	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) error {
	var req request.CredentialsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		return err
	}

	resp, err := h.service.SignUp(r.Context(), &req, clientInfo(r))
	if err != nil {
		return err
	}

	utils.ResponseSuccess(w, resp)
	return nil
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) error {
	var req request.CredentialsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		return err
	}

	resp, err := h.service.SignIn(r.Context(), &req, clientInfo(r))
	if err != nil {
		return err
	}

	utils.ResponseSuccess(w, resp)
	return nil
}

// SignOut handles POST /api/signout. AuthSession has already put the token
// in the context.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) error {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		return utils.ErrUnauthorized("authentication required")
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		return err
	}

	utils.ResponseSuccess(w, map[string]string{"message": "signed out"})
	return nil
}

// RemoteAddr has already been rewritten by chi's RealIP middleware.
func clientInfo(r *http.Request) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	}
}
