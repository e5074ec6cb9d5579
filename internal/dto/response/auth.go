package response

import (
	"time"

	"movie-favorites/internal/data/entity"
)

type AuthResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}
