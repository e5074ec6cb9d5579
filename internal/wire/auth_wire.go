package wire

import (
	"time"

	"movie-favorites/internal/adaptor"
	"movie-favorites/pkg/middleware"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /auth/signup and /auth/signin issue bearer tokens
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.Auth.RateLimit, time.Minute))

		r.Post("/signup", utils.Handle(log, authHandler.SignUp))
		r.Post("/signin", utils.Handle(log, authHandler.SignIn))
	})
}
