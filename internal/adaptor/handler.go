package adaptor

import (
	"movie-favorites/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Favorite *FavoriteHandler
	Movie    *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
		Movie:    NewMovieHandler(service.Movie, log),
	}
}
