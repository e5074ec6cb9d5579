package usecase

import (
	"movie-favorites/internal/data/repository"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Favorite FavoriteService
	Movie    MovieService
}

func NewService(repo *repository.Repository, catalog MovieSearcher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Favorite: NewFavoriteService(repo.Favorite, log),
		Movie:    NewMovieService(catalog, log),
	}
}
