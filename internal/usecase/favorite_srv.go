package usecase

import (
	"context"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteService takes the owner as an explicit argument on every call.
// Callers pass the authenticated identity, never a value from the request.
type FavoriteService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Favorite, error)
	Create(ctx context.Context, ownerID uuid.UUID, req *request.FavoriteRequest) ([]*entity.Favorite, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) ([]*entity.Favorite, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	log       *zap.Logger
}

func NewFavoriteService(favorites repository.FavoriteRepository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		favorites: favorites,
		log:       log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Favorite, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized("authentication required")
	}

	favorites, err := s.favorites.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrStore(err)
	}
	return favorites, nil
}

func (s *favoriteService) Create(ctx context.Context, ownerID uuid.UUID, req *request.FavoriteRequest) ([]*entity.Favorite, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized("authentication required")
	}
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create favorite validation failed", zap.Error(err))
		return nil, err
	}

	favorite := &entity.Favorite{
		Title:     req.Title,
		Genre:     req.Genre,
		Director:  req.Director,
		Year:      req.Year.Int32(),
		Poster:    req.Poster,
		Runtime:   req.Runtime.Int32(),
		MovieDBID: int64(req.MovieDBID),
		OwnerID:   ownerID,
	}

	created, err := s.favorites.Create(ctx, favorite)
	if err != nil {
		return nil, utils.ErrStore(err)
	}

	s.log.Info("Favorite created",
		zap.String("owner_id", ownerID.String()),
		zap.Int64("movie_db_id", int64(req.MovieDBID)),
	)
	return created, nil
}

// Delete returns the removed rows; an empty result means nothing matched.
func (s *favoriteService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) ([]*entity.Favorite, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized("authentication required")
	}

	deleted, err := s.favorites.DeleteByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, utils.ErrStore(err)
	}
	return deleted, nil
}
