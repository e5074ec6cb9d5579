package usecase

import (
	"context"

	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

// MovieSearcher is the catalog client used by MovieService.
type MovieSearcher interface {
	SearchMovies(ctx context.Context, query string) ([]byte, error)
}

type MovieService interface {
	Search(ctx context.Context, query string) ([]byte, error)
}

type movieService struct {
	catalog MovieSearcher
	log     *zap.Logger
}

func NewMovieService(catalog MovieSearcher, log *zap.Logger) MovieService {
	return &movieService{
		catalog: catalog,
		log:     log.With(zap.String("service", "movie")),
	}
}

// Search returns the catalog response body as-is.
func (s *movieService) Search(ctx context.Context, query string) ([]byte, error) {
	body, err := s.catalog.SearchMovies(ctx, query)
	if err != nil {
		s.log.Error("Movie search failed",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, utils.ErrUpstream(err)
	}
	return body, nil
}
