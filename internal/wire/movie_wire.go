package wire

import (
	"movie-favorites/internal/adaptor"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	log *zap.Logger,
) {
	// GET /movies?search=<term> - public, proxied to the movie catalog
	r.Get("/movies", utils.Handle(log, movieHandler.Search))
}
