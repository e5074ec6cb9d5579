package wire

import (
	"movie-favorites/internal/adaptor"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireFavorite mounts the favorites routes on r, which must already carry
// the AuthSession middleware.
func wireFavorite(
	r chi.Router,
	favoriteHandler *adaptor.FavoriteHandler,
	log *zap.Logger,
) {
	// GET /api/favorites - favorites of the authenticated user
	r.Get("/favorites", utils.Handle(log, favoriteHandler.List))

	// POST /api/favorites - owner is always the authenticated user
	r.Post("/favorites", utils.Handle(log, favoriteHandler.Create))

	// DELETE /api/favorites/{id}
	r.Delete("/favorites/{id}", utils.Handle(log, favoriteHandler.Delete))
}
