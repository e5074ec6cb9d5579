package adaptor

import (
	"net/http"

	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// Search handles GET /movies?search=<term>. No authentication.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) error {
	body, err := h.service.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		return err
	}

	utils.ResponseRaw(w, http.StatusOK, body)
	return nil
}
