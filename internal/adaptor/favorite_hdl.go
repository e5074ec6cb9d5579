package adaptor

import (
	"net/http"
	"strconv"

	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// List handles GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) error {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return utils.ErrUnauthorized("authentication required")
	}

	favorites, err := h.service.List(r.Context(), userID)
	if err != nil {
		return err
	}

	utils.ResponseSuccess(w, favorites)
	return nil
}

// Create handles POST /api/favorites. Any owner_id in the body is ignored.
func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return utils.ErrUnauthorized("authentication required")
	}

	var req request.FavoriteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		return err
	}

	created, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		return err
	}

	utils.ResponseSuccess(w, created)
	return nil
}

// Delete handles DELETE /api/favorites/{id}. Deleting a missing or foreign
// favorite returns an empty array.
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return utils.ErrUnauthorized("authentication required")
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return utils.ErrInvalidInput("favorite id must be an integer")
	}

	deleted, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		return err
	}

	utils.ResponseSuccess(w, deleted)
	return nil
}
