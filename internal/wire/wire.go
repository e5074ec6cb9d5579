package wire

import (
	"context"
	"net/http"
	"time"

	"movie-favorites/internal/adaptor"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/middleware"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router. db may be nil, in which
// case /health does not check the store.
func Wiring(
	repo *repository.Repository,
	catalog usecase.MovieSearcher,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, catalog, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, db, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireMovie(r, handler.Movie, logger)

	// everything under /api requires a bearer token
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthSession(service.Auth, logger))

		wireFavorite(r, handler.Favorite, logger)
		r.Post("/signout", utils.Handle(logger, handler.Auth.SignOut))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		utils.ResponseSuccess(w, map[string]string{"status": "ok"})
	})

	return r
}
