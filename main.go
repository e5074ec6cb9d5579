// main.go
package main

import (
	"context"
	"log"
	"time"

	"movie-favorites/cmd"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/wire"
	"movie-favorites/pkg/database"
	"movie-favorites/pkg/moviedb"
	"movie-favorites/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.MovieAPI.APIKey == "" {
		logger.Warn("MOVIE_API_KEY is not set; /movies requests will be rejected by the catalog")
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
	}

	repos := repository.NewRepository(db, logger)
	catalog := moviedb.NewClient(config.MovieAPI.APIKey, config.MovieAPI.BaseURL, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, catalog, db, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
