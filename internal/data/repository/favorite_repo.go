package repository

import (
	"context"
	"fmt"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FavoriteRepository scopes every statement to an owner. There is no method
// that reads or deletes favorites without an owner predicate.
type FavoriteRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Favorite, error)
	Create(ctx context.Context, favorite *entity.Favorite) ([]*entity.Favorite, error)
	DeleteByOwnerAndID(ctx context.Context, ownerID uuid.UUID, id int64) ([]*entity.Favorite, error)
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

const favoriteColumns = `id, title, genre, director, year, poster, runtime, movie_db_id, owner_id, created_at`

func (r *favoriteRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Favorite, error) {
	query := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to list favorites",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find favorites for owner %s: %w", ownerID, err)
	}

	return r.collect(rows)
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) ([]*entity.Favorite, error) {
	query := `
		INSERT INTO favorites (title, genre, director, year, poster, runtime,
		                       movie_db_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + favoriteColumns

	rows, err := r.db.Query(ctx, query,
		favorite.Title,
		favorite.Genre,
		favorite.Director,
		favorite.Year,
		favorite.Poster,
		favorite.Runtime,
		favorite.MovieDBID,
		favorite.OwnerID,
	)
	if err != nil {
		r.log.Error("Failed to create favorite",
			zap.Error(err),
			zap.String("owner_id", favorite.OwnerID.String()),
			zap.Int64("movie_db_id", favorite.MovieDBID),
		)
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	return r.collect(rows)
}

func (r *favoriteRepository) DeleteByOwnerAndID(ctx context.Context, ownerID uuid.UUID, id int64) ([]*entity.Favorite, error) {
	query := `
		DELETE FROM favorites
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + favoriteColumns

	rows, err := r.db.Query(ctx, query, ownerID, id)
	if err != nil {
		r.log.Error("Failed to delete favorite",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.Int64("id", id),
		)
		return nil, fmt.Errorf("delete favorite %d: %w", id, err)
	}

	deleted, err := r.collect(rows)
	if err != nil {
		return nil, err
	}

	if len(deleted) > 0 {
		r.log.Info("Favorite deleted",
			zap.Int64("id", id),
			zap.String("owner_id", ownerID.String()),
		)
	}
	return deleted, nil
}

// collect scans all rows and always returns a non-nil slice on success.
func (r *favoriteRepository) collect(rows pgx.Rows) ([]*entity.Favorite, error) {
	defer rows.Close()

	favorites := make([]*entity.Favorite, 0)
	for rows.Next() {
		var f entity.Favorite
		err := rows.Scan(
			&f.ID,
			&f.Title,
			&f.Genre,
			&f.Director,
			&f.Year,
			&f.Poster,
			&f.Runtime,
			&f.MovieDBID,
			&f.OwnerID,
			&f.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan favorite row", zap.Error(err))
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, &f)
	}

	// query errors such as constraint violations surface here
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	return favorites, nil
}
