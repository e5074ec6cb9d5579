package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is one movie saved by one user. ID is assigned by the store and
// OwnerID always comes from the authenticated identity.
type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Genre     *string   `db:"genre" json:"genre"`
	Director  *string   `db:"director" json:"director"`
	Year      *int32    `db:"year" json:"year"`
	Poster    *string   `db:"poster" json:"poster"`
	Runtime   *int32    `db:"runtime" json:"runtime"`
	MovieDBID int64     `db:"movie_db_id" json:"movie_db_id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
