package request

// FavoriteRequest is the body of POST /api/favorites. It has no owner field:
// the owner is always the authenticated user. Numeric fields accept either a
// JSON number or a numeric string.
type FavoriteRequest struct {
	Title     string   `json:"title" validate:"required,max=512"`
	Genre     *string  `json:"genre" validate:"omitempty,max=255"`
	Director  *string  `json:"director" validate:"omitempty,max=255"`
	Year      *Integer `json:"year" validate:"omitempty,gte=1800,lte=3000"`
	Poster    *string  `json:"poster" validate:"omitempty,max=1024"`
	Runtime   *Integer `json:"runtime" validate:"omitempty,gte=0,lte=2147483647"`
	MovieDBID Integer  `json:"movie_db_id" validate:"required,gte=1"`
}
