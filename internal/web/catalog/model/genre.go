package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovieGenre is read-only reference data mapping an external genre id to
// its per-locale display names. Populated out of band.
type MovieGenre struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TMDBID int                `bson:"tmdb_id" json:"tmdb_id"`
	Names  map[string]string  `bson:"names" json:"names"`
}

// Collection returns the name of the MongoDB collection for movie genres
func (MovieGenre) Collection() string {
	return "movie-genres"
}
