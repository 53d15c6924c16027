package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Translation is one locale entry of a movie.
type Translation struct {
	Title     string `bson:"title" json:"title"`
	Overview  string `bson:"overview,omitempty" json:"overview,omitempty"`
	PosterURL string `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
}

// Movie is a catalog movie with per-locale translations.
type Movie struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// Director director name
	Director string `bson:"director" json:"director"`
	// Year release year, kept as string ("1994")
	Year string `bson:"year" json:"year"`
	// BackdropURL optional backdrop image URL
	BackdropURL string `bson:"backdrop_url,omitempty" json:"backdrop_url,omitempty"`
	// GenreIDsTMDB optional external genre references
	GenreIDsTMDB []int `bson:"genre_ids_tmdb,omitempty" json:"genre_ids_tmdb,omitempty"`
	// Translations per-locale title/overview/poster
	Translations map[string]Translation `bson:"translations" json:"translations"`
	// TitleNorms normalized forms of every locale title, maintained on
	// every write so import matching is exact instead of regex based.
	TitleNorms []string `bson:"title_norms,omitempty" json:"-"`
	// Show controls whether public queries return this movie.
	Show *bool `bson:"show,omitempty" json:"show,omitempty"`
}

// Collection returns the name of the MongoDB collection for movies
func (Movie) Collection() string {
	return "movies"
}

// Visible reports whether public queries should return this movie.
func (m *Movie) Visible() bool {
	return m.Show == nil || *m.Show
}

// Title returns the movie title for the given locale, empty when the
// locale has no translation.
func (m *Movie) Title(locale string) string {
	return m.Translations[locale].Title
}
