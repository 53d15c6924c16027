package dto

import (
	"github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"

	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// MovieCfg is the create/update payload for a movie.
type MovieCfg struct {
	Director     string                       `json:"director"`
	Year         string                       `json:"year"`
	BackdropURL  string                       `json:"backdrop_url,omitempty"`
	GenreIDsTMDB []int                        `json:"genre_ids_tmdb,omitempty"`
	Translations map[string]model.Translation `json:"translations"`
}

// MovieListItem is the projected movie returned by person-scoped listings:
// only the year plus the requested locale's title and poster.
type MovieListItem struct {
	ID           string                       `json:"_id"`
	Year         string                       `json:"year"`
	Translations map[string]model.Translation `json:"translations"`
}

// PopularMovie is a movie annotated with its mention count and the
// recommenders behind it.
type PopularMovie struct {
	MovieListItem
	MentionCount int             `json:"mentionCount"`
	Persons      []PersonSummary `json:"persons"`
}

// PersonSummary is the minimal person shape embedded in movie responses.
type PersonSummary struct {
	ID         string `json:"_id,omitempty"`
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// MovieDetail is the public movie page payload: the requested locale's
// translation plus resolved genre names.
type MovieDetail struct {
	ID           string                       `json:"_id"`
	Year         string                       `json:"year"`
	BackdropURL  string                       `json:"backdrop_url,omitempty"`
	Translations map[string]model.Translation `json:"translations"`
	Genres       []string                     `json:"genres,omitempty"`
}

// MovieForImport is the interchange shape of the import pipeline: either
// an existing catalog movie (ID set) or a record assembled from the
// external metadata source.
type MovieForImport struct {
	ID           string                       `json:"_id,omitempty"`
	Director     string                       `json:"director"`
	Year         string                       `json:"year"`
	BackdropURL  string                       `json:"backdrop_url,omitempty"`
	Translations map[string]model.Translation `json:"translations"`
	GenreIDsTMDB []int                        `json:"genre_ids_tmdb,omitempty"`
}

// ImportSummary reports what an import run did.
type ImportSummary struct {
	Success bool `json:"success"`
	Linked  int  `json:"linked"`
	Created int  `json:"created"`
}

// MovieForImportFromModel converts a catalog movie into the import shape.
func MovieForImportFromModel(m *model.Movie) (*MovieForImport, error) {
	out := new(MovieForImport)
	if err := copier.Copy(out, m); err != nil {
		return nil, errors.Wrap(err, "copy movie")
	}

	out.ID = m.ID.Hex()
	return out, nil
}
