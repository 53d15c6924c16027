package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/video-club/video-club-api/internal/library/llm"
	"github.com/video-club/video-club-api/internal/library/tmdb"
	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

func TestDedupeMentions(t *testing.T) {
	t.Parallel()

	mentions := dedupeMentions([]llm.MovieMention{
		{Title: "Amélie", Year: "2001"},
		{Title: "AMELIE"},
		{Title: "  amélie  "},
		{Title: ""},
		{Title: "Heat", Year: "1995"},
	})

	require.Equal(t, []llm.MovieMention{
		{Title: "Amélie", Year: "2001"},
		{Title: "Heat", Year: "1995"},
	}, mentions)
}

func TestCandidateTitle(t *testing.T) {
	t.Parallel()

	m := &dto.MovieForImport{Translations: map[string]model.Translation{
		"en": {Title: "The Wages of Fear"},
		"fr": {Title: "Le Salaire de la peur"},
	}}
	require.Equal(t, "The Wages of Fear", candidateTitle(m, "en"))
	require.Equal(t, "Le Salaire de la peur", candidateTitle(m, "fr"))

	// Default locale missing: any populated locale serves.
	m = &dto.MovieForImport{Translations: map[string]model.Translation{
		"fr": {Title: "Le Samouraï"},
	}}
	require.Equal(t, "Le Samouraï", candidateTitle(m, "en"))

	require.Empty(t, candidateTitle(&dto.MovieForImport{}, "en"))
	require.Empty(t, candidateTitle(&dto.MovieForImport{
		Translations: map[string]model.Translation{"en": {Title: "   "}},
	}, "en"))
}

func TestMovieForImportFromTMDB(t *testing.T) {
	t.Parallel()

	got := movieForImportFromTMDB(&tmdb.ImportedMovie{
		Director:    "John Carpenter",
		Year:        "1982",
		BackdropURL: "https://image.tmdb.org/t/p/original/b.jpg",
		GenreIDs:    []int{27, 878},
		Translations: map[string]tmdb.Translation{
			"en": {Title: "The Thing", Overview: "An alien...", PosterURL: "p-en"},
			"fr": {Title: "The Thing", Overview: "Un extraterrestre...", PosterURL: "p-fr"},
		},
	})

	require.Empty(t, got.ID)
	require.Equal(t, "John Carpenter", got.Director)
	require.Equal(t, "1982", got.Year)
	require.Equal(t, []int{27, 878}, got.GenreIDsTMDB)
	require.Equal(t, "Un extraterrestre...", got.Translations["fr"].Overview)
	require.Equal(t, "p-en", got.Translations["en"].PosterURL)
}
