package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

func popularMovie(t *testing.T, title string) *model.Movie {
	t.Helper()
	return &model.Movie{
		ID:   primitive.NewObjectID(),
		Year: "1990",
		Translations: map[string]model.Translation{
			"en": {Title: title},
		},
	}
}

func TestAssemblePopular(t *testing.T) {
	t.Parallel()

	alien := popularMovie(t, "Alien")
	stalker := popularMovie(t, "Stalker")
	zodiac := popularMovie(t, "Zodiac")

	movieByID := map[string]*model.Movie{
		alien.ID.Hex():   alien,
		stalker.ID.Hex(): stalker,
		zodiac.ID.Hex():  zodiac,
	}
	names := map[string]string{
		"p1": "Ana", "p2": "Ben", "p3": "Cleo",
	}

	rows := []mentionRow{
		{MovieID: zodiac.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
		{MovieID: stalker.ID.Hex(), Count: 3, PersonIDs: []string{"p1", "p2", "p3"}},
		{MovieID: alien.ID.Hex(), Count: 2, PersonIDs: []string{"p2", "p3"}},
	}

	items := assemblePopular(rows, movieByID, names, "en", newLocaleCollator("en"))
	require.Len(t, items, 3)

	// Highest mention count first, ties in title order.
	require.Equal(t, stalker.ID.Hex(), items[0].ID)
	require.Equal(t, 3, items[0].MentionCount)
	require.Equal(t, alien.ID.Hex(), items[1].ID)
	require.Equal(t, zodiac.ID.Hex(), items[2].ID)

	require.Equal(t, []string{"Ana", "Ben", "Cleo"}, personNames(items[0].Persons))
}

func TestAssemblePopularHiddenMovie(t *testing.T) {
	t.Parallel()

	visible := popularMovie(t, "Visible")
	hiddenID := primitive.NewObjectID().Hex()

	rows := []mentionRow{
		{MovieID: visible.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
		// Not in movieByID: filtered out by the visibility fetch.
		{MovieID: hiddenID, Count: 5, PersonIDs: []string{"p1", "p2", "p3"}},
	}
	names := map[string]string{"p1": "Ana", "p2": "Ben", "p3": "Cleo"}

	items := assemblePopular(rows,
		map[string]*model.Movie{visible.ID.Hex(): visible},
		names, "en", newLocaleCollator("en"))
	require.Len(t, items, 1)
	require.Equal(t, visible.ID.Hex(), items[0].ID)
}

func TestAssemblePopularHiddenRecommenders(t *testing.T) {
	t.Parallel()

	movie := popularMovie(t, "Orphaned")
	rows := []mentionRow{
		{MovieID: movie.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
	}

	// Both recommenders hidden: the movie drops out entirely.
	items := assemblePopular(rows,
		map[string]*model.Movie{movie.ID.Hex(): movie},
		map[string]string{}, "en", newLocaleCollator("en"))
	require.Empty(t, items)

	// One visible recommender is still below the mention floor.
	items = assemblePopular(rows,
		map[string]*model.Movie{movie.ID.Hex(): movie},
		map[string]string{"p1": "Ana"}, "en", newLocaleCollator("en"))
	require.Empty(t, items)
}

func TestAssemblePopularLocaleOrder(t *testing.T) {
	t.Parallel()

	// é sorts between e and f under the fr collator, not after z.
	eclair := &model.Movie{ID: primitive.NewObjectID(),
		Translations: map[string]model.Translation{"fr": {Title: "Éclair"}}}
	enfance := &model.Movie{ID: primitive.NewObjectID(),
		Translations: map[string]model.Translation{"fr": {Title: "Enfance"}}}
	fantome := &model.Movie{ID: primitive.NewObjectID(),
		Translations: map[string]model.Translation{"fr": {Title: "Fantôme"}}}

	rows := []mentionRow{
		{MovieID: fantome.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
		{MovieID: eclair.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
		{MovieID: enfance.ID.Hex(), Count: 2, PersonIDs: []string{"p1", "p2"}},
	}
	movieByID := map[string]*model.Movie{
		eclair.ID.Hex():  eclair,
		enfance.ID.Hex(): enfance,
		fantome.ID.Hex(): fantome,
	}
	names := map[string]string{"p1": "Ana", "p2": "Ben"}

	items := assemblePopular(rows, movieByID, names, "fr", newLocaleCollator("fr"))
	require.Len(t, items, 3)

	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Translations["fr"].Title)
	}
	require.Equal(t, []string{"Éclair", "Enfance", "Fantôme"}, titles)
}

func personNames(persons []dto.PersonSummary) []string {
	names := make([]string, 0, len(persons))
	for _, p := range persons {
		names = append(names, p.Name)
	}

	return names
}
