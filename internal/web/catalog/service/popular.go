package service

import (
	"context"
	"sort"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/text/collate"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// minMentions is the mention-count floor for the popular listing.
const minMentions = 2

// mentionRow is one group of the link aggregation: a movie and the
// persons mentioning it.
type mentionRow struct {
	MovieID   string   `bson:"_id"`
	Count     int      `bson:"count"`
	PersonIDs []string `bson:"person_ids"`
}

// PopularMovies returns movies mentioned by at least two visible persons,
// most mentioned first, ties broken by locale-aware title order.
func (s *Catalog) PopularMovies(ctx context.Context, locale string) (*dto.Page[dto.PopularMovie], error) {
	locale = s.supportedLocale(locale)

	rows, err := s.mentionCounts(ctx)
	if err != nil {
		return nil, err
	}

	movieByID, err := s.visibleMoviesByID(ctx, rows, locale)
	if err != nil {
		return nil, err
	}

	nameByPersonID, err := s.visiblePersonNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	items := assemblePopular(rows, movieByID, nameByPersonID, locale, newLocaleCollator(locale))

	s.logger.Debug("popular movies", zap.Int("n", len(items)))
	total := len(items)
	return &dto.Page[dto.PopularMovie]{
		Items:      items,
		Pagination: dto.NewPagination(total, 1, max(total, 1)),
	}, nil
}

// mentionCounts groups link records by movie and keeps groups at or
// above the mention floor.
func (s *Catalog) mentionCounts(ctx context.Context) ([]mentionRow, error) {
	cur, err := s.dao.GetLinksCol().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$movie_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "person_ids", Value: bson.D{{Key: "$push", Value: "$person_id"}}},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$gte", Value: minMentions}}},
		}}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "aggregate links")
	}
	defer cur.Close(ctx) //nolint:errcheck

	rows := []mentionRow{}
	if err = cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "load mention counts")
	}

	return rows, nil
}

// visibleMoviesByID fetches the visible movies named by the mention rows,
// projected to the fields the listing shows.
func (s *Catalog) visibleMoviesByID(ctx context.Context,
	rows []mentionRow, locale string) (map[string]*model.Movie, error) {
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		oid, err := primitive.ObjectIDFromHex(row.MovieID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return map[string]*model.Movie{}, nil
	}

	filter := visibleFilter()
	filter["_id"] = bson.M{"$in": ids}

	cur, err := s.dao.GetMoviesCol().Find(ctx, filter,
		options.Find().SetProjection(bson.M{
			"year": 1,
			"translations." + locale + ".title":      1,
			"translations." + locale + ".poster_url": 1,
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find movies")
	}
	defer cur.Close(ctx) //nolint:errcheck

	movies := []*model.Movie{}
	if err = cur.All(ctx, &movies); err != nil {
		return nil, errors.Wrap(err, "load movies")
	}

	byID := make(map[string]*model.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID.Hex()] = m
	}

	return byID, nil
}

// visiblePersonNames resolves the distinct person ids of the mention
// rows to the names of those still visible.
func (s *Catalog) visiblePersonNames(ctx context.Context, rows []mentionRow) (map[string]string, error) {
	seen := map[string]struct{}{}
	var ids []primitive.ObjectID
	for _, row := range rows {
		for _, id := range row.PersonIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				continue
			}
			ids = append(ids, oid)
		}
	}

	persons, err := s.visiblePersons(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(persons))
	for _, p := range persons {
		names[p.ID.Hex()] = p.Name
	}

	return names, nil
}

// assemblePopular joins mention rows with the visible movies and person
// names and orders the result: mention count descending, then localized
// title ascending under the collator. Movies filtered out by visibility
// are dropped even when mentioned; hidden persons do not contribute
// names.
func assemblePopular(rows []mentionRow,
	movieByID map[string]*model.Movie,
	nameByPersonID map[string]string,
	locale string,
	coll *collate.Collator,
) []dto.PopularMovie {
	items := []dto.PopularMovie{}
	for _, row := range rows {
		movie, ok := movieByID[row.MovieID]
		if !ok {
			continue
		}

		persons := []dto.PersonSummary{}
		for _, id := range row.PersonIDs {
			if name, ok := nameByPersonID[id]; ok {
				persons = append(persons, dto.PersonSummary{Name: name})
			}
		}
		// Every remaining recommender is hidden; the movie no longer
		// qualifies for the public listing.
		if len(persons) < minMentions {
			continue
		}

		items = append(items, dto.PopularMovie{
			MovieListItem: dto.MovieListItem{
				ID:           movie.ID.Hex(),
				Year:         movie.Year,
				Translations: map[string]model.Translation{locale: movie.Translations[locale]},
			},
			MentionCount: len(persons),
			Persons:      persons,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MentionCount != items[j].MentionCount {
			return items[i].MentionCount > items[j].MentionCount
		}
		return coll.CompareString(
			items[i].Translations[locale].Title,
			items[j].Translations[locale].Title,
		) < 0
	})

	return items
}
