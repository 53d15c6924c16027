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
	"golang.org/x/text/language"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// linkedMovieIDs returns the object ids of every movie linked to a person.
func (s *Catalog) linkedMovieIDs(ctx context.Context, personID string) ([]primitive.ObjectID, error) {
	cur, err := s.dao.GetLinksCol().Find(ctx, bson.M{"person_id": personID})
	if err != nil {
		return nil, errors.Wrap(err, "find links")
	}
	defer cur.Close(ctx) //nolint:errcheck

	links := []*model.PersonMovie{}
	if err = cur.All(ctx, &links); err != nil {
		return nil, errors.Wrap(err, "load links")
	}

	ids := make([]primitive.ObjectID, 0, len(links))
	for _, link := range links {
		oid, err := primitive.ObjectIDFromHex(link.MovieID)
		if err != nil {
			// Dangling or malformed link; skip it like the visibility join does.
			continue
		}
		ids = append(ids, oid)
	}

	return ids, nil
}

// LinkMovie associates a movie with a person. The unique index on the
// pair turns a concurrent duplicate insert into a conflict instead of a
// second row.
func (s *Catalog) LinkMovie(ctx context.Context, personID, movieID string) (*model.PersonMovie, error) {
	if _, err := s.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}

	link := &model.PersonMovie{
		PersonID: personID,
		MovieID:  movieID,
	}

	result, err := s.dao.GetLinksCol().InsertOne(ctx, link)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrapf(model.ErrAlreadyLinked,
				"person %s movie %s", personID, movieID)
		}
		return nil, errors.Wrap(err, "insert link")
	}

	link.ID = result.InsertedID.(primitive.ObjectID)
	s.logger.Info("movie linked",
		zap.String("person", personID), zap.String("movie", movieID))
	return link, nil
}

// UnlinkMovie removes the association between a person and a movie.
func (s *Catalog) UnlinkMovie(ctx context.Context, personID, movieID string) error {
	result, err := s.dao.GetLinksCol().DeleteOne(ctx, bson.M{
		"person_id": personID,
		"movie_id":  movieID,
	})
	if err != nil {
		return errors.Wrap(err, "delete link")
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound,
			"movie %s is not linked to person %s", movieID, personID)
	}

	return nil
}

// MovieRecommendations returns the visible persons recommending a movie.
func (s *Catalog) MovieRecommendations(ctx context.Context, movieID string) ([]dto.PersonSummary, error) {
	cur, err := s.dao.GetLinksCol().Find(ctx, bson.M{"movie_id": movieID})
	if err != nil {
		return nil, errors.Wrap(err, "find links")
	}
	defer cur.Close(ctx) //nolint:errcheck

	links := []*model.PersonMovie{}
	if err = cur.All(ctx, &links); err != nil {
		return nil, errors.Wrap(err, "load links")
	}

	personIDs := make([]primitive.ObjectID, 0, len(links))
	for _, link := range links {
		oid, err := primitive.ObjectIDFromHex(link.PersonID)
		if err != nil {
			continue
		}
		personIDs = append(personIDs, oid)
	}

	persons, err := s.visiblePersons(ctx, personIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.PersonSummary, 0, len(persons))
	for _, p := range persons {
		summaries = append(summaries, dto.PersonSummary{
			ID:         p.ID.Hex(),
			Name:       p.Name,
			ProfileURL: p.ProfileURL,
		})
	}

	return summaries, nil
}

// visiblePersons loads the visible subset of the given person ids.
func (s *Catalog) visiblePersons(ctx context.Context, ids []primitive.ObjectID) ([]*model.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	filter := visibleFilter()
	filter["_id"] = bson.M{"$in": ids}

	cur, err := s.dao.GetPersonsCol().Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find persons")
	}
	defer cur.Close(ctx) //nolint:errcheck

	persons := []*model.Person{}
	if err = cur.All(ctx, &persons); err != nil {
		return nil, errors.Wrap(err, "load persons")
	}

	return persons, nil
}

// ListPersonMovies returns one page of a person's visible movies, sorted
// by localized title. The person's whole list is loaded before slicing;
// per-person filmographies are small.
func (s *Catalog) ListPersonMovies(ctx context.Context,
	personID, locale string, page, limit int) (*dto.Page[dto.MovieListItem], error) {
	locale = s.supportedLocale(locale)
	page, limit = sanitizePagination(page, limit, 10)

	movieIDs, err := s.linkedMovieIDs(ctx, personID)
	if err != nil {
		return nil, err
	}

	movies := []*model.Movie{}
	if len(movieIDs) > 0 {
		filter := visibleFilter()
		filter["_id"] = bson.M{"$in": movieIDs}

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

		if err = cur.All(ctx, &movies); err != nil {
			return nil, errors.Wrap(err, "load movies")
		}
	}

	coll := newLocaleCollator(locale)
	sort.SliceStable(movies, func(i, j int) bool {
		return coll.CompareString(movies[i].Title(locale), movies[j].Title(locale)) < 0
	})

	total := len(movies)
	items := []dto.MovieListItem{}
	for _, m := range pageSlice(movies, page, limit) {
		items = append(items, dto.MovieListItem{
			ID:           m.ID.Hex(),
			Year:         m.Year,
			Translations: map[string]model.Translation{locale: m.Translations[locale]},
		})
	}

	return &dto.Page[dto.MovieListItem]{
		Items:      items,
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// pageSlice slices one 1-based page out of an already-sorted full set.
func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// newLocaleCollator builds a collator for locale-aware title ordering.
// Unknown locales collate as und.
func newLocaleCollator(locale string) *collate.Collator {
	return collate.New(language.Make(locale))
}
