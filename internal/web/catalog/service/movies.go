package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// MovieListCfg narrows the admin movie listing.
type MovieListCfg struct {
	Page, Limit int
	// Search matches any locale title or the director,
	// case-insensitive substring.
	Search string
	// ExcludePersonID drops movies already linked to this person, used by
	// the admin link picker.
	ExcludePersonID string
}

// ListMovies returns one page of movies for the admin panel, newest year
// first.
func (s *Catalog) ListMovies(ctx context.Context, cfg *MovieListCfg) (*dto.Page[*model.Movie], error) {
	page, limit := sanitizePagination(cfg.Page, cfg.Limit, 20)

	filter := bson.M{}
	if search := strings.TrimSpace(cfg.Search); search != "" {
		if len(search) > maxSearchLength {
			return nil, errors.Wrapf(model.ErrValidation,
				"search exceeds max length %d", maxSearchLength)
		}

		pattern := regexp.QuoteMeta(search)
		or := []bson.M{
			{"director": primitive.Regex{Pattern: pattern, Options: "i"}},
		}
		for _, locale := range s.locales {
			or = append(or, bson.M{
				"translations." + locale + ".title": primitive.Regex{Pattern: pattern, Options: "i"},
			})
		}
		filter["$or"] = or
	}

	if cfg.ExcludePersonID != "" {
		linked, err := s.linkedMovieIDs(ctx, cfg.ExcludePersonID)
		if err != nil {
			return nil, err
		}
		if len(linked) > 0 {
			filter["_id"] = bson.M{"$nin": linked}
		}
	}

	col := s.dao.GetMoviesCol()
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count movies")
	}

	cur, err := col.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "year", Value: -1}}).
			SetSkip(int64((page-1)*limit)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find movies")
	}
	defer cur.Close(ctx) //nolint:errcheck

	movies := []*model.Movie{}
	if err = cur.All(ctx, &movies); err != nil {
		return nil, errors.Wrap(err, "load movies")
	}

	s.logger.Debug("list movies",
		zap.Int("page", page), zap.String("search", cfg.Search),
		zap.Int("n", len(movies)))
	return &dto.Page[*model.Movie]{
		Items:      movies,
		Pagination: dto.NewPagination(int(total), page, limit),
	}, nil
}

// DumpMovies returns every movie, title order, for the public full dump.
func (s *Catalog) DumpMovies(ctx context.Context) ([]*model.Movie, error) {
	titleField := "translations." + s.DefaultLocale() + ".title"
	cur, err := s.dao.GetMoviesCol().Find(ctx, visibleFilter(),
		options.Find().SetSort(bson.D{{Key: titleField, Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find movies")
	}
	defer cur.Close(ctx) //nolint:errcheck

	movies := []*model.Movie{}
	if err = cur.All(ctx, &movies); err != nil {
		return nil, errors.Wrap(err, "load movies")
	}

	return movies, nil
}

// GetMovie loads one movie by id.
func (s *Catalog) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	movie := new(model.Movie)
	if err = s.dao.GetMoviesCol().
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(movie); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "movie %s", id)
		}
		return nil, errors.Wrap(err, "find movie")
	}

	return movie, nil
}

// GetMovieDetail loads one movie narrowed to the requested locale, with
// its genre names resolved from the reference data.
func (s *Catalog) GetMovieDetail(ctx context.Context, id, locale string) (*dto.MovieDetail, error) {
	locale = s.supportedLocale(locale)

	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.MovieDetail{
		ID:          movie.ID.Hex(),
		Year:        movie.Year,
		BackdropURL: movie.BackdropURL,
		Translations: map[string]model.Translation{
			locale: movie.Translations[locale],
		},
	}

	if len(movie.GenreIDsTMDB) > 0 {
		if detail.Genres, err = s.genreNames(ctx, movie.GenreIDsTMDB, locale); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// genreNames resolves external genre ids to display names for a locale.
// Unknown ids are skipped; the reference data is populated out of band.
func (s *Catalog) genreNames(ctx context.Context, tmdbIDs []int, locale string) ([]string, error) {
	cur, err := s.dao.GetGenresCol().Find(ctx, bson.M{"tmdb_id": bson.M{"$in": tmdbIDs}})
	if err != nil {
		return nil, errors.Wrap(err, "find genres")
	}
	defer cur.Close(ctx) //nolint:errcheck

	genres := []*model.MovieGenre{}
	if err = cur.All(ctx, &genres); err != nil {
		return nil, errors.Wrap(err, "load genres")
	}

	var names []string
	for _, g := range genres {
		if name := g.Names[locale]; name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

// CreateMovie validates and inserts a movie, returning it with the
// assigned id.
func (s *Catalog) CreateMovie(ctx context.Context, cfg *dto.MovieCfg) (*model.Movie, error) {
	if err := validateMovieCfg(cfg, s.DefaultLocale()); err != nil {
		return nil, err
	}

	movie := &model.Movie{
		Director:     cfg.Director,
		Year:         cfg.Year,
		BackdropURL:  cfg.BackdropURL,
		GenreIDsTMDB: cfg.GenreIDsTMDB,
		Translations: cfg.Translations,
		TitleNorms:   titleNorms(cfg.Translations),
	}

	result, err := s.dao.GetMoviesCol().InsertOne(ctx, movie)
	if err != nil {
		return nil, errors.Wrap(err, "insert movie")
	}

	movie.ID = result.InsertedID.(primitive.ObjectID)
	s.logger.Info("movie created",
		zap.String("id", movie.ID.Hex()),
		zap.String("title", movie.Title(s.DefaultLocale())))
	return movie, nil
}

// UpdateMovie validates and replaces the editable fields of a movie,
// refreshing the normalized titles alongside.
func (s *Catalog) UpdateMovie(ctx context.Context, id string, cfg *dto.MovieCfg) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if err = validateMovieCfg(cfg, s.DefaultLocale()); err != nil {
		return err
	}

	update := bson.M{
		"director":     cfg.Director,
		"year":         cfg.Year,
		"translations": cfg.Translations,
		"title_norms":  titleNorms(cfg.Translations),
	}
	if cfg.BackdropURL != "" {
		update["backdrop_url"] = cfg.BackdropURL
	}
	if len(cfg.GenreIDsTMDB) > 0 {
		update["genre_ids_tmdb"] = cfg.GenreIDsTMDB
	}

	result, err := s.dao.GetMoviesCol().UpdateOne(ctx,
		bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return errors.Wrap(err, "update movie")
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "movie %s", id)
	}

	return nil
}

// DeleteMovie removes a movie without cascading to its links.
func (s *Catalog) DeleteMovie(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := s.dao.GetMoviesCol().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete movie")
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "movie %s", id)
	}

	s.logger.Info("movie deleted", zap.String("id", id))
	return nil
}

// findMovieByTitleNorm looks up a catalog movie whose normalized titles
// contain the given form. Returns nil when nothing matches.
func (s *Catalog) findMovieByTitleNorm(ctx context.Context, norm string) (*model.Movie, error) {
	if norm == "" {
		return nil, nil
	}

	movie := new(model.Movie)
	err := s.dao.GetMoviesCol().
		FindOne(ctx, bson.M{"title_norms": norm}).
		Decode(movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find movie by normalized title")
	}

	return movie, nil
}
