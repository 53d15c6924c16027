package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/video-club/video-club-api/internal/library/llm"
	"github.com/video-club/video-club-api/internal/library/tmdb"
	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// FetchMoviesForPerson extracts the movies mentioned in a person's
// source video and reconciles each against the catalog: a local match is
// returned as-is (with its id), a miss is resolved through the external
// metadata source, a double miss is silently skipped.
func (s *Catalog) FetchMoviesForPerson(ctx context.Context, personID string) ([]*dto.MovieForImport, error) {
	person, err := s.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	videoID := strings.TrimSpace(person.Video)
	if videoID == "" {
		return nil, errors.Wrap(model.ErrValidation, "person has no video reference")
	}

	mentions, err := s.extractor.ExtractMovieMentions(ctx,
		"https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return nil, errors.Wrap(err, "extract movie mentions")
	}

	movies := []*dto.MovieForImport{}
	for _, mention := range dedupeMentions(mentions) {
		movie, err := s.resolveMention(ctx, mention)
		if err != nil {
			return nil, err
		}
		if movie != nil {
			movies = append(movies, movie)
		}
	}

	s.logger.Info("fetched movies from video",
		zap.String("person", personID),
		zap.Int("mentions", len(mentions)),
		zap.Int("resolved", len(movies)))
	return movies, nil
}

// dedupeMentions drops empty titles and repeats, keyed on the
// normalized title, first occurrence wins.
func dedupeMentions(mentions []llm.MovieMention) []llm.MovieMention {
	seen := make(map[string]struct{}, len(mentions))
	out := make([]llm.MovieMention, 0, len(mentions))
	for _, m := range mentions {
		norm := NormalizeTitle(m.Title)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, m)
	}

	return out
}

// resolveMention matches one extracted title locally first, then against
// the external metadata source. Returns nil on a double miss.
func (s *Catalog) resolveMention(ctx context.Context, mention llm.MovieMention) (*dto.MovieForImport, error) {
	existing, err := s.findMovieByTitleNorm(ctx, NormalizeTitle(mention.Title))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return dto.MovieForImportFromModel(existing)
	}

	hit, err := s.metadata.Search(ctx, strings.TrimSpace(mention.Title), mention.Year)
	if err != nil {
		return nil, errors.Wrapf(err, "search metadata for %q", mention.Title)
	}
	if hit == nil {
		// Unknown everywhere; skip without failing the batch.
		return nil, nil
	}

	imported, err := s.metadata.MovieForImport(ctx, hit.ID, s.locales)
	if err != nil {
		return nil, errors.Wrapf(err, "assemble movie %d", hit.ID)
	}
	if imported == nil {
		return nil, nil
	}

	return movieForImportFromTMDB(imported), nil
}

// movieForImportFromTMDB converts an assembled external record into the
// import interchange shape.
func movieForImportFromTMDB(m *tmdb.ImportedMovie) *dto.MovieForImport {
	translations := make(map[string]model.Translation, len(m.Translations))
	for locale, tr := range m.Translations {
		translations[locale] = model.Translation{
			Title:     tr.Title,
			Overview:  tr.Overview,
			PosterURL: tr.PosterURL,
		}
	}

	return &dto.MovieForImport{
		Director:     m.Director,
		Year:         m.Year,
		BackdropURL:  m.BackdropURL,
		Translations: translations,
		GenreIDsTMDB: m.GenreIDs,
	}
}

// candidateTitle picks the title an import candidate is matched on:
// the default locale when populated, else any locale.
func candidateTitle(m *dto.MovieForImport, defaultLocale string) string {
	if title := strings.TrimSpace(m.Translations[defaultLocale].Title); title != "" {
		return title
	}
	for _, tr := range m.Translations {
		if title := strings.TrimSpace(tr.Title); title != "" {
			return title
		}
	}

	return ""
}

// ImportMovies reconciles reviewed import candidates into the catalog
// and links them to the person: existing movies (by id or normalized
// title) are reused, the rest inserted, and each is linked unless the
// link already exists. Returns how many links and movies were created.
func (s *Catalog) ImportMovies(ctx context.Context,
	personID string, candidates []*dto.MovieForImport) (*dto.ImportSummary, error) {
	summary := &dto.ImportSummary{Success: true}

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		title := candidateTitle(candidate, s.DefaultLocale())
		if title == "" {
			continue
		}

		movieID, created, err := s.resolveCandidateID(ctx, candidate, title)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Created++
		}

		link := &model.PersonMovie{PersonID: personID, MovieID: movieID}
		if _, err = s.dao.GetLinksCol().InsertOne(ctx, link); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return nil, errors.Wrap(err, "insert link")
		}
		summary.Linked++
	}

	s.logger.Info("import finished",
		zap.String("person", personID),
		zap.Int("linked", summary.Linked),
		zap.Int("created", summary.Created))
	return summary, nil
}

// resolveCandidateID returns the catalog id for an import candidate,
// inserting a new movie when neither the candidate id nor the
// normalized title matches.
func (s *Catalog) resolveCandidateID(ctx context.Context,
	candidate *dto.MovieForImport, title string) (id string, created bool, err error) {
	if candidate.ID != "" {
		if oid, idErr := primitive.ObjectIDFromHex(candidate.ID); idErr == nil {
			count, err := s.dao.GetMoviesCol().CountDocuments(ctx, bson.M{"_id": oid})
			if err != nil {
				return "", false, errors.Wrap(err, "check movie id")
			}
			if count > 0 {
				return candidate.ID, false, nil
			}
		}
	}

	existing, err := s.findMovieByTitleNorm(ctx, NormalizeTitle(title))
	if err != nil {
		return "", false, err
	}
	if existing != nil {
		return existing.ID.Hex(), false, nil
	}

	movie := &model.Movie{
		Director:     candidate.Director,
		Year:         candidate.Year,
		BackdropURL:  candidate.BackdropURL,
		GenreIDsTMDB: candidate.GenreIDsTMDB,
		Translations: candidate.Translations,
		TitleNorms:   titleNorms(candidate.Translations),
	}

	result, err := s.dao.GetMoviesCol().InsertOne(ctx, movie)
	if err != nil {
		return "", false, errors.Wrap(err, "insert movie")
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), true, nil
}
