package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// visibleFilter matches documents whose show flag is absent or true.
func visibleFilter() bson.M {
	return bson.M{"show": bson.M{"$ne": false}}
}

// parseObjectID converts a hex id; an unparseable id can never match a
// document, so it maps to not-found.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(model.ErrNotFound, "invalid id %q", id)
	}

	return oid, nil
}

// ListPersons returns one page of visible persons, newest interview first.
func (s *Catalog) ListPersons(ctx context.Context, page, limit int) (*dto.Page[*model.Person], error) {
	page, limit = sanitizePagination(page, limit, 10)
	filter := visibleFilter()

	col := s.dao.GetPersonsCol()
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count persons")
	}

	cur, err := col.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "date", Value: -1}}).
			SetSkip(int64((page-1)*limit)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find persons")
	}
	defer cur.Close(ctx) //nolint:errcheck

	persons := []*model.Person{}
	if err = cur.All(ctx, &persons); err != nil {
		return nil, errors.Wrap(err, "load persons")
	}

	s.logger.Debug("list persons", zap.Int("page", page), zap.Int("n", len(persons)))
	return &dto.Page[*model.Person]{
		Items:      persons,
		Pagination: dto.NewPagination(int(total), page, limit),
	}, nil
}

// GetPerson loads one person by id.
func (s *Catalog) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	person := new(model.Person)
	if err = s.dao.GetPersonsCol().
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(person); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "person %s", id)
		}
		return nil, errors.Wrap(err, "find person")
	}

	return person, nil
}

// CreatePerson validates and inserts a person, returning it with the
// assigned id. Visibility defaults to visible.
func (s *Catalog) CreatePerson(ctx context.Context, cfg *dto.PersonCfg) (*model.Person, error) {
	if err := validatePersonCfg(cfg); err != nil {
		return nil, err
	}

	show := true
	if cfg.Show != nil {
		show = *cfg.Show
	}

	person := &model.Person{
		Name:       cfg.Name,
		ProfileURL: cfg.ProfileURL,
		Date:       cfg.Date,
		Video:      cfg.Video,
		Show:       &show,
	}

	result, err := s.dao.GetPersonsCol().InsertOne(ctx, person)
	if err != nil {
		return nil, errors.Wrap(err, "insert person")
	}

	person.ID = result.InsertedID.(primitive.ObjectID)
	s.logger.Info("person created", zap.String("id", person.ID.Hex()))
	return person, nil
}

// UpdatePerson validates and replaces the editable fields of a person.
func (s *Catalog) UpdatePerson(ctx context.Context, id string, cfg *dto.PersonCfg) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if err = validatePersonCfg(cfg); err != nil {
		return err
	}

	show := true
	if cfg.Show != nil {
		show = *cfg.Show
	}

	update := bson.M{
		"name":        cfg.Name,
		"profile_url": cfg.ProfileURL,
		"date":        cfg.Date,
		"show":        show,
	}
	if cfg.Video != "" {
		update["video"] = cfg.Video
	}

	result, err := s.dao.GetPersonsCol().UpdateOne(ctx,
		bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return errors.Wrap(err, "update person")
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "person %s", id)
	}

	return nil
}

// DeletePerson removes a person. Links pointing at it are left in place;
// the read path's visibility join hides them.
func (s *Catalog) DeletePerson(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := s.dao.GetPersonsCol().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete person")
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "person %s", id)
	}

	s.logger.Info("person deleted", zap.String("id", id))
	return nil
}
