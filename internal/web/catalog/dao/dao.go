// Package dao contains the data access objects of the catalog.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/video-club/video-club-api/internal/web/catalog/model"
	"github.com/video-club/video-club-api/library/db/mongo"
)

// Catalog dao type
type Catalog struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Catalog {
	return &Catalog{
		logger: logger,
		db:     db,
	}
}

// GetPersonsCol get persons collection
func (d *Catalog) GetPersonsCol() *mongoLib.Collection {
	return d.db.GetCol(model.Person{}.Collection())
}

// GetMoviesCol get movies collection
func (d *Catalog) GetMoviesCol() *mongoLib.Collection {
	return d.db.GetCol(model.Movie{}.Collection())
}

// GetLinksCol get person-movie links collection
func (d *Catalog) GetLinksCol() *mongoLib.Collection {
	return d.db.GetCol(model.PersonMovie{}.Collection())
}

// GetGenresCol get movie genres collection
func (d *Catalog) GetGenresCol() *mongoLib.Collection {
	return d.db.GetCol(model.MovieGenre{}.Collection())
}

// EnsureIndexes creates the unique (person_id, movie_id) index so a
// duplicate link insert fails at the store instead of racing a lookup.
func (d *Catalog) EnsureIndexes(ctx context.Context) error {
	_, err := d.GetLinksCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys: bson.D{
			{Key: "person_id", Value: 1},
			{Key: "movie_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "create link index")
	}

	return nil
}
