package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonMovie links a person to a movie they recommend. The pair is
// unique, enforced by a compound index created at startup.
type PersonMovie struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PersonID string             `bson:"person_id" json:"person_id"`
	MovieID  string             `bson:"movie_id" json:"movie_id"`
}

// Collection returns the name of the MongoDB collection for person-movie links
func (PersonMovie) Collection() string {
	return "persons-movies"
}
