// Package model contains the catalog documents.
package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person is a celebrity whose movie recommendations the catalog tracks.
type Person struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// Name display name
	Name string `bson:"name" json:"name"`
	// ProfileURL profile image URL
	ProfileURL string `bson:"profile_url" json:"profile_url"`
	// Date interview date, ISO formatted
	Date string `bson:"date" json:"date"`
	// Video optional source video reference (YouTube video id)
	Video string `bson:"video,omitempty" json:"video,omitempty"`
	// Show controls whether public queries return this person.
	// Absent means visible.
	Show *bool `bson:"show,omitempty" json:"show,omitempty"`
}

// Collection returns the name of the MongoDB collection for persons
func (Person) Collection() string {
	return "persons"
}

// Visible reports whether public queries should return this person.
func (p *Person) Visible() bool {
	return p.Show == nil || *p.Show
}
