package models

import "time"

// Pin is a geotagged review dropped on the map. Username is a denormalized
// copy of the author's name, not a reference to a User record; the service
// trusts whatever the caller supplies.
type Pin struct {
	ID        string    `bson:"_id,omitempty" mapstructure:"_id" db:"id" json:"id"`
	Title     string    `bson:"title" mapstructure:"title" db:"title" json:"title"`
	Desc      string    `bson:"desc" mapstructure:"desc" db:"desc" json:"desc"`
	Rating    int       `bson:"rating" mapstructure:"rating" db:"rating" json:"rating"`
	Lat       float64   `bson:"lat" mapstructure:"lat" db:"lat" json:"lat"`
	Long      float64   `bson:"long" mapstructure:"long" db:"long" json:"long"`
	Username  string    `bson:"username" mapstructure:"username" db:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" mapstructure:"createdAt" db:"created_at" json:"createdAt"`
}
