package models

import "time"

// GeoPoint represents a geographical position with latitude and longitude
// coordinates and the time it was last reported.
type GeoPoint struct {
	Lat       float64   `bson:"lat" json:"lat"`
	Lon       float64   `bson:"lon" json:"lon"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
